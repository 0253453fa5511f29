package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for stored entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Neighbor is one entry of a nearest-neighbor ranking.
// Distance is whatever the ranking metric produced; smaller is nearer.
type Neighbor struct {
	Term     string
	Distance float64
}

// ScoredTerm pairs a vocabulary term with a score.
type ScoredTerm struct {
	Term  string
	Score float64
}

// MatrixManifest describes a distributional matrix held by a data source.
type MatrixManifest struct {
	Id         ID
	Name       string
	Columns    []string  // Context feature labels, in column order
	Rows       int       // Number of vocabulary rows
	InsertedAt time.Time // When the matrix was first stored
	UpdatedAt  time.Time // When the matrix was last replaced
	Generation uint64    // Row set the manifest points at; bumped on every replace
}

// MatrixRow is one stored row of a distributional matrix.
type MatrixRow struct {
	Index  int       // Position of the row in the original matrix
	Term   string    // Row label
	Values []float64 // One value per manifest column
}

// LexiconEntry holds human affect ratings for one word.
type LexiconEntry struct {
	Word      string
	Valence   float64
	Arousal   float64
	Dominance float64
}

// Dimension names one of the affect ratings in a LexiconEntry.
type Dimension string

const (
	DimensionValence   Dimension = "Valence"
	DimensionArousal   Dimension = "Arousal"
	DimensionDominance Dimension = "Dominance"
)

// Dimensions lists the affect dimensions in report order.
var Dimensions = []Dimension{DimensionValence, DimensionArousal, DimensionDominance}

// Value returns the rating for the given dimension.
// The second result is false for an unknown dimension.
func (e *LexiconEntry) Value(d Dimension) (float64, bool) {
	switch d {
	case DimensionValence:
		return e.Valence, true
	case DimensionArousal:
		return e.Arousal, true
	case DimensionDominance:
		return e.Dominance, true
	}
	return 0, false
}
