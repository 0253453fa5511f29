package lexicon

import (
	"cmp"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/poiesic/lexorient/core"
)

// WarrinerFileName is the conventional name of the ratings file.
const WarrinerFileName = "Ratings_Warriner_et_al.csv"

// Column headers read from the ratings file.
const (
	columnWord      = "Word"
	columnValence   = "V.Mean.Sum"
	columnArousal   = "A.Mean.Sum"
	columnDominance = "D.Mean.Sum"
)

// Vocabulary reports term membership.
type Vocabulary interface {
	Has(term string) bool
}

// LoadWarriner reads the ratings file at path. See ReadWarriner.
func LoadWarriner(path string, vocab Vocabulary) ([]core.LexiconEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := ReadWarriner(f, vocab)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// ReadWarriner reads Warriner ratings from CSV. Columns are located by
// header name, so the leading index column and the SD/count columns are
// ignored. If vocab is non-nil only words it contains are kept, and the
// result is sorted by word.
func ReadWarriner(r io.Reader, vocab Vocabulary) ([]core.LexiconEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrMissingColumn)
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	cols := make([]int, 4)
	for i, name := range []string{columnWord, columnValence, columnArousal, columnDominance} {
		c, ok := idx[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
		cols[i] = c
	}
	width := slices.Max(cols) + 1

	var entries []core.LexiconEntry
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("reading line %d: %w", line, err)
		}
		if len(record) < width {
			return nil, fmt.Errorf("%w: line %d has %d cells", ErrMissingColumn, line, len(record))
		}

		word := record[cols[0]]
		if vocab != nil && !vocab.Has(word) {
			continue
		}

		var ratings [3]float64
		for i := range ratings {
			cell := strings.TrimSpace(record[cols[i+1]])
			ratings[i], err = strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d %q: %q", ErrParseRating, line, header[cols[i+1]], cell)
			}
		}
		entries = append(entries, core.LexiconEntry{
			Word:      word,
			Valence:   ratings[0],
			Arousal:   ratings[1],
			Dominance: ratings[2],
		})
	}

	if vocab != nil {
		slices.SortStableFunc(entries, func(a, b core.LexiconEntry) int {
			return cmp.Compare(a.Word, b.Word)
		})
	}
	return entries, nil
}
