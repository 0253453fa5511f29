package badger

import (
	"encoding/binary"

	"github.com/poiesic/lexorient/core"
)

// Key prefixes for different data types
const (
	matrixManifestPrefix = "mxman"
	matrixRowPrefix      = "mxrow"
)

// makeMatrixManifestKey generates a key for a matrix manifest.
// Format: prefix:id
func makeMatrixManifestKey(id core.ID) []byte {
	prefix := matrixManifestPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialMatrixManifestKey generates the prefix shared by all manifests.
func makePartialMatrixManifestKey() []byte {
	return []byte(matrixManifestPrefix + ":")
}

// makeMatrixRowKey generates a composite key for one matrix row.
// Format: prefix:matrixID:generation:term
func makeMatrixRowKey(id core.ID, generation uint64, term string) []byte {
	partial := makeGenerationRowKey(id, generation)
	buf := make([]byte, len(partial)+len(term))
	offset := copy(buf, partial)
	copy(buf[offset:], term)
	return buf
}

// makeGenerationRowKey generates the prefix shared by one generation of a
// matrix's rows.
// Format: prefix:matrixID:generation:
func makeGenerationRowKey(id core.ID, generation uint64) []byte {
	partial := makePartialMatrixRowKey(id)
	buf := make([]byte, len(partial)+9)
	offset := copy(buf, partial)
	binary.BigEndian.PutUint64(buf[offset:], generation)
	buf[offset+8] = ':'
	return buf
}

// makePartialMatrixRowKey generates the prefix shared by all rows of a matrix,
// across generations.
// Format: prefix:matrixID:
func makePartialMatrixRowKey(id core.ID) []byte {
	prefix := matrixRowPrefix + ":"
	buf := make([]byte, len(prefix)+9)
	offset := copy(buf, prefix)
	// BigEndian so one matrix's rows are contiguous
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	buf[offset+8] = ':'
	return buf
}
