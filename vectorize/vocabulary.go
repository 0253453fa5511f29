package vectorize

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"
)

const (
	// DefaultBatchSize is the default number of terms embedded per request.
	DefaultBatchSize = 100
)

// ReadVocabulary reads one term per line. Blank lines and lines starting
// with '#' are skipped; only the first whitespace-separated field of a line
// is used. Duplicates keep their first position.
func ReadVocabulary(r io.Reader) ([]string, error) {
	var terms []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		term := strings.Fields(line)[0]
		if seen[term] {
			continue
		}
		seen[term] = true
		terms = append(terms, term)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return terms, nil
}

// LoadVocabulary reads a vocabulary file. See ReadVocabulary.
func LoadVocabulary(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadVocabulary(f)
}

// TermIterator walks a vocabulary in fixed-size batches.
type TermIterator struct {
	terms     []string
	batchSize int
}

// NewTermIterator creates a new term iterator.
// batchSize: number of terms per batch (DefaultBatchSize if <= 0)
func NewTermIterator(terms []string, batchSize int) *TermIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &TermIterator{
		terms:     terms,
		batchSize: batchSize,
	}
}

// ForEach calls fn for each batch in order with the batch's offset.
// Iteration stops on the first error from fn.
// Context cancellation is checked between batches.
func (it *TermIterator) ForEach(ctx context.Context, fn func(offset int, batch []string) error) error {
	for start := 0; start < len(it.terms); start += it.batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := min(start+it.batchSize, len(it.terms))
		if err := fn(start, it.terms[start:end]); err != nil {
			return err
		}
	}
	return nil
}
