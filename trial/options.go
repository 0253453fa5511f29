package trial

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/poiesic/lexorient/lexicon"
)

// Well-known matrix identifiers and the files they name.
var knownMatrices = map[string]string{
	"imdb20": "imdb_window20-flat.csv.gz",
	"imdb5":  "imdb_window5-scaled.csv.gz",
}

// Options is the content of an options file.
type Options struct {
	Seeds1 []string // Negative seed set
	Seeds2 []string // Positive seed set
	Matrix string   // Data matrix identifier
}

// ReadOptionsFile reads an options file. See ParseOptions.
func ReadOptionsFile(path string) (*Options, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	opts, err := ParseOptions(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return opts, nil
}

// ParseOptions reads the first three lines of an options file: the
// whitespace-separated seeds1 words, the seeds2 words and the matrix
// identifier. Anything after the third line is the result log and is ignored.
func ParseOptions(r io.Reader) (*Options, error) {
	scanner := bufio.NewScanner(r)
	var lines []string
	for len(lines) < 3 && scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lines) < 3 {
		return nil, fmt.Errorf("%w: want 3 lines, got %d", ErrInvalidOptions, len(lines))
	}

	opts := &Options{
		Seeds1: strings.Fields(lines[0]),
		Seeds2: strings.Fields(lines[1]),
		Matrix: strings.TrimSpace(lines[2]),
	}
	switch {
	case len(opts.Seeds1) == 0:
		return nil, fmt.Errorf("%w: seeds1 line is empty", ErrInvalidOptions)
	case len(opts.Seeds2) == 0:
		return nil, fmt.Errorf("%w: seeds2 line is empty", ErrInvalidOptions)
	case opts.Matrix == "":
		return nil, fmt.Errorf("%w: matrix line is empty", ErrInvalidOptions)
	}
	return opts, nil
}

// ResolveMatrixPath maps a matrix identifier to a file under dataHome.
// "imdb20" and "imdb5" name the IMDB matrices; any other identifier is
// taken as a file name. The file must exist.
func ResolveMatrixPath(dataHome, id string) (string, error) {
	name, ok := knownMatrices[id]
	if !ok {
		name = id
	}
	path := filepath.Join(dataHome, name)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %q (looked for %s)", ErrUnknownMatrix, id, path)
		}
		return "", err
	}
	return path, nil
}

// FormatResults renders results as one log line:
// "Valence: pearsonr's r: 0.123 \tArousal: ... \tDominance: ...\n".
func FormatResults(results []lexicon.Result) string {
	var b strings.Builder
	for i, res := range results {
		if i > 0 {
			b.WriteString(" \t")
		}
		fmt.Fprintf(&b, "%s: %s", res.Dimension, res)
	}
	b.WriteString("\n")
	return b.String()
}

// AppendResults appends the formatted results and note to the options file.
// A non-empty note gets its own line. If the file does not end in a newline
// one is written first, so the header lines stay intact.
func AppendResults(path string, results []lexicon.Result, note string) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}

	var entry strings.Builder
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}
	if size := info.Size(); size > 0 {
		last := make([]byte, 1)
		if _, err := f.ReadAt(last, size-1); err != nil {
			f.Close()
			return err
		}
		if last[0] != '\n' {
			entry.WriteString("\n")
		}
	}

	entry.WriteString(FormatResults(results))
	if note = strings.TrimSpace(note); note != "" {
		entry.WriteString(note + "\n")
	}
	if _, err := f.Seek(0, io.SeekEnd); err != nil {
		f.Close()
		return err
	}
	if _, err := f.WriteString(entry.String()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
