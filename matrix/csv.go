package matrix

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// ReadCSV reads a term-indexed matrix from CSV.
//
// The first record is the header; its first cell (the index name) is ignored
// and the remaining cells are the column labels. Every following record starts
// with the row label and carries one numeric value per column.
func ReadCSV(r io.Reader) (*Matrix, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // width is checked against the header below
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoColumns
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) < 2 {
		return nil, ErrNoColumns
	}
	columns := make([]string, len(header)-1)
	copy(columns, header[1:])

	var terms []string
	var values []float64
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
		if len(record) != len(header) {
			return nil, fmt.Errorf("%w: line %d has %d cells, want %d", ErrRaggedRow, line, len(record), len(header))
		}

		terms = append(terms, record[0])
		for col, cell := range record[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %q: %q", ErrParseValue, line, columns[col], cell)
			}
			values = append(values, v)
		}
	}

	return New(terms, columns, values)
}

// LoadCSV reads a matrix from a CSV file. Paths ending in ".gz" are
// decompressed on the fly.
func LoadCSV(path string) (*Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening gzip stream %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	m, err := ReadCSV(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// WriteCSV writes the matrix in the format accepted by ReadCSV.
func WriteCSV(w io.Writer, m *Matrix) error {
	writer := csv.NewWriter(w)
	header := append([]string{""}, m.columns...)
	if err := writer.Write(header); err != nil {
		return err
	}

	record := make([]string, len(header))
	for i, term := range m.terms {
		record[0] = term
		for j, v := range m.rowView(i) {
			record[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
