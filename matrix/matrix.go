package matrix

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a term-indexed dense table of context feature values.
type Matrix struct {
	terms   []string
	columns []string
	index   map[string]int
	data    *mat.Dense // nil when the matrix has no rows
}

// New builds a Matrix from row labels, column labels and row-major values.
// The slices are copied.
func New(terms, columns []string, values []float64) (*Matrix, error) {
	if len(columns) == 0 {
		return nil, ErrNoColumns
	}
	if len(values) != len(terms)*len(columns) {
		return nil, fmt.Errorf("%w: %d rows x %d columns needs %d values, got %d",
			ErrShapeMismatch, len(terms), len(columns), len(terms)*len(columns), len(values))
	}

	index := make(map[string]int, len(terms))
	for i, term := range terms {
		if term == "" {
			return nil, fmt.Errorf("%w: row %d", ErrEmptyTerm, i)
		}
		if _, ok := index[term]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTerm, term)
		}
		index[term] = i
	}

	m := &Matrix{
		terms:   slices.Clone(terms),
		columns: slices.Clone(columns),
		index:   index,
	}
	if len(terms) > 0 {
		m.data = mat.NewDense(len(terms), len(columns), slices.Clone(values))
	}
	return m, nil
}

// FromRows builds a Matrix from a term -> row mapping, keeping the given term order.
func FromRows(terms, columns []string, rows map[string][]float64) (*Matrix, error) {
	values := make([]float64, 0, len(terms)*len(columns))
	for _, term := range terms {
		row, ok := rows[term]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrTermNotFound, term)
		}
		if len(row) != len(columns) {
			return nil, fmt.Errorf("%w: %q has %d values, want %d", ErrRaggedRow, term, len(row), len(columns))
		}
		values = append(values, row...)
	}
	return New(terms, columns, values)
}

// Has reports whether the term has a row.
func (m *Matrix) Has(term string) bool {
	_, ok := m.index[term]
	return ok
}

// Row returns a copy of the term's row.
func (m *Matrix) Row(term string) ([]float64, bool) {
	i, ok := m.index[term]
	if !ok {
		return nil, false
	}
	return mat.Row(nil, i, m.data), true
}

// RowView returns the term's row without copying. Callers must not modify it.
func (m *Matrix) RowView(term string) ([]float64, bool) {
	i, ok := m.index[term]
	if !ok {
		return nil, false
	}
	return m.rowView(i), true
}

// rowView returns the i-th row without copying. Callers must not modify it.
func (m *Matrix) rowView(i int) []float64 {
	return m.data.RawRowView(i)
}

// Terms returns the row labels in row order.
func (m *Matrix) Terms() []string {
	return slices.Clone(m.terms)
}

// Columns returns the column labels in column order.
func (m *Matrix) Columns() []string {
	return slices.Clone(m.columns)
}

// Dims returns the number of rows and columns.
func (m *Matrix) Dims() (rows, cols int) {
	return len(m.terms), len(m.columns)
}

// Restrict returns a new Matrix holding only the given terms that are present,
// in the order given.
func (m *Matrix) Restrict(terms []string) *Matrix {
	kept := make([]string, 0, len(terms))
	values := make([]float64, 0, len(terms)*len(m.columns))
	seen := make(map[string]bool, len(terms))
	for _, term := range terms {
		i, ok := m.index[term]
		if !ok || seen[term] {
			continue
		}
		seen[term] = true
		kept = append(kept, term)
		values = append(values, m.rowView(i)...)
	}
	// Inputs already passed validation in New; the error path is unreachable.
	out, _ := New(kept, m.columns, values)
	return out
}
