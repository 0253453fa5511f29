package matrix

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// PPMI reweights a count matrix with positive pointwise mutual information.
//
// Each cell becomes log(observed / expected), where expected is
// rowTotal * colTotal / grandTotal. Cells whose ratio is zero or undefined
// (empty rows or columns) become 0, as do negative associations.
func PPMI(m *Matrix) *Matrix {
	rows, cols := m.Dims()
	out := &Matrix{
		terms:   m.terms,
		columns: m.columns,
		index:   m.index,
	}
	if rows == 0 {
		return out
	}

	rowTotals := make([]float64, rows)
	colTotals := make([]float64, cols)
	for i := 0; i < rows; i++ {
		row := m.rowView(i)
		rowTotals[i] = floats.Sum(row)
		floats.Add(colTotals, row)
	}
	total := floats.Sum(colTotals)

	out.data = mat.NewDense(rows, cols, nil)
	if total == 0 {
		return out
	}

	for i := 0; i < rows; i++ {
		src := m.rowView(i)
		dst := out.data.RawRowView(i)
		for j, observed := range src {
			expected := rowTotals[i] * colTotals[j] / total
			v := math.Log(observed / expected)
			if math.IsInf(v, 0) || math.IsNaN(v) || v < 0 {
				v = 0
			}
			dst[j] = v
		}
	}
	return out
}
