package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newPolarityMatrix builds a small two-column matrix where "good" and "bad"
// sit on opposite axes.
func newPolarityMatrix(t *testing.T) *Matrix {
	t.Helper()
	m, err := New(
		[]string{"good", "great", "nice", "bad"},
		[]string{"c1", "c2"},
		[]float64{
			1.0, 0.0,
			0.9, 0.1,
			0.8, 0.2,
			0.0, 1.0,
		})
	require.NoError(t, err)
	return m
}

func TestNew(t *testing.T) {
	m := newPolarityMatrix(t)

	rows, cols := m.Dims()
	assert.Equal(t, 4, rows)
	assert.Equal(t, 2, cols)
	assert.Equal(t, []string{"good", "great", "nice", "bad"}, m.Terms())
	assert.Equal(t, []string{"c1", "c2"}, m.Columns())

	assert.True(t, m.Has("great"))
	assert.False(t, m.Has("terrible"))

	row, ok := m.Row("nice")
	require.True(t, ok)
	assert.Equal(t, []float64{0.8, 0.2}, row)

	_, ok = m.Row("terrible")
	assert.False(t, ok)
}

func TestNew_RowIsCopy(t *testing.T) {
	m := newPolarityMatrix(t)

	row, _ := m.Row("good")
	row[0] = 42

	again, _ := m.Row("good")
	assert.Equal(t, 1.0, again[0])
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name    string
		terms   []string
		columns []string
		values  []float64
		wantErr error
	}{
		{"no columns", []string{"a"}, nil, nil, ErrNoColumns},
		{"shape mismatch", []string{"a", "b"}, []string{"c"}, []float64{1}, ErrShapeMismatch},
		{"duplicate term", []string{"a", "a"}, []string{"c"}, []float64{1, 2}, ErrDuplicateTerm},
		{"empty term", []string{""}, []string{"c"}, []float64{1}, ErrEmptyTerm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.terms, tt.columns, tt.values)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNew_Empty(t *testing.T) {
	m, err := New(nil, []string{"c"}, nil)
	require.NoError(t, err)

	rows, cols := m.Dims()
	assert.Equal(t, 0, rows)
	assert.Equal(t, 1, cols)
	assert.False(t, m.Has("anything"))
}

func TestFromRows(t *testing.T) {
	m, err := FromRows([]string{"b", "a"}, []string{"x", "y"}, map[string][]float64{
		"a": {1, 2},
		"b": {3, 4},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, m.Terms())

	row, _ := m.Row("b")
	assert.Equal(t, []float64{3, 4}, row)

	_, err = FromRows([]string{"a"}, []string{"x", "y"}, map[string][]float64{"a": {1}})
	assert.ErrorIs(t, err, ErrRaggedRow)

	_, err = FromRows([]string{"missing"}, []string{"x"}, map[string][]float64{})
	assert.ErrorIs(t, err, ErrTermNotFound)
}

func TestRestrict(t *testing.T) {
	m := newPolarityMatrix(t)

	sub := m.Restrict([]string{"bad", "missing", "good", "bad"})
	assert.Equal(t, []string{"bad", "good"}, sub.Terms())

	row, ok := sub.Row("bad")
	require.True(t, ok)
	assert.Equal(t, []float64{0.0, 1.0}, row)
}
