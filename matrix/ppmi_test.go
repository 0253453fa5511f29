package matrix

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPPMI_Diagonal(t *testing.T) {
	m, err := New([]string{"a", "b"}, []string{"x", "y"}, []float64{
		1, 0,
		0, 1,
	})
	require.NoError(t, err)

	p := PPMI(m)
	a, _ := p.Row("a")
	b, _ := p.Row("b")

	assert.InDelta(t, math.Log(2), a[0], 1e-12)
	assert.Equal(t, 0.0, a[1], "log(0) must become 0")
	assert.Equal(t, 0.0, b[0])
	assert.InDelta(t, math.Log(2), b[1], 1e-12)
}

func TestPPMI_ClipsNegative(t *testing.T) {
	m, err := New([]string{"a", "b"}, []string{"x", "y"}, []float64{
		2, 1,
		1, 2,
	})
	require.NoError(t, err)

	p := PPMI(m)
	a, _ := p.Row("a")

	assert.InDelta(t, math.Log(2.0/1.5), a[0], 1e-12)
	assert.Equal(t, 0.0, a[1], "negative association must be clipped")
}

func TestPPMI_EmptyRowAndColumn(t *testing.T) {
	m, err := New([]string{"a", "b"}, []string{"x", "y"}, []float64{
		3, 0,
		0, 0,
	})
	require.NoError(t, err)

	p := PPMI(m)
	for _, term := range p.Terms() {
		row, _ := p.Row(term)
		for _, v := range row {
			assert.False(t, math.IsNaN(v), "no NaN for %s", term)
			assert.False(t, math.IsInf(v, 0), "no Inf for %s", term)
			assert.GreaterOrEqual(t, v, 0.0)
		}
	}
}

func TestPPMI_DoesNotModifyInput(t *testing.T) {
	m, err := New([]string{"a"}, []string{"x", "y"}, []float64{5, 7})
	require.NoError(t, err)

	_ = PPMI(m)
	row, _ := m.Row("a")
	assert.Equal(t, []float64{5, 7}, row)
}

func TestPPMI_AllZero(t *testing.T) {
	m, err := New([]string{"a"}, []string{"x"}, []float64{0})
	require.NoError(t, err)

	p := PPMI(m)
	row, _ := p.Row("a")
	assert.Equal(t, []float64{0}, row)
}
