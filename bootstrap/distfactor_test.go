package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedules(t *testing.T) {
	tests := []struct {
		name   string
		factor DistFactor
		want   []float64
	}{
		{"constant", Constant(2), []float64{2, 2, 2}},
		{"geometric", Geometric(1, 0.5), []float64{1, 0.5, 0.25}},
		{"harmonic", Harmonic(1), []float64{1, 0.5, 1.0 / 3}},
		{"table", Table(3, 2, 1), []float64{3, 2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for step, want := range tt.want {
				got, err := tt.factor(step)
				require.NoError(t, err)
				assert.InDelta(t, want, got, 1e-12, "step %d", step)
			}
		})
	}
}

func TestTable_OutOfRange(t *testing.T) {
	factor := Table(1, 2)

	_, err := factor(2)
	assert.ErrorIs(t, err, ErrStepOutOfRange)

	_, err = factor(-1)
	assert.ErrorIs(t, err, ErrStepOutOfRange)
}

func TestTable_CopiesWeights(t *testing.T) {
	weights := []float64{1, 2}
	factor := Table(weights...)
	weights[0] = 99

	got, err := factor(0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)
}

func TestParseDistFactor(t *testing.T) {
	tests := []struct {
		spec string
		step int
		want float64
	}{
		{"constant", 4, 1},
		{"constant:0.25", 4, 0.25},
		{"harmonic", 1, 0.5},
		{"harmonic:3", 2, 1},
		{"geometric:2,0.5", 2, 0.5},
		{"table:1, 0.5, 0.25", 2, 0.25},
		{" Constant:2 ", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			factor, err := ParseDistFactor(tt.spec)
			require.NoError(t, err)
			got, err := factor(tt.step)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestParseDistFactor_Errors(t *testing.T) {
	for _, spec := range []string{
		"",
		"linear:1",
		"constant:1,2",
		"geometric:1",
		"table",
		"constant:abc",
	} {
		t.Run(spec, func(t *testing.T) {
			_, err := ParseDistFactor(spec)
			assert.ErrorIs(t, err, ErrUnknownSchedule)
		})
	}
}
