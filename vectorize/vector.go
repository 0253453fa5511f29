package vectorize

import "gonum.org/v1/gonum/floats"

// NormalizeVector widens v to float64 and scales it to unit length.
// A zero vector stays zero.
func NormalizeVector(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	if norm := floats.Norm(out, 2); norm > 0 {
		floats.Scale(1/norm, out)
	}
	return out
}
