package matrix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// DistanceFunc measures how far apart two equal-length vectors are.
// Smaller values mean more similar vectors.
type DistanceFunc func(a, b []float64) float64

// Cosine returns 1 minus the cosine similarity of a and b.
// A zero vector is at distance 1 from everything.
func Cosine(a, b []float64) float64 {
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - floats.Dot(a, b)/(na*nb)
}

// Euclidean returns the L2 distance between a and b.
func Euclidean(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// Jaccard returns the generalised Jaccard distance:
// 1 - sum(min(a,b)) / sum(max(a,b)).
func Jaccard(a, b []float64) float64 {
	var num, denom float64
	for i := range a {
		num += math.Min(a[i], b[i])
		denom += math.Max(a[i], b[i])
	}
	if denom == 0 {
		return 1
	}
	return 1 - num/denom
}

// DistanceByName resolves "cosine", "euclidean" or "jaccard".
func DistanceByName(name string) (DistanceFunc, error) {
	switch name {
	case "", "cosine":
		return Cosine, nil
	case "euclidean":
		return Euclidean, nil
	case "jaccard":
		return Jaccard, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDistance, name)
}
