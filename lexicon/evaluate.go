package lexicon

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/poiesic/lexorient/core"
	"gonum.org/v1/gonum/stat"
)

// Metric names a correlation coefficient.
type Metric string

const (
	Pearson  Metric = "pearsonr"
	Spearman Metric = "spearmanr"
)

// ParseMetric resolves "pearson"/"pearsonr" and "spearman"/"spearmanr".
func ParseMetric(name string) (Metric, error) {
	switch name {
	case "", "pearson", string(Pearson):
		return Pearson, nil
	case "spearman", string(Spearman):
		return Spearman, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMetric, name)
}

// Result is one correlation between scores and a lexicon dimension.
type Result struct {
	Metric    Metric
	Dimension core.Dimension
	R         float64
	N         int // Number of shared words
}

// String formats the result as "pearsonr's r: 0.123".
func (r Result) String() string {
	return fmt.Sprintf("%s's r: %0.3f", r.Metric, r.R)
}

// Evaluate correlates scores with one dimension of the lexicon, over the
// words present in both.
func Evaluate(entries []core.LexiconEntry, scores []core.ScoredTerm, dim core.Dimension, metric Metric) (Result, error) {
	byTerm := make(map[string]float64, len(scores))
	for _, s := range scores {
		byTerm[s.Term] = s.Score
	}

	var xs, ys []float64
	for i := range entries {
		score, ok := byTerm[entries[i].Word]
		if !ok {
			continue
		}
		rating, ok := entries[i].Value(dim)
		if !ok {
			return Result{}, fmt.Errorf("%w: %q", ErrUnknownDimension, dim)
		}
		xs = append(xs, score)
		ys = append(ys, rating)
	}
	if len(xs) < 2 {
		return Result{}, fmt.Errorf("%w: %d", ErrTooFewPairs, len(xs))
	}

	var r float64
	switch metric {
	case Pearson:
		r = stat.Correlation(xs, ys, nil)
	case Spearman:
		r = stat.Correlation(rank(xs), rank(ys), nil)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}

	return Result{Metric: metric, Dimension: dim, R: r, N: len(xs)}, nil
}

// EvaluateAll evaluates every dimension in core.Dimensions.
func EvaluateAll(entries []core.LexiconEntry, scores []core.ScoredTerm, metric Metric) ([]Result, error) {
	results := make([]Result, 0, len(core.Dimensions))
	for _, dim := range core.Dimensions {
		res, err := Evaluate(entries, scores, dim, metric)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// rank returns 1-based ranks; tied values share their average rank.
func rank(xs []float64) []float64 {
	order := make([]int, len(xs))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(xs[a], xs[b])
	})

	ranks := make([]float64, len(xs))
	for i := 0; i < len(order); {
		j := i + 1
		for j < len(order) && xs[order[j]] == xs[order[i]] {
			j++
		}
		avg := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			ranks[order[k]] = avg
		}
		i = j
	}
	return ranks
}
