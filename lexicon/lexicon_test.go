package lexicon

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poiesic/lexorient/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ratingsCSV = `,Word,V.Mean.Sum,V.SD.Sum,A.Mean.Sum,A.SD.Sum,D.Mean.Sum
1,good,7.89,1.2,4.4,2.0,6.5
2,awful,2.0,1.1,5.9,2.4,3.2
3,table,5.22,1.0,2.7,1.9,5.0
4,abandon,2.84,1.5,3.73,2.4,3.32
`

type vocab map[string]bool

func (v vocab) Has(term string) bool { return v[term] }

func TestReadWarriner(t *testing.T) {
	entries, err := ReadWarriner(strings.NewReader(ratingsCSV), nil)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	// File order is kept without a vocabulary.
	assert.Equal(t, "good", entries[0].Word)
	assert.Equal(t, core.LexiconEntry{Word: "awful", Valence: 2.0, Arousal: 5.9, Dominance: 3.2}, entries[1])
}

func TestReadWarriner_RestrictedAndSorted(t *testing.T) {
	entries, err := ReadWarriner(strings.NewReader(ratingsCSV), vocab{"table": true, "abandon": true, "missing": true})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "abandon", entries[0].Word)
	assert.Equal(t, "table", entries[1].Word)
}

func TestReadWarriner_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrMissingColumn},
		{"missing dominance", ",Word,V.Mean.Sum,A.Mean.Sum\n1,good,1,2\n", ErrMissingColumn},
		{"bad number", ",Word,V.Mean.Sum,A.Mean.Sum,D.Mean.Sum\n1,good,x,2,3\n", ErrParseRating},
		{"short row", ",Word,V.Mean.Sum,A.Mean.Sum,D.Mean.Sum\n1,good,1\n", ErrMissingColumn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadWarriner(strings.NewReader(tt.input), nil)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadWarriner(t *testing.T) {
	path := filepath.Join(t.TempDir(), WarrinerFileName)
	require.NoError(t, os.WriteFile(path, []byte(ratingsCSV), 0o644))

	entries, err := LoadWarriner(path, nil)
	require.NoError(t, err)
	assert.Len(t, entries, 4)

	_, err = LoadWarriner(filepath.Join(t.TempDir(), "nope.csv"), nil)
	assert.Error(t, err)
}

func TestEvaluate_Pearson(t *testing.T) {
	entries := []core.LexiconEntry{
		{Word: "a", Valence: 1, Arousal: 3},
		{Word: "b", Valence: 2, Arousal: 2},
		{Word: "c", Valence: 3, Arousal: 1},
		{Word: "unscored", Valence: 100},
	}
	scores := []core.ScoredTerm{{Term: "a", Score: 10}, {Term: "b", Score: 20}, {Term: "c", Score: 30}, {Term: "extra", Score: -5}}

	res, err := Evaluate(entries, scores, core.DimensionValence, Pearson)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.R, 1e-12)
	assert.Equal(t, 3, res.N)
	assert.Equal(t, "pearsonr's r: 1.000", res.String())

	res, err = Evaluate(entries, scores, core.DimensionArousal, Pearson)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, res.R, 1e-12)
	assert.Equal(t, "pearsonr's r: -1.000", res.String())
}

func TestEvaluate_Spearman(t *testing.T) {
	entries := []core.LexiconEntry{
		{Word: "a", Valence: 1},
		{Word: "b", Valence: 2},
		{Word: "c", Valence: 3},
		{Word: "d", Valence: 4},
	}
	// Monotone but not linear: Spearman is exactly 1, Pearson is not.
	scores := []core.ScoredTerm{{Term: "a", Score: 1}, {Term: "b", Score: 2}, {Term: "c", Score: 3}, {Term: "d", Score: 100}}

	res, err := Evaluate(entries, scores, core.DimensionValence, Spearman)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.R, 1e-12)
	assert.Equal(t, "spearmanr's r: 1.000", res.String())

	pearson, err := Evaluate(entries, scores, core.DimensionValence, Pearson)
	require.NoError(t, err)
	assert.Less(t, pearson.R, 0.99)
}

func TestEvaluate_Errors(t *testing.T) {
	entries := []core.LexiconEntry{{Word: "a", Valence: 1}, {Word: "b", Valence: 2}}
	scores := []core.ScoredTerm{{Term: "a", Score: 1}, {Term: "b", Score: 2}}

	_, err := Evaluate(entries, scores[:1], core.DimensionValence, Pearson)
	assert.ErrorIs(t, err, ErrTooFewPairs)

	_, err = Evaluate(entries, scores, core.Dimension("Happiness"), Pearson)
	assert.ErrorIs(t, err, ErrUnknownDimension)

	_, err = Evaluate(entries, scores, core.DimensionValence, Metric("kendall"))
	assert.ErrorIs(t, err, ErrUnknownMetric)
}

func TestEvaluateAll(t *testing.T) {
	entries := []core.LexiconEntry{
		{Word: "a", Valence: 1, Arousal: 1, Dominance: 3},
		{Word: "b", Valence: 2, Arousal: 3, Dominance: 2},
		{Word: "c", Valence: 3, Arousal: 2, Dominance: 1},
	}
	scores := []core.ScoredTerm{{Term: "a", Score: 1}, {Term: "b", Score: 2}, {Term: "c", Score: 3}}

	results, err := EvaluateAll(entries, scores, Pearson)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, core.DimensionValence, results[0].Dimension)
	assert.Equal(t, core.DimensionArousal, results[1].Dimension)
	assert.Equal(t, core.DimensionDominance, results[2].Dimension)
	assert.InDelta(t, -1.0, results[2].R, 1e-12)
}

func TestRank_Ties(t *testing.T) {
	assert.Equal(t, []float64{1, 2.5, 2.5, 4}, rank([]float64{1, 5, 5, 9}))
	assert.Equal(t, []float64{3, 1, 2}, rank([]float64{30, 10, 20}))
}

func TestParseMetric(t *testing.T) {
	m, err := ParseMetric("spearman")
	require.NoError(t, err)
	assert.Equal(t, Spearman, m)

	m, err = ParseMetric("")
	require.NoError(t, err)
	assert.Equal(t, Pearson, m)

	_, err = ParseMetric("kendall")
	assert.ErrorIs(t, err, ErrUnknownMetric)
}
