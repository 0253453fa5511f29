package vectorize

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/poiesic/lexorient/ai/mock"
	"github.com/poiesic/lexorient/core"
	"github.com/poiesic/lexorient/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeVector(t *testing.T) {
	tests := []struct {
		name     string
		input    []float32
		expected []float64
	}{
		{"unit vector remains unchanged", []float32{1, 0, 0}, []float64{1, 0, 0}},
		{"scale non-unit vector", []float32{3, 4}, []float64{0.6, 0.8}},
		{"negative values", []float32{-1, 1}, []float64{-1 / math.Sqrt2, 1 / math.Sqrt2}},
		{"zero vector stays zero", []float32{0, 0}, []float64{0, 0}},
		{"empty", []float32{}, []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeVector(tt.input)
			require.Len(t, result, len(tt.expected))
			for i := range result {
				assert.InDelta(t, tt.expected[i], result[i], 1e-6, "element %d", i)
			}
		})
	}
}

func TestReadVocabulary(t *testing.T) {
	input := "good\n\n# comment\nbad 120\n  nice  \ngood\n"
	terms, err := ReadVocabulary(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"good", "bad", "nice"}, terms)
}

func TestTermIterator(t *testing.T) {
	it := NewTermIterator([]string{"a", "b", "c", "d", "e"}, 2)

	var offsets []int
	var batches [][]string
	err := it.ForEach(context.Background(), func(offset int, batch []string) error {
		offsets = append(offsets, offset)
		batches = append(batches, batch)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 4}, offsets)
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}, {"e"}}, batches)
}

func TestTermIterator_StopsOnError(t *testing.T) {
	it := NewTermIterator([]string{"a", "b", "c"}, 1)
	calls := 0
	boom := errors.New("boom")
	err := it.ForEach(context.Background(), func(int, []string) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestTermIterator_DefaultBatchSize(t *testing.T) {
	it := NewTermIterator(nil, 0)
	assert.Equal(t, DefaultBatchSize, it.batchSize)
}

func newTestBuilder(t *testing.T, embedder *mock.MockEmbedder, config *Config) (*Builder, *badger.MatrixRepository) {
	t.Helper()
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	b, err := NewBuilder(repo, embedder, config, nil)
	require.NoError(t, err)
	return b, repo
}

func TestNewBuilder_RequiresDeps(t *testing.T) {
	_, err := NewBuilder(nil, mock.NewMockEmbedder(), nil, nil)
	assert.ErrorIs(t, err, ErrRepositoryRequired)

	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()
	_, err = NewBuilder(repo, nil, nil, nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}

func TestBuilder_Run(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.Dimensions = 8
	config := &Config{BatchSize: 2, ReportInterval: 1, MaxRetries: 1, RetryDelay: time.Millisecond}
	b, repo := newTestBuilder(t, embedder, config)

	terms := []string{"good", "bad", "nice", "awful", "table"}
	manifest, err := b.Run(context.Background(), "embeddings", terms)
	require.NoError(t, err)
	assert.Equal(t, 5, manifest.Rows)
	assert.Len(t, manifest.Columns, 8)
	assert.Equal(t, "d0", manifest.Columns[0])
	assert.Equal(t, 3, embedder.CallCount(), "five terms in batches of two")

	m, err := repo.LoadMatrix(context.Background(), "embeddings")
	require.NoError(t, err)
	assert.Equal(t, terms, m.Terms())

	row, ok := m.Row("nice")
	require.True(t, ok)
	var sum float64
	for _, v := range row {
		sum += v * v
	}
	assert.InDelta(t, 1.0, sum, 1e-6)
}

func TestBuilder_RetriesTransientFailures(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.Dimensions = 4
	failures := 1
	embedder.EmbedTextsFunc = func(_ context.Context, texts []string) ([][]float32, error) {
		if failures > 0 {
			failures--
			return nil, errors.New("service unavailable")
		}
		out := make([][]float32, len(texts))
		for i := range texts {
			out[i] = []float32{1, float32(i), 0, 0}
		}
		return out, nil
	}
	config := &Config{BatchSize: 10, ReportInterval: 10, MaxRetries: 3, RetryDelay: time.Millisecond}
	b, _ := newTestBuilder(t, embedder, config)

	m, err := b.Build(context.Background(), []string{"good", "bad"})
	require.NoError(t, err)
	rows, cols := m.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 4, cols)
	assert.Equal(t, 2, embedder.CallCount())
}

func TestBuilder_Errors(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	config := &Config{BatchSize: 10, ReportInterval: 10, MaxRetries: 1, RetryDelay: time.Millisecond}
	b, _ := newTestBuilder(t, embedder, config)
	ctx := context.Background()

	_, err := b.Build(ctx, nil)
	assert.ErrorIs(t, err, ErrEmptyVocabulary)

	_, err = b.Run(ctx, "", []string{"good"})
	assert.ErrorIs(t, err, core.ErrEmptyMatrixName)

	embedder.EmbedTextsFunc = func(_ context.Context, texts []string) ([][]float32, error) {
		return [][]float32{{1, 0}}, nil
	}
	_, err = b.Build(ctx, []string{"good", "bad"})
	assert.ErrorIs(t, err, ErrEmbeddingMismatch)

	embedder.EmbedTextsFunc = func(_ context.Context, texts []string) ([][]float32, error) {
		return [][]float32{{1, 0}, {1, 0, 0}}, nil
	}
	_, err = b.Build(ctx, []string{"good", "bad"})
	assert.ErrorIs(t, err, ErrEmbeddingMismatch)
}
