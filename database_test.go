package lexorient

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/lexorient/ai/mock"
	"github.com/poiesic/lexorient/bootstrap"
	"github.com/poiesic/lexorient/matrix"
	"github.com/poiesic/lexorient/orientation"
	"github.com/poiesic/lexorient/storage"
	"github.com/poiesic/lexorient/vectorize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const toyCSV = `,c1,c2,c3
good,1,9,1
great,1,8,2
nice,2,9,1
bad,9,1,1
awful,8,1,2
table,3,3,9
`

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase("", WithInMemory(), WithAIProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func writeToyCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "toy.csv")
	require.NoError(t, os.WriteFile(path, []byte(toyCSV), 0o644))
	return path
}

func TestNewDatabase(t *testing.T) {
	t.Run("create new database", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		db, err := NewDatabase(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, db)
		defer db.Close()

		assert.NotNil(t, db.MatrixRepository())
		assert.NotNil(t, db.backend)
		assert.NotNil(t, db.logger)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		db, err := NewDatabase(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, db)
	})
}

func TestDatabase_Close(t *testing.T) {
	db, err := NewDatabase(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, db)

	assert.NoError(t, db.Close())
}

func TestDatabase_ImportAndLoad(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	manifest, err := db.ImportCSV(ctx, "toy", writeToyCSV(t))
	require.NoError(t, err)
	assert.Equal(t, 6, manifest.Rows)

	raw, err := db.LoadMatrix(ctx, "toy", false)
	require.NoError(t, err)
	weighted, err := db.LoadMatrix(ctx, "toy", true)
	require.NoError(t, err)

	rawRow, _ := raw.Row("good")
	weightedRow, _ := weighted.Row("good")
	assert.Equal(t, []float64{1, 9, 1}, rawRow)
	assert.NotEqual(t, rawRow, weightedRow)

	_, err = db.LoadMatrix(ctx, "missing", false)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDatabase_NewExpander(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	_, err := db.ImportCSV(ctx, "toy", writeToyCSV(t))
	require.NoError(t, err)

	expander, err := db.NewExpander(ctx, "toy", false, matrix.Cosine, bootstrap.WithMonitor(bootstrap.NoopMonitor()))
	require.NoError(t, err)

	params := bootstrap.DefaultParams()
	params.Steps = 1
	params.Additions = 3
	scores, terms, err := expander.Expand(ctx, []string{"good"}, params)
	require.NoError(t, err)

	// good's three nearest rows by cosine are itself and the other positive words.
	assert.True(t, terms.Contains("great"))
	assert.True(t, terms.Contains("nice"))
	assert.False(t, terms.Contains("bad"))
	assert.InDelta(t, params.Laplace+1, scores.Get("great"), 1e-12)
}

func TestDatabase_NewScorer(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	_, err := db.ImportCSV(ctx, "toy", writeToyCSV(t))
	require.NoError(t, err)
	m, err := db.LoadMatrix(ctx, "toy", false)
	require.NoError(t, err)

	scorer, err := db.NewScorer(orientation.WithPoolSize(2))
	require.NoError(t, err)
	defer scorer.Release()

	scores, err := scorer.Score(ctx, m, []string{"bad"}, []string{"good"})
	require.NoError(t, err)
	assert.Equal(t, "good", scores[0].Term)
}

func TestDatabase_NewVectorizer(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	builder, err := db.NewVectorizer(vectorize.DefaultConfig(), nil)
	require.NoError(t, err)

	manifest, err := builder.Run(ctx, "embedded", []string{"good", "bad", "table"})
	require.NoError(t, err)
	assert.Equal(t, 3, manifest.Rows)
	assert.Len(t, manifest.Columns, mock.DefaultDimensions)

	has, err := db.MatrixRepository().HasTerm(ctx, "embedded", "table")
	require.NoError(t, err)
	assert.True(t, has)
}
