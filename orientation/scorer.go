package orientation

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/lexorient/core"
	"github.com/poiesic/lexorient/matrix"
)

const (
	// defaultChunkSize is the number of rows one pool task scores.
	defaultChunkSize = 256
)

// Scorer computes semantic orientation rankings.
type Scorer struct {
	pool      *ants.Pool
	distance  matrix.DistanceFunc
	chunkSize int
	logger    *slog.Logger
}

// Option configures a Scorer.
type Option func(*Scorer) error

// WithPoolSize sets the worker pool size for concurrent scoring.
// Default is runtime.NumCPU(), with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Scorer) error {
		if size < 1 {
			size = 1
		}

		if s.pool != nil {
			s.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		s.pool = pool
		return nil
	}
}

// WithDistance sets the distance function. Default is matrix.Cosine.
func WithDistance(fn matrix.DistanceFunc) Option {
	return func(s *Scorer) error {
		if fn == nil {
			fn = matrix.Cosine
		}
		s.distance = fn
		return nil
	}
}

// WithChunkSize sets how many rows each pool task scores.
func WithChunkSize(size int) Option {
	return func(s *Scorer) error {
		if size < 1 {
			return fmt.Errorf("chunk size must be positive, got %d", size)
		}
		s.chunkSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scorer) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewScorer creates a Scorer. Call Release when done.
func NewScorer(opts ...Option) (*Scorer, error) {
	poolSize := runtime.NumCPU()
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	s := &Scorer{
		pool:      pool,
		distance:  matrix.Cosine,
		chunkSize: defaultChunkSize,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(s); optErr != nil {
			s.Release()
			return nil, optErr
		}
	}
	s.logger = s.logger.With("component", "orientation")

	return s, nil
}

// Score ranks every row of m by semantic orientation, highest score first.
// Ties are broken by term. Seeds missing from m are dropped with a warning;
// if either side has no seed left, ErrNoSeedsInVocabulary is returned.
func (s *Scorer) Score(ctx context.Context, m *matrix.Matrix, negative, positive []string) ([]core.ScoredTerm, error) {
	if m == nil {
		return nil, ErrMatrixRequired
	}

	negRows, err := s.seedRows(m, negative, "seeds1")
	if err != nil {
		return nil, err
	}
	posRows, err := s.seedRows(m, positive, "seeds2")
	if err != nil {
		return nil, err
	}

	terms := m.Terms()
	scores := make([]core.ScoredTerm, len(terms))

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() { firstErr = err })
	}

	for start := 0; start < len(terms); start += s.chunkSize {
		end := min(start+s.chunkSize, len(terms))
		wg.Add(1)
		submitErr := s.pool.Submit(func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				fail(err)
				return
			}
			for i := start; i < end; i++ {
				row, _ := m.RowView(terms[i])
				scores[i] = core.ScoredTerm{
					Term:  terms[i],
					Score: s.sumDistance(row, negRows) - s.sumDistance(row, posRows),
				}
			}
		})
		if submitErr != nil {
			wg.Done()
			fail(submitErr)
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	slices.SortStableFunc(scores, func(a, b core.ScoredTerm) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Term, b.Term)
	})

	s.logger.Debug("scored vocabulary", "rows", len(scores),
		"seeds1", len(negRows), "seeds2", len(posRows))
	return scores, nil
}

// Release releases the worker pool.
// The scorer should not be used after calling Release.
func (s *Scorer) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}

func (s *Scorer) seedRows(m *matrix.Matrix, seeds []string, name string) ([][]float64, error) {
	kept, dropped := FilterSeeds(seeds, m)
	for _, w := range dropped {
		s.logger.Warn("seed not in vocabulary", "seed", w, "set", name)
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSeedsInVocabulary, name)
	}

	rows := make([][]float64, len(kept))
	for i, w := range kept {
		rows[i], _ = m.RowView(w)
	}
	return rows, nil
}

func (s *Scorer) sumDistance(row []float64, seeds [][]float64) float64 {
	var sum float64
	for _, seed := range seeds {
		sum += s.distance(row, seed)
	}
	return sum
}
