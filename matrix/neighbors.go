package matrix

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/poiesic/lexorient/core"
)

const (
	// DefaultCacheSize is the number of rankings a NeighborFinder memoises.
	DefaultCacheSize = 1024
)

type cacheKey struct {
	term  string
	limit int
}

// NeighborFinder ranks matrix rows by distance to a query row.
// It is safe for concurrent use.
type NeighborFinder struct {
	matrix      *Matrix
	distance    DistanceFunc
	excludeSelf bool
	cache       *lru.Cache[cacheKey, []core.Neighbor]
	cacheSize   int
	logger      *slog.Logger
}

// FinderOption configures a NeighborFinder.
type FinderOption func(*NeighborFinder) error

// WithDistance sets the distance function. Default is Cosine.
func WithDistance(fn DistanceFunc) FinderOption {
	return func(f *NeighborFinder) error {
		if fn == nil {
			fn = Cosine
		}
		f.distance = fn
		return nil
	}
}

// WithExcludeSelf drops the query term from its own ranking.
// By default the query term is included, normally at distance 0.
func WithExcludeSelf() FinderOption {
	return func(f *NeighborFinder) error {
		f.excludeSelf = true
		return nil
	}
}

// WithCacheSize sets how many rankings are memoised. Zero disables caching.
func WithCacheSize(size int) FinderOption {
	return func(f *NeighborFinder) error {
		if size < 0 {
			return fmt.Errorf("cache size must not be negative, got %d", size)
		}
		f.cacheSize = size
		return nil
	}
}

// WithFinderLogger sets a custom logger.
// Default is slog.Default().
func WithFinderLogger(logger *slog.Logger) FinderOption {
	return func(f *NeighborFinder) error {
		if logger == nil {
			logger = slog.Default()
		}
		f.logger = logger
		return nil
	}
}

// NewNeighborFinder creates a finder over m.
func NewNeighborFinder(m *Matrix, opts ...FinderOption) (*NeighborFinder, error) {
	if m == nil {
		return nil, fmt.Errorf("matrix required")
	}

	f := &NeighborFinder{
		matrix:    m,
		distance:  Cosine,
		cacheSize: DefaultCacheSize,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}

	if f.cacheSize > 0 {
		cache, err := lru.New[cacheKey, []core.Neighbor](f.cacheSize)
		if err != nil {
			return nil, err
		}
		f.cache = cache
	}
	f.logger = f.logger.With("component", "neighbor-finder")
	return f, nil
}

// Has reports whether the term has a row in the underlying matrix.
func (f *NeighborFinder) Has(term string) bool {
	return f.matrix.Has(term)
}

// Neighbors returns up to limit terms nearest to term, nearest first.
// Ties are broken by term so rankings are deterministic. A limit of zero
// or less returns the full ranking.
func (f *NeighborFinder) Neighbors(_ context.Context, term string, limit int) ([]core.Neighbor, error) {
	qi, ok := f.matrix.index[term]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTermNotFound, term)
	}

	key := cacheKey{term: term, limit: limit}
	if f.cache != nil {
		if cached, ok := f.cache.Get(key); ok {
			return slices.Clone(cached), nil
		}
	}

	query := f.matrix.rowView(qi)
	ranked := make([]core.Neighbor, 0, len(f.matrix.terms))
	for i, candidate := range f.matrix.terms {
		if f.excludeSelf && i == qi {
			continue
		}
		ranked = append(ranked, core.Neighbor{
			Term:     candidate,
			Distance: f.distance(query, f.matrix.rowView(i)),
		})
	}
	slices.SortFunc(ranked, compareNeighbors)

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	f.logger.Debug("ranked neighbors", "term", term, "returned", len(ranked))

	if f.cache != nil {
		f.cache.Add(key, slices.Clone(ranked))
	}
	return ranked, nil
}

// compareNeighbors orders by ascending distance, NaN last, then by term.
func compareNeighbors(a, b core.Neighbor) int {
	aNaN, bNaN := math.IsNaN(a.Distance), math.IsNaN(b.Distance)
	switch {
	case aNaN && !bNaN:
		return 1
	case bNaN && !aNaN:
		return -1
	case !aNaN && a.Distance < b.Distance:
		return -1
	case !aNaN && a.Distance > b.Distance:
		return 1
	}
	return strings.Compare(a.Term, b.Term)
}
