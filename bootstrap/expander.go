package bootstrap

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/poiesic/lexorient/core"
)

const (
	// DefaultFrontierCap bounds how many terms a single round visits.
	DefaultFrontierCap = 100

	// DefaultLaplace is the default starting score.
	DefaultLaplace = 0.01
)

// Vocabulary answers membership questions about the matrix index.
type Vocabulary interface {
	Has(term string) bool
}

// NeighborLookup returns the nearest neighbors of a term, nearest first.
// Only the Term of each result is used by the expander.
type NeighborLookup interface {
	Neighbors(ctx context.Context, term string, limit int) ([]core.Neighbor, error)
}

// Params controls a single expansion run.
type Params struct {
	// Label tags diagnostics for this run. It has no effect on results.
	Label string

	// DistFactor gives the weight credited per neighbor in each round.
	DistFactor DistFactor

	// Laplace is the starting score of seeds and newly discovered terms.
	Laplace float64

	// Steps is the number of rounds to run.
	Steps int

	// Additions is the number of neighbors pulled per frontier term per round.
	Additions int

	// FrontierCap is the largest frontier a round will visit.
	// Zero means DefaultFrontierCap.
	FrontierCap int
}

// DefaultParams returns Params with a constant unit weight, three rounds and
// ten neighbors per term.
func DefaultParams() Params {
	return Params{
		DistFactor:  Constant(1),
		Laplace:     DefaultLaplace,
		Steps:       3,
		Additions:   10,
		FrontierCap: DefaultFrontierCap,
	}
}

// Validate checks that the parameters are usable.
func (p *Params) Validate() error {
	if p.DistFactor == nil {
		return fmt.Errorf("%w: distance factor is nil", ErrInvalidParams)
	}
	if math.IsNaN(p.Laplace) || math.IsInf(p.Laplace, 0) {
		return fmt.Errorf("%w: laplace must be finite, got %v", ErrInvalidParams, p.Laplace)
	}
	if p.Steps < 0 {
		return fmt.Errorf("%w: steps must not be negative, got %d", ErrInvalidParams, p.Steps)
	}
	if p.Additions < 1 {
		return fmt.Errorf("%w: additions must be at least 1, got %d", ErrInvalidParams, p.Additions)
	}
	if p.FrontierCap < 0 {
		return fmt.Errorf("%w: frontier cap must not be negative, got %d", ErrInvalidParams, p.FrontierCap)
	}
	return nil
}

// Expander grows seed sets over a nearest-neighbor relation.
type Expander struct {
	vocabulary Vocabulary
	lookup     NeighborLookup
	monitor    ExpansionMonitor
	logger     *slog.Logger
}

// Option configures an Expander.
type Option func(*Expander) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Expander) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithMonitor sets the monitor that observes each run.
// Default logs progress through the expander's logger.
func WithMonitor(monitor ExpansionMonitor) Option {
	return func(e *Expander) error {
		e.monitor = monitor
		return nil
	}
}

// NewExpander creates an expander over a vocabulary and a neighbor lookup,
// usually both backed by the same matrix.
func NewExpander(vocabulary Vocabulary, lookup NeighborLookup, opts ...Option) (*Expander, error) {
	if vocabulary == nil {
		return nil, ErrVocabularyRequired
	}
	if lookup == nil {
		return nil, ErrNeighborLookupRequired
	}

	e := &Expander{
		vocabulary: vocabulary,
		lookup:     lookup,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	if e.monitor == nil {
		e.monitor = NewLogMonitor(e.logger.With("component", "expander"))
	}
	return e, nil
}

// FirstSeedSet unwraps the first of several seed sets, failing fast when it
// is missing or malformed.
func FirstSeedSet(sets [][]string) ([]string, error) {
	if len(sets) == 0 {
		return nil, fmt.Errorf("%w: missing first seed set", core.ErrInvalidSeeds)
	}
	if err := core.ValidateSeeds(sets[0]); err != nil {
		return nil, err
	}
	return sets[0], nil
}

// Expand runs params.Steps rounds of expansion from seeds and returns the
// accumulated scores together with the set of every term scored.
//
// Seeds start at params.Laplace and are never credited for being seeds. In
// each round every frontier term present in the vocabulary contributes its
// params.Additions nearest neighbors; each neighbor gains DistFactor(step).
// Neighbors found in a round form the next round's frontier.
func (e *Expander) Expand(ctx context.Context, seeds []string, params Params) (*ScoreMap, TermSet, error) {
	if err := core.ValidateSeeds(seeds); err != nil {
		return nil, nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, nil, err
	}
	frontierCap := params.FrontierCap
	if frontierCap == 0 {
		frontierCap = DefaultFrontierCap
	}

	scores := NewScoreMap(params.Laplace)
	for _, seed := range seeds {
		scores.set(seed, params.Laplace)
	}
	e.monitor.Start(params.Label, scores.Terms())

	frontier := scores.Terms()
	for step := 0; step < params.Steps; step++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		weight, err := params.DistFactor(step)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: step %d: %w", ErrDistFactor, step, err)
		}
		if math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
			return nil, nil, fmt.Errorf("%w: step %d: weight %v is not a finite non-negative number", ErrDistFactor, step, weight)
		}

		visit := dedupe(capFrontier(frontier, scores, frontierCap))
		e.monitor.RoundStart(params.Label, step, visit)

		staged, err := e.round(ctx, params, step, weight, visit, scores)
		if err != nil {
			return nil, nil, err
		}

		e.monitor.RoundFinish(params.Label, step, scores.Len())
		frontier = staged
	}

	e.monitor.Finish(params.Label, scores)
	return scores, scores.TermSet(), nil
}

// round visits one frontier and returns the terms staged for the next round
// in first-discovered order.
func (e *Expander) round(ctx context.Context, params Params, step int, weight float64, visit []string, scores *ScoreMap) ([]string, error) {
	var staged []string
	isStaged := make(map[string]bool)

	for _, term := range visit {
		if !e.vocabulary.Has(term) {
			e.monitor.TermSkipped(params.Label, step, term)
			continue
		}

		neighbors, err := e.lookup.Neighbors(ctx, term, params.Additions)
		if err != nil {
			return nil, fmt.Errorf("%w: %q at step %d: %w", ErrNeighborLookup, term, step, err)
		}
		if len(neighbors) > params.Additions {
			neighbors = neighbors[:params.Additions]
		}

		for _, n := range neighbors {
			scores.add(n.Term, weight)
			if !isStaged[n.Term] {
				isStaged[n.Term] = true
				staged = append(staged, n.Term)
			}
		}
	}
	return staged, nil
}

// capFrontier keeps the limit highest-scoring terms. Ties keep frontier order.
func capFrontier(frontier []string, scores *ScoreMap, limit int) []string {
	if len(frontier) <= limit {
		return frontier
	}
	capped := slices.Clone(frontier)
	slices.SortStableFunc(capped, func(a, b string) int {
		return cmp.Compare(scores.Get(b), scores.Get(a))
	})
	return capped[:limit]
}

// dedupe drops repeated terms, keeping first occurrences.
func dedupe(terms []string) []string {
	seen := make(map[string]bool, len(terms))
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		if seen[term] {
			continue
		}
		seen[term] = true
		out = append(out, term)
	}
	return out
}
