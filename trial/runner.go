package trial

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/poiesic/lexorient/bootstrap"
	"github.com/poiesic/lexorient/core"
	"github.com/poiesic/lexorient/lexicon"
	"github.com/poiesic/lexorient/matrix"
	"github.com/poiesic/lexorient/orientation"
)

// MatrixSource loads a data matrix by identifier.
// storage.MatrixRepository satisfies it.
type MatrixSource interface {
	LoadMatrix(ctx context.Context, id string) (*matrix.Matrix, error)
}

// FileSource loads matrices from CSV files under a data directory.
type FileSource struct {
	DataHome string
}

// LoadMatrix resolves id with ResolveMatrixPath and reads the CSV file.
func (s FileSource) LoadMatrix(_ context.Context, id string) (*matrix.Matrix, error) {
	path, err := ResolveMatrixPath(s.DataHome, id)
	if err != nil {
		return nil, err
	}
	return matrix.LoadCSV(path)
}

// Report is the outcome of one trial.
type Report struct {
	Options *Options

	// Seeds1 and Seeds2 are the seed sets actually scored against,
	// after expansion if it is enabled.
	Seeds1 []string
	Seeds2 []string

	// Scores is the full semantic orientation ranking, highest first.
	Scores []core.ScoredTerm

	// Results holds one correlation per lexicon dimension.
	Results []lexicon.Result
}

// Runner executes trials.
type Runner struct {
	config   *Config
	source   MatrixSource
	distance matrix.DistanceFunc
	metric   lexicon.Metric
	scorer   *orientation.Scorer
	logger   *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner) error

// WithMatrixSource sets where matrices are loaded from.
// Default is a FileSource over the config's DataHome.
func WithMatrixSource(source MatrixSource) Option {
	return func(r *Runner) error {
		if source == nil {
			return fmt.Errorf("%w: matrix source is nil", ErrInvalidConfig)
		}
		r.source = source
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRunner creates a Runner. Call Release when done.
func NewRunner(cfg *Config, opts ...Option) (*Runner, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Both were checked by Validate.
	distance, _ := matrix.DistanceByName(cfg.Distance)
	metric, _ := lexicon.ParseMetric(cfg.Metric)

	r := &Runner{
		config:   cfg,
		source:   FileSource{DataHome: cfg.DataHome},
		distance: distance,
		metric:   metric,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	r.logger = r.logger.With("component", "trial")

	scorerOpts := []orientation.Option{
		orientation.WithDistance(distance),
		orientation.WithLogger(r.logger),
	}
	if cfg.PoolSize > 0 {
		scorerOpts = append(scorerOpts, orientation.WithPoolSize(cfg.PoolSize))
	}
	scorer, err := orientation.NewScorer(scorerOpts...)
	if err != nil {
		return nil, err
	}
	r.scorer = scorer

	return r, nil
}

// Release releases the scoring worker pool.
func (r *Runner) Release() {
	r.scorer.Release()
}

// Run executes one trial and returns its report. Nothing is written.
func (r *Runner) Run(ctx context.Context, opts *Options) (*Report, error) {
	if opts == nil {
		return nil, fmt.Errorf("%w: options are nil", ErrInvalidOptions)
	}
	r.logger.Info("starting trial", "seeds1", opts.Seeds1, "seeds2", opts.Seeds2, "matrix", opts.Matrix)

	raw, err := r.source.LoadMatrix(ctx, opts.Matrix)
	if err != nil {
		return nil, fmt.Errorf("loading matrix %q: %w", opts.Matrix, err)
	}
	weighted := matrix.PPMI(raw)

	seeds1, seeds2 := opts.Seeds1, opts.Seeds2
	if r.config.Bootstrap.Enabled {
		seeds1, seeds2, err = r.expandSeeds(ctx, weighted, seeds1, seeds2)
		if err != nil {
			return nil, err
		}
	}

	scores, err := r.scorer.Score(ctx, weighted, seeds1, seeds2)
	if err != nil {
		return nil, err
	}

	lex, err := lexicon.LoadWarriner(filepath.Join(r.config.DataHome, r.config.LexiconFile), weighted)
	if err != nil {
		return nil, err
	}
	results, err := lexicon.EvaluateAll(lex, scores, r.metric)
	if err != nil {
		return nil, err
	}
	for _, res := range results {
		r.logger.Info("evaluated", "dimension", res.Dimension, "r", res.R, "words", res.N)
	}

	return &Report{
		Options: opts,
		Seeds1:  seeds1,
		Seeds2:  seeds2,
		Scores:  scores,
		Results: results,
	}, nil
}

// RunFile reads the options file at path, runs the trial and appends the
// results and note to the same file.
func (r *Runner) RunFile(ctx context.Context, path, note string) (*Report, error) {
	opts, err := ReadOptionsFile(path)
	if err != nil {
		return nil, err
	}
	report, err := r.Run(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := AppendResults(path, report.Results, note); err != nil {
		return nil, fmt.Errorf("appending results to %s: %w", path, err)
	}
	return report, nil
}

func (r *Runner) expandSeeds(ctx context.Context, m *matrix.Matrix, seeds1, seeds2 []string) ([]string, []string, error) {
	finder, err := matrix.NewNeighborFinder(m,
		matrix.WithDistance(r.distance),
		matrix.WithFinderLogger(r.logger))
	if err != nil {
		return nil, nil, err
	}
	expander, err := bootstrap.NewExpander(m, finder, bootstrap.WithLogger(r.logger))
	if err != nil {
		return nil, nil, err
	}

	grown := make([][]string, 2)
	for i, seeds := range [][]string{seeds1, seeds2} {
		label := fmt.Sprintf("seeds%d", i+1)
		params, err := r.config.BootstrapParams(label)
		if err != nil {
			return nil, nil, err
		}
		scores, _, err := expander.Expand(ctx, seeds, params)
		if err != nil {
			return nil, nil, fmt.Errorf("expanding %s: %w", label, err)
		}
		grown[i] = growSeeds(seeds, scores, r.config.Bootstrap.Keep)
		r.logger.Info("expanded seed set", "set", label, "seeds", grown[i])
	}
	return grown[0], grown[1], nil
}

// growSeeds returns seeds followed by the keep highest-scoring terms that
// are not already seeds.
func growSeeds(seeds []string, scores *bootstrap.ScoreMap, keep int) []string {
	out := append([]string(nil), seeds...)
	isSeed := make(map[string]bool, len(seeds))
	for _, s := range seeds {
		isSeed[s] = true
	}
	added := 0
	for _, st := range scores.Ranked() {
		if added >= keep {
			break
		}
		if isSeed[st.Term] {
			continue
		}
		out = append(out, st.Term)
		added++
	}
	return out
}
