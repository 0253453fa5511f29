package trial

import (
	"fmt"
	"os"
	"runtime"

	"github.com/poiesic/lexorient/bootstrap"
	"github.com/poiesic/lexorient/lexicon"
	"github.com/poiesic/lexorient/matrix"
	"gopkg.in/yaml.v3"
)

// BootstrapConfig controls seed set expansion before scoring.
type BootstrapConfig struct {
	// Enabled turns expansion on. When false the seed sets are used as given.
	Enabled bool `yaml:"enabled"`

	// DistFactor is a schedule accepted by bootstrap.ParseDistFactor.
	DistFactor string `yaml:"dist_factor"`

	Laplace     float64 `yaml:"laplace"`
	Steps       int     `yaml:"steps"`
	Additions   int     `yaml:"additions"`
	FrontierCap int     `yaml:"frontier_cap"`

	// Keep is how many discovered terms are added to each seed set.
	Keep int `yaml:"keep"`
}

// Config holds the settings shared by every trial of an experiment.
type Config struct {
	// DataHome is the directory holding matrices and the ratings file.
	DataHome string `yaml:"data_home"`

	// LexiconFile is the ratings file name under DataHome.
	LexiconFile string `yaml:"lexicon_file"`

	// Distance is "cosine", "euclidean" or "jaccard".
	Distance string `yaml:"distance"`

	// Metric is "pearsonr" or "spearmanr".
	Metric string `yaml:"metric"`

	// PoolSize is the number of workers scoring rows.
	PoolSize int `yaml:"pool_size"`

	Bootstrap BootstrapConfig `yaml:"bootstrap"`
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithDataHome sets the data directory.
func WithDataHome(dir string) ConfigOption {
	return func(c *Config) {
		c.DataHome = dir
	}
}

// WithDistance sets the distance function name.
func WithDistance(name string) ConfigOption {
	return func(c *Config) {
		c.Distance = name
	}
}

// WithMetric sets the correlation metric name.
func WithMetric(name string) ConfigOption {
	return func(c *Config) {
		c.Metric = name
	}
}

// WithPoolSize sets the scoring worker pool size.
func WithPoolSize(size int) ConfigOption {
	return func(c *Config) {
		c.PoolSize = size
	}
}

// WithBootstrap enables seed expansion with the given settings.
func WithBootstrap(b BootstrapConfig) ConfigOption {
	return func(c *Config) {
		c.Bootstrap = b
	}
}

// DefaultConfig returns a Config that reads from ./vsmdata, scores with
// cosine distance, reports Pearson correlations and does not bootstrap.
func DefaultConfig() *Config {
	return &Config{
		DataHome:    "vsmdata",
		LexiconFile: lexicon.WarrinerFileName,
		Distance:    "cosine",
		Metric:      string(lexicon.Pearson),
		PoolSize:    runtime.NumCPU(),
		Bootstrap: BootstrapConfig{
			Enabled:     false,
			DistFactor:  "constant:1",
			Laplace:     bootstrap.DefaultLaplace,
			Steps:       3,
			Additions:   10,
			FrontierCap: bootstrap.DefaultFrontierCap,
			Keep:        10,
		},
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// LoadConfig reads a YAML config file. Fields missing from the file keep
// their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that all settings are usable.
func (c *Config) Validate() error {
	if c.DataHome == "" {
		return fmt.Errorf("%w: data_home is empty", ErrInvalidConfig)
	}
	if c.LexiconFile == "" {
		return fmt.Errorf("%w: lexicon_file is empty", ErrInvalidConfig)
	}
	if _, err := matrix.DistanceByName(c.Distance); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := lexicon.ParseMetric(c.Metric); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.PoolSize < 0 {
		return fmt.Errorf("%w: pool_size must not be negative, got %d", ErrInvalidConfig, c.PoolSize)
	}
	if c.Bootstrap.Enabled {
		if _, err := c.BootstrapParams(""); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		if c.Bootstrap.Keep < 0 {
			return fmt.Errorf("%w: bootstrap.keep must not be negative, got %d", ErrInvalidConfig, c.Bootstrap.Keep)
		}
	}
	return nil
}

// BootstrapParams converts the bootstrap settings to expansion parameters.
func (c *Config) BootstrapParams(label string) (bootstrap.Params, error) {
	factor, err := bootstrap.ParseDistFactor(c.Bootstrap.DistFactor)
	if err != nil {
		return bootstrap.Params{}, err
	}
	params := bootstrap.Params{
		Label:       label,
		DistFactor:  factor,
		Laplace:     c.Bootstrap.Laplace,
		Steps:       c.Bootstrap.Steps,
		Additions:   c.Bootstrap.Additions,
		FrontierCap: c.Bootstrap.FrontierCap,
	}
	if err := params.Validate(); err != nil {
		return bootstrap.Params{}, err
	}
	return params, nil
}
