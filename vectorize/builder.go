// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package vectorize

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/lexorient/ai"
	"github.com/poiesic/lexorient/core"
	"github.com/poiesic/lexorient/matrix"
	"github.com/poiesic/lexorient/storage"
)

// Config holds configuration for building an embedding matrix.
type Config struct {
	// BatchSize is the number of terms sent per embedding request
	BatchSize int

	// ReportInterval is how often to report progress (number of terms)
	ReportInterval int

	// MaxRetries is the maximum number of attempts for each request
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      DefaultBatchSize,
		ReportInterval: 1000,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Builder embeds a vocabulary and stores the result as a matrix.
type Builder struct {
	repo      storage.MatrixRepository
	embedder  ai.Embedder
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
	logger    *slog.Logger
}

// NewBuilder creates a new builder.
// progress: where to write progress output (typically os.Stderr)
func NewBuilder(repo storage.MatrixRepository, embedder ai.Embedder, config *Config, progress io.Writer) (*Builder, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}

	return &Builder{
		repo:      repo,
		embedder:  embedder,
		config:    config,
		progress:  progress,
		processor: NewBatchProcessor(embedder, config.MaxRetries, config.RetryDelay),
		logger:    slog.Default().With("component", "vectorize"),
	}, nil
}

// Build embeds terms and returns the term-by-dimension matrix.
// Columns are named d0, d1, ... after the embedding dimensions.
func (b *Builder) Build(ctx context.Context, terms []string) (*matrix.Matrix, error) {
	if len(terms) == 0 {
		return nil, ErrEmptyVocabulary
	}

	fmt.Fprintf(b.progress, "Embedding %d terms (batch size: %d)\n", len(terms), b.config.BatchSize)
	tracker := NewProgressTracker(b.progress, len(terms), b.config.ReportInterval)
	tracker.Start()

	var (
		width  int
		values []float64
	)
	iter := NewTermIterator(terms, b.config.BatchSize)
	err := iter.ForEach(ctx, func(offset int, batch []string) error {
		rows, err := b.processor.Process(ctx, batch)
		if err != nil {
			return fmt.Errorf("failed to process batch at term %d: %w", offset, err)
		}
		for i, row := range rows {
			if width == 0 {
				width = len(row)
				values = make([]float64, 0, width*len(terms))
			}
			if len(row) != width || width == 0 {
				return fmt.Errorf("%w: %q has %d dimensions, want %d", ErrEmbeddingMismatch, batch[i], len(row), width)
			}
			values = append(values, row...)
		}
		tracker.Increment(len(batch))
		return nil
	})
	if err != nil {
		return nil, err
	}
	tracker.Finish()

	columns := make([]string, width)
	for i := range columns {
		columns[i] = fmt.Sprintf("d%d", i)
	}
	return matrix.New(terms, columns, values)
}

// Run embeds terms and saves the matrix under name.
func (b *Builder) Run(ctx context.Context, name string, terms []string) (*core.MatrixManifest, error) {
	if err := core.ValidateMatrixName(name); err != nil {
		return nil, err
	}

	m, err := b.Build(ctx, terms)
	if err != nil {
		return nil, err
	}

	manifest, err := b.repo.SaveMatrix(ctx, name, m)
	if err != nil {
		return nil, fmt.Errorf("failed to save matrix %q: %w", name, err)
	}

	b.logger.Info("stored embedding matrix", "name", name, "rows", manifest.Rows, "dimensions", len(manifest.Columns))
	return manifest, nil
}
