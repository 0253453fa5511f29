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


package lexorient

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/poiesic/lexorient/ai"
	"github.com/poiesic/lexorient/ai/openai"
	"github.com/poiesic/lexorient/bootstrap"
	"github.com/poiesic/lexorient/core"
	"github.com/poiesic/lexorient/matrix"
	"github.com/poiesic/lexorient/orientation"
	"github.com/poiesic/lexorient/storage"
	"github.com/poiesic/lexorient/storage/badger"
	"github.com/poiesic/lexorient/trial"
	"github.com/poiesic/lexorient/vectorize"
)

type Database struct {
	backend    *badger.Backend
	matrixRepo storage.MatrixRepository
	provider   ai.AIProvider
	logger     *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
	inMemory bool
}

// WithAIConfig sets the embedding service configuration.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.aiConfig = config
	}
}

// WithAIProvider uses an existing provider instead of creating one from the config.
func WithAIProvider(provider ai.AIProvider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// WithInMemory keeps the whole database in memory. The path is ignored.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	matrixRepo, err := badger.NewMatrixRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			matrixRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Database{
		backend:    backend,
		matrixRepo: matrixRepo,
		provider:   provider,
		logger:     slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	if err := db.matrixRepo.Close(); err != nil {
		db.logger.Error("error closing matrix repository", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) MatrixRepository() storage.MatrixRepository {
	return db.matrixRepo
}

// ImportCSV reads a CSV matrix (optionally gzip-compressed) and stores it under name.
func (db *Database) ImportCSV(ctx context.Context, name, path string) (*core.MatrixManifest, error) {
	m, err := matrix.LoadCSV(path)
	if err != nil {
		return nil, err
	}
	return db.matrixRepo.SaveMatrix(ctx, name, m)
}

// LoadMatrix reads a stored matrix. If ppmi is set the matrix is reweighted.
func (db *Database) LoadMatrix(ctx context.Context, name string, ppmi bool) (*matrix.Matrix, error) {
	m, err := db.matrixRepo.LoadMatrix(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("loading matrix %q: %w", name, err)
	}
	if ppmi {
		m = matrix.PPMI(m)
	}
	return m, nil
}

// NewExpander loads a stored matrix and returns an expander over it.
func (db *Database) NewExpander(ctx context.Context, name string, ppmi bool, distance matrix.DistanceFunc, opts ...bootstrap.Option) (*bootstrap.Expander, error) {
	m, err := db.LoadMatrix(ctx, name, ppmi)
	if err != nil {
		return nil, err
	}
	return NewMatrixExpander(m, distance, opts...)
}

func (db *Database) NewScorer(opts ...orientation.Option) (*orientation.Scorer, error) {
	return orientation.NewScorer(opts...)
}

// NewVectorizer returns a builder that embeds vocabularies with the
// database's AI provider and stores them in this database.
func (db *Database) NewVectorizer(config *vectorize.Config, progress io.Writer) (*vectorize.Builder, error) {
	return vectorize.NewBuilder(db.matrixRepo, db.provider.Embedder(), config, progress)
}

// NewTrialRunner returns a trial runner that loads matrices from this
// database instead of CSV files.
func (db *Database) NewTrialRunner(config *trial.Config, opts ...trial.Option) (*trial.Runner, error) {
	opts = append([]trial.Option{trial.WithMatrixSource(db.matrixRepo)}, opts...)
	return trial.NewRunner(config, opts...)
}

// NewMatrixExpander wires an in-memory matrix into an expander: the matrix
// answers vocabulary membership and a NeighborFinder over it answers
// neighbor queries.
func NewMatrixExpander(m *matrix.Matrix, distance matrix.DistanceFunc, opts ...bootstrap.Option) (*bootstrap.Expander, error) {
	finder, err := matrix.NewNeighborFinder(m, matrix.WithDistance(distance))
	if err != nil {
		return nil, err
	}
	return bootstrap.NewExpander(m, finder, opts...)
}
