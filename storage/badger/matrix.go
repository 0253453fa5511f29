package badger

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/lexorient/core"
	"github.com/poiesic/lexorient/matrix"
	"github.com/poiesic/lexorient/storage"
)

// MatrixRepository implements storage.MatrixRepository for BadgerDB.
type MatrixRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.MatrixRepository = (*MatrixRepository)(nil)

// NewMatrixRepository creates a new MatrixRepository.
func NewMatrixRepository(backend *Backend) (*MatrixRepository, error) {
	if backend == nil {
		return nil, fmt.Errorf("%w: backend is nil", storage.ErrStorageClosed)
	}
	return &MatrixRepository{
		backend: backend,
		logger:  backend.logger.With("repository", "matrix"),
	}, nil
}

// Close releases resources. MatrixRepository has no resources to release.
func (r *MatrixRepository) Close() error {
	return nil
}

// SaveMatrix stores m under name, replacing any previous matrix of that name.
// Rows are written through a write batch so large matrices are not bounded
// by badger's transaction size. Each save writes a new generation of rows and
// then switches the manifest to it, so a failed or cancelled save leaves the
// previous matrix readable. A matrix without a manifest is never visible.
func (r *MatrixRepository) SaveMatrix(ctx context.Context, name string, m *matrix.Matrix) (*core.MatrixManifest, error) {
	if err := core.ValidateMatrixName(name); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: matrix is nil", storage.ErrInvalidQuery)
	}
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	id := core.IDFromContent(name)
	rows, _ := m.Dims()
	// Manifests store microseconds; match that so callers see what is stored.
	now := time.Now().UTC().Truncate(time.Microsecond)
	manifest := &core.MatrixManifest{
		Id:         id,
		Name:       name,
		Columns:    m.Columns(),
		Rows:       rows,
		InsertedAt: now,
		UpdatedAt:  now,
		Generation: 1,
	}
	if err := core.ValidateManifest(manifest); err != nil {
		return nil, err
	}

	previous, err := r.readManifest(id)
	if err != nil {
		return nil, err
	}
	if previous != nil {
		manifest.InsertedAt = previous.InsertedAt
		manifest.Generation = previous.Generation + 1
	}
	next := makeGenerationRowKey(id, manifest.Generation)

	// Leftovers from an interrupted save of the same generation.
	if err := r.deleteRows(next); err != nil {
		return nil, err
	}

	err = r.backend.WithBatch(func(wb *badger.WriteBatch) error {
		for i, term := range m.Terms() {
			if i%1000 == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			values, _ := m.Row(term)
			row := &core.MatrixRow{Index: i, Term: term, Values: values}
			if err := wb.Set(makeMatrixRowKey(id, manifest.Generation, term), storage.MarshalRow(row)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if cleanupErr := r.deleteRows(next); cleanupErr != nil {
			r.logger.Warn("failed to remove partial matrix rows", "name", name, "err", cleanupErr)
		}
		return nil, fmt.Errorf("%w: writing rows of %q: %w", storage.ErrTransactionFailed, name, err)
	}

	err = r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeMatrixManifestKey(id), storage.MarshalManifest(manifest)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		if cleanupErr := r.deleteRows(next); cleanupErr != nil {
			r.logger.Warn("failed to remove partial matrix rows", "name", name, "err", cleanupErr)
		}
		return nil, fmt.Errorf("%w: writing manifest of %q: %w", storage.ErrTransactionFailed, name, err)
	}

	if previous != nil {
		// The new manifest is visible; old rows are unreachable either way.
		if err := r.deleteRows(makeGenerationRowKey(id, previous.Generation)); err != nil {
			r.logger.Warn("failed to remove replaced matrix rows", "name", name, "err", err)
		}
	}

	r.logger.Debug("saved matrix", "name", name, "rows", manifest.Rows,
		"columns", len(manifest.Columns), "generation", manifest.Generation)
	return manifest, nil
}

// LoadMatrix reads a stored matrix, rows in their original order.
func (r *MatrixRepository) LoadMatrix(ctx context.Context, name string) (*matrix.Matrix, error) {
	id := core.IDFromContent(name)

	var (
		manifest *core.MatrixManifest
		rows     []*core.MatrixRow
	)
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		manifest, err = readManifest(tx, id)
		if err != nil {
			return err
		}
		if manifest == nil {
			return storage.ErrNotFound
		}

		rows = make([]*core.MatrixRow, 0, manifest.Rows)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeGenerationRowKey(id, manifest.Generation)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if len(rows)%1000 == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			var row *core.MatrixRow
			err := iter.Item().Value(func(val []byte) error {
				var err error
				row, err = storage.UnmarshalRow(val)
				return err
			})
			if err != nil {
				return err
			}
			rows = append(rows, row)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	if len(rows) != manifest.Rows {
		return nil, fmt.Errorf("%w: matrix %q has %d rows, manifest says %d",
			storage.ErrTruncatedData, name, len(rows), manifest.Rows)
	}

	// Keys sort by term; the manifest order is the original row order.
	slices.SortFunc(rows, func(a, b *core.MatrixRow) int {
		return cmp.Compare(a.Index, b.Index)
	})

	terms := make([]string, len(rows))
	values := make([]float64, 0, len(rows)*len(manifest.Columns))
	for i, row := range rows {
		if len(row.Values) != len(manifest.Columns) {
			return nil, fmt.Errorf("%w: row %q has %d values, want %d",
				storage.ErrTruncatedData, row.Term, len(row.Values), len(manifest.Columns))
		}
		terms[i] = row.Term
		values = append(values, row.Values...)
	}

	return matrix.New(terms, manifest.Columns, values)
}

// GetManifest retrieves a matrix's metadata.
func (r *MatrixRepository) GetManifest(ctx context.Context, name string) (*core.MatrixManifest, error) {
	manifest, err := r.readManifest(core.IDFromContent(name))
	if err != nil {
		return nil, err
	}
	if manifest == nil {
		return nil, storage.ErrNotFound
	}
	return manifest, nil
}

// HasTerm reports whether the named matrix has a row for term.
// Returns ErrNotFound if the matrix itself doesn't exist.
func (r *MatrixRepository) HasTerm(ctx context.Context, name, term string) (bool, error) {
	id := core.IDFromContent(name)
	var found bool
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		manifest, err := readManifest(tx, id)
		if err != nil {
			return err
		}
		if manifest == nil {
			return storage.ErrNotFound
		}
		_, err = tx.Get(makeMatrixRowKey(id, manifest.Generation, term))
		if err == nil {
			found = true
			return nil
		}
		if err == badger.ErrKeyNotFound {
			return nil
		}
		return err
	}, false)
	return found, err
}

// GetRow retrieves a single row.
func (r *MatrixRepository) GetRow(ctx context.Context, name, term string) (*core.MatrixRow, error) {
	id := core.IDFromContent(name)
	var row *core.MatrixRow
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		manifest, err := readManifest(tx, id)
		if err != nil {
			return err
		}
		if manifest == nil {
			return storage.ErrNotFound
		}
		item, err := tx.Get(makeMatrixRowKey(id, manifest.Generation, term))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			row, err = storage.UnmarshalRow(val)
			return err
		})
	}, false)
	return row, err
}

// ListMatrices returns all manifests ordered by name.
func (r *MatrixRepository) ListMatrices(ctx context.Context) ([]*core.MatrixManifest, error) {
	var result []*core.MatrixManifest
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialMatrixManifestKey()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				manifest, err := storage.UnmarshalManifest(val)
				if err != nil {
					return err
				}
				result = append(result, manifest)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(result, func(a, b *core.MatrixManifest) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return result, nil
}

// DeleteMatrix removes a matrix's manifest and rows.
func (r *MatrixRepository) DeleteMatrix(ctx context.Context, name string) error {
	id := core.IDFromContent(name)
	manifest, err := r.readManifest(id)
	if err != nil {
		return err
	}
	if manifest == nil {
		return storage.ErrNotFound
	}
	if err := r.dropMatrix(id); err != nil {
		return err
	}
	r.logger.Debug("deleted matrix", "name", name)
	return nil
}

// dropMatrix removes the manifest first, then the rows of every generation.
func (r *MatrixRepository) dropMatrix(id core.ID) error {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete(makeMatrixManifestKey(id)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrTransactionFailed, err)
	}
	return r.deleteRows(makePartialMatrixRowKey(id))
}

// deleteRows removes every row key under prefix.
func (r *MatrixRepository) deleteRows(prefix []byte) error {
	keys, err := r.backend.KeysWithPrefix(prefix)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	err = r.backend.WithBatch(func(wb *badger.WriteBatch) error {
		for _, key := range keys {
			if err := wb.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrTransactionFailed, err)
	}
	return nil
}

func (r *MatrixRepository) readManifest(id core.ID) (*core.MatrixManifest, error) {
	var manifest *core.MatrixManifest
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		manifest, err = readManifest(tx, id)
		return err
	}, false)
	return manifest, err
}

// readManifest returns nil, nil when no manifest exists.
func readManifest(tx *badger.Txn, id core.ID) (*core.MatrixManifest, error) {
	item, err := tx.Get(makeMatrixManifestKey(id))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}
	var manifest *core.MatrixManifest
	err = item.Value(func(val []byte) error {
		var err error
		manifest, err = storage.UnmarshalManifest(val)
		return err
	})
	return manifest, err
}
