package storage

import (
	"context"

	"github.com/poiesic/lexorient/core"
	"github.com/poiesic/lexorient/matrix"
)

// MatrixRepository stores named distributional matrices.
// Implementations must be thread-safe and support concurrent access.
type MatrixRepository interface {
	// SaveMatrix stores m under name, replacing any matrix already stored
	// under that name. Returns the manifest written.
	SaveMatrix(ctx context.Context, name string, m *matrix.Matrix) (*core.MatrixManifest, error)

	// LoadMatrix reads the whole matrix back, rows in their original order.
	// Returns ErrNotFound if no matrix has that name.
	LoadMatrix(ctx context.Context, name string) (*matrix.Matrix, error)

	// GetManifest retrieves a matrix's metadata.
	// Returns ErrNotFound if no matrix has that name.
	GetManifest(ctx context.Context, name string) (*core.MatrixManifest, error)

	// HasTerm reports whether the named matrix has a row for term.
	HasTerm(ctx context.Context, name, term string) (bool, error)

	// GetRow retrieves a single row.
	// Returns ErrNotFound if the matrix or the row doesn't exist.
	GetRow(ctx context.Context, name, term string) (*core.MatrixRow, error)

	// ListMatrices returns the manifests of all stored matrices, ordered by name.
	ListMatrices(ctx context.Context) ([]*core.MatrixManifest, error)

	// DeleteMatrix removes a matrix and all of its rows.
	// Returns ErrNotFound if no matrix has that name.
	DeleteMatrix(ctx context.Context, name string) error

	// Close releases repository resources. It does not close the backend.
	Close() error
}
