// Package vectorize builds a distributional matrix from an embedding service.
//
// A vocabulary is embedded in batches, each row is scaled to unit length and
// the resulting term-by-dimension matrix is stored through a
// storage.MatrixRepository. Failed batches are retried with exponential
// backoff; progress is written to a caller-supplied writer.
package vectorize
