package vectorize

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrEmbedderRequired is returned when no embedder is supplied.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrRepositoryRequired is returned when no matrix repository is supplied.
	ErrRepositoryRequired = errors.New("matrix repository is required")

	// ErrEmptyVocabulary is returned when there are no terms to embed.
	ErrEmptyVocabulary = errors.New("vocabulary is empty")

	// ErrEmbeddingMismatch is returned when the service returns the wrong
	// number of vectors or vectors of differing width.
	ErrEmbeddingMismatch = errors.New("embedding shape mismatch")
)
