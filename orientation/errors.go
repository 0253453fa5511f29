package orientation

import "errors"

var (
	// ErrMatrixRequired is returned when Score is called without a matrix.
	ErrMatrixRequired = errors.New("matrix is required")

	// ErrNoSeedsInVocabulary is returned when none of a seed set's words
	// have a row in the matrix.
	ErrNoSeedsInVocabulary = errors.New("no seed words in matrix vocabulary")
)
