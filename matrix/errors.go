package matrix

import "errors"

var (
	// ErrTermNotFound is returned when a term has no row in the matrix.
	ErrTermNotFound = errors.New("term not in matrix")

	// ErrDuplicateTerm is returned when two rows share a label.
	ErrDuplicateTerm = errors.New("duplicate row label")

	// ErrEmptyTerm is returned when a row label is empty.
	ErrEmptyTerm = errors.New("empty row label")

	// ErrRaggedRow is returned when a row's width differs from the header.
	ErrRaggedRow = errors.New("row width does not match header")

	// ErrShapeMismatch is returned when values do not fill rows x columns.
	ErrShapeMismatch = errors.New("value count does not match matrix shape")

	// ErrNoColumns is returned when a matrix has no context columns.
	ErrNoColumns = errors.New("matrix has no columns")

	// ErrParseValue is returned when a cell cannot be parsed as a number.
	ErrParseValue = errors.New("cannot parse matrix value")

	// ErrUnknownDistance is returned for an unrecognised distance name.
	ErrUnknownDistance = errors.New("unknown distance function")
)
