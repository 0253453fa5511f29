package lexicon

import "errors"

var (
	// ErrMissingColumn is returned when the ratings file lacks a required column.
	ErrMissingColumn = errors.New("ratings file is missing a column")

	// ErrParseRating is returned when a rating cannot be parsed as a number.
	ErrParseRating = errors.New("cannot parse rating")

	// ErrUnknownMetric is returned for an unrecognised correlation metric.
	ErrUnknownMetric = errors.New("unknown correlation metric")

	// ErrUnknownDimension is returned for a dimension a LexiconEntry does not carry.
	ErrUnknownDimension = errors.New("unknown lexicon dimension")

	// ErrTooFewPairs is returned when fewer than two words are shared
	// between the lexicon and the scores.
	ErrTooFewPairs = errors.New("too few shared words to correlate")
)
