package trial

import "errors"

var (
	// ErrInvalidOptions is returned when an options file is malformed.
	ErrInvalidOptions = errors.New("invalid options file")

	// ErrUnknownMatrix is returned when a matrix identifier resolves to no file.
	ErrUnknownMatrix = errors.New("unknown data matrix")

	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("invalid trial config")

	// ErrConfigRequired is returned when NewRunner is called without a Config.
	ErrConfigRequired = errors.New("config is required")
)
