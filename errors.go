package lloggs

import "errors"

var (
	// ErrAlreadyInitialized is returned when Setup (or PreArgs.Setup) is
	// called after a previous call already installed the global logger.
	ErrAlreadyInitialized = errors.New("lloggs: logging already initialized")

	// ErrInvalidLevel is wrapped into configuration errors when a level
	// name from a flag or environment variable cannot be parsed.
	ErrInvalidLevel = errors.New("lloggs: invalid log level")
)
