package fractal

import "errors"

// Sentinel errors for the fractal package.
var (
	// ErrUnknownGenerator is returned when no generator is registered under a name.
	ErrUnknownGenerator = errors.New("fractal: unknown generator")

	// ErrUnsupportedFormat is returned when a pixmap cannot be encoded in the
	// requested format.
	ErrUnsupportedFormat = errors.New("fractal: unsupported format")

	// ErrWeights is returned when the weights of an iterated function system do
	// not sum to one.
	ErrWeights = errors.New("fractal: map weights must sum to 1")
)
