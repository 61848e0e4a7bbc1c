package window

import "errors"

var (
	// ErrInvalidWindowLength is returned when a byte or count limit is not
	// positive. A non-positive window is a configuration error.
	ErrInvalidWindowLength = errors.New("invalid window length")

	// ErrWindowBufferOverflow is returned when the first pending ADU alone is
	// larger than the byte limit and can never fit a window.
	ErrWindowBufferOverflow = errors.New("window buffer overflow")
)
