package sound

import "errors"

var (
	// ErrInvalidInput indicates an unsupported or closed input handle.
	ErrInvalidInput = errors.New("invalid input")

	// ErrClosed indicates the Sound has already been closed.
	ErrClosed = errors.New("sound closed")

	// ErrOutOfRange indicates a position outside [0, duration].
	ErrOutOfRange = errors.New("position out of range")
)
