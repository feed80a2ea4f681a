package bgi

import (
	"errors"
	"fmt"
)

// Errors returned by canvas operations. Use errors.Is to classify them;
// concrete errors wrap one of these with the name of the failing call.
var (
	// ErrInvalidArgument is returned for malformed input: odd coordinate
	// lists, too few points, negative radii or widths, degenerate
	// transforms.
	ErrInvalidArgument = errors.New("bgi: invalid argument")

	// ErrOutOfRange is returned by direct pixel access outside the buffer.
	// Drawing primitives clip instead.
	ErrOutOfRange = errors.New("bgi: out of range")

	// ErrInvalidState is returned when an operation is not allowed in the
	// current state of the canvas.
	ErrInvalidState = errors.New("bgi: invalid state")

	// ErrIOFailure is returned when an image cannot be read or written.
	ErrIOFailure = errors.New("bgi: i/o failure")

	// ErrClosed is returned by operations on a closed canvas.
	ErrClosed = fmt.Errorf("canvas is closed: %w", ErrInvalidState)

	// ErrEmptyStack is returned by Restore without a matching Save.
	ErrEmptyStack = fmt.Errorf("restore without save: %w", ErrInvalidState)
)

// PixelRangeError reports direct pixel access outside a buffer.
type PixelRangeError struct {
	X, Y          int
	Width, Height int
}

func (e *PixelRangeError) Error() string {
	return fmt.Sprintf("bgi: pixel (%d, %d) outside %dx%d buffer", e.X, e.Y, e.Width, e.Height)
}

// Unwrap makes errors.Is(err, ErrOutOfRange) hold.
func (e *PixelRangeError) Unwrap() error {
	return ErrOutOfRange
}

func invalidArg(op, format string, args ...any) error {
	return fmt.Errorf("bgi: %s: %s: %w", op, fmt.Sprintf(format, args...), ErrInvalidArgument)
}

func ioFailure(op string, err error) error {
	return fmt.Errorf("bgi: %s: %w: %w", op, ErrIOFailure, err)
}
