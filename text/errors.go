package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrInvalidSize is returned for non-positive or non-finite face sizes.
	ErrInvalidSize = errors.New("text: invalid face size")

	// ErrNotScalable is returned when resizing a bitmap face.
	ErrNotScalable = errors.New("text: face is not scalable")
)
