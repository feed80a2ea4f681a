// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import (
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/bgi/internal/cache"
)

// DefaultSize is the pixel size of the default face.
const DefaultSize = 16

// lineCacheSize bounds the rendered lines kept per face.
const lineCacheSize = 256

// Metrics holds the vertical metrics of a face in pixels.
type Metrics struct {
	// Ascent is the distance from the top of the text box to the baseline.
	Ascent float64
	// Descent is the distance from the baseline to the bottom of the glyphs.
	Descent float64
	// Height is the recommended line height (the text box height).
	Height float64
}

// Face is a font at a specific pixel size.
type Face struct {
	name string
	size float64
	src  *opentype.Font // nil for bitmap faces
	face font.Face

	lines *cache.LRU[string, *image.Alpha]
}

var goRegular = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// NewFace parses TrueType/OpenType data and returns a face of the given
// pixel size.
func NewFace(data []byte, size float64) (*Face, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	src, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}
	name, _ := src.Name(nil, sfnt.NameIDFull) // best effort
	return newFace(name, src, size)
}

// LoadFace reads a font file and returns a face of the given pixel size.
func LoadFace(path string, size float64) (*Face, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("text: read font: %w", err)
	}
	return NewFace(data, size)
}

// GoRegular returns the embedded Go Regular font at the given pixel size.
func GoRegular(size float64) (*Face, error) {
	src, err := goRegular()
	if err != nil {
		return nil, fmt.Errorf("text: parse go regular: %w", err)
	}
	return newFace("Go Regular", src, size)
}

// Default returns Go Regular at DefaultSize.
func Default() *Face {
	f, err := GoRegular(DefaultSize)
	if err != nil {
		return Basic()
	}
	return f
}

// Basic returns the fixed 7x13 bitmap face. It cannot be resized.
func Basic() *Face {
	return &Face{
		name:  "basic 7x13",
		size:  13,
		face:  basicfont.Face7x13,
		lines: cache.New[string, *image.Alpha](lineCacheSize),
	}
}

func newFace(name string, src *opentype.Font, size float64) (*Face, error) {
	if !(size > 0) || math.IsInf(size, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72, // points == pixels
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("text: new face: %w", err)
	}
	return &Face{
		name:  name,
		size:  size,
		src:   src,
		face:  face,
		lines: cache.New[string, *image.Alpha](lineCacheSize),
	}, nil
}

// WithSize returns a new face of the same font at another pixel size.
func (f *Face) WithSize(size float64) (*Face, error) {
	if f.src == nil {
		return nil, ErrNotScalable
	}
	return newFace(f.name, f.src, size)
}

// Name returns the font name, if known.
func (f *Face) Name() string { return f.name }

// Size returns the pixel size.
func (f *Face) Size() float64 { return f.size }

// Scalable reports whether WithSize is supported.
func (f *Face) Scalable() bool { return f.src != nil }

// Metrics returns the vertical metrics.
func (f *Face) Metrics() Metrics {
	m := f.face.Metrics()
	return Metrics{
		Ascent:  fixedToFloat(m.Ascent),
		Descent: fixedToFloat(m.Descent),
		Height:  fixedToFloat(m.Height),
	}
}

// Measure returns the advance width and the line height of s.
func (f *Face) Measure(s string) (w, h float64) {
	s = Prepare(s)
	return fixedToFloat(font.MeasureString(f.face, s)), f.Metrics().Height
}

// Close releases the face.
func (f *Face) Close() error {
	f.lines.Clear()
	if f.src == nil {
		return nil // shared bitmap face
	}
	return f.face.Close()
}

// Prepare normalises s for rendering.
func Prepare(s string) string {
	return norm.NFC.String(s)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
