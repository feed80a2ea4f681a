package raster

import (
	"image"
	"math"
)

// Coverage is the device-space footprint of a rasterised shape: one alpha
// value per pixel of Rect, row-major. A zero-value Coverage is empty.
type Coverage struct {
	Rect image.Rectangle
	Pix  []uint8
}

// NewCoverage allocates an all-zero coverage for r.
func NewCoverage(r image.Rectangle) *Coverage {
	return &Coverage{Rect: r, Pix: make([]uint8, r.Dx()*r.Dy())}
}

// At returns the coverage of pixel (x, y); 0 outside Rect.
func (c *Coverage) At(x, y int) uint8 {
	if !image.Pt(x, y).In(c.Rect) {
		return 0
	}
	return c.Pix[(y-c.Rect.Min.Y)*c.Rect.Dx()+x-c.Rect.Min.X]
}

// Set stores v at (x, y), keeping the larger of the old and new value.
func (c *Coverage) Set(x, y int, v uint8) {
	if !image.Pt(x, y).In(c.Rect) {
		return
	}
	i := (y-c.Rect.Min.Y)*c.Rect.Dx() + x - c.Rect.Min.X
	if v > c.Pix[i] {
		c.Pix[i] = v
	}
}

// Empty reports whether no pixel is covered.
func (c *Coverage) Empty() bool {
	for _, v := range c.Pix {
		if v != 0 {
			return false
		}
	}
	return true
}

// Bounds returns the smallest rectangle containing every covered pixel.
func (c *Coverage) Bounds() image.Rectangle {
	var r image.Rectangle
	w := c.Rect.Dx()
	for i, v := range c.Pix {
		if v == 0 {
			continue
		}
		x, y := c.Rect.Min.X+i%w, c.Rect.Min.Y+i/w
		r = r.Union(image.Rect(x, y, x+1, y+1))
	}
	return r
}

// Threshold turns partial coverage into all-or-nothing at half coverage.
func (c *Coverage) Threshold() {
	for i, v := range c.Pix {
		if v >= 128 {
			c.Pix[i] = 255
		} else {
			c.Pix[i] = 0
		}
	}
}

// span marks pixel centres in [xa, xb) on row y.
func (c *Coverage) span(y int, xa, xb float64) {
	i0 := max(int(math.Ceil(xa)), c.Rect.Min.X)
	i1 := min(int(math.Ceil(xb)), c.Rect.Max.X)
	if i0 >= i1 || y < c.Rect.Min.Y || y >= c.Rect.Max.Y {
		return
	}
	row := (y - c.Rect.Min.Y) * c.Rect.Dx()
	for i := i0; i < i1; i++ {
		c.Pix[row+i-c.Rect.Min.X] = 255
	}
}
