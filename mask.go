package bgi

import (
	"image"
	"image/color"

	"github.com/bits-and-blooms/bitset"

	"github.com/gogpu/bgi/internal/raster"
)

// Mask records which pixels of a canvas hold drawn (foreground) content.
// It is a 1-bit-per-pixel bitmap with the same size as the paired pixmap.
// A set bit means foreground; a new mask is all background.
type Mask struct {
	width  int
	height int
	bits   *bitset.BitSet
}

// Mask values as rendered by ToImage.
var (
	MaskForeground = color.Gray{Y: 0x00}
	MaskBackground = color.Gray{Y: 0xFF}
)

// NewMask creates an all-background mask.
func NewMask(width, height int) *Mask {
	width, height = max(width, 0), max(height, 0)
	return &Mask{
		width:  width,
		height: height,
		bits:   bitset.New(uint(width * height)),
	}
}

// Width returns the mask width.
func (m *Mask) Width() int { return m.width }

// Height returns the mask height.
func (m *Mask) Height() int { return m.height }

// Bounds returns the mask dimensions as an image.Rectangle.
func (m *Mask) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

func (m *Mask) index(x, y int) uint {
	return uint(y*m.width + x)
}

// IsForeground reports whether (x, y) holds drawn content. Pixels outside
// the mask are background.
func (m *Mask) IsForeground(x, y int) bool {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return false
	}
	return m.bits.Test(m.index(x, y))
}

// MarkForeground marks every pixel of r (clipped to the mask) as drawn.
func (m *Mask) MarkForeground(r image.Rectangle) {
	m.mark(r, true)
}

// MarkBackground marks every pixel of r (clipped to the mask) as
// background.
func (m *Mask) MarkBackground(r image.Rectangle) {
	m.mark(r, false)
}

func (m *Mask) mark(r image.Rectangle, fg bool) {
	r = r.Intersect(m.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.bits.SetTo(m.index(x, y), fg)
		}
	}
}

// markCoverage marks every pixel with non-zero coverage as foreground.
func (m *Mask) markCoverage(cov *raster.Coverage) {
	r := cov.Rect.Intersect(m.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if cov.At(x, y) != 0 {
				m.bits.Set(m.index(x, y))
			}
		}
	}
}

// Stencil returns a predicate reporting foreground pixels. The predicate
// reads the live mask.
func (m *Mask) Stencil() func(x, y int) bool {
	return m.IsForeground
}

// Clear resets the whole mask to background.
func (m *Mask) Clear() {
	m.bits.ClearAll()
}

// Count returns the number of foreground pixels.
func (m *Mask) Count() int {
	return int(m.bits.Count())
}

// Clone creates a copy of the mask.
func (m *Mask) Clone() *Mask {
	return &Mask{width: m.width, height: m.height, bits: m.bits.Clone()}
}

// ToImage renders the mask as black foreground on white background.
func (m *Mask) ToImage() *image.Gray {
	img := image.NewGray(m.Bounds())
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			c := MaskBackground
			if m.IsForeground(x, y) {
				c = MaskForeground
			}
			img.SetGray(x, y, c)
		}
	}
	return img
}

// alpha returns an opaque alpha value for every foreground pixel, used as a
// footprint source when blitting without background.
func (m *Mask) alpha() *image.Alpha {
	img := image.NewAlpha(m.Bounds())
	for i := range img.Pix {
		if m.bits.Test(uint(i)) {
			img.Pix[i] = 0xFF
		}
	}
	return img
}
