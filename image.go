package bgi

import (
	"fmt"
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/bgi/internal/raster"
)

// DrawImageOptions controls DrawImage. The zero value copies the whole
// source at its own size, background included, with the destination's
// composition mode.
type DrawImageOptions struct {
	// SrcRect selects part of the source in its device pixels. Empty
	// means the whole source.
	SrcRect image.Rectangle

	// Width and Height scale the copy to this logical size. Zero keeps
	// the source size.
	Width, Height float64

	// ForegroundOnly copies only pixels the source mask marks as drawn,
	// which turns the source into a sprite with a transparent background.
	ForegroundOnly bool

	// Mode overrides the destination's composition mode when non-nil.
	Mode *CompositionMode
}

// DrawImage copies src onto c with the top-left corner of the copy at the
// logical point (x, y). The copy goes through c's transform and clip with
// nearest-neighbour sampling, and every written pixel becomes foreground.
// src is only read; it may be c itself.
func (c *Canvas) DrawImage(x, y float64, src *Canvas, opts *DrawImageOptions) error {
	if err := c.check("draw image"); err != nil {
		return err
	}
	if src == nil {
		return invalidArg("draw image", "nil source")
	}
	if err := src.check("draw image source"); err != nil {
		return err
	}
	if err := checkFinite("draw image", x, y); err != nil {
		return err
	}
	var o DrawImageOptions
	if opts != nil {
		o = *opts
	}

	sr := src.bounds()
	if !o.SrcRect.Empty() {
		sr = o.SrcRect.Intersect(sr)
		if sr.Empty() {
			return invalidArg("draw image", "source rect %v outside %v", o.SrcRect, src.bounds())
		}
	}
	if o.Width < 0 || o.Height < 0 || !finite(o.Width) || !finite(o.Height) {
		return invalidArg("draw image", "size %gx%g", o.Width, o.Height)
	}
	sx, sy := 1.0, 1.0
	if o.Width > 0 {
		sx = o.Width / float64(sr.Dx())
	}
	if o.Height > 0 {
		sy = o.Height / float64(sr.Dy())
	}
	mode := c.mode
	if o.Mode != nil {
		mode = *o.Mode
	}

	local := c.device().
		Multiply(Translate(x, y)).
		Multiply(Scale(sx, sy)).
		Multiply(Translate(float64(-sr.Min.X), float64(-sr.Min.Y)))

	var shape image.Image = opaqueAlpha(src.bounds())
	if o.ForegroundOnly {
		shape = src.mask.alpha()
	}
	cov := c.imageCoverage(local, shape, sr)
	if cov == nil {
		return nil
	}
	colors := image.NewRGBA(cov.Rect)
	xdraw.NearestNeighbor.Transform(colors, sourceToDevice(local), src.pix.ToImage(), sr, xdraw.Src, nil)

	dirty := c.composite(cov, mode, func(x, y int) [4]byte {
		i := colors.PixOffset(x, y)
		return [4]byte(colors.Pix[i : i+4])
	})
	Logger().Debug("draw image", "src", sr, "dirty", dirty, "foreground_only", o.ForegroundOnly)
	c.touch(dirty)
	return nil
}

func opaqueAlpha(r image.Rectangle) *image.Alpha {
	a := image.NewAlpha(r)
	for i := range a.Pix {
		a.Pix[i] = 0xFF
	}
	return a
}

// Image returns a snapshot of the pixels.
func (c *Canvas) Image() (*image.RGBA, error) {
	if err := c.check("image"); err != nil {
		return nil, err
	}
	return c.pix.ToImage(), nil
}

// Foreground returns a snapshot in which background pixels are
// transparent.
func (c *Canvas) Foreground() (*image.RGBA, error) {
	if err := c.check("foreground"); err != nil {
		return nil, err
	}
	img := c.pix.ToImage()
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			if !c.mask.IsForeground(x, y) {
				i := img.PixOffset(x, y)
				clear(img.Pix[i : i+4])
			}
		}
	}
	return img, nil
}

// Clone returns an independent copy with the same pixels, mask and
// drawing state. The save stack and the observer are not copied.
func (c *Canvas) Clone() (*Canvas, error) {
	if err := c.check("clone"); err != nil {
		return nil, err
	}
	cp := *c
	cp.pix = c.pix.Clone()
	cp.mask = c.mask.Clone()
	cp.stack = make([]savedState, 0, 8)
	cp.observer = nil
	cp.dirty = image.Rectangle{}
	return &cp, nil
}

// SubCanvas copies the device rectangle r, pixels and mask, into a new
// canvas with default drawing state and the same background color.
func (c *Canvas) SubCanvas(r image.Rectangle) (*Canvas, error) {
	if err := c.check("sub canvas"); err != nil {
		return nil, err
	}
	r = r.Intersect(c.bounds())
	if r.Empty() {
		return nil, invalidArg("sub canvas", "rectangle outside %v", c.bounds())
	}
	sub, err := NewCanvas(r.Dx(), r.Dy(), WithBackground(c.background), WithFont(c.font))
	if err != nil {
		return nil, err
	}
	draw.Draw(sub.pix.rgba(), sub.pix.Bounds(), c.pix.rgba(), r.Min, draw.Src)
	cov := raster.NewCoverage(sub.bounds())
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			if c.mask.IsForeground(r.Min.X+x, r.Min.Y+y) {
				cov.Set(x, y, 0xFF)
			}
		}
	}
	sub.mask.markCoverage(cov)
	return sub, nil
}

// DrawTo copies the whole pixel buffer into dst with its top-left corner
// at at. It is the presenter side of the canvas.
func (c *Canvas) DrawTo(dst draw.Image, at image.Point) error {
	if err := c.check("draw to"); err != nil {
		return err
	}
	if dst == nil {
		return invalidArg("draw to", "nil destination")
	}
	xdraw.Copy(dst, at, c.pix, c.pix.Bounds(), xdraw.Src, nil)
	return nil
}

// String describes the canvas for logs.
func (c *Canvas) String() string {
	state := "open"
	if c.closed {
		state = "closed"
	}
	return fmt.Sprintf("Canvas(%dx%d, %s)", c.width, c.height, state)
}
