package bgi

import (
	"image"
	"math"

	"github.com/bits-and-blooms/bitset"
)

// FloodFill fills the 4-connected region around the logical seed (x, y)
// with the brush color, stopping at pixels of the border color. Only the
// seed goes through the transform; the fill then spreads in device pixels
// inside the clip region.
//
// A seed outside the buffer and a FillNone brush do nothing. A border with
// a gap lets the fill run out to every reachable pixel.
func (c *Canvas) FloodFill(x, y float64, border Color) error {
	if err := c.check("flood fill"); err != nil {
		return err
	}
	if err := checkFinite("flood fill", x, y); err != nil {
		return err
	}
	if c.brush.Style == FillNone {
		return nil
	}
	p := c.device().TransformPoint(Point{X: x, Y: y})
	seed := image.Pt(int(math.Round(p.X)), int(math.Round(p.Y)))
	if !seed.In(c.bounds()) {
		Logger().Debug("flood fill seed outside buffer", "x", seed.X, "y", seed.Y)
		return nil
	}

	area := c.clipRect()
	fill := c.brush.Color.premul()
	stop := border.premul()
	visited := bitset.New(uint(c.width * c.height))

	var (
		stack   = []image.Point{seed}
		dirty   image.Rectangle
		painted int
	)
	for len(stack) > 0 {
		q := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !q.In(area) {
			continue
		}
		idx := uint(q.Y*c.width + q.X)
		if visited.Test(idx) {
			continue
		}
		visited.Set(idx)
		px := c.pix.data[c.pix.offset(q.X, q.Y):]
		if [4]byte(px[:4]) == stop {
			continue
		}
		copy(px, fill[:])
		c.mask.bits.Set(idx)
		dirty = dirty.Union(image.Rect(q.X, q.Y, q.X+1, q.Y+1))
		painted++
		stack = append(stack,
			image.Pt(q.X+1, q.Y), image.Pt(q.X-1, q.Y),
			image.Pt(q.X, q.Y+1), image.Pt(q.X, q.Y-1))
	}

	Logger().Debug("flood fill", "seed", seed, "painted", painted, "dirty", dirty)
	if painted > 0 && dirty == area {
		Logger().Warn("flood fill reached the edge of the drawable area; border may be open",
			"seed", seed, "painted", painted)
	}
	c.touch(dirty)
	return nil
}
