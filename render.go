package bgi

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/bgi/internal/blend"
	"github.com/gogpu/bgi/internal/raster"
)

// drawMode selects which of pen and brush a closed shape uses.
type drawMode uint8

const (
	outlineOnly drawMode = iota // pen
	fillOutline                 // brush, then pen
	fillOnly                    // brush
)

func (c *Canvas) rasterizer() *raster.Rasterizer {
	return &raster.Rasterizer{Clip: c.clipRect(), Antialias: c.antialias}
}

func toDevice(m Matrix, pts []Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = m.TransformPoint(p)
	}
	return out
}

// penWidth is the device width of the pen under m.
func (c *Canvas) penWidth(m Matrix) float64 {
	return max(1, c.pen.Width*m.ScaleFactor())
}

// segments picks the chord count for a curve of logical radius r.
func segments(m Matrix, r, sweep float64) int {
	return raster.Segments(r*m.ScaleFactor(), sweep)
}

func (c *Canvas) strokeCoverage(m Matrix, path []Point, closed bool) *raster.Coverage {
	if c.pen.Style == LineNone {
		return nil
	}
	w := c.penWidth(m)
	st := raster.Stroke{Width: w, Dash: c.pen.Style.dash(w)}
	return c.rasterizer().Fill(st.Polygons(toDevice(m, path), closed))
}

func (c *Canvas) fillCoverage(m Matrix, path []Point) *raster.Coverage {
	if c.brush.Style == FillNone || len(path) < 3 {
		return nil
	}
	return c.rasterizer().Fill([]raster.Polygon{toDevice(m, path)})
}

// shape renders a logical path. Both coverages are computed before the
// buffers are touched, so a primitive either completes or changes nothing.
func (c *Canvas) shape(path []Point, closed bool, mode drawMode) {
	m := c.device()
	var fill, outline *raster.Coverage
	if closed && mode != outlineOnly {
		fill = c.fillCoverage(m, path)
	}
	if mode != fillOnly {
		outline = c.strokeCoverage(m, path, closed)
	}
	dirty := c.paint(fill, c.brush.Color)
	dirty = dirty.Union(c.paint(outline, c.pen.Color))
	c.touch(dirty)
}

// paint composites a solid color through cov.
func (c *Canvas) paint(cov *raster.Coverage, col Color) image.Rectangle {
	if cov == nil {
		return image.Rectangle{}
	}
	s := col.premul()
	return c.composite(cov, c.mode, func(int, int) [4]byte { return s })
}

// composite writes ink into every covered pixel with mode and marks the
// same pixels as foreground. It returns the touched rectangle.
func (c *Canvas) composite(cov *raster.Coverage, mode CompositionMode, src func(x, y int) [4]byte) image.Rectangle {
	f := blend.FuncFor(mode)
	r := cov.Rect.Intersect(c.pix.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			a := cov.At(x, y)
			if a == 0 {
				continue
			}
			i := c.pix.offset(x, y)
			blend.Composite(c.pix.data[i:i+4], src(x, y), a, f)
		}
	}
	c.mask.markCoverage(cov)
	return cov.Bounds().Intersect(r)
}

// sourceToDevice returns the x/image/draw transform for an image placed with
// local. x/image samples destination pixels at their centres (i+0.5) while
// device coordinates put pixel centres on integers.
func sourceToDevice(local Matrix) f64.Aff3 {
	return f64.Aff3{
		local.A, local.B, local.C + 0.5,
		local.D, local.E, local.F + 0.5,
	}
}

// footprint returns the device pixels that s2d can map sr onto.
func footprint(s2d f64.Aff3, sr image.Rectangle) image.Rectangle {
	lo := Point{X: math.Inf(1), Y: math.Inf(1)}
	hi := Point{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, p := range []image.Point{sr.Min, {X: sr.Max.X, Y: sr.Min.Y}, sr.Max, {X: sr.Min.X, Y: sr.Max.Y}} {
		x, y := float64(p.X), float64(p.Y)
		dx := s2d[0]*x + s2d[1]*y + s2d[2]
		dy := s2d[3]*x + s2d[4]*y + s2d[5]
		lo = Point{X: math.Min(lo.X, dx), Y: math.Min(lo.Y, dy)}
		hi = Point{X: math.Max(hi.X, dx), Y: math.Max(hi.Y, dy)}
	}
	return image.Rect(
		int(math.Floor(lo.X)), int(math.Floor(lo.Y)),
		int(math.Ceil(hi.X)), int(math.Ceil(hi.Y)),
	)
}

// imageCoverage maps the alpha of src (restricted to sr) onto the device
// with nearest-neighbour sampling and clips the result.
func (c *Canvas) imageCoverage(local Matrix, src image.Image, sr image.Rectangle) *raster.Coverage {
	if !local.Invertible() {
		return nil
	}
	s2d := sourceToDevice(local)
	r := footprint(s2d, sr).Intersect(c.clipRect())
	if r.Empty() {
		return nil
	}
	dst := image.NewAlpha(r)
	xdraw.NearestNeighbor.Transform(dst, s2d, src, sr, xdraw.Src, nil)
	return &raster.Coverage{Rect: r, Pix: dst.Pix}
}
