package bgi

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/bgi/internal/raster"
)

// Angles are in degrees: 0 is 3 o'clock and positive angles run
// counter-clockwise in logical space.

func points(op string, coords []float64, minPoints int) ([]Point, error) {
	if len(coords)%2 != 0 {
		return nil, invalidArg(op, "odd number of coordinates (%d)", len(coords))
	}
	if len(coords)/2 < minPoints {
		return nil, invalidArg(op, "need at least %d points, got %d", minPoints, len(coords)/2)
	}
	pts := make([]Point, len(coords)/2)
	for i := range pts {
		x, y := coords[2*i], coords[2*i+1]
		if !finite(x) || !finite(y) {
			return nil, invalidArg(op, "non-finite coordinate at point %d", i)
		}
		pts[i] = Point{X: x, Y: y}
	}
	return pts, nil
}

func checkFinite(op string, vals ...float64) error {
	for _, v := range vals {
		if !finite(v) {
			return invalidArg(op, "non-finite value %g", v)
		}
	}
	return nil
}

func checkRadii(op string, radii ...float64) error {
	for _, r := range radii {
		if r < 0 || !finite(r) {
			return invalidArg(op, "radius %g", r)
		}
	}
	return nil
}

// DrawPoint draws a dot of the pen width at (x, y), whatever the line
// style.
func (c *Canvas) DrawPoint(x, y float64) error {
	if err := c.check("draw point"); err != nil {
		return err
	}
	if err := checkFinite("draw point", x, y); err != nil {
		return err
	}
	m := c.device()
	st := raster.Stroke{Width: c.penWidth(m)}
	cov := c.rasterizer().Fill(st.Polygons(toDevice(m, []Point{{X: x, Y: y}}), false))
	c.touch(c.paint(cov, c.pen.Color))
	return nil
}

// PutPixel sets the single device pixel under the logical point (x, y) to
// col, ignoring the composition mode and the clip. Points outside the
// buffer fail with ErrOutOfRange.
func (c *Canvas) PutPixel(x, y float64, col Color) error {
	if err := c.check("put pixel"); err != nil {
		return err
	}
	px, py := c.devicePixel(x, y)
	if err := c.pix.SetPixel(px, py, col); err != nil {
		return fmt.Errorf("bgi: put pixel: %w", err)
	}
	c.mask.bits.Set(c.mask.index(px, py))
	c.touch(image.Rect(px, py, px+1, py+1))
	return nil
}

// GetPixel returns the color of the device pixel under the logical point
// (x, y). Points outside the buffer fail with ErrOutOfRange.
func (c *Canvas) GetPixel(x, y float64) (Color, error) {
	if err := c.check("get pixel"); err != nil {
		return Color{}, err
	}
	px, py := c.devicePixel(x, y)
	col, err := c.pix.Pixel(px, py)
	if err != nil {
		return Color{}, fmt.Errorf("bgi: get pixel: %w", err)
	}
	return col, nil
}

// devicePixel returns the pixel whose centre is nearest to the mapped
// logical point.
func (c *Canvas) devicePixel(x, y float64) (int, int) {
	p := c.device().TransformPoint(Point{X: x, Y: y})
	return int(math.Round(p.X)), int(math.Round(p.Y))
}

// Line draws a line with the pen. The drawing position does not move.
func (c *Canvas) Line(x1, y1, x2, y2 float64) error {
	if err := c.check("line"); err != nil {
		return err
	}
	if err := checkFinite("line", x1, y1, x2, y2); err != nil {
		return err
	}
	c.shape([]Point{{X: x1, Y: y1}, {X: x2, Y: y2}}, false, outlineOnly)
	return nil
}

// LineTo draws from the drawing position to (x, y) and moves the position
// there.
func (c *Canvas) LineTo(x, y float64) error {
	if err := c.Line(c.pos.X, c.pos.Y, x, y); err != nil {
		return err
	}
	c.pos = Point{X: x, Y: y}
	return nil
}

// LineRel draws from the drawing position by (dx, dy) and moves the
// position to the end point.
func (c *Canvas) LineRel(dx, dy float64) error {
	return c.LineTo(c.pos.X+dx, c.pos.Y+dy)
}

// Polyline draws an open path through the points given as x, y pairs.
func (c *Canvas) Polyline(coords ...float64) error {
	if err := c.check("polyline"); err != nil {
		return err
	}
	pts, err := points("polyline", coords, 2)
	if err != nil {
		return err
	}
	c.shape(pts, false, outlineOnly)
	return nil
}

// Polygon outlines the closed polygon through the points given as x, y
// pairs.
func (c *Canvas) Polygon(coords ...float64) error {
	return c.polygon("polygon", coords, outlineOnly)
}

// DrawPolygon fills the polygon with the brush and outlines it with the
// pen.
func (c *Canvas) DrawPolygon(coords ...float64) error {
	return c.polygon("draw polygon", coords, fillOutline)
}

// FillPolygon fills the polygon with the brush only.
func (c *Canvas) FillPolygon(coords ...float64) error {
	return c.polygon("fill polygon", coords, fillOnly)
}

func (c *Canvas) polygon(op string, coords []float64, mode drawMode) error {
	if err := c.check(op); err != nil {
		return err
	}
	pts, err := points(op, coords, 3)
	if err != nil {
		return err
	}
	c.shape(pts, true, mode)
	return nil
}

// Rect outlines the rectangle with corners (left, top) and (right,
// bottom). With a width-1 pen both corner pixels are painted.
func (c *Canvas) Rect(left, top, right, bottom float64) error {
	return c.rect("rect", left, top, right, bottom, outlineOnly)
}

// DrawRect fills and outlines the rectangle.
func (c *Canvas) DrawRect(left, top, right, bottom float64) error {
	return c.rect("draw rect", left, top, right, bottom, fillOutline)
}

// FillRect fills the rectangle. Pixels whose centres lie on the right or
// bottom edge are not filled.
func (c *Canvas) FillRect(left, top, right, bottom float64) error {
	return c.rect("fill rect", left, top, right, bottom, fillOnly)
}

func (c *Canvas) rect(op string, l, t, r, b float64, mode drawMode) error {
	if err := c.check(op); err != nil {
		return err
	}
	if err := checkFinite(op, l, t, r, b); err != nil {
		return err
	}
	c.shape([]Point{{X: l, Y: t}, {X: r, Y: t}, {X: r, Y: b}, {X: l, Y: b}}, true, mode)
	return nil
}

// RoundedRect outlines a rectangle with elliptical corners of radii rx,
// ry. Radii larger than half the rectangle are clamped.
func (c *Canvas) RoundedRect(left, top, right, bottom, rx, ry float64) error {
	return c.roundedRect("rounded rect", left, top, right, bottom, rx, ry, outlineOnly)
}

// DrawRoundedRect fills and outlines a rounded rectangle.
func (c *Canvas) DrawRoundedRect(left, top, right, bottom, rx, ry float64) error {
	return c.roundedRect("draw rounded rect", left, top, right, bottom, rx, ry, fillOutline)
}

// FillRoundedRect fills a rounded rectangle.
func (c *Canvas) FillRoundedRect(left, top, right, bottom, rx, ry float64) error {
	return c.roundedRect("fill rounded rect", left, top, right, bottom, rx, ry, fillOnly)
}

func (c *Canvas) roundedRect(op string, l, t, r, b, rx, ry float64, mode drawMode) error {
	if err := c.check(op); err != nil {
		return err
	}
	if err := checkFinite(op, l, t, r, b); err != nil {
		return err
	}
	if err := checkRadii(op, rx, ry); err != nil {
		return err
	}
	n := segments(c.device(), max(rx, ry), 90)
	c.shape(raster.RoundedRect(l, t, r, b, rx, ry, n), true, mode)
	return nil
}

// Circle outlines a circle.
func (c *Canvas) Circle(x, y, r float64) error {
	return c.ellipse("circle", x, y, r, r, outlineOnly)
}

// DrawCircle fills and outlines a circle.
func (c *Canvas) DrawCircle(x, y, r float64) error {
	return c.ellipse("draw circle", x, y, r, r, fillOutline)
}

// FillCircle fills a circle.
func (c *Canvas) FillCircle(x, y, r float64) error {
	return c.ellipse("fill circle", x, y, r, r, fillOnly)
}

// Ellipse outlines an axis-aligned ellipse.
func (c *Canvas) Ellipse(x, y, rx, ry float64) error {
	return c.ellipse("ellipse", x, y, rx, ry, outlineOnly)
}

// DrawEllipse fills and outlines an ellipse.
func (c *Canvas) DrawEllipse(x, y, rx, ry float64) error {
	return c.ellipse("draw ellipse", x, y, rx, ry, fillOutline)
}

// FillEllipse fills an ellipse.
func (c *Canvas) FillEllipse(x, y, rx, ry float64) error {
	return c.ellipse("fill ellipse", x, y, rx, ry, fillOnly)
}

func (c *Canvas) ellipse(op string, x, y, rx, ry float64, mode drawMode) error {
	if err := c.check(op); err != nil {
		return err
	}
	if err := checkFinite(op, x, y); err != nil {
		return err
	}
	if err := checkRadii(op, rx, ry); err != nil {
		return err
	}
	n := segments(c.device(), max(rx, ry), 360)
	pts := raster.Arc(x, y, rx, ry, 0, 360, n)
	c.shape(pts[:n], true, mode)
	return nil
}

// Arc draws the elliptical arc from start to end degrees.
func (c *Canvas) Arc(x, y, start, end, rx, ry float64) error {
	pts, err := c.arc("arc", x, y, start, end, rx, ry)
	if err != nil {
		return err
	}
	c.shape(pts, false, outlineOnly)
	return nil
}

// Pie outlines the sector from start to end degrees.
func (c *Canvas) Pie(x, y, start, end, rx, ry float64) error {
	return c.pie("pie", x, y, start, end, rx, ry, outlineOnly)
}

// DrawPie fills and outlines a sector.
func (c *Canvas) DrawPie(x, y, start, end, rx, ry float64) error {
	return c.pie("draw pie", x, y, start, end, rx, ry, fillOutline)
}

// FillPie fills a sector.
func (c *Canvas) FillPie(x, y, start, end, rx, ry float64) error {
	return c.pie("fill pie", x, y, start, end, rx, ry, fillOnly)
}

func (c *Canvas) pie(op string, x, y, start, end, rx, ry float64, mode drawMode) error {
	pts, err := c.arc(op, x, y, start, end, rx, ry)
	if err != nil {
		return err
	}
	c.shape(append([]Point{{X: x, Y: y}}, pts...), true, mode)
	return nil
}

// Chord outlines the segment cut off by the chord between the arc ends.
func (c *Canvas) Chord(x, y, start, end, rx, ry float64) error {
	return c.chord("chord", x, y, start, end, rx, ry, outlineOnly)
}

// DrawChord fills and outlines a chord segment.
func (c *Canvas) DrawChord(x, y, start, end, rx, ry float64) error {
	return c.chord("draw chord", x, y, start, end, rx, ry, fillOutline)
}

// FillChord fills a chord segment.
func (c *Canvas) FillChord(x, y, start, end, rx, ry float64) error {
	return c.chord("fill chord", x, y, start, end, rx, ry, fillOnly)
}

func (c *Canvas) chord(op string, x, y, start, end, rx, ry float64, mode drawMode) error {
	pts, err := c.arc(op, x, y, start, end, rx, ry)
	if err != nil {
		return err
	}
	c.shape(pts, true, mode)
	return nil
}

// arc validates and flattens an elliptical arc in logical space.
func (c *Canvas) arc(op string, x, y, start, end, rx, ry float64) ([]Point, error) {
	if err := c.check(op); err != nil {
		return nil, err
	}
	if err := checkFinite(op, x, y, start, end); err != nil {
		return nil, err
	}
	if err := checkRadii(op, rx, ry); err != nil {
		return nil, err
	}
	sweep := raster.Sweep(start, end)
	n := segments(c.device(), max(rx, ry), sweep)
	return raster.Arc(x, y, rx, ry, start, sweep, n), nil
}

// Bezier draws a cubic Bezier curve. It takes exactly four control points
// as x, y pairs.
func (c *Canvas) Bezier(coords ...float64) error {
	if err := c.check("bezier"); err != nil {
		return err
	}
	if len(coords) != 8 {
		return invalidArg("bezier", "need 4 control points (8 coordinates), got %d coordinates", len(coords))
	}
	p, err := points("bezier", coords, 4)
	if err != nil {
		return err
	}
	m := c.device()
	d := toDevice(m, p)
	n := raster.CubicSegments(d[0], d[1], d[2], d[3])
	c.shape(raster.Cubic(p[0], p[1], p[2], p[3], n), false, outlineOnly)
	return nil
}
