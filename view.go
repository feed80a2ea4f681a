package bgi

import (
	"image"
	"math"
)

// viewMapping is the window to view-port stage of the device mapping.
type viewMapping struct {
	port    image.Rectangle // Min is left/top, Max is right/bottom
	hasPort bool

	origin    Point
	size      Point
	hasWindow bool
}

// matrix maps world coordinates to device pixels for a device of the
// given size.
func (v *viewMapping) matrix(width, height int) Matrix {
	if !v.hasPort && !v.hasWindow {
		return Identity()
	}
	port := image.Rect(0, 0, width, height)
	if v.hasPort {
		port = v.port
	}
	pw, ph := float64(port.Dx()), float64(port.Dy())
	origin, size := Point{}, Point{X: pw, Y: ph}
	if v.hasWindow {
		origin, size = v.origin, v.size
	}
	return Translate(float64(port.Min.X), float64(port.Min.Y)).
		Multiply(Scale(pw/size.X, ph/size.Y)).
		Multiply(Translate(-origin.X, -origin.Y))
}

// SetViewPort maps drawing to the device rectangle (left, top)-(right,
// bottom). With clip set, the rectangle (edges included) also becomes the
// clip region. The current window, if any, is stretched onto the new
// view-port.
func (c *Canvas) SetViewPort(left, top, right, bottom int, clip bool) error {
	if err := c.check("set view port"); err != nil {
		return err
	}
	if right <= left || bottom <= top {
		return invalidArg("set view port", "empty rectangle (%d, %d, %d, %d)", left, top, right, bottom)
	}
	c.view.port = image.Rect(left, top, right, bottom)
	c.view.hasPort = true
	if clip {
		c.clip = image.Rect(left, top, right+1, bottom+1).Intersect(c.bounds())
		c.clipOn = true
		c.clipFromView = true
	} else if c.clipFromView {
		c.DisableClip()
	}
	return nil
}

// ViewPort returns the current view-port, if one is set.
func (c *Canvas) ViewPort() (image.Rectangle, bool) {
	return c.view.port, c.view.hasPort
}

// ResetViewPort maps drawing to the whole device again and removes a clip
// installed by SetViewPort. It does nothing when no view-port is set.
func (c *Canvas) ResetViewPort() {
	if !c.view.hasPort {
		return
	}
	c.view.port = image.Rectangle{}
	c.view.hasPort = false
	if c.clipFromView {
		c.DisableClip()
	}
}

// SetWindow sets the logical rectangle that is stretched onto the
// view-port. Width and height may be negative to flip an axis but not zero.
func (c *Canvas) SetWindow(originX, originY, width, height float64) error {
	if err := c.check("set window"); err != nil {
		return err
	}
	if width == 0 || height == 0 || !finite(width) || !finite(height) || !finite(originX) || !finite(originY) {
		return invalidArg("set window", "size %gx%g", width, height)
	}
	c.view.origin = Point{X: originX, Y: originY}
	c.view.size = Point{X: width, Y: height}
	c.view.hasWindow = true
	return nil
}

// Window returns the logical window, if one is set.
func (c *Canvas) Window() (originX, originY, width, height float64, ok bool) {
	v := c.view
	return v.origin.X, v.origin.Y, v.size.X, v.size.Y, v.hasWindow
}

// ResetWindow removes the logical window. It does nothing when no window
// is set.
func (c *Canvas) ResetWindow() {
	if !c.view.hasWindow {
		return
	}
	c.view.origin, c.view.size = Point{}, Point{}
	c.view.hasWindow = false
}

// SetClipRect restricts drawing to the logical rectangle (left, top)-(right,
// bottom), edges included. The rectangle is mapped to the device with the
// transform current at the time of the call; a rotated rectangle clips to
// its bounding box.
func (c *Canvas) SetClipRect(left, top, right, bottom float64) error {
	if err := c.check("set clip rect"); err != nil {
		return err
	}
	for _, v := range []float64{left, top, right, bottom} {
		if !finite(v) {
			return invalidArg("set clip rect", "non-finite coordinate")
		}
	}
	m := c.device()
	lo := Point{X: math.Inf(1), Y: math.Inf(1)}
	hi := Point{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, p := range []Point{{X: left, Y: top}, {X: right, Y: top}, {X: right, Y: bottom}, {X: left, Y: bottom}} {
		q := m.TransformPoint(p)
		lo = Point{X: math.Min(lo.X, q.X), Y: math.Min(lo.Y, q.Y)}
		hi = Point{X: math.Max(hi.X, q.X), Y: math.Max(hi.Y, q.Y)}
	}
	c.clip = image.Rect(
		int(math.Ceil(lo.X)), int(math.Ceil(lo.Y)),
		int(math.Floor(hi.X))+1, int(math.Floor(hi.Y))+1,
	).Intersect(c.bounds())
	c.clipOn = true
	c.clipFromView = false
	return nil
}

// DisableClip lets drawing reach the whole buffer.
func (c *Canvas) DisableClip() {
	c.clip = image.Rectangle{}
	c.clipOn = false
	c.clipFromView = false
}

// ClipRect returns the active clip region in device pixels.
func (c *Canvas) ClipRect() (image.Rectangle, bool) {
	return c.clip, c.clipOn
}

// clipRect is the region drawing may touch.
func (c *Canvas) clipRect() image.Rectangle {
	if c.clipOn {
		return c.clip
	}
	return c.bounds()
}

// device returns the full logical to device mapping.
func (c *Canvas) device() Matrix {
	return c.view.matrix(c.width, c.height).Multiply(c.tf.Matrix())
}

// MapPoint maps a logical point to device coordinates through the
// transform and the window/view-port mapping. Integer device coordinates
// are pixel centres.
func (c *Canvas) MapPoint(x, y float64) (float64, float64) {
	p := c.device().TransformPoint(Point{X: x, Y: y})
	return p.X, p.Y
}
