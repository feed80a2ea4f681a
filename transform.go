package bgi

import (
	"fmt"
	"math"

	"github.com/gogpu/bgi/internal/raster"
)

// TransformState is the logical-to-world transform of a canvas together
// with its flip-y flag. Every operation composes in the current local
// frame: M = M × op.
//
// The zero value is not ready for use; call NewTransformState.
type TransformState struct {
	matrix Matrix
	flipY  bool
}

// NewTransformState returns an identity transform.
func NewTransformState() TransformState {
	return TransformState{matrix: Identity()}
}

// Matrix returns the current matrix.
func (t *TransformState) Matrix() Matrix { return t.matrix }

// FlipY reports whether the y axis points up.
func (t *TransformState) FlipY() bool { return t.flipY }

// MapPoint applies the current matrix.
func (t *TransformState) MapPoint(x, y float64) (float64, float64) {
	p := t.matrix.TransformPoint(raster.Pt(x, y))
	return p.X, p.Y
}

// Translate moves the origin.
func (t *TransformState) Translate(dx, dy float64) {
	t.matrix = t.matrix.Multiply(Translate(dx, dy))
}

// Rotate turns the axes by degrees about (cx, cy); positive angles are
// clockwise on the device.
func (t *TransformState) Rotate(degrees, cx, cy float64) {
	t.about(Rotate(degrees*math.Pi/180), cx, cy)
}

// Scale scales the axes. Zero or non-finite factors are rejected.
func (t *TransformState) Scale(sx, sy float64) error {
	if sx == 0 || sy == 0 || !finite(sx) || !finite(sy) {
		return invalidArg("scale", "factors (%g, %g)", sx, sy)
	}
	t.matrix = t.matrix.Multiply(Scale(sx, sy))
	return nil
}

// Shear shears the axes about (cx, cy): x' = x + sh*y, y' = sv*x + y.
// Factors whose product is 1 collapse the plane and are rejected.
func (t *TransformState) Shear(sh, sv, cx, cy float64) error {
	op := Shear(sh, sv)
	if !op.Invertible() {
		return invalidArg("shear", "factors (%g, %g) are degenerate", sh, sv)
	}
	t.about(op, cx, cy)
	return nil
}

// Reflect mirrors across the line through (x1, y1) and (x2, y2).
func (t *TransformState) Reflect(x1, y1, x2, y2 float64) error {
	op, ok := Reflect(raster.Pt(x1, y1), raster.Pt(x2, y2))
	if !ok {
		return invalidArg("reflect", "axis points coincide at (%g, %g)", x1, y1)
	}
	t.matrix = t.matrix.Multiply(op)
	return nil
}

// SetMatrix replaces the matrix. Singular matrices are rejected.
func (t *TransformState) SetMatrix(m Matrix) error {
	if !m.Invertible() {
		return invalidArg("set transform", "matrix %+v is singular", m)
	}
	t.matrix = m
	return nil
}

// SetFlipY makes the y axis point up (true) or down (false). Setting the
// current value again changes nothing.
func (t *TransformState) SetFlipY(flip bool) {
	if flip == t.flipY {
		return
	}
	t.matrix = t.matrix.Multiply(Scale(1, -1))
	t.flipY = flip
}

// Reset restores the identity transform and clears flip-y.
func (t *TransformState) Reset() {
	*t = NewTransformState()
}

func (t *TransformState) about(op Matrix, cx, cy float64) {
	t.matrix = t.matrix.
		Multiply(Translate(cx, cy)).
		Multiply(op).
		Multiply(Translate(-cx, -cy))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Translate moves the logical origin by (dx, dy).
func (c *Canvas) Translate(dx, dy float64) { c.tf.Translate(dx, dy) }

// Rotate turns the logical axes by degrees about the origin, clockwise on
// the device.
func (c *Canvas) Rotate(degrees float64) { c.tf.Rotate(degrees, 0, 0) }

// RotateAbout turns the logical axes by degrees about (cx, cy).
func (c *Canvas) RotateAbout(degrees, cx, cy float64) { c.tf.Rotate(degrees, cx, cy) }

// Scale scales the logical axes. Zero factors fail with ErrInvalidArgument.
func (c *Canvas) Scale(sx, sy float64) error {
	if err := c.check("scale"); err != nil {
		return err
	}
	return c.tf.Scale(sx, sy)
}

// Shear shears the logical axes about the origin.
func (c *Canvas) Shear(sh, sv float64) error {
	return c.ShearAbout(sh, sv, 0, 0)
}

// ShearAbout shears the logical axes about (cx, cy).
func (c *Canvas) ShearAbout(sh, sv, cx, cy float64) error {
	if err := c.check("shear"); err != nil {
		return err
	}
	return c.tf.Shear(sh, sv, cx, cy)
}

// Reflect mirrors the logical plane across the line through (x1, y1) and
// (x2, y2).
func (c *Canvas) Reflect(x1, y1, x2, y2 float64) error {
	if err := c.check("reflect"); err != nil {
		return err
	}
	return c.tf.Reflect(x1, y1, x2, y2)
}

// Transform returns the current logical-to-world matrix.
func (c *Canvas) Transform() Matrix { return c.tf.Matrix() }

// SetTransform replaces the matrix, keeping the flip-y flag.
func (c *Canvas) SetTransform(m Matrix) error {
	if err := c.check("set transform"); err != nil {
		return err
	}
	return c.tf.SetMatrix(m)
}

// FlipY reports whether the y axis points up.
func (c *Canvas) FlipY() bool { return c.tf.FlipY() }

// SetFlipY makes the logical y axis point up. Text stays upright.
func (c *Canvas) SetFlipY(flip bool) { c.tf.SetFlipY(flip) }

// ResetTransform restores the identity transform and clears flip-y.
func (c *Canvas) ResetTransform() { c.tf.Reset() }

// Save pushes the transform, flip-y flag, pen, brush and font.
func (c *Canvas) Save() {
	c.stack = append(c.stack, savedState{tf: c.tf, pen: c.pen, brush: c.brush, font: c.font})
}

// Restore pops the state pushed by the matching Save. Without one it fails
// with ErrEmptyStack and changes nothing.
func (c *Canvas) Restore() error {
	if err := c.check("restore"); err != nil {
		return err
	}
	if len(c.stack) == 0 {
		return fmt.Errorf("bgi: restore: %w", ErrEmptyStack)
	}
	s := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.tf, c.pen, c.brush, c.font = s.tf, s.pen, s.brush, s.font
	return nil
}
