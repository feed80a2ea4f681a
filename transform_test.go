package bgi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/bgi/text"
)

func assertMaps(t *testing.T, c *Canvas, x, y, wantX, wantY float64) {
	t.Helper()
	gx, gy := c.MapPoint(x, y)
	assert.InDelta(t, wantX, gx, 1e-6, "x of (%g, %g)", x, y)
	assert.InDelta(t, wantY, gy, 1e-6, "y of (%g, %g)", x, y)
}

func TestTransformComposesInLocalFrame(t *testing.T) {
	cv := newTestCanvas(t, 100, 100)
	cv.Translate(100, 0)
	require.NoError(t, cv.Scale(2, 2))
	assertMaps(t, cv, 1, 1, 102, 2)

	cv.ResetTransform()
	require.NoError(t, cv.Scale(2, 2))
	cv.Translate(100, 0)
	assertMaps(t, cv, 1, 1, 202, 2)
}

func TestRotateIsClockwiseOnDevice(t *testing.T) {
	cv := newTestCanvas(t, 100, 100)
	cv.Rotate(90)
	assertMaps(t, cv, 10, 0, 0, 10)

	cv.ResetTransform()
	cv.RotateAbout(90, 10, 10)
	assertMaps(t, cv, 20, 10, 10, 20)
	assertMaps(t, cv, 10, 10, 10, 10)
}

func TestShearAndReflect(t *testing.T) {
	cv := newTestCanvas(t, 100, 100)
	require.NoError(t, cv.Shear(0.5, 0))
	assertMaps(t, cv, 0, 10, 5, 10)

	cv.ResetTransform()
	require.NoError(t, cv.ShearAbout(0.5, 0, 0, 10))
	assertMaps(t, cv, 0, 10, 0, 10)

	cv.ResetTransform()
	require.NoError(t, cv.Reflect(50, 0, 50, 100)) // vertical axis x = 50
	assertMaps(t, cv, 40, 7, 60, 7)
}

func TestTransformRejectsDegenerateOps(t *testing.T) {
	cv := newTestCanvas(t, 10, 10)
	cv.Translate(3, 4)
	before := cv.Transform()

	assert.ErrorIs(t, cv.Scale(0, 1), ErrInvalidArgument)
	assert.ErrorIs(t, cv.Scale(1, 0), ErrInvalidArgument)
	assert.ErrorIs(t, cv.Shear(1, 1), ErrInvalidArgument)
	assert.ErrorIs(t, cv.Reflect(5, 5, 5, 5), ErrInvalidArgument)
	assert.ErrorIs(t, cv.SetTransform(Matrix{A: 1, B: 2, D: 2, E: 4}), ErrInvalidArgument)

	assert.Equal(t, before, cv.Transform())
}

func TestSetTransform(t *testing.T) {
	cv := newTestCanvas(t, 10, 10)
	m := Matrix{A: 2, E: 3, C: 1, F: 1}
	require.NoError(t, cv.SetTransform(m))
	assert.Equal(t, m, cv.Transform())
	assertMaps(t, cv, 1, 1, 3, 4)
}

func TestFlipYIsIdempotent(t *testing.T) {
	cv := newTestCanvas(t, 100, 100)
	cv.Translate(0, 100)
	base := cv.Transform()

	cv.SetFlipY(true)
	once := cv.Transform()
	cv.SetFlipY(true)
	assert.Equal(t, once, cv.Transform())
	assert.True(t, cv.FlipY())
	assertMaps(t, cv, 0, 10, 0, 90)

	cv.SetFlipY(false)
	assert.Equal(t, base, cv.Transform())
	assert.False(t, cv.FlipY())
}

func TestSaveRestoreRoundTrip(t *testing.T) {
	cv := newTestCanvas(t, 50, 50)
	cv.Translate(5, 6)
	cv.SetColor(Green)
	cv.SetFillColor(Magenta)
	wantTf, wantPen, wantBrush, wantFont := cv.Transform(), cv.Pen(), cv.Brush(), cv.Font()

	cv.Save()
	cv.RotateAbout(33, 10, 10)
	require.NoError(t, cv.Scale(2, 3))
	cv.SetFlipY(true)
	require.NoError(t, cv.SetLineWidth(7))
	cv.SetLineStyle(LineDot)
	cv.SetColor(Red)
	cv.SetFillStyle(FillNone)
	cv.SetFont(text.Basic())
	require.NoError(t, cv.Restore())

	assert.Equal(t, wantTf, cv.Transform())
	assert.False(t, cv.FlipY())
	assert.Equal(t, wantPen, cv.Pen())
	assert.Equal(t, wantBrush, cv.Brush())
	assert.Same(t, wantFont, cv.Font())
}

func TestSaveRestoreNests(t *testing.T) {
	cv := newTestCanvas(t, 10, 10)
	cv.Save()
	cv.Translate(1, 0)
	cv.Save()
	cv.Translate(1, 0)

	require.NoError(t, cv.Restore())
	assertMaps(t, cv, 0, 0, 1, 0)
	require.NoError(t, cv.Restore())
	assertMaps(t, cv, 0, 0, 0, 0)
}

func TestRestoreWithoutSave(t *testing.T) {
	cv := newTestCanvas(t, 10, 10)
	cv.Translate(2, 2)
	cv.SetColor(Blue)
	before, pen := cv.Transform(), cv.Pen()

	err := cv.Restore()
	assert.ErrorIs(t, err, ErrEmptyStack)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, before, cv.Transform())
	assert.Equal(t, pen, cv.Pen())
}

func TestTransformStateDirect(t *testing.T) {
	ts := NewTransformState()
	assert.True(t, ts.Matrix().IsIdentity())

	ts.Translate(1, 2)
	x, y := ts.MapPoint(0, 0)
	assert.InDelta(t, 1, x, eps)
	assert.InDelta(t, 2, y, eps)

	ts.SetFlipY(true)
	ts.Reset()
	assert.True(t, ts.Matrix().IsIdentity())
	assert.False(t, ts.FlipY())
}
