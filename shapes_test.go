package bgi

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshot struct {
	pix  []byte
	mask *Mask
}

func snap(cv *Canvas) snapshot {
	return snapshot{pix: bytes.Clone(cv.Pixmap().Data()), mask: cv.Mask().Clone()}
}

// assertMaskSync checks that every pixel whose value changed since s is
// foreground, that no pixel went back to background and, when exact is
// set, that no unchanged pixel became foreground.
func assertMaskSync(t *testing.T, cv *Canvas, s snapshot, exact bool) {
	t.Helper()
	data := cv.Pixmap().Data()
	bad := 0
	for y := 0; y < cv.Height(); y++ {
		for x := 0; x < cv.Width(); x++ {
			i := (y*cv.Width() + x) * 4
			changed := !bytes.Equal(data[i:i+4], s.pix[i:i+4])
			was, now := s.mask.IsForeground(x, y), cv.Mask().IsForeground(x, y)
			switch {
			case changed && !now:
				t.Errorf("pixel (%d, %d) changed but is background", x, y)
				bad++
			case was && !now:
				t.Errorf("pixel (%d, %d) went back to background", x, y)
				bad++
			case exact && !was && now && !changed:
				t.Errorf("pixel (%d, %d) marked foreground without changing", x, y)
				bad++
			}
			if bad > 10 {
				t.FailNow()
			}
		}
	}
}

// primitives lists one call per drawing operation, all on a 64x64 canvas.
var primitives = []struct {
	name string
	draw func(cv *Canvas) error
}{
	{"Line", func(cv *Canvas) error { return cv.Line(3, 5, 60, 41) }},
	{"LineTo", func(cv *Canvas) error { cv.MoveTo(60, 2); return cv.LineTo(2, 60) }},
	{"Polyline", func(cv *Canvas) error { return cv.Polyline(2, 2, 30, 50, 60, 10, 40, 3) }},
	{"Polygon", func(cv *Canvas) error { return cv.Polygon(10, 10, 50, 14, 30, 55) }},
	{"DrawPolygon", func(cv *Canvas) error { return cv.DrawPolygon(10, 10, 50, 14, 30, 55) }},
	{"FillPolygon", func(cv *Canvas) error { return cv.FillPolygon(10, 10, 50, 14, 30, 55, 5, 40) }},
	{"Rect", func(cv *Canvas) error { return cv.Rect(5, 6, 50, 40) }},
	{"DrawRect", func(cv *Canvas) error { return cv.DrawRect(5, 6, 50, 40) }},
	{"FillRect", func(cv *Canvas) error { return cv.FillRect(5, 6, 50, 40) }},
	{"RoundedRect", func(cv *Canvas) error { return cv.RoundedRect(5, 6, 50, 40, 8, 5) }},
	{"DrawRoundedRect", func(cv *Canvas) error { return cv.DrawRoundedRect(5, 6, 50, 40, 8, 5) }},
	{"FillRoundedRect", func(cv *Canvas) error { return cv.FillRoundedRect(5, 6, 50, 40, 8, 5) }},
	{"Circle", func(cv *Canvas) error { return cv.Circle(32, 32, 20) }},
	{"DrawCircle", func(cv *Canvas) error { return cv.DrawCircle(32, 32, 20) }},
	{"FillCircle", func(cv *Canvas) error { return cv.FillCircle(32, 32, 20) }},
	{"Ellipse", func(cv *Canvas) error { return cv.Ellipse(32, 32, 25, 12) }},
	{"DrawEllipse", func(cv *Canvas) error { return cv.DrawEllipse(32, 32, 25, 12) }},
	{"FillEllipse", func(cv *Canvas) error { return cv.FillEllipse(32, 32, 25, 12) }},
	{"Arc", func(cv *Canvas) error { return cv.Arc(32, 32, 30, 250, 20, 15) }},
	{"Pie", func(cv *Canvas) error { return cv.Pie(32, 32, 10, 120, 25, 25) }},
	{"DrawPie", func(cv *Canvas) error { return cv.DrawPie(32, 32, 10, 120, 25, 25) }},
	{"FillPie", func(cv *Canvas) error { return cv.FillPie(32, 32, 300, 60, 25, 25) }},
	{"Chord", func(cv *Canvas) error { return cv.Chord(32, 32, 0, 200, 25, 20) }},
	{"DrawChord", func(cv *Canvas) error { return cv.DrawChord(32, 32, 0, 200, 25, 20) }},
	{"FillChord", func(cv *Canvas) error { return cv.FillChord(32, 32, 0, 200, 25, 20) }},
	{"Bezier", func(cv *Canvas) error { return cv.Bezier(2, 60, 10, -20, 50, 90, 62, 4) }},
	{"DrawPoint", func(cv *Canvas) error { return cv.DrawPoint(20, 20) }},
	{"PutPixel", func(cv *Canvas) error { return cv.PutPixel(20, 20, Green) }},
	{"DrawText", func(cv *Canvas) error { return cv.DrawText(4, 4, "Mask", 42) }},
	{"DrawRectText", func(cv *Canvas) error {
		return cv.DrawRectText(0, 0, 63, 63, "wrapped text here", TextWordWrap|AlignCenter)
	}},
	{"FloodFill", func(cv *Canvas) error {
		return cv.FloodFill(1, 1, Blue)
	}},
	{"DrawImage", func(cv *Canvas) error {
		src, err := NewCanvas(16, 16, WithFillColor(Magenta))
		if err != nil {
			return err
		}
		defer src.Close()
		if err := src.FillCircle(8, 8, 6); err != nil {
			return err
		}
		return cv.DrawImage(10, 12, src, &DrawImageOptions{Width: 40, Height: 30, ForegroundOnly: true})
	}},
}

func TestPrimitivesKeepMaskInSync(t *testing.T) {
	setups := []struct {
		name  string
		setup func(t *testing.T, cv *Canvas)
	}{
		{"identity", func(*testing.T, *Canvas) {}},
		{"thick pen", func(t *testing.T, cv *Canvas) { require.NoError(t, cv.SetLineWidth(4)) }},
		{"dashed", func(_ *testing.T, cv *Canvas) { cv.SetLineStyle(LineDashDot) }},
		{"rotated", func(t *testing.T, cv *Canvas) {
			cv.RotateAbout(30, 32, 32)
			require.NoError(t, cv.Scale(1.1, 0.8))
		}},
		{"flipped", func(_ *testing.T, cv *Canvas) {
			cv.Translate(0, 64)
			cv.SetFlipY(true)
		}},
		{"clipped", func(t *testing.T, cv *Canvas) { require.NoError(t, cv.SetClipRect(8, 8, 40, 50)) }},
	}
	for _, s := range setups {
		for _, p := range primitives {
			t.Run(s.name+"/"+p.name, func(t *testing.T) {
				cv := newTestCanvas(t, 64, 64, WithColor(Blue), WithFillColor(Red))
				s.setup(t, cv)
				before := snap(cv)
				require.NoError(t, p.draw(cv))
				assertMaskSync(t, cv, before, true)
			})
		}
	}
}

func TestAntialiasedPrimitivesKeepMaskInSync(t *testing.T) {
	for _, p := range primitives {
		t.Run(p.name, func(t *testing.T) {
			cv := newTestCanvas(t, 64, 64, WithColor(Blue), WithFillColor(Red), WithAntialias(true))
			before := snap(cv)
			require.NoError(t, p.draw(cv))
			assertMaskSync(t, cv, before, false)
			assert.Positive(t, cv.Mask().Count())
		})
	}
}

func TestRectPixels(t *testing.T) {
	cv := newTestCanvas(t, 100, 100)
	require.NoError(t, cv.Rect(10, 10, 90, 90))

	for _, p := range [][2]int{{10, 10}, {90, 90}, {90, 10}, {10, 90}, {50, 10}, {90, 50}} {
		assert.Equal(t, Black, pixel(t, cv, p[0], p[1]), "edge pixel %v", p)
	}
	for _, p := range [][2]int{{11, 11}, {50, 50}, {9, 10}, {91, 90}, {90, 91}, {50, 9}} {
		assert.Equal(t, White, pixel(t, cv, p[0], p[1]), "pixel %v", p)
	}
	assert.Equal(t, 4*80, cv.Mask().Count())
}

func TestFillRectIsHalfOpen(t *testing.T) {
	cv := newTestCanvas(t, 30, 30, WithFillColor(Red))
	require.NoError(t, cv.FillRect(10, 10, 20, 20))
	assert.Equal(t, Red, pixel(t, cv, 10, 10))
	assert.Equal(t, Red, pixel(t, cv, 19, 19))
	assert.Equal(t, White, pixel(t, cv, 20, 19))
	assert.Equal(t, White, pixel(t, cv, 19, 20))
	assert.Equal(t, 100, countColor(cv, Red))
}

func TestDrawRectFillsThenOutlines(t *testing.T) {
	cv := newTestCanvas(t, 30, 30, WithFillColor(Red))
	require.NoError(t, cv.DrawRect(10, 10, 20, 20))
	assert.Equal(t, Black, pixel(t, cv, 10, 10))
	assert.Equal(t, Black, pixel(t, cv, 20, 20))
	assert.Equal(t, Red, pixel(t, cv, 15, 15))
	assert.Equal(t, 81, countColor(cv, Red))
}

func TestStyleNoneSuppresses(t *testing.T) {
	cv := newTestCanvas(t, 30, 30, WithFillColor(Red))
	cv.SetLineStyle(LineNone)
	require.NoError(t, cv.Rect(2, 2, 20, 20))
	require.NoError(t, cv.Line(0, 0, 29, 29))
	assert.Zero(t, cv.Mask().Count())

	require.NoError(t, cv.DrawRect(10, 10, 20, 20))
	assert.Equal(t, Red, pixel(t, cv, 10, 10))
	assert.Equal(t, White, pixel(t, cv, 20, 20))

	cv.ResetPen()
	cv.SetFillStyle(FillNone)
	require.NoError(t, cv.Clear())
	require.NoError(t, cv.DrawCircle(15, 15, 8))
	assert.Equal(t, White, pixel(t, cv, 15, 15))
	assert.Equal(t, Black, pixel(t, cv, 23, 15))
	require.NoError(t, cv.FillRect(0, 0, 5, 5))
	assert.Equal(t, White, pixel(t, cv, 1, 1))
}

func TestDashedLine(t *testing.T) {
	cv := newTestCanvas(t, 40, 10)
	cv.SetLineStyle(LineDash)
	require.NoError(t, cv.Line(0, 5, 30, 5))

	want := "1111001111001111001111001111"
	var got []byte
	for x := 0; x < len(want); x++ {
		if pixel(t, cv, x, 5) == Black {
			got = append(got, '1')
		} else {
			got = append(got, '0')
		}
	}
	assert.Equal(t, want, string(got))
}

func TestLineWidth(t *testing.T) {
	cv := newTestCanvas(t, 40, 40)
	require.NoError(t, cv.SetLineWidth(5))
	require.NoError(t, cv.Line(10, 20, 30, 20))
	for y := 18; y <= 22; y++ {
		assert.Equal(t, Black, pixel(t, cv, 20, y), "row %d", y)
	}
	assert.Equal(t, White, pixel(t, cv, 20, 17))
	assert.Equal(t, White, pixel(t, cv, 20, 23))
}

func TestThinPenDrawsOnePixel(t *testing.T) {
	thin := newTestCanvas(t, 40, 40)
	require.NoError(t, thin.SetLineWidth(0.2))
	require.NoError(t, thin.Line(3, 7, 35, 29))

	one := newTestCanvas(t, 40, 40)
	require.NoError(t, one.Line(3, 7, 35, 29))

	assert.Equal(t, one.Pixmap().Data(), thin.Pixmap().Data())
}

func TestPenWidthFollowsScale(t *testing.T) {
	cv := newTestCanvas(t, 40, 40)
	require.NoError(t, cv.Scale(2, 2))
	require.NoError(t, cv.Line(5, 10, 15, 10))
	assert.Equal(t, Black, pixel(t, cv, 20, 19))
	assert.Equal(t, Black, pixel(t, cv, 20, 20))
	assert.Equal(t, White, pixel(t, cv, 20, 18))
	assert.Equal(t, White, pixel(t, cv, 20, 21))
}

func TestCurves(t *testing.T) {
	t.Run("arc runs counter-clockwise from 3 o'clock", func(t *testing.T) {
		cv := newTestCanvas(t, 100, 100)
		require.NoError(t, cv.Arc(50, 50, 0, 90, 20, 20))
		assert.Equal(t, Black, pixel(t, cv, 70, 50))
		assert.Equal(t, Black, pixel(t, cv, 50, 30))
		assert.Equal(t, White, pixel(t, cv, 30, 50))
		assert.Equal(t, White, pixel(t, cv, 50, 70))
	})
	t.Run("circle", func(t *testing.T) {
		cv := newTestCanvas(t, 100, 100, WithFillColor(Red))
		require.NoError(t, cv.Circle(50, 50, 20))
		for _, p := range [][2]int{{70, 50}, {30, 50}, {50, 30}, {50, 70}} {
			assert.Equal(t, Black, pixel(t, cv, p[0], p[1]), "pixel %v", p)
		}
		assert.Equal(t, White, pixel(t, cv, 50, 50))

		require.NoError(t, cv.FillCircle(50, 50, 20))
		n := float64(countColor(cv, Red))
		assert.InEpsilon(t, math.Pi*400, n, 0.05)
	})
	t.Run("ellipse", func(t *testing.T) {
		cv := newTestCanvas(t, 100, 100)
		require.NoError(t, cv.Ellipse(50, 50, 30, 10))
		assert.Equal(t, Black, pixel(t, cv, 80, 50))
		assert.Equal(t, Black, pixel(t, cv, 50, 40))
		assert.Equal(t, Black, pixel(t, cv, 50, 60))
		assert.Equal(t, White, pixel(t, cv, 50, 35))
	})
	t.Run("pie", func(t *testing.T) {
		cv := newTestCanvas(t, 100, 100, WithFillColor(Red))
		require.NoError(t, cv.FillPie(50, 50, 0, 90, 30, 30))
		assert.Equal(t, Red, pixel(t, cv, 60, 40))
		assert.Equal(t, White, pixel(t, cv, 40, 60))
		assert.Equal(t, White, pixel(t, cv, 40, 40))
		assert.Equal(t, White, pixel(t, cv, 60, 60))
	})
	t.Run("chord", func(t *testing.T) {
		cv := newTestCanvas(t, 100, 100, WithFillColor(Red))
		require.NoError(t, cv.FillChord(50, 50, 0, 180, 30, 30))
		assert.Equal(t, Red, pixel(t, cv, 50, 40))
		assert.Equal(t, White, pixel(t, cv, 50, 60))
	})
	t.Run("bezier", func(t *testing.T) {
		cv := newTestCanvas(t, 40, 20)
		require.NoError(t, cv.Bezier(0, 10, 10, 10, 20, 10, 30, 10))
		assert.Equal(t, Black, pixel(t, cv, 15, 10))
		assert.Equal(t, White, pixel(t, cv, 15, 12))
	})
}

func TestDrawPoint(t *testing.T) {
	cv := newTestCanvas(t, 10, 10)
	cv.SetLineStyle(LineDot)
	require.NoError(t, cv.DrawPoint(5, 5))
	assert.Equal(t, Black, pixel(t, cv, 5, 5))
	assert.Equal(t, 1, cv.Mask().Count())
}

func TestPutGetPixel(t *testing.T) {
	cv := newTestCanvas(t, 20, 20)
	cv.SetCompositionMode(XorPut)
	require.NoError(t, cv.SetClipRect(0, 0, 2, 2))
	cv.Translate(5, 5)

	require.NoError(t, cv.PutPixel(3, 4, Red))
	assert.Equal(t, Red, pixel(t, cv, 8, 9), "PutPixel ignores clip and mode")
	got, err := cv.GetPixel(3, 4)
	require.NoError(t, err)
	assert.Equal(t, Red, got)
	assert.True(t, cv.Mask().IsForeground(8, 9))

	err = cv.PutPixel(100, 0, Red)
	assert.ErrorIs(t, err, ErrOutOfRange)
	var re *PixelRangeError
	assert.ErrorAs(t, err, &re)
	_, err = cv.GetPixel(-10, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestInvalidArgumentsChangeNothing(t *testing.T) {
	nan := math.NaN()
	calls := map[string]func(cv *Canvas) error{
		"polyline odd":       func(cv *Canvas) error { return cv.Polyline(1, 2, 3) },
		"polyline one point": func(cv *Canvas) error { return cv.Polyline(1, 2) },
		"polygon two points": func(cv *Canvas) error { return cv.DrawPolygon(0, 0, 10, 10) },
		"polygon odd":        func(cv *Canvas) error { return cv.FillPolygon(0, 0, 10, 10, 5) },
		"bezier six":         func(cv *Canvas) error { return cv.Bezier(0, 0, 1, 1, 2, 2) },
		"bezier ten":         func(cv *Canvas) error { return cv.Bezier(0, 0, 1, 1, 2, 2, 3, 3, 4, 4) },
		"circle radius":      func(cv *Canvas) error { return cv.DrawCircle(5, 5, -1) },
		"ellipse radius":     func(cv *Canvas) error { return cv.FillEllipse(5, 5, 1, -1) },
		"rounded rect":       func(cv *Canvas) error { return cv.DrawRoundedRect(0, 0, 9, 9, -2, 2) },
		"arc nan":            func(cv *Canvas) error { return cv.Arc(5, 5, nan, 90, 3, 3) },
		"pie radius":         func(cv *Canvas) error { return cv.FillPie(5, 5, 0, 90, -3, 3) },
		"line nan":           func(cv *Canvas) error { return cv.Line(0, nan, 5, 5) },
		"rect inf":           func(cv *Canvas) error { return cv.FillRect(0, 0, math.Inf(1), 5) },
		"point nan":          func(cv *Canvas) error { return cv.DrawPoint(nan, 0) },
		"text nan":           func(cv *Canvas) error { return cv.DrawText(nan, 0, "x") },
		"flood nan":          func(cv *Canvas) error { return cv.FloodFill(nan, 0, Black) },
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			cv := newTestCanvas(t, 10, 10)
			before := snap(cv)
			assert.ErrorIs(t, call(cv), ErrInvalidArgument)
			assert.Equal(t, before.pix, cv.Pixmap().Data())
			assert.Zero(t, cv.Mask().Count())
		})
	}
}

func TestXorPutTwiceRestores(t *testing.T) {
	cv := newTestCanvas(t, 30, 30, WithFillColor(Red))
	require.NoError(t, cv.FillRect(0, 0, 20, 20))
	before := bytes.Clone(cv.Pixmap().Data())

	cv.SetCompositionMode(XorPut)
	cv.SetFillColor(Cyan)
	require.NoError(t, cv.FillRect(5, 5, 25, 25))
	assert.NotEqual(t, before, cv.Pixmap().Data())
	require.NoError(t, cv.FillRect(5, 5, 25, 25))
	assert.Equal(t, before, cv.Pixmap().Data())
}

func TestSourceOverBlends(t *testing.T) {
	cv := newTestCanvas(t, 4, 4, WithFillColor(RGBA(0, 0, 0, 128)))
	require.NoError(t, cv.FillRect(0, 0, 4, 4))
	got := pixel(t, cv, 1, 1)
	assert.Equal(t, uint8(255), got.A)
	assert.InDelta(t, 127, int(got.R), 1)

	cv.SetCompositionMode(CopyPut)
	require.NoError(t, cv.FillRect(0, 0, 4, 4))
	assert.Equal(t, RGBA(0, 0, 0, 128), pixel(t, cv, 1, 1))
}
