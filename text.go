package bgi

import (
	"fmt"
	"image"
	"strings"

	"github.com/gogpu/bgi/internal/raster"
	"github.com/gogpu/bgi/text"
)

// Font returns the current face.
func (c *Canvas) Font() *text.Face { return c.font }

// SetFont sets the face used for text. Nil restores the default face.
func (c *Canvas) SetFont(f *text.Face) {
	if f == nil {
		f = text.Default()
	}
	c.font = f
}

// SetFontSize switches the current face to another pixel size.
func (c *Canvas) SetFontSize(size float64) error {
	f, err := c.font.WithSize(size)
	if err != nil {
		return fmt.Errorf("bgi: set font size: %w: %w", ErrInvalidArgument, err)
	}
	c.font = f
	return nil
}

// LoadFont reads a TrueType/OpenType file and makes it the current face.
func (c *Canvas) LoadFont(path string, size float64) error {
	f, err := text.LoadFace(path, size)
	if err != nil {
		return ioFailure("load font", err)
	}
	c.font = f
	return nil
}

// TextWidth returns the advance width of s in logical units.
func (c *Canvas) TextWidth(s string) float64 {
	w, _ := c.font.Measure(s)
	return w
}

// TextHeight returns the height of s in logical units: the line height
// times the number of lines.
func (c *Canvas) TextHeight(s string) float64 {
	return c.font.Metrics().Height * float64(strings.Count(s, "\n")+1)
}

// DrawText draws its arguments joined by single spaces with the top-left
// corner of the text box at (x, y). Each newline starts a line one line
// height lower.
func (c *Canvas) DrawText(x, y float64, args ...any) error {
	return c.DrawTextSep(x, y, " ", args...)
}

// DrawTextSep is DrawText with a custom separator.
func (c *Canvas) DrawTextSep(x, y float64, sep string, args ...any) error {
	if err := c.check("draw text"); err != nil {
		return err
	}
	if err := checkFinite("draw text", x, y); err != nil {
		return err
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprint(a)
	}
	h := c.font.Metrics().Height
	var dirty image.Rectangle
	for i, line := range strings.Split(strings.Join(parts, sep), "\n") {
		dirty = dirty.Union(c.paint(c.textCoverage(x, y+float64(i)*h, line), c.pen.Color))
	}
	c.touch(dirty)
	return nil
}

// DrawRectText lays s out inside the logical rectangle (left, top)-(right,
// bottom) according to flags. Text is not clipped to the rectangle.
func (c *Canvas) DrawRectText(left, top, right, bottom float64, s string, flags TextFlags) error {
	if err := c.check("draw rect text"); err != nil {
		return err
	}
	if err := checkFinite("draw rect text", left, top, right, bottom); err != nil {
		return err
	}
	if right < left || bottom < top {
		return invalidArg("draw rect text", "inverted rectangle (%g, %g, %g, %g)", left, top, right, bottom)
	}

	var lines []string
	switch {
	case flags&TextSingleLine != 0:
		lines = []string{strings.ReplaceAll(s, "\n", " ")}
	case flags&TextWordWrap != 0:
		lines = c.font.Wrap(s, right-left)
	default:
		lines = strings.Split(s, "\n")
	}

	h := c.font.Metrics().Height
	y := top
	switch {
	case flags&AlignBottom != 0:
		y = bottom - h*float64(len(lines))
	case flags&AlignVCenter != 0:
		y = top + (bottom-top-h*float64(len(lines)))/2
	}

	var dirty image.Rectangle
	for i, line := range lines {
		x := left
		w, _ := c.font.Measure(line)
		switch {
		case flags&AlignRight != 0:
			x = right - w
		case flags&AlignHCenter != 0:
			x = left + (right-left-w)/2
		}
		dirty = dirty.Union(c.paint(c.textCoverage(x, y+float64(i)*h, line), c.pen.Color))
	}
	c.touch(dirty)
	return nil
}

// textCoverage rasterises one line of text with the top-left of its box at
// the logical point (x, y). With flip-y the glyphs are mirrored back so
// they stay upright and still occupy logical [y, y+h].
func (c *Canvas) textCoverage(x, y float64, s string) *raster.Coverage {
	glyphs := c.font.Rasterize(s)
	if glyphs.Rect.Empty() {
		return nil
	}
	local := c.device().Multiply(Translate(x, y))
	if c.tf.FlipY() {
		h := c.font.Metrics().Height
		local = c.device().Multiply(Translate(x, y+h)).Multiply(Scale(1, -1))
	}
	cov := c.imageCoverage(local, glyphs, glyphs.Rect)
	if cov != nil && !c.antialias {
		cov.Threshold()
	}
	return cov
}
