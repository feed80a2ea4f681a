package bgi

import (
	"fmt"
	"image"
	"io"

	"github.com/gogpu/bgi/text"
)

// Canvas is an immediate-mode drawing surface. It owns a pixel buffer, a
// foreground mask of the same size, a transform with a save stack and the
// current drawing state. Every primitive updates the pixels and the mask
// together before it returns.
//
// A Canvas is not safe for concurrent use.
type Canvas struct {
	width  int
	height int
	pix    *Pixmap
	mask   *Mask

	tf    TransformState
	stack []savedState

	pen        Pen
	brush      Brush
	background Color
	font       *text.Face
	mode       CompositionMode
	antialias  bool

	view         viewMapping
	clip         image.Rectangle
	clipOn       bool
	clipFromView bool

	pos Point // current drawing position, logical

	observer Observer
	dirty    image.Rectangle

	closed bool
}

// savedState is one Save entry. Clip and background are not part of it.
type savedState struct {
	tf    TransformState
	pen   Pen
	brush Brush
	font  *text.Face
}

// Ensure Canvas implements io.Closer
var _ io.Closer = (*Canvas)(nil)

// NewCanvas creates a canvas filled with the background color (white
// unless WithBackground says otherwise) and an all-background mask.
func NewCanvas(width, height int, opts ...Option) (*Canvas, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.pen.Width < 0 || !finite(o.pen.Width) {
		return nil, invalidArg("new canvas", "line width %g", o.pen.Width)
	}
	pix, err := NewPixmap(width, height)
	if err != nil {
		return nil, fmt.Errorf("bgi: new canvas: %w", err)
	}
	pix.Fill(o.background)
	c := newCanvas(pix, o)
	Logger().Debug("canvas created", "width", width, "height", height)
	return c, nil
}

// NewCanvasFromImage creates a canvas holding a copy of img. The whole
// image counts as background.
func NewCanvasFromImage(img image.Image, opts ...Option) (*Canvas, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	pix, err := PixmapFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("bgi: new canvas from image: %w", err)
	}
	c := newCanvas(pix, o)
	Logger().Debug("canvas created from image", "width", c.width, "height", c.height)
	return c, nil
}

func newCanvas(pix *Pixmap, o canvasOptions) *Canvas {
	font := o.font
	if font == nil {
		font = text.Default()
	}
	return &Canvas{
		width:      pix.Width(),
		height:     pix.Height(),
		pix:        pix,
		mask:       NewMask(pix.Width(), pix.Height()),
		tf:         NewTransformState(),
		stack:      make([]savedState, 0, 8),
		pen:        o.pen,
		brush:      o.brush,
		background: o.background,
		font:       font,
		mode:       o.mode,
		antialias:  o.antialias,
		observer:   o.observer,
	}
}

// Close releases the buffers. Later drawing calls fail with ErrClosed.
// Close is idempotent.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.pix, c.mask = nil, nil
	c.stack = nil
	Logger().Debug("canvas closed", "width", c.width, "height", c.height)
	return nil
}

// Closed reports whether Close has been called.
func (c *Canvas) Closed() bool { return c.closed }

// check guards operations that need the buffers.
func (c *Canvas) check(op string) error {
	if c.closed {
		return fmt.Errorf("bgi: %s: %w", op, ErrClosed)
	}
	return nil
}

// Width returns the width in device pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the height in device pixels.
func (c *Canvas) Height() int { return c.height }

func (c *Canvas) bounds() image.Rectangle {
	return image.Rect(0, 0, c.width, c.height)
}

// Pixmap returns the live pixel buffer for presenters. Nil after Close.
func (c *Canvas) Pixmap() *Pixmap { return c.pix }

// Mask returns the live foreground mask. Nil after Close.
func (c *Canvas) Mask() *Mask { return c.mask }

// Pen returns the current pen.
func (c *Canvas) Pen() Pen { return c.pen }

// SetPen replaces the pen.
func (c *Canvas) SetPen(p Pen) error {
	if p.Width < 0 || !finite(p.Width) {
		return invalidArg("set pen", "width %g", p.Width)
	}
	c.pen = p
	return nil
}

// Color returns the pen color.
func (c *Canvas) Color() Color { return c.pen.Color }

// SetColor sets the pen color used for outlines, lines and text.
func (c *Canvas) SetColor(col Color) { c.pen.Color = col }

// LineWidth returns the pen width in logical units.
func (c *Canvas) LineWidth() float64 { return c.pen.Width }

// SetLineWidth sets the pen width in logical units. A width of zero draws
// the thinnest visible line.
func (c *Canvas) SetLineWidth(w float64) error {
	if w < 0 || !finite(w) {
		return invalidArg("set line width", "width %g", w)
	}
	c.pen.Width = w
	return nil
}

// LineStyle returns the pen dash style.
func (c *Canvas) LineStyle() LineStyle { return c.pen.Style }

// SetLineStyle sets the pen dash style. LineNone suppresses outlines.
func (c *Canvas) SetLineStyle(s LineStyle) { c.pen.Style = s }

// Brush returns the current brush.
func (c *Canvas) Brush() Brush { return c.brush }

// SetBrush replaces the brush.
func (c *Canvas) SetBrush(b Brush) { c.brush = b }

// FillColor returns the brush color.
func (c *Canvas) FillColor() Color { return c.brush.Color }

// SetFillColor sets the brush color.
func (c *Canvas) SetFillColor(col Color) { c.brush.Color = col }

// FillStyle returns the brush style.
func (c *Canvas) FillStyle() FillStyle { return c.brush.Style }

// SetFillStyle sets the brush style. FillNone suppresses fills.
func (c *Canvas) SetFillStyle(s FillStyle) { c.brush.Style = s }

// CompositionMode returns the mode used to write ink.
func (c *Canvas) CompositionMode() CompositionMode { return c.mode }

// SetCompositionMode sets the mode used to write ink. Unknown modes fall
// back to SourceOver when drawing.
func (c *Canvas) SetCompositionMode(m CompositionMode) { c.mode = m }

// Antialias reports whether anti-aliased rendering is on.
func (c *Canvas) Antialias() bool { return c.antialias }

// SetAntialias switches between exact pixel rendering (the default) and
// anti-aliased coverage.
func (c *Canvas) SetAntialias(on bool) { c.antialias = on }

// Position returns the current drawing position.
func (c *Canvas) Position() (x, y float64) { return c.pos.X, c.pos.Y }

// MoveTo sets the current drawing position.
func (c *Canvas) MoveTo(x, y float64) { c.pos = Point{X: x, Y: y} }

// MoveRel moves the current drawing position by (dx, dy).
func (c *Canvas) MoveRel(dx, dy float64) { c.pos = c.pos.Add(Point{X: dx, Y: dy}) }

// ResetPen restores the default pen.
func (c *Canvas) ResetPen() { c.pen = DefaultPen() }

// ResetBrush restores the default brush.
func (c *Canvas) ResetBrush() { c.brush = DefaultBrush() }

// ResetColors restores the default pen and brush colors. Styles, width and
// the background are kept.
func (c *Canvas) ResetColors() {
	c.pen.Color = DefaultPen().Color
	c.brush.Color = DefaultBrush().Color
}

// BackgroundColor returns the background color.
func (c *Canvas) BackgroundColor() Color { return c.background }

// SetBackgroundColor changes the background color and repaints every
// background pixel with it. Foreground pixels and the mask are untouched.
func (c *Canvas) SetBackgroundColor(col Color) error {
	if err := c.check("set background color"); err != nil {
		return err
	}
	c.background = col
	s := col.premul()
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			if c.mask.IsForeground(x, y) {
				continue
			}
			copy(c.pix.data[c.pix.offset(x, y):], s[:])
		}
	}
	c.touch(c.bounds())
	return nil
}

// Clear fills the whole buffer with the background color, marks every
// pixel as background and moves the drawing position to the origin.
func (c *Canvas) Clear() error {
	if err := c.check("clear"); err != nil {
		return err
	}
	c.pix.Fill(c.background)
	c.mask.Clear()
	c.pos = Point{}
	c.touch(c.bounds())
	return nil
}

// SetObserver installs fn as the change observer; nil removes it.
func (c *Canvas) SetObserver(fn Observer) { c.observer = fn }

// Dirty returns the union of device rectangles changed since the last
// ResetDirty, for presenters that poll instead of observing.
func (c *Canvas) Dirty() image.Rectangle { return c.dirty }

// ResetDirty clears the accumulated dirty region.
func (c *Canvas) ResetDirty() { c.dirty = image.Rectangle{} }

// touch records a change and notifies the observer.
func (c *Canvas) touch(r image.Rectangle) {
	if r.Empty() {
		return
	}
	c.dirty = c.dirty.Union(r)
	if c.observer != nil {
		c.observer(c, r)
	}
}
