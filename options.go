package bgi

import (
	"image"

	"github.com/gogpu/bgi/text"
)

// Option configures a Canvas during creation.
//
// Example:
//
//	cv, err := bgi.NewCanvas(640, 480,
//	    bgi.WithBackground(bgi.Black),
//	    bgi.WithColor(bgi.Yellow),
//	    bgi.WithLineWidth(2),
//	)
type Option func(*canvasOptions)

// Observer is called after every primitive that changed the canvas, with
// the device rectangle it touched.
type Observer func(c *Canvas, dirty image.Rectangle)

type canvasOptions struct {
	background Color
	pen        Pen
	brush      Brush
	font       *text.Face
	antialias  bool
	mode       CompositionMode
	observer   Observer
}

func defaultOptions() canvasOptions {
	return canvasOptions{
		background: White,
		pen:        DefaultPen(),
		brush:      DefaultBrush(),
		mode:       SourceOver,
	}
}

// WithBackground sets the background color the canvas starts with.
func WithBackground(c Color) Option {
	return func(o *canvasOptions) {
		o.background = c
	}
}

// WithColor sets the pen color.
func WithColor(c Color) Option {
	return func(o *canvasOptions) {
		o.pen.Color = c
	}
}

// WithFillColor sets the brush color.
func WithFillColor(c Color) Option {
	return func(o *canvasOptions) {
		o.brush.Color = c
	}
}

// WithLineWidth sets the pen width. Negative widths make NewCanvas fail.
func WithLineWidth(w float64) Option {
	return func(o *canvasOptions) {
		o.pen.Width = w
	}
}

// WithLineStyle sets the pen dash style.
func WithLineStyle(s LineStyle) Option {
	return func(o *canvasOptions) {
		o.pen.Style = s
	}
}

// WithFont sets the text face. The default is Go Regular at
// text.DefaultSize.
func WithFont(f *text.Face) Option {
	return func(o *canvasOptions) {
		o.font = f
	}
}

// WithAntialias turns on anti-aliased rendering.
func WithAntialias(on bool) Option {
	return func(o *canvasOptions) {
		o.antialias = on
	}
}

// WithCompositionMode sets the initial composition mode.
func WithCompositionMode(m CompositionMode) Option {
	return func(o *canvasOptions) {
		o.mode = m
	}
}

// WithObserver installs a change observer, typically a presenter that
// repaints the dirty rectangle.
func WithObserver(fn Observer) Option {
	return func(o *canvasOptions) {
		o.observer = fn
	}
}

// WithConfig applies the drawing defaults of a Config. Options after it
// override its values.
func WithConfig(cfg Config) Option {
	return func(o *canvasOptions) {
		cfg.apply(o)
	}
}
