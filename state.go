package bgi

import (
	"fmt"
	"strings"

	"github.com/gogpu/bgi/internal/blend"
)

// LineStyle selects the dash pattern of outlines.
type LineStyle uint8

const (
	LineSolid LineStyle = iota
	LineDash
	LineDot
	LineDashDot
	LineDashDotDot
	LineNone
)

var lineStyleNames = [...]string{
	LineSolid:      "solid",
	LineDash:       "dash",
	LineDot:        "dot",
	LineDashDot:    "dash_dot",
	LineDashDotDot: "dash_dot_dot",
	LineNone:       "none",
}

// dashUnits are the on/off lengths of each style, in multiples of the pen
// width.
var dashUnits = [...][]float64{
	LineDash:       {4, 2},
	LineDot:        {1, 2},
	LineDashDot:    {4, 2, 1, 2},
	LineDashDotDot: {4, 2, 1, 2, 1, 2},
}

func (s LineStyle) String() string {
	if int(s) < len(lineStyleNames) {
		return lineStyleNames[s]
	}
	return fmt.Sprintf("LineStyle(%d)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s LineStyle) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *LineStyle) UnmarshalText(b []byte) error {
	i, ok := lookupName(lineStyleNames[:], string(b))
	if !ok {
		return invalidArg("line style", "unknown style %q", b)
	}
	*s = LineStyle(i)
	return nil
}

// dash returns the dash pattern for a device pen width, or nil for solid
// lines.
func (s LineStyle) dash(width float64) []float64 {
	if int(s) >= len(dashUnits) || dashUnits[s] == nil {
		return nil
	}
	unit := max(width, 1)
	out := make([]float64, len(dashUnits[s]))
	for i, u := range dashUnits[s] {
		out[i] = u * unit
	}
	return out
}

// FillStyle selects whether closed shapes are filled.
type FillStyle uint8

const (
	FillSolid FillStyle = iota
	FillNone
)

var fillStyleNames = [...]string{
	FillSolid: "solid",
	FillNone:  "none",
}

func (s FillStyle) String() string {
	if int(s) < len(fillStyleNames) {
		return fillStyleNames[s]
	}
	return fmt.Sprintf("FillStyle(%d)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s FillStyle) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *FillStyle) UnmarshalText(b []byte) error {
	i, ok := lookupName(fillStyleNames[:], string(b))
	if !ok {
		return invalidArg("fill style", "unknown style %q", b)
	}
	*s = FillStyle(i)
	return nil
}

func lookupName(names []string, s string) (int, bool) {
	s = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	for i, n := range names {
		if n == s {
			return i, true
		}
	}
	return 0, false
}

// Pen draws outlines, lines and text.
type Pen struct {
	Color Color
	Width float64
	Style LineStyle
}

// DefaultPen is a solid black pen of width 1.
func DefaultPen() Pen {
	return Pen{Color: Black, Width: 1, Style: LineSolid}
}

// Brush fills the interior of closed shapes and flood fills.
type Brush struct {
	Color Color
	Style FillStyle
}

// DefaultBrush is a solid white brush.
func DefaultBrush() Brush {
	return Brush{Color: White, Style: FillSolid}
}

// CompositionMode combines ink with the pixels already in the buffer.
type CompositionMode = blend.Mode

// Composition modes.
const (
	SourceOver      = blend.SourceOver
	Source          = blend.Source
	Destination     = blend.Destination
	ClearMode       = blend.Clear
	DestinationOver = blend.DestinationOver
	SourceIn        = blend.SourceIn
	DestinationIn   = blend.DestinationIn
	SourceOut       = blend.SourceOut
	DestinationOut  = blend.DestinationOut
	SourceAtop      = blend.SourceAtop
	DestinationAtop = blend.DestinationAtop
	XorMode         = blend.Xor
	Plus            = blend.Plus
	Multiply        = blend.Multiply

	SourceOrDestination        = blend.SourceOrDestination
	SourceAndDestination       = blend.SourceAndDestination
	SourceXorDestination       = blend.SourceXorDestination
	NotSourceAndNotDestination = blend.NotSourceAndNotDestination
	NotSourceOrNotDestination  = blend.NotSourceOrNotDestination
	NotSourceXorDestination    = blend.NotSourceXorDestination
	NotSource                  = blend.NotSource
	NotSourceAndDestination    = blend.NotSourceAndDestination
	SourceAndNotDestination    = blend.SourceAndNotDestination
	NotDestination             = blend.NotDestination
)

// BGI write modes.
const (
	CopyPut = Source
	XorPut  = SourceXorDestination
	OrPut   = SourceOrDestination
	AndPut  = SourceAndDestination
	NotPut  = NotSource
)

// ParseCompositionMode accepts a snake_case mode name ("source_over") or a
// BGI write mode name ("xor_put").
func ParseCompositionMode(s string) (CompositionMode, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	switch key {
	case "copy_put":
		return CopyPut, nil
	case "xor_put":
		return XorPut, nil
	case "or_put":
		return OrPut, nil
	case "and_put":
		return AndPut, nil
	case "not_put":
		return NotPut, nil
	}
	if m, ok := blend.Lookup(key); ok {
		return m, nil
	}
	return SourceOver, invalidArg("composition mode", "unknown mode %q", s)
}

// TextFlags control DrawRectText layout. Combine one horizontal and one
// vertical alignment with the optional wrapping flags.
type TextFlags uint16

const (
	AlignLeft TextFlags = 1 << iota
	AlignRight
	AlignHCenter
	AlignTop
	AlignBottom
	AlignVCenter
	TextWordWrap
	TextSingleLine

	AlignCenter = AlignHCenter | AlignVCenter
)
