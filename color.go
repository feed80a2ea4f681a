package bgi

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Color is a straight (non-premultiplied) 8-bit RGBA color. Canvases store
// pixels premultiplied; Color is the value accepted and returned by the API.
type Color struct {
	R, G, B, A uint8
}

// Verify at compile time that Color implements color.Color.
var _ color.Color = Color{}

// The 16 colors of the BGI palette.
var (
	Black        = RGB(0x00, 0x00, 0x00)
	Blue         = RGB(0x00, 0x00, 0xA8)
	Green        = RGB(0x00, 0xA8, 0x00)
	Cyan         = RGB(0x00, 0xA8, 0xA8)
	Red          = RGB(0xA8, 0x00, 0x00)
	Magenta      = RGB(0xA8, 0x00, 0xA8)
	Brown        = RGB(0xA8, 0x54, 0x00)
	LightGray    = RGB(0xA8, 0xA8, 0xA8)
	DarkGray     = RGB(0x54, 0x54, 0x54)
	LightBlue    = RGB(0x54, 0x54, 0xFC)
	LightGreen   = RGB(0x54, 0xFC, 0x54)
	LightCyan    = RGB(0x54, 0xFC, 0xFC)
	LightRed     = RGB(0xFC, 0x54, 0x54)
	LightMagenta = RGB(0xFC, 0x54, 0xFC)
	Yellow       = RGB(0xFC, 0xFC, 0x54)
	White        = RGB(0xFF, 0xFF, 0xFF)

	Transparent = RGBA(0, 0, 0, 0)
)

// palette maps BGI color names, lower case without separators.
var palette = map[string]Color{
	"black":        Black,
	"blue":         Blue,
	"green":        Green,
	"cyan":         Cyan,
	"red":          Red,
	"magenta":      Magenta,
	"brown":        Brown,
	"lightgray":    LightGray,
	"darkgray":     DarkGray,
	"lightblue":    LightBlue,
	"lightgreen":   LightGreen,
	"lightcyan":    LightCyan,
	"lightred":     LightRed,
	"lightmagenta": LightMagenta,
	"yellow":       Yellow,
	"white":        White,
	"transparent":  Transparent,
}

// RGB creates an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 0xFF}
}

// RGBA creates a color with straight alpha.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Gray creates an opaque gray level.
func Gray(v uint8) Color {
	return RGB(v, v, v)
}

// HSV creates an opaque color from hue [0, 360), saturation and value [0, 1].
func HSV(h, s, v float64) Color {
	return fromColorful(colorful.Hsv(h, s, v))
}

// HSL creates an opaque color from hue [0, 360), saturation and lightness
// [0, 1].
func HSL(h, s, l float64) Color {
	return fromColorful(colorful.Hsl(h, s, l))
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return RGB(r, g, b)
}

// HSV returns the hue, saturation and value of c, ignoring alpha.
func (c Color) HSV() (h, s, v float64) {
	cf := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	return cf.Hsv()
}

// FromPacked converts an integer color. Values up to 0xFFFFFF are read as
// opaque 0xRRGGBB, larger values as 0xAARRGGBB.
func FromPacked(v uint32) Color {
	a := uint8(v >> 24)
	if v <= 0xFFFFFF {
		a = 0xFF
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: a}
}

// Packed returns c as 0xAARRGGBB.
func (c Color) Packed() uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// FromColor converts any color.Color.
func FromColor(c color.Color) Color {
	if cc, ok := c.(Color); ok {
		return cc
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// RGBA implements color.Color. The result is alpha-premultiplied.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Hex parses "#rgb", "#rgba", "#rrggbb" or "#rrggbbaa"; the leading '#' is
// optional.
func Hex(s string) (Color, error) {
	h := strings.TrimPrefix(s, "#")
	switch len(h) {
	case 3, 4:
		var b strings.Builder
		for _, r := range h {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		h = b.String()
	case 6, 8:
	default:
		return Color{}, invalidArg("hex", "%q has %d digits", s, len(h))
	}
	if len(h) == 6 {
		h += "ff"
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, invalidArg("hex", "%q: %v", s, err)
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Named looks up a BGI palette name ("LightGray", "light_gray") or an SVG
// color name ("cornflowerblue").
func Named(name string) (Color, bool) {
	key := strings.ToLower(name)
	key = strings.NewReplacer("_", "", "-", "", " ", "").Replace(key)
	if c, ok := palette[key]; ok {
		return c, true
	}
	if c, ok := colornames.Map[key]; ok {
		return FromColor(c), true
	}
	return Color{}, false
}

// ParseColor accepts a palette or SVG name, a hex string with '#', or a
// packed integer with a "0x" prefix.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		return Hex(s)
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		v, err := strconv.ParseUint(s[2:], 16, 32)
		if err != nil {
			return Color{}, invalidArg("parse color", "%q: %v", s, err)
		}
		return FromPacked(uint32(v)), nil
	}
	if c, ok := Named(s); ok {
		return c, nil
	}
	return Color{}, invalidArg("parse color", "unknown color %q", s)
}

// ColorOf converts the loose color forms accepted by drawing code: Color,
// color.Color, a string for ParseColor, a packed integer, or 3 or 4
// components in [0, 255].
func ColorOf(v any) (Color, error) {
	switch c := v.(type) {
	case Color:
		return c, nil
	case color.Color:
		return FromColor(c), nil
	case string:
		return ParseColor(c)
	case int:
		if c < 0 || int64(c) > 0xFFFFFFFF {
			return Color{}, invalidArg("color", "packed value %#x out of range", c)
		}
		return FromPacked(uint32(c)), nil
	case uint32:
		return FromPacked(c), nil
	case [3]int:
		return components(c[:])
	case [4]int:
		return components(c[:])
	case []int:
		return components(c)
	}
	return Color{}, invalidArg("color", "unsupported type %T", v)
}

func components(v []int) (Color, error) {
	if len(v) != 3 && len(v) != 4 {
		return Color{}, invalidArg("color", "want 3 or 4 components, got %d", len(v))
	}
	var out [4]uint8
	out[3] = 0xFF
	for i, x := range v {
		if x < 0 || x > 255 {
			return Color{}, invalidArg("color", "component %d out of range", x)
		}
		out[i] = uint8(x)
	}
	return Color{R: out[0], G: out[1], B: out[2], A: out[3]}, nil
}

// String returns "#rrggbb" for opaque colors and "#rrggbbaa" otherwise.
func (c Color) String() string {
	if c.A == 0xFF {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseColor.
func (c *Color) UnmarshalText(b []byte) error {
	v, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// premul returns c as premultiplied bytes.
func (c Color) premul() [4]byte {
	if c.A == 0xFF {
		return [4]byte{c.R, c.G, c.B, 0xFF}
	}
	a := uint32(c.A)
	return [4]byte{
		uint8((uint32(c.R)*a + 127) / 255),
		uint8((uint32(c.G)*a + 127) / 255),
		uint8((uint32(c.B)*a + 127) / 255),
		c.A,
	}
}

// unpremul converts a premultiplied pixel back to a straight color.
func unpremul(px []byte) Color {
	a := uint32(px[3])
	switch a {
	case 0:
		return Transparent
	case 0xFF:
		return Color{R: px[0], G: px[1], B: px[2], A: 0xFF}
	}
	return Color{
		R: uint8(min((uint32(px[0])*255+a/2)/a, 255)),
		G: uint8(min((uint32(px[1])*255+a/2)/a, 255)),
		B: uint8(min((uint32(px[2])*255+a/2)/a, 255)),
		A: uint8(a),
	}
}
