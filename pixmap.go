package bgi

import (
	"image"
	"image/color"
	"image/draw"
)

// Pixmap is the pixel buffer of a canvas: a fixed-size RGBA8 raster stored
// row-major with premultiplied alpha.
type Pixmap struct {
	width  int
	height int
	data   []uint8 // premultiplied RGBA, 4 bytes per pixel
}

// Verify at compile time that Pixmap can be drawn into by image/draw.
var _ draw.Image = (*Pixmap)(nil)

// NewPixmap creates a transparent pixmap. Both dimensions must be positive.
func NewPixmap(width, height int) (*Pixmap, error) {
	if width <= 0 || height <= 0 {
		return nil, invalidArg("new pixmap", "size %dx%d", width, height)
	}
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}, nil
}

// PixmapFromImage copies img into a new pixmap whose origin is img's
// top-left corner.
func PixmapFromImage(img image.Image) (*Pixmap, error) {
	b := img.Bounds()
	p, err := NewPixmap(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	dst := &image.RGBA{Pix: p.data, Stride: p.width * 4, Rect: image.Rect(0, 0, p.width, p.height)}
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	return p, nil
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw premultiplied RGBA bytes.
func (p *Pixmap) Data() []uint8 {
	return p.data
}

func (p *Pixmap) inBounds(x, y int) bool {
	return x >= 0 && x < p.width && y >= 0 && y < p.height
}

// offset returns the index of pixel (x, y) in data. The caller checks
// bounds.
func (p *Pixmap) offset(x, y int) int {
	return (y*p.width + x) * 4
}

// Pixel returns the color of a single pixel.
func (p *Pixmap) Pixel(x, y int) (Color, error) {
	if !p.inBounds(x, y) {
		return Color{}, &PixelRangeError{X: x, Y: y, Width: p.width, Height: p.height}
	}
	i := p.offset(x, y)
	return unpremul(p.data[i : i+4]), nil
}

// SetPixel overwrites a single pixel.
func (p *Pixmap) SetPixel(x, y int, c Color) error {
	if !p.inBounds(x, y) {
		return &PixelRangeError{X: x, Y: y, Width: p.width, Height: p.height}
	}
	s := c.premul()
	copy(p.data[p.offset(x, y):], s[:])
	return nil
}

// Fill overwrites every pixel with c.
func (p *Pixmap) Fill(c Color) {
	s := c.premul()
	for i := 0; i < len(p.data); i += 4 {
		copy(p.data[i:i+4], s[:])
	}
}

// Clone returns a deep copy.
func (p *Pixmap) Clone() *Pixmap {
	c := &Pixmap{width: p.width, height: p.height, data: make([]uint8, len(p.data))}
	copy(c.data, p.data)
	return c
}

// ToImage copies the pixmap into an image.RGBA, which shares the
// premultiplied layout.
func (p *Pixmap) ToImage() *image.RGBA {
	img := image.NewRGBA(p.Bounds())
	copy(img.Pix, p.data)
	return img
}

// rgba returns an image.RGBA view sharing the pixmap's memory.
func (p *Pixmap) rgba() *image.RGBA {
	return &image.RGBA{Pix: p.data, Stride: p.width * 4, Rect: p.Bounds()}
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	if !p.inBounds(x, y) {
		return color.RGBA{}
	}
	i := p.offset(x, y)
	return color.RGBA{R: p.data[i], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
}

// Set implements the draw.Image interface. Out of range writes are ignored.
func (p *Pixmap) Set(x, y int, c color.Color) {
	if !p.inBounds(x, y) {
		return
	}
	r := color.RGBAModel.Convert(c).(color.RGBA)
	i := p.offset(x, y)
	p.data[i], p.data[i+1], p.data[i+2], p.data[i+3] = r.R, r.G, r.B, r.A
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.RGBAModel
}
