package bgi

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// Format is a raster image file format.
type Format uint8

const (
	FormatPNG Format = iota + 1
	FormatJPEG
	FormatBMP
	FormatTIFF
	FormatGIF  // decode only
	FormatWebP // decode only
)

// JPEGQuality is the quality used when saving JPEG files.
const JPEGQuality = 95

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	case FormatBMP:
		return "bmp"
	case FormatTIFF:
		return "tiff"
	case FormatGIF:
		return "gif"
	case FormatWebP:
		return "webp"
	}
	return fmt.Sprintf("Format(%d)", f)
}

// lossy reports whether the format cannot keep transparency.
func (f Format) lossy() bool {
	return f == FormatJPEG
}

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	case ".gif":
		return FormatGIF, nil
	case ".webp":
		return FormatWebP, nil
	}
	return 0, fmt.Errorf("bgi: format of %q: unknown extension: %w", path, ErrIOFailure)
}

// formatOf maps the content type detected by filetype to a Format.
func formatOf(data []byte) (Format, error) {
	kind, err := filetype.Image(data)
	if err != nil {
		return 0, ioFailure("detect format", err)
	}
	switch kind.Extension {
	case "png":
		return FormatPNG, nil
	case "jpg":
		return FormatJPEG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif":
		return FormatTIFF, nil
	case "gif":
		return FormatGIF, nil
	case "webp":
		return FormatWebP, nil
	}
	return 0, fmt.Errorf("bgi: detect format: unsupported content %q: %w", kind.MIME.Value, ErrIOFailure)
}

func encodeImage(w io.Writer, img image.Image, f Format) error {
	var err error
	switch f {
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatJPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("bgi: encode %s: unsupported: %w", f, ErrIOFailure)
	}
	if err != nil {
		return ioFailure("encode "+f.String(), err)
	}
	return nil
}

func decodeImage(data []byte) (image.Image, Format, error) {
	if len(data) == 0 {
		return nil, 0, fmt.Errorf("bgi: decode: empty data: %w", ErrIOFailure)
	}
	f, err := formatOf(data)
	if err != nil {
		return nil, 0, err
	}
	r := bytes.NewReader(data)
	var img image.Image
	switch f {
	case FormatPNG:
		img, err = png.Decode(r)
	case FormatJPEG:
		img, err = jpeg.Decode(r)
	case FormatBMP:
		img, err = bmp.Decode(r)
	case FormatTIFF:
		img, err = tiff.Decode(r)
	case FormatGIF:
		img, err = gif.Decode(r)
	case FormatWebP:
		img, err = webp.Decode(r)
	}
	if err != nil {
		return nil, f, ioFailure("decode "+f.String(), err)
	}
	return img, f, nil
}

// Encode returns the pixmap encoded in format f.
func (p *Pixmap) Encode(f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeImage(&buf, p.ToImage(), f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodePixmap decodes PNG, JPEG, BMP, TIFF, GIF or WebP data. The format
// is detected from the content.
func DecodePixmap(data []byte) (*Pixmap, error) {
	img, _, err := decodeImage(data)
	if err != nil {
		return nil, err
	}
	return PixmapFromImage(img)
}

// SaveFile writes the canvas to path in the format given by its extension.
// Without background, background pixels are written transparent; lossy
// formats refuse such images, and any image that is not fully opaque.
func (c *Canvas) SaveFile(path string, withBackground bool) error {
	if err := c.check("save"); err != nil {
		return err
	}
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var img *image.RGBA
	if withBackground {
		img, err = c.Image()
	} else {
		img, err = c.Foreground()
	}
	if err != nil {
		return err
	}
	if f.lossy() && (!withBackground || !img.Opaque()) {
		return fmt.Errorf("bgi: save %s: %s cannot store transparency: %w", path, f, ErrIOFailure)
	}

	var buf bytes.Buffer
	if err := encodeImage(&buf, img, f); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Clean(path), buf.Bytes(), 0o644); err != nil { //nolint:gosec // user-chosen output file
		return ioFailure("save", err)
	}
	Logger().Info("canvas saved", "path", path, "format", f.String(), "with_background", withBackground)
	return nil
}

// Load reads and decodes an image file into a new pixmap.
func Load(path string) (*Pixmap, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, ioFailure("load", err)
	}
	p, err := DecodePixmap(data)
	if err != nil {
		return nil, fmt.Errorf("bgi: load %s: %w", path, err)
	}
	Logger().Info("image loaded", "path", path, "width", p.Width(), "height", p.Height())
	return p, nil
}

// LoadCanvas reads an image file into a new canvas. The loaded pixels count
// as background.
func LoadCanvas(path string, opts ...Option) (*Canvas, error) {
	p, err := Load(path)
	if err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newCanvas(p, o), nil
}
