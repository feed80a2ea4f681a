package text

import (
	"image"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Rasterize renders a single line of s into an alpha mask. The mask origin is
// the top-left corner of the text box; the baseline lies Metrics().Ascent
// pixels below it. An empty string yields an empty mask.
//
// Masks are cached per face and shared between calls; do not modify them.
func (f *Face) Rasterize(s string) *image.Alpha {
	s = Prepare(s)
	return f.lines.GetOrCreate(s, func() *image.Alpha { return f.rasterize(s) })
}

func (f *Face) rasterize(s string) *image.Alpha {
	w, h := f.Measure(s)
	width, height := int(math.Ceil(w)), int(math.Ceil(h))
	if s == "" || width <= 0 || height <= 0 {
		return image.NewAlpha(image.Rectangle{})
	}
	dst := image.NewAlpha(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.Opaque,
		Face: f.face,
		Dot:  fixed.Point26_6{X: 0, Y: fixed.Int26_6(math.Round(f.Metrics().Ascent * 64))},
	}
	d.DrawString(s)
	return dst
}

// Wrap breaks s into lines no wider than maxWidth. Explicit newlines always
// break; words are never split, so a word wider than maxWidth gets a line
// of its own. A non-positive maxWidth only splits on newlines.
func (f *Face) Wrap(s string, maxWidth float64) []string {
	var lines []string
	for _, para := range strings.Split(Prepare(s), "\n") {
		if maxWidth <= 0 {
			lines = append(lines, para)
			continue
		}
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			candidate := line + " " + word
			if w, _ := f.Measure(candidate); w <= maxWidth {
				line = candidate
				continue
			}
			lines = append(lines, line)
			line = word
		}
		lines = append(lines, line)
	}
	return lines
}
