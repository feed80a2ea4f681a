// Package text provides the font faces used by bgi canvases.
//
// A Face pairs a parsed font with a pixel size. Faces are built on
// golang.org/x/image/font: scalable faces come from TrueType/OpenType data
// (golang.org/x/image/font/opentype), the default face is Go Regular
// (golang.org/x/image/font/gofont/goregular) and Basic returns the fixed
// 7x13 bitmap face from golang.org/x/image/font/basicfont.
//
// # Example usage
//
//	face, err := text.LoadFace("DejaVuSans.ttf", 20)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer face.Close()
//
//	cv, _ := bgi.NewCanvas(640, 480)
//	cv.SetFont(face)
//	cv.DrawText(10, 10, "Hello,", "world")
//
// Text is normalised to NFC (golang.org/x/text/unicode/norm) before glyph
// lookup, so decomposed input renders with precomposed glyphs. Complex
// shaping (ligatures, bidi reordering) is not performed.
//
// Faces are not safe for concurrent use.
package text
