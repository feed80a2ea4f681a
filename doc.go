// Package bgi provides a Turbo C BGI style drawing surface for teaching
// 2D graphics.
//
// # Overview
//
// A Canvas is an immediate-mode raster surface. It carries the implicit
// state of the classic BGI API (pen, brush, background, font, write mode,
// clip, view-port and current position) and an affine transform with a
// save stack. Every drawing call is applied to the pixels before it
// returns; there is no path to build and no Fill/Stroke step.
//
// # Quick Start
//
//	cv, err := bgi.NewCanvas(640, 480)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cv.Close()
//
//	cv.SetColor(bgi.Blue)
//	cv.SetFillColor(bgi.Yellow)
//	_ = cv.DrawCircle(320, 240, 100) // fill, then outline
//	_ = cv.FloodFill(10, 10, bgi.Blue)
//	_ = cv.SaveFile("out.png", true)
//
// # Drawing modes
//
// Closed shapes come in three forms: Circle outlines with the pen,
// DrawCircle fills with the brush and outlines with the pen, FillCircle
// only fills. A LineNone pen suppresses outlines and a FillNone brush
// suppresses fills.
//
// # Foreground mask
//
// Next to the pixels every canvas keeps a 1-bit Mask of the pixels drawn
// since the last Clear. Background operations (SetBackgroundColor, Clear)
// leave it untouched or reset it. The mask makes sprites possible:
// DrawImage with ForegroundOnly copies only drawn pixels, and SaveFile
// without background writes the rest transparent.
//
// # Coordinate System
//
// Logical coordinates go through the transform, then through the
// window/view-port mapping to device pixels:
//   - Origin (0,0) at top-left, y down, unless SetFlipY(true)
//   - Integer device coordinates are pixel centres
//   - Angles in degrees, 0 at 3 o'clock, counter-clockwise
//   - Rotate turns clockwise on the device
//
// Transform calls compose in the current local frame, so
//
//	cv.Translate(100, 100)
//	cv.Rotate(30)
//
// rotates about the translated origin.
//
// # Errors
//
// Drawing calls return errors wrapping ErrInvalidArgument, ErrOutOfRange,
// ErrInvalidState or ErrIOFailure. Geometry outside the buffer or the clip
// is clipped, not reported; only direct pixel access (GetPixel, PutPixel,
// Pixmap.Pixel, Pixmap.SetPixel) reports ErrOutOfRange.
//
// # Presenting
//
// A canvas has no notion of a window. Presenters install an Observer
// (WithObserver) to hear about every change, or poll Dirty, and copy the
// pixels with DrawTo.
package bgi
