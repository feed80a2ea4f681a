// Package blend implements the composition modes used when ink is written
// into a canvas pixel buffer.
//
// All operations work with premultiplied alpha values in the range 0-255.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

// Mode represents a composition (write) mode.
type Mode uint8

const (
	// Porter-Duff modes (standard compositing operators)
	SourceOver      Mode = iota // Result: S + D*(1-Sa) [default]
	Source                      // Result: S (replace with source)
	Destination                 // Result: D (keep destination)
	Clear                       // Result: 0 (clear destination)
	DestinationOver             // Result: S*(1-Da) + D
	SourceIn                    // Result: S*Da
	DestinationIn               // Result: D*Sa
	SourceOut                   // Result: S*(1-Da)
	DestinationOut              // Result: D*(1-Sa)
	SourceAtop                  // Result: S*Da + D*(1-Sa)
	DestinationAtop             // Result: S*(1-Da) + D*Sa
	Xor                         // Result: S*(1-Da) + D*(1-Sa)
	Plus                        // Result: S + D (clamped to 255)
	Multiply                    // Result: S*D

	// Raster operations (bitwise on color channels, as in BGI write modes)
	SourceOrDestination
	SourceAndDestination
	SourceXorDestination
	NotSourceAndNotDestination
	NotSourceOrNotDestination
	NotSourceXorDestination
	NotSource
	NotSourceAndDestination
	SourceAndNotDestination
	NotDestination

	modeCount
)

var modeNames = [modeCount]string{
	SourceOver:                 "source_over",
	Source:                     "source",
	Destination:                "destination",
	Clear:                      "clear",
	DestinationOver:            "destination_over",
	SourceIn:                   "source_in",
	DestinationIn:              "destination_in",
	SourceOut:                  "source_out",
	DestinationOut:             "destination_out",
	SourceAtop:                 "source_atop",
	DestinationAtop:            "destination_atop",
	Xor:                        "xor",
	Plus:                       "plus",
	Multiply:                   "multiply",
	SourceOrDestination:        "source_or_destination",
	SourceAndDestination:       "source_and_destination",
	SourceXorDestination:       "source_xor_destination",
	NotSourceAndNotDestination: "not_source_and_not_destination",
	NotSourceOrNotDestination:  "not_source_or_not_destination",
	NotSourceXorDestination:    "not_source_xor_destination",
	NotSource:                  "not_source",
	NotSourceAndDestination:    "not_source_and_destination",
	SourceAndNotDestination:    "source_and_not_destination",
	NotDestination:             "not_destination",
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m < modeCount
}

// String returns the snake_case name of the mode.
func (m Mode) String() string {
	if !m.Valid() {
		return "unknown"
	}
	return modeNames[m]
}

// Lookup returns the mode with the given snake_case name.
func Lookup(name string) (Mode, bool) {
	for i, n := range modeNames {
		if n == name {
			return Mode(i), true
		}
	}
	return SourceOver, false
}

// Func is the signature for composition operations.
// All values are premultiplied alpha, 0-255.
// Parameters:
//   - sr, sg, sb, sa: source color (red, green, blue, alpha)
//   - dr, dg, db, da: destination color (red, green, blue, alpha)
//
// Returns: resulting color (r, g, b, a).
type Func func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte)

var funcs = [modeCount]Func{
	SourceOver:                 blendSourceOver,
	Source:                     blendSource,
	Destination:                blendDestination,
	Clear:                      blendClear,
	DestinationOver:            blendDestinationOver,
	SourceIn:                   blendSourceIn,
	DestinationIn:              blendDestinationIn,
	SourceOut:                  blendSourceOut,
	DestinationOut:             blendDestinationOut,
	SourceAtop:                 blendSourceAtop,
	DestinationAtop:            blendDestinationAtop,
	Xor:                        blendXor,
	Plus:                       blendPlus,
	Multiply:                   blendMultiply,
	SourceOrDestination:        rop(func(s, d byte) byte { return s | d }),
	SourceAndDestination:       rop(func(s, d byte) byte { return s & d }),
	SourceXorDestination:       rop(func(s, d byte) byte { return s ^ d }),
	NotSourceAndNotDestination: rop(func(s, d byte) byte { return ^s & ^d }),
	NotSourceOrNotDestination:  rop(func(s, d byte) byte { return ^s | ^d }),
	NotSourceXorDestination:    rop(func(s, d byte) byte { return ^s ^ d }),
	NotSource:                  rop(func(s, _ byte) byte { return ^s }),
	NotSourceAndDestination:    rop(func(s, d byte) byte { return ^s & d }),
	SourceAndNotDestination:    rop(func(s, d byte) byte { return s & ^d }),
	NotDestination:             rop(func(_, d byte) byte { return ^d }),
}

// FuncFor returns the composition function for the given mode.
// Returns the source-over function for unknown modes.
func FuncFor(m Mode) Func {
	if !m.Valid() {
		return blendSourceOver
	}
	return funcs[m]
}

// Composite writes source color s into the 4-byte pixel px using f,
// weighted by coverage. Coverage 255 applies f fully, 0 leaves px untouched,
// anything in between interpolates between the old and the composed value.
func Composite(px []byte, s [4]byte, coverage byte, f Func) {
	if coverage == 0 {
		return
	}
	r, g, b, a := f(s[0], s[1], s[2], s[3], px[0], px[1], px[2], px[3])
	if coverage == 255 {
		px[0], px[1], px[2], px[3] = r, g, b, a
		return
	}
	px[0] = lerp255(px[0], r, coverage)
	px[1] = lerp255(px[1], g, coverage)
	px[2] = lerp255(px[2], b, coverage)
	px[3] = lerp255(px[3], a, coverage)
}

// Porter-Duff implementations (premultiplied alpha)

// blendClear clears the destination to transparent black.
func blendClear(_, _, _, _, _, _, _, _ byte) (byte, byte, byte, byte) {
	return 0, 0, 0, 0
}

// blendSource replaces destination with source.
func blendSource(sr, sg, sb, sa, _, _, _, _ byte) (byte, byte, byte, byte) {
	return sr, sg, sb, sa
}

// blendDestination keeps destination unchanged.
func blendDestination(_, _, _, _, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return dr, dg, db, da
}

// blendSourceOver composites source over destination (default mode).
// Formula: S + D * (1 - Sa)
func blendSourceOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := 255 - sa
	return addDiv255(sr, mulDiv255(dr, invSa)),
		addDiv255(sg, mulDiv255(dg, invSa)),
		addDiv255(sb, mulDiv255(db, invSa)),
		addDiv255(sa, mulDiv255(da, invSa))
}

// blendDestinationOver composites destination over source.
// Formula: S * (1 - Da) + D
func blendDestinationOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invDa := 255 - da
	return addDiv255(mulDiv255(sr, invDa), dr),
		addDiv255(mulDiv255(sg, invDa), dg),
		addDiv255(mulDiv255(sb, invDa), db),
		addDiv255(mulDiv255(sa, invDa), da)
}

// blendSourceIn shows source where destination is opaque.
// Formula: S * Da
func blendSourceIn(sr, sg, sb, sa, _, _, _, da byte) (byte, byte, byte, byte) {
	return mulDiv255(sr, da), mulDiv255(sg, da), mulDiv255(sb, da), mulDiv255(sa, da)
}

// blendDestinationIn shows destination where source is opaque.
// Formula: D * Sa
func blendDestinationIn(_, _, _, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return mulDiv255(dr, sa), mulDiv255(dg, sa), mulDiv255(db, sa), mulDiv255(da, sa)
}

// blendSourceOut shows source where destination is transparent.
// Formula: S * (1 - Da)
func blendSourceOut(sr, sg, sb, sa, _, _, _, da byte) (byte, byte, byte, byte) {
	invDa := 255 - da
	return mulDiv255(sr, invDa), mulDiv255(sg, invDa), mulDiv255(sb, invDa), mulDiv255(sa, invDa)
}

// blendDestinationOut shows destination where source is transparent.
// Formula: D * (1 - Sa)
func blendDestinationOut(_, _, _, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := 255 - sa
	return mulDiv255(dr, invSa), mulDiv255(dg, invSa), mulDiv255(db, invSa), mulDiv255(da, invSa)
}

// blendSourceAtop composites source over destination, preserving destination alpha.
// Formula: S * Da + D * (1 - Sa)
func blendSourceAtop(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := 255 - sa
	return addDiv255(mulDiv255(sr, da), mulDiv255(dr, invSa)),
		addDiv255(mulDiv255(sg, da), mulDiv255(dg, invSa)),
		addDiv255(mulDiv255(sb, da), mulDiv255(db, invSa)),
		da
}

// blendDestinationAtop composites destination over source, preserving source alpha.
// Formula: S * (1 - Da) + D * Sa
func blendDestinationAtop(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invDa := 255 - da
	return addDiv255(mulDiv255(sr, invDa), mulDiv255(dr, sa)),
		addDiv255(mulDiv255(sg, invDa), mulDiv255(dg, sa)),
		addDiv255(mulDiv255(sb, invDa), mulDiv255(db, sa)),
		sa
}

// blendXor shows source and destination where they don't overlap.
// Formula: S * (1 - Da) + D * (1 - Sa)
func blendXor(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invDa := 255 - da
	invSa := 255 - sa
	return addDiv255(mulDiv255(sr, invDa), mulDiv255(dr, invSa)),
		addDiv255(mulDiv255(sg, invDa), mulDiv255(dg, invSa)),
		addDiv255(mulDiv255(sb, invDa), mulDiv255(db, invSa)),
		addDiv255(mulDiv255(sa, invDa), mulDiv255(da, invSa))
}

// blendPlus adds source and destination colors (clamped to 255).
func blendPlus(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return addDiv255(sr, dr), addDiv255(sg, dg), addDiv255(sb, db), addDiv255(sa, da)
}

// blendMultiply multiplies source and destination colors.
// Formula: S * D / 255
func blendMultiply(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return mulDiv255(sr, dr), mulDiv255(sg, dg), mulDiv255(sb, db), mulDiv255(sa, da)
}

// rop lifts a bitwise channel operation to a Func. Raster operations are
// only meaningful on opaque pixels; the result alpha is the larger of the two.
func rop(op func(s, d byte) byte) Func {
	return func(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
		return op(sr, dr), op(sg, dg), op(sb, db), maxByte(sa, da)
	}
}
