package raster

// Stroke describes how a device-space polyline is widened into polygons.
type Stroke struct {
	// Width is the pen width in device pixels. Widths below 1 are drawn
	// 1 pixel wide.
	Width float64

	// Dash holds alternating on/off lengths in device pixels.
	// Nil draws a solid line.
	Dash []float64
}

// roundJoinWidth is the pen width above which interior vertices get a
// round join; thinner pens rely on square segment ends overlapping.
const roundJoinWidth = 2

// Polygons widens path into a set of positively oriented polygons whose
// non-zero union is the stroked outline. When closed is set the last point
// connects back to the first.
func (s Stroke) Polygons(path []Point, closed bool) []Polygon {
	w := max(s.Width, 1)
	path = dedupe(path)
	if len(path) == 0 {
		return nil
	}
	if len(path) == 1 {
		if s.isDashed() {
			return nil
		}
		return []Polygon{square(path[0], w)}
	}
	if closed {
		path = append(path, path[0])
	}

	if !s.isDashed() {
		return widen(path, w, true, closed)
	}
	var out []Polygon
	for _, piece := range dashes(path, s.Dash) {
		out = append(out, widen(piece, w, false, false)...)
	}
	return out
}

func (s Stroke) isDashed() bool {
	var total float64
	for _, d := range s.Dash {
		if d < 0 {
			return false
		}
		total += d
	}
	return total > 0
}

// widen turns each segment into a quad. Segment ends are pushed out by half
// the pen width where a square end is wanted: at open path ends of solid
// lines and, for thin pens, at every joint.
func widen(path []Point, w float64, squareEnds, closed bool) []Polygon {
	half := w / 2
	last := len(path) - 2
	var out []Polygon
	for i := 0; i <= last; i++ {
		a, b := path[i], path[i+1]
		dir := b.Sub(a).Normalize()
		if dir == (Point{}) {
			continue
		}
		joint := w <= roundJoinWidth
		if squareEnds && ((i == 0 && !closed) || joint) {
			a = a.Sub(dir.Mul(half))
		}
		if squareEnds && ((i == last && !closed) || joint) {
			b = b.Add(dir.Mul(half))
		}
		n := dir.Perp().Mul(half)
		out = append(out, Polygon{a.Sub(n), b.Sub(n), b.Add(n), a.Add(n)}.Oriented())
	}
	if w > roundJoinWidth {
		start, end := 1, last
		if closed {
			start, end = 0, last
		}
		for i := start; i <= end; i++ {
			out = append(out, disc(path[i], half))
		}
	}
	return out
}

// dashes splits path into the "on" pieces of pattern.
func dashes(path []Point, pattern []float64) [][]Point {
	var out [][]Point
	idx, left, on := 0, pattern[0], true
	cur := []Point{path[0]}
	for i := 0; i+1 < len(path); i++ {
		a, b := path[i], path[i+1]
		segLen := b.Sub(a).Length()
		pos := 0.0
		for segLen-pos > left {
			pos += left
			p := a.Lerp(b, pos/segLen)
			if on {
				cur = append(cur, p)
				if len(cur) >= 2 {
					out = append(out, cur)
				}
				cur = nil
			} else {
				cur = []Point{p}
			}
			on = !on
			idx = (idx + 1) % len(pattern)
			left = pattern[idx]
		}
		left -= segLen - pos
		if on {
			cur = append(cur, b)
		}
	}
	if on && len(cur) >= 2 {
		out = append(out, cur)
	}
	return out
}

func dedupe(path []Point) []Point {
	out := make([]Point, 0, len(path))
	for i, p := range path {
		if i > 0 && p == out[len(out)-1] {
			continue
		}
		out = append(out, p)
	}
	return out
}

// square returns an axis-aligned w×w square centred on p.
func square(p Point, w float64) Polygon {
	h := w / 2
	return Polygon{
		{X: p.X - h, Y: p.Y - h},
		{X: p.X + h, Y: p.Y - h},
		{X: p.X + h, Y: p.Y + h},
		{X: p.X - h, Y: p.Y + h},
	}
}

// disc approximates a circle of radius r around p.
func disc(p Point, r float64) Polygon {
	pts := Arc(p.X, p.Y, r, r, 0, 360, Segments(r, 360))
	return Polygon(pts[:len(pts)-1]).Oriented()
}
