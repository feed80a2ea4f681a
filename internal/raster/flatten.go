package raster

import "math"

// tolerance is the maximum distance, in device pixels, between a curve and
// the chords approximating it.
const tolerance = 0.1

const (
	minSegments = 4
	maxSegments = 4096
)

// Segments returns how many chords approximate an arc of radius r (device
// pixels) sweeping sweepDeg degrees within tolerance.
func Segments(r, sweepDeg float64) int {
	sweep := math.Abs(sweepDeg) * math.Pi / 180
	if r <= tolerance || sweep == 0 {
		return minSegments
	}
	step := 2 * math.Acos(1-tolerance/r)
	n := int(math.Ceil(sweep / step))
	return min(max(n, minSegments), maxSegments)
}

// Arc returns n+1 points on the ellipse centred at (cx, cy) with radii rx,
// ry, from startDeg sweeping sweepDeg degrees. Angles follow the BGI
// convention: 0 is 3 o'clock and positive angles run counter-clockwise on a
// y-down device.
func Arc(cx, cy, rx, ry, startDeg, sweepDeg float64, n int) []Point {
	n = max(n, 1)
	pts := make([]Point, n+1)
	for i := 0; i <= n; i++ {
		a := (startDeg + sweepDeg*float64(i)/float64(n)) * math.Pi / 180
		pts[i] = Point{X: cx + rx*math.Cos(a), Y: cy - ry*math.Sin(a)}
	}
	return pts
}

// Sweep normalises a start/end angle pair into a sweep in [0, 360]. The end
// angle is advanced by full turns until it is not before the start.
func Sweep(startDeg, endDeg float64) float64 {
	if endDeg < startDeg {
		endDeg += math.Ceil((startDeg-endDeg)/360) * 360
	}
	return math.Min(endDeg-startDeg, 360)
}

// Cubic flattens the cubic Bezier p0..p3 into n+1 points.
func Cubic(p0, p1, p2, p3 Point, n int) []Point {
	n = max(n, 1)
	pts := make([]Point, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		u := 1 - t
		a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
		pts[i] = Point{
			X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
			Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
		}
	}
	return pts
}

// CubicSegments estimates the chord count for a device-space cubic from the
// length of its control polygon.
func CubicSegments(p0, p1, p2, p3 Point) int {
	l := p1.Sub(p0).Length() + p2.Sub(p1).Length() + p3.Sub(p2).Length()
	n := int(math.Ceil(math.Sqrt(l/tolerance) / 2))
	return min(max(n, minSegments), maxSegments)
}

// RoundedRect returns the outline of the rectangle (l, t)-(r, b) with
// elliptical corners of radii rx, ry, clockwise on a y-down device. Radii
// are clamped to half the rectangle size; n is the chord count per corner.
func RoundedRect(l, t, r, b, rx, ry float64, n int) []Point {
	if l > r {
		l, r = r, l
	}
	if t > b {
		t, b = b, t
	}
	rx = math.Min(rx, (r-l)/2)
	ry = math.Min(ry, (b-t)/2)
	var pts []Point
	pts = append(pts, Arc(r-rx, t+ry, rx, ry, 90, -90, n)...)
	pts = append(pts, Arc(r-rx, b-ry, rx, ry, 0, -90, n)...)
	pts = append(pts, Arc(l+rx, b-ry, rx, ry, -90, -90, n)...)
	pts = append(pts, Arc(l+rx, t+ry, rx, ry, 180, -90, n)...)
	return dedupe(pts)
}
