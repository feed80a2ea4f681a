// Package raster converts device-space polygons into pixel coverage.
//
// Two strategies are provided. The aliased filler samples pixel centres: the
// device point (i, j) is the centre of pixel (i, j), and a pixel is inside a
// polygon iff its centre is, with the right and bottom edges excluded. The
// anti-aliased filler computes area coverage with golang.org/x/image/vector.
package raster

import (
	"image"
	"image/draw"
	"math"
	"slices"

	"golang.org/x/image/vector"
)

// FillRule selects how overlapping sub-polygons are combined.
type FillRule uint8

const (
	// NonZero fills points with a non-zero winding number.
	NonZero FillRule = iota
	// EvenOdd fills points crossed an odd number of times.
	EvenOdd
)

// snapGrid is the sub-pixel grid device vertices are rounded to before
// scan conversion. It absorbs floating point noise from transforms such
// as a 90 degree rotation, which would otherwise move pixel centres
// across an edge.
const snapGrid = 1024

func snap(v float64) float64 {
	return math.Round(v*snapGrid) / snapGrid
}

// Rasterizer converts polygons to Coverage. The zero value has an empty
// clip and produces empty coverage; set Clip to the device bounds.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// Clip bounds the output, in device pixels.
	Clip image.Rectangle

	// Antialias switches from centre sampling to area coverage.
	Antialias bool

	// Rule is the fill rule used by the aliased filler. The anti-aliased
	// filler always accumulates non-zero coverage.
	Rule FillRule
}

// Fill rasterises the union of polys.
func (r *Rasterizer) Fill(polys []Polygon) *Coverage {
	lo, hi, ok := Bounds(polys)
	if !ok {
		return &Coverage{}
	}
	if r.Antialias {
		return r.fillAA(polys, lo, hi)
	}
	return r.fillAliased(polys, lo, hi)
}

type edge struct {
	x0, y0 float64 // upper end point
	y1     float64 // lower end y
	dxdy   float64
	dir    int
}

type crossing struct {
	x   float64
	dir int
}

func buildEdges(polys []Polygon) []edge {
	var edges []edge
	for _, pg := range polys {
		n := len(pg)
		for i := range pg {
			a, b := pg[i], pg[(i+1)%n]
			ax, ay, bx, by := snap(a.X), snap(a.Y), snap(b.X), snap(b.Y)
			if ay == by {
				continue
			}
			dir := 1
			if ay > by {
				ax, ay, bx, by = bx, by, ax, ay
				dir = -1
			}
			edges = append(edges, edge{
				x0: ax, y0: ay, y1: by,
				dxdy: (bx - ax) / (by - ay),
				dir:  dir,
			})
		}
	}
	slices.SortFunc(edges, func(a, b edge) int {
		switch {
		case a.y0 < b.y0:
			return -1
		case a.y0 > b.y0:
			return 1
		}
		return 0
	})
	return edges
}

func (r *Rasterizer) fillAliased(polys []Polygon, lo, hi Point) *Coverage {
	bounds := image.Rect(
		int(math.Ceil(snap(lo.X))), int(math.Ceil(snap(lo.Y))),
		int(math.Ceil(snap(hi.X))), int(math.Ceil(snap(hi.Y))),
	).Intersect(r.Clip)
	if bounds.Empty() {
		return &Coverage{}
	}
	cov := NewCoverage(bounds)
	edges := buildEdges(polys)

	var (
		active    []edge
		crossings []crossing
		next      int
	)
	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		y := float64(j)
		for next < len(edges) && edges[next].y0 <= y {
			active = append(active, edges[next])
			next++
		}
		active = slices.DeleteFunc(active, func(e edge) bool { return e.y1 <= y })

		crossings = crossings[:0]
		for _, e := range active {
			if e.y0 <= y {
				crossings = append(crossings, crossing{x: e.x0 + (y-e.y0)*e.dxdy, dir: e.dir})
			}
		}
		slices.SortFunc(crossings, func(a, b crossing) int {
			switch {
			case a.x < b.x:
				return -1
			case a.x > b.x:
				return 1
			}
			return 0
		})

		wind := 0
		var start float64
		for k, c := range crossings {
			inside := r.inside(wind, k)
			wind += c.dir
			if r.inside(wind, k+1) == inside {
				continue
			}
			if !inside {
				start = c.x
				continue
			}
			cov.span(j, start, c.x)
		}
	}
	return cov
}

// inside reports whether the span after crossing number k (with the given
// accumulated winding) is filled.
func (r *Rasterizer) inside(wind, k int) bool {
	if r.Rule == EvenOdd {
		return k%2 == 1
	}
	return wind != 0
}

func (r *Rasterizer) fillAA(polys []Polygon, lo, hi Point) *Coverage {
	// Area sampling: pixel (i, j) spans [i-0.5, i+0.5) in device space.
	bounds := image.Rect(
		int(math.Floor(lo.X+0.5)), int(math.Floor(lo.Y+0.5)),
		int(math.Ceil(hi.X+0.5)), int(math.Ceil(hi.Y+0.5)),
	).Intersect(r.Clip)
	if bounds.Empty() {
		return &Coverage{}
	}
	w, h := bounds.Dx(), bounds.Dy()
	ox := 0.5 - float64(bounds.Min.X)
	oy := 0.5 - float64(bounds.Min.Y)

	z := vector.NewRasterizer(w, h)
	z.DrawOp = draw.Src
	for _, pg := range polys {
		if len(pg) < 3 {
			continue
		}
		z.MoveTo(float32(pg[0].X+ox), float32(pg[0].Y+oy))
		for _, p := range pg[1:] {
			z.LineTo(float32(p.X+ox), float32(p.Y+oy))
		}
		z.ClosePath()
	}
	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return &Coverage{Rect: bounds, Pix: dst.Pix}
}
