// Package grid implements the placement engine for the fun/good board:
// deriving co-located groups from movie scores, mapping pointer coordinates
// onto the 0-10 scale, and resolving drop targets on drag release. The
// package is pure; measured layout rectangles are supplied by the host.
package grid

import "math"

// Point is a position in host pixel coordinates.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned rectangle in host pixel coordinates, addressed
// from its top-left corner.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Area returns the rectangle's area, treating negative extents as empty.
func (r Rect) Area() float64 {
	if r.W <= 0 || r.H <= 0 {
		return 0
	}
	return r.W * r.H
}

// Intersect returns the overlapping region of r and o, which is empty when
// the rectangles do not touch.
func (r Rect) Intersect(o Rect) Rect {
	x1 := math.Max(r.X, o.X)
	y1 := math.Max(r.Y, o.Y)
	x2 := math.Min(r.X+r.W, o.X+o.W)
	y2 := math.Min(r.Y+r.H, o.Y+o.H)
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// OverlapRatio reports how much of the smaller rectangle is covered by the
// intersection of a and b. Degenerate rectangles yield 0.
func OverlapRatio(a, b Rect) float64 {
	smaller := math.Min(a.Area(), b.Area())
	if smaller == 0 {
		return 0
	}
	return a.Intersect(b).Area() / smaller
}

func distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
