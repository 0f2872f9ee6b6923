// Package geometry provides the polygon and distance primitives used by
// every collision check.
package geometry

import "math"

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

// Polygon is a closed outline; the last vertex connects back to the first.
type Polygon []Point

// Translate returns a copy of p offset by (dx, dy).
func (p Polygon) Translate(dx, dy float64) Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = Point{X: v.X + dx, Y: v.Y + dy}
	}
	return out
}

// Bounds returns the axis-aligned bounding box of p.
// An empty polygon yields two zero points.
func (p Polygon) Bounds() (min, max Point) {
	if len(p) == 0 {
		return Point{}, Point{}
	}
	min, max = p[0], p[0]
	for _, v := range p[1:] {
		min.X = math.Min(min.X, v.X)
		min.Y = math.Min(min.Y, v.Y)
		max.X = math.Max(max.X, v.X)
		max.Y = math.Max(max.Y, v.Y)
	}
	return min, max
}

// Circumradius returns the circumscribed radius of a regular polygon with the
// given side count and edge length.
func Circumradius(sides int, edge float64) float64 {
	if sides < 3 {
		return 0
	}
	return math.Abs(edge / (2 * math.Sin(math.Pi/float64(sides))))
}

// Regular builds a regular polygon centred on the origin. Vertices use the
// compass convention: angle 0 points along +Y, angles grow clockwise.
func Regular(sides int, edge float64) Polygon {
	if sides < 3 {
		return nil
	}
	r := Circumradius(sides, edge)
	step := 2 * math.Pi / float64(sides)
	poly := make(Polygon, sides)
	for i := range poly {
		a := float64(i) * step
		poly[i] = Point{X: r * math.Sin(a), Y: r * math.Cos(a)}
	}
	return poly
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// CirclesOverlap checks if two circles overlap or touch.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) <= minDist*minDist
}
