package geometry

import "math"

// degenerateEdge is the squared length below which an edge is ignored as a
// separating axis.
const degenerateEdge = 1e-18

// Intersects reports whether two convex polygons overlap, using the
// separating axis theorem. Touching polygons intersect. Zero-length edges are
// skipped; if neither polygon contributes a usable axis the result is false.
func Intersects(a, b Polygon) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}

	axes := 0
	for _, poly := range [2]Polygon{a, b} {
		n := len(poly)
		for i := 0; i < n; i++ {
			p1 := poly[i]
			p2 := poly[(i+1)%n]
			ex, ey := p2.X-p1.X, p2.Y-p1.Y
			if ex*ex+ey*ey < degenerateEdge {
				continue
			}
			axes++

			// Normal to the edge
			nx, ny := -ey, ex

			minA, maxA := project(a, nx, ny)
			minB, maxB := project(b, nx, ny)
			if maxA < minB || maxB < minA {
				return false
			}
		}
	}
	return axes > 0
}

// project returns the extent of poly along the axis (nx, ny).
func project(poly Polygon, nx, ny float64) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range poly {
		d := v.X*nx + v.Y*ny
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	return min, max
}
