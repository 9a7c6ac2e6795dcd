package geometry

import (
	"sort"

	"github.com/ctessum/geom"
)

// ConvexHull computes the convex hull of a set of points using Graham scan.
// Returns the hull vertices in counter-clockwise order. Inputs with fewer
// than three points are returned as-is.
func ConvexHull(points []geom.Point) []geom.Point {
	if len(points) < 3 {
		return points
	}

	// Work on a copy so the caller's slice is untouched.
	pts := make([]geom.Point, len(points))
	copy(pts, points)

	// Pivot: lowest y, leftmost on ties.
	lowest := 0
	for i := 1; i < len(pts); i++ {
		if pts[i].Y < pts[lowest].Y ||
			(pts[i].Y == pts[lowest].Y && pts[i].X < pts[lowest].X) {
			lowest = i
		}
	}
	pts[0], pts[lowest] = pts[lowest], pts[0]
	pivot := pts[0]

	// Sort the rest by polar angle around the pivot; closer points first
	// when collinear so the scan can discard them.
	rest := pts[1:]
	sort.Slice(rest, func(i, j int) bool {
		c := cross(pivot, rest[i], rest[j])
		if c != 0 {
			return c > 0
		}
		return distSq(pivot, rest[i]) < distSq(pivot, rest[j])
	})

	hull := []geom.Point{pivot}
	for _, p := range rest {
		for len(hull) > 1 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull
}

// cross returns the z component of (a-o) x (b-o). Positive means o->a->b
// turns counter-clockwise.
func cross(o, a, b geom.Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

func distSq(a, b geom.Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}
