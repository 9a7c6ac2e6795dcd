package geometry

import (
	"math"

	"github.com/ctessum/geom"
)

// MinimumWidth returns the width of the narrowest slab containing the points,
// which equals the short side of the minimum rotated enclosing rectangle.
// Degenerate inputs (collinear or fewer than three points) yield 0.
//
// The minimum width of a convex polygon is attained perpendicular to one of
// its edges, so it suffices to check each hull edge against the farthest
// hull vertex (rotating calipers without the rotation bookkeeping).
func MinimumWidth(points []geom.Point) float64 {
	hull := ConvexHull(points)
	if len(hull) < 3 {
		return 0
	}

	minWidth := math.Inf(1)
	for i := range hull {
		a := hull[i]
		b := hull[(i+1)%len(hull)]
		edgeLen := math.Hypot(b.X-a.X, b.Y-a.Y)
		if edgeLen == 0 {
			continue
		}
		var farthest float64
		for _, p := range hull {
			d := math.Abs(cross(a, b, p)) / edgeLen
			if d > farthest {
				farthest = d
			}
		}
		if farthest < minWidth {
			minWidth = farthest
		}
	}
	if math.IsInf(minWidth, 1) {
		return 0
	}
	return minWidth
}

// PolygonalPoints flattens every ring vertex of p into a single slice,
// suitable as convex-hull input. Hole vertices are included; they lie inside
// the hull anyway.
func PolygonalPoints(p geom.Polygonal) []geom.Point {
	var pts []geom.Point
	for _, poly := range p.Polygons() {
		for _, ring := range poly {
			pts = append(pts, ring...)
		}
	}
	return pts
}
