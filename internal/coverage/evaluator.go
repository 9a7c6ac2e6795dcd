package coverage

import (
	"math"

	"github.com/ctessum/geom"

	"constituency-bubbles/pkg/geometry"
)

// Evaluator tracks how much of one boundary is covered by the circles
// committed so far. It is owned by a single selection run and must not be
// shared across boundaries.
type Evaluator struct {
	boundary geom.Polygonal
	area     float64
	segments int

	covered     geom.Polygonal // union of committed circle polygons
	coveredArea float64        // area of boundary ∩ covered
	residual    geom.Polygonal
	hasResidual bool
}

// NewEvaluator prepares coverage accounting for a boundary. A nil or
// zero-area boundary is accepted and reports zero coverage throughout.
func NewEvaluator(boundary geom.Polygonal, segments int) *Evaluator {
	var area float64
	if boundary != nil {
		area = boundary.Area()
	}
	if area < 0 || math.IsNaN(area) {
		area = 0
	}
	return &Evaluator{boundary: boundary, area: area, segments: segments}
}

// PolygonArea returns the boundary's area in square meters.
func (e *Evaluator) PolygonArea() float64 { return e.area }

// CoveredArea returns the area of the boundary intersected with the union of
// all committed circles. Overlap between circles is counted once and circle
// area outside the boundary is not counted at all.
func (e *Evaluator) CoveredArea() float64 { return e.coveredArea }

// Fraction returns covered area over boundary area, clamped to [0, 1].
func (e *Evaluator) Fraction() float64 {
	if e.area <= 0 {
		return 0
	}
	f := e.coveredArea / e.area
	if f > 1 {
		f = 1
	}
	if f < 0 {
		f = 0
	}
	return f
}

// Residual returns the part of the boundary not yet covered. The value is
// cached until the next Commit and must be treated as read-only.
func (e *Evaluator) Residual() geom.Polygonal {
	if e.covered == nil {
		return e.boundary
	}
	if !e.hasResidual {
		e.residual = e.boundary.Difference(e.covered)
		e.hasResidual = true
	}
	return e.residual
}

// MarginalGain returns the boundary area the candidate would newly cover if
// committed. Always >= 0. Between commits this only reads shared state, so
// concurrent calls are safe once Residual has been materialized.
func (e *Evaluator) MarginalGain(c Circle) float64 {
	if e.area <= 0 {
		return 0
	}
	circle := geometry.CirclePolygon(geom.Point{X: c.X, Y: c.Y}, c.Radius, e.segments)
	gain := circle.Intersection(e.Residual()).Area()
	if gain < 0 || math.IsNaN(gain) {
		return 0
	}
	return gain
}

// Commit adds the circle to the covered union. The covered area is
// recomputed from the full union rather than accumulated, so the running
// total always matches a from-scratch evaluation of the same circle set.
func (e *Evaluator) Commit(c Circle) {
	circle := geometry.CirclePolygon(geom.Point{X: c.X, Y: c.Y}, c.Radius, e.segments)
	if e.covered == nil {
		e.covered = circle
	} else {
		e.covered = e.covered.Union(circle)
	}
	e.residual = nil
	e.hasResidual = false

	if e.boundary == nil {
		return
	}
	area := e.boundary.Intersection(e.covered).Area()
	if math.IsNaN(area) || area < e.coveredArea {
		// The union only ever grows; a smaller value is clipping noise.
		return
	}
	if area > e.area {
		area = e.area
	}
	e.coveredArea = area
}
