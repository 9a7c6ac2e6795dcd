// Package coverage implements circle placement for constituency boundaries.
// Given a polygonal boundary in a projected (meter-unit) coordinate system,
// it greedily selects up to a fixed budget of circles with quantized radii
// that together cover as much of the boundary's area as possible.
package coverage

import "math"

// Circle is one placed or candidate circle. Center coordinates are in the
// boundary's projected units (meters). Units is the radius expressed in unit
// distances (whole kilometres by default) and is always >= 1; Radius is the
// same value in meters.
type Circle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Units  int     `json:"units"`
	Radius float64 `json:"radius"`
}

// TerminalReason says how a selection run ended. Every run ends in exactly
// one of these; none of them is an error.
type TerminalReason int

const (
	// ReasonBudgetExhausted indicates the full circle budget was spent.
	ReasonBudgetExhausted TerminalReason = iota
	// ReasonSaturated indicates no candidate added area above the
	// minimum-gain threshold. This is also the outcome for boundaries too
	// narrow to fit even a single unit-radius circle.
	ReasonSaturated
	// ReasonFullyCovered indicates coverage reached the configured threshold.
	ReasonFullyCovered
	// ReasonAborted indicates the caller's context expired; the result holds
	// the circles committed up to that point.
	ReasonAborted
)

func (r TerminalReason) String() string {
	switch r {
	case ReasonBudgetExhausted:
		return "budget_exhausted"
	case ReasonSaturated:
		return "saturated"
	case ReasonFullyCovered:
		return "fully_covered"
	case ReasonAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Result is the outcome of one selection run. Circles are in selection
// order; the order carries no spatial meaning.
type Result struct {
	Circles          []Circle
	CoverageFraction float64
	PolygonArea      float64
	Reason           TerminalReason
}

// CircleCount returns the number of committed circles.
func (r Result) CircleCount() int { return len(r.Circles) }

// CoveragePercent returns coverage as a percentage rounded to 0.1, the
// precision used in all reports.
func (r Result) CoveragePercent() float64 {
	return math.Round(r.CoverageFraction*1000) / 10
}
