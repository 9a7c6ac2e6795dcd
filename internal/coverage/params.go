package coverage

import (
	"fmt"
	"runtime"
)

// Params controls a selection run. Use DefaultParams and the WithX helpers
// rather than constructing the struct directly.
type Params struct {
	// MaxCircles is the hard cap on circles per boundary.
	MaxCircles int

	// UnitDistance is the radius quantization step in meters. Every circle
	// radius is a positive whole multiple of it, and it is also the minimum
	// radius.
	UnitDistance float64

	// MinGainEpsilon is the fraction of the boundary area below which a
	// candidate's marginal gain counts as non-contributing. Once the best
	// candidate falls under it the run is saturated.
	MinGainEpsilon float64

	// CoverageThreshold is the coverage fraction at which the run stops as
	// fully covered. 1.0 means "run until saturated or out of budget".
	CoverageThreshold float64

	// CircleSegments is the number of polygon segments used to discretize a
	// circle for area accounting.
	CircleSegments int

	// SampleDivisor ties candidate-center spacing to the residual
	// component's extent: spacing = max(extent/SampleDivisor, UnitDistance).
	SampleDivisor int

	// SampleK is the poisson-disc rejection count per active sample.
	SampleK int

	// Seed feeds the candidate sampler. Identical seeds give identical runs.
	Seed int64

	// ScoreWorkers bounds concurrent candidate scoring within one step.
	// Zero means GOMAXPROCS. Scoring order never affects the selection.
	ScoreWorkers int
}

// DefaultParams returns parameters tuned for UK constituency boundaries on
// the British National Grid: 200 circles, 1 km radius steps.
func DefaultParams() Params {
	return Params{
		MaxCircles:        200,
		UnitDistance:      1000,
		MinGainEpsilon:    0.0005, // 0.05% of boundary area
		CoverageThreshold: 1.0,
		CircleSegments:    64,
		SampleDivisor:     12,
		SampleK:           10,
		Seed:              1,
		ScoreWorkers:      0,
	}
}

// WithMaxCircles returns a copy of params with a different circle budget.
func (p Params) WithMaxCircles(n int) Params {
	p.MaxCircles = n
	return p
}

// WithUnitDistance returns a copy of params with a different quantization
// step in meters.
func (p Params) WithUnitDistance(meters float64) Params {
	p.UnitDistance = meters
	return p
}

// WithThresholds returns a copy of params with different stopping
// thresholds.
func (p Params) WithThresholds(minGainEpsilon, coverageThreshold float64) Params {
	p.MinGainEpsilon = minGainEpsilon
	p.CoverageThreshold = coverageThreshold
	return p
}

// WithSeed returns a copy of params with a different sampler seed.
func (p Params) WithSeed(seed int64) Params {
	p.Seed = seed
	return p
}

// WithScoreWorkers returns a copy of params with a different scoring
// concurrency bound.
func (p Params) WithScoreWorkers(n int) Params {
	p.ScoreWorkers = n
	return p
}

// Validate reports the first configuration problem, if any.
func (p Params) Validate() error {
	switch {
	case p.MaxCircles < 1:
		return fmt.Errorf("max circles must be at least 1, got %d", p.MaxCircles)
	case p.UnitDistance <= 0:
		return fmt.Errorf("unit distance must be positive, got %g", p.UnitDistance)
	case p.MinGainEpsilon < 0:
		return fmt.Errorf("minimum gain epsilon must not be negative, got %g", p.MinGainEpsilon)
	case p.CoverageThreshold <= 0 || p.CoverageThreshold > 1:
		return fmt.Errorf("coverage threshold must be in (0, 1], got %g", p.CoverageThreshold)
	case p.CircleSegments < 8:
		return fmt.Errorf("circle segments must be at least 8, got %d", p.CircleSegments)
	case p.SampleDivisor < 1:
		return fmt.Errorf("sample divisor must be at least 1, got %d", p.SampleDivisor)
	case p.SampleK < 1:
		return fmt.Errorf("sample k must be at least 1, got %d", p.SampleK)
	}
	return nil
}

func (p Params) scoreWorkers() int {
	if p.ScoreWorkers > 0 {
		return p.ScoreWorkers
	}
	return runtime.GOMAXPROCS(0)
}
