package coverage

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluator_NoCirclesNoCoverage(t *testing.T) {
	ev := NewEvaluator(squarePoly(10000), 64)

	assert.Zero(t, ev.CoveredArea())
	assert.Zero(t, ev.Fraction())
	assert.InDelta(t, 1e8, ev.PolygonArea(), 1.0)
}

func TestEvaluator_CircleFullyInside(t *testing.T) {
	ev := NewEvaluator(squarePoly(10000), 64)
	c := Circle{X: 0, Y: 0, Units: 2, Radius: 2000}

	gain := ev.MarginalGain(c)
	assert.InDelta(t, math.Pi*2000*2000, gain, math.Pi*2000*2000*0.01,
		"a contained circle should gain roughly its own area")

	ev.Commit(c)
	assert.InDelta(t, gain, ev.CoveredArea(), 1.0)
}

func TestEvaluator_OverlapNotDoubleCounted(t *testing.T) {
	ev := NewEvaluator(squarePoly(10000), 64)
	c := Circle{X: 0, Y: 0, Units: 2, Radius: 2000}

	ev.Commit(c)
	after := ev.CoveredArea()

	// The identical circle again adds nothing.
	assert.InDelta(t, 0, ev.MarginalGain(c), 1.0)
	ev.Commit(c)
	assert.InDelta(t, after, ev.CoveredArea(), 1.0)
}

func TestEvaluator_AreaOutsideBoundaryNotCounted(t *testing.T) {
	ev := NewEvaluator(squarePoly(10000), 64)

	// Far outside the square entirely.
	assert.Zero(t, ev.MarginalGain(Circle{X: 100000, Y: 100000, Units: 3, Radius: 3000}))

	// Centered on a corner: only the inside quarter counts.
	corner := Circle{X: 5000, Y: 5000, Units: 2, Radius: 2000}
	quarter := math.Pi * 2000 * 2000 / 4
	assert.InDelta(t, quarter, ev.MarginalGain(corner), quarter*0.02)
}

func TestEvaluator_CoverageNeverExceedsPolygonArea(t *testing.T) {
	square := squarePoly(4000)
	ev := NewEvaluator(square, 64)

	// A 5 km circle swallows the whole 4 km square.
	ev.Commit(Circle{X: 0, Y: 0, Units: 5, Radius: 5000})

	assert.LessOrEqual(t, ev.CoveredArea(), ev.PolygonArea())
	assert.InDelta(t, 1.0, ev.Fraction(), 1e-9)
}

func TestEvaluator_IncrementalMatchesFromScratch(t *testing.T) {
	square := squarePoly(10000)
	circles := []Circle{
		{X: -2000, Y: -2000, Units: 2, Radius: 2000},
		{X: 2500, Y: 2500, Units: 2, Radius: 2000},
		{X: 0, Y: 0, Units: 3, Radius: 3000}, // overlaps both
	}

	incremental := NewEvaluator(square, 64)
	var fractions []float64
	for _, c := range circles {
		incremental.Commit(c)
		fractions = append(fractions, incremental.Fraction())
	}

	// Coverage is monotonically non-decreasing.
	for i := 1; i < len(fractions); i++ {
		assert.GreaterOrEqual(t, fractions[i], fractions[i-1])
	}

	// Replaying the same set on a fresh evaluator lands on the same total.
	fresh := NewEvaluator(square, 64)
	for _, c := range circles {
		fresh.Commit(c)
	}
	require.InDelta(t, incremental.Fraction(), fresh.Fraction(), 1e-12)
}

func TestEvaluator_ResidualComplementsCoverage(t *testing.T) {
	square := squarePoly(10000)
	ev := NewEvaluator(square, 64)

	assert.InDelta(t, ev.PolygonArea(), ev.Residual().Area(), 1.0,
		"before any commit the residual is the whole boundary")

	// Two commits so the residual is rebuilt from a multi-circle union.
	ev.Commit(Circle{X: -2000, Y: 0, Units: 2, Radius: 2000})
	ev.Commit(Circle{X: 2500, Y: 1000, Units: 1, Radius: 1000})

	assert.InDelta(t, ev.PolygonArea()-ev.CoveredArea(), ev.Residual().Area(),
		ev.PolygonArea()*0.001, "residual and covered area partition the boundary")

	// A circle inside the residual gains through it; one inside the covered
	// part does not.
	assert.Greater(t, ev.MarginalGain(Circle{X: 2500, Y: -3000, Units: 1, Radius: 1000}), 0.0)
	assert.InDelta(t, 0, ev.MarginalGain(Circle{X: -2000, Y: 0, Units: 1, Radius: 1000}), 1.0)
}

func TestEvaluator_DegenerateBoundary(t *testing.T) {
	ev := NewEvaluator(nil, 64)
	assert.Zero(t, ev.PolygonArea())
	assert.Zero(t, ev.Fraction())
	assert.Zero(t, ev.MarginalGain(Circle{X: 0, Y: 0, Units: 1, Radius: 1000}))
}
