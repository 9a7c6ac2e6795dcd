// Package analysis aggregates statistics over per-constituency results for
// the end-of-batch report.
package analysis

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"constituency-bubbles/internal/coverage"
)

// RadiusCounts returns how many circles use each radius. Index 0 holds the
// count for one unit, index 1 for two units, and so on up to the largest
// radius present. Empty input yields nil.
func RadiusCounts(circles []coverage.Circle) []int {
	maxUnits := 0
	for _, c := range circles {
		if c.Units > maxUnits {
			maxUnits = c.Units
		}
	}
	if maxUnits == 0 {
		return nil
	}
	counts := make([]int, maxUnits)
	for _, c := range circles {
		counts[c.Units-1]++
	}
	return counts
}

// Summary holds distribution statistics for one metric across a batch.
type Summary struct {
	Mean   float64
	Median float64
	Min    float64
	Max    float64
	Sigma  float64
}

// Summarize computes batch distribution statistics. Sigma is the population
// standard deviation, matching the historical statistics files. Empty input
// returns the zero Summary.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return Summary{
		Mean:   stat.Mean(sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Sigma:  stat.PopStdDev(sorted, nil),
	}
}
