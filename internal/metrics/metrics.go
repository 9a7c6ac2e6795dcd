// Package metrics exposes prometheus collectors for batch runs. A metrics
// endpoint is only served when an address is configured; short runs can
// ignore this package entirely.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	BoundariesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bubblegen_boundaries_total",
		Help: "Boundaries processed to a terminal state",
	})
	BoundariesFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bubblegen_boundaries_failed_total",
		Help: "Boundaries rejected for invalid geometry or unusable units",
	})
	CirclesPlacedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bubblegen_circles_placed_total",
		Help: "Circles committed across all boundaries",
	})
	CoveragePercent = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "bubblegen_coverage_percent",
		Help:    "Final coverage percentage per boundary",
		Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 95, 99, 100},
	})
	BoundaryDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "bubblegen_boundary_duration_seconds",
		Help:    "Wall-clock time spent per boundary",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300},
	})
)

func init() {
	prometheus.MustRegister(BoundariesTotal)
	prometheus.MustRegister(BoundariesFailed)
	prometheus.MustRegister(CirclesPlacedTotal)
	prometheus.MustRegister(CoveragePercent)
	prometheus.MustRegister(BoundaryDurationSeconds)
}

// Serve exposes /metrics on addr. Blocks; run it in a goroutine alongside
// the batch.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
