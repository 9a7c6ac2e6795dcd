package runner

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ctessum/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"constituency-bubbles/internal/boundary"
	"constituency-bubbles/internal/coverage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func squareBoundary(id string, side float64) boundary.Boundary {
	h := side / 2
	return boundary.Boundary{ID: id, Geom: geom.Polygon{{
		{X: -h, Y: -h}, {X: h, Y: -h}, {X: h, Y: h}, {X: -h, Y: h},
	}}}
}

func fastParams() coverage.Params {
	return coverage.DefaultParams().WithMaxCircles(3).WithScoreWorkers(1)
}

func TestRun_InvalidBoundaryDoesNotAbortBatch(t *testing.T) {
	bs := []boundary.Boundary{
		squareBoundary("Good East", 10000),
		{ID: "Degenerate", Geom: geom.Polygon{}},
		squareBoundary("Good West", 8000),
	}

	outcomes := Run(context.Background(), testLogger(), bs, Options{Params: fastParams(), Workers: 2})
	require.Len(t, outcomes, 3)

	// Outcomes stay in input order regardless of worker scheduling.
	assert.Equal(t, "Good East", outcomes[0].ID)
	assert.Equal(t, "Degenerate", outcomes[1].ID)
	assert.Equal(t, "Good West", outcomes[2].ID)

	require.NoError(t, outcomes[0].Err)
	require.NotNil(t, outcomes[0].Result)
	assert.Greater(t, outcomes[0].Result.CircleCount(), 0)

	assert.ErrorIs(t, outcomes[1].Err, boundary.ErrInvalidGeometry)
	assert.Nil(t, outcomes[1].Result)

	require.NoError(t, outcomes[2].Err)
	require.NotNil(t, outcomes[2].Result)
}

func TestRun_TimeoutSurfacesAsAborted(t *testing.T) {
	// A ceiling that expires immediately: the run terminates with the
	// distinct aborted reason instead of an error.
	bs := []boundary.Boundary{squareBoundary("Slow", 10000)}
	opts := Options{Params: fastParams(), Workers: 1, Timeout: time.Nanosecond}

	outcomes := Run(context.Background(), testLogger(), bs, opts)
	require.Len(t, outcomes, 1)
	require.NoError(t, outcomes[0].Err)
	require.NotNil(t, outcomes[0].Result)
	assert.Equal(t, coverage.ReasonAborted, outcomes[0].Result.Reason)
}

func TestSummarize(t *testing.T) {
	bs := []boundary.Boundary{
		squareBoundary("A", 10000),
		{ID: "B", Geom: geom.Polygon{}},
		// Narrower than two unit distances: saturates with zero circles.
		{ID: "C", Geom: geom.Polygon{{
			{X: 0, Y: 0}, {X: 20000, Y: 0}, {X: 20000, Y: 1500}, {X: 0, Y: 1500},
		}}},
	}

	outcomes := Run(context.Background(), testLogger(), bs, Options{Params: fastParams(), Workers: 1})
	s := Summarize(outcomes)

	assert.Equal(t, 2, s.Completed)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 1, s.ZeroCircles)
	assert.Equal(t, 1, s.ByReason[coverage.ReasonSaturated.String()])
	assert.Equal(t, 1, s.ByReason[coverage.ReasonBudgetExhausted.String()])
}
