// Package runner executes circle placement across many constituencies with
// a bounded worker pool. Each boundary is an independent unit of work with
// its own coverage state; a failure in one never aborts the others.
package runner

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"constituency-bubbles/internal/boundary"
	"constituency-bubbles/internal/coverage"
	"constituency-bubbles/internal/metrics"
)

// Options configures a batch run.
type Options struct {
	Params  coverage.Params
	Workers int           // concurrent boundaries; 0 means GOMAXPROCS
	Timeout time.Duration // per-boundary wall-clock ceiling; 0 means none
}

// Outcome is the terminal record for one boundary: either a result or the
// per-boundary error that prevented one.
type Outcome struct {
	ID      string
	Result  *coverage.Result
	Err     error
	Elapsed time.Duration
}

// Run processes every boundary and returns outcomes in input order, so two
// runs over the same inputs produce identically ordered output files.
func Run(ctx context.Context, log *slog.Logger, bs []boundary.Boundary, opts Options) []Outcome {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(bs) {
		workers = len(bs)
	}

	outcomes := make([]Outcome, len(bs))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = processOne(ctx, log, bs[i], opts)
			}
		}()
	}
	for i := range bs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return outcomes
}

func processOne(ctx context.Context, log *slog.Logger, b boundary.Boundary, opts Options) Outcome {
	start := time.Now()
	out := Outcome{ID: b.ID}

	poly, err := b.Polygonal()
	if err != nil {
		metrics.BoundariesFailed.Inc()
		log.Warn("skipping boundary", "id", b.ID, "error", err)
		out.Err = err
		out.Elapsed = time.Since(start)
		return out
	}

	runCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	res, err := coverage.Compute(runCtx, poly, opts.Params)
	out.Elapsed = time.Since(start)
	if err != nil {
		metrics.BoundariesFailed.Inc()
		log.Error("boundary failed", "id", b.ID, "error", err)
		out.Err = err
		return out
	}

	metrics.BoundariesTotal.Inc()
	metrics.CirclesPlacedTotal.Add(float64(res.CircleCount()))
	metrics.CoveragePercent.Observe(res.CoveragePercent())
	metrics.BoundaryDurationSeconds.Observe(out.Elapsed.Seconds())
	log.Info("boundary complete",
		"id", b.ID,
		"circles", res.CircleCount(),
		"coverage_pct", res.CoveragePercent(),
		"reason", res.Reason.String(),
		"elapsed", out.Elapsed.Round(time.Millisecond))

	out.Result = &res
	return out
}

// Summary tallies a finished batch for the end-of-run report.
type Summary struct {
	Completed   int
	Failed      int
	ZeroCircles int // boundaries that saturated without fitting any circle
	ByReason    map[string]int
}

// Summarize aggregates outcomes into a Summary.
func Summarize(outcomes []Outcome) Summary {
	s := Summary{ByReason: make(map[string]int)}
	for _, o := range outcomes {
		if o.Err != nil {
			s.Failed++
			continue
		}
		s.Completed++
		s.ByReason[o.Result.Reason.String()]++
		if o.Result.CircleCount() == 0 {
			s.ZeroCircles++
		}
	}
	return s
}
