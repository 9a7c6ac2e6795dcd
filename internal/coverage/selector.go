package coverage

import (
	"context"
	"math"
	"sync"

	"github.com/ctessum/geom"
)

// gainTieTolerance is the absolute area difference (square meters) under
// which two candidate gains count as tied and the tie-break rules apply.
const gainTieTolerance = 1e-6

// Compute runs the full selection loop for one boundary and returns its
// circle set, coverage fraction and terminal reason.
//
// The boundary must be in a projected coordinate system whose units are
// meters. A degenerate (zero-area) boundary yields an empty, saturated
// result rather than an error. Cancelling the context stops the loop after
// the current step; the partial result is returned with ReasonAborted.
func Compute(ctx context.Context, boundary geom.Polygonal, p Params) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	eval := NewEvaluator(boundary, p.CircleSegments)
	res := Result{PolygonArea: eval.PolygonArea()}
	if eval.PolygonArea() <= 0 {
		res.Reason = ReasonSaturated
		return res, nil
	}

	gen := NewGenerator(boundary, p)
	minGain := p.MinGainEpsilon * eval.PolygonArea()

	for step := 0; ; step++ {
		select {
		case <-ctx.Done():
			res.Reason = ReasonAborted
			res.CoverageFraction = eval.Fraction()
			return res, nil
		default:
		}

		// Residual is materialized here, before scoring fans out.
		cands := gen.Candidates(eval.Residual(), step)
		if len(cands) == 0 {
			res.Reason = ReasonSaturated
			break
		}

		gains := scoreCandidates(eval, cands, p.scoreWorkers())
		best := pickBest(cands, gains)
		if best < 0 || gains[best] <= minGain {
			res.Reason = ReasonSaturated
			break
		}

		eval.Commit(cands[best])
		res.Circles = append(res.Circles, cands[best])

		// Budget outranks the coverage threshold when the same circle
		// triggers both.
		if len(res.Circles) >= p.MaxCircles {
			res.Reason = ReasonBudgetExhausted
			break
		}
		if eval.Fraction() >= p.CoverageThreshold {
			res.Reason = ReasonFullyCovered
			break
		}
	}

	res.CoverageFraction = eval.Fraction()
	return res, nil
}

// scoreCandidates computes marginal gains for every candidate, fanning out
// across at most workers goroutines. Gains are written into an index-aligned
// slice, so goroutine scheduling cannot change the selection.
func scoreCandidates(eval *Evaluator, cands []Circle, workers int) []float64 {
	gains := make([]float64, len(cands))
	if workers <= 1 || len(cands) < 2*workers {
		for i, c := range cands {
			gains[i] = eval.MarginalGain(c)
		}
		return gains
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				gains[i] = eval.MarginalGain(cands[i])
			}
		}()
	}
	for i := range cands {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return gains
}

// pickBest applies the selection policy: largest gain wins; ties go to the
// smaller radius (saving large circles for later, wider gaps), then to the
// lexicographically smaller center.
func pickBest(cands []Circle, gains []float64) int {
	best := -1
	for i := range cands {
		if best < 0 || betterCandidate(cands[i], gains[i], cands[best], gains[best]) {
			best = i
		}
	}
	return best
}

func betterCandidate(a Circle, gainA float64, b Circle, gainB float64) bool {
	if math.Abs(gainA-gainB) > gainTieTolerance {
		return gainA > gainB
	}
	if a.Units != b.Units {
		return a.Units < b.Units
	}
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}
