package montecarlo

import (
	"context"
	"runtime"

	"clinch-calc/internal/model"

	"golang.org/x/sync/errgroup"
)

// Options configures SimulateParallel.
type Options struct {
	Volatility float64
	Trials     int
	// Workers <= 0 means one per CPU.
	Workers int
	// Seed fixes every worker's stream; the same Seed and Workers give the
	// same Curve.
	Seed uint64
}

// checkEvery is how many trials a worker runs between context checks.
const checkEvery = 256

// workerSeedSalt picks the stream that seeds workers 1..n-1. It must not be
// a multiple of the SplitMix increment, or worker streams become shifted
// copies of each other.
const workerSeedSalt = 0x6a09e667f3bcc909

// workerSeeds returns one seed per worker. Worker 0 keeps seed so a single
// worker reproduces Simulate; the rest are drawn from a separately seeded
// SplitMix, which scatters their start states across the whole state space.
func workerSeeds(seed uint64, workers int) []uint64 {
	seeds := make([]uint64, workers)
	seeds[0] = seed
	gen := NewSource(seed ^ workerSeedSalt)
	for w := 1; w < workers; w++ {
		seeds[w] = gen.Uint64()
	}
	return seeds
}

// SimulateParallel spreads the trials of Simulate over several goroutines,
// each with its own Source, and sums their per-k counts. It returns ctx.Err()
// if the context is cancelled before all trials finish.
func SimulateParallel(ctx context.Context, s model.Scenario, opts Options) (*Curve, error) {
	trials, volatility := normalize(opts.Trials, opts.Volatility)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > trials {
		workers = trials
	}

	seeds := workerSeeds(opts.Seed, workers)
	parts := make([]*tally, workers)
	g, ctx := errgroup.WithContext(ctx)

	for w := 0; w < workers; w++ {
		n := trials / workers
		if w < trials%workers {
			n++
		}
		src := NewSource(seeds[w])
		t := newTally(s.Remaining)
		parts[w] = t

		g.Go(func() error {
			for done := 0; done < n; done += checkEvery {
				if err := ctx.Err(); err != nil {
					return err
				}
				runTrials(s, volatility, min(checkEvery, n-done), src, t)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := newTally(s.Remaining)
	for _, t := range parts {
		total.add(t)
	}
	return buildCurve(total, trials, volatility), nil
}
