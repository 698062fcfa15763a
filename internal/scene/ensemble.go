package scene

import (
	"context"
	"fmt"
	"sync"
)

// Ensemble runs independent scenes that differ only in seed, one goroutine
// each. Metrics are stateful, so every run gets its own set from newMetrics.
type Ensemble struct {
	build      func(seed int64) (Options, error)
	newMetrics func() []Metric
	numRuns    int
	seedStart  int64
}

func NewEnsemble(build func(seed int64) (Options, error), newMetrics func() []Metric, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{build: build, newMetrics: newMetrics, numRuns: numRuns, seedStart: seedStart}
}

// Seed returns the seed used by run idx.
func (e *Ensemble) Seed(idx int) int64 { return e.seedStart + int64(idx) }

// Run steps every scene for frames frames. Results are indexed by run; the
// first failing run's error is returned once all runs have stopped.
func (e *Ensemble) Run(ctx context.Context, frames int) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			opts, err := e.build(e.Seed(idx))
			if err != nil {
				errs[idx] = err
				return
			}
			s, err := New(opts)
			if err != nil {
				errs[idx] = err
				return
			}
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					s.AddMetric(m)
				}
			}

			results[idx], errs[idx] = s.Run(ctx, frames, nil)
		}(i)
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return results, fmt.Errorf("run %d (seed %d): %w", i, e.Seed(i), err)
		}
	}
	return results, nil
}
