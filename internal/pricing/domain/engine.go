package domain

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// WorkerFunc is one chunk of simulation work: draw `count` independent
// paths starting at global row/index `start`, using a PRNG owned
// exclusively by this worker. Implementations must check ctx between
// paths so a sibling worker's failure can stop them from starting new
// work.
type WorkerFunc func(ctx context.Context, workerIndex, start, count int, rng *rand.Rand) error

// validateSizing checks the N/W preconditions shared by every pricing
// entry point. It must run before any n- or w-sized allocation: gonum's
// mat.NewDense panics on non-positive dimensions and Go's make on negative
// sizes rather than returning an error, so callers cannot rely on runParallel
// alone to catch a bad n or w once they've already sized a slice or
// matrix off it.
func validateSizing(n, w int) error {
	if n <= 0 {
		return newInvalidArgument("number of simulations must be positive, got %d", n)
	}
	if w <= 0 {
		return newInvalidArgument("number of workers must be positive, got %d", w)
	}
	return nil
}

// chunkSizes splits n items across w workers, sizes differing by at most
// one, matching the "partition N into W chunks differing by at most 1"
// requirement for both the European estimator and the LSM row ranges.
func chunkSizes(n, w int) []int {
	base := n / w
	rem := n % w
	sizes := make([]int, w)
	for i := range sizes {
		sizes[i] = base
		if i < rem {
			sizes[i]++
		}
	}
	return sizes
}

// runParallel creates a worker pool of size w, splits n simulations
// across it, and runs fn once per chunk. The pool is scoped to this one
// call: on any worker's failure, the shared context is cancelled so
// siblings stop starting new paths, the first error is returned, and no
// partial result is exposed to the caller (per §4.7/§5).
func runParallel(ctx context.Context, n, w int, seed uint64, progress ProgressFunc, fn WorkerFunc) error {
	if err := validateSizing(n, w); err != nil {
		return err
	}

	sizes := chunkSizes(n, w)
	g, gctx := errgroup.WithContext(ctx)

	var completed atomic.Int64
	var progressMu sync.Mutex
	start := 0
	for wi, count := range sizes {
		wi, offset, count := wi, start, count
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = newWorkerFailure(fmt.Errorf("panic: %v", r))
				}
			}()
			rng := newWorkerRand(seed, wi)
			if err := fn(gctx, wi, offset, count, rng); err != nil {
				return newWorkerFailure(err)
			}
			if progress != nil {
				progressMu.Lock()
				done := completed.Add(int64(count))
				progress(float64(done) / float64(n))
				progressMu.Unlock()
			}
			return nil
		})
		start += count
	}

	return g.Wait()
}
