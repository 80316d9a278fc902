package stress

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/hupe1980/slicekit/resource"
)

var (
	// ErrInvalidIterations is returned when the iteration count is not positive.
	ErrInvalidIterations = errors.New("iterations must be positive")
	// ErrInvalidWorkers is returned when the worker count is not positive.
	ErrInvalidWorkers = errors.New("workers must be positive")
)

// DefaultWorkers is the worker count used when Config.Workers is 0.
const DefaultWorkers = 4

// Config holds stress run parameters.
type Config struct {
	// Workers is the number of concurrent workers per run.
	// If 0, defaults to DefaultWorkers.
	Workers int

	// Pace optionally throttles acquire cycles on the safe path.
	// If nil, workers spin as fast as the scheduler allows.
	Pace *rate.Limiter
}

// Runner drives stress runs against one pair of resources. The resources
// are owned by the caller and live across runs; the runner only lends
// references to its workers.
type Runner struct {
	first   *resource.Resource
	second  *resource.Resource
	workers int
	pace    *rate.Limiter
}

// NewRunner creates a stress runner for the given resource pair.
func NewRunner(first, second *resource.Resource, cfg Config) (*Runner, error) {
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWorkers, cfg.Workers)
	}
	if cfg.Workers == 0 {
		cfg.Workers = DefaultWorkers
	}
	return &Runner{
		first:   first,
		second:  second,
		workers: cfg.Workers,
		pace:    cfg.Pace,
	}, nil
}

// Workers returns the configured worker count.
func (r *Runner) Workers() int { return r.workers }

// RunSafe blocks until every worker has completed all iterations of the
// ordered acquire/yield/release cycle, or until ctx is canceled. The safe
// path cannot deadlock regardless of interleaving, so completion time is
// proportional to workers x iterations.
func (r *Runner) RunSafe(ctx context.Context, iterations int) error {
	if iterations <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidIterations, iterations)
	}

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < r.workers; w++ {
		// Workers alternate the order they name the pair in; With
		// normalizes to ordinal order either way.
		swapped := w%2 == 1
		g.Go(func() error {
			a, b := r.first, r.second
			if swapped {
				a, b = b, a
			}
			for i := 0; i < iterations; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if r.pace != nil {
					if err := r.pace.Wait(ctx); err != nil {
						return err
					}
				}
				resource.With(a, b, runtime.Gosched)
			}
			return nil
		})
	}
	return g.Wait()
}

// RunUnsafe executes the unordered acquire loop in the calling goroutine:
// first-then-second, or second-then-first when reversed. Run concurrently
// with a call using the opposite flag it is expected to deadlock, in which
// case it never returns. Callers must apply their own supervision; see
// StartUnsafe for the watchdog-wrapped form.
func (r *Runner) RunUnsafe(iterations int, reversed bool) {
	a, b := r.first, r.second
	if reversed {
		a, b = b, a
	}
	for i := 0; i < iterations; i++ {
		resource.WithUnordered(a, b, runtime.Gosched)
	}
}

// StartUnsafe launches the configured number of workers on the unordered
// path, half acquiring first-then-second and half the reverse, which is the
// interleaving circular wait needs. The returned Run must be bounded with
// Run.Wait; the workers of a deadlocked run never terminate.
func (r *Runner) StartUnsafe(iterations int) (*Run, error) {
	if iterations <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidIterations, iterations)
	}

	run := newRun()

	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		reversed := w%2 == 1
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.RunUnsafe(iterations, reversed)
		}()
	}

	go func() {
		wg.Wait()
		run.complete()
	}()

	return run, nil
}
