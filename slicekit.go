package slicekit

import (
	"context"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/semaphore"

	"github.com/hupe1980/slicekit/resource"
	"github.com/hupe1980/slicekit/slice"
	"github.com/hupe1980/slicekit/stress"
)

// DefaultStressTimeout is the watchdog timeout for WatchUnsafeStress when
// WithStressTimeout is not set.
const DefaultStressTimeout = 2 * time.Second

// Engine exposes the scan kernels and the lock coordination stress harness.
// It owns the hardware resource pair for the lifetime of the process and
// lends references to stress workers; scanning holds no state at all.
type Engine struct {
	logger  *Logger
	metrics MetricsCollector
	timeout time.Duration

	scanSem *semaphore.Weighted // nil if unbounded

	laser  *resource.Resource
	stage  *resource.Resource
	runner *stress.Runner
}

// New creates an Engine.
func New(opts ...Option) (*Engine, error) {
	o := options{
		logger:        NoopLogger(),
		metrics:       NoopMetricsCollector{},
		stressTimeout: DefaultStressTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	laser := resource.New("laser")
	stage := resource.New("stage")

	runner, err := stress.NewRunner(laser, stage, stress.Config{
		Workers: o.stressWorkers,
		Pace:    o.pace,
	})
	if err != nil {
		return nil, translateError(err)
	}

	e := &Engine{
		logger:  o.logger,
		metrics: o.metrics,
		timeout: o.stressTimeout,
		laser:   laser,
		stage:   stage,
		runner:  runner,
	}
	if o.maxConcurrentScans > 0 {
		e.scanSem = semaphore.NewWeighted(o.maxConcurrentScans)
	}
	return e, nil
}

// ScanOverlaps counts the intervals in the batch that contain threshold,
// using the branchless lane-mask kernel. Mismatched batch lengths return
// *ErrLengthMismatch.
func (e *Engine) ScanOverlaps(mins, maxs []float32, threshold float32) (uint64, error) {
	return e.scan("lanes", len(mins), func() (uint64, error) {
		return slice.CountOverlaps(mins, maxs, threshold)
	})
}

// ScanOverlapsScalar counts with the per-index reference loop. Always
// returns the same count as ScanOverlaps for the same batch.
func (e *Engine) ScanOverlapsScalar(mins, maxs []float32, threshold float32) (uint64, error) {
	return e.scan("scalar", len(mins), func() (uint64, error) {
		return slice.CountOverlapsScalar(mins, maxs, threshold)
	})
}

// ScanOverlapSet returns the hit indices as a roaring bitmap, for callers
// that need which triangles intersect the layer rather than just how many.
func (e *Engine) ScanOverlapSet(mins, maxs []float32, threshold float32) (*roaring.Bitmap, error) {
	if err := e.acquireScan(); err != nil {
		return nil, err
	}
	defer e.releaseScan()

	set, err := slice.OverlapSet(mins, maxs, threshold)
	return set, translateError(err)
}

func (e *Engine) scan(kernel string, n int, fn func() (uint64, error)) (uint64, error) {
	if err := e.acquireScan(); err != nil {
		return 0, err
	}
	defer e.releaseScan()

	start := time.Now()
	hits, err := fn()
	duration := time.Since(start)
	err = translateError(err)

	e.metrics.RecordScan(n, duration, err)
	e.logger.LogScan(kernel, n, hits, duration, err)
	return hits, err
}

func (e *Engine) acquireScan() error {
	if e.scanSem == nil {
		return nil
	}
	return e.scanSem.Acquire(context.Background(), 1)
}

func (e *Engine) releaseScan() {
	if e.scanSem != nil {
		e.scanSem.Release(1)
	}
}

// RunSafeStress blocks until every stress worker has completed all
// iterations of the ordered acquire/yield/release cycle, or ctx is
// canceled. The ordered path cannot deadlock, so wall-clock time is
// proportional to the iteration count.
func (e *Engine) RunSafeStress(ctx context.Context, iterations int) error {
	start := time.Now()
	if err := e.runner.RunSafe(ctx, iterations); err != nil {
		return translateError(err)
	}

	duration := time.Since(start)
	e.metrics.RecordStress(stress.Completed, iterations, duration)
	e.logger.LogStress(stress.Completed, e.runner.Workers(), iterations, duration)
	return nil
}

// RunUnsafeStress executes the unordered acquire loop in the calling
// goroutine: laser-then-stage, or stage-then-laser when reversed. Run
// concurrently with a call using the opposite flag it is expected to
// deadlock, in which case it never returns. Supervision (timeout, process
// exit) is the caller's responsibility; WatchUnsafeStress is the bounded
// form.
func (e *Engine) RunUnsafeStress(iterations int, reversed bool) {
	e.logger.Debug("unsafe stress starting",
		"iterations", iterations,
		"reversed", reversed,
	)
	e.runner.RunUnsafe(iterations, reversed)
}

// WatchUnsafeStress launches mixed-order unsafe workers and waits at most
// the configured watchdog timeout. It returns Completed if every worker
// finished (lucky interleaving) and TimedOutSuspectedDeadlock otherwise.
// Deadlocked workers are abandoned; the outcome is diagnostic only.
func (e *Engine) WatchUnsafeStress(iterations int) (stress.Outcome, error) {
	run, err := e.runner.StartUnsafe(iterations)
	if err != nil {
		return stress.Running, translateError(err)
	}

	outcome := run.Wait(e.timeout)
	e.metrics.RecordStress(outcome, iterations, run.Elapsed())
	e.logger.LogStress(outcome, e.runner.Workers(), iterations, run.Elapsed())
	return outcome, nil
}

// KernelInfo returns the name of the scan kernel ISA selected at startup
// and its element width.
func (e *Engine) KernelInfo() (isa string, width int) {
	return slice.KernelISA(), slice.KernelWidth()
}
