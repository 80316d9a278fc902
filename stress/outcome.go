package stress

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Outcome is the state of a stress run.
type Outcome int32

const (
	// Running means the run has started and no terminal state was reached.
	Running Outcome = iota
	// Completed means every worker finished all iterations.
	Completed
	// TimedOutSuspectedDeadlock means the watchdog timeout elapsed before
	// completion. Terminal and diagnostic only: the blocked workers are
	// abandoned, not unwound.
	TimedOutSuspectedDeadlock
)

func (o Outcome) String() string {
	switch o {
	case Running:
		return "running"
	case Completed:
		return "completed"
	case TimedOutSuspectedDeadlock:
		return "timed-out (suspected deadlock)"
	default:
		return fmt.Sprintf("unknown(%d)", o)
	}
}

// Run tracks one stress run. Transitions are one-way:
// Running -> Completed or Running -> TimedOutSuspectedDeadlock.
type Run struct {
	outcome atomic.Int32
	done    chan struct{}
	started time.Time
}

func newRun() *Run {
	return &Run{
		done:    make(chan struct{}),
		started: time.Now(),
	}
}

// Outcome returns the current state of the run.
func (r *Run) Outcome() Outcome {
	return Outcome(r.outcome.Load())
}

// Done is closed when all workers have finished. It is never closed for a
// deadlocked run.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Elapsed returns the wall-clock time since the run started.
func (r *Run) Elapsed() time.Duration {
	return time.Since(r.started)
}

// complete marks the run Completed if it is still Running.
func (r *Run) complete() {
	r.outcome.CompareAndSwap(int32(Running), int32(Completed))
	close(r.done)
}

// Wait blocks until the run completes or timeout elapses, whichever comes
// first, and returns the resulting terminal outcome. The timeout is fixed,
// independent of iteration count: a true deadlock never completes, so
// waiting longer buys nothing. Once TimedOutSuspectedDeadlock is recorded
// the run stays in that state even if workers were merely slow.
func (r *Run) Wait(timeout time.Duration) Outcome {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-r.done:
	case <-timer.C:
		r.outcome.CompareAndSwap(int32(Running), int32(TimedOutSuspectedDeadlock))
	}
	return r.Outcome()
}
