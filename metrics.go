package slicekit

import (
	"sync/atomic"
	"time"

	"github.com/hupe1980/slicekit/stress"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordScan is called after each scan operation.
	// n is the batch size, duration the time taken, err nil if successful.
	RecordScan(n int, duration time.Duration, err error)

	// RecordStress is called after each bounded stress run with its
	// terminal outcome, the per-worker iteration count and the wall-clock
	// duration of the run (the watchdog timeout for deadlocked runs).
	RecordStress(outcome stress.Outcome, iterations int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordScan(int, time.Duration, error)            {}
func (NoopMetricsCollector) RecordStress(stress.Outcome, int, time.Duration) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ScanCount        atomic.Int64
	ScanErrors       atomic.Int64
	ScanElements     atomic.Int64
	ScanTotalNanos   atomic.Int64
	StressCount      atomic.Int64
	StressDeadlocks  atomic.Int64
	StressIterations atomic.Int64
}

// RecordScan implements MetricsCollector.
func (b *BasicMetricsCollector) RecordScan(n int, duration time.Duration, err error) {
	b.ScanCount.Add(1)
	b.ScanElements.Add(int64(n))
	b.ScanTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ScanErrors.Add(1)
	}
}

// RecordStress implements MetricsCollector.
func (b *BasicMetricsCollector) RecordStress(outcome stress.Outcome, iterations int, duration time.Duration) {
	b.StressCount.Add(1)
	b.StressIterations.Add(int64(iterations))
	if outcome == stress.TimedOutSuspectedDeadlock {
		b.StressDeadlocks.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ScanCount:        b.ScanCount.Load(),
		ScanErrors:       b.ScanErrors.Load(),
		ScanElements:     b.ScanElements.Load(),
		ScanAvgNanos:     b.getAvgScanNanos(),
		StressCount:      b.StressCount.Load(),
		StressDeadlocks:  b.StressDeadlocks.Load(),
		StressIterations: b.StressIterations.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgScanNanos() int64 {
	count := b.ScanCount.Load()
	if count == 0 {
		return 0
	}
	return b.ScanTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ScanCount        int64
	ScanErrors       int64
	ScanElements     int64
	ScanAvgNanos     int64
	StressCount      int64
	StressDeadlocks  int64
	StressIterations int64
}
