package slicekit

import (
	"time"

	"golang.org/x/time/rate"
)

type options struct {
	logger             *Logger
	metrics            MetricsCollector
	stressWorkers      int
	stressTimeout      time.Duration
	pace               *rate.Limiter
	maxConcurrentScans int64
}

// Option configures Engine constructor behavior.
type Option func(*options)

// WithLogger configures structured logging. If nil is passed, logging is
// disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetrics configures the metrics collector. If nil is passed,
// NoopMetricsCollector is used.
func WithMetrics(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metrics = m
	}
}

// WithStressWorkers configures the number of workers per stress run.
// Defaults to stress.DefaultWorkers.
func WithStressWorkers(workers int) Option {
	return func(o *options) {
		o.stressWorkers = workers
	}
}

// WithStressTimeout configures the watchdog timeout applied by
// WatchUnsafeStress. The timeout is independent of the iteration count: a
// deadlocked run never completes, so waiting longer only delays the
// diagnosis. Defaults to DefaultStressTimeout.
func WithStressTimeout(d time.Duration) Option {
	return func(o *options) {
		o.stressTimeout = d
	}
}

// WithPacing throttles acquire cycles on the safe stress path. Useful to
// model duty-cycled hardware instead of a tight lock loop. If nil,
// workers run unthrottled.
func WithPacing(l *rate.Limiter) Option {
	return func(o *options) {
		o.pace = l
	}
}

// WithMaxConcurrentScans bounds the number of scans running at once.
// Scans are CPU-bound; bounding them keeps a burst of callers from
// oversubscribing the machine. If 0, scans are unbounded.
func WithMaxConcurrentScans(n int64) Option {
	return func(o *options) {
		o.maxConcurrentScans = n
	}
}
