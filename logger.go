package slicekit

import (
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/slicekit/stress"
)

// Logger wraps slog.Logger with slicekit-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithBatchSize adds a batch size field to the logger.
func (l *Logger) WithBatchSize(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("batch_size", n),
	}
}

// WithWorkers adds a worker count field to the logger.
func (l *Logger) WithWorkers(workers int) *Logger {
	return &Logger{
		Logger: l.Logger.With("workers", workers),
	}
}

// LogScan logs a scan operation.
func (l *Logger) LogScan(kernel string, n int, hits uint64, duration time.Duration, err error) {
	if err != nil {
		l.Error("scan failed",
			"kernel", kernel,
			"batch_size", n,
			"error", err,
		)
	} else {
		l.Debug("scan completed",
			"kernel", kernel,
			"batch_size", n,
			"hits", hits,
			"duration", duration,
		)
	}
}

// LogStress logs the result of a stress run.
func (l *Logger) LogStress(outcome stress.Outcome, workers, iterations int, duration time.Duration) {
	if outcome == stress.TimedOutSuspectedDeadlock {
		l.Warn("stress run timed out",
			"outcome", outcome.String(),
			"workers", workers,
			"iterations", iterations,
			"duration", duration,
		)
	} else {
		l.Info("stress run finished",
			"outcome", outcome.String(),
			"workers", workers,
			"iterations", iterations,
			"duration", duration,
		)
	}
}
