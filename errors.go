package slicekit

import (
	"errors"
	"fmt"

	"github.com/hupe1980/slicekit/slice"
	"github.com/hupe1980/slicekit/stress"
)

var (
	// ErrInvalidIterations is returned when a stress iteration count is not positive.
	ErrInvalidIterations = errors.New("iterations must be positive")
	// ErrInvalidWorkers is returned when a stress worker count is not positive.
	ErrInvalidWorkers = errors.New("workers must be positive")
)

// ErrLengthMismatch indicates a scan batch whose min and max slices differ
// in length.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrLengthMismatch struct {
	Mins  int
	Maxs  int
	cause error
}

func (e *ErrLengthMismatch) Error() string {
	return fmt.Sprintf("batch length mismatch: %d mins, %d maxs", e.Mins, e.Maxs)
}

func (e *ErrLengthMismatch) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var lm *slice.ErrLengthMismatch
	if errors.As(err, &lm) {
		return &ErrLengthMismatch{Mins: lm.Mins, Maxs: lm.Maxs, cause: err}
	}

	if errors.Is(err, stress.ErrInvalidIterations) {
		return fmt.Errorf("%w: %w", ErrInvalidIterations, err)
	}
	if errors.Is(err, stress.ErrInvalidWorkers) {
		return fmt.Errorf("%w: %w", ErrInvalidWorkers, err)
	}

	return err
}
