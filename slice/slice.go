package slice

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/slicekit/internal/simd"
)

// ErrLengthMismatch indicates a batch whose min and max slices differ
// in length. The scanner fails fast instead of truncating or reading
// out of bounds.
type ErrLengthMismatch struct {
	Mins int
	Maxs int
}

func (e *ErrLengthMismatch) Error() string {
	return fmt.Sprintf("batch length mismatch: %d mins, %d maxs", e.Mins, e.Maxs)
}

// CountOverlaps counts the intervals [mins[i], maxs[i]] that contain
// threshold, bounds inclusive. It uses the lane-mask kernel: per group of
// simd.LaneWidth elements, one comparison mask per bound, a bitwise AND and
// a population count, with the remainder handled by the scalar loop.
//
// Comparisons are ordered, so an interval with NaN in either bound never
// counts. A zero-length batch returns 0.
func CountOverlaps(mins, maxs []float32, threshold float32) (uint64, error) {
	if len(mins) != len(maxs) {
		return 0, &ErrLengthMismatch{Mins: len(mins), Maxs: len(maxs)}
	}
	return simd.CountInRange(mins, maxs, threshold), nil
}

// CountOverlapsScalar counts with the per-index reference loop. It exists
// as the correctness oracle and performance baseline for CountOverlaps and
// always produces the identical count.
func CountOverlapsScalar(mins, maxs []float32, threshold float32) (uint64, error) {
	if len(mins) != len(maxs) {
		return 0, &ErrLengthMismatch{Mins: len(mins), Maxs: len(maxs)}
	}
	return simd.CountInRangeScalar(mins, maxs, threshold), nil
}

// OverlapSet returns the set of hit indices as a roaring bitmap, for
// callers that need which triangles intersect the layer rather than just
// how many.
func OverlapSet(mins, maxs []float32, threshold float32) (*roaring.Bitmap, error) {
	if len(mins) != len(maxs) {
		return nil, &ErrLengthMismatch{Mins: len(mins), Maxs: len(maxs)}
	}
	rb := roaring.New()
	indices := simd.CollectInRange(mins, maxs, threshold, nil)
	rb.AddMany(indices)
	return rb, nil
}

// KernelWidth returns the element width of the active counting kernel.
func KernelWidth() int {
	return simd.Width()
}

// KernelISA returns the name of the instruction set selected at startup
// (or forced via SLICEKIT_SIMD).
func KernelISA() string {
	return simd.ActiveISA().String()
}
