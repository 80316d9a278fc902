package simd

// Kernel function pointers - set once at init, zero runtime overhead.
// The lane-mask implementations are the default; init() below downgrades
// to the scalar kernels when SLICEKIT_SIMD=generic is set.
var (
	kernelCountInRange   = countInRangeLanes
	kernelCollectInRange = collectInRangeGeneric
)

// scalarForced reports that the override pinned the scalar kernel.
var scalarForced bool

// init runs after the capability_*.go init functions have detected CPU
// features and selected the active ISA.
func init() {
	if hasOverride && activeISA == Generic {
		kernelCountInRange = countInRangeScalar
		scalarForced = true
	}
}

// LaneWidth is the number of float32 elements processed per mask group
// by the lane kernel.
const LaneWidth = 8

// Width returns the element width of the active counting kernel:
// LaneWidth for the lane-mask kernel, 1 when the scalar kernel is forced.
func Width() int {
	if scalarForced {
		return 1
	}
	return LaneWidth
}

// CountInRange returns the number of indices i where
// mins[i] <= threshold && maxs[i] >= threshold, dispatched through the
// active kernel.
//
// SAFETY: Assumes len(mins) == len(maxs). Caller MUST ensure lengths match.
func CountInRange(mins, maxs []float32, threshold float32) uint64 {
	return kernelCountInRange(mins, maxs, threshold)
}

// CountInRangeScalar is the branchy per-index reference implementation.
// It bypasses kernel dispatch and is the correctness oracle for
// CountInRange on every platform.
//
// SAFETY: Assumes len(mins) == len(maxs). Caller MUST ensure lengths match.
func CountInRangeScalar(mins, maxs []float32, threshold float32) uint64 {
	return countInRangeScalar(mins, maxs, threshold)
}

// CollectInRange returns the indices i where
// mins[i] <= threshold && maxs[i] >= threshold.
// The dst slice is used to store results when it has sufficient capacity.
//
// SAFETY: Assumes len(mins) == len(maxs). Caller MUST ensure lengths match.
func CollectInRange(mins, maxs []float32, threshold float32, dst []uint32) []uint32 {
	n := len(mins)
	if n == 0 {
		return dst[:0]
	}
	if cap(dst) < n {
		dst = make([]uint32, n)
	} else {
		dst = dst[:n]
	}
	count := kernelCollectInRange(mins, maxs, threshold, dst)
	return dst[:count]
}
