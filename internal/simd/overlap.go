package simd

import "math/bits"

// Interval-overlap kernels. A closed interval [mins[i], maxs[i]] is a hit
// for a threshold t when mins[i] <= t && maxs[i] >= t. Comparisons are
// ordered: any comparison involving NaN is false, so an interval carrying
// NaN in either bound never hits.

// countInRangeLanes processes groups of LaneWidth elements. For each group
// it builds one 8-bit mask per comparison (bit k set when lane k passes),
// combines the two masks with a bitwise AND and accumulates the hit count
// with a population count. There is no per-element branch on the comparison
// result: boolToBit lowers to a conditional move and the mask math is pure
// bit manipulation. The 0..7 element remainder falls through to the scalar
// loop, so every index is counted exactly once.
func countInRangeLanes(mins, maxs []float32, t float32) uint64 {
	n := len(mins)
	var count uint64
	i := 0

	for ; i+LaneWidth <= n; i += LaneWidth {
		lo := boolToBit(mins[i] <= t) |
			boolToBit(mins[i+1] <= t)<<1 |
			boolToBit(mins[i+2] <= t)<<2 |
			boolToBit(mins[i+3] <= t)<<3 |
			boolToBit(mins[i+4] <= t)<<4 |
			boolToBit(mins[i+5] <= t)<<5 |
			boolToBit(mins[i+6] <= t)<<6 |
			boolToBit(mins[i+7] <= t)<<7

		hi := boolToBit(maxs[i] >= t) |
			boolToBit(maxs[i+1] >= t)<<1 |
			boolToBit(maxs[i+2] >= t)<<2 |
			boolToBit(maxs[i+3] >= t)<<3 |
			boolToBit(maxs[i+4] >= t)<<4 |
			boolToBit(maxs[i+5] >= t)<<5 |
			boolToBit(maxs[i+6] >= t)<<6 |
			boolToBit(maxs[i+7] >= t)<<7

		count += uint64(bits.OnesCount8(lo & hi))
	}

	// Remainder
	for ; i < n; i++ {
		if mins[i] <= t && maxs[i] >= t {
			count++
		}
	}

	return count
}

// countInRangeScalar is the simple per-index loop with a conditional
// increment. Two data-dependent branches per element; the baseline the
// lane kernel is measured against.
func countInRangeScalar(mins, maxs []float32, t float32) uint64 {
	var count uint64
	for i := range mins {
		if mins[i] <= t && maxs[i] >= t {
			count++
		}
	}
	return count
}

// boolToBit converts a bool to 0 or 1 without branching.
// The compiler typically optimizes this to a conditional move.
func boolToBit(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// collectInRangeGeneric writes the hit indices into dst and returns the
// number written. dst must have length >= len(mins).
func collectInRangeGeneric(mins, maxs []float32, t float32, dst []uint32) int {
	count := 0
	for i := range mins {
		if mins[i] <= t && maxs[i] >= t {
			dst[count] = uint32(i)
			count++
		}
	}
	return count
}
