// Package slice provides the public API for layer-overlap scanning.
//
// A batch is a pair of equal-length float32 slices holding per-triangle
// z-extents in SoA layout: mins[i] and maxs[i] bound the closed interval
// covered by triangle i. Scanning counts (or collects) the triangles whose
// interval contains a layer height.
//
// CountOverlaps uses the branchless lane-mask kernel from internal/simd;
// CountOverlapsScalar is the per-index reference loop. Both always return
// identical counts for the same batch. All functions are pure and safe to
// call concurrently on independent batches.
package slice
