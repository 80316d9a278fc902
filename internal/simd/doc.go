// Package simd provides data-parallel interval-overlap kernels.
//
// # Supported Platforms
//
//   - x86-64: AVX-512, AVX2
//   - ARM64: NEON
//
// Runtime CPU feature detection selects the active ISA. The lane kernel
// itself is portable Go written so the compiler can auto-vectorize it:
// per-lane comparisons lower to flag-setting instructions and conditional
// moves, lane results are packed into an 8-bit mask, and hits are
// accumulated with a population count instead of a per-element branch.
//
// Set SLICEKIT_SIMD=generic to force the scalar kernel on any platform.
package simd
