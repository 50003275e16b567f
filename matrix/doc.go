// SPDX-License-Identifier: MIT

// Package matrix offers dense complex matrices in two precisions and the
// kernels the Gram/Fourier pipeline needs to chain them.
//
// The matrix package provides:
//
//   - Dense: row-major complex128 storage (working precision) behind the
//     Matrix interface, with bounds-checked At/Set and an optional NaN/Inf
//     numeric policy.
//   - XDense: row-major extended-precision storage (xfloat.Complex) used
//     for every intermediate of a matrix chain. Lift converts working into
//     extended precision exactly; Downcast rounds back exactly once.
//   - Kernels: MulX and ScaleRowsX on XDense, Mul and MatVec on Matrix.
//
// Determinism:
//
//	All kernels use fixed loop orders. MulX may split rows across workers,
//	but every output entry is summed by one worker in ascending k order, so
//	results are bit-identical for any worker count.
//
// See example_test.go for usage patterns.
package matrix
