// SPDX-License-Identifier: MIT

// Package gramfe builds the Gram/Fourier time-evolution matrix for wave
// dark matter on a one-dimensional patch.
//
// The matrix advances a padded slice ψ (N points, ghost halo included) of
// the free-particle Schrödinger equation
//
//	i ∂ψ/∂t = -(1/2η) ∂²ψ/∂x²
//
// by one step dt, producing M interior values:
//
//	Evolution = F⁻¹ · diag(D) · F · E     (M×N)
//
// where E extends the patch to a periodic signal of width W, F is the
// forward transform, F⁻¹ the truncated inverse, and D holds one
// coefficient per wavenumber K:
//
//	D(K) = (CosTaylor(C, c) + i·SinTaylor(C, s)) · Filter(K),  C = -K²·dt/(2η)
//
// The truncation orders (c, s) follow from the ghost-zone width G (see
// TruncationOrders), and Filter is the exponential filter
// exp(-α·(|K|/Kmax)^(2p)) with α = 32·ln 10 and p = 100 by default.
//
// Everything between the working-precision tables and the output buffer
// is carried in extended precision (math/big, 128 bits by default) and
// rounded to complex128 exactly once.
//
// Layout:
//
//	gramfe           Evolver, coefficients, filter, cache (this package)
//	spectral/        immutable F, F⁻¹, E tables, periodic reference tables, YAML codec
//	matrix/          complex Dense and extended XDense storage and kernels
//	xfloat/          extended-precision scalars, Taylor series, exp
//	cmd/gramfe-evo/  command-line driver
//
// An Evolver is immutable after New; it is safe for concurrent use as long
// as every call writes into its own output buffer.
//
//	go get github.com/katalvlaran/gramfe
package gramfe
