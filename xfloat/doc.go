// SPDX-License-Identifier: MIT

// Package xfloat provides the extended-precision scalar layer used by the
// Gram/Fourier evolution pipeline.
//
// What & Why:
//
//	Summing W complex products in float64 loses digits to cancellation, and
//	the error compounds over millions of time steps. Every intermediate of
//	the pipeline is therefore carried in math/big.Float with at least
//	MinPrec mantissa bits (≥30 decimal digits), and results are rounded to
//	working precision exactly once, at the very end.
//
// Contents:
//   - Complex: an extended-precision complex value with in-place arithmetic.
//   - Factorial, CosTaylor, SinTaylor: truncated Taylor series of cos/sin.
//   - Exp, PowInt, Ln10, Pi: the transcendental helpers needed by the k-space filter.
//
// Precision:
//
//	DefaultPrec (128 bits, ≈38 digits) mirrors a binary128 mantissa with a
//	few guard bits. Functions return results at the precision of their
//	inputs unless stated otherwise.
package xfloat
