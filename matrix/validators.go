// SPDX-License-Identifier: MIT
// Package matrix: canonical validators shared by all kernels.
// Validators return sentinels wrapped with their own tag so messages show
// which check fired; errors.Is still matches the sentinel.

package matrix

import "fmt"

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil, including a typed
// nil *Dense hidden in the interface.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape ensures matrices a and b are non-nil with equal dimensions.
// Complexity: O(1).
func ValidateSameShape(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateMulCompatible ensures a.Cols() == b.Rows() for a×b.
// Complexity: O(1).
func ValidateMulCompatible(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}
	if a.Cols() != b.Rows() {
		return validatorErrorf("ValidateMulCompatible", ErrDimensionMismatch)
	}

	return nil
}

// ValidateMulXCompatible is ValidateMulCompatible for extended matrices.
// Complexity: O(1).
func ValidateMulXCompatible(a, b *XDense) error {
	if a == nil || b == nil {
		return validatorErrorf("ValidateMulXCompatible", ErrNilMatrix)
	}
	if a.c != b.r {
		return validatorErrorf("ValidateMulXCompatible", ErrDimensionMismatch)
	}

	return nil
}

// ValidateVecLen ensures the vector is non-nil with length n.
// Complexity: O(1).
func ValidateVecLen(x []complex128, n int) error {
	if x == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}
