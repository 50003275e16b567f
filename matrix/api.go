// SPDX-License-Identifier: MIT

// Package matrix: convenience constructors and comparisons.
package matrix

import (
	"fmt"
	"math/cmplx"
)

// NewIdentity returns the n×n identity.
func NewIdentity(n int, opts ...Option) (*Dense, error) {
	m, err := NewDense(n, n, opts...)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}

	return m, nil
}

// NewEmbedding returns the rows×cols matrix with ones on the shifted
// diagonal (i, i-offset) and zeros elsewhere: it copies a cols-vector into
// rows [offset, offset+cols) of a rows-vector. With offset 0 and rows ==
// cols it is the identity.
//
// Errors:
//   - ErrInvalidDimensions for non-positive shape.
//   - ErrOutOfRange when offset < 0 or offset+cols > rows.
func NewEmbedding(rows, cols, offset int, opts ...Option) (*Dense, error) {
	m, err := NewDense(rows, cols, opts...)
	if err != nil {
		return nil, err
	}
	if offset < 0 || offset+cols > rows {
		return nil, fmt.Errorf("NewEmbedding: offset %d: %w", offset, ErrOutOfRange)
	}
	for j := 0; j < cols; j++ {
		m.data[(j+offset)*cols+j] = 1
	}

	return m, nil
}

// AllClose reports whether a and b have equal shape and every entry
// satisfies |a-b| ≤ atol + rtol·|b|. With no explicit atol, pass
// NewMatrixOptions().Epsilon().
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity: O(r*c).
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return false, err
	}
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			av, _ := a.At(i, j)
			bv, _ := b.At(i, j)
			if cmplx.Abs(av-bv) > atol+rtol*cmplx.Abs(bv) {
				return false, nil
			}
		}
	}

	return true, nil
}

// MaxAbs returns max |m[i,j]|.
func MaxAbs(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, err
	}
	var best float64
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			v, _ := m.At(i, j)
			if a := cmplx.Abs(v); a > best {
				best = a
			}
		}
	}

	return best, nil
}
