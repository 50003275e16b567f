// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All kernels return these sentinels (possibly wrapped with an operation tag)
// and tests check them via errors.Is. No kernel panics on user input.

package matrix

import "errors"

// Every message is prefixed with "matrix: ..." for consistency. Context is
// added at the outer boundary as fmt.Errorf("Op: %w", ErrX).

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. Mul where a.Cols != b.Rows, or a buffer of the wrong length.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNilMatrix indicates that a nil matrix or vector argument was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	// Extended-precision storage cannot hold NaN, so Lift always enforces this.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")
)
