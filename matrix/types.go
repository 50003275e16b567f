// SPDX-License-Identifier: MIT

// Package matrix: the public Matrix interface over complex128 values.
package matrix

// Matrix represents a two-dimensional mutable array of complex128 values.
// Each method enforces bounds checking and returns clear errors on misuse.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (complex128, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid, ErrNaNInf under the numeric policy.
	Set(i, j int, v complex128) error

	// Clone returns a deep copy of the matrix.
	Clone() Matrix
}
