// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major, complex128) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Enforce a numeric policy (optional rejection of NaN/Inf) from a single source of truth.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c).

package matrix

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt   = "At"   // method tag used in error wrappers
	ctxSet  = "Set"  // method tag used in error wrappers
	ctxRow  = "Row"  // method tag used in error wrappers
	ctxFrom = "From" // ctor tag for NewDenseFrom
)

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// The result formats as "Dense.<method>(row,col): <sentinel>" and still
// matches the sentinel via errors.Is.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major complex matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//   - validateNaNInf enables NaN/Inf rejection in Set.
type Dense struct {
	r, c           int          // row and column counts (> 0)
	data           []complex128 // contiguous row-major storage (len == r*c)
	validateNaNInf bool         // numeric guard: reject NaN/Inf in Set when true
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer and resolve numeric policy from opts.
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int, opts ...Option) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	o := gatherOptions(opts...)

	return &Dense{
		r:              rows,
		c:              cols,
		data:           make([]complex128, rows*cols),
		validateNaNInf: o.validateNaNInf,
	}, nil
}

// NewDenseFrom creates an r×c matrix initialized from a row-major buffer.
// The buffer is copied; the caller keeps ownership of data.
//
// Errors:
//   - ErrInvalidDimensions for non-positive shape.
//   - ErrDimensionMismatch when len(data) != rows*cols.
//   - ErrNaNInf for non-finite entries under the numeric policy.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDenseFrom(rows, cols int, data []complex128, opts ...Option) (*Dense, error) {
	m, err := NewDense(rows, cols, opts...)
	if err != nil {
		return nil, err
	}
	if len(data) != rows*cols {
		return nil, denseErrorf(ctxFrom, rows, cols, ErrDimensionMismatch)
	}
	if m.validateNaNInf {
		for k, v := range data {
			if isNonFinite(v) {
				return nil, denseErrorf(ctxFrom, k/cols, k%cols, ErrNaNInf)
			}
		}
	}
	copy(m.data, data)

	return m, nil
}

// Rows returns the number of rows in the matrix.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns in the matrix.
func (m *Dense) Cols() int { return m.c }

// indexOf computes the flat index for (row, col) or returns ErrOutOfRange.
func (m *Dense) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrOutOfRange)
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// Complexity: O(1).
func (m *Dense) At(row, col int) (complex128, error) {
	idx, err := m.indexOf(ctxAt, row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns value v at (row, col), enforcing the numeric policy.
// Complexity: O(1).
func (m *Dense) Set(row, col int, v complex128) error {
	idx, err := m.indexOf(ctxSet, row, col)
	if err != nil {
		return err
	}
	if m.validateNaNInf && isNonFinite(v) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[idx] = v

	return nil
}

// Row returns a copy of row i.
// Complexity: O(c).
func (m *Dense) Row(i int) ([]complex128, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxRow, i, 0, ErrOutOfRange)
	}
	out := make([]complex128, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])

	return out, nil
}

// Data returns a copy of the row-major backing buffer.
// Complexity: O(r*c).
func (m *Dense) Data() []complex128 {
	out := make([]complex128, len(m.data))
	copy(out, m.data)

	return out
}

// Clone returns a deep copy of the Dense matrix, preserving its numeric policy.
// Complexity: O(r*c).
func (m *Dense) Clone() Matrix {
	buf := make([]complex128, len(m.data))
	copy(buf, m.data)

	return &Dense{r: m.r, c: m.c, data: buf, validateNaNInf: m.validateNaNInf}
}

// String implements fmt.Stringer for easy debugging.
// Complexity: O(r*c).
func (m *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteString(_fmtRowOpen)
		for j := 0; j < m.c; j++ {
			sb.WriteString(fmt.Sprintf("%g", m.data[i*m.c+j]))
			if j < m.c-1 {
				sb.WriteString(_fmtSep)
			}
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}

// isNonFinite reports whether either part of v is NaN or ±Inf.
func isNonFinite(v complex128) bool {
	if cmplx.IsNaN(v) {
		return true
	}

	return math.IsInf(real(v), 0) || math.IsInf(imag(v), 0)
}
