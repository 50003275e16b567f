// SPDX-License-Identifier: MIT

// Package matrix - XDense: extended-precision row-major storage.
//
// Purpose:
//   - Hold every intermediate of a matrix chain in xfloat.Complex so long
//     sums do not lose digits to cancellation.
//   - Lift working-precision matrices exactly; round back exactly once via Downcast.
//
// Complexity quicksheet:
//   - NewXDense/Lift: O(r*c); At/Set: O(1); Downcast: O(r*c).

package matrix

import (
	"fmt"

	"github.com/katalvlaran/gramfe/xfloat"
)

const (
	ctxXAt       = "At"
	ctxXSet      = "Set"
	ctxLift      = "Lift"
	ctxDowncast  = "Downcast"
	ctxNewXDense = "NewXDense"
)

// xdenseErrorf mirrors denseErrorf for XDense methods.
func xdenseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("XDense.%s(%d,%d): %w", method, row, col, err)
}

// XDense is a row-major matrix of extended-precision complex values.
// data[i*c+j] is entry (i, j); every entry carries prec mantissa bits.
// Entries are stored by value and must only be addressed in place.
type XDense struct {
	r, c int
	prec uint
	data []xfloat.Complex
}

// NewXDense creates an r×c zero matrix at the configured precision
// (WithPrecision, default DefaultPrec).
//
// Errors:
//   - ErrInvalidDimensions for non-positive shape.
//
// Complexity:
//   - Time O(r*c), Space O(r*c·prec).
func NewXDense(rows, cols int, opts ...Option) (*XDense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%s: %w", ctxNewXDense, ErrInvalidDimensions)
	}
	o := gatherOptions(opts...)

	return newXDense(rows, cols, o.prec), nil
}

// newXDense allocates without validation; shape must already be positive.
func newXDense(rows, cols int, prec uint) *XDense {
	data := make([]xfloat.Complex, rows*cols)
	for k := range data {
		data[k].SetPrec(prec)
	}

	return &XDense{r: rows, c: cols, prec: prec, data: data}
}

// Lift converts a working-precision Matrix into extended precision.
// Every float64 is representable exactly, so the lift itself adds no error.
//
// Implementation:
//   - Stage 1: validate non-nil and resolve precision.
//   - Stage 2: fast-path copy for *Dense; At-based fallback otherwise.
//
// Errors:
//   - ErrNilMatrix, ErrNaNInf (big.Float cannot hold NaN, Inf is refused too).
//
// Complexity:
//   - Time O(r*c).
func Lift(m Matrix, opts ...Option) (*XDense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, fmt.Errorf("%s: %w", ctxLift, err)
	}
	o := gatherOptions(opts...)
	rows, cols := m.Rows(), m.Cols()
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%s: %w", ctxLift, ErrInvalidDimensions)
	}
	x := newXDense(rows, cols, o.prec)

	if d, ok := m.(*Dense); ok {
		for k, v := range d.data {
			if isNonFinite(v) {
				return nil, xdenseErrorf(ctxLift, k/cols, k%cols, ErrNaNInf)
			}
			x.data[k].SetComplex128(v)
		}
		return x, nil
	}

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", ctxLift, err)
			}
			if isNonFinite(v) {
				return nil, xdenseErrorf(ctxLift, i, j, ErrNaNInf)
			}
			x.data[i*cols+j].SetComplex128(v)
		}
	}

	return x, nil
}

// Rows returns the number of rows.
func (x *XDense) Rows() int { return x.r }

// Cols returns the number of columns.
func (x *XDense) Cols() int { return x.c }

// Prec returns the mantissa precision in bits.
func (x *XDense) Prec() uint { return x.prec }

// At returns a copy of entry (row, col).
func (x *XDense) At(row, col int) (*xfloat.Complex, error) {
	if row < 0 || row >= x.r || col < 0 || col >= x.c {
		return nil, xdenseErrorf(ctxXAt, row, col, ErrOutOfRange)
	}

	return xfloat.NewComplex(x.prec).Set(&x.data[row*x.c+col]), nil
}

// Set stores v at (row, col), rounding to the matrix precision.
func (x *XDense) Set(row, col int, v *xfloat.Complex) error {
	if row < 0 || row >= x.r || col < 0 || col >= x.c {
		return xdenseErrorf(ctxXSet, row, col, ErrOutOfRange)
	}
	if v == nil {
		return xdenseErrorf(ctxXSet, row, col, ErrNilMatrix)
	}
	x.data[row*x.c+col].Set(v)

	return nil
}

// Downcast rounds every entry to complex128 (ties to even) and writes it
// row-major into dst, which must hold exactly Rows()*Cols() values. dst is
// fully overwritten.
//
// Errors:
//   - ErrNilMatrix for a nil dst, ErrDimensionMismatch for a wrong length.
//
// Complexity:
//   - Time O(r*c), no allocation.
func (x *XDense) Downcast(dst []complex128) error {
	if dst == nil {
		return fmt.Errorf("XDense.%s: %w", ctxDowncast, ErrNilMatrix)
	}
	if len(dst) != len(x.data) {
		return fmt.Errorf("XDense.%s: len %d want %d: %w", ctxDowncast, len(dst), len(x.data), ErrDimensionMismatch)
	}
	for k := range x.data {
		dst[k] = x.data[k].Complex128()
	}

	return nil
}

// ToDense rounds x into a freshly allocated working-precision Dense.
// Entries that overflow float64 become ±Inf; pass WithNoValidateNaNInf to
// keep them, otherwise ErrNaNInf is returned.
func (x *XDense) ToDense(opts ...Option) (*Dense, error) {
	buf := make([]complex128, len(x.data))
	if err := x.Downcast(buf); err != nil {
		return nil, err
	}

	return NewDenseFrom(x.r, x.c, buf, opts...)
}
