// SPDX-License-Identifier: MIT
// Package matrix: matrix-chain kernels in working and extended precision.
//
// Purpose:
//   - MulX / ScaleRowsX: extended-precision kernels for the evolution-matrix chain.
//   - Mul / MatVec: working-precision kernels for diagnostics and reference checks.
//
// Notes:
//   - All kernels validate through validators.go and wrap with matrixErrorf.

package matrix

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/gramfe/xfloat"
)

// Operation name constants for unified error wrapping.
const (
	opMul       = "Mul"
	opMulX      = "MulX"
	opScaleRows = "ScaleRowsX"
	opMatVec    = "MatVec"
)

// matrixErrorf wraps err with an operation tag, preserving it for errors.Is.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// MulX returns the extended-precision product a×b.
//
// Implementation:
//   - Stage 1: ValidateMulXCompatible(a, b); allocate result at the configured precision.
//   - Stage 2: split result rows into contiguous chunks, one per worker (errgroup,
//     bounded by WithWorkers); each worker owns its xfloat.Scratch.
//   - Stage 3: for each (i, j) accumulate Σ_k a[i,k]·b[k,j] in ascending k.
//
// Behavior highlights:
//   - Zero entries of a are skipped; this never changes a sum.
//   - Each output entry is produced by one worker with a fixed k order, so the
//     result is bit-identical for every worker count.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (wrapped with opMulX).
//
// Complexity:
//   - Time O(r*n*c) extended multiplies, Space O(r*c).
func MulX(a, b *XDense, opts ...Option) (*XDense, error) {
	if err := ValidateMulXCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMulX, err)
	}
	o := gatherOptions(opts...)
	rows, inner, cols := a.r, a.c, b.c
	res := newXDense(rows, cols, o.prec)

	workers := o.workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = max(1, min(workers, rows))
	chunk := (rows + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < rows; start += chunk {
		lo, hi := start, min(start+chunk, rows)
		g.Go(func() error {
			s := xfloat.NewScratch(o.prec)
			for i := lo; i < hi; i++ {
				rowA := a.data[i*inner : (i+1)*inner]
				rowR := res.data[i*cols : (i+1)*cols]
				for k := range rowA {
					av := &rowA[k]
					if av.IsZero() {
						continue
					}
					rowB := b.data[k*cols : (k+1)*cols]
					for j := range rowR {
						rowR[j].MulAdd(av, &rowB[j], s)
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, matrixErrorf(opMulX, err)
	}

	return res, nil
}

// ScaleRowsX returns diag(d)·m: row i of m multiplied by d[i].
// m is not mutated.
//
// Errors:
//   - ErrNilMatrix (m nil), ErrDimensionMismatch (len(d) != m.Rows()).
//
// Complexity:
//   - Time O(r*c) extended multiplies, Space O(r*c).
func ScaleRowsX(m *XDense, d []xfloat.Complex, opts ...Option) (*XDense, error) {
	if m == nil {
		return nil, matrixErrorf(opScaleRows, ErrNilMatrix)
	}
	if len(d) != m.r {
		return nil, matrixErrorf(opScaleRows, fmt.Errorf("len(d)=%d rows=%d: %w", len(d), m.r, ErrDimensionMismatch))
	}
	o := gatherOptions(opts...)
	res := newXDense(m.r, m.c, o.prec)
	s := xfloat.NewScratch(o.prec)
	for i := 0; i < m.r; i++ {
		di := &d[i]
		for j := 0; j < m.c; j++ {
			k := i*m.c + j
			res.data[k].Mul(di, &m.data[k], s)
		}
	}

	return res, nil
}

// Mul returns the working-precision product a×b as a new Dense.
// Fast path on two *Dense operands (i→k→j); interface fallback (i→j→k).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (wrapped with opMul).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	aRows, aCols, bCols := a.Rows(), a.Cols(), b.Cols()
	res, err := NewDense(aRows, bCols, WithNoValidateNaNInf())
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for i := 0; i < aRows; i++ {
				rowR := res.data[i*bCols : (i+1)*bCols]
				for k := 0; k < aCols; k++ {
					av := da.data[i*aCols+k]
					if av == 0 {
						continue
					}
					rowB := db.data[k*bCols : (k+1)*bCols]
					for j := range rowR {
						rowR[j] += av * rowB[j]
					}
				}
			}
			return res, nil
		}
	}

	var av, bv, sum complex128
	for i := 0; i < aRows; i++ {
		for j := 0; j < bCols; j++ {
			sum = 0
			for k := 0; k < aCols; k++ {
				if av, err = a.At(i, k); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				if av == 0 {
					continue
				}
				if bv, err = b.At(k, j); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				sum += av * bv
			}
			res.data[i*bCols+j] = sum
		}
	}

	return res, nil
}

// MatVec returns y = m·x in working precision.
//
// Errors:
//   - ErrNilMatrix (m or x nil), ErrDimensionMismatch (len(x) != m.Cols()).
//
// Complexity:
//   - Time O(r*c), Space O(r).
func MatVec(m Matrix, x []complex128) ([]complex128, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	rows, cols := m.Rows(), m.Cols()
	if err := ValidateVecLen(x, cols); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	y := make([]complex128, rows)

	if d, ok := m.(*Dense); ok {
		for i := 0; i < rows; i++ {
			var sum complex128
			row := d.data[i*cols : (i+1)*cols]
			for j, v := range row {
				sum += v * x[j]
			}
			y[i] = sum
		}
		return y, nil
	}

	for i := 0; i < rows; i++ {
		var sum complex128
		for j := 0; j < cols; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opMatVec, err)
			}
			sum += v * x[j]
		}
		y[i] = sum
	}

	return y, nil
}
