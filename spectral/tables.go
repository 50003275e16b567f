// SPDX-License-Identifier: MIT

package spectral

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/katalvlaran/gramfe/matrix"
)

// Tables is an immutable, validated set of spectral tables.
type Tables struct {
	w, n, m int           // transform width, patch width with halo, output width
	forward *matrix.Dense // W×W
	inverse *matrix.Dense // M×W
	extend  *matrix.Dense // W×N
}

// NewTables validates and copies forward (W×W), inverse (M×W) and extend
// (W×N) into an immutable handle. The caller keeps ownership of the inputs.
//
// Implementation:
//   - Stage 1: reject nil tables (ErrNilTable).
//   - Stage 2: derive W, M, N and check 0 < M < N ≤ W and operand agreement (ErrBadShape).
//   - Stage 3: deep-copy every entry, rejecting NaN/Inf (ErrNonFinite).
//
// Complexity:
//   - Time O(W² + M·W + W·N), Space the same.
func NewTables(forward, inverse, extend matrix.Matrix) (*Tables, error) {
	for _, tb := range []struct {
		name string
		m    matrix.Matrix
	}{{"forward", forward}, {"inverse", inverse}, {"extend", extend}} {
		if matrix.ValidateNotNil(tb.m) != nil {
			return nil, fmt.Errorf("NewTables: %s: %w", tb.name, ErrNilTable)
		}
	}

	w := forward.Rows()
	m := inverse.Rows()
	n := extend.Cols()
	switch {
	case forward.Cols() != w:
		return nil, fmt.Errorf("NewTables: forward %dx%d not square: %w", w, forward.Cols(), ErrBadShape)
	case inverse.Cols() != w:
		return nil, fmt.Errorf("NewTables: inverse has %d cols, want W=%d: %w", inverse.Cols(), w, ErrBadShape)
	case extend.Rows() != w:
		return nil, fmt.Errorf("NewTables: extend has %d rows, want W=%d: %w", extend.Rows(), w, ErrBadShape)
	case !(0 < m && m < n && n <= w):
		return nil, fmt.Errorf("NewTables: need 0 < M=%d < N=%d <= W=%d: %w", m, n, w, ErrBadShape)
	}

	t := &Tables{w: w, n: n, m: m}
	var err error
	if t.forward, err = copyFinite("forward", forward); err != nil {
		return nil, err
	}
	if t.inverse, err = copyFinite("inverse", inverse); err != nil {
		return nil, err
	}
	if t.extend, err = copyFinite("extend", extend); err != nil {
		return nil, err
	}

	return t, nil
}

// copyFinite deep-copies src into a strict Dense, mapping NaN/Inf to ErrNonFinite.
func copyFinite(name string, src matrix.Matrix) (*matrix.Dense, error) {
	r, c := src.Rows(), src.Cols()
	buf := make([]complex128, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := src.At(i, j)
			if err != nil {
				return nil, fmt.Errorf("NewTables: %s: %w", name, err)
			}
			if cmplx.IsNaN(v) || math.IsInf(real(v), 0) || math.IsInf(imag(v), 0) {
				return nil, fmt.Errorf("NewTables: %s(%d,%d): %w", name, i, j, ErrNonFinite)
			}
			buf[i*c+j] = v
		}
	}

	return matrix.NewDenseFrom(r, c, buf)
}

// Width returns W, the extended transform width.
func (t *Tables) Width() int { return t.w }

// PatchWidth returns N, the padded patch width including the ghost halo.
func (t *Tables) PatchWidth() int { return t.n }

// OutputWidth returns M, the number of output rows.
func (t *Tables) OutputWidth() int { return t.m }

// Forward returns a copy of F (W×W).
func (t *Tables) Forward() *matrix.Dense { return t.forward.Clone().(*matrix.Dense) }

// Inverse returns a copy of F⁻¹ (M×W).
func (t *Tables) Inverse() *matrix.Dense { return t.inverse.Clone().(*matrix.Dense) }

// Extend returns a copy of E (W×N).
func (t *Tables) Extend() *matrix.Dense { return t.extend.Clone().(*matrix.Dense) }

// Lift returns extended-precision copies of F, F⁻¹ and E, in that order.
// Opts are matrix options (WithPrecision).
func (t *Tables) Lift(opts ...matrix.Option) (forward, inverse, extend *matrix.XDense, err error) {
	if forward, err = matrix.Lift(t.forward, opts...); err != nil {
		return nil, nil, nil, err
	}
	if inverse, err = matrix.Lift(t.inverse, opts...); err != nil {
		return nil, nil, nil, err
	}
	if extend, err = matrix.Lift(t.extend, opts...); err != nil {
		return nil, nil, nil, err
	}

	return forward, inverse, extend, nil
}
