// SPDX-License-Identifier: MIT

package spectral

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/katalvlaran/gramfe/matrix"
)

// NewPeriodicTables builds reference tables for an n-point periodic patch
// with m output points:
//
//	F[k][j]   = exp(−2πi·k·j/n)                      (n×n)
//	F⁻¹[i][k] = exp(+2πi·(i+o)·k/n) / n, o = (n−m)/2 (m×n)
//	E         = I                                    (n×n)
//
// so F⁻¹·F selects the centred m rows of an n-vector. Columns are produced
// by transforming unit vectors with gonum's unnormalised complex FFT.
//
// Errors:
//   - ErrBadShape unless 0 < m < n.
//
// Complexity:
//   - Time O(n² log n), Space O(n²).
func NewPeriodicTables(n, m int) (*Tables, error) {
	if !(0 < m && m < n) {
		return nil, fmt.Errorf("NewPeriodicTables: need 0 < m=%d < n=%d: %w", m, n, ErrBadShape)
	}
	offset := (n - m) / 2
	fft := fourier.NewCmplxFFT(n)

	forward, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	inverse, err := matrix.NewDense(m, n)
	if err != nil {
		return nil, err
	}

	unit := make([]complex128, n)
	col := make([]complex128, n)
	scale := complex(1/float64(n), 0)
	for j := 0; j < n; j++ {
		unit[j] = 1

		fft.Coefficients(col, unit)
		for k := 0; k < n; k++ {
			if err = forward.Set(k, j, col[k]); err != nil {
				return nil, err
			}
		}

		fft.Sequence(col, unit)
		for i := 0; i < m; i++ {
			if err = inverse.Set(i, j, col[i+offset]*scale); err != nil {
				return nil, err
			}
		}

		unit[j] = 0
	}

	extend, err := matrix.NewIdentity(n)
	if err != nil {
		return nil, err
	}

	return NewTables(forward, inverse, extend)
}
