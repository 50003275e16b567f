// SPDX-License-Identifier: MIT

package gramfe

import (
	"fmt"
	"math"
	"math/big"

	"github.com/katalvlaran/gramfe/xfloat"
)

// negligibleFilter is the weight below which a mode cannot influence a
// float64 result; the phase guard ignores such modes.
var negligibleFilter = new(big.Float).SetMantExp(big.NewFloat(1), -53)

// Coefficients returns the W evolution coefficients D(K_i) in extended precision.
//
// Wavenumbers follow FFT ordering: K_i = i·Δk for i ≤ W/2 and (i−W)·Δk
// otherwise, with Δk = 2·Kmax/W and Kmax = π/dh. Each coefficient is
// (CosTaylor(C) + i·SinTaylor(C))·Filter(K) with C = K²·(−0.5·dt/eta).
//
// Any finite dt is accepted; a negative dt evolves backwards and yields the
// exact complex conjugates of the coefficients for |dt|.
//
// Errors:
//   - ErrInvalidParameter: non-finite dt, dh ≤ 0, eta zero or non-finite.
//   - ErrPhaseTooLarge: the phase guard is enabled and tripped.
//
// Complexity:
//   - Time O(W·(G + p)) extended operations, Space O(W).
func (e *Evolver) Coefficients(dt, dh, eta float64) ([]xfloat.Complex, error) {
	const op = "Coefficients"
	switch {
	case !isFinite(dt):
		return nil, fmt.Errorf("%s: dt=%g: %w", op, dt, ErrInvalidParameter)
	case !isFinite(dh) || dh <= 0:
		return nil, fmt.Errorf("%s: dh=%g: %w", op, dh, ErrInvalidParameter)
	case !isFinite(eta) || eta == 0:
		return nil, fmt.Errorf("%s: eta=%g: %w", op, eta, ErrInvalidParameter)
	}

	prec := e.opts.prec
	w := e.w

	kmax := xfloat.Pi(prec)
	kmax.Quo(kmax, xfloat.FromFloat64(dh, prec))
	dk := xfloat.NewFloat(prec).Mul(kmax, xfloat.NewFloat(prec).SetInt64(2))
	dk.Quo(dk, xfloat.NewFloat(prec).SetInt64(int64(w)))

	factor := xfloat.FromFloat64(dt, prec)
	factor.Mul(factor, xfloat.FromFloat64(-0.5, prec))
	factor.Quo(factor, xfloat.FromFloat64(eta, prec))

	var limit *big.Float
	if e.opts.phaseLimit > 0 {
		limit = xfloat.FromFloat64(e.opts.phaseLimit, prec)
	}

	coeffs := make([]xfloat.Complex, w)
	k := xfloat.NewFloat(prec)
	c := xfloat.NewFloat(prec)
	absC := xfloat.NewFloat(prec)
	for i := 0; i < w; i++ {
		idx := int64(i)
		if i > w/2 {
			idx -= int64(w)
		}
		k.SetInt64(idx)
		k.Mul(k, dk)

		c.Mul(k, k)
		c.Mul(c, factor)

		f := filterWith(k, kmax, e.decay, e.opts.degree)
		if limit != nil && f.Cmp(negligibleFilter) >= 0 && absC.Abs(c).Cmp(limit) > 0 {
			phase, _ := c.Float64()
			return nil, fmt.Errorf("%s: mode %d phase %.6g > %g: %w", op, i, math.Abs(phase), e.opts.phaseLimit, ErrPhaseTooLarge)
		}

		re := xfloat.CosTaylor(c, e.cosTerms)
		im := xfloat.SinTaylor(c, e.sinTerms)
		coeffs[i].SetPrec(prec).SetParts(re.Mul(re, f), im.Mul(im, f))
	}

	return coeffs, nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
