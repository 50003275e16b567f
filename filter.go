// SPDX-License-Identifier: MIT

package gramfe

import (
	"math/big"

	"github.com/katalvlaran/gramfe/xfloat"
)

// Filter returns the default spectral filter exp(-α·(|k|/kmax)^(2p)) with
// α = 32·ln 10 and p = 100, at the precision of k.
// Filter(0, kmax) is exactly 1 and Filter(kmax, kmax) is 1e-32.
// A non-positive kmax yields 0.
func Filter(k, kmax *big.Float) *big.Float {
	return filterWith(k, kmax, defaultOptions().FilterDecay(k.Prec()), DefaultFilterDegree)
}

// filterWith evaluates exp(-decay·(|k|/kmax)^(2·degree)) at the precision of k.
func filterWith(k, kmax, decay *big.Float, degree int) *big.Float {
	prec := k.Prec()
	if kmax.Sign() <= 0 {
		return xfloat.NewFloat(prec)
	}
	ratio := xfloat.NewFloat(prec).Abs(k)
	ratio.Quo(ratio, kmax)
	arg := xfloat.PowInt(ratio, 2*degree)
	arg.Mul(arg, decay)
	arg.Neg(arg)

	return xfloat.Exp(arg)
}
