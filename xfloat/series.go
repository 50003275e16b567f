// SPDX-License-Identifier: MIT

package xfloat

import "math/big"

// smallFactorials caches n! for n ≤ 20, the largest factorial that fits in uint64.
var smallFactorials = func() [21]uint64 {
	var t [21]uint64
	t[0] = 1
	for n := 1; n < len(t); n++ {
		t[n] = t[n-1] * uint64(n)
	}

	return t
}()

// Factorial returns n! at precision prec. Values up to 20! come from a
// lookup table and are exact; larger ones accumulate iteratively in
// big.Int and are rounded once. Negative n yields 1 (empty product).
// Complexity: O(1) for n ≤ 20, O(n) big-integer multiplies otherwise.
func Factorial(n int, prec uint) *big.Float {
	if n < 0 {
		n = 0
	}
	if n < len(smallFactorials) {
		return new(big.Float).SetPrec(prec).SetUint64(smallFactorials[n])
	}
	acc := new(big.Int).SetUint64(smallFactorials[len(smallFactorials)-1])
	for i := len(smallFactorials); i <= n; i++ {
		acc.Mul(acc, big.NewInt(int64(i)))
	}

	return new(big.Float).SetPrec(prec).SetInt(acc)
}

// CosTaylor returns Σ_{i=0}^{terms-1} (−1)^i x^{2i}/(2i)!, the cosine
// series truncated after terms terms, at the precision of x.
// terms ≤ 0 yields 0.
func CosTaylor(x *big.Float, terms int) *big.Float {
	return taylor(x, terms, 0)
}

// SinTaylor returns Σ_{i=0}^{terms-1} (−1)^i x^{2i+1}/(2i+1)!, the sine
// series truncated after terms terms, at the precision of x.
// terms ≤ 0 yields 0.
func SinTaylor(x *big.Float, terms int) *big.Float {
	return taylor(x, terms, 1)
}

// taylor sums the alternating series Σ (−1)^i x^{2i+offset}/(2i+offset)!.
// Powers are built incrementally (pow ← pow·x²), each term divided by the
// exact factorial from Factorial.
func taylor(x *big.Float, terms, offset int) *big.Float {
	prec := x.Prec()
	sum := NewFloat(prec)
	if terms <= 0 {
		return sum
	}

	x2 := NewFloat(prec).Mul(x, x)
	pow := NewFloat(prec).SetInt64(1)
	if offset == 1 {
		pow.Set(x)
	}
	term := NewFloat(prec)
	for i := 0; i < terms; i++ {
		term.Quo(pow, Factorial(2*i+offset, prec))
		if i%2 == 1 {
			sum.Sub(sum, term)
		} else {
			sum.Add(sum, term)
		}
		pow.Mul(pow, x2)
	}

	return sum
}
