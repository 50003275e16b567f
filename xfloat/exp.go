// SPDX-License-Identifier: MIT

package xfloat

import "math/big"

// Constants to 40 significant digits.
const (
	ln10Digits = "2.302585092994045684017991454684364207601"
	piDigits   = "3.141592653589793238462643383279502884197"
)

// expGuardBits is the extra precision carried through argument reduction
// and repeated squaring; each squaring can double the relative error.
const expGuardBits = 64

// expMaxExponent bounds the binary exponent of Exp arguments. Beyond
// |x| ≥ 2^62 the result is 0 or +Inf at any supported precision.
const expMaxExponent = 62

// Ln10 returns ln(10) at precision prec.
func Ln10(prec uint) *big.Float { return mustParse(ln10Digits, prec) }

// Pi returns π at precision prec.
func Pi(prec uint) *big.Float { return mustParse(piDigits, prec) }

// mustParse parses one of the package's decimal constants.
func mustParse(digits string, prec uint) *big.Float {
	v, _, err := big.ParseFloat(digits, 10, prec, big.ToNearestEven)
	if err != nil {
		panic("xfloat: malformed constant " + digits)
	}

	return v
}

// PowInt returns x^n for n ≥ 0 by binary exponentiation, at the precision of x.
// x^0 = 1 for every x, including 0.
// Complexity: O(log n) multiplies.
func PowInt(x *big.Float, n int) *big.Float {
	prec := x.Prec()
	result := NewFloat(prec).SetInt64(1)
	if n <= 0 {
		return result
	}
	base := NewFloat(prec).Set(x)
	for n > 0 {
		if n&1 == 1 {
			result.Mul(result, base)
		}
		n >>= 1
		if n > 0 {
			base.Mul(base, base)
		}
	}

	return result
}

// Exp returns e^x at the precision of x.
//
// Implementation:
//   - Stage 1: reduce r = x/2^k so that |r| < 2^-8.
//   - Stage 2: sum the Taylor series of e^r until terms fall below the working ulp.
//   - Stage 3: square k times to undo the reduction; round to x's precision.
//
// Complexity: O(p/8 + k) multiplies for p-bit precision.
func Exp(x *big.Float) *big.Float {
	prec := x.Prec()
	if x.Sign() == 0 {
		return NewFloat(prec).SetInt64(1)
	}
	if x.IsInf() {
		if x.Sign() < 0 {
			return NewFloat(prec)
		}
		return NewFloat(prec).SetInf(false)
	}

	exp := x.MantExp(nil) // |x| = mant·2^exp, 0.5 ≤ mant < 1
	if exp > expMaxExponent {
		if x.Sign() < 0 {
			return NewFloat(prec)
		}
		return NewFloat(prec).SetInf(false)
	}
	k := exp + 8
	if k < 0 {
		k = 0
	}

	work := prec + expGuardBits + uint(k)
	r := new(big.Float).SetPrec(work).SetMantExp(x, -k)

	sum := new(big.Float).SetPrec(work).SetInt64(1)
	term := new(big.Float).SetPrec(work).SetInt64(1)
	for i := int64(1); ; i++ {
		term.Mul(term, r)
		term.Quo(term, new(big.Float).SetPrec(work).SetInt64(i))
		if term.Sign() == 0 {
			break
		}
		sum.Add(sum, term)
		if term.MantExp(nil)-sum.MantExp(nil) < -int(work) {
			break
		}
	}
	for ; k > 0; k-- {
		sum.Mul(sum, sum)
	}

	return NewFloat(prec).Set(sum)
}
