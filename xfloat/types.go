// SPDX-License-Identifier: MIT

package xfloat

import (
	"errors"
	"math/big"
)

const (
	// DefaultPrec is the default mantissa precision in bits (≈38 decimal digits).
	DefaultPrec uint = 128

	// MinPrec is the smallest accepted precision: ⌈30·log2(10)⌉ bits, i.e. 30 digits.
	MinPrec uint = 100
)

// ErrBadPrecision is returned when a requested precision is below MinPrec.
var ErrBadPrecision = errors.New("xfloat: precision below minimum")

// ValidatePrec reports ErrBadPrecision for precisions below MinPrec.
func ValidatePrec(prec uint) error {
	if prec < MinPrec {
		return ErrBadPrecision
	}

	return nil
}

// NewFloat returns a zero *big.Float with the given precision.
func NewFloat(prec uint) *big.Float {
	return new(big.Float).SetPrec(prec)
}

// FromFloat64 returns x lifted to an extended-precision float. The lift is exact.
func FromFloat64(x float64, prec uint) *big.Float {
	return new(big.Float).SetPrec(prec).SetFloat64(x)
}

// Complex is an extended-precision complex number z = Re + i·Im.
//
// The parts are stored by value so that matrices of Complex are a single
// allocation. A Complex must not be copied after first use (big.Float does
// not support shallow copies); address elements in place and use Set.
type Complex struct {
	Re big.Float
	Im big.Float
}

// NewComplex returns a zero Complex with both parts at precision prec.
func NewComplex(prec uint) *Complex {
	z := new(Complex)
	z.SetPrec(prec)

	return z
}

// SetPrec sets the precision of both parts, rounding current values.
func (z *Complex) SetPrec(prec uint) *Complex {
	z.Re.SetPrec(prec)
	z.Im.SetPrec(prec)

	return z
}

// Prec returns the precision of the real part.
func (z *Complex) Prec() uint { return z.Re.Prec() }

// Set sets z = x.
func (z *Complex) Set(x *Complex) *Complex {
	z.Re.Set(&x.Re)
	z.Im.Set(&x.Im)

	return z
}

// SetParts sets z = re + i·im.
func (z *Complex) SetParts(re, im *big.Float) *Complex {
	z.Re.Set(re)
	z.Im.Set(im)

	return z
}

// SetComplex128 lifts a working-precision value into z. The lift is exact.
func (z *Complex) SetComplex128(v complex128) *Complex {
	z.Re.SetFloat64(real(v))
	z.Im.SetFloat64(imag(v))

	return z
}

// SetZero sets z = 0 keeping its precision.
func (z *Complex) SetZero() *Complex {
	z.Re.SetInt64(0)
	z.Im.SetInt64(0)

	return z
}

// Complex128 rounds both parts to the nearest float64 (ties to even).
// This is the single downcast point of the pipeline.
func (z *Complex) Complex128() complex128 {
	re, _ := z.Re.Float64()
	im, _ := z.Im.Float64()

	return complex(re, im)
}

// Mul sets z = x·y using s for temporaries. z may alias x or y.
func (z *Complex) Mul(x, y *Complex, s *Scratch) *Complex {
	s.ac.Mul(&x.Re, &y.Re)
	s.bd.Mul(&x.Im, &y.Im)
	s.ad.Mul(&x.Re, &y.Im)
	s.bc.Mul(&x.Im, &y.Re)
	z.Re.Sub(&s.ac, &s.bd)
	z.Im.Add(&s.ad, &s.bc)

	return z
}

// MulAdd accumulates z += x·y using s for temporaries.
// z must not alias x or y.
func (z *Complex) MulAdd(x, y *Complex, s *Scratch) *Complex {
	s.ac.Mul(&x.Re, &y.Re)
	s.bd.Mul(&x.Im, &y.Im)
	s.ac.Sub(&s.ac, &s.bd)
	z.Re.Add(&z.Re, &s.ac)

	s.ad.Mul(&x.Re, &y.Im)
	s.bc.Mul(&x.Im, &y.Re)
	s.ad.Add(&s.ad, &s.bc)
	z.Im.Add(&z.Im, &s.ad)

	return z
}

// IsZero reports whether both parts are exactly zero.
func (z *Complex) IsZero() bool {
	return z.Re.Sign() == 0 && z.Im.Sign() == 0
}

// Scratch holds the temporaries for complex products so that hot loops
// do not allocate. A Scratch is not safe for concurrent use; give each
// worker its own.
type Scratch struct {
	ac, bd, ad, bc big.Float
}

// NewScratch returns a Scratch whose temporaries carry prec bits.
func NewScratch(prec uint) *Scratch {
	s := new(Scratch)
	s.ac.SetPrec(prec)
	s.bd.SetPrec(prec)
	s.ad.SetPrec(prec)
	s.bc.SetPrec(prec)

	return s
}
