package xfloat_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gramfe/xfloat"
)

// relErr returns |got-want|/|want| in extended precision, as float64.
func relErr(got, want *big.Float) float64 {
	d := new(big.Float).SetPrec(got.Prec()).Sub(got, want)
	d.Quo(d, want)
	f, _ := d.Float64()

	return math.Abs(f)
}

// TestExp_MatchesFloat64 compares Exp against math.Exp over the filter range.
func TestExp_MatchesFloat64(t *testing.T) {
	for _, x := range []float64{-73.68, -10, -1, -1e-3, 1e-9, 0.5, 1, 30} {
		got, _ := xfloat.Exp(xfloat.FromFloat64(x, xfloat.DefaultPrec)).Float64()
		assert.InEpsilon(t, math.Exp(x), got, 1e-15, "x=%g", x)
	}
}

// TestExp_Zero verifies e^0 = 1 exactly.
func TestExp_Zero(t *testing.T) {
	one := xfloat.FromFloat64(1, xfloat.DefaultPrec)
	require.Equal(t, 0, xfloat.Exp(xfloat.NewFloat(xfloat.DefaultPrec)).Cmp(one))
}

// TestExp_ExtendedAccuracy checks e^(-32 ln 10) = 1e-32 beyond double precision.
func TestExp_ExtendedAccuracy(t *testing.T) {
	prec := xfloat.DefaultPrec
	arg := xfloat.Ln10(prec)
	arg.Mul(arg, xfloat.FromFloat64(-32, prec))

	got := xfloat.Exp(arg)
	want, _, err := big.ParseFloat("1e-32", 10, prec, big.ToNearestEven)
	require.NoError(t, err)

	assert.Less(t, relErr(got, want), 1e-30)
}

// TestExp_Identity checks e^a · e^-a = 1 to extended precision.
func TestExp_Identity(t *testing.T) {
	prec := xfloat.DefaultPrec
	a := xfloat.FromFloat64(12.345, prec)
	na := xfloat.FromFloat64(-12.345, prec)

	prod := xfloat.NewFloat(prec).Mul(xfloat.Exp(a), xfloat.Exp(na))
	assert.Less(t, relErr(prod, xfloat.FromFloat64(1, prec)), 1e-33)
}

// TestExp_Saturation verifies huge arguments saturate instead of looping.
func TestExp_Saturation(t *testing.T) {
	prec := xfloat.DefaultPrec
	assert.Equal(t, 0, xfloat.Exp(xfloat.FromFloat64(-1e300, prec)).Sign())
	assert.True(t, xfloat.Exp(xfloat.FromFloat64(1e300, prec)).IsInf())
	assert.True(t, xfloat.Exp(new(big.Float).SetPrec(prec).SetInf(false)).IsInf())
}

// TestPowInt covers the exponent edge cases and an extended-precision power.
func TestPowInt(t *testing.T) {
	prec := xfloat.DefaultPrec
	half := xfloat.FromFloat64(0.5, prec)

	assert.Equal(t, "1", xfloat.PowInt(xfloat.NewFloat(prec), 0).Text('f', 0))
	assert.Equal(t, 0, xfloat.PowInt(half, 200).Cmp(new(big.Float).SetPrec(prec).SetMantExp(xfloat.FromFloat64(1, prec), -200)))

	three := xfloat.FromFloat64(3, prec)
	assert.Equal(t, "243", xfloat.PowInt(three, 5).Text('f', 0))
}

// TestConstants checks the extended constants round to their float64 counterparts.
func TestConstants(t *testing.T) {
	ln10, _ := xfloat.Ln10(xfloat.DefaultPrec).Float64()
	assert.Equal(t, math.Ln10, ln10)

	pi, _ := xfloat.Pi(xfloat.DefaultPrec).Float64()
	assert.Equal(t, math.Pi, pi)
}
