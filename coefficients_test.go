// SPDX-License-Identifier: MIT

package gramfe_test

import (
	"math"
	"math/big"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/katalvlaran/gramfe"
)

// TestCoefficients_ZeroMode checks that the K = 0 coefficient is exactly 1.
func TestCoefficients_ZeroMode(t *testing.T) {
	ev := periodicEvolver(t, testN, testM)
	d, err := ev.Coefficients(0.1, 1, 1)
	require.NoError(t, err)
	require.Len(t, d, testN)
	require.Zero(t, d[0].Re.Cmp(big.NewFloat(1)))
	require.Zero(t, d[0].Im.Sign())
}

// TestCoefficients_TimeReversal checks D(-dt) = conj(D(dt)) exactly.
func TestCoefficients_TimeReversal(t *testing.T) {
	ev := periodicEvolver(t, testN, testM)
	fwd, err := ev.Coefficients(0.1, 1, 1)
	require.NoError(t, err)
	bwd, err := ev.Coefficients(-0.1, 1, 1)
	require.NoError(t, err)

	neg := new(big.Float)
	for i := range fwd {
		require.Zero(t, fwd[i].Re.Cmp(&bwd[i].Re), "re mode %d", i)
		neg.Neg(&bwd[i].Im)
		require.Zero(t, fwd[i].Im.Cmp(neg), "im mode %d", i)
	}
}

// TestCoefficients_TaylorBound compares each coefficient with
// Filter(K)·exp(iC) and requires the gap to stay within the first omitted
// cosine and sine terms.
func TestCoefficients_TaylorBound(t *testing.T) {
	const dt, dh, eta = 0.1, 1.0, 1.0
	ev := periodicEvolver(t, testN, testM)
	d, err := ev.Coefficients(dt, dh, eta)
	require.NoError(t, err)

	cosTerms, sinTerms := ev.TruncationOrders()
	kmax := math.Pi / dh
	dk := 2 * kmax / testN
	for i := range d {
		idx := i
		if i > testN/2 {
			idx -= testN
		}
		k := float64(idx) * dk
		c := k * k * (-0.5 * dt / eta)
		f := math.Exp(-32 * math.Ln10 * math.Pow(math.Abs(k)/kmax, 200))

		bound := f*(math.Pow(math.Abs(c), float64(2*cosTerms))/math.Gamma(float64(2*cosTerms+1))+
			math.Pow(math.Abs(c), float64(2*sinTerms+1))/math.Gamma(float64(2*sinTerms+2))) + 1e-13

		got := d[i].Complex128()
		want := complex(f, 0) * cmplx.Exp(complex(0, c))
		assert.LessOrEqual(t, cmplx.Abs(got-want), bound, "mode %d (C=%g)", i, c)
		assert.True(t, scalar.EqualWithinAbs(real(got), real(want), bound), "re mode %d", i)
	}
}

// TestCoefficients_NoFilter checks that WithFilter(0, p) leaves pure Taylor phases.
func TestCoefficients_NoFilter(t *testing.T) {
	ev := periodicEvolver(t, testN, testM, gramfe.WithFilter(0, 1))
	d, err := ev.Coefficients(0, 1, 1)
	require.NoError(t, err)
	for i := range d {
		require.Equal(t, complex128(1), d[i].Complex128(), "mode %d", i)
	}
}

func TestCoefficients_InvalidParameters(t *testing.T) {
	ev := periodicEvolver(t, 8, 4)
	cases := []struct {
		name        string
		dt, dh, eta float64
	}{
		{"dt NaN", math.NaN(), 1, 1},
		{"dt Inf", math.Inf(1), 1, 1},
		{"dh zero", 0.1, 0, 1},
		{"dh negative", 0.1, -1, 1},
		{"eta zero", 0.1, 1, 0},
		{"eta Inf", 0.1, 1, math.Inf(-1)},
	}
	for _, tc := range cases {
		_, err := ev.Coefficients(tc.dt, tc.dh, tc.eta)
		require.ErrorIs(t, err, gramfe.ErrInvalidParameter, tc.name)
	}
}

// TestCoefficients_PhaseGuard: with dt = 0.1, dh = η = 1 the largest
// unfiltered phase is about 0.43.
func TestCoefficients_PhaseGuard(t *testing.T) {
	strict := periodicEvolver(t, testN, testM, gramfe.WithPhaseLimit(0.1))
	_, err := strict.Coefficients(0.1, 1, 1)
	require.ErrorIs(t, err, gramfe.ErrPhaseTooLarge)

	out := make([]complex128, testM*testN)
	require.ErrorIs(t, strict.ComputeTimeEvolutionMatrix(out, 0.1, 1, 1), gramfe.ErrPhaseTooLarge)

	loose := periodicEvolver(t, testN, testM, gramfe.WithPhaseLimit(1))
	_, err = loose.Coefficients(0.1, 1, 1)
	require.NoError(t, err)

	// Small steps pass the strict guard.
	_, err = strict.Coefficients(0.01, 1, 1)
	require.NoError(t, err)
}
