// SPDX-License-Identifier: MIT

package gramfe_test

import (
	"bytes"
	"log/slog"
	"math"
	"math/big"
	"math/cmplx"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/cmplxs"

	"github.com/katalvlaran/gramfe"
	"github.com/katalvlaran/gramfe/matrix"
	"github.com/katalvlaran/gramfe/spectral"
)

// TestEvolver_EndToEnd runs the production configuration: dh = 1, dt = 0.1,
// η = 1, G = 8 on a 32-point periodic patch.
func TestEvolver_EndToEnd(t *testing.T) {
	ev := periodicEvolver(t, testN, testM)
	c, s := ev.TruncationOrders()
	require.Equal(t, [2]int{4, 3}, [2]int{c, s})
	require.Equal(t, testN, ev.Tables().Width())
	require.Equal(t, gramfe.DefaultGhostZone, ev.Options().GhostZone())

	evo, err := ev.EvolutionMatrix(0.1, 1, 1)
	require.NoError(t, err)
	require.Equal(t, testM, evo.Rows())
	require.Equal(t, testN, evo.Cols())

	maxAbs, err := matrix.MaxAbs(evo)
	require.NoError(t, err)
	assert.LessOrEqual(t, maxAbs, 1+1e-12)

	// A uniform field stays uniform: every row sums to 1.
	ones := make([]complex128, testN)
	for j := range ones {
		ones[j] = 1
	}
	got, err := matrix.MatVec(evo, ones)
	require.NoError(t, err)
	for i, v := range got {
		assert.InDelta(t, 0, cmplx.Abs(v-1), 1e-12, "row %d", i)
	}
}

// TestEvolver_ZeroModeUnscaled checks that the K = 0 coefficient is exactly
// 1, so the zero-mode row of diag(D)·F is the K = 0 row of F unscaled. The
// uniform field, which lives only in that mode, then propagates exactly as
// through F⁻¹·F·E with no evolution at all.
func TestEvolver_ZeroModeUnscaled(t *testing.T) {
	tb, err := spectral.NewPeriodicTables(testN, testM)
	require.NoError(t, err)
	ev, err := gramfe.New(tb)
	require.NoError(t, err)

	d, err := ev.Coefficients(0.1, 1, 1)
	require.NoError(t, err)
	require.Equal(t, complex128(1), d[0].Complex128())
	require.Zero(t, d[0].Re.Cmp(big.NewFloat(1)))
	require.Zero(t, d[0].Im.Sign())

	// Row 0 of diag(D)·F, rounded, equals row 0 of F.
	forward := tb.Forward()
	f0, err := forward.Row(0)
	require.NoError(t, err)
	scaled := make([]complex128, len(f0))
	for j, v := range f0 {
		scaled[j] = d[0].Complex128() * v
	}
	require.Equal(t, f0, scaled)

	ones := make([]complex128, testN)
	for j := range ones {
		ones[j] = 1
	}
	evo, err := ev.EvolutionMatrix(0.1, 1, 1)
	require.NoError(t, err)
	got, err := matrix.MatVec(evo, ones)
	require.NoError(t, err)

	ref := chain(t, tb.Inverse(), mustIdentity(t, testN), forward, tb.Extend())
	want, err := matrix.MatVec(ref, ones)
	require.NoError(t, err)
	require.True(t, cmplxs.EqualApprox(got, want, 1e-12))
}

// TestEvolver_Deterministic checks bit-identical output across calls and worker counts.
func TestEvolver_Deterministic(t *testing.T) {
	first := compute(t, periodicEvolver(t, testN, testM, gramfe.WithWorkers(1)), 0.1, 1, 1)
	for _, w := range []int{0, 2, 5, 16} {
		ev := periodicEvolver(t, testN, testM, gramfe.WithWorkers(w))
		for rep := 0; rep < 2; rep++ {
			require.Equal(t, first, compute(t, ev, 0.1, 1, 1), "workers=%d rep=%d", w, rep)
		}
	}
}

// TestEvolver_ConcurrentCalls shares one Evolver across goroutines.
func TestEvolver_ConcurrentCalls(t *testing.T) {
	ev := periodicEvolver(t, testN, testM)
	want := compute(t, ev, 0.05, 1, 2)

	var wg sync.WaitGroup
	results := make([][]complex128, 4)
	for g := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[g] = make([]complex128, len(want))
			assert.NoError(t, ev.ComputeTimeEvolutionMatrix(results[g], 0.05, 1, 2))
		}()
	}
	wg.Wait()
	for g := range results {
		require.Equal(t, want, results[g], "goroutine %d", g)
	}
}

// TestEvolver_ZeroStepUnfiltered: dt = 0 without a filter selects the interior rows.
func TestEvolver_ZeroStepUnfiltered(t *testing.T) {
	ev := periodicEvolver(t, testN, testM, gramfe.WithFilter(0, 1))
	out := compute(t, ev, 0, 1, 1)

	sel, err := matrix.NewEmbedding(testN, testM, (testN-testM)/2)
	require.NoError(t, err)
	want := make([]complex128, testM*testN)
	for i := 0; i < testM; i++ {
		for j := 0; j < testN; j++ {
			v, _ := sel.At(j, i)
			want[i*testN+j] = v
		}
	}
	require.True(t, cmplxs.EqualApprox(out, want, 1e-13))
}

// TestEvolver_ZeroStepFiltered: dt = 0 equals the working-precision chain
// F⁻¹·diag(Filter)·F·E.
func TestEvolver_ZeroStepFiltered(t *testing.T) {
	tb, err := spectral.NewPeriodicTables(testN, testM)
	require.NoError(t, err)
	ev, err := gramfe.New(tb)
	require.NoError(t, err)

	d, err := ev.Coefficients(0, 1, 1)
	require.NoError(t, err)
	diag, err := matrix.NewDense(testN, testN)
	require.NoError(t, err)
	for i := range d {
		v := d[i].Complex128()
		require.Zero(t, imag(v), "mode %d", i)
		require.NoError(t, diag.Set(i, i, v))
	}

	ref := chain(t, tb.Inverse(), diag, tb.Forward(), tb.Extend())
	got, err := ev.EvolutionMatrix(0, 1, 1)
	require.NoError(t, err)
	ok, err := matrix.AllClose(got, ref, 0, 1e-13)
	require.NoError(t, err)
	require.True(t, ok)
}

// TestEvolver_ExtendedWidth uses W > N: a zero-padding extension into a
// 16-point transform with a 12-point patch.
func TestEvolver_ExtendedWidth(t *testing.T) {
	const w, n, m = 16, 12, 4
	base, err := spectral.NewPeriodicTables(w, m)
	require.NoError(t, err)
	ext, err := matrix.NewEmbedding(w, n, (w-n)/2)
	require.NoError(t, err)
	tb, err := spectral.NewTables(base.Forward(), base.Inverse(), ext)
	require.NoError(t, err)

	ev, err := gramfe.New(tb, gramfe.WithFilter(0, 1))
	require.NoError(t, err)
	rows, cols := ev.Dims()
	require.Equal(t, [2]int{m, n}, [2]int{rows, cols})

	got, err := ev.EvolutionMatrix(0, 1, 1)
	require.NoError(t, err)
	ref := chain(t, base.Inverse(), mustIdentity(t, w), base.Forward(), ext)
	ok, err := matrix.AllClose(got, ref, 0, 1e-13)
	require.NoError(t, err)
	require.True(t, ok)
}

// TestEvolver_PackageWrapper checks the one-shot wrapper against the method.
func TestEvolver_PackageWrapper(t *testing.T) {
	tb, err := spectral.NewPeriodicTables(testN, testM)
	require.NoError(t, err)
	out := make([]complex128, testM*testN)
	require.NoError(t, gramfe.ComputeTimeEvolutionMatrix(out, tb, 0.1, 1, 1, gramfe.WithGhostZone(6)))

	ev, err := gramfe.New(tb, gramfe.WithGhostZone(6))
	require.NoError(t, err)
	require.Equal(t, compute(t, ev, 0.1, 1, 1), out)

	require.ErrorIs(t, gramfe.ComputeTimeEvolutionMatrix(out, nil, 0.1, 1, 1), gramfe.ErrNilTables)
}

// TestEvolver_OutputOverwritten checks that stale buffer contents never leak.
func TestEvolver_OutputOverwritten(t *testing.T) {
	ev := periodicEvolver(t, 8, 4)
	want := compute(t, ev, 0.1, 1, 1)
	out := make([]complex128, len(want))
	for k := range out {
		out[k] = complex(math.NaN(), 7)
	}
	require.NoError(t, ev.ComputeTimeEvolutionMatrix(out, 0.1, 1, 1))
	require.Equal(t, want, out)
}

func TestEvolver_Preconditions(t *testing.T) {
	_, err := gramfe.New(nil)
	require.ErrorIs(t, err, gramfe.ErrNilTables)

	ev := periodicEvolver(t, 8, 4)
	good := make([]complex128, 4*8)

	require.ErrorIs(t, ev.ComputeTimeEvolutionMatrix(make([]complex128, 31), 0.1, 1, 1), gramfe.ErrOutputSize)
	require.ErrorIs(t, ev.ComputeTimeEvolutionMatrix(nil, 0.1, 1, 1), gramfe.ErrOutputSize)

	cases := []struct {
		name        string
		dt, dh, eta float64
	}{
		{"dt negative", -0.1, 1, 1},
		{"dt NaN", math.NaN(), 1, 1},
		{"dh zero", 0.1, 0, 1},
		{"dh Inf", 0.1, math.Inf(1), 1},
		{"eta negative", 0.1, 1, -1},
		{"eta NaN", 0.1, 1, math.NaN()},
	}
	for _, tc := range cases {
		err := ev.ComputeTimeEvolutionMatrix(good, tc.dt, tc.dh, tc.eta)
		require.ErrorIs(t, err, gramfe.ErrInvalidParameter, tc.name)
	}
}

// TestEvolver_Logging checks the debug record emitted per matrix.
func TestEvolver_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ev := periodicEvolver(t, 8, 4, gramfe.WithLogger(logger))
	compute(t, ev, 0.1, 1, 1)

	line := buf.String()
	assert.Contains(t, line, `msg="evolution matrix"`)
	assert.Contains(t, line, "W=8")
	assert.Contains(t, line, "cos_terms=4")
	assert.Contains(t, line, "sin_terms=3")
}

// mustIdentity returns the n×n identity.
func mustIdentity(t *testing.T, n int) *matrix.Dense {
	t.Helper()
	id, err := matrix.NewIdentity(n)
	require.NoError(t, err)

	return id
}

// chain multiplies a·b·c·d in working precision.
func chain(t *testing.T, a, b, c, d matrix.Matrix) matrix.Matrix {
	t.Helper()
	cd, err := matrix.Mul(c, d)
	require.NoError(t, err)
	bcd, err := matrix.Mul(b, cd)
	require.NoError(t, err)
	abcd, err := matrix.Mul(a, bcd)
	require.NoError(t, err)

	return abcd
}
