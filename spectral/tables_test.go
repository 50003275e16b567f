package spectral_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gramfe/matrix"
	"github.com/katalvlaran/gramfe/spectral"
)

// mustDense allocates an r×c Dense or fails the test.
func mustDense(t *testing.T, r, c int) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewDense(r, c, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)

	return d
}

// TestNewTables_Shapes covers the 0 < M < N ≤ W contract and operand agreement.
func TestNewTables_Shapes(t *testing.T) {
	cases := []struct {
		name                   string
		fr, fc, ir, ic, er, ec int
		ok                     bool
	}{
		{"valid", 8, 8, 4, 8, 8, 6, true},
		{"valid N=W", 8, 8, 4, 8, 8, 8, true},
		{"forward not square", 8, 7, 4, 8, 8, 6, false},
		{"inverse cols", 8, 8, 4, 7, 8, 6, false},
		{"extend rows", 8, 8, 4, 8, 7, 6, false},
		{"N > W", 8, 8, 4, 8, 8, 9, false},
		{"M = N", 8, 8, 6, 8, 8, 6, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tb, err := spectral.NewTables(mustDense(t, tc.fr, tc.fc), mustDense(t, tc.ir, tc.ic), mustDense(t, tc.er, tc.ec))
			if tc.ok {
				require.NoError(t, err)
				require.Equal(t, tc.fr, tb.Width())
				require.Equal(t, tc.ec, tb.PatchWidth())
				require.Equal(t, tc.ir, tb.OutputWidth())
				return
			}
			require.ErrorIs(t, err, spectral.ErrBadShape)
		})
	}
}

// TestNewTables_Rejects covers nil and non-finite tables.
func TestNewTables_Rejects(t *testing.T) {
	f, i, e := mustDense(t, 4, 4), mustDense(t, 2, 4), mustDense(t, 4, 3)

	_, err := spectral.NewTables(nil, i, e)
	require.ErrorIs(t, err, spectral.ErrNilTable)

	var typedNil *matrix.Dense
	_, err = spectral.NewTables(f, typedNil, e)
	require.ErrorIs(t, err, spectral.ErrNilTable)

	require.NoError(t, e.Set(1, 1, complex(math.NaN(), 0)))
	_, err = spectral.NewTables(f, i, e)
	require.ErrorIs(t, err, spectral.ErrNonFinite)
}

// TestNewTables_Immutable verifies that the handle does not alias caller storage
// and that accessors hand out copies.
func TestNewTables_Immutable(t *testing.T) {
	f, i, e := mustDense(t, 4, 4), mustDense(t, 2, 4), mustDense(t, 4, 3)
	require.NoError(t, f.Set(0, 0, 1))

	tb, err := spectral.NewTables(f, i, e)
	require.NoError(t, err)

	require.NoError(t, f.Set(0, 0, 5))
	got := tb.Forward()
	v, _ := got.At(0, 0)
	require.Equal(t, complex128(1), v)

	require.NoError(t, got.Set(0, 0, 7))
	v, _ = tb.Forward().At(0, 0)
	require.Equal(t, complex128(1), v)
}

// TestTables_Lift verifies the extended copies have the table shapes.
func TestTables_Lift(t *testing.T) {
	tb, err := spectral.NewPeriodicTables(8, 4)
	require.NoError(t, err)

	f, inv, e, err := tb.Lift(matrix.WithPrecision(112))
	require.NoError(t, err)
	require.Equal(t, [2]int{8, 8}, [2]int{f.Rows(), f.Cols()})
	require.Equal(t, [2]int{4, 8}, [2]int{inv.Rows(), inv.Cols()})
	require.Equal(t, [2]int{8, 8}, [2]int{e.Rows(), e.Cols()})
	require.Equal(t, uint(112), f.Prec())
}
