// SPDX-License-Identifier: MIT

package gramfe_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gramfe"
	"github.com/katalvlaran/gramfe/spectral"
)

// Production-sized periodic patch: 16 interior points with an 8-cell halo each side.
const (
	testN = 32
	testM = 16
)

// periodicEvolver builds an Evolver over NewPeriodicTables(n, m).
func periodicEvolver(t testing.TB, n, m int, opts ...gramfe.Option) *gramfe.Evolver {
	t.Helper()
	tb, err := spectral.NewPeriodicTables(n, m)
	require.NoError(t, err)
	ev, err := gramfe.New(tb, opts...)
	require.NoError(t, err)

	return ev
}

// compute runs ev into a fresh buffer.
func compute(t testing.TB, ev *gramfe.Evolver, dt, dh, eta float64) []complex128 {
	t.Helper()
	m, n := ev.Dims()
	out := make([]complex128, m*n)
	require.NoError(t, ev.ComputeTimeEvolutionMatrix(out, dt, dh, eta))

	return out
}
