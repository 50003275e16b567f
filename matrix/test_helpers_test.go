// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers.

package matrix_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/gramfe/matrix"
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// forcing kernels onto their interface fallback path.
type hide struct{ matrix.Matrix }

// inf returns +Inf.
func inf() float64 { return math.Inf(1) }

// randomDense returns an r×c matrix with entries in [-1,1]² from a fixed seed.
func randomDense(t testing.TB, r, c int, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	buf := make([]complex128, r*c)
	for k := range buf {
		buf[k] = complex(2*rng.Float64()-1, 2*rng.Float64()-1)
	}
	m, err := matrix.NewDenseFrom(r, c, buf)
	if err != nil {
		t.Fatalf("NewDenseFrom(%d,%d): %v", r, c, err)
	}

	return m
}
