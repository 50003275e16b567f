// SPDX-License-Identifier: MIT

package gramfe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/gramfe"
)

func TestTruncationOrders(t *testing.T) {
	cases := []struct{ g, cos, sin int }{
		{-1, 0, 0},
		{0, 0, 0},
		{1, 1, 1},
		{2, 1, 0},
		{3, 2, 2},
		{4, 2, 1},
		{7, 4, 4},
		{8, 4, 3},
	}
	for _, tc := range cases {
		c, s := gramfe.TruncationOrders(tc.g)
		assert.Equal(t, tc.cos, c, "cos terms for G=%d", tc.g)
		assert.Equal(t, tc.sin, s, "sin terms for G=%d", tc.g)
	}
}
