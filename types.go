// SPDX-License-Identifier: MIT

package gramfe

import (
	"math/big"

	"github.com/katalvlaran/gramfe/matrix"
	"github.com/katalvlaran/gramfe/spectral"
)

// Evolver computes time-evolution matrices for one set of spectral tables
// and one configuration. It is immutable after New.
type Evolver struct {
	tables  *spectral.Tables
	w, n, m int

	// Extended-precision copies of F (W×W), F⁻¹ (M×W) and E (W×N), lifted once.
	forward, inverse, extend *matrix.XDense

	opts               Options
	cosTerms, sinTerms int
	decay              *big.Float // filter α at opts.prec; read-only
}

// Tables returns the tables the Evolver was built from.
func (e *Evolver) Tables() *spectral.Tables { return e.tables }

// Dims returns (M, N), the shape of every evolution matrix.
func (e *Evolver) Dims() (rows, cols int) { return e.m, e.n }

// TruncationOrders returns the Taylor term counts in use.
func (e *Evolver) TruncationOrders() (cosTerms, sinTerms int) { return e.cosTerms, e.sinTerms }

// Options returns the effective configuration.
func (e *Evolver) Options() Options { return e.opts }
