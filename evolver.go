// SPDX-License-Identifier: MIT

package gramfe

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/katalvlaran/gramfe/matrix"
	"github.com/katalvlaran/gramfe/spectral"
)

// New returns an Evolver for tables. The tables are lifted to extended
// precision once here; every later call only reads them.
//
// Errors:
//   - ErrNilTables when tables is nil.
func New(tables *spectral.Tables, opts ...Option) (*Evolver, error) {
	if tables == nil {
		return nil, fmt.Errorf("New: %w", ErrNilTables)
	}
	o := gatherOptions(opts...)

	forward, inverse, extend, err := tables.Lift(matrix.WithPrecision(o.prec))
	if err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}

	e := &Evolver{
		tables:  tables,
		w:       tables.Width(),
		n:       tables.PatchWidth(),
		m:       tables.OutputWidth(),
		forward: forward,
		inverse: inverse,
		extend:  extend,
		opts:    o,
		decay:   o.FilterDecay(o.prec),
	}
	e.cosTerms, e.sinTerms = TruncationOrders(o.ghost)

	return e, nil
}

// ComputeTimeEvolutionMatrix writes the M×N evolution matrix for one step
// dt on a grid of spacing dh with mass-to-ħ ratio eta into out, row-major.
// out is fully overwritten; nothing is retained between calls.
//
// Implementation:
//   - Stage 1: validate len(out) == M·N and dt ≥ 0, dh > 0, eta > 0, all finite.
//   - Stage 2: evolution coefficients D (Coefficients).
//   - Stage 3: scaled = diag(D)·F, intermediate = F⁻¹·scaled, evolution = intermediate·E.
//   - Stage 4: round every entry to complex128 once.
//
// dt = 0 is accepted and yields F⁻¹·diag(Filter)·F·E.
//
// Errors:
//   - ErrOutputSize, ErrInvalidParameter, ErrPhaseTooLarge.
//
// Complexity:
//   - Time O(W²·(M + 1) + M·W·N) extended multiplies, Space O(W² + M·W).
func (e *Evolver) ComputeTimeEvolutionMatrix(out []complex128, dt, dh, eta float64) error {
	const op = "ComputeTimeEvolutionMatrix"
	if len(out) != e.m*e.n {
		return fmt.Errorf("%s: len(out)=%d, want %d·%d: %w", op, len(out), e.m, e.n, ErrOutputSize)
	}
	switch {
	case !isFinite(dt) || dt < 0:
		return fmt.Errorf("%s: dt=%g: %w", op, dt, ErrInvalidParameter)
	case !isFinite(dh) || dh <= 0:
		return fmt.Errorf("%s: dh=%g: %w", op, dh, ErrInvalidParameter)
	case !isFinite(eta) || eta <= 0:
		return fmt.Errorf("%s: eta=%g: %w", op, eta, ErrInvalidParameter)
	}

	start := time.Now()
	coeffs, err := e.Coefficients(dt, dh, eta)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	mopts := []matrix.Option{matrix.WithPrecision(e.opts.prec), matrix.WithWorkers(e.opts.workers)}
	scaled, err := matrix.ScaleRowsX(e.forward, coeffs, mopts...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	inter, err := matrix.MulX(e.inverse, scaled, mopts...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	evo, err := matrix.MulX(inter, e.extend, mopts...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = evo.Downcast(out); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	e.opts.logger.LogAttrs(context.Background(), slog.LevelDebug, "evolution matrix",
		slog.Int("W", e.w), slog.Int("N", e.n), slog.Int("M", e.m),
		slog.Float64("dt", dt), slog.Float64("dh", dh), slog.Float64("eta", eta),
		slog.Int("cos_terms", e.cosTerms), slog.Int("sin_terms", e.sinTerms),
		slog.Uint64("prec", uint64(e.opts.prec)),
		slog.Duration("elapsed", time.Since(start)),
	)

	return nil
}

// EvolutionMatrix is ComputeTimeEvolutionMatrix into a freshly allocated
// M×N Dense.
func (e *Evolver) EvolutionMatrix(dt, dh, eta float64) (*matrix.Dense, error) {
	out := make([]complex128, e.m*e.n)
	if err := e.ComputeTimeEvolutionMatrix(out, dt, dh, eta); err != nil {
		return nil, err
	}

	return matrix.NewDenseFrom(e.m, e.n, out)
}

// ComputeTimeEvolutionMatrix builds a one-shot Evolver for tables and
// writes the evolution matrix into out. Prefer New plus the method when
// computing more than one matrix for the same tables.
func ComputeTimeEvolutionMatrix(out []complex128, tables *spectral.Tables, dt, dh, eta float64, opts ...Option) error {
	e, err := New(tables, opts...)
	if err != nil {
		return err
	}

	return e.ComputeTimeEvolutionMatrix(out, dt, dh, eta)
}
