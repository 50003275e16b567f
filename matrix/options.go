// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for storage and kernels.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal).
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Panic only on invalid parameters (programmer error).
package matrix

import (
	"math"

	"github.com/katalvlaran/gramfe/xfloat"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the absolute tolerance used by AllClose-style checks.
	DefaultEpsilon = 1e-12

	// DefaultValidateNaNInf toggles strict finite-value validation on Set.
	DefaultValidateNaNInf = true

	// DefaultPrec is the mantissa precision of extended-precision storage.
	DefaultPrec = xfloat.DefaultPrec

	// DefaultWorkers selects the worker count for MulX; 0 means GOMAXPROCS.
	DefaultWorkers = 0
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicEpsilonInvalid   = "matrix: WithEpsilon: eps must be finite, non-negative"
	panicPrecisionInvalid = "matrix: WithPrecision: precision below xfloat.MinPrec"
	panicWorkersInvalid   = "matrix: WithWorkers: workers must be >= 0"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept ...Option.
type Options struct {
	eps            float64 // >= 0; DefaultEpsilon
	validateNaNInf bool    // DefaultValidateNaNInf
	prec           uint    // >= xfloat.MinPrec; DefaultPrec
	workers        int     // >= 0; 0 ⇒ GOMAXPROCS
}

// WithEpsilon sets the non-negative tolerance used by AllClose.
// Panics when eps is negative, NaN or Inf.
func WithEpsilon(eps float64) Option {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithValidateNaNInf makes Set reject NaN/Inf with ErrNaNInf.
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf lets Set store NaN/Inf. Lift still rejects them,
// because extended-precision storage cannot represent NaN.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// WithPrecision sets the mantissa precision (bits) of extended storage
// allocated by NewXDense, Lift, MulX and ScaleRowsX.
// Panics below xfloat.MinPrec (fewer than 30 significant digits).
func WithPrecision(prec uint) Option {
	if xfloat.ValidatePrec(prec) != nil {
		panic(panicPrecisionInvalid)
	}

	return func(o *Options) { o.prec = prec }
}

// WithWorkers bounds the number of goroutines MulX uses; 0 selects GOMAXPROCS
// and 1 forces a sequential product. Results do not depend on this value.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) { o.workers = n }
}

// NewMatrixOptions resolves opts on top of the defaults.
// Exposed so callers and tests can inspect the effective configuration.
func NewMatrixOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// Epsilon returns the effective AllClose tolerance.
func (o Options) Epsilon() float64 { return o.eps }

// ValidateNaNInf reports whether Set rejects non-finite values.
func (o Options) ValidateNaNInf() bool { return o.validateNaNInf }

// Precision returns the effective extended precision in bits.
func (o Options) Precision() uint { return o.prec }

// Workers returns the configured MulX worker bound (0 ⇒ GOMAXPROCS).
func (o Options) Workers() int { return o.workers }

// defaultOptions returns the documented defaults.
func defaultOptions() Options {
	return Options{
		eps:            DefaultEpsilon,
		validateNaNInf: DefaultValidateNaNInf,
		prec:           DefaultPrec,
		workers:        DefaultWorkers,
	}
}

// gatherOptions applies user setters on top of defaults (last writer wins).
func gatherOptions(user ...Option) Options {
	o := defaultOptions()
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
