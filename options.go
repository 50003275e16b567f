// SPDX-License-Identifier: MIT

// Package gramfe: functional configuration for the Evolver.
// Defaults are the single source of truth; WithX constructors panic on
// nonsensical values (programmer error), never on runtime data.
package gramfe

import (
	"log/slog"
	"math"
	"math/big"

	"github.com/katalvlaran/gramfe/xfloat"
)

const (
	// DefaultGhostZone is the ghost-zone width G; it fixes the Taylor orders.
	DefaultGhostZone = 8

	// DefaultFilterDigits is the attenuation at K = Kmax in decimal digits:
	// the filter decay is α = DefaultFilterDigits·ln 10, so Filter(Kmax) = 1e-32.
	DefaultFilterDigits = 32

	// DefaultFilterDegree is the filter order p; the exponent is 2p.
	DefaultFilterDegree = 100

	// DefaultPhaseLimit disables the phase guard.
	DefaultPhaseLimit = 0.0

	// DefaultPrec is the extended mantissa precision in bits.
	DefaultPrec = xfloat.DefaultPrec

	// DefaultWorkers selects GOMAXPROCS row workers for the matrix chain.
	DefaultWorkers = 0
)

const (
	panicGhostZoneInvalid  = "gramfe: WithGhostZone: width must be >= 1"
	panicFilterInvalid     = "gramfe: WithFilter: decay must be finite, >= 0 and degree >= 1"
	panicPhaseLimitInvalid = "gramfe: WithPhaseLimit: limit must be finite, >= 0"
	panicPrecisionInvalid  = "gramfe: WithPrecision: precision below xfloat.MinPrec"
	panicWorkersInvalid    = "gramfe: WithWorkers: workers must be >= 0"
)

// Option mutates Options.
type Option func(*Options)

// Options is the effective Evolver configuration.
type Options struct {
	ghost      int
	decay      float64 // used only when decaySet
	decaySet   bool    // false ⇒ α = DefaultFilterDigits·ln 10 in extended precision
	degree     int
	phaseLimit float64 // 0 ⇒ disabled
	prec       uint
	workers    int
	logger     *slog.Logger
}

// WithGhostZone sets the ghost-zone width G (≥ 1).
func WithGhostZone(g int) Option {
	if g < 1 {
		panic(panicGhostZoneInvalid)
	}

	return func(o *Options) { o.ghost = g }
}

// WithFilter sets the filter decay α and degree p in exp(-α·(|K|/Kmax)^(2p)).
// α = 0 disables filtering (every mode passes with weight 1).
func WithFilter(decay float64, degree int) Option {
	if decay < 0 || math.IsNaN(decay) || math.IsInf(decay, 0) || degree < 1 {
		panic(panicFilterInvalid)
	}

	return func(o *Options) {
		o.decay, o.decaySet = decay, true
		o.degree = degree
	}
}

// WithPhaseLimit rejects computations whose phase |C| exceeds limit on any
// wavenumber whose filter weight is at least 2⁻⁵³. Zero disables the guard.
func WithPhaseLimit(limit float64) Option {
	if limit < 0 || math.IsNaN(limit) || math.IsInf(limit, 0) {
		panic(panicPhaseLimitInvalid)
	}

	return func(o *Options) { o.phaseLimit = limit }
}

// WithPrecision sets the extended mantissa precision in bits.
func WithPrecision(prec uint) Option {
	if xfloat.ValidatePrec(prec) != nil {
		panic(panicPrecisionInvalid)
	}

	return func(o *Options) { o.prec = prec }
}

// WithWorkers bounds the row workers of the matrix chain (0 ⇒ GOMAXPROCS).
// The output does not depend on this value.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) { o.workers = n }
}

// WithLogger sets the logger for debug records; nil restores silence.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.logger = l }
}

// NewOptions resolves opts on top of the defaults.
func NewOptions(opts ...Option) Options { return gatherOptions(opts...) }

// GhostZone returns G.
func (o Options) GhostZone() int { return o.ghost }

// FilterDegree returns p.
func (o Options) FilterDegree() int { return o.degree }

// PhaseLimit returns the phase guard limit (0 ⇒ disabled).
func (o Options) PhaseLimit() float64 { return o.phaseLimit }

// Precision returns the extended precision in bits.
func (o Options) Precision() uint { return o.prec }

// Workers returns the row worker bound.
func (o Options) Workers() int { return o.workers }

// FilterDecay returns α at precision prec.
func (o Options) FilterDecay(prec uint) *big.Float {
	if o.decaySet {
		return xfloat.FromFloat64(o.decay, prec)
	}
	d := xfloat.Ln10(prec)

	return d.Mul(d, xfloat.NewFloat(prec).SetInt64(DefaultFilterDigits))
}

func defaultOptions() Options {
	return Options{
		ghost:      DefaultGhostZone,
		degree:     DefaultFilterDegree,
		phaseLimit: DefaultPhaseLimit,
		prec:       DefaultPrec,
		workers:    DefaultWorkers,
	}
}

func gatherOptions(user ...Option) Options {
	o := defaultOptions()
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	return o
}
