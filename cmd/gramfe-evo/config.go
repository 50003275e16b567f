// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/gramfe"
	"github.com/katalvlaran/gramfe/xfloat"
)

// envPrefix prefixes every environment override, e.g. GRAMFE_DT.
const envPrefix = "GRAMFE_"

var errConfig = errors.New("gramfe-evo: invalid configuration")

// config is the resolved run configuration. Precedence, lowest first:
// defaults, YAML file (-config), GRAMFE_* environment, explicit flags.
type config struct {
	Points       int     `yaml:"points"`   // N for periodic tables
	Interior     int     `yaml:"interior"` // M for periodic tables
	DT           float64 `yaml:"dt"`
	DH           float64 `yaml:"dh"`
	Eta          float64 `yaml:"eta"`
	GhostZone    int     `yaml:"ghost_zone"`
	FilterDigits float64 `yaml:"filter_digits"`
	FilterDegree int     `yaml:"filter_degree"`
	PhaseLimit   float64 `yaml:"phase_limit"`
	Precision    uint    `yaml:"precision"`
	Workers      int     `yaml:"workers"`
	Tables       string  `yaml:"tables"` // YAML table file; empty ⇒ periodic tables
	Output       string  `yaml:"output"` // YAML matrix file, "-" for stdout; empty ⇒ summary
	LogLevel     string  `yaml:"log_level"`
}

func defaultConfig() config {
	return config{
		Points:       32,
		Interior:     16,
		DT:           0.1,
		DH:           1,
		Eta:          1,
		GhostZone:    gramfe.DefaultGhostZone,
		FilterDigits: gramfe.DefaultFilterDigits,
		FilterDegree: gramfe.DefaultFilterDegree,
		PhaseLimit:   gramfe.DefaultPhaseLimit,
		Precision:    gramfe.DefaultPrec,
		Workers:      gramfe.DefaultWorkers,
		LogLevel:     "info",
	}
}

// loadFile overlays the YAML file at path onto cfg. Unknown keys are errors.
func loadFile(path string, cfg *config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err = dec.Decode(cfg); err != nil {
		return fmt.Errorf("config %s: %v: %w", path, err, errConfig)
	}

	return nil
}

// applyEnv overlays GRAMFE_* variables found through getenv onto cfg.
func applyEnv(cfg *config, getenv func(string) string) error {
	type field struct {
		name string
		set  func(string) error
	}
	fields := []field{
		{"POINTS", intSetter(&cfg.Points)},
		{"INTERIOR", intSetter(&cfg.Interior)},
		{"DT", floatSetter(&cfg.DT)},
		{"DH", floatSetter(&cfg.DH)},
		{"ETA", floatSetter(&cfg.Eta)},
		{"GHOST_ZONE", intSetter(&cfg.GhostZone)},
		{"FILTER_DIGITS", floatSetter(&cfg.FilterDigits)},
		{"FILTER_DEGREE", intSetter(&cfg.FilterDegree)},
		{"PHASE_LIMIT", floatSetter(&cfg.PhaseLimit)},
		{"PRECISION", func(s string) error {
			v, err := strconv.ParseUint(s, 10, 32)
			cfg.Precision = uint(v)
			return err
		}},
		{"WORKERS", intSetter(&cfg.Workers)},
		{"TABLES", stringSetter(&cfg.Tables)},
		{"OUTPUT", stringSetter(&cfg.Output)},
		{"LOG_LEVEL", stringSetter(&cfg.LogLevel)},
	}
	for _, f := range fields {
		v := strings.TrimSpace(getenv(envPrefix + f.name))
		if v == "" {
			continue
		}
		if err := f.set(v); err != nil {
			return fmt.Errorf("%s%s=%q: %v: %w", envPrefix, f.name, v, err, errConfig)
		}
	}

	return nil
}

func intSetter(dst *int) func(string) error {
	return func(s string) (err error) {
		*dst, err = strconv.Atoi(s)
		return err
	}
}

func floatSetter(dst *float64) func(string) error {
	return func(s string) (err error) {
		*dst, err = strconv.ParseFloat(s, 64)
		return err
	}
}

func stringSetter(dst *string) func(string) error {
	return func(s string) error {
		*dst = s
		return nil
	}
}

// validate rejects values the option constructors would panic on.
// Physical parameters (dt, dh, eta) are left to the library.
func (c config) validate() error {
	switch {
	case c.Tables == "" && !(0 < c.Interior && c.Interior < c.Points):
		return fmt.Errorf("need 0 < interior=%d < points=%d: %w", c.Interior, c.Points, errConfig)
	case c.GhostZone < 1:
		return fmt.Errorf("ghost_zone=%d: %w", c.GhostZone, errConfig)
	case c.FilterDigits < 0 || math.IsNaN(c.FilterDigits) || math.IsInf(c.FilterDigits, 0):
		return fmt.Errorf("filter_digits=%g: %w", c.FilterDigits, errConfig)
	case c.FilterDegree < 1:
		return fmt.Errorf("filter_degree=%d: %w", c.FilterDegree, errConfig)
	case c.PhaseLimit < 0 || math.IsNaN(c.PhaseLimit) || math.IsInf(c.PhaseLimit, 0):
		return fmt.Errorf("phase_limit=%g: %w", c.PhaseLimit, errConfig)
	case xfloat.ValidatePrec(c.Precision) != nil:
		return fmt.Errorf("precision=%d below %d: %w", c.Precision, xfloat.MinPrec, errConfig)
	case c.Workers < 0:
		return fmt.Errorf("workers=%d: %w", c.Workers, errConfig)
	}
	if _, err := c.level(); err != nil {
		return fmt.Errorf("log_level=%q: %w", c.LogLevel, errConfig)
	}

	return nil
}

func (c config) level() (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(c.LogLevel))

	return l, err
}

// options maps cfg onto Evolver options. The default filter keeps its
// extended-precision decay; other digit counts go through float64.
func (c config) options(logger *slog.Logger) []gramfe.Option {
	opts := []gramfe.Option{
		gramfe.WithGhostZone(c.GhostZone),
		gramfe.WithPhaseLimit(c.PhaseLimit),
		gramfe.WithPrecision(c.Precision),
		gramfe.WithWorkers(c.Workers),
		gramfe.WithLogger(logger),
	}
	if c.FilterDigits != gramfe.DefaultFilterDigits || c.FilterDegree != gramfe.DefaultFilterDegree {
		opts = append(opts, gramfe.WithFilter(c.FilterDigits*math.Ln10, c.FilterDegree))
	}

	return opts
}
