// SPDX-License-Identifier: MIT

// Command gramfe-evo computes one Gram/Fourier time-evolution matrix and
// prints a summary or writes the matrix as YAML.
//
// Usage:
//
//	gramfe-evo -dt 0.1 -dh 1 -eta 1                    # periodic 32→16 tables, summary
//	gramfe-evo -tables tables.yaml -output evo.yaml    # external tables, matrix file
//	gramfe-evo -config run.yaml -output -              # YAML config, matrix to stdout
//
// Settings resolve as defaults < -config file < GRAMFE_* environment
// (a .env file in the working directory is loaded first) < flags.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/cmplx"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/gramfe"
	"github.com/katalvlaran/gramfe/matrix"
	"github.com/katalvlaran/gramfe/spectral"
)

func main() {
	_ = godotenv.Load(".env")

	if err := run(os.Args[1:], os.Getenv, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "gramfe-evo: %v\n", err)
		os.Exit(1)
	}
}

// run is main without process globals.
func run(args []string, getenv func(string) string, stdout, stderr io.Writer) error {
	cfg, err := resolveConfig(args, getenv, stderr)
	if err != nil {
		return err
	}
	level, _ := cfg.level()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})).
		With(slog.String("run", uuid.NewString()))

	tables, err := loadTables(cfg)
	if err != nil {
		return err
	}
	ev, err := gramfe.New(tables, cfg.options(logger)...)
	if err != nil {
		return err
	}

	start := time.Now()
	evo, err := ev.EvolutionMatrix(cfg.DT, cfg.DH, cfg.Eta)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	logger.LogAttrs(context.Background(), slog.LevelInfo, "computed",
		slog.Int("rows", evo.Rows()), slog.Int("cols", evo.Cols()),
		slog.Duration("elapsed", elapsed))

	if cfg.Output == "" {
		return writeSummary(stdout, evo, elapsed)
	}
	if cfg.Output == "-" {
		return writeMatrix(stdout, evo, cfg)
	}
	f, err := os.Create(cfg.Output)
	if err != nil {
		return err
	}
	if err = writeMatrix(f, evo, cfg); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// resolveConfig applies defaults, the -config file, the environment and
// the flags that were set explicitly, in that order.
func resolveConfig(args []string, getenv func(string) string, stderr io.Writer) (config, error) {
	def := defaultConfig()
	fc := def

	fs := flag.NewFlagSet("gramfe-evo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "", "YAML config file")
	fs.IntVar(&fc.Points, "points", def.Points, "patch width N of the periodic tables")
	fs.IntVar(&fc.Interior, "interior", def.Interior, "output width M of the periodic tables")
	fs.Float64Var(&fc.DT, "dt", def.DT, "time step")
	fs.Float64Var(&fc.DH, "dh", def.DH, "grid spacing")
	fs.Float64Var(&fc.Eta, "eta", def.Eta, "particle mass over ħ")
	fs.IntVar(&fc.GhostZone, "ghost", def.GhostZone, "ghost-zone width G")
	fs.Float64Var(&fc.FilterDigits, "filter-digits", def.FilterDigits, "filter attenuation at Kmax in decimal digits")
	fs.IntVar(&fc.FilterDegree, "filter-degree", def.FilterDegree, "filter degree p")
	fs.Float64Var(&fc.PhaseLimit, "phase-limit", def.PhaseLimit, "reject phases above this limit (0 disables)")
	fs.UintVar(&fc.Precision, "prec", def.Precision, "extended precision in bits")
	fs.IntVar(&fc.Workers, "workers", def.Workers, "row workers (0 = GOMAXPROCS)")
	fs.StringVar(&fc.Tables, "tables", def.Tables, "YAML table file (default: periodic tables)")
	fs.StringVar(&fc.Output, "output", def.Output, "write the matrix as YAML here ('-' for stdout)")
	fs.StringVar(&fc.LogLevel, "log-level", def.LogLevel, "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	cfg := def
	if *cfgPath != "" {
		if err := loadFile(*cfgPath, &cfg); err != nil {
			return config{}, err
		}
	}
	if err := applyEnv(&cfg, getenv); err != nil {
		return config{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "points":
			cfg.Points = fc.Points
		case "interior":
			cfg.Interior = fc.Interior
		case "dt":
			cfg.DT = fc.DT
		case "dh":
			cfg.DH = fc.DH
		case "eta":
			cfg.Eta = fc.Eta
		case "ghost":
			cfg.GhostZone = fc.GhostZone
		case "filter-digits":
			cfg.FilterDigits = fc.FilterDigits
		case "filter-degree":
			cfg.FilterDegree = fc.FilterDegree
		case "phase-limit":
			cfg.PhaseLimit = fc.PhaseLimit
		case "prec":
			cfg.Precision = fc.Precision
		case "workers":
			cfg.Workers = fc.Workers
		case "tables":
			cfg.Tables = fc.Tables
		case "output":
			cfg.Output = fc.Output
		case "log-level":
			cfg.LogLevel = fc.LogLevel
		}
	})

	return cfg, cfg.validate()
}

func loadTables(cfg config) (*spectral.Tables, error) {
	if cfg.Tables == "" {
		return spectral.NewPeriodicTables(cfg.Points, cfg.Interior)
	}
	f, err := os.Open(cfg.Tables)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return spectral.Decode(f)
}

// writeSummary prints dimensions, max |entry| and the largest deviation of
// a row sum from 1 (zero for a scheme that preserves uniform fields).
func writeSummary(w io.Writer, evo *matrix.Dense, elapsed time.Duration) error {
	maxAbs, err := matrix.MaxAbs(evo)
	if err != nil {
		return err
	}
	ones := make([]complex128, evo.Cols())
	for j := range ones {
		ones[j] = 1
	}
	sums, err := matrix.MatVec(evo, ones)
	if err != nil {
		return err
	}
	var dev float64
	for _, s := range sums {
		dev = math.Max(dev, cmplx.Abs(s-1))
	}

	_, err = fmt.Fprintf(w, "rows: %d\ncols: %d\nmax_abs: %.17g\nrow_sum_deviation: %.3g\nelapsed: %s\n",
		evo.Rows(), evo.Cols(), maxAbs, dev, elapsed)

	return err
}

// matrixFile is the YAML layout of a written evolution matrix.
type matrixFile struct {
	Rows   int           `yaml:"rows"`
	Cols   int           `yaml:"cols"`
	DT     float64       `yaml:"dt"`
	DH     float64       `yaml:"dh"`
	Eta    float64       `yaml:"eta"`
	Matrix [][][]float64 `yaml:"matrix,flow"` // rows of [re, im]
}

func writeMatrix(w io.Writer, evo *matrix.Dense, cfg config) error {
	mf := matrixFile{Rows: evo.Rows(), Cols: evo.Cols(), DT: cfg.DT, DH: cfg.DH, Eta: cfg.Eta}
	mf.Matrix = make([][][]float64, evo.Rows())
	for i := range mf.Matrix {
		row, err := evo.Row(i)
		if err != nil {
			return err
		}
		mf.Matrix[i] = make([][]float64, len(row))
		for j, v := range row {
			mf.Matrix[i][j] = []float64{real(v), imag(v)}
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(mf); err != nil {
		return err
	}

	return enc.Close()
}
