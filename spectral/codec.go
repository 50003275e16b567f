// SPDX-License-Identifier: MIT

package spectral

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/gramfe/matrix"
)

// tableFile is the YAML layout of a table set. Each table is a list of rows,
// each row a list of [re, im] pairs.
type tableFile struct {
	Width       int           `yaml:"width"`
	PatchWidth  int           `yaml:"patch_width"`
	OutputWidth int           `yaml:"output_width"`
	Forward     [][][]float64 `yaml:"forward,flow"`
	Inverse     [][][]float64 `yaml:"inverse,flow"`
	Extend      [][][]float64 `yaml:"extend,flow"`
}

// Encode writes t as YAML. Floats are written in shortest round-trip form,
// so Decode(Encode(t)) reproduces every entry (the sign of a zero aside).
func Encode(w io.Writer, t *Tables) error {
	if t == nil {
		return fmt.Errorf("Encode: %w", ErrNilTable)
	}
	f := tableFile{
		Width:       t.w,
		PatchWidth:  t.n,
		OutputWidth: t.m,
		Forward:     toRows(t.forward),
		Inverse:     toRows(t.inverse),
		Extend:      toRows(t.extend),
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&f); err != nil {
		return fmt.Errorf("Encode: %w", err)
	}

	return enc.Close()
}

// Decode reads a YAML table set and validates it through NewTables.
// The declared width/patch_width/output_width must agree with the data.
func Decode(r io.Reader) (*Tables, error) {
	var f tableFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("Decode: %v: %w", err, ErrDecode)
	}

	forward, err := fromRows("forward", f.Forward, f.Width, f.Width)
	if err != nil {
		return nil, err
	}
	inverse, err := fromRows("inverse", f.Inverse, f.OutputWidth, f.Width)
	if err != nil {
		return nil, err
	}
	extend, err := fromRows("extend", f.Extend, f.Width, f.PatchWidth)
	if err != nil {
		return nil, err
	}

	return NewTables(forward, inverse, extend)
}

// toRows converts a Dense into [row][col][re, im].
func toRows(d *matrix.Dense) [][][]float64 {
	rows := make([][][]float64, d.Rows())
	for i := range rows {
		row, _ := d.Row(i)
		rows[i] = make([][]float64, len(row))
		for j, v := range row {
			rows[i][j] = []float64{real(v), imag(v)}
		}
	}

	return rows
}

// fromRows converts [row][col][re, im] into an r×c Dense.
func fromRows(name string, rows [][][]float64, r, c int) (*matrix.Dense, error) {
	if r <= 0 || c <= 0 || len(rows) != r {
		return nil, fmt.Errorf("Decode: %s: want %d rows, got %d: %w", name, r, len(rows), ErrDecode)
	}
	buf := make([]complex128, 0, r*c)
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("Decode: %s row %d: want %d entries, got %d: %w", name, i, c, len(row), ErrDecode)
		}
		for j, pair := range row {
			if len(pair) != 2 {
				return nil, fmt.Errorf("Decode: %s(%d,%d): want [re, im]: %w", name, i, j, ErrDecode)
			}
			buf = append(buf, complex(pair[0], pair[1]))
		}
	}
	d, err := matrix.NewDenseFrom(r, c, buf)
	if err != nil {
		return nil, fmt.Errorf("Decode: %s: %v: %w", name, err, ErrNonFinite)
	}

	return d, nil
}
