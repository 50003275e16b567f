// SPDX-License-Identifier: MIT

// Package spectral holds the read-only Gram/Fourier tables consumed by the
// evolution-matrix builder and the I/O around them.
//
// Tables:
//
//	F   (W×W) forward transform of the extended domain,
//	F⁻¹ (M×W) inverse transform restricted to the M output rows,
//	E   (W×N) extension of an N-point patch (with halo) to W points,
//
// with 0 < M < N ≤ W. A *Tables value is validated once by NewTables and
// never mutated afterwards, so it may be shared by any number of goroutines
// without locking.
//
// Sources:
//   - NewTables wraps externally generated tables.
//   - NewPeriodicTables builds a reference set with W = N and E = I from a
//     plain DFT (gonum dsp/fourier). It is a fixture for tests and demos,
//     not a Gram/Fourier extension.
//   - Decode / Encode read and write tables as YAML.
package spectral
