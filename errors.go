// SPDX-License-Identifier: MIT

package gramfe

import "errors"

// Sentinel errors. Context is added as fmt.Errorf("Op: param: %w", ErrX)
// and callers match with errors.Is.
var (
	// ErrInvalidParameter indicates a non-finite or out-of-domain dt, dh or eta.
	ErrInvalidParameter = errors.New("gramfe: invalid parameter")

	// ErrOutputSize indicates an output buffer whose length is not M·N.
	ErrOutputSize = errors.New("gramfe: output buffer has wrong length")

	// ErrPhaseTooLarge indicates a phase beyond the configured phase limit
	// on a wavenumber the filter does not suppress.
	ErrPhaseTooLarge = errors.New("gramfe: phase exceeds limit")

	// ErrNilTables indicates that New was given nil tables.
	ErrNilTables = errors.New("gramfe: nil tables")
)
