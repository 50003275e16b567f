// SPDX-License-Identifier: MIT

package spectral

import "errors"

var (
	// ErrNilTable indicates that one of the three tables was nil.
	ErrNilTable = errors.New("spectral: nil table")

	// ErrBadShape indicates table shapes violating 0 < M < N ≤ W or
	// mutually inconsistent dimensions.
	ErrBadShape = errors.New("spectral: inconsistent table shapes")

	// ErrNonFinite indicates a NaN or ±Inf table entry.
	ErrNonFinite = errors.New("spectral: non-finite table entry")

	// ErrDecode indicates a malformed table file.
	ErrDecode = errors.New("spectral: malformed table file")
)
