package mining

import "errors"

var (
	// ErrInvalidConfig is returned before any scanning when a threshold is out of range.
	ErrInvalidConfig = errors.New("invalid mining configuration")

	// ErrMissingSupport means a support lookup missed during rule scoring.
	// The lattice builder records every scanned set, so this is always a defect
	// in lattice construction and never a zero-support case.
	ErrMissingSupport = errors.New("support table is missing an itemset")

	// ErrZeroSupport means a subset of a frequent itemset was recorded with zero support.
	// Anti-monotonicity rules this out for any lattice built with a positive min support.
	ErrZeroSupport = errors.New("zero support for a subset of a frequent itemset")
)
