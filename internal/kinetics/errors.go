package kinetics

import "errors"

// Domain errors for scheme and rate function construction.
var (
	// ErrDimensionMismatch indicates A, the half-equilibrium flags and k
	// disagree on the number of species or reactions.
	ErrDimensionMismatch = errors.New("kinetics: dimension mismatch")

	// ErrNotFinite indicates a NaN or Inf entry in a caller-supplied
	// matrix or vector.
	ErrNotFinite = errors.New("kinetics: non-finite entry")

	// ErrEmptyScheme indicates a scheme without species or reactions.
	ErrEmptyScheme = errors.New("kinetics: empty scheme")

	// ErrBadFactor indicates a non-positive equilibrium acceleration
	// factor.
	ErrBadFactor = errors.New("kinetics: equilibrium factor must be positive")
)
