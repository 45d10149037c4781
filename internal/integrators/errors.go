package integrators

import "errors"

var (
	// ErrUnknownMethod indicates an unregistered solver name.
	ErrUnknownMethod = errors.New("integrators: unknown method")

	// ErrStepUnderflow indicates the controller could not meet the
	// tolerance even at the smallest representable step.
	ErrStepUnderflow = errors.New("integrators: step size underflow")

	// ErrTooManySteps indicates the accepted-step budget ran out before
	// reaching the end of the span.
	ErrTooManySteps = errors.New("integrators: too many steps")

	// ErrUnstable indicates the state became NaN or Inf.
	ErrUnstable = errors.New("integrators: solution diverged (NaN or Inf)")

	// ErrBadSpan indicates tf <= t0 or a non-finite span.
	ErrBadSpan = errors.New("integrators: bad integration span")
)
