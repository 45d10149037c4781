package integrators

import (
	"context"
	"fmt"
)

// Func is the right-hand side of an ODE system, dy/dt = f(t, y). It
// must not retain or mutate y.
type Func func(t float64, y []float64) []float64

// Options tunes the adaptive step controller.
type Options struct {
	RelTol      float64 // relative tolerance, default 1e-6
	AbsTol      float64 // absolute tolerance, default 1e-9
	InitialStep float64 // first step size, default span/1e3
	MaxStep     float64 // step cap, default span/50 (keeps dense output accurate)
	MaxSteps    int     // accepted-step limit, default 100000
}

// DefaultOptions returns the tolerances used when fields are left zero.
func DefaultOptions() Options {
	return Options{
		RelTol:   1e-6,
		AbsTol:   1e-9,
		MaxSteps: 100000,
	}
}

func (o Options) withDefaults(t0, tf float64) Options {
	d := DefaultOptions()
	if o.RelTol <= 0 {
		o.RelTol = d.RelTol
	}
	if o.AbsTol <= 0 {
		o.AbsTol = d.AbsTol
	}
	if o.MaxSteps <= 0 {
		o.MaxSteps = d.MaxSteps
	}
	if o.MaxStep <= 0 {
		o.MaxStep = (tf - t0) / 50
	}
	if o.InitialStep <= 0 {
		o.InitialStep = (tf - t0) * 1e-3
	}
	if o.InitialStep > o.MaxStep {
		o.InitialStep = o.MaxStep
	}
	return o
}

// Solver integrates an ODE system over a span, producing a dense
// solution. Implementations are adaptive; fixed grids are the caller's
// business via Solution sampling.
type Solver interface {
	Name() string
	Solve(ctx context.Context, f Func, t0, tf float64, y0 []float64, opts Options) (*Solution, error)
}

// DefaultMethod is the solver used when no method name is given.
// Reaction networks routinely span many decades of rate constants, so
// the default must be stiff-capable.
const DefaultMethod = "rosenbrock23"

// New returns the solver registered under name. An empty name selects
// DefaultMethod.
func New(name string) (Solver, error) {
	switch name {
	case "", DefaultMethod, "stiff":
		return NewRosenbrock23(), nil
	case "dopri5", "rk45":
		return NewDopri5(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
	}
}

// Methods lists the registered solver names.
func Methods() []string {
	return []string{"rosenbrock23", "dopri5"}
}
