package sim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/kinsim/internal/diag"
	"github.com/san-kum/kinsim/internal/integrators"
)

// NumHalfLives is how many characteristic half-lives the auto-estimated
// span covers.
const NumHalfLives = 10.0

var (
	// ErrBadInitialState indicates an empty or non-finite y0.
	ErrBadInitialState = errors.New("sim: bad initial state")
)

// Rater is the rate-function contract the simulator needs: evaluate
// dy/dt at one instant. kinetics.RateFunc satisfies it.
type Rater interface {
	Eval(t float64, y []float64) []float64
}

// RateConstants is optionally implemented by rate functions that can
// expose their effective rate constant vector. It is used only to
// estimate an integration span; any Rater without it gets the unit
// default.
type RateConstants interface {
	K() []float64
}

// Options configures a simulation run.
type Options struct {
	// TSpan overrides the auto-estimated integration window (t0, tf).
	TSpan *[2]float64

	// Method names the adaptive ODE algorithm; empty selects the
	// stiff-capable default.
	Method string

	// Solver tunes tolerances and step limits.
	Solver integrators.Options

	// Diag receives the span announcement and other observational
	// diagnostics. Nil discards them.
	Diag diag.Sink
}

// Simulate integrates dydt from y0 and returns the concentration and
// rate trajectories. Solver failure is fatal for the call; there is no
// retry or partial result.
func Simulate(ctx context.Context, dydt Rater, y0 []float64, opts Options) (*Trajectory, *RateTrajectory, error) {
	if len(y0) == 0 {
		return nil, nil, fmt.Errorf("%w: empty y0", ErrBadInitialState)
	}
	for i, v := range y0 {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, nil, fmt.Errorf("%w: y0[%d] is not finite", ErrBadInitialState, i)
		}
	}
	sink := opts.Diag
	if sink == nil {
		sink = diag.Nop()
	}

	span := [2]float64{}
	if opts.TSpan != nil {
		span = *opts.TSpan
	} else {
		span = estimateSpan(dydt, y0, sink)
		sink.Info("estimated simulation time span", "t0", span[0], "tf", span[1])
	}

	solver, err := integrators.New(opts.Method)
	if err != nil {
		return nil, nil, err
	}

	sol, err := solver.Solve(ctx, dydt.Eval, span[0], span[1], y0, opts.Solver)
	if err != nil {
		return nil, nil, fmt.Errorf("sim: %s failed on span [%g, %g]: %w", solver.Name(), span[0], span[1], err)
	}

	y := &Trajectory{sol: sol}
	return y, &RateTrajectory{dydt: dydt, y: y}, nil
}

// EstimateSpan targets NumHalfLives half-lives of the slowest relevant
// process. The half-life candidates correspond to zeroth-, first- and
// second-order kinetics; their max is a deliberate upper bound so the
// window is never too short regardless of reaction order. Without rate
// constant metadata the half-life defaults to 1.
func EstimateSpan(dydt Rater, y0 []float64) [2]float64 {
	return estimateSpan(dydt, y0, diag.Nop())
}

func estimateSpan(dydt Rater, y0 []float64, sink diag.Sink) [2]float64 {
	halflife := 1.0
	if rk, ok := dydt.(RateConstants); ok {
		if hl, ok := halflifeEstimate(rk.K(), y0); ok {
			halflife = hl
		} else {
			sink.Info("rate constant metadata unusable, using unit half-life", "k", rk.K())
		}
	}
	return [2]float64{0, NumHalfLives * halflife}
}

func halflifeEstimate(k, y0 []float64) (float64, bool) {
	if len(k) == 0 {
		return 0, false
	}
	minK := k[0]
	for _, v := range k[1:] {
		minK = math.Min(minK, v)
	}
	if minK <= 0 {
		return 0, false
	}

	maxY0 := 0.0
	minNonzero := math.Inf(1)
	for _, v := range y0 {
		maxY0 = math.Max(maxY0, v)
		if v != 0 {
			minNonzero = math.Min(minNonzero, math.Abs(v))
		}
	}

	candidate := math.Max(maxY0/2, math.Ln2) // zeroth- and first-order
	if !math.IsInf(minNonzero, 1) {
		candidate = math.Max(candidate, 1/minNonzero) // second-order
	}
	return candidate / minK, true
}
