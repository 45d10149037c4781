package sim

import (
	"github.com/san-kum/kinsim/internal/integrators"
	"gonum.org/v1/gonum/mat"
)

// Trajectory is a continuously queryable concentration-over-time
// function, valid within [TMin, TMax]. Queries outside the window
// extrapolate and carry no accuracy guarantee.
type Trajectory struct {
	sol *integrators.Solution
}

// TMin returns the start of the valid time window.
func (tr *Trajectory) TMin() float64 { return tr.sol.TMin() }

// TMax returns the end of the valid time window.
func (tr *Trajectory) TMax() float64 { return tr.sol.TMax() }

// Steps returns the number of accepted solver steps behind the
// trajectory.
func (tr *Trajectory) Steps() int { return tr.sol.Steps() }

// At returns the state vector at a single time.
func (tr *Trajectory) At(t float64) []float64 { return tr.sol.At(t) }

// Over samples the trajectory at every time in times: one row per
// species, one column per time.
func (tr *Trajectory) Over(times []float64) *mat.Dense { return tr.sol.Over(times) }

// RateTrajectory is the instantaneous rate dy/dt along a Trajectory.
// The underlying rate function is only guaranteed to be vectorized over
// species at a single instant, so Over evaluates it once per time point
// and stacks the results; At is the single direct call. The two entry
// points replace guess-and-fallback dispatch on the argument shape.
type RateTrajectory struct {
	dydt Rater
	y    *Trajectory
}

// TMin returns the start of the valid time window.
func (rt *RateTrajectory) TMin() float64 { return rt.y.TMin() }

// TMax returns the end of the valid time window.
func (rt *RateTrajectory) TMax() float64 { return rt.y.TMax() }

// At returns dy/dt at a single time.
func (rt *RateTrajectory) At(t float64) []float64 {
	return rt.dydt.Eval(t, rt.y.At(t))
}

// Over samples dy/dt at every time in times, shaped like
// Trajectory.Over. An empty times slice yields an empty matrix.
func (rt *RateTrajectory) Over(times []float64) *mat.Dense {
	if len(times) == 0 {
		return &mat.Dense{}
	}
	out := mat.NewDense(rt.y.sol.Dim(), len(times), nil)
	for j, t := range times {
		dy := rt.At(t)
		for i, v := range dy {
			out.Set(i, j, v)
		}
	}
	return out
}
