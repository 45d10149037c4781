// Package sim drives the time integration of a rate function into
// queryable trajectories.
//
// [Simulate] takes any [Rater] (normally a kinetics.RateFunc), picks or
// accepts an integration span, runs an adaptive stiff-aware solver with
// dense output and returns a ([Trajectory], [RateTrajectory]) pair.
// Both are pure over their captured state; repeated simulations are
// independent and may run concurrently.
package sim
