// Package kinetics turns a stoichiometric reaction scheme and a vector
// of rate constants into a mass-action ODE right-hand side.
//
// The central types are:
//
//   - [Scheme]: species × reactions stoichiometric matrix with
//     half-equilibrium flags
//   - [RateFunc]: the synthesized rate law dy/dt = A·r(y), carrying its
//     effective rate constants as inspectable state
//
// # Half-equilibria
//
// Reactions flagged as half-equilibria approximate instantaneous
// equilibration: when ordinary reactions are present their rate
// constants are accelerated by a common factor so the equilibria relax
// on a much faster timescale (see [NewRateFunc]).
//
// # Purity
//
// Construction copies all caller-owned vectors; evaluation mutates
// nothing. Diagnostics go to an injected [diag.Sink], never to global
// logging.
package kinetics
