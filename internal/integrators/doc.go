// Package integrators provides adaptive ODE solvers with dense output.
//
// Two methods are registered:
//
//   - [Rosenbrock23]: L-stable implicit W-method, the stiff-capable
//     default
//   - [Dopri5]: explicit Dormand-Prince 5(4) for non-stiff systems
//
// Both return a [Solution], a continuously queryable object backed by
// cubic Hermite interpolation over the accepted steps. Step size
// selection is delegated entirely to the method; callers choose only
// tolerances via [Options].
package integrators
