package kinetics

import (
	"fmt"
	"math"

	"github.com/san-kum/kinsim/internal/diag"
	"gonum.org/v1/gonum/mat"
)

// DefaultEquilibriumFactor is how many times faster than the fastest
// ordinary reaction the half-equilibria are forced to relax.
const DefaultEquilibriumFactor = 1.0e3

// Options configures rate function construction.
type Options struct {
	// EquilibriumFactor scales half-equilibrium rate constants relative
	// to the fastest ordinary reaction. Zero selects
	// DefaultEquilibriumFactor.
	EquilibriumFactor float64

	// Diag receives construction diagnostics. Nil discards them.
	Diag diag.Sink
}

// RateFunc is a mass-action rate law bound to a stoichiometric matrix
// and a vector of effective rate constants. It is immutable and safe
// for concurrent use.
type RateFunc struct {
	a         *mat.Dense
	exponents *mat.Dense // reactions x species, max(0, -A^T)
	k         []float64
}

// NewRateFunc builds the right-hand side dy/dt = A·r(y) for the scheme,
// where r_j = k_j * Π_i y_i^max(0,-A_ij). The caller's k is copied,
// never mutated.
//
// When the scheme mixes half-equilibrium and ordinary reactions, the
// half-equilibrium constants are scaled by
// ef * max(k ordinary) / min(k half-equilibrium) so every modeled
// equilibrium relaxes at least ef times faster than the fastest
// ordinary step. The thermodynamic ratio of a flagged pair is unchanged
// since both directions receive the same factor. If all reactions are
// equilibria, or none are, k is used as-is.
func NewRateFunc(scheme *Scheme, k []float64, opts Options) (*RateFunc, error) {
	if scheme == nil {
		return nil, fmt.Errorf("%w: nil scheme", ErrEmptyScheme)
	}
	nSpecies, nReactions := scheme.A.Dims()
	if len(k) != nReactions {
		return nil, fmt.Errorf("%w: %d rate constants for %d reactions", ErrDimensionMismatch, len(k), nReactions)
	}
	for j, v := range k {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: k[%d]", ErrNotFinite, j)
		}
	}
	ef := opts.EquilibriumFactor
	if ef == 0 {
		ef = DefaultEquilibriumFactor
	}
	if ef < 0 {
		return nil, fmt.Errorf("%w: got %g", ErrBadFactor, ef)
	}
	sink := opts.Diag
	if sink == nil {
		sink = diag.Nop()
	}

	kAdj := make([]float64, len(k))
	copy(kAdj, k)

	adjustEquilibria(scheme.IsHalfEquilibrium, kAdj, ef, sink)

	exponents := mat.NewDense(nReactions, nSpecies, nil)
	for j := 0; j < nReactions; j++ {
		for i := 0; i < nSpecies; i++ {
			if c := scheme.A.At(i, j); c < 0 {
				exponents.Set(j, i, -c)
			}
		}
	}

	return &RateFunc{
		a:         scheme.A,
		exponents: exponents,
		k:         kAdj,
	}, nil
}

// adjustEquilibria applies one global acceleration factor to all
// half-equilibrium entries of kAdj, in place. Multiple disjoint
// equilibrium pairs share the same factor.
func adjustEquilibria(isHalfEq []bool, kAdj []float64, ef float64, sink diag.Sink) {
	minEq, maxOrd := math.Inf(1), math.Inf(-1)
	anyEq, anyOrd := false, false
	for j, eq := range isHalfEq {
		if eq {
			anyEq = true
			minEq = math.Min(minEq, kAdj[j])
		} else {
			anyOrd = true
			maxOrd = math.Max(maxOrd, kAdj[j])
		}
	}
	if !anyEq || !anyOrd {
		return
	}

	factor := ef * maxOrd / minEq
	for j, eq := range isHalfEq {
		if eq {
			kAdj[j] *= factor
		}
	}

	minEqAdj := math.Inf(1)
	for j, eq := range isHalfEq {
		if eq {
			minEqAdj = math.Min(minEqAdj, kAdj[j])
		}
	}
	if minEqAdj < maxOrd {
		sink.Warn("slowest half-equilibrium is still slower than the fastest ordinary reaction",
			"min_equilibrium_k", minEqAdj, "max_ordinary_k", maxOrd)
	}
}

// Eval computes dy/dt at time t for state y. The time argument is
// unused by mass-action kinetics but kept so RateFunc satisfies the
// solver's right-hand-side shape. Zero concentrations raised to a
// positive stoichiometric exponent contribute a zero rate; there is no
// division anywhere.
func (f *RateFunc) Eval(t float64, y []float64) []float64 {
	_ = t
	nReactions, nSpecies := f.exponents.Dims()
	r := make([]float64, nReactions)
	for j := 0; j < nReactions; j++ {
		rate := f.k[j]
		for i := 0; i < nSpecies; i++ {
			switch e := f.exponents.At(j, i); e {
			case 0:
				// not a reactant
			case 1:
				rate *= y[i]
			default:
				rate *= math.Pow(y[i], e)
			}
		}
		r[j] = rate
	}

	var dy mat.VecDense
	dy.MulVec(f.a, mat.NewVecDense(nReactions, r))
	return dy.RawVector().Data
}

// K returns a copy of the effective rate constants actually used,
// after any half-equilibrium adjustment.
func (f *RateFunc) K() []float64 {
	k := make([]float64, len(f.k))
	copy(k, f.k)
	return k
}

// NumSpecies returns the state dimension of the rate function.
func (f *RateFunc) NumSpecies() int {
	r, _ := f.a.Dims()
	return r
}

// NumReactions returns the number of reaction columns.
func (f *RateFunc) NumReactions() int {
	_, c := f.a.Dims()
	return c
}
