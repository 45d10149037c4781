package kinetics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Scheme is a stoichiometric description of a reaction network. Rows of
// A are species, columns are reactions; a negative entry means the
// species is consumed, a positive one produced. IsHalfEquilibrium marks
// reaction columns that model one direction of a fast reversible pair.
//
// A Scheme is immutable after construction and safe for concurrent
// reads.
type Scheme struct {
	Compounds         []string
	A                 *mat.Dense
	IsHalfEquilibrium []bool
}

// NewScheme validates and assembles a scheme. The compounds slice may
// be nil, in which case placeholder names are generated.
func NewScheme(compounds []string, a *mat.Dense, halfEquilibrium []bool) (*Scheme, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: nil stoichiometric matrix", ErrEmptyScheme)
	}
	rows, cols := a.Dims()
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("%w: %dx%d stoichiometric matrix", ErrEmptyScheme, rows, cols)
	}
	if compounds == nil {
		compounds = make([]string, rows)
		for i := range compounds {
			compounds[i] = fmt.Sprintf("S%d", i)
		}
	}
	if len(compounds) != rows {
		return nil, fmt.Errorf("%w: %d compounds for %d matrix rows", ErrDimensionMismatch, len(compounds), rows)
	}
	if halfEquilibrium == nil {
		halfEquilibrium = make([]bool, cols)
	}
	if len(halfEquilibrium) != cols {
		return nil, fmt.Errorf("%w: %d half-equilibrium flags for %d reactions", ErrDimensionMismatch, len(halfEquilibrium), cols)
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v := a.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: A[%d,%d]", ErrNotFinite, i, j)
			}
		}
	}
	return &Scheme{
		Compounds:         compounds,
		A:                 a,
		IsHalfEquilibrium: halfEquilibrium,
	}, nil
}

// NumSpecies returns the number of rows of A.
func (s *Scheme) NumSpecies() int {
	r, _ := s.A.Dims()
	return r
}

// NumReactions returns the number of columns of A.
func (s *Scheme) NumReactions() int {
	_, c := s.A.Dims()
	return c
}
