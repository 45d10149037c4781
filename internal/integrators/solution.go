package integrators

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Solution is a dense ODE solution: the accepted solver steps plus a
// cubic Hermite interpolant between them, queryable at arbitrary times
// within [TMin, TMax]. Queries outside the span extrapolate the nearest
// segment; the result there is solver-defined, not guaranteed.
//
// A Solution is immutable and safe for concurrent reads.
type Solution struct {
	ts []float64   // accepted step times, strictly increasing
	ys [][]float64 // state at each time
	fs [][]float64 // derivative at each time
}

func newSolution(capacity, dim int) *Solution {
	return &Solution{
		ts: make([]float64, 0, capacity),
		ys: make([][]float64, 0, capacity),
		fs: make([][]float64, 0, capacity),
	}
}

func (s *Solution) append(t float64, y, f []float64) {
	yc := make([]float64, len(y))
	copy(yc, y)
	fc := make([]float64, len(f))
	copy(fc, f)
	s.ts = append(s.ts, t)
	s.ys = append(s.ys, yc)
	s.fs = append(s.fs, fc)
}

// TMin returns the start of the solved interval.
func (s *Solution) TMin() float64 { return s.ts[0] }

// TMax returns the end of the solved interval.
func (s *Solution) TMax() float64 { return s.ts[len(s.ts)-1] }

// Steps returns the number of accepted solver steps.
func (s *Solution) Steps() int { return len(s.ts) - 1 }

// Dim returns the state dimension.
func (s *Solution) Dim() int { return len(s.ys[0]) }

// At evaluates the solution at a single time.
func (s *Solution) At(t float64) []float64 {
	seg := s.segment(t)
	return s.hermite(seg, t)
}

// Over evaluates the solution at every time in times, returning a
// matrix with one row per state component and one column per time. An
// empty times slice yields an empty matrix.
func (s *Solution) Over(times []float64) *mat.Dense {
	if len(times) == 0 {
		return &mat.Dense{}
	}
	out := mat.NewDense(s.Dim(), len(times), nil)
	for j, t := range times {
		y := s.At(t)
		for i, v := range y {
			out.Set(i, j, v)
		}
	}
	return out
}

// segment returns the index of the step interval containing t, clamped
// to the solved range.
func (s *Solution) segment(t float64) int {
	n := len(s.ts)
	// first index with ts[i] > t
	i := sort.Search(n, func(i int) bool { return s.ts[i] > t })
	seg := i - 1
	if seg < 0 {
		seg = 0
	}
	if seg > n-2 {
		seg = n - 2
	}
	return seg
}

// hermite evaluates the cubic Hermite interpolant on segment seg.
func (s *Solution) hermite(seg int, t float64) []float64 {
	t0, t1 := s.ts[seg], s.ts[seg+1]
	y0, y1 := s.ys[seg], s.ys[seg+1]
	f0, f1 := s.fs[seg], s.fs[seg+1]
	h := t1 - t0
	u := (t - t0) / h

	h00 := (1 + 2*u) * (1 - u) * (1 - u)
	h10 := u * (1 - u) * (1 - u)
	h01 := u * u * (3 - 2*u)
	h11 := u * u * (u - 1)

	y := make([]float64, len(y0))
	for i := range y {
		y[i] = h00*y0[i] + h10*h*f0[i] + h01*y1[i] + h11*h*f1[i]
	}
	return y
}
