package integrators

import (
	"context"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Rosenbrock23 is a second-order L-stable Rosenbrock W-method with a
// third-order error estimator, suitable for stiff systems. Each step
// factorizes W = I - h*d*J once and back-substitutes three times; the
// Jacobian is approximated by forward differences.
type Rosenbrock23 struct {
	safety   float64
	minScale float64
	maxScale float64
}

func NewRosenbrock23() *Rosenbrock23 {
	return &Rosenbrock23{
		safety:   0.9,
		minScale: 0.2,
		maxScale: 5.0,
	}
}

func (r *Rosenbrock23) Name() string { return "rosenbrock23" }

var (
	rosD   = 1.0 / (2.0 + math.Sqrt2)
	rosE32 = 6.0 + math.Sqrt2
)

func (r *Rosenbrock23) Solve(ctx context.Context, f Func, t0, tf float64, y0 []float64, opts Options) (*Solution, error) {
	if err := checkSpan(t0, tf); err != nil {
		return nil, err
	}
	opts = opts.withDefaults(t0, tf)
	n := len(y0)

	y := make([]float64, n)
	copy(y, y0)
	t := t0
	h := opts.InitialStep

	f0 := f(t, y)
	if !finite(f0) {
		return nil, ErrUnstable
	}

	sol := newSolution(128, n)
	sol.append(t, y, f0)

	w := mat.NewDense(n, n, nil)
	var lu mat.LU
	rhs := make([]float64, n)
	ya := make([]float64, n)
	yNew := make([]float64, n)
	steps := 0

	jac := jacobian(f, t, y, f0)
	dfdt := timeDerivative(f, t, tf, y, f0)
	jacFresh := true

	for t < tf {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if steps >= opts.MaxSteps {
			return nil, ErrTooManySteps
		}
		if h > opts.MaxStep {
			h = opts.MaxStep
		}
		if t+h > tf {
			h = tf - t
		}
		if h <= math.SmallestNonzeroFloat64 || t+h == t {
			return nil, ErrStepUnderflow
		}

		if !jacFresh {
			jac = jacobian(f, t, y, f0)
			dfdt = timeDerivative(f, t, tf, y, f0)
			jacFresh = true
		}

		// W = I - h*d*J
		hd := h * rosD
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				v := -hd * jac.At(i, j)
				if i == j {
					v++
				}
				w.Set(i, j, v)
			}
		}
		lu.Factorize(w)

		for i := 0; i < n; i++ {
			rhs[i] = f0[i] + hd*dfdt[i]
		}
		k1, err := luSolve(&lu, rhs)
		if err != nil {
			h *= 0.5
			continue
		}

		for i := 0; i < n; i++ {
			ya[i] = y[i] + 0.5*h*k1[i]
		}
		f1 := f(t+0.5*h, ya)

		for i := 0; i < n; i++ {
			rhs[i] = f1[i] - k1[i]
		}
		k2, err := luSolve(&lu, rhs)
		if err != nil {
			h *= 0.5
			continue
		}
		for i := 0; i < n; i++ {
			k2[i] += k1[i]
		}

		for i := 0; i < n; i++ {
			yNew[i] = y[i] + h*k2[i]
		}
		f2 := f(t+h, yNew)
		if !finite(yNew) || !finite(f2) {
			return nil, ErrUnstable
		}

		for i := 0; i < n; i++ {
			rhs[i] = f2[i] - rosE32*(k2[i]-f1[i]) - 2*(k1[i]-f0[i]) + hd*dfdt[i]
		}
		k3, err := luSolve(&lu, rhs)
		if err != nil {
			h *= 0.5
			continue
		}

		errNorm := 0.0
		for i := 0; i < n; i++ {
			e := (h / 6.0) * (k1[i] - 2*k2[i] + k3[i])
			sc := opts.AbsTol + opts.RelTol*math.Max(math.Abs(y[i]), math.Abs(yNew[i]))
			errNorm += (e / sc) * (e / sc)
		}
		errNorm = math.Sqrt(errNorm / float64(n))

		if errNorm <= 1 {
			t += h
			copy(y, yNew)
			f0 = f2
			sol.append(t, y, f0)
			steps++
			jacFresh = false
		}

		scale := r.maxScale
		if errNorm > 0 {
			scale = r.safety * math.Pow(errNorm, -1.0/3.0)
		}
		h *= math.Min(r.maxScale, math.Max(r.minScale, scale))
	}

	return sol, nil
}

func luSolve(lu *mat.LU, rhs []float64) ([]float64, error) {
	n := len(rhs)
	var x mat.VecDense
	if err := lu.SolveVecTo(&x, false, mat.NewVecDense(n, rhs)); err != nil {
		return nil, err
	}
	out := make([]float64, n)
	copy(out, x.RawVector().Data)
	return out, nil
}

// jacobian approximates df/dy at (t, y) by forward differences, with f0
// = f(t, y) already evaluated.
func jacobian(f Func, t float64, y, f0 []float64) *mat.Dense {
	n := len(y)
	jac := mat.NewDense(n, n, nil)
	yp := make([]float64, n)
	copy(yp, y)
	for j := 0; j < n; j++ {
		dy := fdStep(y[j])
		yp[j] = y[j] + dy
		fj := f(t, yp)
		yp[j] = y[j]
		for i := 0; i < n; i++ {
			jac.Set(i, j, (fj[i]-f0[i])/dy)
		}
	}
	return jac
}

// timeDerivative approximates df/dt at (t, y) by a forward difference,
// staying inside the span.
func timeDerivative(f Func, t, tf float64, y, f0 []float64) []float64 {
	dt := fdStep(t)
	if t+dt > tf {
		dt = -dt
	}
	ft := f(t+dt, y)
	out := make([]float64, len(y))
	for i := range out {
		out[i] = (ft[i] - f0[i]) / dt
	}
	return out
}

func fdStep(v float64) float64 {
	const sqrtEps = 1.4901161193847656e-08
	return sqrtEps * math.Max(math.Abs(v), 1.0)
}
