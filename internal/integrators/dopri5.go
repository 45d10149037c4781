package integrators

import (
	"context"
	"math"
)

// Dormand-Prince 5(4) coefficients.
var (
	dpA2 = 1.0 / 5.0
	dpA3 = 3.0 / 10.0
	dpA4 = 4.0 / 5.0
	dpA5 = 8.0 / 9.0

	dpB21 = 1.0 / 5.0
	dpB31 = 3.0 / 40.0
	dpB32 = 9.0 / 40.0
	dpB41 = 44.0 / 45.0
	dpB42 = -56.0 / 15.0
	dpB43 = 32.0 / 9.0
	dpB51 = 19372.0 / 6561.0
	dpB52 = -25360.0 / 2187.0
	dpB53 = 64448.0 / 6561.0
	dpB54 = -212.0 / 729.0
	dpB61 = 9017.0 / 3168.0
	dpB62 = -355.0 / 33.0
	dpB63 = 46732.0 / 5247.0
	dpB64 = 49.0 / 176.0
	dpB65 = -5103.0 / 18656.0

	dpC1 = 35.0 / 384.0
	dpC3 = 500.0 / 1113.0
	dpC4 = 125.0 / 192.0
	dpC5 = -2187.0 / 6784.0
	dpC6 = 11.0 / 84.0

	dpE1 = dpC1 - 5179.0/57600.0
	dpE3 = dpC3 - 7571.0/16695.0
	dpE4 = dpC4 - 393.0/640.0
	dpE5 = dpC5 - -92097.0/339200.0
	dpE6 = dpC6 - 187.0/2100.0
	dpE7 = -1.0 / 40.0
)

// Dopri5 is the explicit Dormand-Prince 5(4) pair with adaptive step
// control. Good for non-stiff systems; stiff reaction networks should
// use Rosenbrock23 instead.
type Dopri5 struct {
	safety   float64
	minScale float64
	maxScale float64
}

func NewDopri5() *Dopri5 {
	return &Dopri5{
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
	}
}

func (d *Dopri5) Name() string { return "dopri5" }

func (d *Dopri5) Solve(ctx context.Context, f Func, t0, tf float64, y0 []float64, opts Options) (*Solution, error) {
	if err := checkSpan(t0, tf); err != nil {
		return nil, err
	}
	opts = opts.withDefaults(t0, tf)
	n := len(y0)

	y := make([]float64, n)
	copy(y, y0)
	t := t0
	h := opts.InitialStep

	k1 := f(t, y)
	if !finite(k1) {
		return nil, ErrUnstable
	}

	sol := newSolution(128, n)
	sol.append(t, y, k1)

	stage := make([]float64, n)
	yNew := make([]float64, n)
	steps := 0

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

		for i := 0; i < n; i++ {
			stage[i] = y[i] + h*dpB21*k1[i]
		}
		k2 := f(t+dpA2*h, stage)

		for i := 0; i < n; i++ {
			stage[i] = y[i] + h*(dpB31*k1[i]+dpB32*k2[i])
		}
		k3 := f(t+dpA3*h, stage)

		for i := 0; i < n; i++ {
			stage[i] = y[i] + h*(dpB41*k1[i]+dpB42*k2[i]+dpB43*k3[i])
		}
		k4 := f(t+dpA4*h, stage)

		for i := 0; i < n; i++ {
			stage[i] = y[i] + h*(dpB51*k1[i]+dpB52*k2[i]+dpB53*k3[i]+dpB54*k4[i])
		}
		k5 := f(t+dpA5*h, stage)

		for i := 0; i < n; i++ {
			stage[i] = y[i] + h*(dpB61*k1[i]+dpB62*k2[i]+dpB63*k3[i]+dpB64*k4[i]+dpB65*k5[i])
		}
		k6 := f(t+h, stage)

		for i := 0; i < n; i++ {
			yNew[i] = y[i] + h*(dpC1*k1[i]+dpC3*k3[i]+dpC4*k4[i]+dpC5*k5[i]+dpC6*k6[i])
		}
		k7 := f(t+h, yNew)

		if !finite(yNew) || !finite(k7) {
			return nil, ErrUnstable
		}

		errNorm := 0.0
		for i := 0; i < n; i++ {
			e := h * (dpE1*k1[i] + dpE3*k3[i] + dpE4*k4[i] + dpE5*k5[i] + dpE6*k6[i] + dpE7*k7[i])
			sc := opts.AbsTol + opts.RelTol*math.Max(math.Abs(y[i]), math.Abs(yNew[i]))
			errNorm += (e / sc) * (e / sc)
		}
		errNorm = math.Sqrt(errNorm / float64(n))

		if errNorm <= 1 {
			t += h
			copy(y, yNew)
			k1 = k7 // first-same-as-last
			sol.append(t, y, k1)
			steps++
		}

		scale := d.maxScale
		if errNorm > 0 {
			scale = d.safety * math.Pow(errNorm, -0.2)
		}
		h *= math.Min(d.maxScale, math.Max(d.minScale, scale))
	}

	return sol, nil
}

func checkSpan(t0, tf float64) error {
	if math.IsNaN(t0) || math.IsNaN(tf) || math.IsInf(t0, 0) || math.IsInf(tf, 0) || tf <= t0 {
		return ErrBadSpan
	}
	return nil
}

func finite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
