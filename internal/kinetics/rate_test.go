package kinetics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// reversiblePair is the scheme for A <=> B written as two one-way
// columns.
func reversiblePair(halfEq bool) *Scheme {
	a := mat.NewDense(2, 2, []float64{
		-1, 1,
		1, -1,
	})
	s, err := NewScheme([]string{"A", "B"}, a, []bool{halfEq, halfEq})
	if err != nil {
		panic(err)
	}
	return s
}

func TestRateFunc_ReversiblePair(t *testing.T) {
	f, err := NewRateFunc(reversiblePair(false), []float64{1, 1}, Options{})
	if err != nil {
		t.Fatalf("NewRateFunc: %v", err)
	}

	cases := []struct {
		y    []float64
		want []float64
	}{
		{[]float64{1, 0}, []float64{-1, 1}},
		{[]float64{0, 1}, []float64{1, -1}},
		{[]float64{0.5, 0.5}, []float64{0, 0}},
		{[]float64{0.75, 0.25}, []float64{-0.5, 0.5}},
	}
	for _, tc := range cases {
		got := f.Eval(0, tc.y)
		for i := range tc.want {
			if math.Abs(got[i]-tc.want[i]) > 1e-12 {
				t.Errorf("Eval(%v) = %v, want %v", tc.y, got, tc.want)
				break
			}
		}
	}
}

func TestRateFunc_MassConservation(t *testing.T) {
	// A -> B -> C, every column sums to zero, so must dy/dt.
	a := mat.NewDense(3, 2, []float64{
		-1, 0,
		1, -1,
		0, 1,
	})
	s, err := NewScheme([]string{"A", "B", "C"}, a, nil)
	if err != nil {
		t.Fatalf("NewScheme: %v", err)
	}
	f, err := NewRateFunc(s, []float64{2, 0.3}, Options{})
	if err != nil {
		t.Fatalf("NewRateFunc: %v", err)
	}

	states := [][]float64{
		{1, 0, 0},
		{0.2, 0.5, 0.3},
		{0, 0, 1},
		{3, 2, 1},
	}
	for _, y := range states {
		dy := f.Eval(0, y)
		sum := 0.0
		for _, v := range dy {
			sum += v
		}
		if math.Abs(sum) > 1e-12 {
			t.Errorf("sum(dydt(%v)) = %g, want 0", y, sum)
		}
	}
}

func TestRateFunc_SecondOrder(t *testing.T) {
	// 2A -> B: rate = k*a^2, dA/dt = -2k*a^2.
	a := mat.NewDense(2, 1, []float64{-2, 1})
	s, err := NewScheme([]string{"A", "B"}, a, nil)
	if err != nil {
		t.Fatalf("NewScheme: %v", err)
	}
	f, err := NewRateFunc(s, []float64{3}, Options{})
	if err != nil {
		t.Fatalf("NewRateFunc: %v", err)
	}

	dy := f.Eval(0, []float64{0.5, 0})
	wantRate := 3 * 0.5 * 0.5
	if math.Abs(dy[0]+2*wantRate) > 1e-12 || math.Abs(dy[1]-wantRate) > 1e-12 {
		t.Errorf("Eval = %v, want [%g %g]", dy, -2*wantRate, wantRate)
	}

	// zero concentration of a reactant gives a zero rate, no domain error
	dy = f.Eval(0, []float64{0, 1})
	if dy[0] != 0 || dy[1] != 0 {
		t.Errorf("Eval with zero reactant = %v, want zeros", dy)
	}
}

func TestRateFunc_EquilibriumScaling(t *testing.T) {
	// one half-equilibrium (index 0) and one ordinary reaction
	a := mat.NewDense(3, 2, []float64{
		-1, 0,
		1, -1,
		0, 1,
	})
	s, err := NewScheme(nil, a, []bool{true, false})
	if err != nil {
		t.Fatalf("NewScheme: %v", err)
	}

	kEq, kOrd := 0.25, 2.0
	f, err := NewRateFunc(s, []float64{kEq, kOrd}, Options{})
	if err != nil {
		t.Fatalf("NewRateFunc: %v", err)
	}

	k := f.K()
	want := kEq * DefaultEquilibriumFactor * (kOrd / kEq)
	if math.Abs(k[0]-want) > 1e-9 {
		t.Errorf("k[0] = %g, want %g", k[0], want)
	}
	if k[1] != kOrd {
		t.Errorf("k[1] = %g, want %g untouched", k[1], kOrd)
	}
}

func TestRateFunc_NoScalingWithoutOrdinary(t *testing.T) {
	f, err := NewRateFunc(reversiblePair(true), []float64{0.5, 0.25}, Options{})
	if err != nil {
		t.Fatalf("NewRateFunc: %v", err)
	}
	k := f.K()
	if k[0] != 0.5 || k[1] != 0.25 {
		t.Errorf("all-equilibrium scheme scaled k: %v", k)
	}
}

func TestRateFunc_NoScalingWithoutEquilibria(t *testing.T) {
	f, err := NewRateFunc(reversiblePair(false), []float64{0.5, 0.25}, Options{})
	if err != nil {
		t.Fatalf("NewRateFunc: %v", err)
	}
	k := f.K()
	if k[0] != 0.5 || k[1] != 0.25 {
		t.Errorf("no-equilibrium scheme scaled k: %v", k)
	}
}

func TestRateFunc_DoesNotMutateCallerK(t *testing.T) {
	a := mat.NewDense(3, 2, []float64{
		-1, 0,
		1, -1,
		0, 1,
	})
	s, _ := NewScheme(nil, a, []bool{true, false})

	k := []float64{1, 10}
	if _, err := NewRateFunc(s, k, Options{}); err != nil {
		t.Fatalf("NewRateFunc: %v", err)
	}
	if k[0] != 1 || k[1] != 10 {
		t.Errorf("caller k mutated: %v", k)
	}
}

func TestRateFunc_KReturnsCopy(t *testing.T) {
	f, err := NewRateFunc(reversiblePair(false), []float64{1, 1}, Options{})
	if err != nil {
		t.Fatalf("NewRateFunc: %v", err)
	}
	k := f.K()
	k[0] = 99
	if f.K()[0] != 1 {
		t.Error("K() exposed internal state")
	}
}

func TestRateFunc_InputValidation(t *testing.T) {
	s := reversiblePair(false)

	if _, err := NewRateFunc(s, []float64{1}, Options{}); err == nil {
		t.Error("expected dimension mismatch for short k")
	}
	if _, err := NewRateFunc(s, []float64{1, math.NaN()}, Options{}); err == nil {
		t.Error("expected error for NaN rate constant")
	}
	if _, err := NewRateFunc(nil, nil, Options{}); err == nil {
		t.Error("expected error for nil scheme")
	}
	if _, err := NewRateFunc(s, []float64{1, 1}, Options{EquilibriumFactor: -1}); err == nil {
		t.Error("expected error for negative equilibrium factor")
	}
}

type captureSink struct {
	warns []string
}

func (c *captureSink) Info(string, ...any)          {}
func (c *captureSink) Warn(msg string, args ...any) { c.warns = append(c.warns, msg) }

func TestRateFunc_WarnsWhenScalingInsufficient(t *testing.T) {
	a := mat.NewDense(3, 2, []float64{
		-1, 0,
		1, -1,
		0, 1,
	})
	s, _ := NewScheme(nil, a, []bool{true, false})

	// With ef < 1 the accelerated equilibrium stays slower than the
	// ordinary reaction: k_eq * ef * (k_ord/k_eq) = ef * k_ord < k_ord.
	sink := &captureSink{}
	if _, err := NewRateFunc(s, []float64{1, 10}, Options{EquilibriumFactor: 0.5, Diag: sink}); err != nil {
		t.Fatalf("NewRateFunc: %v", err)
	}
	if len(sink.warns) != 1 {
		t.Errorf("want 1 warning, got %d", len(sink.warns))
	}

	sink = &captureSink{}
	if _, err := NewRateFunc(s, []float64{1, 10}, Options{Diag: sink}); err != nil {
		t.Fatalf("NewRateFunc: %v", err)
	}
	if len(sink.warns) != 0 {
		t.Errorf("default factor should not warn, got %v", sink.warns)
	}
}
