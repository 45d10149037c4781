package integrators

import (
	"context"
	"errors"
	"math"
	"testing"
)

func decay(t float64, y []float64) []float64 {
	return []float64{-y[0]}
}

func oscillator(t float64, y []float64) []float64 {
	return []float64{y[1], -y[0]}
}

func TestDopri5_ExponentialDecay(t *testing.T) {
	sol, err := NewDopri5().Solve(context.Background(), decay, 0, 5, []float64{1}, Options{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	for _, tt := range []float64{0, 0.5, 1, 2.5, 5} {
		got := sol.At(tt)[0]
		want := math.Exp(-tt)
		if math.Abs(got-want) > 1e-5 {
			t.Errorf("y(%g) = %g, want %g", tt, got, want)
		}
	}
}

func TestDopri5_Oscillator(t *testing.T) {
	sol, err := NewDopri5().Solve(context.Background(), oscillator, 0, 2*math.Pi, []float64{1, 0}, Options{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	y := sol.At(2 * math.Pi)
	if math.Abs(y[0]-1) > 1e-4 || math.Abs(y[1]) > 1e-4 {
		t.Errorf("y(2π) = %v, want [1 0]", y)
	}
}

func TestDopri5_DenseStartPoint(t *testing.T) {
	y0 := []float64{0.3, 0.7}
	sol, err := NewDopri5().Solve(context.Background(), oscillator, 0, 1, y0, Options{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	got := sol.At(sol.TMin())
	if math.Abs(got[0]-y0[0]) > 1e-12 || math.Abs(got[1]-y0[1]) > 1e-12 {
		t.Errorf("y(TMin) = %v, want %v", got, y0)
	}
	if sol.TMin() != 0 || sol.TMax() != 1 {
		t.Errorf("span = [%g, %g], want [0, 1]", sol.TMin(), sol.TMax())
	}
}

func TestDopri5_Over(t *testing.T) {
	sol, err := NewDopri5().Solve(context.Background(), decay, 0, 2, []float64{1}, Options{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	times := []float64{0, 0.5, 1, 1.5, 2}
	m := sol.Over(times)
	rows, cols := m.Dims()
	if rows != 1 || cols != len(times) {
		t.Fatalf("Over dims = (%d, %d), want (1, %d)", rows, cols, len(times))
	}
	for j, tt := range times {
		if math.Abs(m.At(0, j)-math.Exp(-tt)) > 1e-5 {
			t.Errorf("Over[0,%d] = %g, want %g", j, m.At(0, j), math.Exp(-tt))
		}
	}
}

func TestDopri5_OverEmpty(t *testing.T) {
	sol, err := NewDopri5().Solve(context.Background(), decay, 0, 2, []float64{1}, Options{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	m := sol.Over(nil)
	if rows, cols := m.Dims(); rows != 0 || cols != 0 {
		t.Errorf("Over(nil) dims = (%d, %d), want (0, 0)", rows, cols)
	}
	m = sol.Over([]float64{})
	if rows, cols := m.Dims(); rows != 0 || cols != 0 {
		t.Errorf("Over(empty) dims = (%d, %d), want (0, 0)", rows, cols)
	}
}

func TestDopri5_BadSpan(t *testing.T) {
	if _, err := NewDopri5().Solve(context.Background(), decay, 1, 1, []float64{1}, Options{}); !errors.Is(err, ErrBadSpan) {
		t.Errorf("zero span: got %v, want ErrBadSpan", err)
	}
	if _, err := NewDopri5().Solve(context.Background(), decay, 0, math.NaN(), []float64{1}, Options{}); !errors.Is(err, ErrBadSpan) {
		t.Errorf("NaN span: got %v, want ErrBadSpan", err)
	}
}

func TestDopri5_Cancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewDopri5().Solve(ctx, decay, 0, 1, []float64{1}, Options{}); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestDopri5_DivergingSystem(t *testing.T) {
	blowup := func(t float64, y []float64) []float64 {
		return []float64{y[0] * y[0]}
	}
	_, err := NewDopri5().Solve(context.Background(), blowup, 0, 10, []float64{1}, Options{MaxSteps: 2000})
	if err == nil {
		t.Fatal("expected failure for y' = y^2 past its singularity")
	}
}

func TestNew_Registry(t *testing.T) {
	for _, name := range []string{"", "rosenbrock23", "stiff", "dopri5", "rk45"} {
		s, err := New(name)
		if err != nil {
			t.Errorf("New(%q): %v", name, err)
			continue
		}
		if s == nil {
			t.Errorf("New(%q) returned nil solver", name)
		}
	}
	if _, err := New("simpson"); !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("got %v, want ErrUnknownMethod", err)
	}
}
