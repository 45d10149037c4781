package metrics

import (
	"math"
	"testing"
)

func TestMassDrift(t *testing.T) {
	m := NewMassDrift()
	m.Observe([]float64{1, 0}, 0)
	m.Observe([]float64{0.6, 0.4}, 1)
	if m.Value() != 0 {
		t.Errorf("conserved samples drifted: %g", m.Value())
	}

	m.Observe([]float64{0.6, 0.5}, 2)
	if math.Abs(m.Value()-0.1) > 1e-12 {
		t.Errorf("Value = %g, want 0.1", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("Reset left %g", m.Value())
	}
}

type constRater struct {
	dy []float64
}

func (c constRater) Eval(t float64, y []float64) []float64 { return c.dy }

func TestEquilibriumResidual(t *testing.T) {
	e := NewEquilibriumResidual(constRater{dy: []float64{3, 4}})
	e.Observe([]float64{1, 1}, 0)
	if math.Abs(e.Value()-5) > 1e-12 {
		t.Errorf("Value = %g, want 5", e.Value())
	}

	e = NewEquilibriumResidual(constRater{dy: []float64{0, 0}})
	e.Observe([]float64{0.5, 0.5}, 10)
	if e.Value() != 0 {
		t.Errorf("equilibrium state residual = %g, want 0", e.Value())
	}
}
