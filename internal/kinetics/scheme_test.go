package kinetics

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestNewScheme(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{-1, 1, 1, -1})

	s, err := NewScheme([]string{"A", "B"}, a, []bool{true, true})
	if err != nil {
		t.Fatalf("NewScheme: %v", err)
	}
	if s.NumSpecies() != 2 || s.NumReactions() != 2 {
		t.Errorf("dims = (%d, %d), want (2, 2)", s.NumSpecies(), s.NumReactions())
	}
}

func TestNewScheme_GeneratedNamesAndFlags(t *testing.T) {
	a := mat.NewDense(2, 1, []float64{-1, 1})
	s, err := NewScheme(nil, a, nil)
	if err != nil {
		t.Fatalf("NewScheme: %v", err)
	}
	if len(s.Compounds) != 2 || s.Compounds[0] == "" {
		t.Errorf("expected generated compound names, got %v", s.Compounds)
	}
	if len(s.IsHalfEquilibrium) != 1 || s.IsHalfEquilibrium[0] {
		t.Errorf("expected all-false flags, got %v", s.IsHalfEquilibrium)
	}
}

func TestNewScheme_Errors(t *testing.T) {
	a := mat.NewDense(2, 1, []float64{-1, 1})

	if _, err := NewScheme(nil, nil, nil); !errors.Is(err, ErrEmptyScheme) {
		t.Errorf("nil matrix: got %v, want ErrEmptyScheme", err)
	}
	if _, err := NewScheme([]string{"A"}, a, nil); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("short compounds: got %v, want ErrDimensionMismatch", err)
	}
	if _, err := NewScheme(nil, a, []bool{true, false}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("long flags: got %v, want ErrDimensionMismatch", err)
	}

	bad := mat.NewDense(2, 1, []float64{math.Inf(1), 1})
	if _, err := NewScheme(nil, bad, nil); !errors.Is(err, ErrNotFinite) {
		t.Errorf("Inf entry: got %v, want ErrNotFinite", err)
	}
}
