package valuation

import (
	"math"
	"testing"
)

func TestSolveIRR(t *testing.T) {
	t.Run("single period", func(t *testing.T) {
		r, ok := SolveIRR([]float64{-100, 110})
		if !ok {
			t.Fatal("Expected IRR to be defined")
		}
		if !almostEqual(r, 0.10, 1e-9) {
			t.Errorf("Expected 0.10, got %v", r)
		}
	})

	t.Run("annuity discounts to zero at the solved rate", func(t *testing.T) {
		cf := []float64{-1000, 500, 500, 500}
		r, ok := SolveIRR(cf)
		if !ok {
			t.Fatal("Expected IRR to be defined")
		}
		if npv := npvAt(cf, r); math.Abs(npv) > 1e-6 {
			t.Errorf("Expected NPV ≈ 0 at r=%v, got %v", r, npv)
		}
	})

	t.Run("reference project", func(t *testing.T) {
		cf := []float64{-10_000_000, 30_000_000, 30_000_000, 30_000_000, 30_000_000, 30_000_000}
		r, ok := SolveIRR(cf)
		if !ok {
			t.Fatal("Expected IRR to be defined")
		}
		if npv := npvAt(cf, r); math.Abs(npv) > 1e-3 {
			t.Errorf("Expected NPV ≈ 0 at r=%v, got %v", r, npv)
		}
	})

	t.Run("negative rate", func(t *testing.T) {
		r, ok := SolveIRR([]float64{-100, 50, 30})
		if !ok {
			t.Fatal("Expected IRR to be defined")
		}
		if r >= 0 {
			t.Errorf("Expected a negative IRR, got %v", r)
		}
		if npv := npvAt([]float64{-100, 50, 30}, r); math.Abs(npv) > 1e-6 {
			t.Errorf("Expected NPV ≈ 0 at r=%v, got %v", r, npv)
		}
	})

	t.Run("all zero series is undefined", func(t *testing.T) {
		r, ok := SolveIRR([]float64{0, 0})
		if ok || r != 0 {
			t.Errorf("Expected (0, false), got (%v, %v)", r, ok)
		}
		if got := IRR([]float64{0, 0}); got != 0 {
			t.Errorf("Expected IRR 0.0, got %v", got)
		}
	})

	t.Run("no sign change is undefined", func(t *testing.T) {
		if _, ok := SolveIRR([]float64{-100, -10, -10}); ok {
			t.Error("Expected undefined IRR for all-negative series")
		}
		if _, ok := SolveIRR([]float64{100, 10}); ok {
			t.Error("Expected undefined IRR for all-positive series")
		}
	})

	t.Run("empty series is undefined", func(t *testing.T) {
		if got := IRR(nil); got != 0 {
			t.Errorf("Expected 0, got %v", got)
		}
	})
}

func TestBisectIRR(t *testing.T) {
	r, ok := bisectIRR([]float64{-100, 110})
	if !ok {
		t.Fatal("Expected bracket to be found")
	}
	if !almostEqual(r, 0.10, 1e-9) {
		t.Errorf("Expected 0.10, got %v", r)
	}
}
