package service_test

import (
	"context"
	"math"
	"testing"

	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/model"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/sensitivity"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/testutil"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/valuation"
)

// TestAnalysisService_Analyze tests the Analyze method.
//
// WHY: The stored project must produce exactly the figures the valuation
// engine produces for the same inputs, with growth applied per request.
func TestAnalysisService_Analyze(t *testing.T) {
	t.Run("reference project", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAnalysisService(t, db)
		testutil.CreateReferenceProject(t, db)

		a, err := svc.Analyze(context.Background(), model.GrowthParams{})
		if err != nil {
			t.Fatalf("Analyze() returned unexpected error: %v", err)
		}

		if math.Abs(a.NPV-98_143_286.07) > 0.01 {
			t.Errorf("Expected NPV 98143286.07, got %.2f", a.NPV)
		}
		if len(a.Schedule) != 6 {
			t.Errorf("Expected 6 schedule rows, got %d", len(a.Schedule))
		}
		if a.Verdict.Recommendation != valuation.RecommendProceed {
			t.Errorf("Expected feasible, got %s", a.Verdict.Recommendation)
		}
	})

	t.Run("growth is applied per request", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAnalysisService(t, db)
		testutil.CreateReferenceProject(t, db)

		a, err := svc.Analyze(context.Background(), model.GrowthParams{InflowGrowthPct: 10})
		if err != nil {
			t.Fatalf("Analyze() returned unexpected error: %v", err)
		}

		// year 2: 50M * 1.1^2 - 20M
		if got := a.Schedule[2].NetCashflow; math.Abs(got-40_500_000) > 1e-6 {
			t.Errorf("Expected year 2 net cashflow 40500000, got %v", got)
		}

		plain, err := svc.Analyze(context.Background(), model.GrowthParams{})
		if err != nil {
			t.Fatalf("Analyze() returned unexpected error: %v", err)
		}
		if plain.Schedule[2].NetCashflow != 30_000_000 {
			t.Errorf("Expected growth not to persist, got %v", plain.Schedule[2].NetCashflow)
		}
	})
}

// TestAnalysisService_Sensitivity tests the Sensitivity method.
//
// WHY: The tornado chart is driven by this ranking; an invalid variation must
// be rejected before any work is done.
func TestAnalysisService_Sensitivity(t *testing.T) {
	t.Run("ranks variables by range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAnalysisService(t, db)
		testutil.CreateReferenceProject(t, db)

		r, err := svc.Sensitivity(context.Background(), model.GrowthParams{}, 20)
		if err != nil {
			t.Fatalf("Sensitivity() returned unexpected error: %v", err)
		}

		if len(r.Rows) != 4 {
			t.Fatalf("Expected 4 rows, got %d", len(r.Rows))
		}
		if r.MostSensitive != sensitivity.Revenue {
			t.Errorf("Expected Revenue most sensitive, got %s", r.MostSensitive)
		}
		for i := 1; i < len(r.Rows); i++ {
			if r.Rows[i].Range > r.Rows[i-1].Range {
				t.Errorf("Rows not ranked at %d: %v > %v", i, r.Rows[i].Range, r.Rows[i-1].Range)
			}
		}
	})

	t.Run("rejects invalid variation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAnalysisService(t, db)

		if _, err := svc.Sensitivity(context.Background(), model.GrowthParams{}, 0); err == nil {
			t.Error("Expected error for zero variation")
		}
	})
}

// TestAnalysisService_GrowthExample tests the GrowthExample method.
func TestAnalysisService_GrowthExample(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestAnalysisService(t, db)
	testutil.CreateReferenceProject(t, db)

	result, err := svc.GrowthExample(context.Background(), 10, 3)
	if err != nil {
		t.Fatalf("GrowthExample() returned unexpected error: %v", err)
	}

	if result.Base != 50_000_000 {
		t.Errorf("Expected base 50000000, got %v", result.Base)
	}
	want := []float64{50_000_000, 55_000_000, 60_500_000, 66_550_000}
	if len(result.Values) != len(want) {
		t.Fatalf("Expected %d values, got %d", len(want), len(result.Values))
	}
	for i, v := range want {
		if math.Abs(result.Values[i]-v) > 1e-6 {
			t.Errorf("Year %d: expected %v, got %v", i, v, result.Values[i])
		}
	}
}
