package handlers

import (
	"database/sql"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/sensitivity"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/service"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/testutil"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/valuation"
)

func setupAnalysisHandler(t *testing.T) (*AnalysisHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestAnalysisService(t, db)
	return NewAnalysisHandler(svc), db
}

func TestAnalysisHandler_Analysis(t *testing.T) {
	t.Run("returns metrics for stored project", func(t *testing.T) {
		handler, db := setupAnalysisHandler(t)
		testutil.CreateReferenceProject(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/analysis", nil)
		w := httptest.NewRecorder()

		handler.Analysis(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var a valuation.Analysis
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&a)

		if math.Abs(a.NPV-98_143_286.07) > 0.01 {
			t.Errorf("Expected NPV 98143286.07, got %.2f", a.NPV)
		}
		if !a.IRRDefined {
			t.Error("Expected IRR to be defined")
		}
	})

	t.Run("applies growth from query", func(t *testing.T) {
		handler, db := setupAnalysisHandler(t)
		testutil.CreateReferenceProject(t, db)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/analysis", map[string]string{
			"outflow_growth": "10",
		})
		w := httptest.NewRecorder()

		handler.Analysis(w, req)

		var a valuation.Analysis
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&a)

		if a.OutflowGrowthPct != 10 {
			t.Errorf("Expected outflow growth 10, got %v", a.OutflowGrowthPct)
		}
		// year 1: 50M - 20M * 1.1
		if got := a.Schedule[1].NetCashflow; math.Abs(got-28_000_000) > 1e-6 {
			t.Errorf("Expected year 1 net cashflow 28000000, got %v", got)
		}
	})

	t.Run("returns 400 for non-numeric growth", func(t *testing.T) {
		handler, _ := setupAnalysisHandler(t)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/analysis", map[string]string{
			"inflow_growth": "fast",
		})
		w := httptest.NewRecorder()

		handler.Analysis(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestAnalysisHandler_Sensitivity(t *testing.T) {
	t.Run("returns ranked rows", func(t *testing.T) {
		handler, db := setupAnalysisHandler(t)
		testutil.CreateReferenceProject(t, db)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/analysis/sensitivity", map[string]string{
			"variation": "10",
		})
		w := httptest.NewRecorder()

		handler.Sensitivity(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var r sensitivity.Result
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&r)

		if r.VariationPct != 10 {
			t.Errorf("Expected variation 10, got %v", r.VariationPct)
		}
		if len(r.Rows) != len(sensitivity.Variables) {
			t.Errorf("Expected %d rows, got %d", len(sensitivity.Variables), len(r.Rows))
		}
	})

	t.Run("returns 400 for out of range variation", func(t *testing.T) {
		handler, _ := setupAnalysisHandler(t)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/analysis/sensitivity", map[string]string{
			"variation": "250",
		})
		w := httptest.NewRecorder()

		handler.Sensitivity(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestAnalysisHandler_GrowthExample(t *testing.T) {
	handler, db := setupAnalysisHandler(t)
	testutil.CreateReferenceProject(t, db)

	req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/analysis/growth", map[string]string{
		"growth": "5",
		"years":  "2",
	})
	w := httptest.NewRecorder()

	handler.GrowthExample(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result service.GrowthExampleResult
	//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
	json.NewDecoder(w.Body).Decode(&result)

	if len(result.Values) != 3 {
		t.Fatalf("Expected 3 values, got %d", len(result.Values))
	}
	if math.Abs(result.Values[2]-55_125_000) > 1e-6 {
		t.Errorf("Expected year 2 value 55125000, got %v", result.Values[2])
	}
}
