package service_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/api/request"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/apperrors"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/model"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/projectfile"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/testutil"
)

// TestProjectService_Snapshot tests the Snapshot method.
//
// WHY: Every analysis and export runs on a snapshot, so it must carry all three
// collections in position order together with the stored settings.
func TestProjectService_Snapshot(t *testing.T) {
	t.Run("empty database returns default settings", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestProjectService(t, db)

		project, err := svc.Snapshot(context.Background())
		if err != nil {
			t.Fatalf("Snapshot() returned unexpected error: %v", err)
		}

		if project.Settings.HorizonYears != model.DefaultHorizonYears {
			t.Errorf("Expected horizon %d, got %d", model.DefaultHorizonYears, project.Settings.HorizonYears)
		}
		if project.Settings.DiscountRatePct != model.DefaultDiscountRatePct {
			t.Errorf("Expected rate %v, got %v", model.DefaultDiscountRatePct, project.Settings.DiscountRatePct)
		}
		if len(project.CapitalItems)+len(project.InflowItems)+len(project.OutflowItems) != 0 {
			t.Error("Expected no items")
		}
	})

	t.Run("returns items per category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestProjectService(t, db)
		testutil.CreateReferenceProject(t, db)

		project, err := svc.Snapshot(context.Background())
		if err != nil {
			t.Fatalf("Snapshot() returned unexpected error: %v", err)
		}

		if len(project.CapitalItems) != 1 || project.CapitalItems[0].Name != "Server" {
			t.Errorf("Unexpected capital items: %+v", project.CapitalItems)
		}
		if len(project.InflowItems) != 1 || project.InflowItems[0].UnitPrice != 50_000_000 {
			t.Errorf("Unexpected inflow items: %+v", project.InflowItems)
		}
		if len(project.OutflowItems) != 1 || project.OutflowItems[0].UnitPrice != 20_000_000 {
			t.Errorf("Unexpected outflow items: %+v", project.OutflowItems)
		}
	})
}

// TestProjectService_UpdateSettings tests the UpdateSettings method.
//
// WHY: Horizon and discount rate are edited one at a time from the UI; a
// request carrying only one of them must leave the other unchanged.
func TestProjectService_UpdateSettings(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestProjectService(t, db)

	years := 10
	settings, err := svc.UpdateSettings(context.Background(), request.UpdateSettingsRequest{HorizonYears: &years})
	if err != nil {
		t.Fatalf("UpdateSettings() returned unexpected error: %v", err)
	}
	if settings.HorizonYears != 10 || settings.DiscountRatePct != model.DefaultDiscountRatePct {
		t.Errorf("Unexpected settings: %+v", settings)
	}

	rate := 8.5
	if _, err := svc.UpdateSettings(context.Background(), request.UpdateSettingsRequest{DiscountRatePct: &rate}); err != nil {
		t.Fatalf("UpdateSettings() returned unexpected error: %v", err)
	}

	project, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot() returned unexpected error: %v", err)
	}
	if project.Settings.HorizonYears != 10 || project.Settings.DiscountRatePct != 8.5 {
		t.Errorf("Expected horizon 10 and rate 8.5, got %+v", project.Settings)
	}
}

// TestProjectService_ReplaceProject tests the ReplaceProject method.
//
// WHY: Loading a project replaces everything at once. Unreadable numbers from a
// damaged file must be stored as zero and reported, not rejected.
func TestProjectService_ReplaceProject(t *testing.T) {
	t.Run("replaces existing items and settings", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestProjectService(t, db)
		testutil.CreateLineItems(t, db, model.CategoryCapex, 4)

		p := projectfile.Empty()
		p.Settings.HorizonYears = 3
		p.InflowItems = []model.LineItem{{ID: testutil.MakeID(), Name: "Revenue", Quantity: 1, UnitPrice: 100}}

		result, err := svc.ReplaceProject(context.Background(), p)
		if err != nil {
			t.Fatalf("ReplaceProject() returned unexpected error: %v", err)
		}
		if result.Items != 1 || result.Defaulted != 0 {
			t.Errorf("Expected 1 item and 0 defaulted, got %+v", result)
		}

		testutil.AssertRowCount(t, db, "line_item", 1)

		project, err := svc.Snapshot(context.Background())
		if err != nil {
			t.Fatalf("Snapshot() returned unexpected error: %v", err)
		}
		if project.Settings.HorizonYears != 3 {
			t.Errorf("Expected horizon 3, got %d", project.Settings.HorizonYears)
		}
	})

	t.Run("stores non-finite numbers as zero", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestProjectService(t, db)

		p := projectfile.Empty()
		p.CapitalItems = []model.LineItem{
			{ID: testutil.MakeID(), Name: "Broken", Quantity: math.NaN(), UnitPrice: 10},
			{ID: testutil.MakeID(), Name: "Fine", Quantity: 1, UnitPrice: 10},
		}

		result, err := svc.ReplaceProject(context.Background(), p)
		if err != nil {
			t.Fatalf("ReplaceProject() returned unexpected error: %v", err)
		}
		if result.Items != 2 || result.Defaulted != 1 {
			t.Errorf("Expected 2 items and 1 defaulted, got %+v", result)
		}

		project, err := svc.Snapshot(context.Background())
		if err != nil {
			t.Fatalf("Snapshot() returned unexpected error: %v", err)
		}
		if project.CapitalItems[0].Quantity != 0 {
			t.Errorf("Expected quantity 0, got %v", project.CapitalItems[0].Quantity)
		}
	})

	t.Run("out-of-range settings are stored as defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestProjectService(t, db)

		p := projectfile.Empty()
		p.Settings.HorizonYears = 0
		p.Settings.DiscountRatePct = -250

		if _, err := svc.ReplaceProject(context.Background(), p); err != nil {
			t.Fatalf("ReplaceProject() returned unexpected error: %v", err)
		}

		project, err := svc.Snapshot(context.Background())
		if err != nil {
			t.Fatalf("Snapshot() returned unexpected error: %v", err)
		}
		if project.Settings.HorizonYears != model.DefaultHorizonYears {
			t.Errorf("Expected horizon %d, got %d", model.DefaultHorizonYears, project.Settings.HorizonYears)
		}
		if project.Settings.DiscountRatePct != model.DefaultDiscountRatePct {
			t.Errorf("Expected rate %v, got %v", model.DefaultDiscountRatePct, project.Settings.DiscountRatePct)
		}
	})

	t.Run("failed replacement keeps previous project", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestProjectService(t, db)
		testutil.CreateReferenceProject(t, db)

		id := testutil.MakeID()
		p := projectfile.Empty()
		p.CapitalItems = []model.LineItem{
			{ID: id, Name: "First", Quantity: 1, UnitPrice: 1},
			{ID: id, Name: "Same ID", Quantity: 1, UnitPrice: 1},
		}

		_, err := svc.ReplaceProject(context.Background(), p)
		if !errors.Is(err, apperrors.ErrFailedToSaveProject) {
			t.Fatalf("Expected ErrFailedToSaveProject, got %v", err)
		}

		testutil.AssertRowCount(t, db, "line_item", 3)
	})
}

// TestProjectService_LoadProjectFile tests the LoadProjectFile method.
//
// WHY: Uploaded files may be hand-edited. Small syntax damage is repaired, but
// input that is not a project at all must leave the stored project untouched.
func TestProjectService_LoadProjectFile(t *testing.T) {
	t.Run("loads a valid file", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestProjectService(t, db)

		data := []byte(`{
			"capex_items": [{"id": "a", "name": "Server", "volume": 1, "unit": "unit", "price": 10000000}],
			"opex_cash_in": [],
			"opex_cash_out": [],
			"project_years": 4,
			"discount_rate": 10
		}`)

		result, err := svc.LoadProjectFile(context.Background(), data)
		if err != nil {
			t.Fatalf("LoadProjectFile() returned unexpected error: %v", err)
		}
		if result.Status != projectfile.StatusLoaded || result.Items != 1 {
			t.Errorf("Unexpected result: %+v", result)
		}
	})

	t.Run("repairs malformed json", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestProjectService(t, db)

		data := []byte(`{"project_years": 8, "discount_rate": 9,}`)

		result, err := svc.LoadProjectFile(context.Background(), data)
		if err != nil {
			t.Fatalf("LoadProjectFile() returned unexpected error: %v", err)
		}
		if result.Status != projectfile.StatusRepaired {
			t.Errorf("Expected status repaired, got %s", result.Status)
		}
	})

	t.Run("huge horizon falls back to the default and stays analyzable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestProjectService(t, db)
		analysis := testutil.NewTestAnalysisService(t, db)

		data := []byte(`{
			"opex_cash_in": [{"id": "a", "name": "Revenue", "volume": 1, "price": 100}],
			"project_years": 1e16,
			"discount_rate": 10
		}`)

		if _, err := svc.LoadProjectFile(context.Background(), data); err != nil {
			t.Fatalf("LoadProjectFile() returned unexpected error: %v", err)
		}

		a, err := analysis.Analyze(context.Background(), model.GrowthParams{})
		if err != nil {
			t.Fatalf("Analyze() returned unexpected error: %v", err)
		}
		if a.HorizonYears != model.DefaultHorizonYears {
			t.Errorf("Expected horizon %d, got %d", model.DefaultHorizonYears, a.HorizonYears)
		}
		if len(a.Schedule) != model.DefaultHorizonYears+1 {
			t.Errorf("Expected %d schedule rows, got %d", model.DefaultHorizonYears+1, len(a.Schedule))
		}
	})

	t.Run("out-of-range settings fall back to defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestProjectService(t, db)

		data := []byte(`{"project_years": 0, "discount_rate": -250}`)
		if _, err := svc.LoadProjectFile(context.Background(), data); err != nil {
			t.Fatalf("LoadProjectFile() returned unexpected error: %v", err)
		}

		project, err := svc.Snapshot(context.Background())
		if err != nil {
			t.Fatalf("Snapshot() returned unexpected error: %v", err)
		}
		if project.Settings.HorizonYears != model.DefaultHorizonYears {
			t.Errorf("Expected horizon %d, got %d", model.DefaultHorizonYears, project.Settings.HorizonYears)
		}
		if project.Settings.DiscountRatePct != model.DefaultDiscountRatePct {
			t.Errorf("Expected rate %v, got %v", model.DefaultDiscountRatePct, project.Settings.DiscountRatePct)
		}
	})

	t.Run("repeated ids across collections are reassigned", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestProjectService(t, db)

		data := []byte(`{
			"capex_items": [{"id": "a", "name": "Server", "volume": 1, "price": 10}],
			"opex_cash_in": [{"id": "a", "name": "Revenue", "volume": 1, "price": 50}],
			"opex_cash_out": []
		}`)

		result, err := svc.LoadProjectFile(context.Background(), data)
		if err != nil {
			t.Fatalf("LoadProjectFile() returned unexpected error: %v", err)
		}
		if result.Items != 2 {
			t.Errorf("Expected 2 items, got %d", result.Items)
		}

		testutil.AssertRowCount(t, db, "line_item", 2)
	})

	t.Run("rejects unreadable input", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestProjectService(t, db)
		testutil.CreateReferenceProject(t, db)

		_, err := svc.LoadProjectFile(context.Background(), []byte(`[1, 2, 3]`))
		if !errors.Is(err, apperrors.ErrInvalidProjectFile) {
			t.Fatalf("Expected ErrInvalidProjectFile, got %v", err)
		}

		testutil.AssertRowCount(t, db, "line_item", 3)
	})
}

// TestProjectService_ExportProjectFile tests the ExportProjectFile method.
//
// WHY: A downloaded project must load back into the same project.
func TestProjectService_ExportProjectFile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestProjectService(t, db)
	testutil.CreateReferenceProject(t, db)

	data, err := svc.ExportProjectFile(context.Background())
	if err != nil {
		t.Fatalf("ExportProjectFile() returned unexpected error: %v", err)
	}

	project, err := projectfile.Decode(data)
	if err != nil {
		t.Fatalf("Decode() returned unexpected error: %v", err)
	}
	if len(project.CapitalItems) != 1 || len(project.InflowItems) != 1 || len(project.OutflowItems) != 1 {
		t.Errorf("Expected one item per category, got %+v", project)
	}
	if project.InflowItems[0].UnitPrice != 50_000_000 {
		t.Errorf("Expected inflow price 50000000, got %v", project.InflowItems[0].UnitPrice)
	}
}

// TestProjectService_ResetAndClear tests the ResetToDefault and Clear methods.
//
// WHY: Reset gives a new user a worked example; clear starts over while keeping
// the parameters the user already chose.
func TestProjectService_ResetAndClear(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestProjectService(t, db)
	testutil.CreateLineItems(t, db, model.CategoryOutflow, 2)

	result, err := svc.ResetToDefault(context.Background())
	if err != nil {
		t.Fatalf("ResetToDefault() returned unexpected error: %v", err)
	}
	if result.Items != 18 {
		t.Errorf("Expected 18 sample items, got %d", result.Items)
	}
	testutil.AssertRowCount(t, db, "line_item", 18)

	project, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot() returned unexpected error: %v", err)
	}
	if !project.Settings.DefaultDataLoaded {
		t.Error("Expected DefaultDataLoaded after reset")
	}

	// Reset twice must not collide on the fixed sample IDs.
	if _, err := svc.ResetToDefault(context.Background()); err != nil {
		t.Fatalf("second ResetToDefault() returned unexpected error: %v", err)
	}

	years := 7
	if _, err := svc.UpdateSettings(context.Background(), request.UpdateSettingsRequest{HorizonYears: &years}); err != nil {
		t.Fatalf("UpdateSettings() returned unexpected error: %v", err)
	}

	if _, err := svc.Clear(context.Background()); err != nil {
		t.Fatalf("Clear() returned unexpected error: %v", err)
	}
	testutil.AssertRowCount(t, db, "line_item", 0)

	project, err = svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot() returned unexpected error: %v", err)
	}
	if project.Settings.HorizonYears != 7 {
		t.Errorf("Expected horizon 7 to survive clear, got %d", project.Settings.HorizonYears)
	}
	if project.Settings.DefaultDataLoaded {
		t.Error("Expected DefaultDataLoaded to be false after clear")
	}
}
