package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/api/request"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/model"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/testutil"
)

// TestParseJSON tests the parseJSON helper function.
// This is an internal test (package handlers, not handlers_test) because
// parseJSON is unexported.
func TestParseJSON(t *testing.T) {
	t.Run("decodes a valid body", func(t *testing.T) {
		req := testutil.NewRequestWithBody(http.MethodPost, "/api/item/capex", `{"name":"Server","quantity":2,"unit":"unit","unitPrice":100}`)

		got, err := parseJSON[request.CreateLineItemRequest](req)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if got.Name != "Server" || got.Quantity != 2 || got.UnitPrice != 100 {
			t.Errorf("Unexpected request %+v", got)
		}
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		req := testutil.NewRequestWithBody(http.MethodPost, "/api/item/capex", `{"name":"Server","colour":"red"}`)

		if _, err := parseJSON[request.CreateLineItemRequest](req); err == nil {
			t.Error("Expected error for unknown field")
		}
	})

	t.Run("rejects an empty body", func(t *testing.T) {
		req := testutil.NewRequestWithBody(http.MethodPost, "/api/item/capex", "")

		_, err := parseJSON[request.CreateLineItemRequest](req)
		if err == nil || !strings.Contains(err.Error(), "required") {
			t.Errorf("Expected body required error, got %v", err)
		}
	})
}

func TestCategoryParam(t *testing.T) {
	req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/item/inflow", map[string]string{"category": "inflow"})
	c, err := categoryParam(req)
	if err != nil || c != model.CategoryInflow {
		t.Errorf("Expected inflow, got %q (%v)", c, err)
	}

	req = testutil.NewRequestWithURLParams(http.MethodGet, "/api/item/other", map[string]string{"category": "other"})
	if _, err := categoryParam(req); err == nil {
		t.Error("Expected error for unknown category")
	}
}
