package model

import "testing"

func TestProject_Items(t *testing.T) {
	p := Project{
		CapitalItems: []LineItem{{ID: "capex"}},
		InflowItems:  []LineItem{{ID: "in-1"}, {ID: "in-2"}},
		OutflowItems: []LineItem{{ID: "out"}},
	}

	tests := []struct {
		category Category
		wantIDs  []string
	}{
		{CategoryCapex, []string{"capex"}},
		{CategoryInflow, []string{"in-1", "in-2"}},
		{CategoryOutflow, []string{"out"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			items := p.Items(tt.category)
			if len(items) != len(tt.wantIDs) {
				t.Fatalf("Expected %d items, got %d", len(tt.wantIDs), len(items))
			}
			for i, id := range tt.wantIDs {
				if items[i].ID != id {
					t.Errorf("Expected item %d to be %s, got %s", i, id, items[i].ID)
				}
			}
		})
	}

	t.Run("unknown category", func(t *testing.T) {
		if items := p.Items(Category("other")); items != nil {
			t.Errorf("Expected nil, got %+v", items)
		}
	})

	t.Run("matches the portfolio view", func(t *testing.T) {
		portfolio := p.Portfolio(GrowthParams{})
		for _, c := range Categories {
			if len(portfolio.Items(c)) != len(p.Items(c)) {
				t.Errorf("%s: expected %d items, got %d", c, len(p.Items(c)), len(portfolio.Items(c)))
			}
		}
	})
}
