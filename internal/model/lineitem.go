package model

import (
	"fmt"
	"time"
)

// Category identifies which of the three ordered collections a line item belongs to.
type Category string

const (
	// CategoryCapex holds one-time capital expenditure items, booked in year 0.
	CategoryCapex Category = "capex"
	// CategoryInflow holds recurring operating cash inflows (revenue, savings).
	CategoryInflow Category = "inflow"
	// CategoryOutflow holds recurring operating cash outflows (expenses).
	CategoryOutflow Category = "outflow"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryCapex, CategoryInflow, CategoryOutflow}

// ParseCategory converts a path or query value into a Category.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryCapex, CategoryInflow, CategoryOutflow:
		return Category(s), nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Label returns the human-readable section name.
func (c Category) Label() string {
	switch c {
	case CategoryCapex:
		return "Capital Expenditure"
	case CategoryInflow:
		return "Operating Cash In"
	case CategoryOutflow:
		return "Operating Cash Out"
	}
	return string(c)
}

// LineItem is a single priced entry in one of the project's collections.
// Quantity and UnitPrice may be non-finite when decoded from a damaged
// project file; the valuation engine treats those items as contributing zero.
type LineItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Quantity  float64   `json:"quantity"`
	Unit      string    `json:"unit"`
	UnitPrice float64   `json:"unitPrice"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// Clone returns a copy of items backed by a new array.
func Clone(items []LineItem) []LineItem {
	if items == nil {
		return nil
	}
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}
