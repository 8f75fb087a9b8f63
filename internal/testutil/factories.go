package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/model"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/repository"
)

// LineItemBuilder provides a fluent interface for creating test line items.
//
// Example usage:
//
//	// Simple creation with defaults
//	item := testutil.NewLineItem(model.CategoryCapex).Build(t, db)
//
//	// Customized item
//	item := testutil.NewLineItem(model.CategoryInflow).
//	    WithName("Subscription revenue").
//	    WithQuantity(12).
//	    WithUnitPrice(1_500_000).
//	    Build(t, db)
type LineItemBuilder struct {
	Category  model.Category
	ID        string
	Name      string
	Quantity  float64
	Unit      string
	UnitPrice float64
}

// NewLineItem creates a LineItemBuilder with sensible defaults.
func NewLineItem(category model.Category) *LineItemBuilder {
	return &LineItemBuilder{
		Category:  category,
		ID:        MakeID(),
		Name:      MakeItemName("Test Item"),
		Quantity:  1,
		Unit:      "unit",
		UnitPrice: 1000,
	}
}

// WithID sets a custom ID.
func (b *LineItemBuilder) WithID(id string) *LineItemBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *LineItemBuilder) WithName(name string) *LineItemBuilder {
	b.Name = name
	return b
}

// WithQuantity sets a custom quantity.
func (b *LineItemBuilder) WithQuantity(quantity float64) *LineItemBuilder {
	b.Quantity = quantity
	return b
}

// WithUnit sets a custom unit.
func (b *LineItemBuilder) WithUnit(unit string) *LineItemBuilder {
	b.Unit = unit
	return b
}

// WithUnitPrice sets a custom unit price.
func (b *LineItemBuilder) WithUnitPrice(price float64) *LineItemBuilder {
	b.UnitPrice = price
	return b
}

// Build appends the item to its category in the database and returns it.
func (b *LineItemBuilder) Build(t *testing.T, db *sql.DB) model.LineItem {
	t.Helper()

	item := model.LineItem{
		ID:        b.ID,
		Name:      b.Name,
		Quantity:  b.Quantity,
		Unit:      b.Unit,
		UnitPrice: b.UnitPrice,
	}

	if err := repository.NewLineItemRepository(db).InsertItem(context.Background(), b.Category, &item); err != nil {
		t.Fatalf("Failed to create test line item: %v", err)
	}

	return item
}

// Convenience functions

// CreateLineItem creates an item with the given name, quantity and unit price.
//
// Example usage:
//
//	server := testutil.CreateLineItem(t, db, model.CategoryCapex, "Server", 1, 10_000_000)
func CreateLineItem(t *testing.T, db *sql.DB, category model.Category, name string, quantity, unitPrice float64) model.LineItem {
	t.Helper()
	return NewLineItem(category).
		WithName(name).
		WithQuantity(quantity).
		WithUnitPrice(unitPrice).
		Build(t, db)
}

// CreateLineItems creates multiple items with default values in one category.
//
// Example usage:
//
//	items := testutil.CreateLineItems(t, db, model.CategoryOutflow, 3)
func CreateLineItems(t *testing.T, db *sql.DB, category model.Category, count int) []model.LineItem {
	t.Helper()

	items := make([]model.LineItem, count)
	for i := range count {
		items[i] = NewLineItem(category).Build(t, db)
	}
	return items
}

// CreateReferenceProject stores the five-year, 12% reference project:
// one capital item of 10,000,000, yearly revenue of 50,000,000 and yearly
// expenses of 20,000,000.
func CreateReferenceProject(t *testing.T, db *sql.DB) {
	t.Helper()

	CreateLineItem(t, db, model.CategoryCapex, "Server", 1, 10_000_000)
	CreateLineItem(t, db, model.CategoryInflow, "Revenue", 1, 50_000_000)
	CreateLineItem(t, db, model.CategoryOutflow, "Operations", 1, 20_000_000)
}
