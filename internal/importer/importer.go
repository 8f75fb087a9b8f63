// Package importer parses line items pasted from a spreadsheet.
//
// Each non-empty line is one row of Name | Qty | Unit | Price. Rows containing
// a tab are split on tabs, everything else on commas. Rows that cannot be
// read are skipped and counted rather than reported as errors.
package importer

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/model"
)

// Result holds the accepted items and the row counts.
type Result struct {
	Items   []model.LineItem `json:"items"`
	Added   int              `json:"added"`
	Skipped int              `json:"skipped"`
}

// priceCleaner strips the currency marker and digit-group separators from a price cell.
var priceCleaner = strings.NewReplacer("Rp", "", ",", "", ".", "")

// Parse reads every row of text and returns the items that passed validation.
// Accepted items receive fresh IDs.
func Parse(text string) Result {
	res := Result{Items: []model.LineItem{}}

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		item, ok := ParseRow(line)
		if !ok {
			res.Skipped++
			continue
		}
		res.Items = append(res.Items, item)
		res.Added++
	}

	return res
}

// ParseRow reads a single row. The bool is false when the row must be skipped:
// fewer than four columns, an empty name, a non-numeric quantity or price,
// or a quantity or price that is not positive.
func ParseRow(line string) (model.LineItem, bool) {
	var parts []string
	if strings.Contains(line, "\t") {
		parts = strings.Split(line, "\t")
	} else {
		parts = strings.Split(line, ",")
	}
	if len(parts) < 4 {
		return model.LineItem{}, false
	}

	name := strings.TrimSpace(parts[0])
	if name == "" {
		return model.LineItem{}, false
	}

	quantity, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
	if err != nil || !quantity.IsPositive() {
		return model.LineItem{}, false
	}

	price, err := decimal.NewFromString(strings.TrimSpace(priceCleaner.Replace(strings.TrimSpace(parts[3]))))
	if err != nil || !price.IsPositive() {
		return model.LineItem{}, false
	}

	return model.LineItem{
		ID:        uuid.New().String(),
		Name:      name,
		Quantity:  quantity.InexactFloat64(),
		Unit:      strings.TrimSpace(parts[2]),
		UnitPrice: price.InexactFloat64(),
	}, true
}
