package service

import (
	"math"

	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/model"
)

// sanitizeItem replaces non-finite quantity or price with 0 so the item can be
// stored. It reports whether anything had to be replaced.
//
// Example:
//
//	item := model.LineItem{Quantity: math.NaN(), UnitPrice: 10}
//	sanitizeItem(&item) // returns true, item.Quantity == 0
func sanitizeItem(item *model.LineItem) bool {
	defaulted := false
	if math.IsNaN(item.Quantity) || math.IsInf(item.Quantity, 0) {
		item.Quantity = 0
		defaulted = true
	}
	if math.IsNaN(item.UnitPrice) || math.IsInf(item.UnitPrice, 0) {
		item.UnitPrice = 0
		defaulted = true
	}
	return defaulted
}

// sanitizeSettings resets a horizon or discount rate outside the accepted
// range to its default. It reports whether anything had to be replaced.
func sanitizeSettings(settings *model.ProjectSettings) bool {
	defaulted := false
	if settings.HorizonYears < model.MinHorizonYears || settings.HorizonYears > model.MaxHorizonYears {
		settings.HorizonYears = model.DefaultHorizonYears
		defaulted = true
	}
	rate := settings.DiscountRatePct
	if math.IsNaN(rate) || rate < model.MinDiscountRatePct || rate > model.MaxDiscountRatePct {
		settings.DiscountRatePct = model.DefaultDiscountRatePct
		defaulted = true
	}
	return defaulted
}
