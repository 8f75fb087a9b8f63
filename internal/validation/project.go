package validation

import (
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/api/request"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/model"
)

// Horizon bounds accepted from the API.
const (
	MinHorizonYears = model.MinHorizonYears
	MaxHorizonYears = model.MaxHorizonYears
)

func ValidateUpdateSettings(req request.UpdateSettingsRequest) error {
	errors := make(map[string]string)

	if req.HorizonYears == nil && req.DiscountRatePct == nil {
		errors["body"] = "at least one of horizonYears or discountRatePct is required"
	}

	if req.HorizonYears != nil && (*req.HorizonYears < MinHorizonYears || *req.HorizonYears > MaxHorizonYears) {
		errors["horizonYears"] = "horizonYears must be between 1 and 30"
	}

	if req.DiscountRatePct != nil && (!isFinite(*req.DiscountRatePct) || *req.DiscountRatePct < model.MinDiscountRatePct || *req.DiscountRatePct > model.MaxDiscountRatePct) {
		errors["discountRatePct"] = "discountRatePct must be between 0 and 100"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
