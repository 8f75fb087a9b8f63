package request

// UpdateSettingsRequest represents a partial update of the project parameters.
type UpdateSettingsRequest struct {
	HorizonYears    *int     `json:"horizonYears,omitempty"`
	DiscountRatePct *float64 `json:"discountRatePct,omitempty"`
}

// AnalysisParams are the session-only parameters of an analysis request,
// read from the query string.
type AnalysisParams struct {
	InflowGrowthPct  float64
	OutflowGrowthPct float64
	VariationPct     float64
}
