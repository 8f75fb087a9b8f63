package request

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/model"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/sensitivity"
)

const (
	defaultGrowthYears  = 3
	maxGrowthYears      = 50
)

// ParseAnalysisParams extracts and validates analysis parameters from query parameters.
// All parameters are optional.
//
// Validation rules:
//   - inflow_growth/outflow_growth: percentages between -100 and 100 (defaults to 0)
//   - variation: percentage greater than 0 and at most 100 (defaults to 20)
//
// Returns an error if any parameter fails validation.
func ParseAnalysisParams(inflowGrowthParam, outflowGrowthParam, variationParam string) (*AnalysisParams, error) {
	params := &AnalysisParams{VariationPct: sensitivity.DefaultVariationPct}

	var err error
	if params.InflowGrowthPct, err = parseGrowth("inflow_growth", inflowGrowthParam); err != nil {
		return nil, err
	}
	if params.OutflowGrowthPct, err = parseGrowth("outflow_growth", outflowGrowthParam); err != nil {
		return nil, err
	}

	if variationParam != "" {
		v, err := parsePercent("variation", variationParam)
		if err != nil {
			return nil, err
		}
		if v <= 0 || v > 100 {
			return nil, fmt.Errorf("variation must be greater than 0 and at most 100")
		}
		params.VariationPct = v
	}

	return params, nil
}

// Growth returns the growth part of the parameters.
func (p AnalysisParams) Growth() model.GrowthParams {
	return model.GrowthParams{
		InflowGrowthPct:  p.InflowGrowthPct,
		OutflowGrowthPct: p.OutflowGrowthPct,
	}
}

// ParseGrowthExampleParams validates the growth-example query: a growth
// percentage (defaults to 0) and a number of years (defaults to 3, at most 50).
func ParseGrowthExampleParams(growthParam, yearsParam string) (float64, int, error) {
	growth, err := parseGrowth("growth", growthParam)
	if err != nil {
		return 0, 0, err
	}

	years := defaultGrowthYears
	if yearsParam != "" {
		years, err = strconv.Atoi(strings.TrimSpace(yearsParam))
		if err != nil {
			return 0, 0, fmt.Errorf("invalid years: must be a number")
		}
		if years < 0 || years > maxGrowthYears {
			return 0, 0, fmt.Errorf("years must be between 0 and %d", maxGrowthYears)
		}
	}

	return growth, years, nil
}

func parseGrowth(name, raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := parsePercent(name, raw)
	if err != nil {
		return 0, err
	}
	if v < -100 || v > 100 {
		return 0, fmt.Errorf("%s must be between -100 and 100", name)
	}
	return v, nil
}

func parsePercent(name, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid %s: must be a number", name)
	}
	return v, nil
}
