// Package sensitivity runs one-variable-at-a-time NPV sensitivity (tornado)
// analysis on top of the valuation engine.
//
// Scenarios are computed on scaled copies of the affected collection. The
// Portfolio passed in is never modified.
package sensitivity

import (
	"fmt"
	"math"
	"slices"

	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/model"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/valuation"
)

// DefaultVariationPct is the perturbation used when the caller does not choose one.
const DefaultVariationPct = 20.0

// Variable names a perturbed input.
type Variable string

const (
	Revenue           Variable = "Revenue"
	OperatingCosts    Variable = "Operating Costs"
	InitialInvestment Variable = "Initial Investment"
	DiscountRate      Variable = "Discount Rate"
)

// Variables lists the analysed inputs in input order, which is also the tie-break order.
var Variables = []Variable{Revenue, OperatingCosts, InitialInvestment, DiscountRate}

// RiskLevel grades how strongly the most sensitive variable moves NPV.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "high"
	RiskMedium RiskLevel = "medium"
	RiskLow    RiskLevel = "low"
)

// Row is the outcome for a single variable. NPVLow and NPVHigh are labelled
// by the direction of NPV, not by the direction of the input change.
type Row struct {
	Variable  Variable `json:"variable"`
	NPVLow    float64  `json:"npvLow"`
	NPVHigh   float64  `json:"npvHigh"`
	Range     float64  `json:"range"`
	LowDelta  float64  `json:"lowDelta"`
	HighDelta float64  `json:"highDelta"`
}

// Result is a ranked sensitivity analysis.
type Result struct {
	BaseNPV       float64   `json:"baseNpv"`
	VariationPct  float64   `json:"variationPct"`
	Rows          []Row     `json:"rows"`
	MostSensitive Variable  `json:"mostSensitive"`
	RiskLevel     RiskLevel `json:"riskLevel"`
}

// ValidateVariation reports whether pct is an acceptable perturbation.
func ValidateVariation(pct float64) error {
	if math.IsNaN(pct) || pct <= 0 || pct > 100 {
		return fmt.Errorf("variation must be greater than 0 and at most 100, got %v", pct)
	}
	return nil
}

// Analyze perturbs each variable by ±variationPct percent and ranks the
// resulting NPV ranges, widest first. Ties keep input order.
func Analyze(p model.Portfolio, variationPct float64) Result {
	base := newBaseline(p)
	up := 1 + variationPct/100
	down := 1 - variationPct/100

	rows := make([]Row, 0, len(Variables))
	for _, v := range Variables {
		var low, high float64
		switch v {
		case Revenue:
			high = base.npvWithItems(model.CategoryInflow, up)
			low = base.npvWithItems(model.CategoryInflow, down)
		case OperatingCosts:
			low = base.npvWithItems(model.CategoryOutflow, up)
			high = base.npvWithItems(model.CategoryOutflow, down)
		case InitialInvestment:
			low = base.npvWithItems(model.CategoryCapex, up)
			high = base.npvWithItems(model.CategoryCapex, down)
		case DiscountRate:
			low = base.npvWithRate(p.DiscountRatePct * up)
			high = base.npvWithRate(p.DiscountRatePct * down)
		}
		rows = append(rows, Row{
			Variable:  v,
			NPVLow:    low,
			NPVHigh:   high,
			Range:     high - low,
			LowDelta:  low - base.npv,
			HighDelta: high - base.npv,
		})
	}

	Rank(rows)

	result := Result{
		BaseNPV:      base.npv,
		VariationPct: variationPct,
		Rows:         rows,
	}
	if len(rows) > 0 {
		result.MostSensitive = rows[0].Variable
		result.RiskLevel = Risk(rows[0].Range, base.npv)
	}
	return result
}

// Rank sorts rows by Range descending, keeping input order for equal ranges.
func Rank(rows []Row) {
	slices.SortStableFunc(rows, func(a, b Row) int {
		switch {
		case a.Range > b.Range:
			return -1
		case a.Range < b.Range:
			return 1
		}
		return 0
	})
}

// Risk grades a range against the base NPV: above half of |base| is high,
// above a fifth is medium, anything else is low.
func Risk(rng, baseNPV float64) RiskLevel {
	switch {
	case rng > math.Abs(baseNPV*0.5):
		return RiskHigh
	case rng > math.Abs(baseNPV*0.2):
		return RiskMedium
	}
	return RiskLow
}

// baseline holds the unperturbed inputs every scenario starts from.
type baseline struct {
	portfolio model.Portfolio
	cashflows []float64
	factors   []float64
	npv       float64
}

func newBaseline(p model.Portfolio) baseline {
	cf := valuation.NetCashflowSeries(p)
	df := valuation.DiscountFactors(p)
	return baseline{
		portfolio: p,
		cashflows: cf,
		factors:   df,
		npv:       valuation.NPV(valuation.DiscountedSeries(cf, df)),
	}
}

// npvWithItems scales the unit prices of one collection by factor and
// discounts the resulting cash flows with the base discount factors.
func (b baseline) npvWithItems(c model.Category, factor float64) float64 {
	scenario := b.portfolio.WithItems(c, scaleItems(b.portfolio.Items(c), factor))
	cf := valuation.NetCashflowSeries(scenario)
	return valuation.NPV(valuation.DiscountedSeries(cf, b.factors))
}

// npvWithRate discounts the base cash flows at a different rate.
func (b baseline) npvWithRate(ratePct float64) float64 {
	df := valuation.DiscountFactorsAt(ratePct, len(b.cashflows)-1)
	return valuation.NPV(valuation.DiscountedSeries(b.cashflows, df))
}

// scaleItems returns a copy of items with every unit price multiplied by factor.
func scaleItems(items []model.LineItem, factor float64) []model.LineItem {
	out := model.Clone(items)
	for i := range out {
		out[i].UnitPrice *= factor
	}
	return out
}
