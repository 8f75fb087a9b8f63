// Package valuation turns a Portfolio snapshot into a cash-flow schedule and
// investment-appraisal metrics (NPV, IRR, payback period).
//
// Every function is pure: it reads the Portfolio it is given and returns new
// slices. Degenerate inputs degrade to numeric defaults instead of errors.
//
// Pipeline:
//
//	line items + scalars -> NetCashflowSeries
//	                     -> DiscountedSeries (with DiscountFactors)
//	                     -> CumulativeSeries
//	                     -> NPV / IRR / PaybackPeriod
package valuation

import (
	"math"

	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/model"
)

// Amount is the value of a line item together with whether it had to be
// defaulted because quantity or price was not a finite number.
type Amount struct {
	Value     float64 `json:"value"`
	Defaulted bool    `json:"defaulted"`
}

// Total returns quantity × unit price for a line item.
// Items with a non-finite quantity or price contribute 0 and are marked Defaulted.
func Total(item model.LineItem) Amount {
	if !isFinite(item.Quantity) || !isFinite(item.UnitPrice) {
		return Amount{Value: 0, Defaulted: true}
	}
	v := item.Quantity * item.UnitPrice
	if !isFinite(v) {
		return Amount{Value: 0, Defaulted: true}
	}
	return Amount{Value: v}
}

// sumItems adds up Total over a collection.
func sumItems(items []model.LineItem) float64 {
	var sum float64
	for _, item := range items {
		sum += Total(item).Value
	}
	return sum
}

// CapexTotal returns the sum of all capital item amounts.
func CapexTotal(p model.Portfolio) float64 {
	return sumItems(p.CapitalItems)
}

// YearlyInflow returns the base-year (pre-growth) inflow.
func YearlyInflow(p model.Portfolio) float64 {
	return sumItems(p.InflowItems)
}

// YearlyOutflow returns the base-year (pre-growth) outflow.
func YearlyOutflow(p model.Portfolio) float64 {
	return sumItems(p.OutflowItems)
}

// Grow compounds base at pct percent per year for the given number of years.
// Growth is always taken from the fixed base: base × (1 + pct/100)^year.
func Grow(base, pct float64, year int) float64 {
	if year == 0 {
		return base
	}
	return base * math.Pow(1+pct/100, float64(year))
}

// horizon returns the number of projected years, never negative.
func horizon(p model.Portfolio) int {
	if p.HorizonYears < 0 {
		return 0
	}
	return p.HorizonYears
}

// NetCashflowSeries returns the undiscounted net cash flow per year.
//
// Formula:
//
//	cf[0] = -CapexTotal
//	cf[y] = YearlyInflow × (1+gin)^y − YearlyOutflow × (1+gout)^y   for y in 1..HorizonYears
//
// The result has HorizonYears+1 elements.
func NetCashflowSeries(p model.Portfolio) []float64 {
	years := horizon(p)
	inflow := YearlyInflow(p)
	outflow := YearlyOutflow(p)

	cf := make([]float64, years+1)
	cf[0] = -CapexTotal(p)
	for y := 1; y <= years; y++ {
		cf[y] = Grow(inflow, p.InflowGrowthPct, y) - Grow(outflow, p.OutflowGrowthPct, y)
	}
	return cf
}

// DiscountFactors returns (1+r)^y for y in 0..HorizonYears, with r = DiscountRatePct/100.
func DiscountFactors(p model.Portfolio) []float64 {
	return DiscountFactorsAt(p.DiscountRatePct, horizon(p))
}

// DiscountFactorsAt is DiscountFactors for an explicit rate and horizon.
func DiscountFactorsAt(ratePct float64, years int) []float64 {
	if years < 0 {
		years = 0
	}
	r := ratePct / 100
	df := make([]float64, years+1)
	df[0] = 1.0
	for y := 1; y <= years; y++ {
		df[y] = math.Pow(1+r, float64(y))
	}
	return df
}

// DiscountedSeries divides each cash flow by its discount factor.
// A factor of exactly 0 yields 0 for that element. The result is as long as
// the shorter of the two inputs.
func DiscountedSeries(cashflows, factors []float64) []float64 {
	n := min(len(cashflows), len(factors))
	out := make([]float64, n)
	for i := range n {
		if factors[i] == 0 {
			continue
		}
		out[i] = cashflows[i] / factors[i]
	}
	return out
}

// CumulativeSeries returns the running prefix sum of discounted.
func CumulativeSeries(discounted []float64) []float64 {
	out := make([]float64, len(discounted))
	var running float64
	for i, v := range discounted {
		running += v
		out[i] = running
	}
	return out
}

// NPV is the sum of the discounted series.
func NPV(discounted []float64) float64 {
	var sum float64
	for _, v := range discounted {
		sum += v
	}
	return sum
}

// PaybackPeriod returns the fractional number of years until the cumulative
// discounted cash flow turns non-negative, interpolating linearly inside the
// crossing year:
//
//	payback = (i-1) + |c[i-1]| / (c[i] - c[i-1])
//
// A series that never recovers returns the full horizon (len-1).
func PaybackPeriod(cumulative []float64) float64 {
	for i, c := range cumulative {
		if c < 0 {
			continue
		}
		if i == 0 {
			return 0
		}
		prev := cumulative[i-1]
		if delta := c - prev; delta != 0 {
			return float64(i-1) + math.Abs(prev)/delta
		}
	}
	if len(cumulative) == 0 {
		return 0
	}
	return float64(len(cumulative) - 1)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
