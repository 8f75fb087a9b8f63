package valuation

import "github.com/ndewijer/Feasibility-Calculator-Backend/internal/model"

// Recommendation is the overall feasibility call derived from the decision criteria.
type Recommendation string

const (
	RecommendProceed Recommendation = "proceed"
	RecommendCaution Recommendation = "caution"
	RecommendReject  Recommendation = "reject"
)

// ScheduleRow is one year of the cash-flow schedule.
type ScheduleRow struct {
	Year               int     `json:"year"`
	NetCashflow        float64 `json:"netCashflow"`
	DiscountFactor     float64 `json:"discountFactor"`
	DiscountedCashflow float64 `json:"discountedCashflow"`
	CumulativeCashflow float64 `json:"cumulativeCashflow"`
}

// Schedule is the per-year projection, year 0 through the horizon.
type Schedule []ScheduleRow

// NetCashflows returns the net cash flow column.
func (s Schedule) NetCashflows() []float64 {
	return s.column(func(r ScheduleRow) float64 { return r.NetCashflow })
}

// DiscountFactors returns the discount factor column.
func (s Schedule) DiscountFactors() []float64 {
	return s.column(func(r ScheduleRow) float64 { return r.DiscountFactor })
}

// Discounted returns the discounted cash flow column.
func (s Schedule) Discounted() []float64 {
	return s.column(func(r ScheduleRow) float64 { return r.DiscountedCashflow })
}

// Cumulative returns the cumulative discounted cash flow column.
func (s Schedule) Cumulative() []float64 {
	return s.column(func(r ScheduleRow) float64 { return r.CumulativeCashflow })
}

func (s Schedule) column(get func(ScheduleRow) float64) []float64 {
	out := make([]float64, len(s))
	for i, row := range s {
		out[i] = get(row)
	}
	return out
}

// Criterion is one line of the decision table.
type Criterion struct {
	Metric    string  `json:"metric"`
	Value     float64 `json:"value"`
	Threshold float64 `json:"threshold"`
	Passed    bool    `json:"passed"`
}

// Verdict summarises the three decision criteria.
type Verdict struct {
	NPV            Criterion      `json:"npv"`
	IRR            Criterion      `json:"irr"`
	Payback        Criterion      `json:"payback"`
	Passed         int            `json:"passed"`
	Recommendation Recommendation `json:"recommendation"`
}

// Summary is the quick overview of base-year figures.
type Summary struct {
	Capex          float64 `json:"capex"`
	AnnualRevenue  float64 `json:"annualRevenue"`
	AnnualExpenses float64 `json:"annualExpenses"`
	NetPerYear     float64 `json:"netPerYear"`
}

// Analysis is the complete result of running a Portfolio through the engine.
type Analysis struct {
	HorizonYears     int      `json:"horizonYears"`
	DiscountRatePct  float64  `json:"discountRatePct"`
	InflowGrowthPct  float64  `json:"inflowGrowthPct"`
	OutflowGrowthPct float64  `json:"outflowGrowthPct"`
	Schedule         Schedule `json:"schedule"`
	Summary          Summary  `json:"summary"`
	NPV              float64  `json:"npv"`
	IRR              float64  `json:"irr"`
	IRRDefined       bool     `json:"irrDefined"`
	PaybackYears     float64  `json:"paybackYears"`
	DefaultedItems   int      `json:"defaultedItems"`
	Verdict          Verdict  `json:"verdict"`
}

// Analyze runs the full pipeline once and assembles the schedule and metrics.
func Analyze(p model.Portfolio) Analysis {
	cf := NetCashflowSeries(p)
	df := DiscountFactors(p)
	discounted := DiscountedSeries(cf, df)
	cumulative := CumulativeSeries(discounted)

	schedule := make(Schedule, len(discounted))
	for y := range discounted {
		schedule[y] = ScheduleRow{
			Year:               y,
			NetCashflow:        cf[y],
			DiscountFactor:     df[y],
			DiscountedCashflow: discounted[y],
			CumulativeCashflow: cumulative[y],
		}
	}

	irr, defined := SolveIRR(cf)
	a := Analysis{
		HorizonYears:     horizon(p),
		DiscountRatePct:  p.DiscountRatePct,
		InflowGrowthPct:  p.InflowGrowthPct,
		OutflowGrowthPct: p.OutflowGrowthPct,
		Schedule:         schedule,
		Summary:          Summarize(p),
		NPV:              NPV(discounted),
		IRR:              irr,
		IRRDefined:       defined,
		PaybackYears:     PaybackPeriod(cumulative),
		DefaultedItems:   CountDefaulted(p),
	}
	a.Verdict = Evaluate(a.NPV, a.IRR, a.PaybackYears, a.DiscountRatePct, a.HorizonYears)
	return a
}

// Summarize returns the base-year figures shown in the quick summary.
func Summarize(p model.Portfolio) Summary {
	in := YearlyInflow(p)
	out := YearlyOutflow(p)
	return Summary{
		Capex:          CapexTotal(p),
		AnnualRevenue:  in,
		AnnualExpenses: out,
		NetPerYear:     in - out,
	}
}

// CountDefaulted returns how many items across all collections contributed a defaulted amount.
func CountDefaulted(p model.Portfolio) int {
	n := 0
	for _, c := range model.Categories {
		for _, item := range p.Items(c) {
			if Total(item).Defaulted {
				n++
			}
		}
	}
	return n
}

// Evaluate applies the decision criteria: NPV > 0, IRR above the discount
// rate, and payback within the horizon. All three passing recommends
// proceeding, two recommends caution, anything less rejects.
func Evaluate(npv, irr, paybackYears, discountRatePct float64, horizonYears int) Verdict {
	v := Verdict{
		NPV:     Criterion{Metric: "NPV", Value: npv, Threshold: 0, Passed: npv > 0},
		IRR:     Criterion{Metric: "IRR", Value: irr * 100, Threshold: discountRatePct, Passed: irr*100 > discountRatePct},
		Payback: Criterion{Metric: "Payback Period", Value: paybackYears, Threshold: float64(horizonYears), Passed: paybackYears <= float64(horizonYears)},
	}
	for _, c := range []Criterion{v.NPV, v.IRR, v.Payback} {
		if c.Passed {
			v.Passed++
		}
	}

	switch v.Passed {
	case 3:
		v.Recommendation = RecommendProceed
	case 2:
		v.Recommendation = RecommendCaution
	default:
		v.Recommendation = RecommendReject
	}
	return v
}

// GrowthExample projects base forward for years 0..years at pct percent.
func GrowthExample(base, pct float64, years int) []float64 {
	if years < 0 {
		years = 0
	}
	out := make([]float64, years+1)
	for y := range out {
		out[y] = Grow(base, pct, y)
	}
	return out
}
