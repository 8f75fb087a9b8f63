package sensitivity

import (
	"math"
	"reflect"
	"testing"

	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/model"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/valuation"
)

func npvOf(p model.Portfolio) float64 {
	return valuation.NPV(valuation.DiscountedSeries(valuation.NetCashflowSeries(p), valuation.DiscountFactors(p)))
}

func rowFor(t *testing.T, r Result, v Variable) Row {
	t.Helper()
	for _, row := range r.Rows {
		if row.Variable == v {
			return row
		}
	}
	t.Fatalf("Expected a row for %s", v)
	return Row{}
}

func TestAnalyze_SingleInflowItem(t *testing.T) {
	p := model.Portfolio{
		InflowItems:     []model.LineItem{{ID: "rev", Name: "Revenue", Quantity: 1, Unit: "unit", UnitPrice: 1000}},
		HorizonYears:    3,
		DiscountRatePct: 10,
	}

	result := Analyze(p, 20)
	revenue := rowFor(t, result, Revenue)

	high := p
	high.InflowItems = []model.LineItem{{ID: "rev", Quantity: 1, UnitPrice: 1200}}
	low := p
	low.InflowItems = []model.LineItem{{ID: "rev", Quantity: 1, UnitPrice: 800}}

	if math.Abs(revenue.NPVHigh-npvOf(high)) > 1e-9 {
		t.Errorf("Expected NPVHigh %v (price 1200), got %v", npvOf(high), revenue.NPVHigh)
	}
	if math.Abs(revenue.NPVLow-npvOf(low)) > 1e-9 {
		t.Errorf("Expected NPVLow %v (price 800), got %v", npvOf(low), revenue.NPVLow)
	}
	if p.InflowItems[0].UnitPrice != 1000 {
		t.Errorf("Expected stored price to stay 1000, got %v", p.InflowItems[0].UnitPrice)
	}
}

func TestAnalyze_LeavesPortfolioUntouched(t *testing.T) {
	p := model.Portfolio{
		CapitalItems:    []model.LineItem{{ID: "c1", Quantity: 2, UnitPrice: 5000}},
		InflowItems:     []model.LineItem{{ID: "i1", Quantity: 1, UnitPrice: 4000}, {ID: "i2", Quantity: 3, UnitPrice: 250}},
		OutflowItems:    []model.LineItem{{ID: "o1", Quantity: 1, UnitPrice: 900}},
		HorizonYears:    5,
		DiscountRatePct: 12,
	}
	before := model.Portfolio{
		CapitalItems:    model.Clone(p.CapitalItems),
		InflowItems:     model.Clone(p.InflowItems),
		OutflowItems:    model.Clone(p.OutflowItems),
		HorizonYears:    p.HorizonYears,
		DiscountRatePct: p.DiscountRatePct,
	}

	Analyze(p, 35)

	if !reflect.DeepEqual(p, before) {
		t.Errorf("Expected portfolio unchanged, got %+v", p)
	}
}

func TestAnalyze_Directions(t *testing.T) {
	p := model.Portfolio{
		CapitalItems:    []model.LineItem{{ID: "c", Quantity: 1, UnitPrice: 10_000}},
		InflowItems:     []model.LineItem{{ID: "i", Quantity: 1, UnitPrice: 8_000}},
		OutflowItems:    []model.LineItem{{ID: "o", Quantity: 1, UnitPrice: 3_000}},
		HorizonYears:    4,
		DiscountRatePct: 10,
	}
	result := Analyze(p, 20)
	base := npvOf(p)

	if math.Abs(result.BaseNPV-base) > 1e-9 {
		t.Errorf("Expected base NPV %v, got %v", base, result.BaseNPV)
	}

	for _, v := range Variables {
		row := rowFor(t, result, v)
		if !(row.NPVLow < base && base < row.NPVHigh) {
			t.Errorf("%s: expected low %v < base %v < high %v", v, row.NPVLow, base, row.NPVHigh)
		}
		if math.Abs(row.Range-(row.NPVHigh-row.NPVLow)) > 1e-9 {
			t.Errorf("%s: range %v does not match high-low", v, row.Range)
		}
	}

	// Raising costs lowers NPV: the increased-cost scenario is the low outcome.
	costs := rowFor(t, result, OperatingCosts)
	raised := p
	raised.OutflowItems = []model.LineItem{{ID: "o", Quantity: 1, UnitPrice: 3_600}}
	if math.Abs(costs.NPVLow-npvOf(raised)) > 1e-9 {
		t.Errorf("Expected Operating Costs NPVLow %v, got %v", npvOf(raised), costs.NPVLow)
	}

	// The increased rate is the low outcome and uses the base cash flows.
	rate := rowFor(t, result, DiscountRate)
	higherRate := p
	higherRate.DiscountRatePct = 12
	if math.Abs(rate.NPVLow-npvOf(higherRate)) > 1e-9 {
		t.Errorf("Expected Discount Rate NPVLow %v, got %v", npvOf(higherRate), rate.NPVLow)
	}
}

func TestAnalyze_RankingAndRisk(t *testing.T) {
	t.Run("ranks by range descending", func(t *testing.T) {
		p := model.Portfolio{
			CapitalItems:    []model.LineItem{{ID: "c", Quantity: 1, UnitPrice: 1_000}},
			InflowItems:     []model.LineItem{{ID: "i", Quantity: 1, UnitPrice: 50_000}},
			OutflowItems:    []model.LineItem{{ID: "o", Quantity: 1, UnitPrice: 5_000}},
			HorizonYears:    5,
			DiscountRatePct: 12,
		}
		result := Analyze(p, 10)

		for i := 1; i < len(result.Rows); i++ {
			if result.Rows[i-1].Range < result.Rows[i].Range {
				t.Errorf("Rows not sorted: %v before %v", result.Rows[i-1], result.Rows[i])
			}
		}
		if result.MostSensitive != Revenue {
			t.Errorf("Expected Revenue to be most sensitive, got %s", result.MostSensitive)
		}
	})

	t.Run("ties keep input order", func(t *testing.T) {
		result := Analyze(model.Portfolio{HorizonYears: 1, DiscountRatePct: 10}, 20)

		got := make([]Variable, len(result.Rows))
		for i, r := range result.Rows {
			got[i] = r.Variable
		}
		if !reflect.DeepEqual(got, Variables) {
			t.Errorf("Expected %v, got %v", Variables, got)
		}
	})

	t.Run("risk thresholds", func(t *testing.T) {
		cases := []struct {
			rng, base float64
			want      RiskLevel
		}{
			{rng: 60, base: 100, want: RiskHigh},
			{rng: 30, base: -100, want: RiskMedium},
			{rng: 20, base: 100, want: RiskLow},
		}
		for _, c := range cases {
			if got := Risk(c.rng, c.base); got != c.want {
				t.Errorf("Risk(%v, %v): expected %s, got %s", c.rng, c.base, c.want, got)
			}
		}
	})
}

func TestValidateVariation(t *testing.T) {
	for _, ok := range []float64{5, 20, 100} {
		if err := ValidateVariation(ok); err != nil {
			t.Errorf("Expected %v to be valid, got %v", ok, err)
		}
	}
	for _, bad := range []float64{0, -5, 101, math.NaN()} {
		if err := ValidateVariation(bad); err == nil {
			t.Errorf("Expected %v to be rejected", bad)
		}
	}
}
