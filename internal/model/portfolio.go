package model

import "time"

// Default project parameters used when nothing has been stored yet.
const (
	DefaultHorizonYears    = 5
	DefaultDiscountRatePct = 12.0
)

// Accepted ranges for the stored project parameters.
const (
	MinHorizonYears    = 1
	MaxHorizonYears    = 30
	MinDiscountRatePct = 0.0
	MaxDiscountRatePct = 100.0
)

// Portfolio is the full input to the valuation engine: the three ordered
// collections plus the scalar parameters. Growth rates are analysis
// parameters and are never persisted.
type Portfolio struct {
	CapitalItems     []LineItem `json:"capitalItems"`
	InflowItems      []LineItem `json:"inflowItems"`
	OutflowItems     []LineItem `json:"outflowItems"`
	HorizonYears     int        `json:"horizonYears"`
	DiscountRatePct  float64    `json:"discountRatePct"`
	InflowGrowthPct  float64    `json:"inflowGrowthPct"`
	OutflowGrowthPct float64    `json:"outflowGrowthPct"`
}

// Items returns the collection for the given category.
func (p Portfolio) Items(c Category) []LineItem {
	switch c {
	case CategoryCapex:
		return p.CapitalItems
	case CategoryInflow:
		return p.InflowItems
	case CategoryOutflow:
		return p.OutflowItems
	}
	return nil
}

// WithItems returns a copy of p whose collection for c is replaced by items.
// The receiver is left untouched.
func (p Portfolio) WithItems(c Category, items []LineItem) Portfolio {
	switch c {
	case CategoryCapex:
		p.CapitalItems = items
	case CategoryInflow:
		p.InflowItems = items
	case CategoryOutflow:
		p.OutflowItems = items
	}
	return p
}

// GrowthParams carries the session-only growth rates for an analysis request.
type GrowthParams struct {
	InflowGrowthPct  float64 `json:"inflowGrowthPct"`
	OutflowGrowthPct float64 `json:"outflowGrowthPct"`
}

// Apply returns a copy of p using the given growth rates.
func (g GrowthParams) Apply(p Portfolio) Portfolio {
	p.InflowGrowthPct = g.InflowGrowthPct
	p.OutflowGrowthPct = g.OutflowGrowthPct
	return p
}

// ProjectSettings is the persisted singleton holding the scalar parameters.
type ProjectSettings struct {
	HorizonYears      int       `json:"horizonYears"`
	DiscountRatePct   float64   `json:"discountRatePct"`
	DefaultDataLoaded bool      `json:"defaultDataLoaded"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// Project is the stored state: settings plus the three collections.
type Project struct {
	Settings     ProjectSettings `json:"settings"`
	CapitalItems []LineItem      `json:"capitalItems"`
	InflowItems  []LineItem      `json:"inflowItems"`
	OutflowItems []LineItem      `json:"outflowItems"`
}

// Items returns the collection for the given category.
func (p Project) Items(c Category) []LineItem {
	switch c {
	case CategoryCapex:
		return p.CapitalItems
	case CategoryInflow:
		return p.InflowItems
	case CategoryOutflow:
		return p.OutflowItems
	}
	return nil
}

// Portfolio converts the stored project into engine input with the given growth rates.
func (p Project) Portfolio(g GrowthParams) Portfolio {
	return g.Apply(Portfolio{
		CapitalItems:    p.CapitalItems,
		InflowItems:     p.InflowItems,
		OutflowItems:    p.OutflowItems,
		HorizonYears:    p.Settings.HorizonYears,
		DiscountRatePct: p.Settings.DiscountRatePct,
	})
}
