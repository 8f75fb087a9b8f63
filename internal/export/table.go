// Package export lays out an analysed project as a cash-flow table and
// writes it as a spreadsheet.
//
// BuildTable produces a format-neutral row model. Every summary figure is
// copied from the valuation.Analysis it is given, so an export shows exactly
// the numbers the API returned for the same inputs.
package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/model"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/valuation"
)

const (
	Title = "CASH FLOW ANALYSIS"

	SectionCapex    = "CAPITAL EXPENDITURE (CAPEX)"
	SectionRevenue  = "OPERATIONAL REVENUE (OPEX - Cash In)"
	SectionExpenses = "OPERATIONAL EXPENSES (OPEX - Cash Out)"
	SectionSummary  = "FINANCIAL SUMMARY"
)

// Section fill colours.
const (
	FillCapex    = "DDEBF7"
	FillRevenue  = "D4E6C4"
	FillExpenses = "F8D7DA"
	FillSummary  = "FFF2CC"
)

// CellKind tells a writer how to render a Cell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellNumber
	CellText
)

// Cell is one value in the Total or Year columns.
type Cell struct {
	Kind   CellKind
	Number float64
	Text   string
}

func num(f float64) Cell  { return Cell{Kind: CellNumber, Number: f} }
func text(s string) Cell  { return Cell{Kind: CellText, Text: s} }
func blank() Cell         { return Cell{} }
func blanks(n int) []Cell { return make([]Cell, n) }

// Row is a labelled line of the table. Cells holds the Total column followed
// by Year 0 through Year N.
type Row struct {
	Label string
	Cells []Cell
	// Precise rows (discount factors) are shown with four decimals.
	Precise bool
	// Bold marks subtotal and summary rows.
	Bold bool
}

// Section is a titled group of rows.
type Section struct {
	Title string
	Fill  string
	Rows  []Row
}

// Table is the complete cash-flow table.
type Table struct {
	Title     string
	Info      string
	Generated string
	Header    []string
	Sections  []Section
}

// Columns returns the number of columns including the description column.
func (t Table) Columns() int {
	return len(t.Header)
}

// BuildTable lays out p and its analysis a. a must have been produced from p.
func BuildTable(p model.Portfolio, a valuation.Analysis, generated time.Time) Table {
	years := a.HorizonYears
	rate := strconv.FormatFloat(a.DiscountRatePct, 'f', -1, 64)

	header := []string{"Description", "Total"}
	for y := 0; y <= years; y++ {
		header = append(header, fmt.Sprintf("Year %d", y))
	}

	t := Table{
		Title:     Title,
		Info:      fmt.Sprintf("Project Duration: %d years | Discount Rate: %s%%", years, rate),
		Generated: "Generated: " + generated.Format("2006-01-02 15:04:05"),
		Header:    header,
	}

	t.Sections = append(t.Sections,
		capexSection(p, years),
		operatingSection(SectionRevenue, FillRevenue, "Total Revenue", p.InflowItems, p.InflowGrowthPct, 1, years),
		operatingSection(SectionExpenses, FillExpenses, "Total Expenses", p.OutflowItems, p.OutflowGrowthPct, -1, years),
		summarySection(a, rate, years),
	)

	return t
}

func capexSection(p model.Portfolio, years int) Section {
	s := Section{Title: SectionCapex, Fill: FillCapex}
	total := 0.0
	for _, item := range p.CapitalItems {
		v := -valuation.Total(item).Value
		total += v
		s.Rows = append(s.Rows, Row{
			Label: "  " + item.Name,
			Cells: append([]Cell{num(v), num(v)}, blanks(years)...),
		})
	}
	s.Rows = append(s.Rows, Row{
		Label: "Total CAPEX",
		Cells: append([]Cell{num(total), num(total)}, blanks(years)...),
		Bold:  true,
	})
	return s
}

// operatingSection lays out a recurring collection. sign is -1 for outflows,
// which are shown as negative amounts.
func operatingSection(title, fill, totalLabel string, items []model.LineItem, growthPct, sign float64, years int) Section {
	s := Section{Title: title, Fill: fill}
	base := 0.0
	for _, item := range items {
		v := sign * valuation.Total(item).Value
		base += v
		cells := []Cell{num(v), blank()}
		for y := 1; y <= years; y++ {
			cells = append(cells, num(valuation.Grow(v, growthPct, y)))
		}
		s.Rows = append(s.Rows, Row{Label: "  " + item.Name, Cells: cells})
	}

	cells := []Cell{blank(), blank()}
	for y := 1; y <= years; y++ {
		cells = append(cells, num(valuation.Grow(base, growthPct, y)))
	}
	s.Rows = append(s.Rows, Row{Label: totalLabel, Cells: cells, Bold: true})
	return s
}

func summarySection(a valuation.Analysis, rate string, years int) Section {
	series := func(label string, values []float64, precise bool) Row {
		cells := []Cell{blank()}
		for _, v := range values {
			cells = append(cells, num(v))
		}
		return Row{Label: label, Cells: cells, Precise: precise, Bold: true}
	}
	metric := func(label string, c Cell) Row {
		return Row{Label: label, Cells: append([]Cell{c}, blanks(years+1)...), Bold: true}
	}

	return Section{
		Title: SectionSummary,
		Fill:  FillSummary,
		Rows: []Row{
			series("NET CASH FLOW", a.Schedule.NetCashflows(), false),
			series(fmt.Sprintf("DISCOUNT FACTOR (MARR %s%%)", rate), a.Schedule.DiscountFactors(), true),
			series("DISCOUNTED CASH FLOW", a.Schedule.Discounted(), false),
			series("CUMULATIVE CASH FLOW", a.Schedule.Cumulative(), false),
			metric("NPV", num(a.NPV)),
			metric("IRR", text(fmt.Sprintf("%.2f%%", a.IRR*100))),
			metric("Payback Period", text(fmt.Sprintf("%.2f years", a.PaybackYears))),
		},
	}
}
