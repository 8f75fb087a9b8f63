package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/report"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/sensitivity"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/valuation"
)

type sensitivityCmd struct {
	growth    growthFlags
	variation float64
	raw       bool
}

func (*sensitivityCmd) Name() string { return "sensitivity" }
func (*sensitivityCmd) Synopsis() string {
	return "rank revenue, costs, investment and discount rate by their effect on NPV"
}
func (*sensitivityCmd) Usage() string {
	return `feasibility [-file <project.json>] sensitivity [-v <pct>] [-inflow-growth <pct>] [-outflow-growth <pct>] [-raw]

  Varies each input by ±v percent and shows the resulting NPV range,
  most sensitive first.
`
}

func (c *sensitivityCmd) SetFlags(f *flag.FlagSet) {
	c.growth.register(f)
	f.Float64Var(&c.variation, "v", sensitivity.DefaultVariationPct, "Variation in percent")
	f.BoolVar(&c.raw, "raw", false, "Print raw markdown")
}

func (c *sensitivityCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := sensitivity.ValidateVariation(c.variation); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	p, err := loadProject()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading project: %v\n", err)
		return subcommands.ExitFailure
	}

	portfolio := p.Portfolio(c.growth.params())
	result := sensitivity.Analyze(portfolio, c.variation)

	md, err := report.Markdown(report.Data{
		Analysis:    valuation.Analyze(portfolio),
		Sensitivity: &result,
		Generated:   time.Now(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering report: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(md, c.raw)
	return subcommands.ExitSuccess
}
