package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/report"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/valuation"
)

type analyzeCmd struct {
	growth growthFlags
	raw    bool
}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "display the cash flow schedule and decision metrics" }
func (*analyzeCmd) Usage() string {
	return `feasibility [-file <project.json>] analyze [-inflow-growth <pct>] [-outflow-growth <pct>] [-raw]

  Displays NPV, IRR, payback period, the verdict and the yearly schedule.
`
}

func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {
	c.growth.register(f)
	f.BoolVar(&c.raw, "raw", false, "Print raw markdown")
}

func (c *analyzeCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := loadProject()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading project: %v\n", err)
		return subcommands.ExitFailure
	}

	a := valuation.Analyze(p.Portfolio(c.growth.params()))
	if a.DefaultedItems > 0 {
		fmt.Fprintf(os.Stderr, "warning, %d items have unreadable quantity or price and count as zero\n", a.DefaultedItems)
	}

	md, err := report.Markdown(report.Data{Analysis: a, Generated: time.Now()})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering report: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(md, c.raw)
	return subcommands.ExitSuccess
}
