package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/export"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/report"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/sensitivity"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/valuation"
)

type exportCmd struct {
	growth    growthFlags
	format    string
	output    string
	variation float64
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the analysis as a spreadsheet or report" }
func (*exportCmd) Usage() string {
	return `feasibility [-file <project.json>] export [-f xlsx|md|html] [-o <path>] [-v <pct>]

  Writes the cash flow analysis workbook, or a Markdown or HTML report
  including the sensitivity analysis. Output goes to stdout unless -o is set.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	c.growth.register(f)
	f.StringVar(&c.format, "f", "xlsx", "Output format (xlsx, md, html)")
	f.StringVar(&c.output, "o", "", "Output file (defaults to stdout)")
	f.Float64Var(&c.variation, "v", sensitivity.DefaultVariationPct, "Sensitivity variation in percent for reports")
}

func (c *exportCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var reportFormat report.Format
	if c.format != "xlsx" {
		var err error
		if reportFormat, err = report.ParseFormat(c.format); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		if err := sensitivity.ValidateVariation(c.variation); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	p, err := loadProject()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading project: %v\n", err)
		return subcommands.ExitFailure
	}

	var out io.Writer = os.Stdout
	if c.output != "" {
		file, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		out = file
	}
	w := bufio.NewWriter(out)

	portfolio := p.Portfolio(c.growth.params())
	analysis := valuation.Analyze(portfolio)
	now := time.Now()

	if c.format == "xlsx" {
		err = export.WriteWorkbook(w, export.BuildTable(portfolio, analysis, now))
	} else {
		result := sensitivity.Analyze(portfolio, c.variation)
		err = report.Write(w, reportFormat, report.Data{Analysis: analysis, Sensitivity: &result, Generated: now})
	}
	if err == nil {
		err = w.Flush()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing export: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.output != "" {
		fmt.Fprintf(os.Stderr, "Wrote %s\n", c.output)
	}
	return subcommands.ExitSuccess
}
