package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/importer"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/model"
)

type importCmd struct {
	category string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "append rows pasted from a spreadsheet to a category" }
func (*importCmd) Usage() string {
	return `feasibility [-file <project.json>] import -c <capex|inflow|outflow> [rows.txt]

  Reads Name | Qty | Unit | Price rows, tab or comma separated, from the
  given file or from stdin and appends the readable ones to the category.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.category, "c", string(model.CategoryCapex), "Category to import into (capex, inflow, outflow)")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	category, err := model.ParseCategory(c.category)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	var in io.Reader = os.Stdin
	if f.NArg() > 0 {
		file, err := os.Open(f.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", f.Arg(0), err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		in = file
	}

	text, err := io.ReadAll(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading rows: %v\n", err)
		return subcommands.ExitFailure
	}

	result := importer.Parse(string(text))
	if result.Added == 0 {
		fmt.Fprintf(os.Stderr, "No rows imported, %d skipped\n", result.Skipped)
		return subcommands.ExitFailure
	}

	p, err := loadProject()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading project: %v\n", err)
		return subcommands.ExitFailure
	}

	switch category {
	case model.CategoryCapex:
		p.CapitalItems = append(p.CapitalItems, result.Items...)
	case model.CategoryInflow:
		p.InflowItems = append(p.InflowItems, result.Items...)
	case model.CategoryOutflow:
		p.OutflowItems = append(p.OutflowItems, result.Items...)
	}

	if err := saveProject(p); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving project: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Imported %d rows into %s, %d skipped\n", result.Added, category.Label(), result.Skipped)
	return subcommands.ExitSuccess
}
