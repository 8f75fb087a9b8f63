package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/model"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/projectfile"
)

// DefaultFile is the project file used when -file is not given.
const DefaultFile = "feasibilitizer_data.json"

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var projectFile = flag.String("file", DefaultFile, "Path to the project JSON file")

// loadProject reads the project file, warning on stderr when it had to be
// repaired or replaced by an empty project.
func loadProject() (model.Project, error) {
	p, status, err := projectfile.Load(*projectFile)
	if err != nil {
		return p, err
	}
	switch status {
	case projectfile.StatusMissing:
		fmt.Fprintf(os.Stderr, "warning, %s does not exist, using an empty project\n", *projectFile)
	case projectfile.StatusRepaired:
		fmt.Fprintf(os.Stderr, "warning, %s was malformed and has been repaired\n", *projectFile)
	case projectfile.StatusCorrupt:
		fmt.Fprintf(os.Stderr, "warning, %s could not be read, using an empty project\n", *projectFile)
	}
	return p, nil
}

func saveProject(p model.Project) error {
	return projectfile.Save(*projectFile, p, time.Now())
}

// growthFlags are the session-only growth rates shared by the analysis commands.
type growthFlags struct {
	inflow  float64
	outflow float64
}

func (g *growthFlags) register(f *flag.FlagSet) {
	f.Float64Var(&g.inflow, "inflow-growth", 0, "Yearly growth of operating cash in, in percent")
	f.Float64Var(&g.outflow, "outflow-growth", 0, "Yearly growth of operating cash out, in percent")
}

func (g *growthFlags) params() model.GrowthParams {
	return model.GrowthParams{InflowGrowthPct: g.inflow, OutflowGrowthPct: g.outflow}
}

// printMarkdown renders md for the terminal, or prints it untouched when raw is set.
func printMarkdown(md string, raw bool) {
	if raw {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
