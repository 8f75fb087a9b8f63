// Command feasibility analyses a project file from the terminal without
// running the HTTP server.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	commander.Register(&analyzeCmd{}, "analysis")
	commander.Register(&sensitivityCmd{}, "analysis")
	commander.Register(&exportCmd{}, "analysis")

	commander.Register(&importCmd{}, "project")
	commander.Register(&resetCmd{}, "project")
	commander.Register(&restoreCmd{}, "project")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
