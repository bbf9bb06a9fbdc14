// Command ccs simulates the assignment of collection accounts to portfolios.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"path"

	"github.com/etnz/cartera/cmd"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// Exits when called by the shell for completion, or to install it.
	cmd.Completion(commander, flag.CommandLine).Complete("ccs")

	flag.Parse()
	if !*cmd.Verbose {
		log.SetOutput(io.Discard)
	}

	// Unknown subcommands may be provided by a ccs-<name> binary in PATH.
	if flag.NArg() > 0 && !isCommand(commander, flag.Arg(0)) {
		if found, code := cmd.RunExtension(flag.Arg(0), flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

func isCommand(c *subcommands.Commander, name string) bool {
	found := false
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		if cmd.Name() == name {
			found = true
		}
	})
	return found
}
