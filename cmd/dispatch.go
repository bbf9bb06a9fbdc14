package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/etnz/cartera/date"
	"github.com/etnz/cartera/renderer"
	"github.com/google/subcommands"
)

// dispatchCmd holds the flags for the 'dispatch' subcommand.
type dispatchCmd struct {
	filterFlags
	json bool
}

func (*dispatchCmd) Name() string     { return "dispatch" }
func (*dispatchCmd) Synopsis() string { return "send the notice to every filtered account" }
func (*dispatchCmd) Usage() string {
	return `ccs dispatch [-x <statuses>] [-p <portfolios>] [-where <predicate>] [-json]

  Sends the notice to every account passing the filter and displays the
  updated dashboard. The generated table itself is never changed: the next
  command starts again from the same table.
`
}

func (c *dispatchCmd) SetFlags(f *flag.FlagSet) {
	c.filterFlags.SetFlags(f)
	f.BoolVar(&c.json, "json", false, "Print the dispatch outcome as JSON")
}

func (c *dispatchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, s, err := c.Session()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	b := s.Dispatch()
	if *Verbose {
		log.Printf("dispatch batch=%s count=%d", b.ID, b.Count)
	}

	d := renderer.NewDashboard(date.Of(s.Table().Created()), s, &b)
	if c.json {
		if err := writeJSON(os.Stdout, d); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding dispatch: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderDashboard(d, renderer.DashboardRenderOptions{SkipCharts: true}))
	return subcommands.ExitSuccess
}
