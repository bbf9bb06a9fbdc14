package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cartera/renderer"
	"github.com/google/subcommands"
)

// accountsCmd holds the flags for the 'accounts' subcommand.
type accountsCmd struct {
	filterFlags
	json bool
}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list the filtered accounts" }
func (*accountsCmd) Usage() string {
	return `ccs accounts [-x <statuses>] [-p <portfolios>] [-where <predicate>] [-json]

  Lists the accounts passing the filter, in table order, with their count and total.
`
}

func (c *accountsCmd) SetFlags(f *flag.FlagSet) {
	c.filterFlags.SetFlags(f)
	f.BoolVar(&c.json, "json", false, "Print the accounts as JSON")
}

func (c *accountsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, s, err := c.Session()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	a := newAccounts(s)
	if c.json {
		if err := writeJSON(os.Stdout, a); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding accounts: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderAccounts(a))
	return subcommands.ExitSuccess
}
