package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/cartera"
	"github.com/etnz/cartera/date"
	"github.com/etnz/cartera/renderer"
	"github.com/google/subcommands"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	filterFlags
	json bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the metrics, productivity and charts of the filtered accounts" }
func (*reportCmd) Usage() string {
	return `ccs report [-x <statuses>] [-p <portfolios>] [-where <predicate>] [-json]

  Displays the report of the accounts passing the filter: active accounts,
  total amount, productivity by portfolio and status, and the charts.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	c.filterFlags.SetFlags(f)
	f.BoolVar(&c.json, "json", false, "Print the report as JSON")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, s, err := c.Session()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.json {
		if err := writeJSON(os.Stdout, newReport(s)); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding report: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderReport(newReport(s)))
	return subcommands.ExitSuccess
}

// newReport is the report of the session as of the creation day of its table.
func newReport(s *cartera.Session) *renderer.Report {
	return renderer.NewReport(date.Of(s.Table().Created()), s.Filter(), s.Report())
}

// newAccounts is the detail table of the session view.
func newAccounts(s *cartera.Session) *renderer.Accounts { return renderer.NewAccounts(s.View()) }

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
