package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/subcommands"
)

// queryCmd holds the flags for the 'query' subcommand.
type queryCmd struct {
	filterFlags
	accounts bool
}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "extract values from the report with a JSONPath expression" }
func (*queryCmd) Usage() string {
	return `ccs query [-x <statuses>] [-p <portfolios>] [-where <predicate>] [-accounts] <jsonpath>

  Evaluates a JSONPath expression on the JSON report and prints the result.

  ccs query '$.totalAmount.amount'
  ccs query '$.byPortfolio[?(@.count > 40)].portfolio'
  ccs query -accounts '$.accounts[0:3].id'
`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {
	c.filterFlags.SetFlags(f)
	f.BoolVar(&c.accounts, "accounts", false, "Query the accounts list instead of the report")
}

func (c *queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: query requires exactly one JSONPath expression")
		return subcommands.ExitUsageError
	}
	_, s, err := c.Session()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	var doc any = newReport(s)
	if c.accounts {
		doc = newAccounts(s)
	}
	v, err := query(doc, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := writeJSON(os.Stdout, v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding result: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// query evaluates the JSONPath expr against the JSON form of doc.
func query(doc any, expr string) (any, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return nil, err
	}
	v, err := jsonpath.Get(expr, jobj)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", expr, err)
	}
	return v, nil
}
