package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/cartera/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct {
	filterFlags
	model string
}

func (*assistCmd) Name() string { return "assist" }

func (*assistCmd) Synopsis() string { return "start an interactive session with the AI analyst" }

func (*assistCmd) Usage() string {
	return `ccs assist [-model <name>] [-x <statuses>] [-p <portfolios>] [-where <predicate>] [<question>]

  Starts a chat with an AI analyst that reads the filtered accounts to answer
  your questions. It never dispatches notices. Requires GEMINI_API_KEY (or
  GOOGLE_API_KEY) in the environment.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	c.filterFlags.SetFlags(f)
	f.StringVar(&c.model, "model", "", "Gemini model. Defaults to the configuration 'model'")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, s, err := c.Session()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	model := cfg.Model
	if c.model != "" {
		model = c.model
	}
	if model == "" {
		model = agent.DefaultModel
	}

	initialPrompt := strings.Join(f.Args(), " ")

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	a := agent.New(os.Stdout, os.Stdin, model, agent.NewAnalyst(model, s))
	a.Render = renderMarkdown
	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
