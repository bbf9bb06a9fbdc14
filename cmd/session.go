package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/cartera"
	"github.com/etnz/cartera/date"
	"github.com/etnz/cartera/renderer"
	"github.com/google/subcommands"
)

// sessionCmd holds the flags for the 'session' subcommand.
type sessionCmd struct {
	filterFlags
}

func (*sessionCmd) Name() string     { return "session" }
func (*sessionCmd) Synopsis() string { return "start an interactive session on the accounts table" }
func (*sessionCmd) Usage() string {
	return `ccs session [-x <statuses>] [-p <portfolios>] [-where <predicate>] [<command>...]

  Starts an interactive session: change the filter, look at the report and
  dispatch notices, every change being applied to the same table.
  Arguments are run as the first commands. Type 'help' for the commands.
`
}

func (c *sessionCmd) SetFlags(f *flag.FlagSet) { c.filterFlags.SetFlags(f) }

func (c *sessionCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, s, err := c.Session()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	r := newREPL(s, os.Stdout, os.Stdin)
	r.render = renderMarkdown
	if err := r.Run(f.Args()...); err != nil {
		fmt.Fprintf(os.Stderr, "Session failed: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

const sessionHelp = `Commands:
  exclude [<status>...]      exclude statuses, none when empty
  include [<portfolio>...]   include portfolios, 'all' for every one, none when empty
  where [<predicate>]        filter with a CEL predicate, removed when empty
  filter                     show the current filter
  report                     show the report
  accounts                   list the filtered accounts
  dispatch                   send the notice to the filtered accounts
  dashboard                  show the whole dashboard
  reset                      restore the initial filter
  help                       show this help
  bye                        quit
`

// repl reads session commands and applies them to one session.
type repl struct {
	s       *cartera.Session
	initial cartera.Filter
	last    *cartera.Batch
	w       io.Writer
	r       *bufio.Reader
	// render formats markdown output. Nil prints it as is.
	render func(string) string
}

func newREPL(s *cartera.Session, w io.Writer, r io.Reader) *repl {
	return &repl{s: s, initial: s.Filter(), w: w, r: bufio.NewReader(r)}
}

const sessionPrompt = "ccs> "

// Run reads commands until 'bye' or the end of input. The commands in
// prompts are run first, as if typed by the user.
func (r *repl) Run(prompts ...string) error {
	fmt.Fprintln(r.w, "Welcome to ccs session. Type 'help' for the commands, 'bye' to exit.")
	r.summary()
	for {
		fmt.Fprint(r.w, sessionPrompt)
		var line string
		if len(prompts) > 0 {
			line, prompts = prompts[0], prompts[1:]
			fmt.Fprintln(r.w, line)
		} else {
			var err error
			line, err = r.r.ReadString('\n')
			if err == io.EOF && strings.TrimSpace(line) == "" {
				fmt.Fprintln(r.w)
				return nil
			}
			if err != nil && err != io.EOF {
				return err
			}
		}
		if quit := r.exec(line); quit {
			return nil
		}
	}
}

// exec runs one command line and reports whether the session is over.
// Invalid input is reported and leaves the session unchanged.
func (r *repl) exec(line string) (quit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	name, args := fields[0], fields[1:]
	switch name {
	case "bye", "quit", "exit":
		return true
	case "help":
		fmt.Fprint(r.w, sessionHelp)
	case "exclude":
		set, err := cartera.ParseStatuses(args...)
		if err != nil {
			r.error(err)
			return false
		}
		r.s.Exclude(set)
		r.summary()
	case "include":
		set, err := cartera.ParsePortfolios(args...)
		if len(args) == 1 && strings.EqualFold(args[0], "all") {
			set, err = cartera.EveryPortfolio(), nil
		}
		if err != nil {
			r.error(err)
			return false
		}
		r.s.Include(set)
		r.summary()
	case "where":
		// the predicate is the raw rest of the line, spaces included.
		expr := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "where"))
		p, err := cartera.CompilePredicate(expr)
		if err != nil {
			r.error(err)
			return false
		}
		r.s.Where(p)
		r.summary()
	case "filter":
		fmt.Fprintf(r.w, "filter: %s\n", r.s.Filter())
	case "reset":
		r.s.SetFilter(r.initial)
		r.summary()
	case "report":
		r.print(renderer.RenderReport(newReport(r.s)))
	case "accounts":
		r.print(renderer.RenderAccounts(newAccounts(r.s)))
	case "dispatch":
		b := r.s.Dispatch()
		r.last = &b
		r.print(renderer.RenderDispatch(renderer.NewDispatch(b)))
		r.summary()
	case "dashboard":
		d := renderer.NewDashboard(date.Of(r.s.Table().Created()), r.s, r.last)
		r.last = nil
		r.print(renderer.RenderDashboard(d, renderer.DashboardRenderOptions{}))
	default:
		r.error(fmt.Errorf("unknown command %q, type 'help' for the commands", name))
	}
	return false
}

// summary prints the filter and the headline metrics.
func (r *repl) summary() {
	rep := r.s.Report()
	fmt.Fprintf(r.w, "filter: %s\n%d accounts, %s total, %d notified\n", r.s.Filter(), rep.TotalCount, rep.TotalAmount, rep.Notified)
}

func (r *repl) print(md string) {
	if r.render != nil {
		md = r.render(md)
	}
	fmt.Fprintln(r.w, md)
}

func (r *repl) error(err error) { fmt.Fprintf(r.w, "error: %v\n", err) }
