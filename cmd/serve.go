package cmd

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/etnz/cartera/metrics"
	"github.com/etnz/cartera/server"
	"github.com/google/subcommands"
)

// serveCmd holds the flags for the 'serve' subcommand.
type serveCmd struct {
	filterFlags
	listen string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the web dashboard" }
func (*serveCmd) Usage() string {
	return `ccs serve [-listen <addr>] [-x <statuses>] [-p <portfolios>] [-where <predicate>]

  Serves the dashboard: the filters in a sidebar, the metrics, the accounts,
  the productivity and the charts, plus a JSON API under /api and the
  Prometheus metrics under /metrics. Stops on SIGINT or SIGTERM.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	c.filterFlags.SetFlags(f)
	f.StringVar(&c.listen, "listen", "", "Address to listen on. Defaults to the configuration 'listen'")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, s, err := c.Session()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	addr := cfg.Listen
	if c.listen != "" {
		addr = c.listen
	}

	level := slog.LevelInfo
	if *Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	logger.Info("Starting dashboard",
		slog.Uint64("seed", cfg.Seed),
		slog.Int("accounts", s.Table().Len()),
		slog.String("filter", s.Filter().String()))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(s, metrics.NewCollector(logger), logger)
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error serving on %q: %v\n", addr, err)
		return subcommands.ExitFailure
	}
	logger.Info("Dashboard shutdown complete")
	return subcommands.ExitSuccess
}
