// Package cmd implements the ccs command line: the collections simulator.
package cmd

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/cartera"
	"github.com/etnz/cartera/config"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&reportCmd{}, "reports")
	c.Register(&accountsCmd{}, "reports")
	c.Register(&queryCmd{}, "reports")
	c.Register(&publishCmd{}, "reports")

	c.Register(&dispatchCmd{}, "workflow")
	c.Register(&sessionCmd{}, "workflow")
	c.Register(&serveCmd{}, "workflow")
	c.Register(&assistCmd{}, "workflow")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile  = flag.String("config", config.DefaultPath, "Path to the YAML configuration file")
	seed        = flag.Uint64("seed", cartera.DefaultSeed, "Random seed of the accounts table, overrides the configuration")
	count       = flag.Int("accounts", cartera.DefaultCount, "Number of accounts to generate, overrides the configuration")
	currency    = flag.String("currency", cartera.DefaultCurrency, "Currency of the amounts, overrides the configuration")
	today       = flag.String("today", "", "Creation day of the table (YYYY-MM-DD), overrides the configuration. Defaults to today")
	rawMarkdown = flag.Bool("markdown", false, "Print raw markdown instead of rendering it for the terminal")
	Verbose     = flag.Bool("v", false, "Log operational messages on stderr")
)

// LoadConfig reads the configuration file, then applies the global flags set
// on the command line.
func LoadConfig() (*config.Config, error) {
	return loadConfig(flag.CommandLine)
}

func loadConfig(fs *flag.FlagSet) (*config.Config, error) {
	path := fs.Lookup("config").Value.String()
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, err
	}
	var ferr error
	fs.Visit(func(f *flag.Flag) {
		v := f.Value.String()
		switch f.Name {
		case "seed":
			cfg.Seed, ferr = strconv.ParseUint(v, 10, 64)
		case "accounts":
			cfg.Accounts, ferr = strconv.Atoi(v)
		case "currency":
			cfg.Currency = strings.ToUpper(v)
		case "today":
			cfg.Today = v
		}
	})
	if ferr != nil {
		return nil, ferr
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if *Verbose {
		log.Printf("load-config file=%q seed=%d accounts=%d currency=%s today=%q", path, cfg.Seed, cfg.Accounts, cfg.Currency, cfg.Today)
	}
	return cfg, nil
}

// listFlag is a flag holding a comma separated list, that remembers whether it was set.
type listFlag struct {
	values []string
	set    bool
}

func (l *listFlag) String() string { return strings.Join(l.values, ",") }

func (l *listFlag) Set(v string) error {
	l.values = append(l.values, v)
	l.set = true
	return nil
}

// filterFlags are the flags shared by every command working on a filtered view.
type filterFlags struct {
	exclude  listFlag
	include  listFlag
	where    string
	hasWhere bool
}

func (ff *filterFlags) SetFlags(f *flag.FlagSet) {
	f.Var(&ff.exclude, "x", "Statuses to exclude, comma separated (Normal, Arco, Aclaración, Liquidado)")
	f.Var(&ff.include, "p", "Portfolios to include, comma separated (Administrativa, Extrajudicial). Defaults to all")
	f.Func("where", "CEL predicate on accounts, e.g. 'amount > 20000.0'. See 'ccs topic filters'", func(s string) error {
		ff.where, ff.hasWhere = s, true
		return nil
	})
}

// Filter returns the filter of the configuration, overridden by the flags that are set.
func (ff *filterFlags) Filter(cfg *config.Config) (cartera.Filter, error) {
	exclude, include, where := cfg.Exclude, cfg.Include, cfg.Where
	if ff.exclude.set {
		exclude = ff.exclude.values
	}
	if ff.include.set {
		include = ff.include.values
	}
	if ff.hasWhere {
		where = ff.where
	}
	return cartera.ParseFilter(exclude, include, where)
}

// Session generates the accounts table and starts a session on it.
func (ff *filterFlags) Session() (*config.Config, *cartera.Session, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	f, err := ff.Filter(cfg)
	if err != nil {
		return nil, nil, err
	}
	table := cartera.Generate(cfg.GeneratorOptions())
	if *Verbose {
		log.Printf("generate-table accounts=%d seed=%d created=%s", table.Len(), cfg.Seed, table.Created().Format("2006-01-02"))
	}
	return cfg, cartera.NewSession(table, f), nil
}

// renderMarkdown formats md for the terminal, unless raw markdown was asked for.
func renderMarkdown(md string) string {
	if *rawMarkdown {
		return md
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

func printMarkdown(md string) { fmt.Print(renderMarkdown(md)) }

