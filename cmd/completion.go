package cmd

import (
	"flag"

	"github.com/etnz/cartera"
	"github.com/etnz/cartera/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the commands registered in c.
// Flags of each command are read from its SetFlags.
func Completion(c *subcommands.Commander, global *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: predictFlags(global),
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(fs)
		sub := &complete.Command{Flags: predictFlags(fs), Args: predict.Nothing}
		if cmd.Name() == "topic" {
			topics, _ := docs.GetAllTopics()
			sub.Args = predict.Set(topics)
		}
		root.Sub[cmd.Name()] = sub
	})
	return root
}

// predictFlags predicts the values of the flags known to ccs, and anything for the others.
func predictFlags(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := map[string]complete.Predictor{}
	fs.VisitAll(func(f *flag.Flag) {
		switch f.Name {
		case "x":
			flags[f.Name] = predict.Set(cartera.Statuses(cartera.AllStatuses...).Strings())
		case "p":
			flags[f.Name] = predict.Set(cartera.EveryPortfolio().Strings())
		case "config", "frontmatter":
			flags[f.Name] = predict.Files("*")
		case "o":
			flags[f.Name] = predict.Dirs("*")
		default:
			if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
				flags[f.Name] = predict.Nothing
			} else {
				flags[f.Name] = predict.Something
			}
		}
	})
	return flags
}
