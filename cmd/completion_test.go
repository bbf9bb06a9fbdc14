package cmd

import (
	"slices"
	"testing"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2/predict"
)

func TestCompletion(t *testing.T) {
	global := globalFlags()
	commander := subcommands.NewCommander(global, "ccs")
	Register(commander)

	c := Completion(commander, global)

	for _, name := range []string{"report", "accounts", "query", "publish", "dispatch", "session", "serve", "assist", "topic"} {
		if _, ok := c.Sub[name]; !ok {
			t.Errorf("Completion() has no %q command", name)
		}
	}
	if _, ok := c.Flags["seed"]; !ok {
		t.Errorf("Completion() has no global -seed flag")
	}

	report := c.Sub["report"]
	x, ok := report.Flags["x"].(predict.Set)
	if !ok || !slices.Equal(x, predict.Set{"Normal", "Arco", "Aclaración", "Liquidado"}) {
		t.Errorf("report -x predicts %v, want the statuses", report.Flags["x"])
	}
	if p, ok := report.Flags["p"].(predict.Set); !ok || len(p) != 2 {
		t.Errorf("report -p predicts %v, want the portfolios", report.Flags["p"])
	}
	if _, ok := report.Flags["json"]; !ok {
		t.Errorf("report has no -json flag completion")
	}

	topics, ok := c.Sub["topic"].Args.(predict.Set)
	if !ok || !slices.Contains(topics, "filters") {
		t.Errorf("topic args predict %v, want the topics", c.Sub["topic"].Args)
	}
}
