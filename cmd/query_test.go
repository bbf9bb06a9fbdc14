package cmd

import (
	"testing"

	"github.com/etnz/cartera"
)

func TestQuery(t *testing.T) {
	s := testSession(cartera.Filter{Exclude: cartera.Statuses(cartera.Liquidado), Include: cartera.EveryPortfolio()})
	rep := s.Report()

	got, err := query(newReport(s), "$.totalCount")
	if err != nil {
		t.Fatalf("query() error = %v", err)
	}
	if got != float64(rep.TotalCount) {
		t.Errorf("query($.totalCount) = %v, want %d", got, rep.TotalCount)
	}

	got, err = query(newReport(s), "$.byPortfolio[*].portfolio")
	if err != nil {
		t.Fatalf("query() error = %v", err)
	}
	list, ok := got.([]any)
	if !ok || len(list) != 2 || list[0] != "Administrativa" || list[1] != "Extrajudicial" {
		t.Errorf("query($.byPortfolio[*].portfolio) = %v, want both portfolios", got)
	}

	got, err = query(newAccounts(s), "$.count")
	if err != nil {
		t.Fatalf("query() error = %v", err)
	}
	if got != float64(s.View().Len()) {
		t.Errorf("query($.count) = %v, want %d", got, s.View().Len())
	}

	if _, err := query(newReport(s), "$.nope"); err == nil {
		t.Errorf("query($.nope) error = nil, want an error")
	}
}
