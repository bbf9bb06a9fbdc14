package cartera

import (
	"testing"

	"github.com/google/uuid"
)

func TestView_Dispatch(t *testing.T) {
	table := newTestTable()
	view := NewView(table, Filter{Exclude: Statuses(Liquidado), Include: Portfolios(Extrajudicial)})

	first := view.Dispatch()
	if first.Count != view.Len() {
		t.Errorf("Dispatch().Count = %d, want %d", first.Count, view.Len())
	}
	if first.ID == uuid.Nil {
		t.Errorf("Dispatch().ID is nil")
	}
	for _, a := range view.Accounts() {
		if !a.NoticeSent {
			t.Errorf("account %d not notified after Dispatch()", a.ID)
		}
	}

	second := view.Dispatch()
	if second.Count != first.Count {
		t.Errorf("second Dispatch().Count = %d, want %d", second.Count, first.Count)
	}
	if view.Report().Notified != view.Len() {
		t.Errorf("Report().Notified = %d, want %d", view.Report().Notified, view.Len())
	}

	// the base table is left untouched.
	fresh := newTestTable()
	for _, id := range first.IDs {
		a, _ := table.Account(id)
		b, _ := fresh.Account(id)
		if a.NoticeSent != b.NoticeSent {
			t.Errorf("Dispatch() changed account %d in the base table", id)
		}
	}
}

func TestView_DispatchEmpty(t *testing.T) {
	view := NewView(newTestTable(), Filter{})
	if b := view.Dispatch(); b.Count != 0 || len(b.IDs) != 0 {
		t.Errorf("Dispatch() = %+v, want no account", b)
	}
}

func TestSession_Recompute(t *testing.T) {
	s := NewSession(newTestTable(), NewFilter())
	all := s.Report().TotalCount
	if all != 100 {
		t.Fatalf("TotalCount = %d, want 100", all)
	}

	s.Exclude(Statuses(Arco, Liquidado))
	excluded := s.Report().TotalCount
	if excluded >= all {
		t.Errorf("TotalCount after Exclude = %d, want less than %d", excluded, all)
	}

	s.Include(Portfolios(Administrativa))
	if got := s.Report().TotalCount; got > excluded || got != s.View().Len() {
		t.Errorf("TotalCount after Include = %d, want at most %d and equal to %d", got, excluded, s.View().Len())
	}

	s.Include(nil)
	if got := s.Report(); got.TotalCount != 0 || got.TotalAmount.Amount() != "0.00" {
		t.Errorf("report with nothing included = %d %s, want 0 0.00", got.TotalCount, got.TotalAmount.Amount())
	}

	s.SetFilter(NewFilter())
	s.Where(MustCompilePredicate("id <= 10"))
	if got := s.Report().TotalCount; got != 10 {
		t.Errorf("TotalCount with id <= 10 = %d, want 10", got)
	}
	s.Where(nil)
	if got := s.Report().TotalCount; got != 100 {
		t.Errorf("TotalCount without predicate = %d, want 100", got)
	}
}

func TestSession_DispatchSurvivesFilterChanges(t *testing.T) {
	s := NewSession(newTestTable(), Filter{Include: Portfolios(Administrativa)})
	b := s.Dispatch()
	if b.Count != s.View().Len() || s.Notified() != b.Count {
		t.Fatalf("Dispatch().Count = %d, Notified() = %d, want %d", b.Count, s.Notified(), s.View().Len())
	}
	if s.Report().Notified != b.Count {
		t.Errorf("Report().Notified = %d, want %d", s.Report().Notified, b.Count)
	}

	// hide the notified accounts, then show them again with the others.
	s.Include(Portfolios(Extrajudicial))
	s.Include(EveryPortfolio())

	dispatched := map[int]bool{}
	for _, id := range b.IDs {
		dispatched[id] = true
	}
	for _, a := range s.View().Accounts() {
		if dispatched[a.ID] && !a.NoticeSent {
			t.Errorf("account %d lost its notice after a filter change", a.ID)
		}
		if !dispatched[a.ID] {
			base, _ := s.Table().Account(a.ID)
			if a.NoticeSent != base.NoticeSent {
				t.Errorf("account %d was notified retroactively", a.ID)
			}
		}
	}
}

func TestSession_Preview(t *testing.T) {
	s := NewSession(newTestTable(), Filter{Include: Portfolios(Administrativa)})
	b := s.Dispatch()
	before := s.Filter().String()

	v := s.Preview(NewFilter())
	if v.Len() != 100 {
		t.Errorf("Preview().Len() = %d, want 100", v.Len())
	}
	if got := s.Filter().String(); got != before {
		t.Errorf("Preview() changed the filter to %q", got)
	}
	if s.View().Len() != b.Count {
		t.Errorf("Preview() changed the view: Len() = %d, want %d", s.View().Len(), b.Count)
	}
	for _, a := range v.Accounts() {
		if a.Portfolio == Administrativa && !a.NoticeSent {
			t.Errorf("Preview() account %d has no notice", a.ID)
		}
	}
}
