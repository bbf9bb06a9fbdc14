package cartera

// Session is one user's interactive state over a base table: the current
// filter, the resulting view and its report.
//
// Any change of parameter recomputes the view and the report from the base table.
// Accounts notified by a dispatch keep their flag when a later filter shows them
// again; accounts that only start matching afterwards are not notified.
//
// A Session is not safe for concurrent use.
type Session struct {
	table    *Table
	filter   Filter
	notified map[int]bool
	view     *View
	report   *Report
}

// NewSession starts a session on t with filter f.
func NewSession(t *Table, f Filter) *Session {
	s := &Session{table: t, filter: f, notified: make(map[int]bool)}
	s.recompute()
	return s
}

func (s *Session) recompute() {
	s.view = NewView(s.table, s.filter)
	s.view.markNotified(s.notified)
	s.report = s.view.Report()
}

// Table returns the base table.
func (s *Session) Table() *Table { return s.table }

// Filter returns the current filter.
func (s *Session) Filter() Filter { return s.filter }

// View returns the current view.
func (s *Session) View() *View { return s.view }

// Report returns the report of the current view.
func (s *Session) Report() *Report { return s.report }

// SetFilter replaces the whole filter.
func (s *Session) SetFilter(f Filter) {
	s.filter = f
	s.recompute()
}

// Exclude replaces the excluded statuses.
func (s *Session) Exclude(set StatusSet) {
	s.filter.Exclude = set
	s.recompute()
}

// Include replaces the included portfolios.
func (s *Session) Include(set PortfolioSet) {
	s.filter.Include = set
	s.recompute()
}

// Where replaces the extra predicate, nil removes it.
func (s *Session) Where(p *Predicate) {
	s.filter.Where = p
	s.recompute()
}

// Dispatch notifies every account of the current view.
func (s *Session) Dispatch() Batch {
	b := s.view.Dispatch()
	for _, id := range b.IDs {
		s.notified[id] = true
	}
	s.report = s.view.Report()
	return b
}

// Notified returns the number of accounts notified during this session.
func (s *Session) Notified() int { return len(s.notified) }

// Preview returns the view f would produce, with the notices already sent,
// without changing the session.
func (s *Session) Preview(f Filter) *View {
	v := NewView(s.table, f)
	v.markNotified(s.notified)
	return v
}
