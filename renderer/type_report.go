package renderer

import (
	"strings"
	"time"

	"github.com/etnz/cartera"
	"github.com/etnz/cartera/date"
)

// Title is the heading of every report.
const Title = "Portfolio Assignment Simulation"

// barWidth is the number of characters of the longest bar in charts.
const barWidth = 24

// Report is a struct to represent the report data in json.
// Amounts are handled using the exact cartera.Money type so that
// they already render themselves.
type Report struct {
	Title string    `json:"title"`
	Date  date.Date `json:"date"`
	// Filter describes the active filter in one line.
	Filter  string   `json:"filter"`
	Exclude []string `json:"exclude"`
	Include []string `json:"include"`
	Where   string   `json:"where,omitempty"`

	TotalCount  int           `json:"totalCount"`
	TotalAmount cartera.Money `json:"totalAmount"`
	Notified    int           `json:"notified"`

	Portfolios []PortfolioLine `json:"byPortfolio"`
	Statuses   []StatusLine    `json:"byStatus"`
	Dates      []DateLine      `json:"byDate"`
}

// PortfolioLine is the productivity of one portfolio.
type PortfolioLine struct {
	Portfolio string        `json:"portfolio"`
	Amount    cartera.Money `json:"amount"`
	Count     int           `json:"count"`
	Share     float64       `json:"share"` // percent of the total amount
	CountBar  string        `json:"-"`
	ShareBar  string        `json:"-"`
}

// StatusLine sums one status.
type StatusLine struct {
	Status string        `json:"status"`
	Amount cartera.Money `json:"amount"`
	Count  int           `json:"count"`
}

// DateLine is one point of the amount over due date series.
type DateLine struct {
	Date   date.Date     `json:"date"`
	Amount cartera.Money `json:"amount"`
	Bar    string        `json:"-"`
}

// NewReport creates a new Report struct from an aggregate report and the filter it was computed with.
func NewReport(on date.Date, f cartera.Filter, r *cartera.Report) *Report {
	rep := &Report{
		Title:       Title,
		Date:        on,
		Filter:      f.String(),
		Exclude:     f.Exclude.Strings(),
		Include:     f.Include.Strings(),
		Where:       f.Where.String(),
		TotalCount:  r.TotalCount,
		TotalAmount: r.TotalAmount,
		Notified:    r.Notified,
		Portfolios:  make([]PortfolioLine, 0, len(r.ByPortfolio)),
		Statuses:    make([]StatusLine, 0, len(r.ByStatus)),
		Dates:       make([]DateLine, 0, len(r.ByDate)),
	}

	maxCount := 0
	for _, p := range r.ByPortfolio {
		maxCount = max(maxCount, p.Count)
	}
	for _, p := range r.ByPortfolio {
		share := p.Amount.Ratio(r.TotalAmount)
		rep.Portfolios = append(rep.Portfolios, PortfolioLine{
			Portfolio: p.Portfolio.String(),
			Amount:    p.Amount,
			Count:     p.Count,
			Share:     100 * share,
			CountBar:  bar(float64(p.Count), float64(maxCount)),
			ShareBar:  bar(share, 1),
		})
	}

	for _, s := range r.ByStatus {
		rep.Statuses = append(rep.Statuses, StatusLine{Status: s.Status.String(), Amount: s.Amount, Count: s.Count})
	}

	maxAmount := 0.0
	for _, d := range r.ByDate {
		maxAmount = max(maxAmount, d.Amount.AsFloat())
	}
	for _, d := range r.ByDate {
		rep.Dates = append(rep.Dates, DateLine{Date: d.Date, Amount: d.Amount, Bar: bar(d.Amount.AsFloat(), maxAmount)})
	}
	return rep
}

// bar draws value as a horizontal bar, the full width standing for total.
func bar(value, total float64) string {
	if total <= 0 || value <= 0 {
		return ""
	}
	n := int(value/total*barWidth + 0.5)
	return strings.Repeat("█", max(n, 1))
}

// Accounts is the detail table of the visible accounts.
type Accounts struct {
	Count int           `json:"count"`
	Total cartera.Money `json:"total"`
	Rows  []AccountLine `json:"accounts"`
}

// AccountLine is one row of the detail table.
type AccountLine struct {
	ID         int           `json:"id"`
	Status     string        `json:"status"`
	Portfolio  string        `json:"portfolio"`
	DueDate    date.Date     `json:"dueDate"`
	Amount     cartera.Money `json:"amount"`
	NoticeSent bool          `json:"noticeSent"`
}

// NewAccounts creates the detail table of a view.
func NewAccounts(v *cartera.View) *Accounts {
	a := &Accounts{Total: cartera.M(0, v.Currency()), Rows: make([]AccountLine, 0, v.Len())}
	for _, acc := range v.Accounts() {
		a.Count++
		a.Total = a.Total.Add(acc.Amount)
		a.Rows = append(a.Rows, AccountLine{
			ID:         acc.ID,
			Status:     acc.Status.String(),
			Portfolio:  acc.Portfolio.String(),
			DueDate:    acc.DueDay(),
			Amount:     acc.Amount,
			NoticeSent: acc.NoticeSent,
		})
	}
	return a
}

// Dispatch is the confirmation of a notice dispatch.
type Dispatch struct {
	ID    string    `json:"id"`
	At    time.Time `json:"at"`
	Count int       `json:"count"`
}

// NewDispatch creates the confirmation of batch b.
func NewDispatch(b cartera.Batch) *Dispatch {
	return &Dispatch{ID: b.ID.String(), At: b.At, Count: b.Count}
}

// Dashboard gathers everything the dashboard page shows.
type Dashboard struct {
	Report   *Report   `json:"report"`
	Accounts *Accounts `json:"accounts"`
	Dispatch *Dispatch `json:"dispatch,omitempty"`
}

// NewDashboard creates the dashboard of a session. The last batch is optional.
func NewDashboard(on date.Date, s *cartera.Session, last *cartera.Batch) *Dashboard {
	d := &Dashboard{
		Report:   NewReport(on, s.Filter(), s.Report()),
		Accounts: NewAccounts(s.View()),
	}
	if last != nil {
		d.Dispatch = NewDispatch(*last)
	}
	return d
}
