package cartera

import (
	"slices"

	"github.com/etnz/cartera/date"
)

// Report is the aggregate of a filtered view. It has no life of its own: it is
// recomputed each time the view changes.
type Report struct {
	Currency    string           `json:"currency"`
	TotalCount  int              `json:"totalCount"`
	TotalAmount Money            `json:"totalAmount"`
	Notified    int              `json:"notified"` // accounts with NoticeSent
	ByPortfolio []PortfolioTotal `json:"byPortfolio"`
	ByStatus    []StatusTotal    `json:"byStatus"`
	ByDate      []DateTotal      `json:"byDate"` // ascending
}

// PortfolioTotal is the productivity of one portfolio.
type PortfolioTotal struct {
	Portfolio Portfolio `json:"portfolio"`
	Amount    Money     `json:"amount"`
	Count     int       `json:"count"`
}

// StatusTotal sums the accounts of one status.
type StatusTotal struct {
	Status Status `json:"status"`
	Amount Money  `json:"amount"`
	Count  int    `json:"count"`
}

// DateTotal sums the amounts due on one day.
type DateTotal struct {
	Date   date.Date `json:"date"`
	Amount Money     `json:"amount"`
}

// NewReport aggregates accounts. Only portfolios, statuses and dates present in
// accounts appear in the breakdowns; an empty input yields zero totals.
func NewReport(accounts []Account, currency string) *Report {
	zero := M(0, currency)
	r := &Report{
		Currency:    currency,
		TotalAmount: zero,
		ByPortfolio: []PortfolioTotal{},
		ByStatus:    []StatusTotal{},
		ByDate:      []DateTotal{},
	}

	portfolios := make(map[Portfolio]*PortfolioTotal)
	statuses := make(map[Status]*StatusTotal)
	days := new(date.Series[Money])
	for _, a := range accounts {
		r.TotalCount++
		r.TotalAmount = r.TotalAmount.Add(a.Amount)
		if a.NoticeSent {
			r.Notified++
		}

		p, ok := portfolios[a.Portfolio]
		if !ok {
			p = &PortfolioTotal{Portfolio: a.Portfolio, Amount: zero}
			portfolios[a.Portfolio] = p
		}
		p.Amount = p.Amount.Add(a.Amount)
		p.Count++

		s, ok := statuses[a.Status]
		if !ok {
			s = &StatusTotal{Status: a.Status, Amount: zero}
			statuses[a.Status] = s
		}
		s.Amount = s.Amount.Add(a.Amount)
		s.Count++

		days.Add(a.DueDay(), a.Amount)
	}

	for _, p := range AllPortfolios {
		if t, ok := portfolios[p]; ok {
			r.ByPortfolio = append(r.ByPortfolio, *t)
		}
	}
	for _, s := range AllStatuses {
		if t, ok := statuses[s]; ok {
			r.ByStatus = append(r.ByStatus, *t)
		}
	}
	for day, sum := range days.Values() {
		r.ByDate = append(r.ByDate, DateTotal{Date: day, Amount: sum})
	}
	return r
}

// Portfolio returns the total of portfolio p, if present.
func (r *Report) Portfolio(p Portfolio) (PortfolioTotal, bool) {
	i := slices.IndexFunc(r.ByPortfolio, func(t PortfolioTotal) bool { return t.Portfolio == p })
	if i < 0 {
		return PortfolioTotal{}, false
	}
	return r.ByPortfolio[i], true
}
