package cartera

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// View is the filtered copy of a table that reports are computed from.
// Dispatching a notice changes the view, never the table.
type View struct {
	filter   Filter
	currency string
	rows     []Account
}

// NewView filters t.
func NewView(t *Table, f Filter) *View {
	return &View{filter: f, currency: t.Currency(), rows: f.Apply(t.accounts)}
}

// Filter returns the filter the view was built with.
func (v *View) Filter() Filter { return v.filter }

// Currency returns the currency of the amounts.
func (v *View) Currency() string { return v.currency }

// Len returns the number of visible accounts.
func (v *View) Len() int { return len(v.rows) }

// Accounts returns a copy of the visible accounts.
func (v *View) Accounts() []Account { return slices.Clone(v.rows) }

// IDs returns the ids of the visible accounts.
func (v *View) IDs() []int {
	ids := make([]int, len(v.rows))
	for i, a := range v.rows {
		ids[i] = a.ID
	}
	return ids
}

// Report aggregates the visible accounts.
func (v *View) Report() *Report { return NewReport(v.rows, v.currency) }

// Batch is the outcome of a notice dispatch.
type Batch struct {
	ID    uuid.UUID `json:"id"`
	At    time.Time `json:"at"`
	Count int       `json:"count"` // number of accounts in the view
	IDs   []int     `json:"ids"`
}

// Dispatch sends the notice to every visible account: NoticeSent becomes true
// whatever its previous value. Calling it again is harmless and reports the same count.
func (v *View) Dispatch() Batch {
	for i := range v.rows {
		v.rows[i].NoticeSent = true
	}
	return Batch{ID: uuid.New(), At: time.Now(), Count: len(v.rows), IDs: v.IDs()}
}

// markNotified sets NoticeSent on the visible accounts listed in ids.
func (v *View) markNotified(ids map[int]bool) {
	for i := range v.rows {
		if ids[v.rows[i].ID] {
			v.rows[i].NoticeSent = true
		}
	}
}
