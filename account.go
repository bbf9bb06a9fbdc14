package cartera

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/etnz/cartera/date"
)

// Account is one row of the accounts table.
type Account struct {
	ID         int       `json:"id"`
	Status     Status    `json:"status"`
	Portfolio  Portfolio `json:"portfolio"`
	DueDate    time.Time `json:"dueDate"`
	Amount     Money     `json:"amount"`
	NoticeSent bool      `json:"noticeSent"`
}

// DueDay returns the due date without its time of day.
func (a Account) DueDay() date.Date { return date.Of(a.DueDate) }

// Table is the immutable base table of accounts.
// Accessors return copies, so nothing outside of the generator ever changes a row.
type Table struct {
	accounts []Account
	currency string
	created  time.Time
}

// NewTable builds a table from accounts. IDs are expected to be unique.
// Every amount must be in the table currency.
func NewTable(currency string, created time.Time, accounts ...Account) (*Table, error) {
	for _, a := range accounts {
		if c := a.Amount.Currency(); c != currency {
			return nil, fmt.Errorf("account %d: amount in %q, want %q", a.ID, c, currency)
		}
	}
	return &Table{accounts: slices.Clone(accounts), currency: currency, created: created}, nil
}

// Len returns the number of accounts.
func (t *Table) Len() int { return len(t.accounts) }

// Accounts returns a copy of all the accounts in ID order.
func (t *Table) Accounts() []Account { return slices.Clone(t.accounts) }

// Account returns the account with the given id.
func (t *Table) Account(id int) (Account, bool) {
	i := slices.IndexFunc(t.accounts, func(a Account) bool { return a.ID == id })
	if i < 0 {
		return Account{}, false
	}
	return t.accounts[i], true
}

// Currency returns the currency of every amount in the table.
func (t *Table) Currency() string { return t.currency }

// Created returns the time the table was generated at.
func (t *Table) Created() time.Time { return t.created }

// GeneratorOptions controls the synthetic table.
type GeneratorOptions struct {
	Count    int       // number of accounts, defaults to 100
	Seed     uint64    // random seed, the same seed yields the same table
	Now      time.Time // creation time due dates are relative to, defaults to time.Now()
	Currency string    // defaults to DefaultCurrency
}

const (
	DefaultCount = 100
	DefaultSeed  = 42

	minAmount = 1000
	maxAmount = 50000
	dueWindow = 30 // due dates fall in [-dueWindow, dueWindow) days from creation
)

// Generate builds a synthetic accounts table.
//
// Columns are drawn one after the other, each value independently and uniformly
// from its domain: status, portfolio, due date offset, amount and notice flag.
// The same options always produce the same table.
func Generate(opts GeneratorOptions) *Table {
	if opts.Count <= 0 {
		opts.Count = DefaultCount
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.Currency == "" {
		opts.Currency = DefaultCurrency
	}
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed))

	n := opts.Count
	accounts := make([]Account, n)
	for i := range accounts {
		accounts[i].ID = i + 1
	}
	for i := range accounts {
		accounts[i].Status = AllStatuses[rng.IntN(len(AllStatuses))]
	}
	for i := range accounts {
		accounts[i].Portfolio = AllPortfolios[rng.IntN(len(AllPortfolios))]
	}
	for i := range accounts {
		offset := rng.IntN(2*dueWindow) - dueWindow
		accounts[i].DueDate = opts.Now.AddDate(0, 0, offset)
	}
	for i := range accounts {
		v := minAmount + rng.Float64()*(maxAmount-minAmount)
		accounts[i].Amount = M(v, opts.Currency).Round()
	}
	for i := range accounts {
		accounts[i].NoticeSent = rng.IntN(2) == 1
	}
	return &Table{accounts: accounts, currency: opts.Currency, created: opts.Now}
}
