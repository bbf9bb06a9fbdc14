package cartera

import (
	"encoding/json"
	"testing"

	"github.com/etnz/cartera/date"
	"github.com/google/go-cmp/cmp"
)

func TestGenerate_Deterministic(t *testing.T) {
	a := newTestTable()
	b := newTestTable()

	ja, err := json.Marshal(a.Accounts())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	jb, err := json.Marshal(b.Accounts())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if diff := cmp.Diff(string(ja), string(jb)); diff != "" {
		t.Errorf("Generate() is not deterministic (-first +second):\n%s", diff)
	}

	c := Generate(GeneratorOptions{Count: 100, Seed: 43, Now: testNow})
	jc, _ := json.Marshal(c.Accounts())
	if string(ja) == string(jc) {
		t.Errorf("Generate() with seeds 42 and 43 produced the same table")
	}
}

func TestGenerate_Domains(t *testing.T) {
	table := newTestTable()
	if table.Len() != 100 {
		t.Fatalf("Len() = %d, want 100", table.Len())
	}
	if table.Currency() != "MXN" {
		t.Errorf("Currency() = %q, want MXN", table.Currency())
	}

	today := date.Of(testNow)
	lo, hi := MXN(1000), MXN(50000)
	statuses := map[Status]int{}
	portfolios := map[Portfolio]int{}
	for i, a := range table.Accounts() {
		if a.ID != i+1 {
			t.Errorf("Accounts()[%d].ID = %d, want %d", i, a.ID, i+1)
		}
		statuses[a.Status]++
		portfolios[a.Portfolio]++
		if a.Amount.LessThan(lo) || !a.Amount.LessThan(hi) {
			t.Errorf("account %d: amount %v out of [1000, 50000)", a.ID, a.Amount)
		}
		if !a.Amount.Equal(a.Amount.Round()) {
			t.Errorf("account %d: amount %v has more than 2 decimals", a.ID, a.Amount.Decimal())
		}
		if d := a.DueDay().Sub(today); d < -30 || d >= 30 {
			t.Errorf("account %d: due in %d days, want [-30, 30)", a.ID, d)
		}
		if a.DueDate.Hour() != testNow.Hour() || a.DueDate.Minute() != testNow.Minute() {
			t.Errorf("account %d: due date %v lost the creation time of day", a.ID, a.DueDate)
		}
	}
	for _, s := range AllStatuses {
		if statuses[s] == 0 {
			t.Errorf("status %v never drawn in 100 accounts", s)
		}
	}
	for _, p := range AllPortfolios {
		if portfolios[p] == 0 {
			t.Errorf("portfolio %v never drawn in 100 accounts", p)
		}
	}
}

func TestGenerate_Defaults(t *testing.T) {
	table := Generate(GeneratorOptions{Seed: 1})
	if table.Len() != DefaultCount {
		t.Errorf("Len() = %d, want %d", table.Len(), DefaultCount)
	}
	if table.Currency() != DefaultCurrency {
		t.Errorf("Currency() = %q, want %q", table.Currency(), DefaultCurrency)
	}
	if table.Created().IsZero() {
		t.Errorf("Created() is zero, want now")
	}
}

func TestNewTable(t *testing.T) {
	table, err := NewTable("MXN", testNow, acc(1, Normal, Administrativa, 0, 10), acc(2, Arco, Extrajudicial, 1, 20))
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	if table.Len() != 2 || table.Currency() != "MXN" {
		t.Errorf("NewTable() = %d accounts in %s, want 2 in MXN", table.Len(), table.Currency())
	}

	usd := Account{ID: 3, Status: Normal, Portfolio: Administrativa, DueDate: testNow, Amount: M(10, "USD")}
	if _, err := NewTable("MXN", testNow, acc(1, Normal, Administrativa, 0, 10), usd); err == nil {
		t.Errorf("NewTable() with a USD amount in a MXN table error = nil, want an error")
	}
	blank := Account{ID: 4, Status: Normal, Portfolio: Administrativa, DueDate: testNow, Amount: M(10, "")}
	if _, err := NewTable("MXN", testNow, blank); err == nil {
		t.Errorf("NewTable() with an amount without currency error = nil, want an error")
	}
}

func TestTable_Immutable(t *testing.T) {
	table := newTestTable()
	accounts := table.Accounts()
	accounts[0].NoticeSent = !accounts[0].NoticeSent
	accounts[0].Amount = MXN(0)

	got, ok := table.Account(1)
	if !ok {
		t.Fatalf("Account(1) not found")
	}
	if got.NoticeSent == accounts[0].NoticeSent || got.Amount.IsZero() {
		t.Errorf("changing a copy of the accounts changed the table")
	}
	if _, ok := table.Account(101); ok {
		t.Errorf("Account(101) found in a 100 accounts table")
	}
}
