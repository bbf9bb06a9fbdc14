package cartera

import "time"

// testNow is the creation time of tables built by tests.
var testNow = time.Date(2025, time.June, 20, 13, 18, 30, 0, time.UTC)

// MXN is a helper for test to create pesos from const.
func MXN(v float64) Money { return M(v, "MXN") }

// newTestTable is the table of the reference scenario: 100 accounts, seed 42.
func newTestTable() *Table {
	return Generate(GeneratorOptions{Count: 100, Seed: 42, Now: testNow})
}

// acc is a helper for tests to create an account due on testNow + days.
func acc(id int, s Status, p Portfolio, days int, amount float64) Account {
	return Account{ID: id, Status: s, Portfolio: p, DueDate: testNow.AddDate(0, 0, days), Amount: MXN(amount)}
}
