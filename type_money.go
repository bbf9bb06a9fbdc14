package cartera

import (
	"encoding/json"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency of generated tables when none is given.
const DefaultCurrency = "MXN"

// Money represents a monetary value. Amounts are kept as exact decimals.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M creates a Money from any numeric value.
func M[T float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// ParseMoney parses a decimal amount like "1234.56".
func ParseMoney(amount, currency string) (Money, error) {
	v, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return Money{value: v, cur: currency}, nil
}

// IsCurrency reports whether code is a known ISO 4217 currency code.
func IsCurrency(code string) bool { return money.GetCurrency(code) != nil }

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the string representation of the money value, e.g. "$1,234.56".
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// Amount returns the amount as a fixed 2 decimals string, e.g. "1234.50".
func (m Money) Amount() string { return m.value.StringFixed(2) }

func (m Money) Currency() string           { return m.cur }
func (m Money) Decimal() decimal.Decimal   { return m.value }
func (m Money) Equal(n Money) bool         { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool               { return m.value.IsZero() }
func (m Money) LessThan(n Money) bool      { return m.value.LessThan(n.value) }
func (m Money) Round() Money               { return Money{value: m.value.Round(2), cur: m.cur} }
func (m Money) AsFloat() float64           { return m.value.InexactFloat64() }
func (m Money) Ratio(total Money) float64  { return ratio(m.value, total.value) }
func (m Money) Add(n Money) Money          { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }

func ratio(a, b decimal.Decimal) float64 {
	if b.IsZero() {
		return 0
	}
	return a.Div(b).InexactFloat64()
}

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch" + A.cur + "!=" + B.cur)
	}
	return A.cur
}

type jsonMoney struct {
	Amount   json.Number `json:"amount"`
	Currency string      `json:"currency,omitempty"`
}

// MarshalJSON writes money as {"amount":1234.56,"currency":"MXN"}, the amount rounded to the currency fraction.
func (m Money) MarshalJSON() ([]byte, error) {
	rounded := m.value.StringFixed(int32(m.currency().Fraction))
	if m.cur == "" {
		rounded = m.value.StringFixed(2)
	}
	return json.Marshal(jsonMoney{Amount: json.Number(rounded), Currency: m.cur})
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var j jsonMoney
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	v, err := ParseMoney(string(j.Amount), j.Currency)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
