package fintrack

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DisplayCurrency is the single currency the tracker reports in.
// Amounts carry no currency conversion semantics.
const DisplayCurrency = "USD"

// Money represents a monetary value in the display currency.
type Money struct {
	value decimal.Decimal
	cur   string
}

// M builds a Money from any numeric value.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// USD builds a Money in the display currency.
func USD[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Money {
	return M(value, DisplayCurrency)
}

// ParseMoney parses a plain decimal string into a display-currency Money.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return M(d, DisplayCurrency), nil
}

// currency returns the money's full currency definition.
func (m Money) currency() money.Currency {
	cur := m.cur
	if cur == "" {
		cur = DisplayCurrency
	}
	// calling the money constructor is the way to get a never-nil currency
	return *money.New(0, cur).Currency()
}

// String returns the string representation of the money value, formatted
// for its currency (e.g. "$1,234.50").
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.Round(0).IntPart())
}

// SignedString is like String but with an explicit sign; zero renders as "-".
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Currency() string             { return m.cur }
func (m Money) Decimal() decimal.Decimal     { return m.value }
func (m Money) Float64() float64             { return m.value.InexactFloat64() }
func (m Money) Equal(n Money) bool           { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                 { return m.value.IsZero() }
func (m Money) IsPositive() bool             { return m.value.IsPositive() }
func (m Money) IsNegative() bool             { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool        { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool     { return m.value.GreaterThan(n.value) }
func (m Money) Abs() Money                   { return Money{value: m.value.Abs(), cur: m.cur} }
func (m Money) Neg() Money                   { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Mul(q Quantity) Money         { return Money{value: m.value.Mul(q.value), cur: m.cur} }
func (m Money) Div(q Quantity) Money         { return Money{value: m.value.Div(q.value), cur: m.cur} }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// cur makes the "" currency totally weak.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + "!=" + b.cur)
	}
	return a.cur
}

// PercentOf returns m as a percentage of total, rounded to 2 decimal places.
// A zero total yields zero.
func (m Money) PercentOf(total Money) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return m.value.Div(total.value).Mul(decimal.NewFromInt(100)).Round(2)
}

// MarshalJSON encodes the amount as a bare decimal number.
func (m Money) MarshalJSON() ([]byte, error) {
	return m.value.MarshalJSON()
}

// UnmarshalJSON decodes a bare decimal number into a display-currency amount.
func (m *Money) UnmarshalJSON(data []byte) error {
	if err := m.value.UnmarshalJSON(data); err != nil {
		return err
	}
	m.cur = DisplayCurrency
	return nil
}
