package fintrack

import "fmt"

// fakeProvider is an in-memory QuoteProvider for tests. Symbols absent from
// prices report an error, like a real provider with an unknown ticker.
type fakeProvider struct {
	prices map[string]float64
}

func (p *fakeProvider) CurrentPrice(symbol string) (Money, error) {
	price, ok := p.prices[symbol]
	if !ok {
		return Money{}, fmt.Errorf("unknown symbol %q", symbol)
	}
	return USD(price), nil
}

func (p *fakeProvider) History(symbol string, from, to Date) ([]ClosePrice, error) {
	return nil, fmt.Errorf("no history for %q", symbol)
}

// day is a helper for tests to build dates from constants.
func day(s string) Date { return MustParseDate(s) }

// mustAddTransaction fails the test on any add error.
func mustAddTransaction(t interface{ Fatalf(string, ...any) }, l *Ledger, typ TransactionType, category string, amount float64, on string) Transaction {
	tx, err := l.AddTransaction(typ, category, USD(amount), "", day(on), "")
	if err != nil {
		t.Fatalf("AddTransaction(%s, %s, %v) failed: %v", typ, category, amount, err)
	}
	return tx
}
