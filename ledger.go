package fintrack

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// Ledger owns the transaction and investment stores in memory and keeps the
// durable files in sync. It is the single source of truth for the process:
// a failed persist leaves the in-memory mutation applied (the operation
// returns the record alongside a *PersistenceError).
type Ledger struct {
	transactions []Transaction
	investments  []Investment
	store        *Store
}

// NewLedger returns an in-memory ledger with no durable backing.
func NewLedger() *Ledger { return &Ledger{} }

// AddTransaction validates, records, and persists a cash-flow event.
//
// The amount is coerced to its absolute value: sign is implied by the type,
// never stored. A zero day defaults to today, an empty payment method to
// "Cash". The created record is returned even when persisting fails.
func (l *Ledger) AddTransaction(typ TransactionType, category string, amount Money, description string, day Date, payment string) (Transaction, error) {
	typ, err := ParseTransactionType(string(typ))
	if err != nil {
		return Transaction{}, err
	}
	if day.IsZero() {
		day = Today()
	}
	if payment == "" {
		payment = defaultPaymentMethod
	}
	t := Transaction{
		ID:            len(l.transactions) + 1,
		Date:          day,
		Type:          typ,
		Category:      category,
		Amount:        amount.Abs(),
		Description:   description,
		PaymentMethod: payment,
	}
	l.transactions = append(l.transactions, t)
	return t, l.persistTransactions()
}

// Transactions returns the transactions matching the filter, most recent
// first. Ties on equal dates keep insertion order. The filter's limit
// truncates after sorting.
func (l *Ledger) Transactions(f TransactionFilter) []Transaction {
	matches := make([]Transaction, 0, len(l.transactions))
	for _, t := range l.transactions {
		if f.match(t) {
			matches = append(matches, t)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Date.After(matches[j].Date) })
	limit := f.Limit
	if limit <= 0 {
		limit = math.MaxInt
	}
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// RemoveTransaction deletes the transactions with the given id and persists.
// It reports whether anything was deleted; a missing id is a no-op, not an
// error. Duplicate ids (possible after deletions, see AddTransaction) are
// all removed.
func (l *Ledger) RemoveTransaction(id int) (bool, error) {
	kept := l.transactions[:0]
	for _, t := range l.transactions {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	removed := len(kept) < len(l.transactions)
	l.transactions = kept
	if !removed {
		return false, nil
	}
	return true, l.persistTransactions()
}

// Summary aggregates cash flow over [from, to]. Zero bounds are open.
type Summary struct {
	TotalIncome      Money `json:"total_income"`
	TotalExpenses    Money `json:"total_expenses"`
	Net              Money `json:"net"`
	TransactionCount int   `json:"transaction_count"`
	IncomeCount      int   `json:"income_count"`
	ExpenseCount     int   `json:"expense_count"`
}

// Summary computes cash-flow totals over the given date range. An empty
// range yields a zeroed summary, never an error.
func (l *Ledger) Summary(from, to Date) Summary {
	s := Summary{TotalIncome: USD(0), TotalExpenses: USD(0)}
	for _, t := range l.transactions {
		if !t.Date.inRange(from, to) {
			continue
		}
		s.TransactionCount++
		if t.Type == Income {
			s.IncomeCount++
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
		} else {
			s.ExpenseCount++
			s.TotalExpenses = s.TotalExpenses.Add(t.Amount)
		}
	}
	s.Net = s.TotalIncome.Sub(s.TotalExpenses)
	return s
}

// CategorySpend is one category's share of expenses over a range.
type CategorySpend struct {
	Category   string          `json:"category"`
	Total      Money           `json:"total"`
	Count      int             `json:"count"`
	Percentage decimal.Decimal `json:"percentage"`
}

// SpendingByCategory breaks down expenses over [from, to] by category,
// largest total first. Percentages are shares of the filtered expense total,
// rounded to 2 decimal places. No expense data yields an empty slice.
func (l *Ledger) SpendingByCategory(from, to Date) []CategorySpend {
	byCat := make(map[string]*CategorySpend)
	grand := USD(0)
	for _, t := range l.transactions {
		if t.Type != Expense || !t.Date.inRange(from, to) {
			continue
		}
		c := byCat[t.Category]
		if c == nil {
			c = &CategorySpend{Category: t.Category, Total: USD(0)}
			byCat[t.Category] = c
		}
		c.Total = c.Total.Add(t.Amount)
		c.Count++
		grand = grand.Add(t.Amount)
	}
	spends := make([]CategorySpend, 0, len(byCat))
	for _, c := range byCat {
		c.Percentage = c.Total.PercentOf(grand)
		spends = append(spends, *c)
	}
	sort.Slice(spends, func(i, j int) bool {
		if !spends[i].Total.Equal(spends[j].Total) {
			return spends[i].Total.GreaterThan(spends[j].Total)
		}
		return spends[i].Category < spends[j].Category
	})
	return spends
}

// MonthlyFlow is one calendar month's cash flow.
type MonthlyFlow struct {
	Month   string `json:"month"` // YYYY-MM
	Income  Money  `json:"income"`
	Expense Money  `json:"expense"`
	Net     Money  `json:"net"`
}

// MonthlyTrend groups all transactions by calendar month and returns the
// most recent months entries, oldest first. Months with no data are not
// fabricated; within a reported month a missing side is zero.
func (l *Ledger) MonthlyTrend(months int) []MonthlyFlow {
	byMonth := make(map[string]*MonthlyFlow)
	for _, t := range l.transactions {
		key := t.Date.MonthKey()
		f := byMonth[key]
		if f == nil {
			f = &MonthlyFlow{Month: key, Income: USD(0), Expense: USD(0)}
			byMonth[key] = f
		}
		if t.Type == Income {
			f.Income = f.Income.Add(t.Amount)
		} else {
			f.Expense = f.Expense.Add(t.Amount)
		}
	}
	flows := make([]MonthlyFlow, 0, len(byMonth))
	for _, f := range byMonth {
		f.Net = f.Income.Sub(f.Expense)
		flows = append(flows, *f)
	}
	sort.Slice(flows, func(i, j int) bool { return flows[i].Month < flows[j].Month })
	if months > 0 && len(flows) > months {
		flows = flows[len(flows)-months:]
	}
	return flows
}

// AddInvestment validates, records, and persists a purchase lot, then
// records the matching expense transaction.
//
// The two stores are persisted sequentially with no overarching transaction:
// a write failure between the two steps leaves the lot recorded without its
// expense. Callers get the lot back in every non-validation case.
func (l *Ledger) AddInvestment(symbol string, quantity Quantity, price Money, day Date) (Investment, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return Investment{}, errInvalid("symbol", "cannot be empty")
	}
	if !quantity.IsPositive() {
		return Investment{}, errInvalid("quantity", "%s is not positive", quantity)
	}
	if !price.IsPositive() {
		return Investment{}, errInvalid("purchase_price", "%s is not positive", price.Decimal())
	}
	if day.IsZero() {
		day = Today()
	}
	inv := Investment{
		ID:            len(l.investments) + 1,
		Symbol:        symbol,
		Quantity:      quantity,
		PurchasePrice: price,
		PurchaseDate:  day,
		TotalCost:     price.Mul(quantity),
	}
	l.investments = append(l.investments, inv)
	if err := l.persistInvestments(); err != nil {
		return inv, err
	}
	desc := fmt.Sprintf("Purchased %s shares of %s at %s", quantity, symbol, price)
	if _, err := l.AddTransaction(Expense, InvestmentPurchaseCategory, inv.TotalCost, desc, day, ""); err != nil {
		return inv, err
	}
	return inv, nil
}

// RemoveInvestments deletes every lot for the normalized symbol, persists,
// and returns how many were removed. The expense transactions recorded at
// purchase time are NOT reversed: after a removal the cash balance and the
// investment ledger disagree by the removed lots' cost.
func (l *Ledger) RemoveInvestments(symbol string) (int, error) {
	symbol = NormalizeSymbol(symbol)
	kept := l.investments[:0]
	for _, inv := range l.investments {
		if inv.Symbol != symbol {
			kept = append(kept, inv)
		}
	}
	removed := len(l.investments) - len(kept)
	l.investments = kept
	if removed == 0 {
		return 0, nil
	}
	return removed, l.persistInvestments()
}

// Investments returns all purchase lots in insertion order.
func (l *Ledger) Investments() []Investment {
	invs := make([]Investment, len(l.investments))
	copy(invs, l.investments)
	return invs
}

func (l *Ledger) persistTransactions() error {
	if l.store == nil {
		return nil
	}
	return l.store.SaveTransactions(l.transactions)
}

func (l *Ledger) persistInvestments() error {
	if l.store == nil {
		return nil
	}
	return l.store.SaveInvestments(l.investments)
}
