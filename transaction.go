package fintrack

import "strings"

// TransactionType classifies a cash-flow event.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// ParseTransactionType parses a transaction type, case-insensitively.
func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(strings.ToLower(strings.TrimSpace(s))); t {
	case Income, Expense:
		return t, nil
	default:
		return "", errInvalid("type", "%q is not a transaction type, want %q or %q", s, Income, Expense)
	}
}

// InvestmentPurchaseCategory is the category of the expense automatically
// recorded when an investment lot is added.
const InvestmentPurchaseCategory = "Investment Purchase"

// defaultPaymentMethod is used when a transaction's payment method is empty.
const defaultPaymentMethod = "Cash"

// Transaction is a single cash-flow event. Amount is always non-negative;
// its sign is implied by Type.
type Transaction struct {
	ID            int             `json:"id"`
	Date          Date            `json:"date"`
	Type          TransactionType `json:"type"`
	Category      string          `json:"category"`
	Amount        Money           `json:"amount"`
	Description   string          `json:"description,omitempty"`
	PaymentMethod string          `json:"payment_method"`
}

// IncomeCategories and ExpenseCategories are the advisory default category
// lists. They are suggestions for callers, not an enforced closed set.
var (
	IncomeCategories = []string{
		"Salary", "Freelance", "Investment", "Gift", "Refund", "Other Income",
	}
	ExpenseCategories = []string{
		"Housing", "Transportation", "Food", "Utilities", "Healthcare",
		"Entertainment", "Shopping", "Education", "Travel", "Savings",
		"Debt Payment", "Insurance", InvestmentPurchaseCategory, "Other Expense",
	}
)

// Categories returns the advisory category list for the given type.
func Categories(t TransactionType) []string {
	if t == Income {
		return IncomeCategories
	}
	return ExpenseCategories
}

// TransactionFilter selects transactions for listing. Zero values leave the
// corresponding dimension unfiltered; a Limit <= 0 means no truncation.
type TransactionFilter struct {
	Type     TransactionType
	Category string
	From, To Date
	Limit    int
}

// match reports whether t passes every set filter. Type and category compare
// case-insensitively, so a filter built from raw user or model input works
// without prior normalization.
func (f TransactionFilter) match(t Transaction) bool {
	if f.Type != "" && !strings.EqualFold(string(f.Type), string(t.Type)) {
		return false
	}
	if f.Category != "" && !strings.EqualFold(t.Category, f.Category) {
		return false
	}
	return t.Date.inRange(f.From, f.To)
}
