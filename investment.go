package fintrack

import "strings"

// Investment is one purchase lot of a security.
type Investment struct {
	ID            int      `json:"id"`
	Symbol        string   `json:"symbol"`
	Quantity      Quantity `json:"quantity"`
	PurchasePrice Money    `json:"purchase_price"`
	PurchaseDate  Date     `json:"purchase_date"`
	// TotalCost is always Quantity * PurchasePrice. It is persisted
	// redundantly and recomputed on load rather than trusted.
	TotalCost Money `json:"total_cost"`
}

// NormalizeSymbol uppercases and trims a ticker symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
