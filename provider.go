package fintrack

// ClosePrice is one day's closing price for a security.
type ClosePrice struct {
	Date  Date  `json:"date"`
	Close Money `json:"close"`
}

// QuoteProvider supplies market prices per symbol. Implementations live
// outside the ledger; the ledger only depends on this contract and degrades
// gracefully when a provider fails (see Ledger.PortfolioValue).
type QuoteProvider interface {
	// CurrentPrice returns the latest price for the symbol.
	CurrentPrice(symbol string) (Money, error)
	// History returns the daily close series for the symbol over [from, to].
	History(symbol string, from, to Date) ([]ClosePrice, error)
}
