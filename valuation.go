package fintrack

import (
	"fmt"
	"log"
	"sort"

	"github.com/shopspring/decimal"
)

// Holding is the per-symbol view of the portfolio: all lots for one symbol
// collapsed to an average cost basis and marked to the current price.
type Holding struct {
	Symbol           string          `json:"symbol"`
	Quantity         Quantity        `json:"quantity"`
	AvgPurchasePrice Money           `json:"avg_purchase_price"`
	CurrentPrice     Money           `json:"current_price"`
	TotalCost        Money           `json:"total_cost"`
	CurrentValue     Money           `json:"current_value"`
	GainLoss         Money           `json:"gain_loss"`
	GainLossPercent  decimal.Decimal `json:"gain_loss_percent"`
	// PriceFallback marks a holding valued at its own cost basis because
	// no usable live price was available.
	PriceFallback bool `json:"price_fallback,omitempty"`
}

// PortfolioValue is the marked-to-market view of all holdings.
type PortfolioValue struct {
	TotalInvested        Money           `json:"total_invested"`
	CurrentValue         Money           `json:"current_value"`
	TotalGainLoss        Money           `json:"total_gain_loss"`
	TotalGainLossPercent decimal.Decimal `json:"total_gain_loss_percent"`
	Holdings             []Holding       `json:"holdings"`
	Warnings             []string        `json:"warnings,omitempty"`
}

// PortfolioValue groups lots by symbol and values each holding at the
// provider's current price.
//
// It never fails: when the provider errors, returns a non-positive price,
// or is nil, the holding is valued at its average purchase price, so its
// gain/loss is exactly zero, and a warning is recorded. The aggregate
// percentage is computed from the aggregate totals, not averaged.
func (l *Ledger) PortfolioValue(p QuoteProvider) *PortfolioValue {
	pv := &PortfolioValue{
		TotalInvested: USD(0),
		CurrentValue:  USD(0),
		TotalGainLoss: USD(0),
		Holdings:      []Holding{},
	}
	bySymbol := make(map[string][]Investment)
	for _, inv := range l.investments {
		bySymbol[inv.Symbol] = append(bySymbol[inv.Symbol], inv)
	}
	symbols := make([]string, 0, len(bySymbol))
	for sym := range bySymbol {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	for _, sym := range symbols {
		qty := Q(0)
		cost := USD(0)
		for _, lot := range bySymbol[sym] {
			qty = qty.Add(lot.Quantity)
			cost = cost.Add(lot.TotalCost)
		}
		h := Holding{
			Symbol:           sym,
			Quantity:         qty,
			AvgPurchasePrice: cost.Div(qty),
			TotalCost:        cost,
		}
		if price, err := l.currentPrice(p, sym); err != nil {
			// fall back to the cost basis so the valuation proceeds;
			// gain/loss for this holding is exactly zero
			h.CurrentPrice = h.AvgPurchasePrice
			h.CurrentValue = cost
			h.PriceFallback = true
			warning := fmt.Sprintf("no current price for %s, using average purchase price", sym)
			pv.Warnings = append(pv.Warnings, warning)
			log.Printf("portfolio: %v", err)
		} else {
			h.CurrentPrice = price
			h.CurrentValue = price.Mul(qty)
		}
		h.GainLoss = h.CurrentValue.Sub(h.TotalCost)
		h.GainLossPercent = h.GainLoss.PercentOf(h.TotalCost)

		pv.TotalInvested = pv.TotalInvested.Add(h.TotalCost)
		pv.CurrentValue = pv.CurrentValue.Add(h.CurrentValue)
		pv.Holdings = append(pv.Holdings, h)
	}
	pv.TotalGainLoss = pv.CurrentValue.Sub(pv.TotalInvested)
	pv.TotalGainLossPercent = pv.TotalGainLoss.PercentOf(pv.TotalInvested)
	return pv
}

// currentPrice asks the provider for a usable (positive) price.
func (l *Ledger) currentPrice(p QuoteProvider, symbol string) (Money, error) {
	if p == nil {
		return Money{}, &ProviderError{Symbol: symbol, Err: fmt.Errorf("no quote provider configured")}
	}
	price, err := p.CurrentPrice(symbol)
	if err != nil {
		return Money{}, &ProviderError{Symbol: symbol, Err: err}
	}
	if !price.IsPositive() {
		return Money{}, &ProviderError{Symbol: symbol, Err: fmt.Errorf("non-positive price %s", price.Decimal())}
	}
	return price, nil
}

// NetWorth ties both stores together: cash from the full transaction
// history plus the current value of all holdings.
type NetWorth struct {
	CashBalance     Money           `json:"cash_balance"`
	InvestmentValue Money           `json:"investment_value"`
	TotalNetWorth   Money           `json:"total_net_worth"`
	Portfolio       *PortfolioValue `json:"portfolio_details"`
}

// NetWorth computes the net worth. It reads both stores and never mutates
// either; empty stores yield all-zero values.
func (l *Ledger) NetWorth(p QuoteProvider) *NetWorth {
	pv := l.PortfolioValue(p)
	cash := l.Summary(Date{}, Date{}).Net
	return &NetWorth{
		CashBalance:     cash,
		InvestmentValue: pv.CurrentValue,
		TotalNetWorth:   cash.Add(pv.CurrentValue),
		Portfolio:       pv,
	}
}
