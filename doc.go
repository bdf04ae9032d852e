// Package fintrack implements a personal finance ledger: income and expense
// transactions, stock purchase lots, and the derived views computed from
// them (cash-flow summaries, category breakdowns, monthly trends, portfolio
// valuation, net worth).
//
// The ledger owns its state in memory and mirrors it to two CSV files after
// every mutation. Market prices come from a pluggable QuoteProvider; when no
// usable price is available, valuation degrades to the purchase cost basis
// instead of failing.
package fintrack
