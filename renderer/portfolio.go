package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/fintrack/fintrack"
	md "github.com/nao1215/markdown"
)

// InvestmentsMarkdown renders the purchase lots.
func InvestmentsMarkdown(investments []fintrack.Investment) string {
	if len(investments) == 0 {
		return "No investments found.\n"
	}
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Investments (%d lots)", len(investments)))
	rows := make([][]string, 0, len(investments))
	for _, inv := range investments {
		rows = append(rows, []string{
			strconv.Itoa(inv.ID),
			inv.Symbol,
			inv.Quantity.String(),
			inv.PurchasePrice.String(),
			inv.PurchaseDate.String(),
			inv.TotalCost.String(),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"ID", "Symbol", "Quantity", "Price", "Date", "Cost"},
		Rows:   rows,
	})
	return doc.String()
}

// PortfolioMarkdown renders the marked-to-market portfolio view.
func PortfolioMarkdown(pv *fintrack.PortfolioValue) string {
	if len(pv.Holdings) == 0 {
		return "No investments found.\n"
	}
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio")
	rows := make([][]string, 0, len(pv.Holdings))
	for _, h := range pv.Holdings {
		price := h.CurrentPrice.String()
		if h.PriceFallback {
			price += " (est.)"
		}
		rows = append(rows, []string{
			h.Symbol,
			h.Quantity.String(),
			h.AvgPurchasePrice.String(),
			price,
			h.CurrentValue.String(),
			fmt.Sprintf("%s (%s%%)", h.GainLoss.SignedString(), h.GainLossPercent),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Symbol", "Quantity", "Avg Price", "Current", "Value", "Gain/Loss"},
		Rows:   rows,
	})

	doc.H2("Totals")
	doc.Table(md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total Invested", pv.TotalInvested.String()},
			{"Current Value", pv.CurrentValue.String()},
			{"Gain/Loss", fmt.Sprintf("%s (%s%%)", pv.TotalGainLoss.SignedString(), pv.TotalGainLossPercent)},
		},
	})
	for _, w := range pv.Warnings {
		doc.PlainText("Warning: " + w)
	}
	return doc.String()
}

// NetWorthMarkdown renders the net-worth view.
func NetWorthMarkdown(nw *fintrack.NetWorth) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Net Worth")
	doc.Table(md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Cash Balance", nw.CashBalance.String()},
			{"Investment Value", nw.InvestmentValue.String()},
			{"Total Net Worth", nw.TotalNetWorth.String()},
		},
	})
	return doc.String()
}
