package renderer

import (
	"bytes"
	"fmt"

	"github.com/fintrack/fintrack"
	"github.com/fintrack/fintrack/signals"
	"github.com/fintrack/fintrack/yahoo"
	md "github.com/nao1215/markdown"
)

// QuoteMarkdown renders a market snapshot.
func QuoteMarkdown(q *yahoo.Quote) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	title := q.Symbol
	if q.Name != "" {
		title = fmt.Sprintf("%s (%s)", q.Name, q.Symbol)
	}
	doc.H1(title)
	rows := [][]string{
		{"Price", q.Price.String()},
	}
	if !q.PreviousClose.IsZero() {
		rows = append(rows,
			[]string{"Previous Close", q.PreviousClose.String()},
			[]string{"Change", fmt.Sprintf("%s (%s%%)", q.Change.SignedString(), q.ChangePercent)},
		)
	}
	doc.Table(md.TableSet{Header: []string{"Metric", "Value"}, Rows: rows})
	return doc.String()
}

// HistoryMarkdown renders a close-price series.
func HistoryMarkdown(symbol string, series []fintrack.ClosePrice) string {
	if len(series) == 0 {
		return fmt.Sprintf("No price history for %s.\n", symbol)
	}
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s close prices (%s to %s)", symbol, series[0].Date, series[len(series)-1].Date))
	rows := make([][]string, 0, len(series))
	for _, p := range series {
		rows = append(rows, []string{p.Date.String(), p.Close.String()})
	}
	doc.Table(md.TableSet{Header: []string{"Date", "Close"}, Rows: rows})
	return doc.String()
}

// SignalsMarkdown renders a technical-indicator report.
func SignalsMarkdown(r *signals.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s signals: %s", r.Symbol, r.Trend))
	rows := [][]string{
		{"Last", fmt.Sprintf("%.2f", r.Last)},
	}
	if r.SMA20 != 0 {
		rows = append(rows, []string{"SMA 20", fmt.Sprintf("%.2f", r.SMA20)})
	}
	if r.SMA50 != 0 {
		rows = append(rows, []string{"SMA 50", fmt.Sprintf("%.2f", r.SMA50)})
	}
	if r.RSI14 != 0 {
		rows = append(rows, []string{"RSI 14", fmt.Sprintf("%.2f", r.RSI14)})
	}
	if r.MACD != 0 || r.MACDSignal != 0 {
		rows = append(rows,
			[]string{"MACD", fmt.Sprintf("%.4f", r.MACD)},
			[]string{"MACD signal", fmt.Sprintf("%.4f", r.MACDSignal)},
		)
	}
	doc.Table(md.TableSet{Header: []string{"Indicator", "Value"}, Rows: rows})
	return doc.String()
}
