package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/fintrack/fintrack"
	md "github.com/nao1215/markdown"
)

// rangeLabel names a date range for headings. Open bounds stay implicit.
func rangeLabel(from, to fintrack.Date) string {
	switch {
	case from.IsZero() && to.IsZero():
		return "all time"
	case from.IsZero():
		return fmt.Sprintf("until %s", to)
	case to.IsZero():
		return fmt.Sprintf("since %s", from)
	default:
		return fmt.Sprintf("%s to %s", from, to)
	}
}

// SummaryMarkdown renders a cash-flow summary.
func SummaryMarkdown(s fintrack.Summary, from, to fintrack.Date) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Financial Summary (%s)", rangeLabel(from, to)))
	doc.Table(md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total Income", s.TotalIncome.String()},
			{"Total Expenses", s.TotalExpenses.String()},
			{"Net", s.Net.SignedString()},
			{"Transactions", strconv.Itoa(s.TransactionCount)},
			{"Income entries", strconv.Itoa(s.IncomeCount)},
			{"Expense entries", strconv.Itoa(s.ExpenseCount)},
		},
	})
	return doc.String()
}

// SpendingMarkdown renders the expense breakdown by category.
func SpendingMarkdown(spends []fintrack.CategorySpend, from, to fintrack.Date) string {
	if len(spends) == 0 {
		return "No expense data found.\n"
	}
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Spending by Category (%s)", rangeLabel(from, to)))
	rows := make([][]string, 0, len(spends))
	for _, c := range spends {
		rows = append(rows, []string{
			c.Category,
			c.Total.String(),
			strconv.Itoa(c.Count),
			c.Percentage.String() + "%",
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Category", "Total", "Count", "Share"},
		Rows:   rows,
	})
	return doc.String()
}

// TrendMarkdown renders the month-by-month cash flow.
func TrendMarkdown(flows []fintrack.MonthlyFlow) string {
	if len(flows) == 0 {
		return "No transactions found.\n"
	}
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Monthly Trend")
	rows := make([][]string, 0, len(flows))
	for _, f := range flows {
		rows = append(rows, []string{f.Month, f.Income.String(), f.Expense.String(), f.Net.SignedString()})
	}
	doc.Table(md.TableSet{
		Header: []string{"Month", "Income", "Expense", "Net"},
		Rows:   rows,
	})
	return doc.String()
}
