// Package renderer turns the ledger's structured results into markdown text
// for the CLI and the agent tools. It never computes anything: formatting
// only.
package renderer

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/fintrack/fintrack"
	md "github.com/nao1215/markdown"
)

// TransactionsMarkdown renders a transaction list as a markdown table.
func TransactionsMarkdown(transactions []fintrack.Transaction) string {
	if len(transactions) == 0 {
		return "No transactions found.\n"
	}
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Transactions (%d)", len(transactions)))

	rows := make([][]string, 0, len(transactions))
	for _, t := range transactions {
		rows = append(rows, []string{
			strconv.Itoa(t.ID),
			t.Date.String(),
			string(t.Type),
			t.Category,
			signedAmount(t),
			t.Description,
			t.PaymentMethod,
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"ID", "Date", "Type", "Category", "Amount", "Description", "Payment"},
		Rows:   rows,
	})
	return doc.String()
}

// signedAmount renders an amount with the sign its type implies.
func signedAmount(t fintrack.Transaction) string {
	if t.Type == fintrack.Expense {
		return "-" + t.Amount.String()
	}
	return "+" + t.Amount.String()
}

// CategoriesMarkdown renders the advisory category lists.
func CategoriesMarkdown() string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Categories")
	doc.H2("Income")
	doc.PlainText(strings.Join(fintrack.IncomeCategories, ", "))
	doc.H2("Expense")
	doc.PlainText(strings.Join(fintrack.ExpenseCategories, ", "))
	doc.PlainText("Categories are suggestions: any label is accepted.")
	return doc.String()
}
