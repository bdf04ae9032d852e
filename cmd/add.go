package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fintrack/fintrack"
	"github.com/fintrack/fintrack/renderer"
	"github.com/google/subcommands"
)

type addCmd struct {
	typ         string
	category    string
	amount      float64
	description string
	date        string
	payment     string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record an income or expense transaction" }
func (*addCmd) Usage() string {
	return `fin add -t <income|expense> -c <category> -a <amount> [-desc <text>] [-d <date>] [-p <payment>]

  Records a transaction in the ledger. The amount is always positive: the
  type carries the sign.

Usage Examples:
$ fin add -t expense -c Food -a 42.50 -desc "groceries"
$ fin add -t income -c Salary -a 3000 -d 2025-06-01

`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.typ, "t", "", "Transaction type: income or expense.")
	f.StringVar(&c.category, "c", "", "Category label. See 'fin categories' for suggestions.")
	f.Float64Var(&c.amount, "a", 0, "Amount in dollars.")
	f.StringVar(&c.description, "desc", "", "Free-text note.")
	f.StringVar(&c.date, "d", "", "Transaction date (YYYY-MM-DD). Defaults to today.")
	f.StringVar(&c.payment, "p", "", "Payment method. Defaults to Cash.")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.typ == "" || c.category == "" || c.amount == 0 {
		fmt.Fprintln(os.Stderr, "Error: -t, -c and -a are required.")
		return subcommands.ExitUsageError
	}
	var day fintrack.Date
	if c.date != "" {
		var err error
		if day, err = fintrack.ParseDate(c.date); err != nil {
			return fail(err)
		}
	}
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	tx, err := ledger.AddTransaction(fintrack.TransactionType(c.typ), c.category, fintrack.USD(c.amount), c.description, day, c.payment)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.TransactionsMarkdown([]fintrack.Transaction{tx}))
	return subcommands.ExitSuccess
}
