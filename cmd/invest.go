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

type investCmd struct {
	symbol   string
	quantity float64
	price    float64
	date     string
}

func (*investCmd) Name() string     { return "invest" }
func (*investCmd) Synopsis() string { return "record a stock purchase" }
func (*investCmd) Usage() string {
	return `fin invest -s <symbol> -q <quantity> [-p <price>] [-d <date>]

  Records one purchase lot. When -p is omitted, the current market price is
  used. Recording a purchase also records the matching expense transaction
  in the 'Investment Purchase' category.

Usage Examples:
$ fin invest -s AAPL -q 10 -p 150
$ fin invest -s VTI -q 2.5

`
}

func (c *investCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Ticker symbol, e.g. AAPL.")
	f.Float64Var(&c.quantity, "q", 0, "Number of shares, fractional allowed.")
	f.Float64Var(&c.price, "p", 0, "Price per share. Current market price when omitted.")
	f.StringVar(&c.date, "d", "", "Purchase date (YYYY-MM-DD). Defaults to today.")
}

func (c *investCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.quantity == 0 {
		fmt.Fprintln(os.Stderr, "Error: -s and -q are required.")
		return subcommands.ExitUsageError
	}
	var day fintrack.Date
	if c.date != "" {
		var err error
		if day, err = fintrack.ParseDate(c.date); err != nil {
			return fail(err)
		}
	}
	price := fintrack.USD(c.price)
	if c.price == 0 {
		var err error
		if price, err = provider().CurrentPrice(c.symbol); err != nil {
			return fail(fmt.Errorf("no price given and the market lookup failed: %w", err))
		}
		fmt.Fprintf(os.Stderr, "Using current market price %s for %s.\n", price, fintrack.NormalizeSymbol(c.symbol))
	}
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	inv, err := ledger.AddInvestment(c.symbol, fintrack.Q(c.quantity), price, day)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.InvestmentsMarkdown([]fintrack.Investment{inv}))
	return subcommands.ExitSuccess
}

type divestCmd struct {
	symbol string
}

func (*divestCmd) Name() string     { return "divest" }
func (*divestCmd) Synopsis() string { return "remove every purchase lot of a symbol" }
func (*divestCmd) Usage() string {
	return `fin divest -s <symbol>

  Removes every purchase lot of a symbol. The expense transactions recorded
  at purchase time are NOT reversed; use this to correct mistakes, not to
  model a sale.
`
}

func (c *divestCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Ticker symbol to remove.")
}

func (c *divestCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" {
		fmt.Fprintln(os.Stderr, "Error: -s is required.")
		return subcommands.ExitUsageError
	}
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	count, err := ledger.RemoveInvestments(c.symbol)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Removed %d lot(s) of %s. The original purchase expenses stay on the books.\n", count, fintrack.NormalizeSymbol(c.symbol))
	return subcommands.ExitSuccess
}

type investmentsCmd struct{}

func (*investmentsCmd) Name() string     { return "investments" }
func (*investmentsCmd) Synopsis() string { return "list all purchase lots" }
func (*investmentsCmd) Usage() string {
	return `fin investments

  Lists every recorded purchase lot in insertion order.
`
}

func (*investmentsCmd) SetFlags(_ *flag.FlagSet) {}

func (c *investmentsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.InvestmentsMarkdown(ledger.Investments()))
	return subcommands.ExitSuccess
}
