package cmd

import (
	"context"
	"flag"

	"github.com/fintrack/fintrack/renderer"
	"github.com/google/subcommands"
)

type portfolioCmd struct{}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "value the portfolio at market prices" }
func (*portfolioCmd) Usage() string {
	return `fin portfolio

  Groups purchase lots by symbol and values each holding at the current
  market price. Holdings without a usable price are valued at their own
  cost basis with a warning; the command never fails because the market is
  unreachable.
`
}

func (*portfolioCmd) SetFlags(_ *flag.FlagSet) {}

func (c *portfolioCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.PortfolioMarkdown(ledger.PortfolioValue(provider())))
	return subcommands.ExitSuccess
}

type networthCmd struct{}

func (*networthCmd) Name() string     { return "networth" }
func (*networthCmd) Synopsis() string { return "display cash balance plus portfolio value" }
func (*networthCmd) Usage() string {
	return `fin networth

  Displays the net worth: the unfiltered net cash flow plus the current
  market value of all holdings.
`
}

func (*networthCmd) SetFlags(_ *flag.FlagSet) {}

func (c *networthCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.NetWorthMarkdown(ledger.NetWorth(provider())))
	return subcommands.ExitSuccess
}
