package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fintrack/fintrack"
	"github.com/fintrack/fintrack/renderer"
	"github.com/fintrack/fintrack/signals"
	"github.com/fintrack/fintrack/yahoo"
	"github.com/google/subcommands"
)

type quoteCmd struct{}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "show the current market price of a stock" }
func (*quoteCmd) Usage() string {
	return `fin quote <symbol>...

  Shows the current price and daily change for one or more symbols.
`
}

func (*quoteCmd) SetFlags(_ *flag.FlagSet) {}

func (c *quoteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: expected at least one symbol.")
		return subcommands.ExitUsageError
	}
	client := yahoo.NewClient()
	status := subcommands.ExitSuccess
	for _, symbol := range f.Args() {
		q, err := client.Quote(symbol)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			status = subcommands.ExitFailure
			continue
		}
		printMarkdown(renderer.QuoteMarkdown(q))
	}
	return status
}

type historyCmd struct {
	days int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "show the recent close prices of a stock" }
func (*historyCmd) Usage() string {
	return `fin history [-days <n>] <symbol>

  Shows the daily close prices of a symbol over the recent past.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.days, "days", 30, "How many days back to fetch.")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one symbol.")
		return subcommands.ExitUsageError
	}
	symbol := fintrack.NormalizeSymbol(f.Arg(0))
	to := fintrack.Today()
	series, err := provider().History(symbol, to.Add(-c.days), to)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.HistoryMarkdown(symbol, series))
	return subcommands.ExitSuccess
}

type signalsCmd struct {
	days int
}

func (*signalsCmd) Name() string     { return "signals" }
func (*signalsCmd) Synopsis() string { return "compute technical indicators for a stock" }
func (*signalsCmd) Usage() string {
	return `fin signals [-days <n>] <symbol>

  Computes SMA, RSI, and MACD over the recent close-price history of a
  symbol, with a one-word trend reading.
`
}

func (c *signalsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.days, "days", 180, "How many days of history to analyze.")
}

func (c *signalsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one symbol.")
		return subcommands.ExitUsageError
	}
	symbol := fintrack.NormalizeSymbol(f.Arg(0))
	to := fintrack.Today()
	series, err := provider().History(symbol, to.Add(-c.days), to)
	if err != nil {
		return fail(err)
	}
	report, err := signals.Analyze(symbol, series)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.SignalsMarkdown(report))
	return subcommands.ExitSuccess
}
