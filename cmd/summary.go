package cmd

import (
	"context"
	"flag"

	"github.com/fintrack/fintrack"
	"github.com/fintrack/fintrack/renderer"
	"github.com/google/subcommands"
)

// rangeFlags is the shared -s/-e pair of the reporting commands.
type rangeFlags struct {
	start string
	end   string
}

func (r *rangeFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&r.start, "s", "", "Earliest date to include (YYYY-MM-DD).")
	f.StringVar(&r.end, "e", "", "Latest date to include (YYYY-MM-DD).")
}

// parse returns the date range; zero dates mean open bounds.
func (r *rangeFlags) parse() (from, to fintrack.Date, err error) {
	if r.start != "" {
		if from, err = fintrack.ParseDate(r.start); err != nil {
			return
		}
	}
	if r.end != "" {
		to, err = fintrack.ParseDate(r.end)
	}
	return
}

type summaryCmd struct{ rangeFlags }

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display income, expenses, and net cash flow" }
func (*summaryCmd) Usage() string {
	return `fin summary [-s <start_date>] [-e <end_date>]

  Displays total income, total expenses, and the net over a date range.
  Without flags the whole history is summarized.
`
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	from, to, err := c.parse()
	if err != nil {
		return fail(err)
	}
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.SummaryMarkdown(ledger.Summary(from, to), from, to))
	return subcommands.ExitSuccess
}

type spendingCmd struct{ rangeFlags }

func (*spendingCmd) Name() string     { return "spending" }
func (*spendingCmd) Synopsis() string { return "break down expenses by category" }
func (*spendingCmd) Usage() string {
	return `fin spending [-s <start_date>] [-e <end_date>]

  Breaks down expenses by category over a date range, largest first, with
  each category's share of the total.
`
}

func (c *spendingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	from, to, err := c.parse()
	if err != nil {
		return fail(err)
	}
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.SpendingMarkdown(ledger.SpendingByCategory(from, to), from, to))
	return subcommands.ExitSuccess
}

type trendCmd struct {
	months int
}

func (*trendCmd) Name() string     { return "trend" }
func (*trendCmd) Synopsis() string { return "show cash flow month by month" }
func (*trendCmd) Usage() string {
	return `fin trend [-m <months>]

  Shows income, expense, and net grouped by calendar month, oldest first.
`
}

func (c *trendCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.months, "m", 6, "How many recent months to show.")
}

func (c *trendCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.TrendMarkdown(ledger.MonthlyTrend(c.months)))
	return subcommands.ExitSuccess
}

type categoriesCmd struct{}

func (*categoriesCmd) Name() string     { return "categories" }
func (*categoriesCmd) Synopsis() string { return "list the suggested categories" }
func (*categoriesCmd) Usage() string {
	return `fin categories

  Lists the suggested income and expense categories. Any label is accepted;
  these are only suggestions.
`
}

func (*categoriesCmd) SetFlags(_ *flag.FlagSet) {}

func (c *categoriesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	printMarkdown(renderer.CategoriesMarkdown())
	return subcommands.ExitSuccess
}
