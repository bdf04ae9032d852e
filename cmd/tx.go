package cmd

import (
	"context"
	"flag"

	"github.com/fintrack/fintrack"
	"github.com/fintrack/fintrack/renderer"
	"github.com/google/subcommands"
)

type txCmd struct {
	typ      string
	category string
	start    string
	end      string
	limit    int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list transactions, most recent first" }
func (*txCmd) Usage() string {
	return `fin tx [-t <type>] [-c <category>] [-s <start_date>] [-e <end_date>] [-n <limit>]

  Lists transactions from the ledger, with options for filtering and
  limiting the output. Filters are combined.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.typ, "t", "", "Filter by type: income or expense.")
	f.StringVar(&c.category, "c", "", "Filter by category label.")
	f.StringVar(&c.start, "s", "", "Earliest date to include (YYYY-MM-DD).")
	f.StringVar(&c.end, "e", "", "Latest date to include (YYYY-MM-DD).")
	f.IntVar(&c.limit, "n", 0, "Show at most N transactions. All by default.")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filter := fintrack.TransactionFilter{
		Type:     fintrack.TransactionType(c.typ),
		Category: c.category,
		Limit:    c.limit,
	}
	var err error
	if c.start != "" {
		if filter.From, err = fintrack.ParseDate(c.start); err != nil {
			return fail(err)
		}
	}
	if c.end != "" {
		if filter.To, err = fintrack.ParseDate(c.end); err != nil {
			return fail(err)
		}
	}
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.TransactionsMarkdown(ledger.Transactions(filter)))
	return subcommands.ExitSuccess
}
