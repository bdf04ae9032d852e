// Package cmd implements the CLI application to manage the finance ledger.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/fintrack/fintrack"
	"github.com/fintrack/fintrack/yahoo"
	"github.com/google/subcommands"
)

// Commands lists every subcommand. A main package registers them all and
// executes the user-selected one.
var Commands = []subcommands.Command{
	&addCmd{},
	&txCmd{},
	&rmCmd{},
	&summaryCmd{},
	&spendingCmd{},
	&trendCmd{},
	&categoriesCmd{},
	&investCmd{},
	&divestCmd{},
	&investmentsCmd{},
	&portfolioCmd{},
	&networthCmd{},
	&quoteCmd{},
	&historyCmd{},
	&signalsCmd{},
	&exportCmd{},
	&topicCmd{},
	&assistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data-dir", ".fintrack", "Path to the folder holding the ledger's CSV files")

// openLedger is the central function to open the ledger from the data
// directory.
func openLedger() (*fintrack.Ledger, error) {
	return fintrack.Open(*dataDir)
}

// provider returns the market-data provider used by valuation commands.
func provider() fintrack.QuoteProvider { return yahoo.NewClient() }

// printMarkdown renders markdown for the terminal; on render failure the raw
// markdown is still printed.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// fail prints an error and converts it to an exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
