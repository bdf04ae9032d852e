package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the transaction history to a CSV file" }
func (*exportCmd) Usage() string {
	return `fin export -o <file>

  Writes the full transaction history to a CSV file, independent of the
  data directory.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Destination file.")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.output == "" {
		fmt.Fprintln(os.Stderr, "Error: -o is required.")
		return subcommands.ExitUsageError
	}
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	if err := ledger.ExportTransactionsCSV(c.output); err != nil {
		return fail(err)
	}
	fmt.Printf("Transactions exported to %s.\n", c.output)
	return subcommands.ExitSuccess
}
