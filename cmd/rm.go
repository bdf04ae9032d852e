package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/google/subcommands"
)

type rmCmd struct{}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "delete a transaction by id" }
func (*rmCmd) Usage() string {
	return `fin rm <id>

  Deletes the transaction with the given id. A missing id is reported, not
  an error.
`
}

func (*rmCmd) SetFlags(_ *flag.FlagSet) {}

func (c *rmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one transaction id.")
		return subcommands.ExitUsageError
	}
	id, err := strconv.Atoi(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %q is not a transaction id.\n", f.Arg(0))
		return subcommands.ExitUsageError
	}
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	removed, err := ledger.RemoveTransaction(id)
	if err != nil {
		return fail(err)
	}
	if !removed {
		fmt.Printf("No transaction with id %d.\n", id)
		return subcommands.ExitSuccess
	}
	fmt.Printf("Deleted transaction %d.\n", id)
	return subcommands.ExitSuccess
}
