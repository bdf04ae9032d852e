package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fintrack/fintrack"
	"github.com/fintrack/fintrack/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `fin assist [initial prompt]

  Starts an interactive session with the AI assistant. The assistant can
  record and list transactions, value the portfolio, and read the market
  through the same ledger the other commands use. Requires GEMINI_API_KEY.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	market := provider()

	// a quick orientation before handing over to the assistant
	s := ledger.Summary(fintrack.Date{}, fintrack.Date{})
	nw := ledger.NetWorth(market)
	fmt.Printf("%d transaction(s), %d investment lot(s) on file. Net worth: %s.\n",
		s.TransactionCount, len(ledger.Investments()), nw.TotalNetWorth)

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	bookkeeper := agent.NewBookkeeper(ledger)
	analyst := agent.NewAnalyst(ledger, market)
	a := agent.New(os.Stdout, os.Stdin, bookkeeper, analyst)

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
