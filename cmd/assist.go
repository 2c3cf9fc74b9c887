package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/flex2ledger"
	"github.com/etnz/flex2ledger/agent"
	"github.com/etnz/flex2ledger/date"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct{}

func (*assistCmd) Name() string { return "assist" }
func (*assistCmd) Synopsis() string {
	return "start an interactive session with the AI assistant about a statement"
}
func (*assistCmd) Usage() string {
	return `f2l assist <statement.xml> [question...]

Converts the statement and starts an interactive session with the AI
assistant about the resulting ledger entries.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	statement, err := decodeStatementFile(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var ledger bytes.Buffer
	if err := flex2ledger.WriteLedger(&ledger, statement, cfg, date.Date{}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not convert statement: %v\n", err)
		return subcommands.ExitFailure
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	a := agent.New(os.Stdout, os.Stdin, ledger.String())
	var prompts []string
	if f.NArg() > 1 {
		prompts = append(prompts, strings.Join(f.Args()[1:], " "))
	}
	if err := a.Run(ctx, client, prompts...); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
