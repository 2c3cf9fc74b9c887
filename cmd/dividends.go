package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/flex2ledger"
	"github.com/google/subcommands"
)

// dividendsCmd implements the "dividends" command.
type dividendsCmd struct{}

func (*dividendsCmd) Name() string     { return "dividends" }
func (*dividendsCmd) Synopsis() string { return "exports the statement's dividends as CSV" }
func (*dividendsCmd) Usage() string {
	return `f2l dividends <statement.xml>

Exports every dividend cash transaction of the statement (all levels of
detail) as CSV on stdout. Use "-" to read the statement from stdin.
`
}

func (*dividendsCmd) SetFlags(f *flag.FlagSet) {}

func (c *dividendsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	statement, err := decodeStatementFile(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := flex2ledger.WriteDividendCSV(os.Stdout, statement.CashTransactions); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
