package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/flex2ledger"
	"github.com/google/subcommands"
)

// positionsCmd implements the "positions" command.
type positionsCmd struct{}

func (*positionsCmd) Name() string     { return "positions" }
func (*positionsCmd) Synopsis() string { return "lists the open positions of a Flex statement" }
func (*positionsCmd) Usage() string {
	return `f2l positions <statement.xml>

Prints the statement's open positions: symbol, quantity, market value and
description. Use "-" to read the statement from stdin.
`
}

func (*positionsCmd) SetFlags(f *flag.FlagSet) {}

func (c *positionsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	statement, err := decodeStatementFile(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	banner(statement)

	if err := flex2ledger.WritePositions(os.Stdout, statement.OpenPositions); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not write positions: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
