package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/flex2ledger"
	"github.com/etnz/flex2ledger/date"
	"github.com/google/subcommands"
)

// ledgerCmd implements the "ledger" command.
type ledgerCmd struct {
	newOnly        bool
	ignoreDeposits bool
}

func (*ledgerCmd) Name() string     { return "ledger" }
func (*ledgerCmd) Synopsis() string { return "converts a Flex statement into hledger entries" }
func (*ledgerCmd) Usage() string {
	return `f2l ledger [-new-only] [-ignore-deposits-withdrawals] <statement.xml>

Converts the statement's trades and cash activity into hledger text on
stdout. Use "-" to read the statement from stdin.

With -new-only the existing hledger journal is queried for the latest
recorded transaction date, and everything on or before that date is dropped;
if the lookup fails the whole statement is converted.
`
}

func (c *ledgerCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.newOnly, "new-only", false, "drop transactions already recorded in the hledger journal")
	f.BoolVar(&c.ignoreDeposits, "ignore-deposits-withdrawals", false, "do not emit Deposits/Withdrawals transactions")
}

func (c *ledgerCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.ignoreDeposits {
		cfg.IgnoreDepositsWithdrawals = true
	}

	statement, err := decodeStatementFile(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	banner(statement)

	var cutoff date.Date
	if c.newOnly {
		if d, ok := flex2ledger.LatestTransactionDate(cfg.StockAccount); ok {
			cutoff = d
			fmt.Fprintf(os.Stderr, "Dropping transactions on or before %s\n", cutoff)
		}
	}

	if err := flex2ledger.WriteLedger(os.Stdout, statement, cfg, cutoff); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not write ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
