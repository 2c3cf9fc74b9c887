package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/flex2ledger/flexquery"
	"github.com/google/subcommands"
)

// fetchCmd implements the "fetch" command.
type fetchCmd struct {
	wait   time.Duration
	output string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "retrieves the Flex statement from the IBKR web service" }
func (*fetchCmd) Usage() string {
	return `f2l fetch [-wait <duration>] [-o <file>]

Executes the configured Flex query on the IBKR Flex Web Service and downloads
the generated statement, to stdout by default. Requires api_token (or the
IB_FLEX_TOKEN environment variable) and query_id in the configuration.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.DurationVar(&c.wait, "wait", 5*time.Second, "time to wait between statement generation polls")
	f.StringVar(&c.output, "o", "", "write the statement to this file instead of stdout")
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	token := flexToken(cfg)
	if token == "" || cfg.QueryID == "" {
		fmt.Fprintf(os.Stderr, "Error: fetch requires a web service token and query_id, see 'f2l topic configuration'\n")
		return subcommands.ExitFailure
	}

	fmt.Fprintf(os.Stderr, "Executing statement generation...\n")
	statement, err := flexquery.New(token, cfg.QueryID).Retrieve(ctx, c.wait)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not retrieve statement: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.output == "" {
		os.Stdout.Write(statement)
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(c.output, statement, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not write statement file: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Statement written to %s\n", c.output)
	return subcommands.ExitSuccess
}
