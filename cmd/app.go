// Package cmd implements the CLI application to convert Flex statements.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/flex2ledger"
	"github.com/google/subcommands"
)

// Commands lists the subcommands.
// A main package registers them on a Commander and Executes the user-selected one.
var Commands = []subcommands.Command{
	&fetchCmd{},
	&ledgerCmd{},
	&positionsCmd{},
	&dividendsCmd{},
	&topicCmd{},
	&assistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "flex2ledger.json", "Path to the JSON configuration file")

const ibFlexTokenEnv = "IB_FLEX_TOKEN"

var tokenFlag = flag.String("flex-token", "", "IBKR Flex web service token.\n If missing it will read the environment variable \""+ibFlexTokenEnv+"\", then the config file.")

// LoadConfig reads the app configuration file.
func LoadConfig() (flex2ledger.Config, error) {
	return flex2ledger.LoadConfig(*configFile)
}

// flexToken resolves the web service token: flag, then environment, then
// config file.
func flexToken(cfg flex2ledger.Config) string {
	if *tokenFlag != "" {
		return *tokenFlag
	}
	if t := os.Getenv(ibFlexTokenEnv); t != "" {
		return t
	}
	return cfg.APIToken
}

// decodeStatementFile reads a Flex statement from a file, or from stdin for "-".
func decodeStatementFile(filename string) (*flex2ledger.Statement, error) {
	if filename == "" {
		return nil, fmt.Errorf("missing statement file argument")
	}
	if filename == "-" {
		return flex2ledger.DecodeStatement(os.Stdin)
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open statement file %q: %w", filename, err)
	}
	defer f.Close()
	return flex2ledger.DecodeStatement(f)
}

// banner logs the statement identity to stderr before any conversion output.
func banner(s *flex2ledger.Statement) {
	fmt.Fprintf(os.Stderr, "Statement for %s, account %s\n", s.AccountInformation.Name, s.AccountID)
	fmt.Fprintf(os.Stderr, "Period %s to %s\n", s.FromDate, s.ToDate)
}

// printMarkdown renders a markdown document to the terminal.
func printMarkdown(doc string) {
	out, err := glamour.Render(doc, "auto")
	if err != nil {
		// raw markdown is still readable
		fmt.Print(doc)
		return
	}
	fmt.Print(out)
}
