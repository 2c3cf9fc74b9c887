package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/flex2ledger/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

func main() {
	// optional .env, typically holding IB_FLEX_TOKEN
	_ = godotenv.Load()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
