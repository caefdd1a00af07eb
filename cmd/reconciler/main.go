package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	"ledger-reconciler/internal/cli"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	cli.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
