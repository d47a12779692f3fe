package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/divtrack/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

func main() {
	// A .env file is the easiest place to keep EODHD_API_KEY out of the shell
	// history; absence is fine.
	godotenv.Load()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	cmd.SetupLogging()
	os.Exit(int(commander.Execute(context.Background())))
}
