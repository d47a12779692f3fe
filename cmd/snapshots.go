package cmd

import (
	"context"
	"flag"

	"github.com/etnz/divtrack/renderer"
	"github.com/google/subcommands"
)

type snapshotsCmd struct{}

func (*snapshotsCmd) Name() string     { return "snapshots" }
func (*snapshotsCmd) Synopsis() string { return "list the saved snapshots" }
func (*snapshotsCmd) Usage() string {
	return `dvt snapshots

  Shows a census of the saved snapshots: how many, first, last and the most
  recent runs.
`
}

func (c *snapshotsCmd) SetFlags(f *flag.FlagSet) {}

func (c *snapshotsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	printMarkdown(renderer.HistoryMarkdown(openHistory().Summary()))
	return subcommands.ExitSuccess
}
