package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/divtrack"
	"github.com/etnz/divtrack/date"
	"github.com/etnz/divtrack/renderer"
	"github.com/google/subcommands"
)

// showCmd holds the flags for the 'show' subcommand.
type showCmd struct {
	date string
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "display a saved snapshot" }
func (*showCmd) Usage() string {
	return `dvt show [-d <date>]

  Displays the snapshot saved for a given day, or the latest one.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Snapshot date (YYYY-MM-DD, defaults to the latest)")
}

func (c *showCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	history := openHistory()

	var s *divtrack.Snapshot
	var err error
	if c.date == "" {
		s, err = history.Latest()
	} else {
		var on date.Date
		on, err = date.Parse(c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
		s, err = history.Load(on)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.SnapshotMarkdown(s))
	return subcommands.ExitSuccess
}
