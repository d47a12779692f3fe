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

// trendCmd holds the flags for the 'trend' subcommand.
type trendCmd struct {
	days int
}

func (*trendCmd) Name() string     { return "trend" }
func (*trendCmd) Synopsis() string { return "display the portfolio trend over recent snapshots" }
func (*trendCmd) Usage() string {
	return `dvt trend [-days <n>]

  Shows how portfolio value and projected dividends evolved across the
  snapshots of the last n days, with a first-to-last period summary.
`
}

func (c *trendCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.days, "days", divtrack.DefaultTrendDays, "Trend window in days")
}

func (c *trendCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.days <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -days must be positive")
		return subcommands.ExitUsageError
	}

	cutoff := date.Today().Add(-c.days)
	snapshots := openHistory().LoadSince(cutoff)
	report := divtrack.NewTrendReport(snapshots)

	printMarkdown(renderer.TrendMarkdown(report, c.days))
	return subcommands.ExitSuccess
}
