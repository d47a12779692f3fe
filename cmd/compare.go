package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/divtrack"
	"github.com/etnz/divtrack/renderer"
	"github.com/google/subcommands"
)

type compareCmd struct {
	months  int
	noCache bool
}

func (*compareCmd) Name() string     { return "compare" }
func (*compareCmd) Synopsis() string { return "compare dividend projections of several portfolios" }
func (*compareCmd) Usage() string {
	return `dvt compare [-months <n>] [-no-cache] <portfolio.csv>...

  Runs the projection over several portfolio files and shows their monthly
  dividends side by side. A file that fails to load is reported and skipped.
`
}

func (c *compareCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.months, "months", divtrack.DefaultProjectionMonths, "Number of months to project ahead")
	f.BoolVar(&c.noCache, "no-cache", false, "Bypass the market-data response cache")
}

func (c *compareCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	files := f.Args()
	if len(files) < 2 {
		fmt.Fprintln(os.Stderr, "Error: compare needs at least two portfolio files")
		return subcommands.ExitUsageError
	}

	calc := divtrack.NewCalculator(newMarket(c.noCache))
	calc.MonthsAhead = c.months

	cmp := divtrack.Compare(calc, files)
	if len(cmp.Entries) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no portfolio could be loaded")
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ComparisonMarkdown(cmp))
	return subcommands.ExitSuccess
}
