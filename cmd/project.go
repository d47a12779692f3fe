package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/divtrack"
	"github.com/etnz/divtrack/renderer"
	"github.com/google/subcommands"
)

// projectCmd holds the flags for the 'project' subcommand.
type projectCmd struct {
	months     int
	noCache    bool
	summary    bool
	noMetrics  bool
	save       bool
	exportFile string
}

func (*projectCmd) Name() string     { return "project" }
func (*projectCmd) Synopsis() string { return "project future dividend income for the portfolio" }
func (*projectCmd) Usage() string {
	return `dvt project [-months <n>] [-no-cache] [-summary] [-no-metrics] [-save] [-export <file>]

  Projects dividend payments for every position over the coming months, based
  on each symbol's payment history, and values the portfolio at current
  prices.

Usage Examples:
# Project the default 12 months and save today's snapshot.
$ dvt project -save

# Monthly totals only, exported to CSV.
$ dvt project -summary -export projections.csv
`
}

func (c *projectCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.months, "months", divtrack.DefaultProjectionMonths, "Number of months to project ahead")
	f.BoolVar(&c.noCache, "no-cache", false, "Bypass the market-data response cache")
	f.BoolVar(&c.summary, "summary", false, "Show monthly totals only, without the per-payment details")
	f.BoolVar(&c.noMetrics, "no-metrics", false, "Skip portfolio valuation metrics")
	f.BoolVar(&c.save, "save", false, "Save today's snapshot for trend tracking")
	f.StringVar(&c.exportFile, "export", "", "Export the projections to a CSV file")
}

func (c *projectCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := divtrack.LoadPortfolio(*portfolioFile)
	if err != nil {
		return portfolioError(err)
	}

	calc := divtrack.NewCalculator(newMarket(c.noCache))
	calc.MonthsAhead = c.months
	calc.Metrics = !c.noMetrics
	result := calc.Run(p)

	history := openHistory()

	// The summary panel shows the change against the latest prior snapshot.
	previous, err := history.Latest()
	if err != nil && !errors.Is(err, divtrack.ErrSnapshotNotFound) {
		fmt.Fprintf(os.Stderr, "Warning: cannot read previous snapshot: %v\n", err)
	}

	printMarkdown(renderer.ProjectionMarkdown(result, previous, renderer.ReportOptions{
		Summary: c.summary,
		Metrics: !c.noMetrics,
	}))

	if c.exportFile != "" {
		if err := c.export(result); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting to %q: %v\n", c.exportFile, err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Exported projections to %s\n", c.exportFile)
	}

	if c.save {
		snapshot := divtrack.NewSnapshot(result, *portfolioFile, time.Now())
		file, err := history.Save(snapshot)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error saving snapshot: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Saved snapshot to %s\n", file)
	}

	return subcommands.ExitSuccess
}

func (c *projectCmd) export(r *divtrack.Result) error {
	f, err := os.Create(c.exportFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return divtrack.ExportCSV(f, r)
}

// portfolioError prints a readable diagnostic for a portfolio load failure,
// with the expected schema as remediation.
func portfolioError(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	switch {
	case errors.Is(err, divtrack.ErrPortfolioNotFound):
		fmt.Fprintf(os.Stderr, "\nCreate %s with a header and one position per line:\n\n  symbol,shares,cost_basis\n  AAPL,100,150.25\n", *portfolioFile)
	case errors.Is(err, divtrack.ErrPortfolioFormat), errors.Is(err, divtrack.ErrPortfolioEmpty):
		fmt.Fprintf(os.Stderr, "\nExpected a CSV with a symbol column and a shares column, e.g.:\n\n  symbol,shares,cost_basis\n  AAPL,100,150.25\n")
	}
	return subcommands.ExitFailure
}
