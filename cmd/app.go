// Package cmd implements the CLI application to project dividend income.
package cmd

import (
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/etnz/divtrack"
	"github.com/etnz/divtrack/eodhd"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package calls Register() to declare the subcommands, and Execute()
// on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&projectCmd{}, "projections")
	c.Register(&compareCmd{}, "projections")

	c.Register(&snapshotsCmd{}, "history")
	c.Register(&showCmd{}, "history")
	c.Register(&trendCmd{}, "history")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var portfolioFile = flag.String("portfolio-file", filepath.Join("data", "portfolio.csv"), "Path to the portfolio CSV file")
var dataDir = flag.String("data-dir", "data", "Directory holding snapshots and the response cache")
var verbose = flag.Bool("v", false, "Verbose logging")
var apiKeyFlag = flag.String("eodhd-api-key", "", "EODHD API token (defaults to the EODHD_API_KEY environment variable)")

// SetupLogging silences the library's progress logging unless -v was given.
func SetupLogging() {
	if !*verbose {
		log.SetOutput(io.Discard)
	}
}

func apiKey() string {
	if *apiKeyFlag != "" {
		return *apiKeyFlag
	}
	return os.Getenv("EODHD_API_KEY")
}

func historyDir() string { return filepath.Join(*dataDir, "historical") }
func cacheDir() string   { return filepath.Join(*dataDir, ".cache") }

// newMarket builds the market-data client from the app flags.
func newMarket(noCache bool) *eodhd.Client {
	if noCache {
		return eodhd.New(apiKey())
	}
	return eodhd.New(apiKey(), eodhd.WithCache(&eodhd.DirCache{Dir: cacheDir()}))
}

// openHistory is the central function to open the snapshot store.
func openHistory() *divtrack.History {
	return divtrack.NewHistory(historyDir())
}
