// Package divtrack projects future dividend income for a stock and fund
// portfolio and tracks portfolio value over time.
//
// The engine reads a portfolio of positions, fetches each symbol's dividend
// payment history and current price from a market-data provider, classifies
// the payment cadence from the observed intervals, extrapolates future
// payments, and aggregates them into calendar-month buckets. A calculation
// run can be persisted as a daily snapshot, and a series of snapshots feeds
// the period-over-period trend analysis.
//
// Processing is sequential and single-threaded: symbols are handled one at a
// time in load order, and a provider failure for one symbol degrades that
// symbol only, never the run.
package divtrack
