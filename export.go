package divtrack

import (
	"encoding/csv"
	"io"

	"github.com/etnz/divtrack/date"
)

// This file handles the CSV export format: a monthly summary file and a
// detailed breakdown file.

// ExportCSV writes the full export: monthly totals, a blank line, then the
// per-payment details.
func ExportCSV(w io.Writer, r *Result) error {
	if err := ExportMonthlyCSV(w, r); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	return ExportDetailsCSV(w, r)
}

// ExportMonthlyCSV writes the monthly projected totals, in chronological order.
func ExportMonthlyCSV(w io.Writer, r *Result) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"Month", "Total"})
	for _, label := range r.Months() {
		cw.Write([]string{label, r.MonthlyDividends[label].StringFixed(2)})
	}
	cw.Flush()
	return cw.Error()
}

// ExportDetailsCSV writes every projected payment, ordered by date.
func ExportDetailsCSV(w io.Writer, r *Result) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"Date", "Symbol", "Amount Per Share", "Shares", "Total"})
	for _, d := range r.SortedDetails() {
		cw.Write([]string{
			d.Date.Format(date.DateFormat),
			d.Symbol,
			d.AmountPerShare.StringFixed(4),
			d.Shares.StringFixed(0),
			d.Total.StringFixed(2),
		})
	}
	cw.Flush()
	return cw.Error()
}
