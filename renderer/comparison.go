package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/divtrack"
	md "github.com/nao1215/markdown"
)

// ComparisonMarkdown renders several portfolios side by side: one column per
// portfolio, one row per projected month, plus per-portfolio totals.
func ComparisonMarkdown(cmp *divtrack.Comparison) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio Comparison")

	if len(cmp.Entries) == 0 {
		doc.PlainText("No portfolio could be loaded.")
		return doc.String()
	}

	months := cmp.Months()

	header := []string{"Month"}
	alignment := []md.TableAlignment{md.AlignLeft}
	for _, e := range cmp.Entries {
		header = append(header, e.Name)
		alignment = append(alignment, md.AlignRight)
	}

	table := md.TableSet{Alignment: alignment, Header: header}
	for _, label := range months {
		row := []string{label}
		for _, e := range cmp.Entries {
			if amount, ok := e.Result.MonthlyDividends[label]; ok {
				row = append(row, usdDec(amount))
			} else {
				row = append(row, "—")
			}
		}
		table.Rows = append(table.Rows, row)
	}
	doc.H2("Monthly Dividend Projections")
	doc.Table(table)

	totals := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Portfolio", "Value", "Annual Dividends", "Yield"},
	}
	for _, e := range cmp.Entries {
		r := e.Result
		totals.Rows = append(totals.Rows, []string{
			e.Name,
			usd(r.TotalValue),
			usdDec(r.TotalAnnualDividends()),
			r.Yield().String(),
		})
	}
	doc.H2("Totals")
	doc.Table(totals)

	doc.PlainText(fmt.Sprintf("%d portfolios compared over %d months.", len(cmp.Entries), len(months)))
	return doc.String()
}
