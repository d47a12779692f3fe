package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/divtrack"
	md "github.com/nao1215/markdown"
)

// TrendMarkdown renders the period-over-period analysis of a snapshot series.
func TrendMarkdown(r *divtrack.TrendReport, days int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio Trend (last %d days)", days))

	if len(r.Points) == 0 {
		doc.PlainText("No snapshots in this period. Run `dvt project -save` to record one.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight,
		},
		Header: []string{"Date", "Value", "Value Change", "Annual Div", "Div Change", "Yield"},
	}
	for _, pt := range r.Points {
		valueChange, divChange := "—", "—"
		if pt.HasChange {
			valueChange = change(pt.ValueChange, pt.ValueChangePct.SignedString())
			divChange = change(pt.DividendChange, pt.DividendChangePct.SignedString())
		}
		table.Rows = append(table.Rows, []string{
			pt.Date.String(),
			usd(pt.TotalValue),
			valueChange,
			usd(pt.AnnualDividends),
			divChange,
			pt.Yield.String(),
		})
	}
	doc.Table(table)

	if s := r.Summary; s != nil {
		doc.H2(fmt.Sprintf("Period %s to %s", s.From, s.To))
		doc.Table(md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
			Header:    []string{"", ""},
			Rows: [][]string{
				{"Snapshots", fmt.Sprintf("%d", s.Points)},
				{"Value Change", change(s.ValueChange, s.ValueChangePct.SignedString())},
				{"Dividend Change", change(s.DividendChange, s.DividendChangePct.SignedString())},
			},
		})
	}

	return doc.String()
}
