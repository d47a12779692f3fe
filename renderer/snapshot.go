package renderer

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/etnz/divtrack"
	md "github.com/nao1215/markdown"
)

// SnapshotMarkdown renders a previously saved snapshot.
func SnapshotMarkdown(s *divtrack.Snapshot) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Snapshot %s", s.Day()))
	doc.PlainText(fmt.Sprintf("Portfolio file: %s", s.PortfolioFile))

	rows := [][]string{
		{"Portfolio Value", usd(s.TotalValue)},
	}
	if s.TotalCost > 0 {
		gain := s.TotalValue - s.TotalCost
		rows = append(rows,
			[]string{"Cost Basis", usd(s.TotalCost)},
			[]string{"Gain/Loss", change(gain, divtrack.RatioPercent(gain, s.TotalCost).SignedString())},
		)
	}
	rows = append(rows,
		[]string{"Annual Dividends", usd(s.TotalAnnualDividends())},
		[]string{"Portfolio Yield", s.Yield().String()},
	)
	doc.H2("Summary")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"", ""},
		Rows:      rows,
	})

	if len(s.Metrics) > 0 {
		snapshotPositions(doc, s)
	}

	doc.H2("Monthly Dividends")
	months := s.Months()
	if len(months) == 0 {
		doc.PlainText("No projected dividend payments.")
	} else {
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
			Header:    []string{"Month", "Amount"},
		}
		for _, label := range months {
			table.Rows = append(table.Rows, []string{label, usd(s.MonthlyDividends[label])})
		}
		doc.Table(table)
	}

	return doc.String()
}

func snapshotPositions(doc *md.Markdown, s *divtrack.Snapshot) {
	symbols := make([]string, 0, len(s.Metrics))
	for symbol := range s.Metrics {
		symbols = append(symbols, symbol)
	}
	sort.Slice(symbols, func(i, j int) bool {
		a, b := s.Metrics[symbols[i]], s.Metrics[symbols[j]]
		if a.CurrentValue != b.CurrentValue {
			return a.CurrentValue > b.CurrentValue
		}
		return symbols[i] < symbols[j]
	})

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight,
		},
		Header: []string{"Symbol", "Shares", "Price", "Value", "Gain/Loss", "Annual Div"},
	}
	for _, symbol := range symbols {
		m := s.Metrics[symbol]

		price, gain := "N/A", "N/A"
		if m.CurrentPrice != nil {
			price = usd(*m.CurrentPrice)
		}
		if m.GainLoss != nil && m.GainLossPct != nil {
			gain = change(*m.GainLoss, divtrack.Percent(*m.GainLossPct).SignedString())
		}

		table.Rows = append(table.Rows, []string{
			symbol,
			fmt.Sprintf("%.0f", m.Shares),
			price,
			usd(m.CurrentValue),
			gain,
			usd(s.AnnualDividends[symbol]),
		})
	}

	doc.H2("Positions")
	doc.Table(table)
}
