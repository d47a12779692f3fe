package renderer

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/etnz/divtrack"
	"github.com/etnz/divtrack/date"
	md "github.com/nao1215/markdown"
)

// ReportOptions selects which sections of the projection report to render.
type ReportOptions struct {
	Summary bool // monthly totals only, no per-payment details
	Metrics bool // include the positions table and valuation summary
}

// ProjectionMarkdown renders a full calculation run. When previous is not
// nil, the summary shows the change since that snapshot.
func ProjectionMarkdown(r *divtrack.Result, previous *divtrack.Snapshot, opts ReportOptions) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio Dividend Projections")

	if opts.Metrics {
		summarySection(doc, r, previous)
		positionsSection(doc, r)
	}
	monthlySection(doc, r)
	if !opts.Summary && len(r.Details) > 0 {
		detailsSection(doc, r)
	}

	return doc.String()
}

func summarySection(doc *md.Markdown, r *divtrack.Result, previous *divtrack.Snapshot) {
	annual := r.TotalAnnualDividends().InexactFloat64()

	valueCell := usd(r.TotalValue)
	annualCell := usd(annual)
	if previous != nil {
		if previous.TotalValue > 0 {
			delta := r.TotalValue - previous.TotalValue
			valueCell += "  " + change(delta, divtrack.RatioPercent(delta, previous.TotalValue).SignedString())
		}
		if prevAnnual := previous.TotalAnnualDividends(); prevAnnual > 0 {
			delta := annual - prevAnnual
			annualCell += "  " + change(delta, divtrack.RatioPercent(delta, prevAnnual).SignedString())
		}
	}

	rows := [][]string{
		{"Portfolio Value", valueCell},
	}
	if r.TotalCost > 0 {
		gain := r.TotalValue - r.TotalCost
		rows = append(rows,
			[]string{"Cost Basis", usd(r.TotalCost)},
			[]string{"Gain/Loss", change(gain, divtrack.RatioPercent(gain, r.TotalCost).SignedString())},
		)
	}
	rows = append(rows,
		[]string{"Annual Dividends", annualCell},
		[]string{"Portfolio Yield", r.Yield().String()},
	)

	doc.H2("Summary")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"", ""},
		Rows:      rows,
	})
}

func positionsSection(doc *md.Markdown, r *divtrack.Result) {
	if len(r.Metrics) == 0 {
		return
	}

	// largest positions first
	symbols := make([]string, 0, len(r.Metrics))
	for symbol := range r.Metrics {
		symbols = append(symbols, symbol)
	}
	sort.Slice(symbols, func(i, j int) bool {
		a, b := r.Metrics[symbols[i]], r.Metrics[symbols[j]]
		if a.CurrentValue != b.CurrentValue {
			return a.CurrentValue > b.CurrentValue
		}
		return symbols[i] < symbols[j]
	})

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight,
			md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight,
		},
		Header: []string{"Symbol", "Shares", "Price", "Value", "Cost Basis", "Gain/Loss", "Annual Div", "Yield"},
	}
	for _, symbol := range symbols {
		m := r.Metrics[symbol]

		price, cost, gain := "N/A", "N/A", "N/A"
		if m.CurrentPrice != nil {
			price = usd(*m.CurrentPrice)
		}
		if m.CostBasis != nil {
			cost = usd(*m.CostBasis)
		}
		if m.GainLoss != nil && m.GainLossPct != nil {
			gain = change(*m.GainLoss, divtrack.Percent(*m.GainLossPct).SignedString())
		}

		annual := r.AnnualDividends[symbol].InexactFloat64()
		table.Rows = append(table.Rows, []string{
			symbol,
			fmt.Sprintf("%.0f", m.Shares),
			price,
			usd(m.CurrentValue),
			cost,
			gain,
			usd(annual),
			divtrack.RatioPercent(annual, m.CurrentValue).String(),
		})
	}

	doc.H2("Positions")
	doc.Table(table)
}

func monthlySection(doc *md.Markdown, r *divtrack.Result) {
	doc.H2("Monthly Dividend Projections")

	months := r.Months()
	if len(months) == 0 {
		doc.PlainText("No projected dividend payments.")
		return
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Month", "Amount"},
	}
	total := 0.0
	for _, label := range months {
		amount := r.MonthlyDividends[label]
		total += amount.InexactFloat64()
		table.Rows = append(table.Rows, []string{label, usdDec(amount)})
	}
	doc.Table(table)
	doc.PlainText(fmt.Sprintf("Total: %s over %d months (avg %s/month)",
		usd(total), len(months), usd(total/float64(len(months)))))
}

func detailsSection(doc *md.Markdown, r *divtrack.Result) {
	doc.H2("Upcoming Payments")

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Date", "Symbol", "Per Share", "Shares", "Total"},
	}
	for _, d := range r.SortedDetails() {
		table.Rows = append(table.Rows, []string{
			d.Date.Format(date.DateFormat),
			d.Symbol,
			"$" + d.AmountPerShare.StringFixed(4),
			d.Shares.StringFixed(0),
			usdDec(d.Total),
		})
	}
	doc.Table(table)
}
