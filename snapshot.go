package divtrack

import (
	"encoding/json"
	"time"

	"github.com/etnz/divtrack/date"
)

// StockMetric holds the valuation of a single position. Optional fields are
// nil when the underlying data is unknown, and are omitted from the persisted
// form rather than encoded as null.
type StockMetric struct {
	Shares       float64
	CurrentPrice *float64
	CurrentValue float64
	CostBasis    *float64
	GainLoss     *float64
	GainLossPct  *float64
}

func (m StockMetric) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("shares", m.Shares)
	w.Optional("current_price", m.CurrentPrice)
	w.Append("current_value", m.CurrentValue)
	w.Optional("cost_basis", m.CostBasis)
	w.Optional("gain_loss", m.GainLoss)
	w.Optional("gain_loss_pct", m.GainLossPct)
	return w.MarshalJSON()
}

func (m *StockMetric) UnmarshalJSON(data []byte) error {
	var js struct {
		Shares       float64  `json:"shares"`
		CurrentPrice *float64 `json:"current_price"`
		CurrentValue float64  `json:"current_value"`
		CostBasis    *float64 `json:"cost_basis"`
		GainLoss     *float64 `json:"gain_loss"`
		GainLossPct  *float64 `json:"gain_loss_pct"`
	}
	if err := json.Unmarshal(data, &js); err != nil {
		return err
	}
	*m = StockMetric(js)
	return nil
}

// Snapshot is the persisted record of one calculation run. At most one
// snapshot exists per calendar day; re-running on the same day overwrites it.
type Snapshot struct {
	Date             time.Time              `json:"date"`
	PortfolioFile    string                 `json:"portfolio_file"`
	TotalValue       float64                `json:"total_value"`
	TotalCost        float64                `json:"total_cost"`
	MonthlyDividends map[string]float64     `json:"monthly_dividends"`
	AnnualDividends  map[string]float64     `json:"stock_annual_dividends"`
	Metrics          map[string]StockMetric `json:"metrics"`
}

// NewSnapshot converts a calculation result into its persistable form.
func NewSnapshot(r *Result, portfolioFile string, on time.Time) *Snapshot {
	s := &Snapshot{
		Date:             on,
		PortfolioFile:    portfolioFile,
		TotalValue:       r.TotalValue,
		TotalCost:        r.TotalCost,
		MonthlyDividends: make(map[string]float64, len(r.MonthlyDividends)),
		AnnualDividends:  make(map[string]float64, len(r.AnnualDividends)),
		Metrics:          make(map[string]StockMetric, len(r.Metrics)),
	}
	for label, total := range r.MonthlyDividends {
		s.MonthlyDividends[label] = total.InexactFloat64()
	}
	for symbol, annual := range r.AnnualDividends {
		s.AnnualDividends[symbol] = annual.InexactFloat64()
	}
	for symbol, m := range r.Metrics {
		s.Metrics[symbol] = m
	}
	return s
}

// Day returns the calendar day the snapshot is keyed by.
func (s *Snapshot) Day() date.Date { return date.FromTime(s.Date) }

// TotalAnnualDividends sums the per-symbol annual dividend totals.
func (s *Snapshot) TotalAnnualDividends() float64 {
	var total float64
	for _, annual := range s.AnnualDividends {
		total += annual
	}
	return total
}

// Yield returns annual dividends as a percentage of portfolio value.
func (s *Snapshot) Yield() Percent {
	return RatioPercent(s.TotalAnnualDividends(), s.TotalValue)
}

// Months returns the snapshot's month labels, chronologically.
func (s *Snapshot) Months() []string {
	labels := make([]string, 0, len(s.MonthlyDividends))
	for label := range s.MonthlyDividends {
		labels = append(labels, label)
	}
	SortMonthLabels(labels)
	return labels
}
