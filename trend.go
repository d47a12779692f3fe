package divtrack

import (
	"github.com/etnz/divtrack/date"
)

// DefaultTrendDays is the trend lookback window used when none is given.
const DefaultTrendDays = 90

// TrendPoint is one snapshot in a trend, with deltas against the immediately
// preceding snapshot (pairwise, not against a baseline).
type TrendPoint struct {
	Date            date.Date
	TotalValue      float64
	AnnualDividends float64
	Yield           Percent

	// Changes relative to the previous point; meaningless when HasChange is
	// false (the first point of the series).
	HasChange         bool
	ValueChange       float64
	ValueChangePct    Percent
	DividendChange    float64
	DividendChangePct Percent
}

// PeriodSummary compares the first and last snapshots of the window.
type PeriodSummary struct {
	From              date.Date
	To                date.Date
	Points            int
	ValueChange       float64
	ValueChangePct    Percent
	DividendChange    float64
	DividendChangePct Percent
}

// TrendReport is the period-over-period analysis of a snapshot series.
type TrendReport struct {
	Points  []TrendPoint
	Summary *PeriodSummary // nil when the series has fewer than two snapshots
}

// NewTrendReport computes pairwise adjacent changes across a chronologically
// ordered snapshot series, plus a first-vs-last summary of the whole window.
// Percentage changes against a zero base are a defined zero percent. A series
// of length zero or one yields no changes and no summary.
func NewTrendReport(snapshots []*Snapshot) *TrendReport {
	r := &TrendReport{}

	for i, s := range snapshots {
		annual := s.TotalAnnualDividends()
		pt := TrendPoint{
			Date:            s.Day(),
			TotalValue:      s.TotalValue,
			AnnualDividends: annual,
			Yield:           s.Yield(),
		}
		if i > 0 {
			prev := snapshots[i-1]
			prevAnnual := prev.TotalAnnualDividends()
			pt.HasChange = true
			pt.ValueChange = s.TotalValue - prev.TotalValue
			pt.ValueChangePct = RatioPercent(pt.ValueChange, prev.TotalValue)
			pt.DividendChange = annual - prevAnnual
			pt.DividendChangePct = RatioPercent(pt.DividendChange, prevAnnual)
		}
		r.Points = append(r.Points, pt)
	}

	if len(snapshots) >= 2 {
		first, last := snapshots[0], snapshots[len(snapshots)-1]
		firstAnnual, lastAnnual := first.TotalAnnualDividends(), last.TotalAnnualDividends()
		r.Summary = &PeriodSummary{
			From:              first.Day(),
			To:                last.Day(),
			Points:            len(snapshots),
			ValueChange:       last.TotalValue - first.TotalValue,
			ValueChangePct:    RatioPercent(last.TotalValue-first.TotalValue, first.TotalValue),
			DividendChange:    lastAnnual - firstAnnual,
			DividendChangePct: RatioPercent(lastAnnual-firstAnnual, firstAnnual),
		}
	}
	return r
}
