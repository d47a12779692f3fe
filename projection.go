package divtrack

import (
	"log"
	"slices"
	"time"

	"github.com/etnz/divtrack/date"
	"github.com/shopspring/decimal"
)

// Payment is a single per-share dividend payment, historical or projected.
type Payment struct {
	Date   time.Time
	Amount decimal.Decimal // per-share amount
}

// maxProjectedPayments caps how many payments a single projection produces.
const maxProjectedPayments = 20

// projectionDaysPerMonth approximates a calendar month when computing the
// projection horizon. The month-label bucketing downstream assumes the same
// approximation, so it must not be replaced by calendar-month arithmetic.
const projectionDaysPerMonth = 30

// EstimateFutureDividends projects future payments from the historical
// pattern: it classifies the cadence, then repeatedly steps the average
// interval forward from the most recent payment, repeating its per-share
// amount unchanged.
//
// The projection stops at now + 30×monthsAhead days or after 20 payments,
// whichever comes first. A step landing on or before now (possible only on
// the first step, when the last payment is older than one interval) is
// dropped without affecting subsequent steps. Fewer than two historical
// payments yield no projection.
func EstimateFutureDividends(history []Payment, monthsAhead int, now time.Time) []Payment {
	if len(history) < 2 {
		return nil
	}

	sorted := slices.Clone(history)
	slices.SortFunc(sorted, func(a, b Payment) int { return a.Date.Compare(b.Date) })

	dates := make([]time.Time, len(sorted))
	for i, p := range sorted {
		dates[i] = p.Date
	}
	freq, avgDays := Classify(dates)
	if freq == FrequencyUnknown {
		return nil
	}
	log.Printf("dividend frequency: %s (avg %.0f days)", freq, avgDays)

	last := sorted[len(sorted)-1]
	end := now.Add(time.Duration(projectionDaysPerMonth*monthsAhead) * date.Day)
	step := time.Duration(avgDays * float64(date.Day))

	var future []Payment
	for next := last.Date.Add(step); !next.After(end) && len(future) < maxProjectedPayments; next = next.Add(step) {
		if !next.After(now) {
			continue
		}
		future = append(future, Payment{Date: next, Amount: last.Amount})
	}
	return future
}
