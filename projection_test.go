package divtrack

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// quarterlyHistory builds a payment history ending exactly at `last`, paying
// `amount` per share every 90 days.
func quarterlyHistory(last time.Time, amount decimal.Decimal) []Payment {
	var history []Payment
	for i := 7; i >= 0; i-- {
		history = append(history, Payment{
			Date:   last.Add(-time.Duration(i) * 90 * 24 * time.Hour),
			Amount: amount,
		})
	}
	return history
}

func TestEstimateFutureDividends(t *testing.T) {
	now := time.Date(2026, time.August, 23, 0, 0, 0, 0, time.UTC)
	amount := decimal.RequireFromString("0.24")

	future := EstimateFutureDividends(quarterlyHistory(now, amount), 12, now)

	// 90-day steps over a 360-day horizon: four payments.
	if len(future) != 4 {
		t.Fatalf("got %d projected payments, want 4", len(future))
	}
	for i, p := range future {
		wantDate := now.Add(time.Duration(i+1) * 90 * 24 * time.Hour)
		if !p.Date.Equal(wantDate) {
			t.Errorf("payment %d on %v, want %v", i, p.Date, wantDate)
		}
		if !p.Amount.Equal(amount) {
			t.Errorf("payment %d amount %v, want %v", i, p.Amount, amount)
		}
	}
}

func TestEstimateFutureDividendsCap(t *testing.T) {
	now := time.Date(2026, time.August, 23, 0, 0, 0, 0, time.UTC)
	history := []Payment{
		{Date: now.Add(-30 * 24 * time.Hour), Amount: decimal.NewFromInt(1)},
		{Date: now, Amount: decimal.NewFromInt(1)},
	}

	// 30-day steps over a 900-day horizon would give 30 payments.
	future := EstimateFutureDividends(history, 30, now)
	if len(future) != maxProjectedPayments {
		t.Errorf("got %d projected payments, want the cap of %d", len(future), maxProjectedPayments)
	}
}

func TestEstimateFutureDividendsStaleHistory(t *testing.T) {
	// The last payment is several intervals in the past: the early steps land
	// before now and must be dropped, not emitted as past payments.
	now := time.Date(2026, time.August, 23, 0, 0, 0, 0, time.UTC)
	last := now.Add(-100 * 24 * time.Hour)
	history := []Payment{
		{Date: last.Add(-30 * 24 * time.Hour), Amount: decimal.NewFromInt(1)},
		{Date: last, Amount: decimal.NewFromInt(1)},
	}

	future := EstimateFutureDividends(history, 12, now)
	if len(future) == 0 {
		t.Fatal("got no projected payments, want some")
	}
	for _, p := range future {
		if !p.Date.After(now) {
			t.Errorf("projected payment on %v is not after now %v", p.Date, now)
		}
	}
}

func TestEstimateFutureDividendsTooShort(t *testing.T) {
	now := time.Date(2026, time.August, 23, 0, 0, 0, 0, time.UTC)

	if got := EstimateFutureDividends(nil, 12, now); got != nil {
		t.Errorf("projection from empty history = %v, want nil", got)
	}
	one := []Payment{{Date: now, Amount: decimal.NewFromInt(1)}}
	if got := EstimateFutureDividends(one, 12, now); got != nil {
		t.Errorf("projection from one payment = %v, want nil", got)
	}
}

func TestEstimateFutureDividendsUnsortedInput(t *testing.T) {
	now := time.Date(2026, time.August, 23, 0, 0, 0, 0, time.UTC)
	amount := decimal.RequireFromString("0.24")

	history := quarterlyHistory(now, amount)
	// shuffle deterministically
	history[0], history[len(history)-1] = history[len(history)-1], history[0]

	future := EstimateFutureDividends(history, 12, now)
	if len(future) != 4 {
		t.Errorf("got %d projected payments from unsorted history, want 4", len(future))
	}
}
