package divtrack

import (
	"errors"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultProjectionMonths is the projection horizon used when none is given.
const DefaultProjectionMonths = 12

// ErrUnavailable reports that the market-data provider has no data for a
// symbol. Providers return it (possibly wrapped) from CurrentPrice and
// TrailingYield; the calculator treats it as "no data" and carries on.
var ErrUnavailable = errors.New("market data unavailable")

// MarketData is the port to the external market-data provider. Calls may be
// slow and may fail per symbol; a failure never aborts the whole run.
type MarketData interface {
	// DividendHistory returns the known per-share payments for a symbol in
	// ascending date order. A symbol that pays no dividends yields an empty
	// history and no error.
	DividendHistory(symbol string) ([]Payment, error)
	// CurrentPrice returns the latest known price for a symbol.
	CurrentPrice(symbol string) (float64, error)
	// TrailingYield returns the trailing twelve-month yield rate (e.g. 0.0423
	// for 4.23%).
	TrailingYield(symbol string) (float64, error)
}

// DividendDetail is one projected payment applied to a position.
type DividendDetail struct {
	Symbol         string
	Date           time.Time
	AmountPerShare decimal.Decimal
	Shares         decimal.Decimal
	Total          decimal.Decimal // AmountPerShare × Shares
}

// Result holds everything computed by one calculation run.
type Result struct {
	MonthlyDividends map[string]decimal.Decimal // month label → projected total
	Details          []DividendDetail
	AnnualDividends  map[string]decimal.Decimal // symbol → total over the projection window
	Metrics          map[string]StockMetric
	TotalValue       float64
	TotalCost        float64
}

// TotalAnnualDividends sums the per-symbol annual dividend totals.
func (r *Result) TotalAnnualDividends() decimal.Decimal {
	total := decimal.Decimal{}
	for _, annual := range r.AnnualDividends {
		total = total.Add(annual)
	}
	return total
}

// Yield returns projected annual dividends as a percentage of portfolio value.
func (r *Result) Yield() Percent {
	return RatioPercent(r.TotalAnnualDividends().InexactFloat64(), r.TotalValue)
}

// Months returns the month labels with projected dividends, chronologically.
func (r *Result) Months() []string {
	labels := make([]string, 0, len(r.MonthlyDividends))
	for label := range r.MonthlyDividends {
		labels = append(labels, label)
	}
	SortMonthLabels(labels)
	return labels
}

// SortedDetails returns the projected payments ordered by date, then symbol.
func (r *Result) SortedDetails() []DividendDetail {
	details := slices.Clone(r.Details)
	slices.SortFunc(details, func(a, b DividendDetail) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return strings.Compare(a.Symbol, b.Symbol)
	})
	return details
}

// Calculator runs dividend projections and valuation for a whole portfolio,
// one symbol at a time, in load order. Per-symbol provider failures are
// logged and the symbol is excluded or degraded; they never abort the run.
type Calculator struct {
	Market      MarketData
	MonthsAhead int              // projection horizon, DefaultProjectionMonths when 0
	Metrics     bool             // also compute portfolio value metrics
	Now         func() time.Time // calculation clock, time.Now when nil
}

// NewCalculator returns a calculator with the default horizon and metrics on.
func NewCalculator(m MarketData) *Calculator {
	return &Calculator{Market: m, MonthsAhead: DefaultProjectionMonths, Metrics: true}
}

func (c *Calculator) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Calculator) monthsAhead() int {
	if c.MonthsAhead > 0 {
		return c.MonthsAhead
	}
	return DefaultProjectionMonths
}

// Run computes dividend projections and, when enabled, valuation metrics.
func (c *Calculator) Run(p *Portfolio) *Result {
	r := &Result{
		MonthlyDividends: make(map[string]decimal.Decimal),
		AnnualDividends:  make(map[string]decimal.Decimal),
		Metrics:          make(map[string]StockMetric),
	}
	c.projectDividends(p, r)
	if c.Metrics {
		c.computeMetrics(p, r)
	}
	return r
}

func (c *Calculator) projectDividends(p *Portfolio, r *Result) {
	now := c.now()
	for _, pos := range p.Positions() {
		history, err := c.Market.DividendHistory(pos.Symbol)
		if err != nil {
			log.Printf("no dividend history for %s: %v", pos.Symbol, err)
		}
		if len(history) == 0 {
			// Degraded path: no payment history, try the trailing yield.
			c.estimateFromYield(pos, r)
			continue
		}
		log.Printf("%s: %d historical payments", pos.Symbol, len(history))

		future := EstimateFutureDividends(history, c.monthsAhead(), now)
		log.Printf("%s: %d projected payments", pos.Symbol, len(future))

		annual := decimal.Decimal{}
		for _, fp := range future {
			total := fp.Amount.Mul(pos.Shares)
			annual = annual.Add(total)

			label := MonthLabel(fp.Date)
			r.MonthlyDividends[label] = r.MonthlyDividends[label].Add(total)
			r.Details = append(r.Details, DividendDetail{
				Symbol:         pos.Symbol,
				Date:           fp.Date,
				AmountPerShare: fp.Amount,
				Shares:         pos.Shares,
				Total:          total,
			})
		}
		r.AnnualDividends[pos.Symbol] = annual
	}
}

// estimateFromYield approximates the annual dividend of an instrument without
// payment history (typically a money-market fund) as
// price × trailing yield × shares. It produces no monthly distribution. When
// the yield or price is unavailable the symbol contributes nothing.
func (c *Calculator) estimateFromYield(pos Position, r *Result) {
	rate, err := c.Market.TrailingYield(pos.Symbol)
	if err != nil || rate <= 0 {
		if err != nil {
			log.Printf("no trailing yield for %s: %v", pos.Symbol, err)
		}
		return
	}
	price, err := c.Market.CurrentPrice(pos.Symbol)
	if err != nil || price <= 0 {
		if err != nil {
			log.Printf("no price for %s: %v", pos.Symbol, err)
		}
		return
	}
	annual := decimal.NewFromFloat(price * rate).Mul(pos.Shares)
	r.AnnualDividends[pos.Symbol] = annual
	log.Printf("%s: annual dividend %s estimated from trailing yield %.4f", pos.Symbol, annual.StringFixed(2), rate)
}

func (c *Calculator) computeMetrics(p *Portfolio, r *Result) {
	for _, pos := range p.Positions() {
		price, err := c.Market.CurrentPrice(pos.Symbol)
		if err != nil || price <= 0 {
			if err != nil {
				log.Printf("no price for %s: %v", pos.Symbol, err)
			}
			continue
		}

		shares := pos.Shares.InexactFloat64()
		value := shares * price
		r.TotalValue += value

		m := StockMetric{
			Shares:       shares,
			CurrentPrice: &price,
			CurrentValue: value,
		}
		if !pos.CostBasis.IsZero() {
			cost := pos.CostBasis.Mul(pos.Shares).InexactFloat64()
			r.TotalCost += cost
			gain := value - cost
			gainPct := float64(RatioPercent(gain, cost))
			m.CostBasis = &cost
			m.GainLoss = &gain
			m.GainLossPct = &gainPct
		}
		r.Metrics[pos.Symbol] = m
	}
}
