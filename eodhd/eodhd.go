// Package eodhd implements the market-data provider port against the
// EODHD.com REST API: dividend history, real-time quotes and fundamentals.
package eodhd

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"slices"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/divtrack"
	"github.com/etnz/divtrack/date"
	gocache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

const (
	defaultBaseURL  = "https://eodhd.com"
	defaultExchange = "US"

	// dividendHistoryYears bounds how far back payment history is fetched.
	dividendHistoryYears = 2

	// priceCacheExpiry is the in-process memoization window for quotes and
	// yields; it keeps a comparison over several portfolios from re-fetching
	// the same symbol within one run.
	priceCacheExpiry = 15 * time.Minute
)

// Client talks to the EODHD API. It satisfies divtrack.MarketData.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	memo    *gocache.Cache
}

var _ divtrack.MarketData = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another endpoint (tests use an httptest
// server).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithCache wires a response cache into the client's HTTP transport. A nil
// cache leaves the transport uncached.
func WithCache(cache Cache) Option {
	return func(c *Client) {
		if cache != nil {
			c.http.Transport = &cachingTransport{base: http.DefaultTransport, cache: cache}
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New returns a client for the given API token.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    new(http.Client),
		memo:    gocache.New(priceCacheExpiry, 2*priceCacheExpiry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// errNotFound reports a 404 from the API: the symbol is unknown there.
var errNotFound = errors.New("not found")

// DividendHistory returns the per-share payments of the trailing two years,
// ascending. A symbol unknown to the provider, or one that pays no
// dividends, yields an empty history and no error.
func (c *Client) DividendHistory(symbol string) ([]divtrack.Payment, error) {
	from := time.Now().AddDate(-dividendHistoryYears, 0, 0)
	addr := fmt.Sprintf("%s/api/div/%s.%s?fmt=json&from=%s&api_token=%s",
		c.baseURL, symbol, defaultExchange, from.Format(date.DateFormat), c.apiKey)

	type jdividend struct {
		Date  string          `json:"date"`
		Value decimal.Decimal `json:"value"`
	}
	content := make([]jdividend, 0)
	if err := c.jwget(addr, &content); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot fetch dividends for %s: %w", symbol, err)
	}

	payments := make([]divtrack.Payment, 0, len(content))
	for _, jd := range content {
		on, err := time.Parse(date.DateFormat, jd.Date)
		if err != nil {
			log.Printf("skipping dividend with invalid date %q for %s", jd.Date, symbol)
			continue
		}
		if on.Before(from) {
			continue
		}
		payments = append(payments, divtrack.Payment{Date: on, Amount: jd.Value})
	}
	slices.SortFunc(payments, func(a, b divtrack.Payment) int { return a.Date.Compare(b.Date) })
	return payments, nil
}

// CurrentPrice returns the latest quote for a symbol. Quotes are memoized in
// process for a short while.
func (c *Client) CurrentPrice(symbol string) (float64, error) {
	if v, ok := c.memo.Get("price:" + symbol); ok {
		return v.(float64), nil
	}

	addr := fmt.Sprintf("%s/api/real-time/%s.%s?fmt=json&api_token=%s",
		c.baseURL, symbol, defaultExchange, c.apiKey)
	var jobj map[string]any
	if err := c.jwget(addr, &jobj); err != nil {
		if errors.Is(err, errNotFound) {
			return 0, fmt.Errorf("%w: no quote for %s", divtrack.ErrUnavailable, symbol)
		}
		return 0, fmt.Errorf("cannot fetch quote for %s: %w", symbol, err)
	}

	// "close" is the string "NA" when the provider has no quote.
	price, ok := jobj["close"].(float64)
	if !ok || price <= 0 {
		return 0, fmt.Errorf("%w: no quote for %s", divtrack.ErrUnavailable, symbol)
	}
	c.memo.Set("price:"+symbol, price, gocache.DefaultExpiration)
	return price, nil
}

// TrailingYield returns the trailing twelve-month dividend yield rate from
// the symbol's fundamentals.
func (c *Client) TrailingYield(symbol string) (float64, error) {
	if v, ok := c.memo.Get("yield:" + symbol); ok {
		return v.(float64), nil
	}

	addr := fmt.Sprintf("%s/api/fundamentals/%s.%s?fmt=json&filter=Highlights&api_token=%s",
		c.baseURL, symbol, defaultExchange, c.apiKey)
	var jobj any
	if err := c.jwget(addr, &jobj); err != nil {
		if errors.Is(err, errNotFound) {
			return 0, fmt.Errorf("%w: no fundamentals for %s", divtrack.ErrUnavailable, symbol)
		}
		return 0, fmt.Errorf("cannot fetch fundamentals for %s: %w", symbol, err)
	}

	path := "$.DividendYield"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("%w: no yield for %s", divtrack.ErrUnavailable, symbol)
	}
	// jsonpath sometimes returns a list of one answer instead of the answer:
	// keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	rate, ok := jval.(float64)
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("%w: no yield for %s", divtrack.ErrUnavailable, symbol)
	}
	c.memo.Set("yield:"+symbol, rate, gocache.DefaultExpiration)
	return rate, nil
}
