package divtrack

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// This file handles loading a portfolio from a CSV file, in either the
// minimal schema (symbol,shares[,cost_basis]) or a brokerage export schema.

// Fatal portfolio loading errors. They terminate the run; match them with
// errors.Is to print remediation before exiting.
var (
	ErrPortfolioNotFound = errors.New("portfolio file not found")
	ErrPortfolioEmpty    = errors.New("no valid entries in portfolio file")
	ErrPortfolioFormat   = errors.New("unrecognized portfolio file format")
)

// Position is a single holding. CostBasis is the average cost per share and
// is zero when unknown.
type Position struct {
	Symbol    string
	Shares    decimal.Decimal
	CostBasis decimal.Decimal
}

// Portfolio is the set of positions loaded from one file. Symbols are unique;
// positions keep the order they were loaded in.
type Portfolio struct {
	positions []Position
	index     map[string]int
	path      string
}

// Positions returns the positions in load order.
func (p *Portfolio) Positions() []Position { return p.positions }

// Get returns the position for a symbol.
func (p *Portfolio) Get(symbol string) (Position, bool) {
	i, ok := p.index[symbol]
	if !ok {
		return Position{}, false
	}
	return p.positions[i], true
}

// Len returns the number of positions.
func (p *Portfolio) Len() int { return len(p.positions) }

// Path returns the file the portfolio was loaded from.
func (p *Portfolio) Path() string { return p.path }

// Name returns the portfolio name: the file name without its extension.
func (p *Portfolio) Name() string {
	base := filepath.Base(p.path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// add inserts a position, replacing any previous one with the same symbol.
func (p *Portfolio) add(pos Position) {
	if i, ok := p.index[pos.Symbol]; ok {
		p.positions[i] = pos
		return
	}
	if p.index == nil {
		p.index = make(map[string]int)
	}
	p.index[pos.Symbol] = len(p.positions)
	p.positions = append(p.positions, pos)
}

// tickerRe matches an exchange-qualified ticker embedded in a fund
// description, e.g. "Vanguard Total Stock Market ETF (NYSEARCA:VTI)".
var tickerRe = regexp.MustCompile(`\(([A-Z]+):\s*([A-Z][A-Z0-9.\-]*)\)`)

// ExtractTicker returns the bare uppercase ticker from a position cell. Cells
// holding a descriptive fund name with an exchange:ticker pair in parentheses
// are reduced to the ticker.
func ExtractTicker(s string) string {
	if m := tickerRe.FindStringSubmatch(s); m != nil {
		return m[2]
	}
	return strings.ToUpper(strings.TrimSpace(s))
}

// parseNumber parses a decimal cell that may carry thousands separators and
// currency decorations, like "$1,234.56".
func parseNumber(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" || s == "--" {
		return decimal.Decimal{}, fmt.Errorf("empty number")
	}
	return decimal.NewFromString(s)
}

// LoadPortfolio reads a portfolio from a CSV file.
func LoadPortfolio(path string) (*Portfolio, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", ErrPortfolioNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open portfolio file %q: %w", path, err)
	}
	defer f.Close()

	p, err := ReadPortfolio(f)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	p.path = path
	log.Printf("loaded %d positions from %s", p.Len(), path)
	return p, nil
}

// ReadPortfolio parses a portfolio from CSV content. The schema is detected
// from the header row:
//
//   - minimal: symbol, shares and an optional cost_basis column;
//   - brokerage export: a symbol or investment column (possibly a descriptive
//     fund name carrying the ticker), a quantity column, and optionally an
//     average cost basis column.
func ReadPortfolio(r io.Reader) (*Portfolio, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPortfolioFormat, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrPortfolioFormat)
	}

	header := records[0]
	col := func(names ...string) int {
		for i, h := range header {
			h = strings.ToLower(strings.TrimSpace(h))
			for _, name := range names {
				if h == name {
					return i
				}
			}
		}
		return -1
	}

	symCol := col("symbol", "ticker", "investment", "investment name", "description")
	sharesCol := col("shares")
	costCol := col("cost_basis", "cost basis", "average cost basis", "average cost")
	if sharesCol < 0 {
		// brokerage exports call the share count "quantity"
		sharesCol = col("quantity", "qty")
	}
	if symCol < 0 || sharesCol < 0 {
		return nil, fmt.Errorf("%w: want columns 'symbol' and 'shares' (or a brokerage export with 'quantity')", ErrPortfolioFormat)
	}

	p := &Portfolio{}
	for _, row := range records[1:] {
		if symCol >= len(row) || sharesCol >= len(row) {
			continue
		}
		symbol := ExtractTicker(row[symCol])
		if symbol == "" {
			continue
		}

		shares, err := parseNumber(row[sharesCol])
		if err != nil {
			log.Printf("invalid shares value for %s, skipping", symbol)
			continue
		}

		var costBasis decimal.Decimal
		if costCol >= 0 && costCol < len(row) && strings.TrimSpace(row[costCol]) != "" {
			costBasis, err = parseNumber(row[costCol])
			if err != nil {
				log.Printf("invalid cost basis for %s", symbol)
				costBasis = decimal.Decimal{}
			}
		}

		p.add(Position{Symbol: symbol, Shares: shares, CostBasis: costBasis})
	}

	if p.Len() == 0 {
		return nil, ErrPortfolioEmpty
	}
	return p, nil
}
