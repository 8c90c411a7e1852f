package pricetable

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"portfolio_tracker/internal/app/port"
	"portfolio_tracker/internal/config"
	"portfolio_tracker/internal/domain/entity"
)

type quote struct {
	price  string
	change string
}

// builtinPrices is the mock USD price list, change in percent over 24h.
var builtinPrices = map[string]quote{ //nolint:gochecknoglobals
	"ETH":   {"3200.50", "2.5"},
	"USDC":  {"1.00", "0.01"},
	"USDT":  {"0.999", "-0.02"},
	"DAI":   {"1.001", "0.05"},
	"WETH":  {"3200.50", "2.5"},
	"LINK":  {"14.75", "-1.2"},
	"UNI":   {"6.85", "3.8"},
	"AAVE":  {"98.30", "1.5"},
	"MATIC": {"0.85", "-0.8"},
	"ARB":   {"1.15", "4.2"},
}

// Table is a static port.PriceSource.
type Table struct {
	quotes map[string]entity.PriceQuote
}

// New builds the table from the built-in list plus overrides. Override symbols are
// upper-cased and replace built-in entries.
func New(overrides []config.PriceOverride, now func() time.Time) (*Table, error) {
	if now == nil {
		now = time.Now
	}
	ts := now()

	t := &Table{quotes: make(map[string]entity.PriceQuote, len(builtinPrices)+len(overrides))}
	for symbol, q := range builtinPrices {
		t.quotes[symbol] = entity.PriceQuote{
			Symbol:    symbol,
			Price:     decimal.RequireFromString(q.price),
			Change24h: decimal.RequireFromString(q.change),
			UpdatedAt: ts,
		}
	}

	for _, o := range overrides {
		symbol := strings.ToUpper(strings.TrimSpace(o.Symbol))
		price, err := decimal.NewFromString(o.Price)
		if err != nil {
			return nil, fmt.Errorf("invalid price for %s: %w", symbol, err)
		}
		change := decimal.Zero
		if o.Change24h != "" {
			change, err = decimal.NewFromString(o.Change24h)
			if err != nil {
				return nil, fmt.Errorf("invalid change24h for %s: %w", symbol, err)
			}
		}
		t.quotes[symbol] = entity.PriceQuote{Symbol: symbol, Price: price, Change24h: change, UpdatedAt: ts}
	}

	return t, nil
}

// FetchQuotes returns a copy of every quote in the table.
func (t *Table) FetchQuotes(ctx context.Context) (map[string]entity.PriceQuote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(map[string]entity.PriceQuote, len(t.quotes))
	for k, v := range t.quotes {
		out[k] = v
	}
	return out, nil
}

var _ port.PriceSource = (*Table)(nil)
