package port

import (
	"context"
	"time"

	"portfolio_tracker/internal/domain/entity"
)

// HoldingsProvider returns the token balances held by an address on a network.
type HoldingsProvider interface {
	FetchHoldings(ctx context.Context, address string, chainID uint64) ([]entity.Token, error)
}

// PriceSource supplies the current price table.
type PriceSource interface {
	FetchQuotes(ctx context.Context) (map[string]entity.PriceQuote, error)
}

// TokenPriceService caches quotes from a PriceSource.
type TokenPriceService interface {
	LoadAndCacheTokenPrices(ctx context.Context) error
	// GetQuote returns the cached quote for an upper- or lower-case symbol.
	GetQuote(symbol string) (entity.PriceQuote, bool)
	StartAutoRefresh(ctx context.Context, interval time.Duration)
}
