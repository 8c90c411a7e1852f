package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"portfolio_tracker/internal/app/port"
	"portfolio_tracker/internal/domain/entity"
)

const defaultPriceCacheTTL = time.Hour

// tokenPriceServiceImpl implements port.TokenPriceService
type tokenPriceServiceImpl struct {
	source      port.PriceSource
	logger      port.Logger
	pricesCache *cache.Cache // symbol -> entity.PriceQuote
}

// NewTokenPriceService creates a new instance of tokenPriceServiceImpl.
func NewTokenPriceService(source port.PriceSource, l port.Logger, ttl time.Duration) port.TokenPriceService {
	if ttl <= 0 {
		ttl = defaultPriceCacheTTL
	}
	return &tokenPriceServiceImpl{
		source:      source,
		logger:      l,
		pricesCache: cache.New(ttl, 2*ttl),
	}
}

// LoadAndCacheTokenPrices implements port.TokenPriceService.
func (s *tokenPriceServiceImpl) LoadAndCacheTokenPrices(ctx context.Context) error {
	quotes, err := s.source.FetchQuotes(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch token prices", "error", err)
		return fmt.Errorf("failed to fetch token prices: %w", err)
	}

	for symbol, q := range quotes {
		s.pricesCache.Set(strings.ToUpper(symbol), q, cache.DefaultExpiration)
	}
	s.logger.Info("Token prices cached", "count", len(quotes))
	return nil
}

// GetQuote implements port.TokenPriceService.
func (s *tokenPriceServiceImpl) GetQuote(symbol string) (entity.PriceQuote, bool) {
	v, ok := s.pricesCache.Get(strings.ToUpper(strings.TrimSpace(symbol)))
	if !ok {
		return entity.PriceQuote{}, false
	}
	q, ok := v.(entity.PriceQuote)
	return q, ok
}

// StartAutoRefresh reloads prices every interval until ctx is done. It does not block.
func (s *tokenPriceServiceImpl) StartAutoRefresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		s.logger.Warn("Price auto refresh disabled", "interval", interval)
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				s.logger.Info("Price auto refresh stopped")
				return
			case <-ticker.C:
				if err := s.LoadAndCacheTokenPrices(ctx); err != nil {
					s.logger.Warn("Price auto refresh failed, keeping cached prices", "error", err)
				}
			}
		}
	}()
}
