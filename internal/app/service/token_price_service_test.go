package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio_tracker/internal/domain/entity"
	"portfolio_tracker/internal/pkg/logger"
)

func TestTokenPriceService_LoadAndGet(t *testing.T) {
	src := &fakePriceSource{quotes: map[string]entity.PriceQuote{
		"ETH": {Symbol: "ETH", Price: dec("3200.50"), Change24h: dec("2.5")},
	}}
	svc := NewTokenPriceService(src, logger.NewNop(), time.Minute)

	_, ok := svc.GetQuote("ETH")
	assert.False(t, ok, "nothing cached before load")

	require.NoError(t, svc.LoadAndCacheTokenPrices(context.Background()))

	q, ok := svc.GetQuote("eth")
	require.True(t, ok)
	assert.True(t, q.Price.Equal(dec("3200.50")))

	_, ok = svc.GetQuote("DOGE")
	assert.False(t, ok)
}

func TestTokenPriceService_LoadError(t *testing.T) {
	svc := NewTokenPriceService(&fakePriceSource{err: errBoom}, logger.NewNop(), 0)

	err := svc.LoadAndCacheTokenPrices(context.Background())
	assert.ErrorIs(t, err, errBoom)
}

func TestTokenPriceService_ExpiresAfterTTL(t *testing.T) {
	src := &fakePriceSource{quotes: map[string]entity.PriceQuote{"USDC": {Symbol: "USDC", Price: dec("1")}}}
	svc := NewTokenPriceService(src, logger.NewNop(), 20*time.Millisecond)
	require.NoError(t, svc.LoadAndCacheTokenPrices(context.Background()))

	require.Eventually(t, func() bool {
		_, ok := svc.GetQuote("USDC")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestTokenPriceService_AutoRefresh(t *testing.T) {
	src := &fakePriceSource{quotes: map[string]entity.PriceQuote{"DAI": {Symbol: "DAI", Price: dec("1.001")}}}
	svc := NewTokenPriceService(src, logger.NewNop(), time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	svc.StartAutoRefresh(ctx, 5*time.Millisecond)

	require.Eventually(t, func() bool { return src.Calls() >= 2 }, time.Second, 5*time.Millisecond)
	_, ok := svc.GetQuote("DAI")
	assert.True(t, ok)

	cancel()
	time.Sleep(20 * time.Millisecond)
	calls := src.Calls()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, src.Calls())
}
