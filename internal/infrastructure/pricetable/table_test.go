package pricetable

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio_tracker/internal/config"
)

func TestTable_Builtin(t *testing.T) {
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	table, err := New(nil, func() time.Time { return fixed })
	require.NoError(t, err)

	quotes, err := table.FetchQuotes(context.Background())
	require.NoError(t, err)
	require.Len(t, quotes, 10)

	eth := quotes["ETH"]
	assert.True(t, eth.Price.Equal(decimal.RequireFromString("3200.50")))
	assert.True(t, eth.Change24h.Equal(decimal.RequireFromString("2.5")))
	assert.Equal(t, fixed, eth.UpdatedAt)

	assert.True(t, quotes["USDT"].Change24h.Equal(decimal.RequireFromString("-0.02")))
	assert.True(t, quotes["MATIC"].Price.Equal(decimal.RequireFromString("0.85")))
}

func TestTable_Overrides(t *testing.T) {
	table, err := New([]config.PriceOverride{
		{Symbol: "eth", Price: "4000", Change24h: "-3.5"},
		{Symbol: "OP", Price: "2.10"},
	}, nil)
	require.NoError(t, err)

	quotes, err := table.FetchQuotes(context.Background())
	require.NoError(t, err)

	assert.True(t, quotes["ETH"].Price.Equal(decimal.NewFromInt(4000)))
	assert.True(t, quotes["ETH"].Change24h.Equal(decimal.RequireFromString("-3.5")))
	assert.True(t, quotes["OP"].Change24h.IsZero())
	assert.Len(t, quotes, 11)
}

func TestTable_InvalidOverride(t *testing.T) {
	_, err := New([]config.PriceOverride{{Symbol: "BAD", Price: "abc"}}, nil)
	assert.Error(t, err)

	_, err = New([]config.PriceOverride{{Symbol: "BAD", Price: "1", Change24h: "x"}}, nil)
	assert.Error(t, err)
}

func TestTable_ReturnsCopy(t *testing.T) {
	table, err := New(nil, nil)
	require.NoError(t, err)

	quotes, _ := table.FetchQuotes(context.Background())
	delete(quotes, "ETH")

	again, _ := table.FetchQuotes(context.Background())
	assert.Contains(t, again, "ETH")
}

func TestTable_CancelledContext(t *testing.T) {
	table, err := New(nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = table.FetchQuotes(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
