package portfolio

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio_tracker/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func known(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(dec(s))
}

func holding(symbol, balance, price, change string) entity.TokenHolding {
	h := entity.TokenHolding{Symbol: symbol, Balance: dec(balance)}
	if price != "" {
		h.UnitPrice = known(price)
	}
	if change != "" {
		h.Change24h = known(change)
	}
	return h
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)

	assert.True(t, s.TotalValue.IsZero())
	assert.True(t, s.Change24h.IsZero())
	assert.Equal(t, 0, s.TokenCount)

	s = Summarize([]entity.TokenHolding{})
	assert.True(t, s.TotalValue.IsZero())
	assert.Equal(t, 0, s.TokenCount)
}

func TestSummarize_WeightedChange(t *testing.T) {
	holdings := []entity.TokenHolding{
		holding("AAA", "1", "100", "10"),
		holding("BBB", "1", "300", "-2"),
	}

	s := Summarize(holdings)

	assert.True(t, s.TotalValue.Equal(dec("400")), "total: %s", s.TotalValue)
	assert.True(t, s.Change24h.Equal(dec("1")), "change: %s", s.Change24h)
	assert.Equal(t, 2, s.TokenCount)
}

func TestSummarize_EthAndUsdc(t *testing.T) {
	holdings := []entity.TokenHolding{
		holding("ETH", "2", "3200.50", "2.5"),
		holding("USDC", "5000", "1.00", "0.01"),
	}

	s := Summarize(holdings)

	assert.True(t, s.TotalValue.Equal(dec("11401.00")), "total: %s", s.TotalValue)
	assert.Equal(t, 2, s.TokenCount)
	// (6401*2.5 + 5000*0.01) / 11401
	assert.Equal(t, "1.408", s.Change24h.Round(3).String())
	f, _ := s.Change24h.Float64()
	assert.InDelta(t, 16052.5/11401.0, f, 1e-12)
}

func TestSummarize_TotalIsExactSumOfValues(t *testing.T) {
	holdings := []entity.TokenHolding{
		holding("ETH", "2.45678", "3200.50", "2.5"),
		holding("USDT", "3250.50", "0.999", "-0.02"),
		holding("DAI", "1500.25", "1.001", "0.05"),
		holding("LINK", "125.789", "14.75", "-1.2"),
	}

	want := decimal.Zero
	for _, h := range holdings {
		want = want.Add(h.Balance.Mul(h.UnitPrice.Decimal))
	}

	s := Summarize(holdings)
	assert.True(t, s.TotalValue.Equal(want), "got %s want %s", s.TotalValue, want)
}

func TestSummarize_NoBinaryFloatDrift(t *testing.T) {
	holdings := make([]entity.TokenHolding, 10)
	for i := range holdings {
		holdings[i] = holding("DIME", "1", "0.1", "")
	}

	s := Summarize(holdings)

	assert.Equal(t, "1", s.TotalValue.String())
}

func TestSummarize_PermutationInvariant(t *testing.T) {
	holdings := []entity.TokenHolding{
		holding("ETH", "2.45678", "3200.50", "2.5"),
		holding("USDC", "5000.00", "1.00", "0.01"),
		holding("USDT", "3250.50", "0.999", "-0.02"),
		holding("UNI", "450.50", "6.85", "3.8"),
		holding("XYZ", "10", "", ""),
	}
	reversed := make([]entity.TokenHolding, len(holdings))
	for i, h := range holdings {
		reversed[len(holdings)-1-i] = h
	}
	rotated := append(append([]entity.TokenHolding{}, holdings[2:]...), holdings[:2]...)

	base := Summarize(holdings)
	for _, perm := range [][]entity.TokenHolding{reversed, rotated} {
		s := Summarize(perm)
		assert.True(t, base.TotalValue.Equal(s.TotalValue))
		assert.True(t, base.Change24h.Equal(s.Change24h))
		assert.Equal(t, base.TokenCount, s.TokenCount)
	}
}

func TestSummarize_AllZeroPricesFallBackToZeroChange(t *testing.T) {
	holdings := []entity.TokenHolding{
		holding("AAA", "10", "0", "15"),
		holding("BBB", "5", "0", "-30"),
		holding("CCC", "7", "", "4"),
	}

	s := Summarize(holdings)

	assert.True(t, s.TotalValue.IsZero())
	assert.True(t, s.Change24h.IsZero())
	assert.Equal(t, 3, s.TokenCount)
}

func TestSummarize_CountsZeroValueHoldings(t *testing.T) {
	s := Summarize([]entity.TokenHolding{holding("AAA", "0", "0", "")})

	assert.Equal(t, 1, s.TokenCount)
	assert.True(t, s.TotalValue.IsZero())
	assert.True(t, s.Change24h.IsZero())
}

func TestSummarize_UnknownChangeCountsAsZero(t *testing.T) {
	holdings := []entity.TokenHolding{
		holding("AAA", "1", "100", "10"),
		holding("BBB", "1", "100", ""),
	}

	s := Summarize(holdings)

	assert.True(t, s.Change24h.Equal(dec("5")), "change: %s", s.Change24h)
}

func TestSummarize_NegativeInputsPropagate(t *testing.T) {
	s := Summarize([]entity.TokenHolding{holding("AAA", "-2", "10", "5")})

	assert.True(t, s.TotalValue.Equal(dec("-20")))
	assert.True(t, s.Change24h.IsZero())
	assert.Equal(t, 1, s.TokenCount)
}

func TestSummarizeTokens(t *testing.T) {
	tokens := []entity.Token{
		{Symbol: "ETH", Balance: dec("2"), Price: known("3200.50"), Change24h: known("2.5")},
		{Symbol: "USDC", Balance: dec("5000"), Price: known("1.00"), Change24h: known("0.01")},
		{Symbol: "NOPE", Balance: dec("42")},
	}

	s := SummarizeTokens(tokens)

	require.Equal(t, 3, s.TokenCount)
	assert.True(t, s.TotalValue.Equal(dec("11401")))
	assert.Equal(t, "1.408", s.Change24h.Round(3).String())
}

func TestSummarize_ConcurrentCallsAgree(t *testing.T) {
	holdings := []entity.TokenHolding{
		holding("ETH", "2", "3200.50", "2.5"),
		holding("USDC", "5000", "1.00", "0.01"),
	}
	want := Summarize(holdings)

	results := make(chan entity.PortfolioSummary, 16)
	for i := 0; i < cap(results); i++ {
		go func() { results <- Summarize(holdings) }()
	}
	for i := 0; i < cap(results); i++ {
		got := <-results
		assert.True(t, want.TotalValue.Equal(got.TotalValue))
		assert.True(t, want.Change24h.Equal(got.Change24h))
	}
}
