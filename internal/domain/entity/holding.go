package entity

import "github.com/shopspring/decimal"

// TokenHolding is a single token balance paired with its unit price.
// UnitPrice and Change24h may be absent (Valid == false); both then count as zero.
type TokenHolding struct {
	Symbol    string              `json:"symbol"`
	Balance   decimal.Decimal     `json:"balance"`
	UnitPrice decimal.NullDecimal `json:"unitPrice"`
	Change24h decimal.NullDecimal `json:"change24h"`
}

// Value returns Balance * UnitPrice, with an unknown price treated as zero.
func (h TokenHolding) Value() decimal.Decimal {
	if !h.UnitPrice.Valid {
		return decimal.Zero
	}
	return h.Balance.Mul(h.UnitPrice.Decimal)
}

// ChangeOrZero returns the 24h percent change, or zero when it is unknown.
func (h TokenHolding) ChangeOrZero() decimal.Decimal {
	if !h.Change24h.Valid {
		return decimal.Zero
	}
	return h.Change24h.Decimal
}

// PortfolioSummary is the aggregate snapshot derived from a list of holdings.
type PortfolioSummary struct {
	TotalValue decimal.Decimal `json:"totalValue"`
	Change24h  decimal.Decimal `json:"change24h"`
	TokenCount int             `json:"tokenCount"`
}

// EmptySummary is the summary shown while no wallet is connected.
func EmptySummary() PortfolioSummary {
	return PortfolioSummary{TotalValue: decimal.Zero, Change24h: decimal.Zero}
}
