package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceQuote is the USD price of a token together with its 24h percent change.
type PriceQuote struct {
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	Change24h decimal.Decimal `json:"change24h"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
