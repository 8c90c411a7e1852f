package entity

import "github.com/shopspring/decimal"

// ZeroAddress is used as the contract address of a network's native token.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// TokenInfo holds the static details of a token as listed in the fixture data.
type TokenInfo struct {
	Symbol          string `json:"symbol"`
	Name            string `json:"name"`
	Decimals        uint8  `json:"decimals"`
	ContractAddress string `json:"contractAddress"`
}

// Token is a priced token balance as shown in the dashboard token list.
type Token struct {
	Symbol          string              `json:"symbol"`
	Name            string              `json:"name"`
	Balance         decimal.Decimal     `json:"balance"`
	Decimals        uint8               `json:"decimals"`
	ContractAddress string              `json:"contractAddress"`
	Price           decimal.NullDecimal `json:"price"`
	Change24h       decimal.NullDecimal `json:"change24h"`
	Value           decimal.Decimal     `json:"value"`
	Logo            string              `json:"logo,omitempty"`
}

// IsNative reports whether the token is the network's base currency.
func (t Token) IsNative() bool {
	return t.ContractAddress == "" || t.ContractAddress == ZeroAddress
}

// Holding projects the display record onto the aggregation input.
func (t Token) Holding() TokenHolding {
	return TokenHolding{
		Symbol:    t.Symbol,
		Balance:   t.Balance,
		UnitPrice: t.Price,
		Change24h: t.Change24h,
	}
}
