package entity

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// NativeBalance is a wallet's balance of the network's native token.
type NativeBalance struct {
	WalletAddress string   `json:"-"`
	ChainID       uint64   `json:"chainId"`
	Symbol        string   `json:"symbol"`
	Decimals      uint8    `json:"decimals"`
	Amount        *big.Int `json:"-"`
	Formatted     string   `json:"formatted"`
}

// Decimal converts the raw amount into token units.
func (b NativeBalance) Decimal() decimal.Decimal {
	if b.Amount == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(b.Amount, -int32(b.Decimals))
}
