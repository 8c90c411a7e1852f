package utils

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBigInt converts a raw on-chain amount into a human-readable string,
// considering the given number of decimals.
// Example: amount=1234500000000000000, decimals=18 => "1.2345"
func FormatBigInt(amount *big.Int, decimals uint8) (string, error) {
	if amount == nil {
		return "0", nil
	}

	if decimals == 0 {
		return amount.String(), nil
	}

	// The decimal representation is exact, so trimming never loses digits.
	formattedStr := ToDecimal(amount, decimals).StringFixed(int32(decimals))

	if strings.Contains(formattedStr, ".") {
		formattedStr = strings.TrimRight(formattedStr, "0")
		formattedStr = strings.TrimRight(formattedStr, ".")
	}

	if strings.HasPrefix(formattedStr, ".") {
		formattedStr = "0" + formattedStr
	}
	if formattedStr == "" || formattedStr == "-" {
		if amount.Sign() == 0 {
			return "0", nil
		}
		return "", fmt.Errorf("formatting resulted in empty string for non-zero value %s", amount.String())
	}

	return formattedStr, nil
}

// ToDecimal scales a raw on-chain amount down by 10^decimals.
func ToDecimal(amount *big.Int, decimals uint8) decimal.Decimal {
	if amount == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(amount, -int32(decimals))
}

// FromDecimal scales a token amount up to its raw on-chain integer, truncating
// anything below the smallest unit.
func FromDecimal(amount decimal.Decimal, decimals uint8) *big.Int {
	return amount.Shift(int32(decimals)).BigInt()
}
