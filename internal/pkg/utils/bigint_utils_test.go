package utils

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBigInt(t *testing.T) {
	tests := []struct {
		name     string
		amount   *big.Int
		decimals uint8
		want     string
	}{
		{"nil", nil, 18, "0"},
		{"zero", big.NewInt(0), 18, "0"},
		{"whole ether", new(big.Int).Mul(big.NewInt(3), big.NewInt(1e18)), 18, "3"},
		{"fraction", big.NewInt(1234500000000000000), 18, "1.2345"},
		{"one wei", big.NewInt(1), 18, "0.000000000000000001"},
		{"usdc", big.NewInt(5000000000), 6, "5000"},
		{"no decimals", big.NewInt(42), 0, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatBigInt(tt.amount, tt.decimals)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToDecimalRoundTrip(t *testing.T) {
	raw, ok := new(big.Int).SetString("2456780000000000000", 10)
	require.True(t, ok)

	d := ToDecimal(raw, 18)
	assert.True(t, d.Equal(decimal.RequireFromString("2.45678")))
	assert.Equal(t, 0, FromDecimal(d, 18).Cmp(raw))
	assert.True(t, ToDecimal(nil, 18).IsZero())
}

func TestLoadJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"symbol":"ETH","decimals":18}`), 0o600))

	var out struct {
		Symbol   string `json:"symbol"`
		Decimals int    `json:"decimals"`
	}
	require.NoError(t, LoadJSONFile(path, &out))
	assert.Equal(t, "ETH", out.Symbol)
	assert.Equal(t, 18, out.Decimals)

	err := LoadJSONFile(filepath.Join(t.TempDir(), "missing.json"), &out)
	assert.Error(t, err)
}
