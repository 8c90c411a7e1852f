package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestUSD(t *testing.T) {
	tests := map[string]string{
		"11401":       "$11,401.00",
		"0":           "$0.00",
		"999.995":     "$1,000.00",
		"1234567.891": "$1,234,567.89",
		"12.5":        "$12.50",
		"-20":         "-$20.00",
		"100":         "$100.00",
	}
	for in, want := range tests {
		assert.Equal(t, want, USD(d(in)), in)
	}
}

func TestPercent(t *testing.T) {
	tests := map[string]string{
		"1.408":  "+1.41%",
		"-0.8":   "-0.80%",
		"0":      "+0.00%",
		"2.5":    "+2.50%",
		"-0.001": "-0.00%",
	}
	for in, want := range tests {
		assert.Equal(t, want, Percent(d(in)), in)
	}
}

func TestBalance(t *testing.T) {
	tests := map[string]string{
		"2.45678":        "2.45678",
		"5000":           "5,000.00",
		"3250.50":        "3,250.50",
		"125.789":        "125.789",
		"0.123456789":    "0.123457",
		"1234567.100000": "1,234,567.10",
		"0":              "0.00",
	}
	for in, want := range tests {
		assert.Equal(t, want, Balance(d(in)), in)
	}
}

func TestShortAddress(t *testing.T) {
	assert.Equal(t, "0x5aAe...eAed", ShortAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"))
	assert.Equal(t, "0x1234", ShortAddress("0x1234"))
	assert.Equal(t, "", ShortAddress(""))
}

func TestTrend(t *testing.T) {
	assert.Equal(t, TrendUp, Trend(d("0")))
	assert.Equal(t, TrendUp, Trend(d("3.8")))
	assert.Equal(t, TrendDown, Trend(d("-1.2")))
}
