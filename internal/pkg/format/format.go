// Package format renders portfolio numbers the way the dashboard displays them.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	TrendUp   = "up"
	TrendDown = "down"
)

// USD formats a dollar amount with two decimals and thousands separators: $11,401.00.
func USD(d decimal.Decimal) string {
	s := group(d.StringFixed(2))
	if strings.HasPrefix(s, "-") {
		return "-$" + s[1:]
	}
	return "$" + s
}

// Percent formats a signed percentage with two decimals: +1.41%, -0.80%.
// Zero is shown with a plus sign.
func Percent(d decimal.Decimal) string {
	s := d.StringFixed(2)
	switch {
	case d.Sign() >= 0:
		s = "+" + s
	case !strings.HasPrefix(s, "-"):
		s = "-" + s
	}
	return s + "%"
}

// Balance formats a token amount with between 2 and 6 fraction digits.
func Balance(d decimal.Decimal) string {
	s := d.StringFixed(6)
	dot := strings.IndexByte(s, '.')
	end := len(s)
	for end > dot+3 && s[end-1] == '0' {
		end--
	}
	return group(s[:end])
}

// ShortAddress abbreviates a wallet address to 0x1234...abcd.
func ShortAddress(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + "..." + addr[len(addr)-4:]
}

// Trend is "up" for non-negative changes and "down" otherwise.
func Trend(d decimal.Decimal) string {
	if d.Sign() >= 0 {
		return TrendUp
	}
	return TrendDown
}

// group inserts thousands separators into the integer part of a plain decimal string.
func group(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	b.Grow(len(s) + len(intPart)/3 + 1)
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString(frac)
	return b.String()
}
