// Package portfolio reduces token holdings into portfolio statistics.
package portfolio

import (
	"github.com/shopspring/decimal"

	"portfolio_tracker/internal/domain/entity"
)

// Summarize computes total value, value-weighted 24h change and token count.
//
// Holdings with an unknown price contribute zero value; an unknown change counts as
// zero. When the total value is not positive the weighted change is defined as zero.
// Summarize has no side effects and its result does not depend on input order.
func Summarize(holdings []entity.TokenHolding) entity.PortfolioSummary {
	total := decimal.Zero
	weighted := decimal.Zero

	for _, h := range holdings {
		value := h.Value()
		total = total.Add(value)
		weighted = weighted.Add(value.Mul(h.ChangeOrZero()))
	}

	change := decimal.Zero
	if total.IsPositive() {
		change = weighted.Div(total)
	}

	return entity.PortfolioSummary{
		TotalValue: total,
		Change24h:  change,
		TokenCount: len(holdings),
	}
}

// SummarizeTokens summarizes priced display records.
func SummarizeTokens(tokens []entity.Token) entity.PortfolioSummary {
	holdings := make([]entity.TokenHolding, len(tokens))
	for i, t := range tokens {
		holdings[i] = t.Holding()
	}
	return Summarize(holdings)
}
