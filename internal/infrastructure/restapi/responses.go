package restapi

import (
	"github.com/shopspring/decimal"

	"portfolio_tracker/internal/domain/entity"
	api "portfolio_tracker/internal/entity"
	"portfolio_tracker/internal/pkg/format"
)

func newPortfolioDisplay(snap entity.DashboardSnapshot, networkName string) api.PortfolioDisplay {
	d := api.PortfolioDisplay{
		Address:    format.ShortAddress(snap.Account.Address),
		TotalValue: format.USD(snap.Stats.TotalValue),
		Change24h:  format.Percent(snap.Stats.Change24h),
		Trend:      format.Trend(snap.Stats.Change24h),
		TokenCount: snap.Stats.TokenCount,
		Tokens:     make([]api.TokenDisplay, 0, len(snap.Tokens)),
	}
	if snap.Account.Ready() {
		d.Network = networkName
	}
	for _, t := range snap.Tokens {
		change := t.Change24h.Decimal
		if !t.Change24h.Valid {
			change = decimal.Zero
		}
		price := t.Price.Decimal
		if !t.Price.Valid {
			price = decimal.Zero
		}
		d.Tokens = append(d.Tokens, api.TokenDisplay{
			Symbol:    t.Symbol,
			Name:      t.Name,
			Balance:   format.Balance(t.Balance),
			Price:     format.USD(price),
			Value:     format.USD(t.Value),
			Change24h: format.Percent(change),
			Trend:     format.Trend(change),
		})
	}
	return d
}

func statusMessage(snap entity.DashboardSnapshot, networkName string) string {
	switch {
	case !snap.Account.Ready():
		return "Connect your wallet to view your portfolio"
	case snap.Loading:
		return "Loading portfolio..."
	case snap.Error != "":
		return "Failed to load portfolio: " + snap.Error
	case len(snap.Tokens) == 0:
		return "No tokens found"
	default:
		return "Connected to " + networkName
	}
}
