package port

import (
	"context"

	"portfolio_tracker/internal/domain/entity"
)

// PortfolioLoader loads the priced token list for a connected account.
type PortfolioLoader interface {
	Load(ctx context.Context, account entity.AccountState) ([]entity.Token, error)
}

// DashboardService owns the state rendered by the presentation layer.
type DashboardService interface {
	// HandleAccountChange starts a fetch for a ready account or clears the dashboard.
	HandleAccountChange(state entity.AccountState)
	// Refresh re-fetches holdings for the current account.
	Refresh(ctx context.Context) error
	// Snapshot returns a copy of the current dashboard state.
	Snapshot() entity.DashboardSnapshot
	// Run applies account changes until ctx is done.
	Run(ctx context.Context)
	Close()
}
