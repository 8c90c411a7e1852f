// Package entity holds the JSON bodies exchanged over the HTTP API, shared by the
// server handlers and the CLI client.
package entity

import (
	"github.com/shopspring/decimal"

	domain "portfolio_tracker/internal/domain/entity"
)

// APIPortfolioResponse is the body of GET /api/v1/portfolio.
type APIPortfolioResponse struct {
	Data          domain.DashboardSnapshot `json:"data"`
	Display       PortfolioDisplay         `json:"display"`
	StatusMessage string                   `json:"status_message"`
}

// PortfolioDisplay carries the dashboard numbers already formatted for humans.
type PortfolioDisplay struct {
	Address    string         `json:"address,omitempty"`
	Network    string         `json:"network,omitempty"`
	TotalValue string         `json:"totalValue"`
	Change24h  string         `json:"change24h"`
	Trend      string         `json:"trend"`
	TokenCount int            `json:"tokenCount"`
	Tokens     []TokenDisplay `json:"tokens"`
}

// TokenDisplay is one formatted row of the token list.
type TokenDisplay struct {
	Symbol    string `json:"symbol"`
	Name      string `json:"name"`
	Balance   string `json:"balance"`
	Price     string `json:"price"`
	Value     string `json:"value"`
	Change24h string `json:"change24h"`
	Trend     string `json:"trend"`
}

// RefreshResponse is returned by POST /api/v1/portfolio/refresh.
type RefreshResponse struct {
	Generation uint64 `json:"generation"`
	Loading    bool   `json:"loading"`
}

// SummaryRequest is the body of POST /api/v1/portfolio/summary.
type SummaryRequest struct {
	Holdings []HoldingInput `json:"holdings"`
}

// HoldingInput is a holding as posted by a client. Price and change may be null.
type HoldingInput struct {
	Symbol    string              `json:"symbol"`
	Balance   decimal.Decimal     `json:"balance"`
	UnitPrice decimal.NullDecimal `json:"unitPrice"`
	Change24h decimal.NullDecimal `json:"change24h"`
}

// SummaryResponse is the aggregate of the posted holdings.
type SummaryResponse struct {
	TotalValue   decimal.Decimal `json:"totalValue"`
	Change24h    decimal.Decimal `json:"change24h"`
	TokenCount   int             `json:"tokenCount"`
	DisplayValue string          `json:"displayValue"`
	DisplayDelta string          `json:"displayChange24h"`
	Trend        string          `json:"trend"`
}

// ConnectRequest is the body of POST /api/v1/account/connect.
type ConnectRequest struct {
	Address string `json:"address" binding:"required"`
	ChainID uint64 `json:"chainId" binding:"required"`
}

// SwitchNetworkRequest is the body of POST /api/v1/account/network.
type SwitchNetworkRequest struct {
	ChainID uint64 `json:"chainId" binding:"required"`
}

// AccountResponse describes the wallet session.
type AccountResponse struct {
	Account      domain.AccountState `json:"account"`
	ShortAddress string              `json:"shortAddress,omitempty"`
	Network      string              `json:"network,omitempty"`
}

// NetworksResponse lists the supported networks.
type NetworksResponse struct {
	Networks []domain.NetworkDefinition `json:"networks"`
}

// AppInfoResponse is the body of GET /api/v1/app.
type AppInfoResponse struct {
	Name                string `json:"name"`
	Description         string `json:"description"`
	URL                 string `json:"url,omitempty"`
	Icon                string `json:"icon,omitempty"`
	ProjectIDConfigured bool   `json:"projectIdConfigured"`
}

// ErrorResponse is returned with every 4xx/5xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}
