package entity

import "time"

// DashboardSnapshot is the state rendered by the presentation layer.
type DashboardSnapshot struct {
	Account    AccountState       `json:"account"`
	Network    *NetworkDefinition `json:"network,omitempty"`
	Tokens     []Token            `json:"tokens"`
	Stats      PortfolioSummary   `json:"stats"`
	Loading    bool               `json:"loading"`
	Error      string             `json:"error,omitempty"`
	Generation uint64             `json:"generation"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}
