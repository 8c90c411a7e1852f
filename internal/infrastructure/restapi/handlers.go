package restapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"portfolio_tracker/internal/app/port"
	"portfolio_tracker/internal/app/service"
	"portfolio_tracker/internal/config"
	"portfolio_tracker/internal/domain/entity"
	"portfolio_tracker/internal/domain/portfolio"
	api "portfolio_tracker/internal/entity"
	"portfolio_tracker/internal/infrastructure/walletsession"
	"portfolio_tracker/internal/pkg/format"
)

// PortfolioHandler serves the dashboard, account and network endpoints.
type PortfolioHandler struct {
	dashboard      port.DashboardService
	wallet         port.WalletSession
	networks       port.NetworkDefinitionProvider
	app            config.AppConfig
	projectID      string
	refreshLimiter *rate.Limiter
	logger         port.Logger
}

// NewPortfolioHandler creates a new PortfolioHandler. A nil limiter disables refresh
// rate limiting.
func NewPortfolioHandler(
	dashboard port.DashboardService,
	wallet port.WalletSession,
	networks port.NetworkDefinitionProvider,
	cfg *config.Config,
	refreshLimiter *rate.Limiter,
	l port.Logger,
) *PortfolioHandler {
	return &PortfolioHandler{
		dashboard:      dashboard,
		wallet:         wallet,
		networks:       networks,
		app:            cfg.App,
		projectID:      cfg.Wallet.ProjectID,
		refreshLimiter: refreshLimiter,
		logger:         l,
	}
}

// NewRefreshLimiter builds the limiter for POST /portfolio/refresh.
func NewRefreshLimiter(perMinute, burst int) *rate.Limiter {
	if perMinute <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), burst)
}

// GetPortfolioHandler returns the current dashboard snapshot.
func (h *PortfolioHandler) GetPortfolioHandler(c *gin.Context) {
	snap := h.dashboard.Snapshot()
	networkName := h.networks.DisplayName(snap.Account.ChainID)

	c.JSON(http.StatusOK, api.APIPortfolioResponse{
		Data:          snap,
		Display:       newPortfolioDisplay(snap, networkName),
		StatusMessage: statusMessage(snap, networkName),
	})
}

// RefreshPortfolioHandler starts a new fetch for the connected account.
func (h *PortfolioHandler) RefreshPortfolioHandler(c *gin.Context) {
	if h.refreshLimiter != nil && !h.refreshLimiter.Allow() {
		c.JSON(http.StatusTooManyRequests, api.ErrorResponse{Error: "refresh rate limit exceeded"})
		return
	}

	if err := h.dashboard.Refresh(c.Request.Context()); err != nil {
		if errors.Is(err, service.ErrNotConnected) {
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
			return
		}
		h.logger.Error("Refresh failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	snap := h.dashboard.Snapshot()
	c.JSON(http.StatusAccepted, api.RefreshResponse{Generation: snap.Generation, Loading: snap.Loading})
}

// SummarizeHandler aggregates posted holdings without touching the dashboard.
func (h *PortfolioHandler) SummarizeHandler(c *gin.Context) {
	var req api.SummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	holdings := make([]entity.TokenHolding, 0, len(req.Holdings))
	for i, in := range req.Holdings {
		if err := validateHolding(in); err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: fmt.Sprintf("holdings[%d]: %v", i, err)})
			return
		}
		holdings = append(holdings, entity.TokenHolding{
			Symbol:    strings.ToUpper(strings.TrimSpace(in.Symbol)),
			Balance:   in.Balance,
			UnitPrice: in.UnitPrice,
			Change24h: in.Change24h,
		})
	}

	sum := portfolio.Summarize(holdings)
	c.JSON(http.StatusOK, api.SummaryResponse{
		TotalValue:   sum.TotalValue,
		Change24h:    sum.Change24h,
		TokenCount:   sum.TokenCount,
		DisplayValue: format.USD(sum.TotalValue),
		DisplayDelta: format.Percent(sum.Change24h),
		Trend:        format.Trend(sum.Change24h),
	})
}

// GetAccountHandler returns the wallet session state.
func (h *PortfolioHandler) GetAccountHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.accountBody(h.wallet.Current()))
}

// ConnectHandler connects the wallet session.
func (h *PortfolioHandler) ConnectHandler(c *gin.Context) {
	var req api.ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	if err := h.wallet.Connect(req.Address, req.ChainID); err != nil {
		h.writeWalletError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.accountBody(h.wallet.Current()))
}

// SwitchNetworkHandler changes the chain of the connected wallet.
func (h *PortfolioHandler) SwitchNetworkHandler(c *gin.Context) {
	var req api.SwitchNetworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	if err := h.wallet.SwitchNetwork(req.ChainID); err != nil {
		h.writeWalletError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.accountBody(h.wallet.Current()))
}

// DisconnectHandler disconnects the wallet session.
func (h *PortfolioHandler) DisconnectHandler(c *gin.Context) {
	h.wallet.Disconnect()
	c.JSON(http.StatusOK, h.accountBody(h.wallet.Current()))
}

// ListNetworksHandler returns the supported networks.
func (h *PortfolioHandler) ListNetworksHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.NetworksResponse{Networks: h.networks.GetAllNetworkDefinitions()})
}

// AppInfoHandler returns the application metadata.
func (h *PortfolioHandler) AppInfoHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.AppInfoResponse{
		Name:                h.app.Name,
		Description:         h.app.Description,
		URL:                 h.app.URL,
		Icon:                h.app.Icon,
		ProjectIDConfigured: h.projectID != "",
	})
}

func (h *PortfolioHandler) accountBody(state entity.AccountState) api.AccountResponse {
	body := api.AccountResponse{Account: state}
	if state.Connected {
		body.ShortAddress = format.ShortAddress(state.Address)
		body.Network = h.networks.DisplayName(state.ChainID)
	}
	return body
}

func (h *PortfolioHandler) writeWalletError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, walletsession.ErrInvalidAddress), errors.Is(err, walletsession.ErrUnsupportedNetwork):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, walletsession.ErrNotConnected):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
	default:
		h.logger.Error("Wallet operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
	}
}

func validateHolding(in api.HoldingInput) error {
	if strings.TrimSpace(in.Symbol) == "" {
		return errors.New("symbol is required")
	}
	if in.Balance.IsNegative() {
		return errors.New("balance must not be negative")
	}
	if in.UnitPrice.Valid && in.UnitPrice.Decimal.IsNegative() {
		return errors.New("unitPrice must not be negative")
	}
	return nil
}
