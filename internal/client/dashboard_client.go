package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	domain "portfolio_tracker/internal/domain/entity"
	"portfolio_tracker/internal/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// APIError is a non-2xx answer from the portfolio API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("portfolio API returned %d: %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// DashboardClient defines the interface for talking to a running portfolio tracker.
type DashboardClient interface {
	GetPortfolio(ctx context.Context) (*entity.APIPortfolioResponse, error)
	Refresh(ctx context.Context) (*entity.RefreshResponse, error)
	Summarize(ctx context.Context, holdings []entity.HoldingInput) (*entity.SummaryResponse, error)
	Account(ctx context.Context) (*entity.AccountResponse, error)
	Connect(ctx context.Context, address string, chainID uint64) (*entity.AccountResponse, error)
	SwitchNetwork(ctx context.Context, chainID uint64) (*entity.AccountResponse, error)
	Disconnect(ctx context.Context) (*entity.AccountResponse, error)
	Networks(ctx context.Context) ([]domain.NetworkDefinition, error)
}

// dashboardClientImpl is the implementation of DashboardClient.
type dashboardClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
}

// NewDashboardClient creates a new instance of dashboardClientImpl.
func NewDashboardClient(baseURL string, timeout time.Duration, logger *zap.Logger) DashboardClient {
	return &dashboardClientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		logger:  logger.Named("DashboardClient"),
	}
}

func (c *dashboardClientImpl) GetPortfolio(ctx context.Context) (*entity.APIPortfolioResponse, error) {
	var out entity.APIPortfolioResponse
	if err := c.do(ctx, fasthttp.MethodGet, "/api/v1/portfolio", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *dashboardClientImpl) Refresh(ctx context.Context) (*entity.RefreshResponse, error) {
	var out entity.RefreshResponse
	if err := c.do(ctx, fasthttp.MethodPost, "/api/v1/portfolio/refresh", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *dashboardClientImpl) Summarize(ctx context.Context, holdings []entity.HoldingInput) (*entity.SummaryResponse, error) {
	var out entity.SummaryResponse
	if err := c.do(ctx, fasthttp.MethodPost, "/api/v1/portfolio/summary", entity.SummaryRequest{Holdings: holdings}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *dashboardClientImpl) Account(ctx context.Context) (*entity.AccountResponse, error) {
	return c.account(ctx, fasthttp.MethodGet, "/api/v1/account", nil)
}

func (c *dashboardClientImpl) Connect(ctx context.Context, address string, chainID uint64) (*entity.AccountResponse, error) {
	return c.account(ctx, fasthttp.MethodPost, "/api/v1/account/connect", entity.ConnectRequest{Address: address, ChainID: chainID})
}

func (c *dashboardClientImpl) SwitchNetwork(ctx context.Context, chainID uint64) (*entity.AccountResponse, error) {
	return c.account(ctx, fasthttp.MethodPost, "/api/v1/account/network", entity.SwitchNetworkRequest{ChainID: chainID})
}

func (c *dashboardClientImpl) Disconnect(ctx context.Context) (*entity.AccountResponse, error) {
	return c.account(ctx, fasthttp.MethodPost, "/api/v1/account/disconnect", nil)
}

func (c *dashboardClientImpl) Networks(ctx context.Context) ([]domain.NetworkDefinition, error) {
	var out entity.NetworksResponse
	if err := c.do(ctx, fasthttp.MethodGet, "/api/v1/networks", nil, &out); err != nil {
		return nil, err
	}
	return out.Networks, nil
}

func (c *dashboardClientImpl) account(ctx context.Context, method, path string, body any) (*entity.AccountResponse, error) {
	var out entity.AccountResponse
	if err := c.do(ctx, method, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *dashboardClientImpl) do(ctx context.Context, method, path string, body, out any) error {
	requestURL := c.baseURL + path

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(method)
	req.Header.SetContentTypeBytes([]byte("application/json"))

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request for %s: %w", requestURL, err)
		}
		req.SetBodyRaw(payload)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	c.logger.Debug("Requesting portfolio API", zap.String("method", method), zap.String("url", requestURL))

	if err := ctx.Err(); err != nil {
		return err
	}
	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			c.logger.Error("Failed to execute request to portfolio API", zap.String("url", requestURL), zap.Error(err))
			return fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			c.logger.Error("Failed to execute request to portfolio API (with default timeout)", zap.String("url", requestURL), zap.Error(err))
			return fmt.Errorf("failed to execute request to %s with default timeout: %w", requestURL, err)
		}
	}

	rawBody := resp.Body()
	status := resp.StatusCode()
	if status < 200 || status >= 300 {
		var apiErr entity.ErrorResponse
		msg := string(rawBody)
		if err := json.Unmarshal(rawBody, &apiErr); err == nil && apiErr.Error != "" {
			msg = apiErr.Error
		}
		c.logger.Warn("Portfolio API request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", status),
			zap.String("error", msg))
		return &APIError{StatusCode: status, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(rawBody, out); err != nil {
		c.logger.Error("Failed to unmarshal portfolio API response",
			zap.String("url", requestURL),
			zap.ByteString("responseBody", rawBody),
			zap.Error(err))
		return fmt.Errorf("failed to unmarshal response from %s: %w", requestURL, err)
	}
	return nil
}
