package tokenloader

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"

	"portfolio_tracker/internal/app/port"
	"portfolio_tracker/internal/domain/entity"
	"portfolio_tracker/internal/pkg/utils"
)

//go:embed tokens.json
var embeddedTokens []byte

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type fixtureToken struct {
	entity.TokenInfo
	Balance decimal.Decimal `json:"balance"`
}

// TokenFileLoader implements port.HoldingsProvider over fixture data, pretending to be
// a remote balance API by waiting before it answers.
type TokenFileLoader struct {
	fixtures []fixtureToken
	delay    time.Duration
	logger   port.Logger
}

// NewTokenLoader loads the fixture list. An empty tokensFile selects the embedded list.
func NewTokenLoader(tokensFile string, delay time.Duration, log port.Logger) (*TokenFileLoader, error) {
	var fixtures []fixtureToken
	source := "embedded"
	if tokensFile == "" {
		if err := json.Unmarshal(embeddedTokens, &fixtures); err != nil {
			return nil, fmt.Errorf("failed to decode embedded tokens: %w", err)
		}
	} else {
		if err := utils.LoadJSONFile(tokensFile, &fixtures); err != nil {
			return nil, err
		}
		source = tokensFile
	}

	for i, f := range fixtures {
		if strings.TrimSpace(f.Symbol) == "" {
			return nil, fmt.Errorf("token #%d in %s has no symbol", i, source)
		}
		if f.Balance.IsNegative() {
			return nil, fmt.Errorf("token %s in %s has a negative balance", f.Symbol, source)
		}
	}

	log.Info("Token fixtures loaded", "source", source, "count", len(fixtures))
	return &TokenFileLoader{fixtures: fixtures, delay: delay, logger: log}, nil
}

// FetchHoldings returns the fixture tokens, unpriced, after the simulated delay.
// The address and chain only show up in logs: every wallet holds the same tokens.
func (l *TokenFileLoader) FetchHoldings(ctx context.Context, address string, chainID uint64) ([]entity.Token, error) {
	l.logger.Debug("Fetching token balances", "address", address, "chain_id", chainID, "delay", l.delay)

	if l.delay > 0 {
		timer := time.NewTimer(l.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("token balance fetch aborted: %w", ctx.Err())
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("token balance fetch aborted: %w", err)
	}

	tokens := make([]entity.Token, 0, len(l.fixtures))
	for _, f := range l.fixtures {
		tokens = append(tokens, entity.Token{
			Symbol:          strings.ToUpper(f.Symbol),
			Name:            f.Name,
			Balance:         f.Balance,
			Decimals:        f.Decimals,
			ContractAddress: f.ContractAddress,
		})
	}
	return tokens, nil
}

var _ port.HoldingsProvider = (*TokenFileLoader)(nil)
