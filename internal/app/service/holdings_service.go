package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"portfolio_tracker/internal/app/port"
	"portfolio_tracker/internal/domain/entity"
)

var ErrAccountNotReady = errors.New("account is not connected")

// HoldingsServiceImpl implements port.PortfolioLoader.
type HoldingsServiceImpl struct {
	holdings        port.HoldingsProvider
	networkProvider port.NetworkDefinitionProvider
	clientProvider  port.BalanceClientProvider
	tokenPriceSvc   port.TokenPriceService
	logger          port.Logger
}

// NewHoldingsService creates a new instance of HoldingsServiceImpl.
func NewHoldingsService(
	hp port.HoldingsProvider,
	np port.NetworkDefinitionProvider,
	cp port.BalanceClientProvider,
	tps port.TokenPriceService,
	l port.Logger,
) *HoldingsServiceImpl {
	return &HoldingsServiceImpl{
		holdings:        hp,
		networkProvider: np,
		clientProvider:  cp,
		tokenPriceSvc:   tps,
		logger:          l,
	}
}

// Load fetches the token list and the native balance concurrently, prices every row
// and puts the native token first.
func (s *HoldingsServiceImpl) Load(ctx context.Context, account entity.AccountState) ([]entity.Token, error) {
	if !account.Ready() {
		return nil, ErrAccountNotReady
	}

	netDef := s.networkDefinition(account.ChainID)

	var (
		tokens []entity.Token
		native *entity.NativeBalance
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		t, err := s.holdings.FetchHoldings(egCtx, account.Address, account.ChainID)
		if err != nil {
			return fmt.Errorf("failed to fetch token balances: %w", err)
		}
		tokens = t
		return nil
	})
	eg.Go(func() error {
		nb, err := s.fetchNative(egCtx, netDef, account.Address)
		if err != nil {
			// The dashboard still renders without the native row.
			s.logger.Warn("Native balance unavailable", "network", netDef.Name, "address", account.Address, "error", err)
			return nil
		}
		native = nb
		return nil
	})
	if err := eg.Wait(); err != nil {
		s.logger.Error("Failed to load holdings", "address", account.Address, "chain_id", account.ChainID, "error", err)
		return nil, err
	}

	result := make([]entity.Token, 0, len(tokens)+1)
	if native != nil {
		result = append(result, s.price(entity.Token{
			Symbol:          native.Symbol,
			Name:            netDef.NativeName,
			Balance:         native.Decimal(),
			Decimals:        native.Decimals,
			ContractAddress: entity.ZeroAddress,
		}))
	}
	for _, t := range tokens {
		result = append(result, s.price(t))
	}

	s.logger.Debug("Holdings loaded", "address", account.Address, "chain_id", account.ChainID, "count", len(result))
	return result, nil
}

func (s *HoldingsServiceImpl) fetchNative(ctx context.Context, netDef entity.NetworkDefinition, address string) (*entity.NativeBalance, error) {
	client, err := s.clientProvider.GetClient(netDef)
	if err != nil {
		return nil, err
	}
	return client.GetNativeBalance(ctx, address)
}

// networkDefinition falls back to an ETH-denominated definition for chains outside the table.
func (s *HoldingsServiceImpl) networkDefinition(chainID uint64) entity.NetworkDefinition {
	if def, ok := s.networkProvider.GetNetworkDefinitionByChainID(chainID); ok {
		return def
	}
	symbol := s.networkProvider.NativeSymbol(chainID)
	name := symbol
	if symbol == "ETH" {
		name = "Ethereum"
	}
	return entity.NetworkDefinition{
		ChainID:      chainID,
		Name:         s.networkProvider.DisplayName(chainID),
		NativeSymbol: symbol,
		NativeName:   name,
		Decimals:     18,
	}
}

// price attaches the cached quote. Unknown symbols keep price and change absent.
func (s *HoldingsServiceImpl) price(t entity.Token) entity.Token {
	if q, ok := s.tokenPriceSvc.GetQuote(t.Symbol); ok {
		t.Price = decimal.NewNullDecimal(q.Price)
		t.Change24h = decimal.NewNullDecimal(q.Change24h)
	} else {
		t.Price = decimal.NullDecimal{}
		t.Change24h = decimal.NullDecimal{}
	}
	t.Value = t.Holding().Value()
	return t
}

var _ port.PortfolioLoader = (*HoldingsServiceImpl)(nil)
