package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"portfolio_tracker/internal/app/port"
	"portfolio_tracker/internal/domain/entity"
	"portfolio_tracker/internal/domain/portfolio"
	"portfolio_tracker/internal/pkg/metrics"
)

var ErrNotConnected = errors.New("wallet not connected")

const defaultFetchTimeout = 10 * time.Second

// DashboardServiceImpl implements port.DashboardService. Every fetch is tagged with a
// generation; only the fetch matching the current generation may write its result.
type DashboardServiceImpl struct {
	loader       port.PortfolioLoader
	accounts     port.AccountProvider
	networks     port.NetworkDefinitionProvider
	logger       port.Logger
	fetchTimeout time.Duration
	now          func() time.Time

	baseCtx    context.Context
	baseCancel context.CancelFunc
	wg         sync.WaitGroup

	mu          sync.Mutex
	state       entity.DashboardSnapshot
	generation  uint64
	handled     bool
	cancelFetch context.CancelFunc
	closed      bool
}

// NewDashboardService creates a dashboard with an empty, disconnected state.
func NewDashboardService(
	loader port.PortfolioLoader,
	accounts port.AccountProvider,
	networks port.NetworkDefinitionProvider,
	l port.Logger,
	fetchTimeout time.Duration,
) *DashboardServiceImpl {
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &DashboardServiceImpl{
		loader:       loader,
		accounts:     accounts,
		networks:     networks,
		logger:       l,
		fetchTimeout: fetchTimeout,
		now:          time.Now,
		baseCtx:      ctx,
		baseCancel:   cancel,
	}
	s.state = entity.DashboardSnapshot{
		Tokens:    []entity.Token{},
		Stats:     entity.EmptySummary(),
		UpdatedAt: s.now(),
	}
	return s
}

// HandleAccountChange implements port.DashboardService. Repeating the state that was
// handled last is a no-op; use Refresh to reload.
func (s *DashboardServiceImpl) HandleAccountChange(account entity.AccountState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if s.handled && account == s.state.Account {
		return
	}
	s.handled = true

	if account.Ready() {
		s.startFetchLocked(account)
		return
	}
	s.resetLocked(account)
}

// Refresh implements port.DashboardService.
func (s *DashboardServiceImpl) Refresh(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	account := s.accounts.Current()
	if !account.Ready() {
		return ErrNotConnected
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return context.Canceled
	}
	s.handled = true
	s.startFetchLocked(account)
	return nil
}

// Snapshot implements port.DashboardService.
func (s *DashboardServiceImpl) Snapshot() entity.DashboardSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.state
	snap.Tokens = make([]entity.Token, len(s.state.Tokens))
	copy(snap.Tokens, s.state.Tokens)
	if s.state.Network != nil {
		def := *s.state.Network
		snap.Network = &def
	}
	return snap
}

// Run applies account provider events until ctx is done.
func (s *DashboardServiceImpl) Run(ctx context.Context) {
	updates, unsubscribe := s.accounts.Subscribe()
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case account, ok := <-updates:
			if !ok {
				return
			}
			s.HandleAccountChange(account)
		}
	}
}

// Close cancels in-flight work and waits for it to finish.
func (s *DashboardServiceImpl) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.generation++
	s.baseCancel()
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *DashboardServiceImpl) startFetchLocked(account entity.AccountState) {
	if s.cancelFetch != nil {
		s.cancelFetch()
	}
	s.generation++
	gen := s.generation

	if account != s.state.Account {
		s.state.Tokens = []entity.Token{}
		s.state.Stats = entity.EmptySummary()
	}
	s.state.Account = account
	s.state.Network = s.networkFor(account.ChainID)
	s.state.Loading = true
	s.state.Error = ""
	s.state.Generation = gen

	ctx, cancel := context.WithTimeout(s.baseCtx, s.fetchTimeout)
	s.cancelFetch = cancel

	s.logger.Debug("Starting portfolio fetch", "generation", gen, "address", account.Address, "chain_id", account.ChainID)

	s.wg.Add(1)
	go s.fetch(ctx, cancel, gen, account)
}

func (s *DashboardServiceImpl) fetch(ctx context.Context, cancel context.CancelFunc, gen uint64, account entity.AccountState) {
	defer s.wg.Done()
	defer cancel()

	start := s.now()
	tokens, err := s.loader.Load(ctx, account)
	metrics.PortfolioFetchDuration.Observe(s.now().Sub(start).Seconds())

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		metrics.PortfolioFetches.WithLabelValues(metrics.OutcomeStale).Inc()
		s.logger.Debug("Discarding stale portfolio result", "generation", gen, "current", s.generation)
		return
	}
	s.cancelFetch = nil
	s.state.Loading = false
	s.state.UpdatedAt = s.now()

	if err != nil {
		metrics.PortfolioFetches.WithLabelValues(metrics.OutcomeFailure).Inc()
		s.logger.Error("Error loading tokens", "address", account.Address, "chain_id", account.ChainID, "error", err)
		s.state.Tokens = []entity.Token{}
		s.state.Stats = entity.EmptySummary()
		s.state.Error = err.Error()
		s.observeStatsLocked()
		return
	}

	metrics.PortfolioFetches.WithLabelValues(metrics.OutcomeSuccess).Inc()
	s.state.Tokens = tokens
	s.state.Stats = portfolio.SummarizeTokens(tokens)
	s.state.Error = ""
	s.observeStatsLocked()
	s.logger.Info("Portfolio loaded", "address", account.Address, "chain_id", account.ChainID,
		"tokens", s.state.Stats.TokenCount, "total_value", s.state.Stats.TotalValue.StringFixed(2))
}

func (s *DashboardServiceImpl) resetLocked(account entity.AccountState) {
	if s.cancelFetch != nil {
		s.cancelFetch()
		s.cancelFetch = nil
	}
	s.generation++
	s.state = entity.DashboardSnapshot{
		Account:    account,
		Tokens:     []entity.Token{},
		Stats:      entity.EmptySummary(),
		Generation: s.generation,
		UpdatedAt:  s.now(),
	}
	s.observeStatsLocked()
	s.logger.Debug("Dashboard cleared", "connected", account.Connected)
}

func (s *DashboardServiceImpl) networkFor(chainID uint64) *entity.NetworkDefinition {
	def, ok := s.networks.GetNetworkDefinitionByChainID(chainID)
	if !ok {
		return nil
	}
	return &def
}

func (s *DashboardServiceImpl) observeStatsLocked() {
	total, _ := s.state.Stats.TotalValue.Float64()
	metrics.PortfolioTotalValue.Set(total)
	metrics.PortfolioTokenCount.Set(float64(s.state.Stats.TokenCount))
}

var _ port.DashboardService = (*DashboardServiceImpl)(nil)
