package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"portfolio_tracker/internal/app/port"
	"portfolio_tracker/internal/domain/entity"
)

const testAddress = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fakePriceSource struct {
	quotes map[string]entity.PriceQuote
	err    error
	calls  int
	mu     sync.Mutex
}

func (f *fakePriceSource) FetchQuotes(context.Context) (map[string]entity.PriceQuote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.quotes, nil
}

func (f *fakePriceSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakePrices map[string]entity.PriceQuote

func (f fakePrices) LoadAndCacheTokenPrices(context.Context) error { return nil }
func (f fakePrices) GetQuote(symbol string) (entity.PriceQuote, bool) {
	q, ok := f[symbol]
	return q, ok
}
func (f fakePrices) StartAutoRefresh(context.Context, time.Duration) {}

type fakeHoldings struct {
	tokens []entity.Token
	err    error
}

func (f *fakeHoldings) FetchHoldings(ctx context.Context, _ string, _ uint64) ([]entity.Token, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]entity.Token, len(f.tokens))
	copy(out, f.tokens)
	return out, nil
}

type fakeBalanceClient struct {
	def entity.NetworkDefinition
	bal *entity.NativeBalance
	err error
}

func (c *fakeBalanceClient) GetNativeBalance(context.Context, string) (*entity.NativeBalance, error) {
	return c.bal, c.err
}

func (c *fakeBalanceClient) Definition() entity.NetworkDefinition { return c.def }

type fakeClientProvider struct {
	client *fakeBalanceClient
	err    error
}

func (p *fakeClientProvider) GetClient(def entity.NetworkDefinition) (port.BalanceClient, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.client.def = def
	return p.client, nil
}

type fakeNetworks struct{}

var testNetworks = map[uint64]entity.NetworkDefinition{
	1:   {ChainID: 1, Name: "Ethereum", Identifier: "ethereum", NativeSymbol: "ETH", NativeName: "Ethereum", Decimals: 18},
	137: {ChainID: 137, Name: "Polygon", Identifier: "polygon", NativeSymbol: "MATIC", NativeName: "Polygon", Decimals: 18},
}

func (fakeNetworks) GetAllNetworkDefinitions() []entity.NetworkDefinition {
	return []entity.NetworkDefinition{testNetworks[1], testNetworks[137]}
}

func (fakeNetworks) GetNetworkDefinitionByChainID(id uint64) (entity.NetworkDefinition, bool) {
	d, ok := testNetworks[id]
	return d, ok
}

func (fakeNetworks) NativeSymbol(id uint64) string {
	if d, ok := testNetworks[id]; ok {
		return d.NativeSymbol
	}
	return "ETH"
}

func (fakeNetworks) DisplayName(id uint64) string {
	if d, ok := testNetworks[id]; ok {
		return d.Name
	}
	return "Chain"
}

// gatedLoader blocks each Load for a chain until that chain's gate is released.
// It ignores cancellation so tests can exercise late results.
type gatedLoader struct {
	mu      sync.Mutex
	gates   map[uint64]chan struct{}
	results map[uint64][]entity.Token
	errs    map[uint64]error
	calls   int
}

func newGatedLoader() *gatedLoader {
	return &gatedLoader{
		gates:   make(map[uint64]chan struct{}),
		results: make(map[uint64][]entity.Token),
		errs:    make(map[uint64]error),
	}
}

func (l *gatedLoader) gate(chainID uint64) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	g, ok := l.gates[chainID]
	if !ok {
		g = make(chan struct{})
		l.gates[chainID] = g
	}
	return g
}

func (l *gatedLoader) release(chainID uint64) { close(l.gate(chainID)) }

func (l *gatedLoader) Calls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

func (l *gatedLoader) Load(_ context.Context, account entity.AccountState) ([]entity.Token, error) {
	l.mu.Lock()
	l.calls++
	l.mu.Unlock()

	<-l.gate(account.ChainID)

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.errs[account.ChainID]; err != nil {
		return nil, err
	}
	return l.results[account.ChainID], nil
}

type fakeAccounts struct {
	mu    sync.Mutex
	state entity.AccountState
	ch    chan entity.AccountState
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{ch: make(chan entity.AccountState, 8)}
}

func (a *fakeAccounts) Current() entity.AccountState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *fakeAccounts) Subscribe() (<-chan entity.AccountState, func()) {
	return a.ch, func() {}
}

func (a *fakeAccounts) set(state entity.AccountState) {
	a.mu.Lock()
	a.state = state
	a.mu.Unlock()
	a.ch <- state
}

var errBoom = errors.New("boom")
