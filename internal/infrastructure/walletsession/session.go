package walletsession

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"portfolio_tracker/internal/app/port"
	"portfolio_tracker/internal/domain/entity"
)

var (
	ErrInvalidAddress     = errors.New("invalid wallet address")
	ErrUnsupportedNetwork = errors.New("unsupported network")
	ErrNotConnected       = errors.New("wallet not connected")
)

// Session is the in-memory wallet connection shared by the dashboard and the API.
type Session struct {
	networks port.NetworkDefinitionProvider
	logger   port.Logger

	mu          sync.RWMutex
	state       entity.AccountState
	subscribers map[int]chan entity.AccountState
	nextID      int
}

// NewSession creates a disconnected session.
func NewSession(networks port.NetworkDefinitionProvider, log port.Logger) *Session {
	return &Session{
		networks:    networks,
		logger:      log,
		subscribers: make(map[int]chan entity.AccountState),
	}
}

// Current returns the latest account state.
func (s *Session) Current() entity.AccountState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe returns a channel that always holds the most recent state not yet read
// and a function that detaches the subscriber. The current state is delivered first.
func (s *Session) Subscribe() (<-chan entity.AccountState, func()) {
	ch := make(chan entity.AccountState, 1)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = ch
	ch <- s.state
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			s.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Connect validates the address and chain and marks the wallet as connected.
func (s *Session) Connect(address string, chainID uint64) error {
	address = strings.TrimSpace(address)
	if !common.IsHexAddress(address) {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	if _, ok := s.networks.GetNetworkDefinitionByChainID(chainID); !ok {
		return fmt.Errorf("%w: chain id %d", ErrUnsupportedNetwork, chainID)
	}

	checksummed := common.HexToAddress(address).Hex()

	s.mu.Lock()
	s.state = entity.AccountState{Address: checksummed, ChainID: chainID, Connected: true}
	s.publishLocked()
	s.mu.Unlock()

	s.logger.Info("Wallet connected", "address", checksummed, "chain_id", chainID)
	return nil
}

// SwitchNetwork changes the chain of a connected wallet.
func (s *Session) SwitchNetwork(chainID uint64) error {
	if _, ok := s.networks.GetNetworkDefinitionByChainID(chainID); !ok {
		return fmt.Errorf("%w: chain id %d", ErrUnsupportedNetwork, chainID)
	}

	s.mu.Lock()
	if !s.state.Connected {
		s.mu.Unlock()
		return ErrNotConnected
	}
	s.state.ChainID = chainID
	s.publishLocked()
	s.mu.Unlock()

	s.logger.Info("Wallet switched network", "chain_id", chainID)
	return nil
}

// Disconnect clears the connection. Disconnecting twice is a no-op.
func (s *Session) Disconnect() {
	s.mu.Lock()
	if !s.state.Connected && s.state.Address == "" {
		s.mu.Unlock()
		return
	}
	s.state = entity.AccountState{}
	s.publishLocked()
	s.mu.Unlock()

	s.logger.Info("Wallet disconnected")
}

// publishLocked replaces whatever a subscriber has not consumed yet with the new state.
func (s *Session) publishLocked() {
	for _, ch := range s.subscribers {
		select {
		case <-ch:
		default:
		}
		ch <- s.state
	}
}

var _ port.WalletSession = (*Session)(nil)
