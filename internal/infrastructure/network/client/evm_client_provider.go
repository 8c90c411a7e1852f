package client

import (
	"fmt"
	"sync"

	"portfolio_tracker/internal/app/port"
	"portfolio_tracker/internal/domain/entity"
)

// evmClientProvider implements the port.BalanceClientProvider interface.
type evmClientProvider struct {
	clients         map[uint64]port.BalanceClient
	mu              sync.Mutex
	logger          port.Logger
	maxBalanceEther int64
}

// NewEVMClientProvider creates a new EVMClientProvider.
func NewEVMClientProvider(maxBalanceEther int64, log port.Logger) port.BalanceClientProvider {
	return &evmClientProvider{
		clients:         make(map[uint64]port.BalanceClient),
		logger:          log,
		maxBalanceEther: maxBalanceEther,
	}
}

// GetClient retrieves a balance client for the given network definition.
// Clients are cached per chain id.
func (p *evmClientProvider) GetClient(netDef entity.NetworkDefinition) (port.BalanceClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if client, exists := p.clients[netDef.ChainID]; exists {
		p.logger.Debug("Returning cached EVM client", "network", netDef.Name)
		return client, nil
	}

	p.logger.Info("Creating new EVM client", "network", netDef.Name, "chain_id", netDef.ChainID)
	newClient, err := NewEVMClient(netDef, p.maxBalanceEther)
	if err != nil {
		p.logger.Error("Failed to create EVM client", "network", netDef.Name, "error", err)
		return nil, fmt.Errorf("failed to create EVM client for %s: %w", netDef.Name, err)
	}

	p.clients[netDef.ChainID] = newClient
	return newClient, nil
}
