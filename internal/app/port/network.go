package port

import (
	"context"

	"portfolio_tracker/internal/domain/entity"
)

// BalanceClient reads native balances on a single network.
type BalanceClient interface {
	// GetNativeBalance fetches the native currency balance (e.g., ETH, MATIC) for a wallet.
	GetNativeBalance(ctx context.Context, walletAddress string) (*entity.NativeBalance, error)

	// Definition returns the network definition associated with this client.
	Definition() entity.NetworkDefinition
}

// BalanceClientProvider hands out one BalanceClient per network.
type BalanceClientProvider interface {
	GetClient(networkDefinition entity.NetworkDefinition) (BalanceClient, error)
}

// NetworkDefinitionProvider defines the interface for providing network definitions.
type NetworkDefinitionProvider interface {
	// GetAllNetworkDefinitions returns the supported networks ordered by display priority.
	GetAllNetworkDefinitions() []entity.NetworkDefinition

	// GetNetworkDefinitionByChainID returns the definition and true when the chain is supported.
	GetNetworkDefinitionByChainID(chainID uint64) (entity.NetworkDefinition, bool)

	// NativeSymbol returns the symbol of the chain's native token, "ETH" for unknown chains.
	NativeSymbol(chainID uint64) string

	// DisplayName returns a human readable network name, "Chain <id>" for unknown chains.
	DisplayName(chainID uint64) string
}
