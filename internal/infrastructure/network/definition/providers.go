package networkdefinition

import (
	"fmt"
	"strings"

	"portfolio_tracker/internal/app/port"
	"portfolio_tracker/internal/domain/entity"
)

const defaultNativeSymbol = "ETH"

// NetworkDefinitionProvider provides network definitions.
type NetworkDefinitionProvider struct {
	logger  port.Logger
	ordered []entity.NetworkDefinition
	byChain map[uint64]entity.NetworkDefinition
	byName  map[string]entity.NetworkDefinition
}

// Predefined network definitions
var ( //nolint:gochecknoglobals // Global for definitions
	Ethereum = entity.NetworkDefinition{
		ChainID:          1,
		Name:             "Ethereum",
		Identifier:       "ethereum",
		NativeSymbol:     "ETH",
		NativeName:       "Ethereum",
		Decimals:         18,
		BlockExplorerURL: "https://etherscan.io",
	}
	Polygon = entity.NetworkDefinition{
		ChainID:          137,
		Name:             "Polygon",
		Identifier:       "polygon",
		NativeSymbol:     "MATIC",
		NativeName:       "Polygon",
		Decimals:         18,
		BlockExplorerURL: "https://polygonscan.com",
	}
	Arbitrum = entity.NetworkDefinition{
		ChainID:          42161,
		Name:             "Arbitrum One",
		Identifier:       "arbitrum",
		NativeSymbol:     "ETH",
		NativeName:       "Ethereum",
		Decimals:         18,
		BlockExplorerURL: "https://arbiscan.io",
	}
	Base = entity.NetworkDefinition{
		ChainID:          8453,
		Name:             "Base",
		Identifier:       "base",
		NativeSymbol:     "ETH",
		NativeName:       "Ethereum",
		Decimals:         18,
		BlockExplorerURL: "https://basescan.org",
	}
	Optimism = entity.NetworkDefinition{
		ChainID:          10,
		Name:             "OP Mainnet",
		Identifier:       "optimism",
		NativeSymbol:     "ETH",
		NativeName:       "Ethereum",
		Decimals:         18,
		BlockExplorerURL: "https://optimistic.etherscan.io",
	}
)

// allKnownDefinitions keeps the order networks are offered in the wallet modal.
var allKnownDefinitions = []entity.NetworkDefinition{ //nolint:gochecknoglobals
	Ethereum,
	Polygon,
	Arbitrum,
	Base,
	Optimism,
}

// NewNetworkDefinitionProvider creates a new NetworkDefinitionProvider over the built-in table.
func NewNetworkDefinitionProvider(log port.Logger) *NetworkDefinitionProvider {
	p := &NetworkDefinitionProvider{
		logger:  log,
		ordered: make([]entity.NetworkDefinition, 0, len(allKnownDefinitions)),
		byChain: make(map[uint64]entity.NetworkDefinition, len(allKnownDefinitions)),
		byName:  make(map[string]entity.NetworkDefinition, len(allKnownDefinitions)),
	}

	for _, def := range allKnownDefinitions {
		if _, dup := p.byChain[def.ChainID]; dup {
			p.logger.Warn(fmt.Sprintf("Duplicate network definition for ChainID %d. Skipping.", def.ChainID))
			continue
		}
		p.ordered = append(p.ordered, def)
		p.byChain[def.ChainID] = def
		p.byName[def.Identifier] = def
	}

	p.logger.Info(fmt.Sprintf("NetworkDefinitionProvider initialized. Supported networks: %d", len(p.ordered)))
	for _, netDef := range p.ordered {
		p.logger.Debug(fmt.Sprintf("  - Network: %s (ID: %s, ChainID: %d, native: %s)", netDef.Name, netDef.Identifier, netDef.ChainID, netDef.NativeSymbol))
	}

	return p
}

// GetAllNetworkDefinitions returns the supported network definitions.
func (p *NetworkDefinitionProvider) GetAllNetworkDefinitions() []entity.NetworkDefinition {
	if p == nil {
		return []entity.NetworkDefinition{}
	}
	defsCopy := make([]entity.NetworkDefinition, len(p.ordered))
	copy(defsCopy, p.ordered)
	return defsCopy
}

// GetNetworkDefinitionByName returns a specific network definition by its identifier.
func (p *NetworkDefinitionProvider) GetNetworkDefinitionByName(identifier string) (entity.NetworkDefinition, bool) {
	if p == nil {
		return entity.NetworkDefinition{}, false
	}
	def, ok := p.byName[strings.ToLower(strings.TrimSpace(identifier))]
	return def, ok
}

// GetNetworkDefinitionByChainID returns a specific network definition by its chain ID.
func (p *NetworkDefinitionProvider) GetNetworkDefinitionByChainID(chainID uint64) (entity.NetworkDefinition, bool) {
	if p == nil {
		return entity.NetworkDefinition{}, false
	}
	def, ok := p.byChain[chainID]
	return def, ok
}

func (p *NetworkDefinitionProvider) NativeSymbol(chainID uint64) string {
	if def, ok := p.GetNetworkDefinitionByChainID(chainID); ok {
		return def.NativeSymbol
	}
	return defaultNativeSymbol
}

func (p *NetworkDefinitionProvider) DisplayName(chainID uint64) string {
	if def, ok := p.GetNetworkDefinitionByChainID(chainID); ok {
		return def.Name
	}
	return fmt.Sprintf("Chain %d", chainID)
}

var _ port.NetworkDefinitionProvider = (*NetworkDefinitionProvider)(nil)
