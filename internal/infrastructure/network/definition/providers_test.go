package networkdefinition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio_tracker/internal/pkg/logger"
)

func TestNetworkDefinitionProvider_Lookup(t *testing.T) {
	p := NewNetworkDefinitionProvider(logger.NewNop())

	all := p.GetAllNetworkDefinitions()
	require.Len(t, all, 5)
	assert.Equal(t, uint64(1), all[0].ChainID)

	def, ok := p.GetNetworkDefinitionByChainID(137)
	require.True(t, ok)
	assert.Equal(t, "polygon", def.Identifier)
	assert.Equal(t, "MATIC", def.NativeSymbol)

	def, ok = p.GetNetworkDefinitionByName(" Arbitrum ")
	require.True(t, ok)
	assert.Equal(t, uint64(42161), def.ChainID)

	_, ok = p.GetNetworkDefinitionByChainID(56)
	assert.False(t, ok)
}

func TestNetworkDefinitionProvider_NativeSymbol(t *testing.T) {
	p := NewNetworkDefinitionProvider(logger.NewNop())

	tests := map[uint64]string{
		1:     "ETH",
		137:   "MATIC",
		42161: "ETH",
		8453:  "ETH",
		10:    "ETH",
		56:    "ETH",
		0:     "ETH",
	}
	for chainID, want := range tests {
		assert.Equal(t, want, p.NativeSymbol(chainID), "chain %d", chainID)
	}
}

func TestNetworkDefinitionProvider_DisplayName(t *testing.T) {
	p := NewNetworkDefinitionProvider(logger.NewNop())

	assert.Equal(t, "Ethereum", p.DisplayName(1))
	assert.Equal(t, "Polygon", p.DisplayName(137))
	assert.Equal(t, "Chain 56", p.DisplayName(56))
}

func TestNetworkDefinitionProvider_CopyIsolation(t *testing.T) {
	p := NewNetworkDefinitionProvider(logger.NewNop())

	all := p.GetAllNetworkDefinitions()
	all[0].Name = "mutated"

	assert.Equal(t, "Ethereum", p.DisplayName(1))
}
