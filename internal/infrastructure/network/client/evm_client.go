package client

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"

	"portfolio_tracker/internal/app/port"
	"portfolio_tracker/internal/domain/entity"
	"portfolio_tracker/internal/pkg/utils"
)

var ErrInvalidWalletAddress = errors.New("invalid wallet address")

// EVMClient implements port.BalanceClient for one EVM-compatible network without
// talking to a node: balances are derived from keccak256(address || chainID), so a
// wallet always sees the same amount on the same chain.
type EVMClient struct {
	netDef     entity.NetworkDefinition
	maxBalance *big.Int // exclusive upper bound in wei
}

// NewEVMClient creates a simulated client for the given network definition.
func NewEVMClient(netDef entity.NetworkDefinition, maxBalanceEther int64) (*EVMClient, error) {
	if maxBalanceEther <= 0 {
		return nil, fmt.Errorf("max native balance must be positive, got %d", maxBalanceEther)
	}
	maxWei := utils.FromDecimal(decimal.NewFromInt(maxBalanceEther), netDef.Decimals)
	return &EVMClient{netDef: netDef, maxBalance: maxWei}, nil
}

// GetNativeBalance returns the simulated native currency balance of a wallet.
func (c *EVMClient) GetNativeBalance(ctx context.Context, walletAddress string) (*entity.NativeBalance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !common.IsHexAddress(walletAddress) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWalletAddress, walletAddress)
	}
	addr := common.HexToAddress(walletAddress)

	var chain [8]byte
	binary.BigEndian.PutUint64(chain[:], c.netDef.ChainID)
	seed := crypto.Keccak256(addr.Bytes(), chain[:])

	amount := new(big.Int).SetBytes(seed)
	amount.Mod(amount, c.maxBalance)

	formatted, err := utils.FormatBigInt(amount, c.netDef.Decimals)
	if err != nil {
		return nil, fmt.Errorf("failed to format native balance on %s: %w", c.netDef.Name, err)
	}

	return &entity.NativeBalance{
		WalletAddress: addr.Hex(),
		ChainID:       c.netDef.ChainID,
		Symbol:        c.netDef.NativeSymbol,
		Decimals:      c.netDef.Decimals,
		Amount:        amount,
		Formatted:     formatted,
	}, nil
}

// Definition returns the network definition associated with this client.
func (c *EVMClient) Definition() entity.NetworkDefinition {
	return c.netDef
}

var _ port.BalanceClient = (*EVMClient)(nil)
