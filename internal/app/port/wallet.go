package port

import "portfolio_tracker/internal/domain/entity"

// AccountProvider exposes the connected wallet account and its changes.
type AccountProvider interface {
	Current() entity.AccountState
	// Subscribe returns a channel delivering account states and a function that
	// stops the subscription. Intermediate states may be skipped, the latest never is.
	Subscribe() (<-chan entity.AccountState, func())
}

// WalletSession is an AccountProvider that can also be driven, standing in for the
// wallet modal of the dashboard.
type WalletSession interface {
	AccountProvider
	Connect(address string, chainID uint64) error
	SwitchNetwork(chainID uint64) error
	Disconnect()
}
