package entity

// AccountState is what the wallet provider exposes about the current connection.
// An empty Address or a zero ChainID means the value is absent.
type AccountState struct {
	Address   string `json:"address,omitempty"`
	ChainID   uint64 `json:"chainId,omitempty"`
	Connected bool   `json:"connected"`
}

// Ready reports whether a portfolio can be loaded for this account.
func (a AccountState) Ready() bool {
	return a.Connected && a.Address != "" && a.ChainID != 0
}
