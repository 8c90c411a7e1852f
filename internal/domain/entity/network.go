package entity

// NetworkDefinition holds the metadata of a supported blockchain network.
type NetworkDefinition struct {
	ChainID          uint64 `json:"chainId" yaml:"chainId"`
	Name             string `json:"name" yaml:"name"`
	Identifier       string `json:"identifier" yaml:"identifier"` // e.g. "ethereum", "polygon"
	NativeSymbol     string `json:"nativeSymbol" yaml:"nativeSymbol"`
	NativeName       string `json:"nativeName" yaml:"nativeName"`
	Decimals         uint8  `json:"decimals" yaml:"decimals"`
	BlockExplorerURL string `json:"blockExplorerUrl,omitempty" yaml:"blockExplorerUrl,omitempty"`
}
