// Package chains maps chain identifiers to the provider-specific parameters
// each external API expects.
package chains

import (
	"fmt"
	"sort"
)

// Params holds the per-chain identifiers used by the provider clients.
type Params struct {
	Name          string
	ChainID       int
	DexScreenerID string
	GoPlusChainID string
	ExplorerURL   string
}

// ErrUnsupportedChain is returned by Get for chains outside the registry.
type ErrUnsupportedChain struct {
	Chain string
}

func (e *ErrUnsupportedChain) Error() string {
	return fmt.Sprintf("unsupported chain: %s (supported: %v)", e.Chain, Supported())
}

var registry = map[string]Params{
	"ethereum": {
		Name:          "Ethereum",
		ChainID:       1,
		DexScreenerID: "ethereum",
		GoPlusChainID: "1",
		ExplorerURL:   "https://etherscan.io",
	},
	"base": {
		Name:          "Base",
		ChainID:       8453,
		DexScreenerID: "base",
		GoPlusChainID: "8453",
		ExplorerURL:   "https://basescan.org",
	},
	"arbitrum": {
		Name:          "Arbitrum",
		ChainID:       42161,
		DexScreenerID: "arbitrum",
		GoPlusChainID: "42161",
		ExplorerURL:   "https://arbiscan.io",
	},
	"polygon": {
		Name:          "Polygon",
		ChainID:       137,
		DexScreenerID: "polygon",
		GoPlusChainID: "137",
		ExplorerURL:   "https://polygonscan.com",
	},
	"bsc": {
		Name:          "BSC",
		ChainID:       56,
		DexScreenerID: "bsc",
		GoPlusChainID: "56",
		ExplorerURL:   "https://bscscan.com",
	},
}

// Get resolves provider parameters for a chain identifier.
func Get(chain string) (Params, error) {
	params, ok := registry[chain]
	if !ok {
		return Params{}, &ErrUnsupportedChain{Chain: chain}
	}
	return params, nil
}

// Supported lists the registered chain identifiers in stable order.
func Supported() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
