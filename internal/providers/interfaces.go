// Package providers declares the three external data source contracts and
// the normalized record each one produces. Any error returned by a source is
// treated as "no data" by the analyzer; sources never leak raw provider
// error payloads past this boundary.
package providers

import (
	"context"

	"github.com/markandeyay/rugpullcheck/internal/chains"
)

// MarketSource fetches DEX trading pair data for a token.
type MarketSource interface {
	// FetchPairs returns the token's market record with its best pair
	// already selected, or an error when the provider has no data.
	FetchPairs(ctx context.Context, params chains.Params, address string) (*MarketRecord, error)
}

// ContractSource fetches contract verification status and source code.
type ContractSource interface {
	FetchContract(ctx context.Context, params chains.Params, address string) (*ContractRecord, error)
}

// SecuritySource fetches token security flags, taxes and holder data.
type SecuritySource interface {
	FetchSecurity(ctx context.Context, params chains.Params, address string) (*SecurityRecord, error)
}

// MarketRecord is the normalized market-data provider output.
type MarketRecord struct {
	Name        string
	Symbol      string
	PairAgeDays *int
	Pair        *PairRecord
	PairsCount  int
}

// PairRecord describes the selected best trading pair.
type PairRecord struct {
	DexID             string
	PairAddress       string
	BaseSymbol        string
	QuoteSymbol       string
	LiquidityUSD      *float64
	Volume24hUSD      *float64
	PriceUSD          string
	PriceChange24hPct *float64
	FDV               *float64
	MarketCap         *float64
	PairCreatedAt     *int64 // epoch ms
}

// ContractRecord is the normalized contract-verification provider output.
type ContractRecord struct {
	Verified        bool
	ContractName    string
	CompilerVersion string
	SourceCode      string // empty unless verified
	ABI             string
	Proxy           bool
	Implementation  string
}

// SecurityRecord is the normalized security-flag provider output. Numeric
// fields stay provider-formatted strings; scaling happens in the analyzer.
type SecurityRecord struct {
	TokenName    string
	TokenSymbol  string
	TotalSupply  string
	OwnerAddress string
	HolderCount  string
	Holders      []SecurityHolder

	Honeypot      bool
	CannotBuy     bool
	CannotSellAll bool
	BuyTax        string // fraction of 1, e.g. "0.05"
	SellTax       string

	Mintable             bool
	Proxy                bool
	TransferPausable     bool
	SlippageModifiable   bool
	Blacklisted          bool
	PersonalSlippageMod  bool
	TradingCooldown      bool
	HiddenOwner          bool
	CanTakeBackOwnership bool
	SelfDestruct         bool
	ExternalCall         bool
}

// SecurityHolder is one entry of the provider's holder list, ordered
// descending by share.
type SecurityHolder struct {
	Address  string
	Balance  string
	Percent  string // fraction of 1
	IsLocked bool
}
