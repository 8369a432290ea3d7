// Package analyzer orchestrates one token analysis: fan out to the three
// data providers, merge their records into a single view, score it.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/markandeyay/rugpullcheck/internal/chains"
	"github.com/markandeyay/rugpullcheck/internal/models"
	"github.com/markandeyay/rugpullcheck/internal/providers"
	"github.com/markandeyay/rugpullcheck/internal/scoring"
)

// ErrInvalidAddress rejects addresses that are not 0x plus 40 hex characters.
var ErrInvalidAddress = errors.New("invalid token address format, must be 0x followed by 40 hex characters")

var addressPattern = regexp.MustCompile(`^0x[0-9a-f]{40}$`)

const zeroAddress = "0x0000000000000000000000000000000000000000"

type Analyzer struct {
	market   providers.MarketSource
	contract providers.ContractSource
	security providers.SecuritySource
	engine   *scoring.Engine
	logger   *slog.Logger
}

func New(
	market providers.MarketSource,
	contract providers.ContractSource,
	security providers.SecuritySource,
	engine *scoring.Engine,
	logger *slog.Logger,
) *Analyzer {
	return &Analyzer{
		market:   market,
		contract: contract,
		security: security,
		engine:   engine,
		logger:   logger,
	}
}

// NormalizeAddress lowercases and trims a token address. The same form is
// used for provider calls and cache keys.
func NormalizeAddress(tokenAddress string) string {
	return strings.ToLower(strings.TrimSpace(tokenAddress))
}

// Analyze runs the full pipeline for one token. Invalid input and unknown
// chains fail the whole request before any provider is called; individual
// provider failures only degrade the report.
func (a *Analyzer) Analyze(ctx context.Context, chain, tokenAddress string) (*models.Report, error) {
	address := NormalizeAddress(tokenAddress)
	if !addressPattern.MatchString(address) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, tokenAddress)
	}

	params, err := chains.Get(chain)
	if err != nil {
		return nil, err
	}

	var (
		marketRec   *providers.MarketRecord
		contractRec *providers.ContractRecord
		securityRec *providers.SecurityRecord
	)

	// Fixed fan-out of three independent calls. Each goroutine owns one
	// result variable; a failed provider just leaves it nil.
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		rec, err := a.market.FetchPairs(ctx, params, address)
		if err != nil {
			a.logger.Warn("market data unavailable", "address", address, "err", err)
			return
		}
		marketRec = rec
	}()

	go func() {
		defer wg.Done()
		rec, err := a.contract.FetchContract(ctx, params, address)
		if err != nil {
			a.logger.Warn("contract data unavailable", "address", address, "err", err)
			return
		}
		contractRec = rec
	}()

	go func() {
		defer wg.Done()
		rec, err := a.security.FetchSecurity(ctx, params, address)
		if err != nil {
			a.logger.Warn("security data unavailable", "address", address, "err", err)
			return
		}
		securityRec = rec
	}()

	wg.Wait()

	token := buildToken(address, marketRec, contractRec, securityRec)
	market := buildMarket(marketRec)
	holders := buildHolders(securityRec)
	admin := buildAdmin(contractRec, securityRec)
	tradeRisk := buildTradeRisk(securityRec)

	score := a.engine.Compute(token, market, holders, admin, tradeRisk)
	links := buildLinks(params, address, market)

	return &models.Report{
		Token:     token,
		Market:    market,
		Holders:   holders,
		Admin:     admin,
		TradeRisk: tradeRisk,
		Score:     score,
		Links:     links,
	}, nil
}

// buildToken merges identity fields with fixed precedence: market data,
// then security data, then the verified contract name last.
func buildToken(address string, marketRec *providers.MarketRecord, contractRec *providers.ContractRecord, securityRec *providers.SecurityRecord) models.Token {
	token := models.Token{
		Address:  address,
		Name:     models.UnknownName,
		Symbol:   models.UnknownSymbol,
		Decimals: 18,
	}

	if marketRec != nil {
		if marketRec.Name != "" {
			token.Name = marketRec.Name
		}
		if marketRec.Symbol != "" {
			token.Symbol = marketRec.Symbol
		}
		token.AgeDays = marketRec.PairAgeDays
	}

	if securityRec != nil {
		if securityRec.TokenName != "" {
			token.Name = securityRec.TokenName
		}
		if securityRec.TokenSymbol != "" {
			token.Symbol = securityRec.TokenSymbol
		}
		if securityRec.TotalSupply != "" {
			supply := securityRec.TotalSupply
			token.TotalSupply = &supply
		}
	}

	if contractRec != nil {
		verified := contractRec.Verified
		token.Verified = &verified
		if contractRec.ContractName != "" {
			token.Name = contractRec.ContractName
		}
	}

	return token
}

func buildMarket(marketRec *providers.MarketRecord) *models.Market {
	if marketRec == nil || marketRec.Pair == nil {
		return nil
	}

	pair := marketRec.Pair
	dex := pair.DexID
	if dex == "" {
		dex = models.UnknownName
	}

	return &models.Market{
		Dex:               dex,
		PairAddress:       pair.PairAddress,
		BaseSymbol:        pair.BaseSymbol,
		QuoteSymbol:       pair.QuoteSymbol,
		LiquidityUSD:      pair.LiquidityUSD,
		Volume24hUSD:      pair.Volume24hUSD,
		PriceUSD:          pair.PriceUSD,
		PriceChange24hPct: pair.PriceChange24hPct,
		FDV:               pair.FDV,
		MarketCap:         pair.MarketCap,
		PairCreatedAt:     pair.PairCreatedAt,
	}
}

// buildHolders sums the top-1/5/10 cumulative share of the provider's
// holder list. Each cumulative figure is rounded to 2 decimals on its own,
// never rounded before summing.
func buildHolders(securityRec *providers.SecurityRecord) *models.Holders {
	if securityRec == nil || len(securityRec.Holders) == 0 {
		return nil
	}

	hundred := decimal.NewFromInt(100)
	top1 := decimal.Zero
	top5 := decimal.Zero
	top10 := decimal.Zero

	for i, holder := range securityRec.Holders {
		if i >= 10 {
			break
		}
		share, err := decimal.NewFromString(holder.Percent)
		if err != nil {
			continue
		}
		pct := share.Mul(hundred)
		if i < 1 {
			top1 = top1.Add(pct)
		}
		if i < 5 {
			top5 = top5.Add(pct)
		}
		top10 = top10.Add(pct)
	}

	holders := &models.Holders{
		Top1Pct:    top1.Round(2).InexactFloat64(),
		Top5Pct:    top5.Round(2).InexactFloat64(),
		Top10Pct:   top10.Round(2).InexactFloat64(),
		DataSource: "goplus",
	}
	if securityRec.HolderCount != "" {
		count := securityRec.HolderCount
		holders.HolderCount = &count
	}

	return holders
}

// securityFlags maps provider booleans to flag identifiers in detection
// order.
var securityFlags = []struct {
	set  func(*providers.SecurityRecord) bool
	flag string
}{
	{func(r *providers.SecurityRecord) bool { return r.Mintable }, "mint_function_detected"},
	{func(r *providers.SecurityRecord) bool { return r.Proxy }, "proxy_contract_detected"},
	{func(r *providers.SecurityRecord) bool { return r.TransferPausable }, "transfer_pausable"},
	{func(r *providers.SecurityRecord) bool { return r.SlippageModifiable }, "slippage_modifiable"},
	{func(r *providers.SecurityRecord) bool { return r.Blacklisted }, "blacklist_function_detected"},
	{func(r *providers.SecurityRecord) bool { return r.PersonalSlippageMod }, "personal_tax_modifiable"},
	{func(r *providers.SecurityRecord) bool { return r.TradingCooldown }, "trading_cooldown_enabled"},
	{func(r *providers.SecurityRecord) bool { return r.HiddenOwner }, "hidden_owner_detected"},
	{func(r *providers.SecurityRecord) bool { return r.CanTakeBackOwnership }, "can_reclaim_ownership"},
	{func(r *providers.SecurityRecord) bool { return r.SelfDestruct }, "self_destruct_function"},
	{func(r *providers.SecurityRecord) bool { return r.ExternalCall }, "external_call_risk"},
}

// sourcePatterns maps substrings of verified source code to flag
// identifiers. Scan order is fixed; a hit is skipped when the flag already
// came from the provider booleans.
var sourcePatterns = []struct {
	keyword string
	flag    string
}{
	{"mint", "mint_function_detected"},
	{"blacklist", "blacklist_terms_detected"},
	{"setfee", "fee_modification_detected"},
	{"settax", "tax_modification_detected"},
	{"pause", "pause_function_detected"},
	{"tradingenabled", "trading_toggle_detected"},
	{"onlyowner", "owner_restricted_functions"},
}

// buildAdmin combines security-provider booleans with a keyword scan over
// verified source code. Always returns a value, tri-states stay nil when no
// source contributed.
func buildAdmin(contractRec *providers.ContractRecord, securityRec *providers.SecurityRecord) models.Admin {
	admin := models.Admin{Flags: []string{}}

	if securityRec != nil {
		hasOwner := securityRec.OwnerAddress != "" && securityRec.OwnerAddress != zeroAddress
		// A missing owner address is reported as renounced; the provider
		// cannot tell "renounced" apart from "never had an owner".
		renounced := !hasOwner
		admin.HasOwner = &hasOwner
		admin.OwnerRenounced = &renounced
		if hasOwner {
			owner := securityRec.OwnerAddress
			admin.OwnerAddress = &owner
		}

		for _, sf := range securityFlags {
			if sf.set(securityRec) {
				admin.Flags = append(admin.Flags, sf.flag)
			}
		}
		if securityRec.Proxy {
			proxy := true
			admin.UpgradeableProxy = &proxy
		}
	}

	if contractRec != nil && contractRec.SourceCode != "" {
		source := strings.ToLower(contractRec.SourceCode)
		for _, sp := range sourcePatterns {
			if strings.Contains(source, sp.keyword) && !containsFlag(admin.Flags, sp.flag) {
				admin.Flags = append(admin.Flags, sp.flag)
			}
		}
	}

	return admin
}

func buildTradeRisk(securityRec *providers.SecurityRecord) *models.TradeRisk {
	if securityRec == nil {
		return nil
	}

	return &models.TradeRisk{
		Honeypot:   securityRec.Honeypot,
		BuyTaxPct:  taxPct(securityRec.BuyTax),
		SellTaxPct: taxPct(securityRec.SellTax),
		CannotSell: securityRec.CannotSellAll,
		CannotBuy:  securityRec.CannotBuy,
		Source:     "goplus",
	}
}

func buildLinks(params chains.Params, address string, market *models.Market) models.Links {
	target := address
	if market != nil && market.PairAddress != "" {
		target = market.PairAddress
	}

	return models.Links{
		DexScreener: fmt.Sprintf("https://dexscreener.com/%s/%s", params.DexScreenerID, target),
		Explorer:    fmt.Sprintf("%s/token/%s", params.ExplorerURL, address),
	}
}

// taxPct converts a provider tax fraction ("0.05") to a percentage (5).
func taxPct(raw string) *float64 {
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	pct := d.Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
	return &pct
}

func containsFlag(flags []string, flag string) bool {
	for _, f := range flags {
		if f == flag {
			return true
		}
	}
	return false
}
