// Package dexscreener implements the market-data source backed by the
// DexScreener token-pairs API. No API key required.
package dexscreener

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/markandeyay/rugpullcheck/internal/chains"
	"github.com/markandeyay/rugpullcheck/internal/providers"
)

type Client struct {
	baseURL    string
	httpClient *resty.Client
	logger     *slog.Logger

	// now is swappable for deterministic age tests.
	now func() time.Time
}

// pair mirrors the DexScreener wire format for one trading pair.
type pair struct {
	ChainID     string `json:"chainId"`
	DexID       string `json:"dexId"`
	PairAddress string `json:"pairAddress"`
	BaseToken   struct {
		Address string `json:"address"`
		Name    string `json:"name"`
		Symbol  string `json:"symbol"`
	} `json:"baseToken"`
	QuoteToken struct {
		Address string `json:"address"`
		Name    string `json:"name"`
		Symbol  string `json:"symbol"`
	} `json:"quoteToken"`
	PriceUsd  string `json:"priceUsd"`
	Liquidity *struct {
		USD *float64 `json:"usd"`
	} `json:"liquidity"`
	Volume struct {
		H24 *float64 `json:"h24"`
	} `json:"volume"`
	PriceChange struct {
		H24 *float64 `json:"h24"`
	} `json:"priceChange"`
	FDV           *float64 `json:"fdv"`
	MarketCap     *float64 `json:"marketCap"`
	PairCreatedAt *int64   `json:"pairCreatedAt"`
}

func NewClient(httpClient *resty.Client, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    "https://api.dexscreener.com",
		httpClient: httpClient,
		logger:     logger,
		now:        time.Now,
	}
}

func (c *Client) Name() string {
	return "dexscreener"
}

// FetchPairs implements providers.MarketSource.
func (c *Client) FetchPairs(ctx context.Context, params chains.Params, address string) (*providers.MarketRecord, error) {
	url := fmt.Sprintf("%s/tokens/v1/%s/%s", c.baseURL, params.DexScreenerID, address)

	resp, err := c.httpClient.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var pairs []pair
	if err := json.Unmarshal(resp.Body(), &pairs); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(pairs) == 0 {
		c.logger.Debug("no pairs listed", "address", address, "chain", params.DexScreenerID)
		return nil, fmt.Errorf("no pairs found for %s", address)
	}

	best := bestPair(pairs)

	record := &providers.MarketRecord{
		Name:       best.BaseToken.Name,
		Symbol:     best.BaseToken.Symbol,
		PairsCount: len(pairs),
		Pair: &providers.PairRecord{
			DexID:             best.DexID,
			PairAddress:       best.PairAddress,
			BaseSymbol:        best.BaseToken.Symbol,
			QuoteSymbol:       best.QuoteToken.Symbol,
			LiquidityUSD:      liquidityUSD(best),
			Volume24hUSD:      best.Volume.H24,
			PriceUSD:          best.PriceUsd,
			PriceChange24hPct: best.PriceChange.H24,
			FDV:               best.FDV,
			MarketCap:         best.MarketCap,
			PairCreatedAt:     best.PairCreatedAt,
		},
	}

	if best.PairCreatedAt != nil {
		created := time.UnixMilli(*best.PairCreatedAt).UTC()
		age := int(c.now().UTC().Sub(created).Hours() / 24)
		record.PairAgeDays = &age
	}

	return record, nil
}

// bestPair picks the pair with the highest reported USD liquidity, treating
// missing liquidity as zero. Ties keep the first pair in provider order;
// that order is whatever the provider returned, not a guarantee.
func bestPair(pairs []pair) pair {
	best := pairs[0]
	bestLiq := liquidityValue(best)
	for _, p := range pairs[1:] {
		if liq := liquidityValue(p); liq > bestLiq {
			best = p
			bestLiq = liq
		}
	}
	return best
}

func liquidityValue(p pair) float64 {
	if p.Liquidity == nil || p.Liquidity.USD == nil {
		return 0
	}
	return *p.Liquidity.USD
}

func liquidityUSD(p pair) *float64 {
	if p.Liquidity == nil {
		return nil
	}
	return p.Liquidity.USD
}
