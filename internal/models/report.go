package models

// AnalyzeRequest is the body of a POST /api/analyze call.
type AnalyzeRequest struct {
	Chain        string `json:"chain"`
	TokenAddress string `json:"token_address"`
}

// Token carries the merged identity of the analyzed contract.
// Fields without a value from any provider keep their sentinel defaults.
type Token struct {
	Address     string  `json:"address"`
	Name        string  `json:"name"`
	Symbol      string  `json:"symbol"`
	Decimals    int     `json:"decimals"`
	TotalSupply *string `json:"total_supply"`
	AgeDays     *int    `json:"age_days"`
	Verified    *bool   `json:"verified"`
}

// Market describes the best trading pair found for the token.
type Market struct {
	Dex               string   `json:"dex"`
	PairAddress       string   `json:"pair_address"`
	BaseSymbol        string   `json:"base_symbol"`
	QuoteSymbol       string   `json:"quote_symbol"`
	LiquidityUSD      *float64 `json:"liquidity_usd"`
	Volume24hUSD      *float64 `json:"volume_24h_usd"`
	PriceUSD          string   `json:"price_usd"`
	PriceChange24hPct *float64 `json:"price_change_24h_pct"`
	FDV               *float64 `json:"fdv"`
	MarketCap         *float64 `json:"market_cap"`
	PairCreatedAt     *int64   `json:"pair_created_at"` // epoch ms
}

// Holders summarizes supply concentration over the largest addresses.
type Holders struct {
	Top1Pct     float64 `json:"top1_pct"`
	Top5Pct     float64 `json:"top5_pct"`
	Top10Pct    float64 `json:"top10_pct"`
	HolderCount *string `json:"holder_count"`
	DataSource  string  `json:"data_source"`
}

// Admin describes owner/admin control over the contract. Tri-state fields
// are nil when no provider contributed an answer.
type Admin struct {
	HasOwner         *bool    `json:"has_owner"`
	OwnerRenounced   *bool    `json:"owner_renounced"`
	OwnerAddress     *string  `json:"owner_address"`
	UpgradeableProxy *bool    `json:"upgradeable_proxy_suspected"`
	Flags            []string `json:"flags"`
}

// TradeRisk carries honeypot and tax signals. Taxes are percentages.
type TradeRisk struct {
	Honeypot   bool     `json:"honeypot"`
	BuyTaxPct  *float64 `json:"buy_tax_pct"`
	SellTaxPct *float64 `json:"sell_tax_pct"`
	CannotSell bool     `json:"cannot_sell"`
	CannotBuy  bool     `json:"cannot_buy"`
	Source     string   `json:"source"`
}

// Score is the scoring engine's verdict.
type Score struct {
	RiskScore int      `json:"risk_score"`
	Label     string   `json:"label"`
	Reasons   []string `json:"reasons"`
}

// Links holds provider-UI deep links for the analyzed token.
type Links struct {
	DexScreener string `json:"dexscreener"`
	Explorer    string `json:"explorer"`
}

// Report is the full analysis response, the unit cached and returned.
type Report struct {
	Token     Token      `json:"token"`
	Market    *Market    `json:"market"`
	Holders   *Holders   `json:"holders"`
	Admin     Admin      `json:"admin"`
	TradeRisk *TradeRisk `json:"trade_risk"`
	Score     Score      `json:"score"`
	Links     Links      `json:"links"`
}

// Risk labels returned in Score.Label.
const (
	LabelLow    = "LOW"
	LabelMedium = "MEDIUM"
	LabelHigh   = "HIGH"
)

// Sentinel identity defaults used when no provider supplies a value.
const (
	UnknownName   = "Unknown"
	UnknownSymbol = "???"
)
