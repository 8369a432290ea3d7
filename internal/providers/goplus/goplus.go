// Package goplus implements the security-flag source backed by the GoPlus
// token_security API: honeypot detection, taxes, holder lists and the
// owner/admin capability flags.
package goplus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/markandeyay/rugpullcheck/internal/chains"
	"github.com/markandeyay/rugpullcheck/internal/providers"
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *resty.Client
	logger     *slog.Logger
}

// tokenSecurity mirrors the GoPlus wire format. Nearly every field is a
// string-coded number or boolean.
type tokenSecurity struct {
	TokenName    string `json:"token_name"`
	TokenSymbol  string `json:"token_symbol"`
	TotalSupply  string `json:"total_supply"`
	OwnerAddress string `json:"owner_address"`
	HolderCount  string `json:"holder_count"`
	Holders      []struct {
		Address  string `json:"address"`
		Balance  string `json:"balance"`
		Percent  string `json:"percent"`
		IsLocked int    `json:"is_locked"`
	} `json:"holders"`

	IsHoneypot    string `json:"is_honeypot"`
	CannotBuy     string `json:"cannot_buy"`
	CannotSellAll string `json:"cannot_sell_all"`
	BuyTax        string `json:"buy_tax"`
	SellTax       string `json:"sell_tax"`

	IsMintable           string `json:"is_mintable"`
	IsProxy              string `json:"is_proxy"`
	TransferPausable     string `json:"transfer_pausable"`
	SlippageModifiable   string `json:"slippage_modifiable"`
	IsBlacklisted        string `json:"is_blacklisted"`
	PersonalSlippageMod  string `json:"personal_slippage_modifiable"`
	TradingCooldown      string `json:"trading_cooldown"`
	HiddenOwner          string `json:"hidden_owner"`
	CanTakeBackOwnership string `json:"can_take_back_ownership"`
	Selfdestruct         string `json:"selfdestruct"`
	ExternalCall         string `json:"external_call"`
}

type securityResponse struct {
	Code    int                      `json:"code"`
	Message string                   `json:"message"`
	Result  map[string]tokenSecurity `json:"result"`
}

func NewClient(apiKey string, httpClient *resty.Client, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    "https://api.gopluslabs.io/api/v1",
		apiKey:     apiKey,
		httpClient: httpClient,
		logger:     logger,
	}
}

func (c *Client) Name() string {
	return "goplus"
}

// FetchSecurity implements providers.SecuritySource.
func (c *Client) FetchSecurity(ctx context.Context, params chains.Params, address string) (*providers.SecurityRecord, error) {
	url := fmt.Sprintf("%s/token_security/%s", c.baseURL, params.GoPlusChainID)

	req := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("contract_addresses", address)
	if c.apiKey != "" {
		req.SetHeader("Authorization", c.apiKey)
	}

	resp, err := req.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var result securityResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if result.Code != 1 {
		c.logger.Debug("goplus error code", "code", result.Code, "message", result.Message)
		return nil, fmt.Errorf("goplus error code %d: %s", result.Code, result.Message)
	}

	// Result keys may differ in case from the query address.
	data, ok := result.Result[strings.ToLower(address)]
	if !ok {
		data, ok = result.Result[address]
	}
	if !ok {
		return nil, fmt.Errorf("no security data for %s on chain %s", address, params.GoPlusChainID)
	}

	record := &providers.SecurityRecord{
		TokenName:    data.TokenName,
		TokenSymbol:  data.TokenSymbol,
		TotalSupply:  data.TotalSupply,
		OwnerAddress: data.OwnerAddress,
		HolderCount:  data.HolderCount,

		Honeypot:      data.IsHoneypot == "1",
		CannotBuy:     data.CannotBuy == "1",
		CannotSellAll: data.CannotSellAll == "1",
		BuyTax:        data.BuyTax,
		SellTax:       data.SellTax,

		Mintable:             data.IsMintable == "1",
		Proxy:                data.IsProxy == "1",
		TransferPausable:     data.TransferPausable == "1",
		SlippageModifiable:   data.SlippageModifiable == "1",
		Blacklisted:          data.IsBlacklisted == "1",
		PersonalSlippageMod:  data.PersonalSlippageMod == "1",
		TradingCooldown:      data.TradingCooldown == "1",
		HiddenOwner:          data.HiddenOwner == "1",
		CanTakeBackOwnership: data.CanTakeBackOwnership == "1",
		SelfDestruct:         data.Selfdestruct == "1",
		ExternalCall:         data.ExternalCall == "1",
	}

	for _, h := range data.Holders {
		record.Holders = append(record.Holders, providers.SecurityHolder{
			Address:  h.Address,
			Balance:  h.Balance,
			Percent:  h.Percent,
			IsLocked: h.IsLocked == 1,
		})
	}

	return record, nil
}
