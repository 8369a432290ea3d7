// Package etherscan implements the contract-verification source backed by
// the Etherscan V2 multichain API.
package etherscan

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/markandeyay/rugpullcheck/internal/chains"
	"github.com/markandeyay/rugpullcheck/internal/providers"
)

const unverifiedABI = "Contract source code not verified"

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *resty.Client
	logger     *slog.Logger
}

type sourceCodeResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  []struct {
		SourceCode      string `json:"SourceCode"`
		ABI             string `json:"ABI"`
		ContractName    string `json:"ContractName"`
		CompilerVersion string `json:"CompilerVersion"`
		Proxy           string `json:"Proxy"`
		Implementation  string `json:"Implementation"`
	} `json:"result"`
}

func NewClient(apiKey string, httpClient *resty.Client, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    "https://api.etherscan.io/v2/api",
		apiKey:     apiKey,
		httpClient: httpClient,
		logger:     logger,
	}
}

func (c *Client) Name() string {
	return "etherscan"
}

// FetchContract implements providers.ContractSource. Without an API key the
// source reports no data rather than making unauthenticated calls.
func (c *Client) FetchContract(ctx context.Context, params chains.Params, address string) (*providers.ContractRecord, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("etherscan api key not configured")
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"chainid": fmt.Sprintf("%d", params.ChainID),
			"module":  "contract",
			"action":  "getsourcecode",
			"address": address,
			"apikey":  c.apiKey,
		}).
		Get(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var result sourceCodeResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if result.Status != "1" || len(result.Result) == 0 {
		c.logger.Debug("no contract data", "address", address, "status", result.Status, "message", result.Message)
		return nil, fmt.Errorf("no contract data for %s: %s", address, result.Message)
	}

	entry := result.Result[0]
	verified := entry.SourceCode != "" && entry.ABI != unverifiedABI

	record := &providers.ContractRecord{
		Verified:        verified,
		ContractName:    entry.ContractName,
		CompilerVersion: entry.CompilerVersion,
		Proxy:           entry.Proxy == "1",
		Implementation:  entry.Implementation,
	}
	if verified {
		record.SourceCode = entry.SourceCode
		record.ABI = entry.ABI
	}

	return record, nil
}
