package goplus

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markandeyay/rugpullcheck/internal/chains"
)

const testAddress = "0xdac17f958d2ee523a2206206994597c13d831ec7"

func setupTestServer(t *testing.T, body string) (*httptest.Server, *Client) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/token_security/1", r.URL.Path)
		assert.Equal(t, testAddress, r.URL.Query().Get("contract_addresses"))

		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(body))
		require.NoError(t, err)
	}))

	client := NewClient("", resty.NewWithClient(server.Client()), slog.New(slog.NewTextHandler(io.Discard, nil)))
	client.baseURL = server.URL

	return server, client
}

func ethParams() chains.Params {
	params, _ := chains.Get("ethereum")
	return params
}

func TestFetchSecurity_Normalizes(t *testing.T) {
	body := `{
		"code": 1,
		"message": "ok",
		"result": {
			"` + testAddress + `": {
				"token_name": "Tether USD",
				"token_symbol": "USDT",
				"total_supply": "39823654239.4",
				"owner_address": "0x1111111111111111111111111111111111111111",
				"holder_count": "4521000",
				"holders": [
					{"address": "0xaaa", "balance": "100", "percent": "0.12", "is_locked": 1},
					{"address": "0xbbb", "balance": "50", "percent": "0.05", "is_locked": 0}
				],
				"is_honeypot": "0",
				"cannot_buy": "0",
				"cannot_sell_all": "1",
				"buy_tax": "0.01",
				"sell_tax": "0.05",
				"is_mintable": "1",
				"is_proxy": "0",
				"transfer_pausable": "1",
				"slippage_modifiable": "0",
				"is_blacklisted": "1",
				"personal_slippage_modifiable": "0",
				"trading_cooldown": "0",
				"hidden_owner": "0",
				"can_take_back_ownership": "1",
				"selfdestruct": "0",
				"external_call": "0"
			}
		}
	}`

	server, client := setupTestServer(t, body)
	defer server.Close()

	record, err := client.FetchSecurity(context.Background(), ethParams(), testAddress)

	require.NoError(t, err)
	assert.Equal(t, "Tether USD", record.TokenName)
	assert.Equal(t, "USDT", record.TokenSymbol)
	assert.Equal(t, "39823654239.4", record.TotalSupply)
	assert.Equal(t, "0x1111111111111111111111111111111111111111", record.OwnerAddress)
	assert.Equal(t, "4521000", record.HolderCount)

	require.Len(t, record.Holders, 2)
	assert.Equal(t, "0xaaa", record.Holders[0].Address)
	assert.Equal(t, "0.12", record.Holders[0].Percent)
	assert.True(t, record.Holders[0].IsLocked)
	assert.False(t, record.Holders[1].IsLocked)

	assert.False(t, record.Honeypot)
	assert.False(t, record.CannotBuy)
	assert.True(t, record.CannotSellAll)
	assert.Equal(t, "0.01", record.BuyTax)
	assert.Equal(t, "0.05", record.SellTax)

	assert.True(t, record.Mintable)
	assert.False(t, record.Proxy)
	assert.True(t, record.TransferPausable)
	assert.True(t, record.Blacklisted)
	assert.True(t, record.CanTakeBackOwnership)
	assert.False(t, record.SelfDestruct)
}

func TestFetchSecurity_KeyLookupIsCaseTolerant(t *testing.T) {
	// result keyed by the lowercase address even when queried differently
	body := `{
		"code": 1,
		"result": {"` + testAddress + `": {"token_name": "T"}}
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	client := NewClient("", resty.NewWithClient(server.Client()), slog.New(slog.NewTextHandler(io.Discard, nil)))
	client.baseURL = server.URL

	record, err := client.FetchSecurity(context.Background(), ethParams(), testAddress)

	require.NoError(t, err)
	assert.Equal(t, "T", record.TokenName)
}

func TestFetchSecurity_ErrorCode(t *testing.T) {
	body := `{"code": 4012, "message": "chain not supported", "result": {}}`

	server, client := setupTestServer(t, body)
	defer server.Close()

	record, err := client.FetchSecurity(context.Background(), ethParams(), testAddress)

	assert.Error(t, err)
	assert.Nil(t, record)
}

func TestFetchSecurity_NoDataForAddress(t *testing.T) {
	body := `{"code": 1, "message": "ok", "result": {}}`

	server, client := setupTestServer(t, body)
	defer server.Close()

	record, err := client.FetchSecurity(context.Background(), ethParams(), testAddress)

	assert.Error(t, err)
	assert.Nil(t, record)
}
