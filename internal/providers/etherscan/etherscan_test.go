package etherscan

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
		query := r.URL.Query()
		assert.Equal(t, "1", query.Get("chainid"))
		assert.Equal(t, "contract", query.Get("module"))
		assert.Equal(t, "getsourcecode", query.Get("action"))
		assert.Equal(t, testAddress, query.Get("address"))
		assert.Equal(t, "test-key", query.Get("apikey"))

		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(body))
		require.NoError(t, err)
	}))

	client := NewClient("test-key", resty.NewWithClient(server.Client()), slog.New(slog.NewTextHandler(io.Discard, nil)))
	client.baseURL = server.URL

	return server, client
}

func ethParams() chains.Params {
	params, _ := chains.Get("ethereum")
	return params
}

func TestFetchContract_Verified(t *testing.T) {
	body := `{
		"status": "1",
		"message": "OK",
		"result": [{
			"SourceCode": "contract Tether { function mint() onlyOwner {} }",
			"ABI": "[...]",
			"ContractName": "TetherToken",
			"CompilerVersion": "v0.4.18",
			"Proxy": "0",
			"Implementation": ""
		}]
	}`

	server, client := setupTestServer(t, body)
	defer server.Close()

	record, err := client.FetchContract(context.Background(), ethParams(), testAddress)

	require.NoError(t, err)
	assert.True(t, record.Verified)
	assert.Equal(t, "TetherToken", record.ContractName)
	assert.Equal(t, "v0.4.18", record.CompilerVersion)
	assert.Contains(t, record.SourceCode, "function mint()")
	assert.False(t, record.Proxy)
}

func TestFetchContract_Unverified(t *testing.T) {
	body := `{
		"status": "1",
		"message": "OK",
		"result": [{
			"SourceCode": "",
			"ABI": "Contract source code not verified",
			"ContractName": "",
			"Proxy": "0"
		}]
	}`

	server, client := setupTestServer(t, body)
	defer server.Close()

	record, err := client.FetchContract(context.Background(), ethParams(), testAddress)

	require.NoError(t, err)
	assert.False(t, record.Verified)
	assert.Empty(t, record.SourceCode)
	assert.Empty(t, record.ABI)
}

func TestFetchContract_APIError(t *testing.T) {
	body := `{"status": "0", "message": "NOTOK", "result": []}`

	server, client := setupTestServer(t, body)
	defer server.Close()

	record, err := client.FetchContract(context.Background(), ethParams(), testAddress)

	assert.Error(t, err)
	assert.Nil(t, record)
}

func TestFetchContract_MissingAPIKey(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	client := NewClient("", resty.NewWithClient(server.Client()), slog.New(slog.NewTextHandler(io.Discard, nil)))
	client.baseURL = server.URL

	record, err := client.FetchContract(context.Background(), ethParams(), testAddress)

	assert.Error(t, err)
	assert.Nil(t, record)
	assert.Zero(t, calls)
}
