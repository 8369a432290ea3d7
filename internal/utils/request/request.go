package request

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// New builds an HTTP client shared by the provider clients. Retries belong
// here in the transport layer; the analyzer never retries.
func New(timeout time.Duration) *resty.Client {
	return resty.New().SetTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment,
	}).SetRetryCount(3).SetTimeout(timeout)
}
