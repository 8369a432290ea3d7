// Package cache memoizes finished analysis reports per (chain, address).
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/markandeyay/rugpullcheck/internal/models"
)

// Cache is the report cache capability handed to the HTTP layer. Entries
// expire after a fixed TTL; there is no single-flight guarantee, concurrent
// misses for the same key may both trigger an analysis.
type Cache interface {
	Get(key string) (*models.Report, bool)
	Set(key string, report *models.Report)
}

// Key builds the cache key for a chain and an already-normalized address.
func Key(chain, address string) string {
	return chain + ":" + address
}

// TTLCache implements Cache on top of an in-process TTL store.
type TTLCache struct {
	store *gocache.Cache
}

func NewTTLCache(ttl time.Duration) *TTLCache {
	return &TTLCache{store: gocache.New(ttl, 2*ttl)}
}

func (c *TTLCache) Get(key string) (*models.Report, bool) {
	value, ok := c.store.Get(key)
	if !ok {
		return nil, false
	}
	report, ok := value.(*models.Report)
	return report, ok
}

func (c *TTLCache) Set(key string, report *models.Report) {
	c.store.SetDefault(key, report)
}
