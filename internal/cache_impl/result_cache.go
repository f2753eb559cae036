package cache_impl

import (
	"context"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/domain/models"
)

type CacheI[K comparable, V any] interface {
	Get(key K) (value V, ok bool)
	Peek(key K) (value V, ok bool)
	Add(key K, value V) (evicted bool)
	Values() []V
}

// Cache keeps the latest delivery result per order id for the inspection
// server.
type Cache struct {
	cache CacheI[int64, models.DeliveryResult]
	log   *slog.Logger
}

func NewCache(
	cache CacheI[int64, models.DeliveryResult],
	log *slog.Logger,
) *Cache {
	return &Cache{
		cache: cache,
		log:   log,
	}
}

// NewExpirableCache backs the cache with an LRU of size entries that expire
// after ttl.
func NewExpirableCache(size int, ttl time.Duration, log *slog.Logger) *Cache {
	return NewCache(expirable.NewLRU[int64, models.DeliveryResult](size, nil, ttl), log)
}

func (c *Cache) Publish(_ context.Context, report models.Report) error {
	const op = "cache_impl.Cache.Publish"

	var evicted int
	for _, result := range report.Results {
		if c.cache.Add(result.Order, result) {
			evicted++
		}
	}

	if evicted > 0 {
		c.log.Warn("result cache is full, older results evicted",
			slog.String("op", op),
			slog.Int("evicted", evicted),
		)
	}

	return nil
}

// Result looks an order up without touching its recency.
func (c *Cache) Result(orderID int64) (models.DeliveryResult, bool) {
	return c.cache.Peek(orderID)
}

// Results returns the cached results from oldest to newest.
func (c *Cache) Results() []models.DeliveryResult {
	return c.cache.Values()
}
