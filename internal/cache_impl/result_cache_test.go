package cache_impl

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/domain/models"
	"github.com/tumbleweedd/shopify_klaviyo_sync/pkg/logger"
)

func report(orders ...int64) models.Report {
	var r models.Report
	for _, id := range orders {
		r.Results = append(r.Results, models.DeliveryResult{Order: id, OrderOutcome: models.Outcome{Success: true}})
	}

	return r
}

func TestCachePublishAndLookup(t *testing.T) {
	c := NewExpirableCache(10, time.Hour, logger.NewDiscardLogger())

	require.NoError(t, c.Publish(context.Background(), report(1, 2, 3)))

	result, ok := c.Result(2)
	require.True(t, ok)
	require.Equal(t, int64(2), result.Order)

	_, ok = c.Result(4)
	require.False(t, ok)

	var orders []int64
	for _, r := range c.Results() {
		orders = append(orders, r.Order)
	}
	require.Equal(t, []int64{1, 2, 3}, orders)
}

func TestCacheEvictsOldest(t *testing.T) {
	c := NewExpirableCache(2, time.Hour, logger.NewDiscardLogger())

	require.NoError(t, c.Publish(context.Background(), report(1, 2, 3)))

	_, ok := c.Result(1)
	require.False(t, ok)
	require.Len(t, c.Results(), 2)
}

func TestCacheLaterRunReplacesResult(t *testing.T) {
	c := NewExpirableCache(10, time.Hour, logger.NewDiscardLogger())

	require.NoError(t, c.Publish(context.Background(), report(1)))

	failed := models.Report{Results: []models.DeliveryResult{{Order: 1, OrderOutcome: models.Outcome{Error: "timeout"}}}}
	require.NoError(t, c.Publish(context.Background(), failed))

	result, ok := c.Result(1)
	require.True(t, ok)
	require.Equal(t, "timeout", result.OrderOutcome.Error)
}

func TestCacheLookupKeepsListOrder(t *testing.T) {
	c := NewExpirableCache(10, time.Hour, logger.NewDiscardLogger())

	require.NoError(t, c.Publish(context.Background(), report(1, 2, 3)))

	for _, id := range []int64{1, 2} {
		_, ok := c.Result(id)
		require.True(t, ok)
	}

	var orders []int64
	for _, r := range c.Results() {
		orders = append(orders, r.Order)
	}
	require.Equal(t, []int64{1, 2, 3}, orders)
}

func TestCacheLookupDoesNotProtectFromEviction(t *testing.T) {
	c := NewExpirableCache(2, time.Hour, logger.NewDiscardLogger())

	require.NoError(t, c.Publish(context.Background(), report(1, 2)))

	_, ok := c.Result(1)
	require.True(t, ok)

	require.NoError(t, c.Publish(context.Background(), report(3)))

	_, ok = c.Result(1)
	require.False(t, ok)
	_, ok = c.Result(2)
	require.True(t, ok)
}
