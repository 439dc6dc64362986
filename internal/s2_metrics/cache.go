package s2_metrics

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/pkg/metrics"
)

// RunCache memoizes records by identifier for the lifetime of one run.
// Concurrent requests for the same identifier share a single extraction.
// A new cache is created per Build call and never outlives it.
type RunCache struct {
	group   singleflight.Group
	mu      sync.RWMutex
	records map[string]*contracts.MetricRecord
	metrics *metrics.Registry
}

// NewRunCache creates an empty run-scoped cache
func NewRunCache(reg *metrics.Registry) *RunCache {
	return &RunCache{
		records: make(map[string]*contracts.MetricRecord),
		metrics: reg,
	}
}

// Get returns the cached record for symbol or computes it with fetch
func (c *RunCache) Get(symbol string, fetch func() *contracts.MetricRecord) *contracts.MetricRecord {
	c.mu.RLock()
	rec, ok := c.records[symbol]
	c.mu.RUnlock()
	if ok {
		c.metrics.ObserveCache(true)
		return rec
	}

	v, _, _ := c.group.Do(symbol, func() (interface{}, error) {
		// a previous flight may have finished between the lookup and Do
		c.mu.RLock()
		rec, ok := c.records[symbol]
		c.mu.RUnlock()
		if ok {
			return rec, nil
		}

		c.metrics.ObserveCache(false)
		rec = fetch()
		c.mu.Lock()
		c.records[symbol] = rec
		c.mu.Unlock()
		return rec, nil
	})
	return v.(*contracts.MetricRecord)
}

// Len returns the number of cached identifiers
func (c *RunCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}
