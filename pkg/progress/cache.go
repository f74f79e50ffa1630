package progress

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"agrotrack/pkg/lifecycle"
	"agrotrack/pkg/metrics"
)

type cacheKey struct {
	planted int64
	harvest int64
	status  lifecycle.Status
	today   int64
}

// Cache memoises Compute at day resolution: now is truncated to midnight in
// its own location before computing, so every lookup on the same day for the
// same record hits the same entry.
//
// Results are therefore those of Compute at midnight, not at the time of the
// call. Within a day they can trail Direct: a one-day cycle queried at 18:00
// on its planting day reads 0% (initial) here and 75% (maturing) uncached.
// Use Direct when intra-day precision matters.
type Cache struct {
	lru *expirable.LRU[cacheKey, Progress]
}

// NewCache creates a cache holding at most size entries for ttl each.
func NewCache(size int, ttl time.Duration) *Cache {
	return &Cache{lru: expirable.NewLRU[cacheKey, Progress](size, nil, ttl)}
}

func (c *Cache) Progress(in Input, now time.Time) Progress {
	today := StartOfDay(now)
	k := cacheKey{
		planted: in.PlantedDate.UnixNano(),
		harvest: in.EstimatedHarvestDate.UnixNano(),
		status:  in.Status,
		today:   today.Unix(),
	}
	if p, ok := c.lru.Get(k); ok {
		metrics.ProgressCacheLookups.WithLabelValues(metrics.ResultHit).Inc()
		return p
	}
	metrics.ProgressCacheLookups.WithLabelValues(metrics.ResultMiss).Inc()
	p := Compute(in, today)
	c.lru.Add(k, p)
	return p
}

func (c *Cache) Len() int { return c.lru.Len() }

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
