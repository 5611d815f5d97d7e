package cache

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"TickerBoard/internal/collector"
	"TickerBoard/internal/model"
)

// DefaultTTL matches the dashboard refresh window.
const DefaultTTL = time.Hour

// Key identifies one acquisition: ticker plus start day. A zero start keeps
// the zero date so the lower-level default is resolved by the source.
type Key struct {
	Ticker string
	Start  string
}

func keyFor(ticker string, start time.Time) Key {
	k := Key{Ticker: ticker}
	if !start.IsZero() {
		k.Start = model.Day(start).Format(model.DateLayout)
	}
	return k
}

// CachedSource decorates a collector.Source. Successful results, including
// empty series, are kept for the TTL; failures are never cached.
type CachedSource struct {
	next  collector.Source
	store *TTL[Key, model.Series]
}

// NewCachedSource wraps next with a TTL cache.
func NewCachedSource(next collector.Source, ttl time.Duration) *CachedSource {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CachedSource{next: next, store: NewTTL[Key, model.Series](ttl)}
}

func (c *CachedSource) Acquire(ctx context.Context, ticker string, start time.Time) (model.Series, error) {
	key := keyFor(ticker, start)
	if s, ok := c.store.Get(key); ok {
		log.Debug().Str("ticker", ticker).Str("start", key.Start).Msg("cache hit")
		return clone(s), nil
	}

	s, err := c.next.Acquire(ctx, ticker, start)
	if err != nil {
		return nil, err
	}
	c.store.Set(key, clone(s))
	return s, nil
}

// Purge drops expired entries.
func (c *CachedSource) Purge() int { return c.store.Purge() }

// Len reports the number of stored entries.
func (c *CachedSource) Len() int { return c.store.Len() }

// clone keeps callers from sharing a backing array with the cache.
func clone(s model.Series) model.Series {
	out := make(model.Series, len(s))
	copy(out, s)
	return out
}
