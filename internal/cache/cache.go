// Package cache provides the read-through cache in front of the playground
// store. Entries are served while fresh, refetched when stale, and the
// fixed sample data set steps in when the remote source fails or is empty
// so callers always have something to show. Fallback data is never cached
// as authoritative: the next call retries the remote source.
package cache

import (
	"context"
	"sync"
	"time"

	"parcacote/internal/domain/playgrounds"
)

// DefaultTTL is the validity window for cached entries.
const DefaultTTL = 5 * time.Minute

// CollectionFetcher loads every visible playground from the remote source.
type CollectionFetcher func(ctx context.Context) ([]playgrounds.Playground, error)

// DetailFetcher loads one playground by id from the remote source.
type DetailFetcher func(ctx context.Context, id int64) (*playgrounds.Playground, error)

// FallbackProvider supplies the fixed sample set.
type FallbackProvider func() []playgrounds.Playground

type entry struct {
	data []playgrounds.Playground
	at   time.Time
}

type detailEntry struct {
	data playgrounds.Playground
	at   time.Time
}

// PlaygroundCache is an explicit cache object with defined construction and
// invalidation, injected into its consumers. Writes are guarded by a mutex;
// concurrent misses are not coalesced, each runs its own fetch and the last
// writer wins (idempotent, same data).
type PlaygroundCache struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	fetchAll CollectionFetcher
	fetchOne DetailFetcher
	fallback FallbackProvider

	collection *entry
	details    map[int64]detailEntry
}

// Option configures a PlaygroundCache.
type Option func(*PlaygroundCache)

// WithTTL overrides the validity window.
func WithTTL(ttl time.Duration) Option {
	return func(c *PlaygroundCache) { c.ttl = ttl }
}

// WithClock injects a clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *PlaygroundCache) { c.now = now }
}

func New(fetchAll CollectionFetcher, fetchOne DetailFetcher, fallback FallbackProvider, opts ...Option) *PlaygroundCache {
	c := &PlaygroundCache{
		ttl:      DefaultTTL,
		now:      time.Now,
		fetchAll: fetchAll,
		fetchOne: fetchOne,
		fallback: fallback,
		details:  make(map[int64]detailEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *PlaygroundCache) fresh(at time.Time) bool {
	return c.now().Sub(at) < c.ttl
}

// GetAll returns the playground collection. The second return reports
// whether the result is fallback sample data rather than remote data.
//
// A fresh entry is served without touching the remote source. On a miss the
// remote source is consulted; on failure or an empty result a stale entry
// is preferred, then the fallback set. A canceled context abandons the
// result instead of caching it.
func (c *PlaygroundCache) GetAll(ctx context.Context) ([]playgrounds.Playground, bool, error) {
	c.mu.Lock()
	if c.collection != nil && c.fresh(c.collection.at) {
		data := copyList(c.collection.data)
		c.mu.Unlock()
		return data, false, nil
	}
	stale := c.collection
	c.mu.Unlock()

	data, err := c.fetchAll(ctx)
	if ctx.Err() != nil {
		// Consumer is gone; discard rather than apply.
		return nil, false, ctx.Err()
	}

	if err != nil || len(data) == 0 {
		if stale != nil {
			return copyList(stale.data), false, nil
		}
		return c.fallback(), true, nil
	}

	c.mu.Lock()
	c.collection = &entry{data: data, at: c.now()}
	c.mu.Unlock()

	return copyList(data), false, nil
}

// GetByID returns one playground. A fresh detail entry wins; otherwise a
// fresh collection entry is searched before a dedicated remote call, to
// avoid redundant requests. The fallback set is the last resort.
func (c *PlaygroundCache) GetByID(ctx context.Context, id int64) (*playgrounds.Playground, bool, error) {
	c.mu.Lock()
	if d, ok := c.details[id]; ok && c.fresh(d.at) {
		p := d.data
		c.mu.Unlock()
		return &p, false, nil
	}
	if c.collection != nil && c.fresh(c.collection.at) {
		for _, p := range c.collection.data {
			if p.ID == id {
				c.details[id] = detailEntry{data: p, at: c.now()}
				out := p
				c.mu.Unlock()
				return &out, false, nil
			}
		}
	}
	c.mu.Unlock()

	p, err := c.fetchOne(ctx, id)
	if ctx.Err() != nil {
		return nil, false, ctx.Err()
	}

	if err != nil || p == nil {
		for _, s := range c.fallback() {
			if s.ID == id {
				out := s
				return &out, true, nil
			}
		}
		if err == nil {
			err = playgrounds.ErrNotFound
		}
		return nil, false, err
	}

	c.mu.Lock()
	c.details[id] = detailEntry{data: *p, at: c.now()}
	c.mu.Unlock()

	out := *p
	return &out, false, nil
}

// Invalidate drops both cache levels. Called after any mutation so the
// next read sees the write.
func (c *PlaygroundCache) Invalidate() {
	c.mu.Lock()
	c.collection = nil
	c.details = make(map[int64]detailEntry)
	c.mu.Unlock()
}

func copyList(in []playgrounds.Playground) []playgrounds.Playground {
	out := make([]playgrounds.Playground, len(in))
	copy(out, in)
	return out
}
