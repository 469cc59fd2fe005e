package querycache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"medcare-portal/config"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Result is what a view sees for one query. Data holds the last good value
// even when Err is set.
type Result[T any] struct {
	Data      T
	IsLoading bool
	Err       error
	Stale     bool
	FromCache bool
}

type Option func(*fetchOptions)

type fetchOptions struct {
	enabled bool
}

// Enabled gates the fetch. A disabled query never calls its fetch function.
func Enabled(enabled bool) Option {
	return func(o *fetchOptions) {
		o.enabled = enabled
	}
}

type entry struct {
	key        Key
	data       any
	hasData    bool
	err        error
	updatedAt  time.Time
	lastUsed   time.Time
	outdated   bool
	generation uint64
}

// Cache is a per-process query cache keyed by Key. It is safe for
// concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	group   singleflight.Group

	log          *logrus.Logger
	staleAfter   time.Duration
	fetchTimeout time.Duration
	idleTTL      time.Duration
	now          func() time.Time
}

func New(cfg config.CacheConfig, log *logrus.Logger) *Cache {
	return &Cache{
		entries:      make(map[string]*entry),
		log:          log,
		staleAfter:   cfg.StaleAfter,
		fetchTimeout: cfg.FetchTimeout,
		idleTTL:      cfg.IdleTTL,
		now:          time.Now,
	}
}

// fresh reports whether e can be served without refetching. Caller holds mu.
func (c *Cache) fresh(e *entry) bool {
	if !e.hasData || e.outdated || e.err != nil {
		return false
	}
	if c.staleAfter > 0 && c.now().Sub(e.updatedAt) >= c.staleAfter {
		return false
	}
	return true
}

// Fetch returns the cached value for key, or runs fetch once for every
// concurrent caller of the same key and generation. A caller whose ctx ends
// first gets IsLoading while the shared fetch keeps going.
func Fetch[T any](ctx context.Context, c *Cache, key Key, fetch func(ctx context.Context) (T, error), opts ...Option) Result[T] {
	options := fetchOptions{enabled: true}
	for _, opt := range opts {
		opt(&options)
	}

	c.mu.Lock()
	e, ok := c.entries[key.String()]
	if !ok {
		e = &entry{key: key}
		c.entries[key.String()] = e
	}
	e.lastUsed = c.now()
	if c.fresh(e) {
		data, _ := e.data.(T)
		c.mu.Unlock()
		return Result[T]{Data: data, FromCache: true}
	}

	var previous Result[T]
	if e.hasData {
		previous.Data, _ = e.data.(T)
		previous.FromCache = true
		previous.Stale = true
	}

	if !options.enabled {
		c.mu.Unlock()
		return previous
	}

	generation := e.generation

	// Joining the flight under mu means a caller either sees the stored
	// result or shares the fetch that will store it.
	flightKey := fmt.Sprintf("%s#%d", key.String(), generation)
	ch := c.group.DoChan(flightKey, func() (any, error) {
		fetchCtx := context.WithoutCancel(ctx)
		if c.fetchTimeout > 0 {
			var cancel context.CancelFunc
			fetchCtx, cancel = context.WithTimeout(fetchCtx, c.fetchTimeout)
			defer cancel()
		}

		data, err := fetch(fetchCtx)
		c.store(key, generation, data, err)
		return data, err
	})
	c.mu.Unlock()

	select {
	case <-ctx.Done():
		previous.IsLoading = true
		return previous
	case res := <-ch:
		if res.Err != nil {
			previous.Err = res.Err
			return previous
		}
		data, _ := res.Val.(T)
		return Result[T]{Data: data}
	}
}

// store records a fetch outcome unless an invalidation happened after the
// fetch started.
func (c *Cache) store(key Key, generation uint64, data any, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key.String()]
	if !ok {
		e = &entry{key: key}
		c.entries[key.String()] = e
	}
	if e.generation != generation {
		c.log.Debugf("Discarding superseded result for %s (generation %d, current %d)", key, generation, e.generation)
		return
	}

	if err != nil {
		c.log.Warnf("Failed to fetch %s: %+v", key, err)
		e.err = err
		return
	}

	e.data = data
	e.hasData = true
	e.err = nil
	e.outdated = false
	e.updatedAt = c.now()
	e.lastUsed = e.updatedAt
}

// Invalidate marks key outdated so its next read refetches. Fetches already
// in flight for key can no longer write their result.
func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.invalidateLocked(key)
	c.log.Debugf("Invalidated %s", key)
}

// InvalidatePrefix invalidates every cached key of one family.
func (c *Cache) InvalidatePrefix(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var count int
	for _, e := range c.entries {
		if e.key.inFamily(name) {
			c.invalidateLocked(e.key)
			count++
		}
	}
	c.log.Debugf("Invalidated %d keys of %s", count, name)
}

func (c *Cache) invalidateLocked(key Key) {
	e, ok := c.entries[key.String()]
	if !ok {
		e = &entry{key: key}
		c.entries[key.String()] = e
	}
	e.generation++
	e.outdated = true
	e.lastUsed = c.now()
}

// Prune drops entries nobody has read or written for idleFor. Entries used
// within the fetch timeout are kept since a fetch may still be running for
// them.
func (c *Cache) Prune(idleFor time.Duration) int {
	if idleFor < c.fetchTimeout {
		idleFor = c.fetchTimeout
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	var pruned int
	for k, e := range c.entries {
		if now.Sub(e.lastUsed) >= idleFor {
			delete(c.entries, k)
			pruned++
		}
	}
	if pruned > 0 {
		c.log.Debugf("Pruned %d idle cache entries", pruned)
	}
	return pruned
}

// RunJanitor prunes idle entries until ctx ends. It does nothing when no
// idle TTL is configured.
func (c *Cache) RunJanitor(ctx context.Context) {
	if c.idleTTL <= 0 {
		return
	}

	ticker := time.NewTicker(c.idleTTL / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Prune(c.idleTTL)
		}
	}
}
