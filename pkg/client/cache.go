package client

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Key identifies a cached query as an ordered tuple of strings, e.g.
// {"vessels"} or {"inventory", "items", vesselID}.
type Key []string

// String joins the tuple for use as a flat map key.
func (k Key) String() string { return strings.Join(k, "/") }

// HasPrefix reports whether the key starts with the given prefix tuple.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i, p := range prefix {
		if k[i] != p {
			return false
		}
	}
	return true
}

// Entry is the observable state of one cached query.
type Entry struct {
	Data      any
	Err       error
	Fetching  bool
	FetchedAt time.Time
}

// FetchFunc loads the value for a key.
type FetchFunc func(ctx context.Context) (any, error)

type cacheEntry struct {
	data      any
	err       error
	fetching  bool
	fetchedAt time.Time
}

// Cache is a keyed query cache with request deduplication and
// stale-while-revalidate semantics.
type Cache struct {
	freshFor time.Duration

	mu      sync.Mutex
	entries map[string]*cacheEntry
	subs    []*subscription
	group   singleflight.Group
}

type subscription struct {
	prefix Key
	ch     chan Key
}

// NewCache creates a cache whose entries are considered fresh for the given
// duration. Zero means every hit triggers a background revalidation.
func NewCache(freshFor time.Duration) *Cache {
	return &Cache{
		freshFor: freshFor,
		entries:  make(map[string]*cacheEntry),
	}
}

// Fetch returns the value for key. Concurrent fetches of the same key share
// one call. A cached value is returned immediately; when it is older than the
// freshness window a revalidation is kicked off in the background.
func (c *Cache) Fetch(ctx context.Context, key Key, fn FetchFunc) (any, error) {
	ks := key.String()

	c.mu.Lock()
	e, ok := c.entries[ks]
	if ok && e.err == nil && !e.fetchedAt.IsZero() {
		stale := time.Since(e.fetchedAt) > c.freshFor
		data := e.data
		c.mu.Unlock()
		if stale {
			go c.revalidate(key, fn)
		}
		return data, nil
	}
	c.mu.Unlock()

	return c.load(ctx, key, fn)
}

// Get returns the current state of a key without fetching.
func (c *Cache) Get(key Key) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key.String()]
	if !ok {
		return Entry{}, false
	}
	return Entry{Data: e.data, Err: e.err, Fetching: e.fetching, FetchedAt: e.fetchedAt}, true
}

// Invalidate removes every entry whose key starts with the given prefix and
// notifies matching subscribers.
func (c *Cache) Invalidate(prefix Key) {
	c.mu.Lock()
	var invalidated []Key
	for ks := range c.entries {
		k := Key(strings.Split(ks, "/"))
		if k.HasPrefix(prefix) {
			delete(c.entries, ks)
			invalidated = append(invalidated, k)
		}
	}
	subs := make([]*subscription, len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, k := range invalidated {
		for _, s := range subs {
			if k.HasPrefix(s.prefix) {
				select {
				case s.ch <- k:
				default:
					// Slow subscriber; drop rather than block.
				}
			}
		}
	}
}

// Subscribe returns a channel that receives the key of every invalidated
// entry under the given prefix.
func (c *Cache) Subscribe(prefix Key) <-chan Key {
	ch := make(chan Key, 16)
	c.mu.Lock()
	c.subs = append(c.subs, &subscription{prefix: prefix, ch: ch})
	c.mu.Unlock()
	return ch
}

func (c *Cache) load(ctx context.Context, key Key, fn FetchFunc) (any, error) {
	ks := key.String()

	c.mu.Lock()
	e, ok := c.entries[ks]
	if !ok {
		e = &cacheEntry{}
		c.entries[ks] = e
	}
	e.fetching = true
	c.mu.Unlock()

	data, err, _ := c.group.Do(ks, func() (any, error) {
		return fn(ctx)
	})

	c.mu.Lock()
	// The entry may have been invalidated mid-flight; only record the
	// result on the live entry.
	if cur, ok := c.entries[ks]; ok && cur == e {
		e.fetching = false
		e.err = err
		if err == nil {
			e.data = data
			e.fetchedAt = time.Now()
		}
	}
	c.mu.Unlock()

	return data, err
}

func (c *Cache) revalidate(key Key, fn FetchFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_, _ = c.load(ctx, key, fn)
}
