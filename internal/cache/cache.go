package cache

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// FetchFunc performs the underlying network request for a cache miss.
type FetchFunc func(ctx context.Context, path string, params map[string]string) ([]byte, error)

// ttlRule maps an endpoint path (exact or prefix) to its TTL.
type ttlRule struct {
	Path string
	TTL  time.Duration
}

// Per-endpoint TTLs. Exact match wins, then longest prefix, then the
// default. Wearable daily records change rarely (10m); the dashboard and
// fine-grained detail are fresher (5m).
var endpointTTLs = []ttlRule{
	{"/api/v1/dashboard/today", 5 * time.Minute},
	{"/api/v1/oura/sleep/grouped", 10 * time.Minute},
	{"/api/v1/oura/sleep", 10 * time.Minute},
	{"/api/v1/oura/sleep-debt", 10 * time.Minute},
	{"/api/v1/oura/readiness", 10 * time.Minute},
	{"/api/v1/oura/activity", 10 * time.Minute},
	{"/api/v1/oura/stress", 10 * time.Minute},
	{"/api/v1/oura/spo2", 10 * time.Minute},
	{"/api/v1/oura/heartrate-detail", 5 * time.Minute},
	{"/api/v1/training", 5 * time.Minute},
	{"/api/v1/trends", 10 * time.Minute},
	{"/api/v1/ai/recommendation", 10 * time.Minute},
}

type entry struct {
	payload   []byte
	fetchedAt time.Time
}

// Cache is an in-memory request cache with per-endpoint TTLs and in-flight
// deduplication. It has no persistence: a cold start begins empty. Each
// session owns its own instance; there is no package-level table.
type Cache struct {
	fetch      FetchFunc
	defaultTTL time.Duration
	now        func() time.Time

	mu      sync.Mutex
	entries map[string]entry
	flight  singleflight.Group
}

// New creates a Cache backed by the given fetch function.
func New(fetch FetchFunc, defaultTTL time.Duration) *Cache {
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	return &Cache{
		fetch:      fetch,
		defaultTTL: defaultTTL,
		now:        time.Now,
		entries:    make(map[string]entry),
	}
}

// Key builds the normalized cache key: method:path?sortedParamsJSON.
// json.Marshal emits map keys in sorted order, which makes the key stable
// regardless of caller-side param ordering.
func Key(method, path string, params map[string]string) string {
	if len(params) == 0 {
		return method + ":" + path
	}
	b, _ := json.Marshal(params)
	return method + ":" + path + "?" + string(b)
}

// TTLFor resolves the TTL for a path: exact match first, else the longest
// matching prefix, else the default.
func (c *Cache) TTLFor(path string) time.Duration {
	best := -1
	ttl := c.defaultTTL
	for _, r := range endpointTTLs {
		if r.Path == path {
			return r.TTL
		}
		if strings.HasPrefix(path, r.Path) && len(r.Path) > best {
			best = len(r.Path)
			ttl = r.TTL
		}
	}
	return ttl
}

// Get returns the cached payload when fresh, otherwise fetches it. A
// forced refresh skips the freshness check but still joins an in-flight
// request for the same key, so concurrent callers share one network call.
// Failed fetches are not cached; the shared error reaches every waiter.
func (c *Cache) Get(ctx context.Context, path string, params map[string]string, forceRefresh bool) ([]byte, error) {
	key := Key("GET", path, params)
	ttl := c.TTLFor(path)

	if !forceRefresh {
		c.mu.Lock()
		if e, ok := c.entries[key]; ok && c.now().Sub(e.fetchedAt) < ttl {
			payload := e.payload
			c.mu.Unlock()
			return payload, nil
		}
		c.mu.Unlock()
	}

	v, err, _ := c.flight.Do(key, func() (any, error) {
		payload, err := c.fetch(ctx, path, params)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = entry{payload: payload, fetchedAt: c.now()}
		c.mu.Unlock()
		return payload, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Clear removes the entry for one (path, params) pair.
func (c *Cache) Clear(path string, params map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, Key("GET", path, params))
}

// ClearAll empties the store. Used by user-initiated refresh actions.
func (c *Cache) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Len reports the number of cached entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
