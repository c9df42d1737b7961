package orchestrate

import (
	"context"
	"time"

	"HealthPulse/internal/cache"
	"HealthPulse/internal/session"
)

// staleAfter is how old the last full load may be before a resume
// triggers a fresh one.
const staleAfter = 5 * time.Minute

// Controller replaces the host framework's page lifecycle hooks with
// explicit method calls. OnEnter always loads; OnResume only when the
// last full load is stale.
type Controller struct {
	Loader *Loader
	Cache  *cache.Cache
	Store  *session.Store
	Now    func() time.Time
}

// NewController wires a controller over an existing loader.
func NewController(loader *Loader, c *cache.Cache, store *session.Store) *Controller {
	return &Controller{Loader: loader, Cache: c, Store: store, Now: time.Now}
}

// OnEnter handles first entry to the dashboard: always starts a load
// cycle, serving cached payloads where still fresh.
func (c *Controller) OnEnter(ctx context.Context) (Snapshot, error) {
	return c.Loader.LoadAll(ctx, false)
}

// OnResume handles returning to an already-loaded dashboard. A load is
// only started when the last full cycle is older than the staleness
// threshold; otherwise the current snapshot is returned as-is.
func (c *Controller) OnResume(ctx context.Context) (Snapshot, error) {
	last := c.Store.LastRefresh()
	if !last.IsZero() && c.Now().Sub(last) < staleAfter {
		return c.Loader.Snapshot(), nil
	}
	return c.Loader.LoadAll(ctx, false)
}

// ForceRefresh handles an explicit user refresh: the cache is emptied so
// every source is re-fetched.
func (c *Controller) ForceRefresh(ctx context.Context) (Snapshot, error) {
	c.Cache.ClearAll()
	return c.Loader.LoadAll(ctx, true)
}
