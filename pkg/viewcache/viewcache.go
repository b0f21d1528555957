// Package viewcache stores rendered per-customer read views in Redis and
// drops them when a write changes what they show.
package viewcache

import (
	"context"
	"errors"
	"time"

	"github.com/mantomate/storefront-backend/pkg/config"
	"github.com/mantomate/storefront-backend/pkg/redis"
	"go.uber.org/multierr"
)

// View names a cached per-customer read.
type View string

const (
	ViewDashboard    View = "dashboard"
	ViewOrders       View = "orders"
	ViewSubscription View = "subscription"
)

// AllViews lists every cached view.
var AllViews = []View{ViewDashboard, ViewOrders, ViewSubscription}

type store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	ViewKey(view, principal string) string
}

// Invalidator drops cached views after a write.
type Invalidator interface {
	Invalidate(ctx context.Context, principal string, views ...View) error
}

// Cache reads and writes cached view bodies. A nil or disabled Cache misses
// every lookup and ignores writes.
type Cache struct {
	store   store
	ttl     time.Duration
	enabled bool
}

// New builds a cache on client. client may be nil when Redis is not configured.
func New(client *redis.Client, cfg config.CacheConfig) *Cache {
	if client == nil {
		return &Cache{}
	}
	return &Cache{store: client, ttl: cfg.TTL, enabled: cfg.Enabled}
}

// Enabled reports whether lookups can hit.
func (c *Cache) Enabled() bool {
	return c != nil && c.enabled && c.store != nil
}

// Key returns the Redis key of view for principal.
func (c *Cache) Key(view View, principal string) string {
	if c == nil || c.store == nil {
		return ""
	}
	return c.store.ViewKey(string(view), principal)
}

// Get returns the cached body and whether it was found.
func (c *Cache) Get(ctx context.Context, view View, principal string) ([]byte, bool, error) {
	if !c.Enabled() || principal == "" {
		return nil, false, nil
	}
	value, err := c.store.Get(ctx, c.Key(view, principal))
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(value), true, nil
}

// Put stores body for the configured TTL.
func (c *Cache) Put(ctx context.Context, view View, principal string, body []byte) error {
	if !c.Enabled() || principal == "" {
		return nil
	}
	return c.store.Set(ctx, c.Key(view, principal), string(body), c.ttl)
}

// Invalidate deletes the listed views of principal, or every view when none
// are listed. Each key is deleted independently and failures are combined.
func (c *Cache) Invalidate(ctx context.Context, principal string, views ...View) error {
	if c == nil || c.store == nil || principal == "" {
		return nil
	}
	if len(views) == 0 {
		views = AllViews
	}
	var err error
	for _, view := range views {
		err = multierr.Append(err, c.store.Del(ctx, c.Key(view, principal)))
	}
	return err
}
