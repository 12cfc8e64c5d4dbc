// Package flags caches operational site flags fetched from the record
// store, so hot paths never pay a database round trip per request.
package flags

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/slopewise/avalanche-advisory/internal/observability"
)

// Source provides the current flag set. Implemented by the postgres store.
type Source interface {
	SiteFlags(ctx context.Context) (map[string]bool, error)
}

// Cache wraps a Source with a TTL. A lookup past the deadline refreshes the
// snapshot; if the refresh fails, the previous snapshot is served stale.
type Cache struct {
	source  Source
	ttl     time.Duration
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics

	mu       sync.Mutex
	snapshot map[string]bool
	expires  time.Time
}

func NewCache(source Source, ttl time.Duration, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Cache {
	return &Cache{
		source:  source,
		ttl:     ttl,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
	}
}

// Enabled reports whether the named flag is set. Unknown flags, and any flag
// on an unprimed cache whose first refresh fails, read as false.
func (c *Cache) Enabled(ctx context.Context, name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot == nil || c.clock.Now().After(c.expires) {
		if err := c.refreshLocked(ctx); err != nil {
			c.logger.Warn("flag refresh failed, serving stale snapshot",
				slog.String("flag", name),
				slog.String("error", err.Error()))
		}
	}

	return c.snapshot[name]
}

// Refresh forces a reload regardless of the deadline.
func (c *Cache) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshLocked(ctx)
}

func (c *Cache) refreshLocked(ctx context.Context) error {
	snapshot, err := c.source.SiteFlags(ctx)
	if err != nil {
		c.metrics.FlagRefreshes.WithLabelValues("error").Inc()
		return fmt.Errorf("fetch site flags: %w", err)
	}

	c.metrics.FlagRefreshes.WithLabelValues("ok").Inc()
	c.snapshot = snapshot
	c.expires = c.clock.Now().Add(c.ttl)
	return nil
}
