package collaborator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	DefaultListTTL = 300 * time.Second
	maxCachedPage  = 10
)

func ListCacheKey(ownerID uint, page int) string {
	return fmt.Sprintf("collaborators_user_%d_page_%d", ownerID, page)
}

// ListingCache wraps the injected cache with the listing key scheme.
// Failures are logged and behave like misses.
//
// Every Invalidate bumps a per-owner generation. A page read from the database is
// only stored when no invalidation happened since the read started.
type ListingCache struct {
	cache    ListCache
	ttl      time.Duration
	logger   logrus.FieldLogger
	observer Observer

	mu          sync.Mutex
	generations map[uint]uint64
}

func NewListingCache(cache ListCache, ttl time.Duration, logger logrus.FieldLogger, observer Observer) *ListingCache {
	if ttl <= 0 {
		ttl = DefaultListTTL
	}
	if observer == nil {
		observer = noopObserver{}
	}
	return &ListingCache{
		cache:       cache,
		ttl:         ttl,
		logger:      logger,
		observer:    observer,
		generations: make(map[uint]uint64),
	}
}

func (c *ListingCache) get(ctx context.Context, ownerID uint, page int) ([]byte, bool) {
	if page > maxCachedPage {
		return nil, false
	}
	raw, ok, err := c.cache.Get(ctx, ListCacheKey(ownerID, page))
	if err != nil {
		c.logger.WithError(err).WithField("user_id", ownerID).Warn("listing cache read failed")
		ok = false
	}
	c.observer.ObserveCache(ok)
	return raw, ok
}

func (c *ListingCache) generation(ownerID uint) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[ownerID]
}

// set holds the lock through the write so a concurrent Invalidate deletes after it.
func (c *ListingCache) set(ctx context.Context, ownerID uint, page int, readAt uint64, raw []byte) {
	if page > maxCachedPage {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[ownerID] != readAt {
		return
	}
	if err := c.cache.Set(ctx, ListCacheKey(ownerID, page), raw, c.ttl); err != nil {
		c.logger.WithError(err).WithField("user_id", ownerID).Warn("listing cache write failed")
	}
}

func (c *ListingCache) Invalidate(ctx context.Context, ownerID uint) {
	c.mu.Lock()
	c.generations[ownerID]++
	c.mu.Unlock()

	keys := make([]string, 0, maxCachedPage)
	for page := 1; page <= maxCachedPage; page++ {
		keys = append(keys, ListCacheKey(ownerID, page))
	}
	if err := c.cache.Delete(ctx, keys...); err != nil {
		c.logger.WithError(err).WithField("user_id", ownerID).Error("listing cache invalidation failed")
	}
}
