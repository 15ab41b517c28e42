package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/aulalink/activity-service/internal/models"
)

// DefaultContentTTL bounds how long a full aggregate may be served without
// hitting the database again.
const DefaultContentTTL = 10 * time.Minute

// ContentCache keeps fully loaded content aggregates so list-view shells can
// be upgraded without refetching. Entries are evicted whenever the owning
// activity is saved.
type ContentCache struct {
	cache CacheService
	ttl   time.Duration
}

func NewContentCache(cache CacheService, ttl time.Duration) *ContentCache {
	if ttl <= 0 {
		ttl = DefaultContentTTL
	}
	return &ContentCache{cache: cache, ttl: ttl}
}

func contentKey(activityID uint) string {
	return fmt.Sprintf("activity:content:%d", activityID)
}

// Get returns the cached full aggregate, or ErrCacheMiss. Stripped
// aggregates are never stored, so a hit is always gradeable.
func (c *ContentCache) Get(ctx context.Context, activityID uint) (*models.ContentAggregate, error) {
	var agg models.ContentAggregate
	if err := c.cache.Get(ctx, contentKey(activityID), &agg); err != nil {
		return nil, err
	}
	return &agg, nil
}

// Put stores a full aggregate. Stripped shells are ignored; caching one
// would defeat the upgrade they exist to trigger.
func (c *ContentCache) Put(ctx context.Context, activityID uint, agg *models.ContentAggregate) error {
	if agg == nil || agg.IsStripped() {
		return nil
	}
	return c.cache.Set(ctx, contentKey(activityID), agg, c.ttl)
}

// Invalidate drops the cached aggregate for an activity.
func (c *ContentCache) Invalidate(ctx context.Context, activityID uint) error {
	return c.cache.Delete(ctx, contentKey(activityID))
}
