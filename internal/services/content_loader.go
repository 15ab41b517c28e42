package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/aulalink/activity-service/internal/cache"
	"github.com/aulalink/activity-service/internal/models"
	"github.com/aulalink/activity-service/internal/repositories"
)

// ContentLoader upgrades stripped activities to their full, content-bearing
// form. Grading and editing must go through it: a stripped aggregate is
// never graded, and a load that resolves after its viewer moved on to a
// different activity is discarded instead of being applied to the wrong one.
// Navigation state is tracked per viewer, so one reader cannot invalidate
// another reader's in-flight load.
type ContentLoader struct {
	repo   repositories.Repository
	cache  *cache.ContentCache
	logger *slog.Logger

	mu      sync.Mutex
	viewing map[string]uint // activity each viewer is looking at
}

func NewContentLoader(repo repositories.Repository, contentCache *cache.ContentCache, logger *slog.Logger) *ContentLoader {
	return &ContentLoader{
		repo:    repo,
		cache:   contentCache,
		logger:  logger,
		viewing: make(map[string]uint),
	}
}

// SetViewing records which activity a viewer is working on. Navigating away
// (a new id, or 0) invalidates that viewer's in-flight loads and nobody
// else's.
func (l *ContentLoader) SetViewing(viewerID string, activityID uint) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if activityID == 0 {
		delete(l.viewing, viewerID)
		return
	}
	l.viewing[viewerID] = activityID
}

func (l *ContentLoader) isViewing(viewerID string, activityID uint) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.viewing[viewerID] == activityID
}

// FullActivity returns the activity with a full (non-stripped) aggregate,
// from cache when possible. Fetch failures surface as IOError; callers fall
// back to the stripped shell and must not grade against it.
func (l *ContentLoader) FullActivity(ctx context.Context, activityID uint) (*models.Activity, error) {
	activity, err := l.repo.Activity().GetByIDWithContent(ctx, activityID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrActivityNotFound
		}
		return nil, NewIOError("fetch activity detail", err)
	}

	if activity.InteractiveData.IsStripped() {
		// The detail read is contracted to return full content; a stripped
		// result here is a persistence fault, not a domain state.
		return nil, NewIOError("fetch activity detail", ErrContentStripped)
	}

	if l.cache != nil && activity.InteractiveData != nil {
		if err := l.cache.Put(ctx, activityID, activity.InteractiveData); err != nil {
			l.logger.Warn("failed to cache full content", "activity_id", activityID, "error", err)
		}
	}

	return activity, nil
}

// FullAggregate returns just the content aggregate, preferring the cache.
func (l *ContentLoader) FullAggregate(ctx context.Context, activityID uint) (*models.ContentAggregate, error) {
	if l.cache != nil {
		agg, err := l.cache.Get(ctx, activityID)
		if err == nil {
			return agg, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			l.logger.Warn("content cache read failed", "activity_id", activityID, "error", err)
		}
	}

	activity, err := l.FullActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if activity.InteractiveData == nil {
		return nil, ErrActivityNoContent
	}
	return activity.InteractiveData, nil
}

// LoadForViewer performs the detail-view upgrade with the stale-response
// guard: if this viewer navigated to a different activity while the fetch
// was in flight, the result is discarded and ErrStaleContentLoad returned.
// An empty viewerID has no navigation state to go stale against, so the
// guard is skipped.
func (l *ContentLoader) LoadForViewer(ctx context.Context, viewerID string, activityID uint) (*models.Activity, error) {
	if viewerID != "" {
		l.SetViewing(viewerID, activityID)
	}

	activity, err := l.FullActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}

	if viewerID != "" && !l.isViewing(viewerID, activityID) {
		l.logger.Info("discarding stale content load", "viewer_id", viewerID, "activity_id", activityID)
		return nil, ErrStaleContentLoad
	}
	return activity, nil
}

// Invalidate drops any cached full aggregate for the activity. Called on
// every save so a later upgrade cannot resurrect pre-edit content.
func (l *ContentLoader) Invalidate(ctx context.Context, activityID uint) {
	if l.cache == nil {
		return
	}
	if err := l.cache.Invalidate(ctx, activityID); err != nil {
		l.logger.Warn("content cache invalidation failed", "activity_id", activityID, "error", err)
	}
}
