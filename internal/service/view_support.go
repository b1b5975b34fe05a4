package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/lab-portal-api/internal/models"
	appErrors "github.com/noah-isme/lab-portal-api/pkg/errors"
	"github.com/noah-isme/lab-portal-api/pkg/query"
)

// Cache key namespaces for backend record lists.
const (
	cacheNotifications = "notifications"
	cacheSubmissions   = "submissions"
	cacheVenues        = "venues"
	cacheVenueNames    = "venue-names"
	cacheSupervisions  = "supervisions"
	cacheFaculty       = "faculty"
)

func cacheKey(parts ...string) string {
	return strings.Join(parts, ":")
}

// cachedList serves a backend list from cache when possible and stores fresh fetches.
// Cache failures are logged and fall through to the backend.
func cachedList[T any](ctx context.Context, cache *CacheService, logger *zap.Logger, key string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	var rows []T
	if hit, err := cache.Get(ctx, key, &rows); err == nil && hit {
		return rows, nil
	}
	rows, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if err := cache.Set(ctx, key, rows, 0); err != nil {
		logger.Debug("cache store skipped", zap.String("key", key), zap.Error(err))
	}
	return rows, nil
}

func invalidate(ctx context.Context, cache *CacheService, patterns ...string) {
	_ = cache.Invalidate(ctx, patterns...)
}

func requireActor(actor *models.Actor) error {
	if actor == nil || actor.ID == "" {
		return appErrors.Clone(appErrors.ErrUnauthorized, "authentication required")
	}
	return nil
}

func sortFrom(key, order, defaultKey string) query.SortSpec {
	key = strings.TrimSpace(key)
	if key == "" {
		key = defaultKey
	}
	return query.SortSpec{Key: key, Direction: query.ParseDirection(order)}
}
