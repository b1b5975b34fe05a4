package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/lab-portal-api/internal/dto"
	"github.com/noah-isme/lab-portal-api/internal/models"
	appErrors "github.com/noah-isme/lab-portal-api/pkg/errors"
	"github.com/noah-isme/lab-portal-api/pkg/query"
	"github.com/noah-isme/lab-portal-api/pkg/timezone"
)

type notificationRepository interface {
	ListForUser(ctx context.Context, userID string) ([]models.Notification, error)
	Delete(ctx context.Context, id string) error
}

var notificationSearchFields = []string{"text", "added_by_name"}

// NotificationService serves the notification table of the portal.
type NotificationService struct {
	repo      notificationRepository
	projector *Projector
	cache     *CacheService
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewNotificationService constructs a NotificationService.
func NewNotificationService(repo notificationRepository, projector *Projector, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if projector == nil {
		projector = NewProjector(nil, nil)
	}
	return &NotificationService{repo: repo, projector: projector, cache: cache, metrics: metrics, logger: logger}
}

// List returns the actor's notifications after search, filters and sort. Without an
// explicit sort the earliest due date comes first and undated rows go last.
func (s *NotificationService) List(ctx context.Context, actor *models.Actor, req dto.NotificationListRequest) (*dto.NotificationListResult, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	q, err := s.buildQuery(req)
	if err != nil {
		return nil, err
	}

	views, err := s.views(ctx, actor)
	if err != nil {
		return nil, err
	}
	items := query.Derive(views, q)
	s.metrics.ObserveDerivedRows(cacheNotifications, len(items))

	return &dto.NotificationListResult{
		Items:         items,
		AddedByFilter: query.Distinct(views, "added_by_name"),
		Total:         len(views),
	}, nil
}

// Delete removes a notification owned by the actor. Ownership is checked before the
// backend is contacted.
func (s *NotificationService) Delete(ctx context.Context, actor *models.Actor, id string) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	rows, err := s.repo.ListForUser(ctx, actor.ID)
	if err != nil {
		return err
	}

	var target *models.Notification
	for i := range rows {
		if rows[i].ID == id {
			target = &rows[i]
			break
		}
	}
	if target == nil {
		return appErrors.Clone(appErrors.ErrNotFound, "notification not found")
	}
	if !CanMutateNotification(target, actor) {
		s.logger.Info("notification delete denied", zap.String("notification_id", id), zap.String("actor_id", actor.ID))
		return appErrors.Clone(appErrors.ErrForbidden, "You can only delete your own notifications")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	invalidate(ctx, s.cache, cacheKey(cacheNotifications, "*"))
	s.logger.Info("notification deleted", zap.String("notification_id", id), zap.String("actor_id", actor.ID))
	return nil
}

func (s *NotificationService) views(ctx context.Context, actor *models.Actor) ([]dto.NotificationView, error) {
	rows, err := cachedList(ctx, s.cache, s.logger, cacheKey(cacheNotifications, actor.ID), func(ctx context.Context) ([]models.Notification, error) {
		return s.repo.ListForUser(ctx, actor.ID)
	})
	if err != nil {
		return nil, err
	}
	views := make([]dto.NotificationView, 0, len(rows))
	for _, row := range rows {
		views = append(views, s.projector.ProjectNotification(row, actor))
	}
	return views, nil
}

func (s *NotificationService) buildQuery(req dto.NotificationListRequest) (query.Query, error) {
	filters := query.FilterSpec{}.
		Set("type", query.Exact(req.Type)).
		Set("priority", query.Exact(req.Priority)).
		Set("added_by_name", query.Contains(req.AddedBy))

	if raw := strings.TrimSpace(req.DueDate); raw != "" {
		bucket, ok := timezone.ParseBucket(raw)
		if !ok {
			return query.Query{}, appErrors.Clone(appErrors.ErrValidation, "dueDate must be one of next10days, next20days, expired")
		}
		filters = filters.Set("due_date", query.DueWithin(bucket, s.projector.now()))
	}

	return query.Query{
		Search:       strings.TrimSpace(req.Search),
		SearchFields: notificationSearchFields,
		Filters:      filters,
		Sort:         sortFrom(req.Sort, req.Order, "due_date"),
	}, nil
}
