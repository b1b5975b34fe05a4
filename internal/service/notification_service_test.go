package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lab-portal-api/internal/dto"
	"github.com/noah-isme/lab-portal-api/internal/models"
	appErrors "github.com/noah-isme/lab-portal-api/pkg/errors"
)

func notificationFixtures() []models.Notification {
	return []models.Notification{
		{ID: "n1", Text: "Submit draft", Type: models.NotificationTypeTodo, Priority: models.NotificationPriorityLow, AddedBy: embedded("p1", "Asha")},
		{ID: "n2", Text: "Paper review due", Type: models.NotificationTypeDeadline, Priority: models.NotificationPriorityHigh, DueDate: ts("2025-01-10"), AddedBy: embedded("f1", "Dr. Rao")},
		{ID: "n3", Text: "Lab meeting", Type: models.NotificationTypeReminder, Priority: models.NotificationPriorityHigh, DueDate: ts("2025-01-05")},
		{ID: "n4", Text: "Old call", Type: models.NotificationTypeAnnouncement, Priority: models.NotificationPriorityMedium, DueDate: ts("2024-12-01"), AddedBy: bare("p1")},
	}
}

func ids(views []dto.NotificationView) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.ID)
	}
	return out
}

func TestNotificationServiceListDefaultsToDueDateAscending(t *testing.T) {
	repo := &notificationRepoMock{rows: notificationFixtures()}
	svc := NewNotificationService(repo, testProjector(), nil, nil, nil)

	result, err := svc.List(context.Background(), phd, dto.NotificationListRequest{})
	require.NoError(t, err)

	if diff := cmp.Diff([]string{"n4", "n3", "n2", "n1"}, ids(result.Items)); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, []string{"You", "Dr. Rao", "System"}, result.AddedByFilter)
}

func TestNotificationServiceListSearchAndFilters(t *testing.T) {
	repo := &notificationRepoMock{rows: notificationFixtures()}
	svc := NewNotificationService(repo, testProjector(), nil, nil, nil)
	ctx := context.Background()

	result, err := svc.List(ctx, phd, dto.NotificationListRequest{Search: "review"})
	require.NoError(t, err)
	assert.Equal(t, []string{"n2"}, ids(result.Items))

	result, err = svc.List(ctx, phd, dto.NotificationListRequest{Priority: "high", Sort: "text", Order: "desc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"n2", "n3"}, ids(result.Items))

	result, err = svc.List(ctx, phd, dto.NotificationListRequest{Priority: "High"})
	require.NoError(t, err)
	assert.Empty(t, result.Items, "exact match is case-sensitive")

	result, err = svc.List(ctx, phd, dto.NotificationListRequest{AddedBy: "rao"})
	require.NoError(t, err)
	assert.Equal(t, []string{"n2"}, ids(result.Items))

	result, err = svc.List(ctx, phd, dto.NotificationListRequest{DueDate: "next10days"})
	require.NoError(t, err)
	assert.Equal(t, []string{"n3", "n2"}, ids(result.Items))

	result, err = svc.List(ctx, phd, dto.NotificationListRequest{DueDate: "expired"})
	require.NoError(t, err)
	assert.Equal(t, []string{"n4"}, ids(result.Items))
}

func TestNotificationServiceListRejectsUnknownBucket(t *testing.T) {
	repo := &notificationRepoMock{rows: notificationFixtures()}
	svc := NewNotificationService(repo, testProjector(), nil, nil, nil)

	_, err := svc.List(context.Background(), phd, dto.NotificationListRequest{DueDate: "tomorrow"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Zero(t, repo.listCalls)
}

func TestNotificationServiceListRequiresActor(t *testing.T) {
	svc := NewNotificationService(&notificationRepoMock{}, testProjector(), nil, nil, nil)
	_, err := svc.List(context.Background(), nil, dto.NotificationListRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Status, appErrors.FromError(err).Status)
}

func TestNotificationServiceListPropagatesBackendError(t *testing.T) {
	backendErr := appErrors.Clone(appErrors.ErrBackend, "backend down")
	svc := NewNotificationService(&notificationRepoMock{listErr: backendErr}, testProjector(), nil, nil, nil)
	_, err := svc.List(context.Background(), phd, dto.NotificationListRequest{})
	assert.True(t, errors.Is(err, backendErr))
}

func TestNotificationServiceListUsesCache(t *testing.T) {
	repo := &notificationRepoMock{rows: notificationFixtures()}
	store := newMemoryCache()
	cache := NewCacheService(store, NewMetricsService(), 0, nil, true)
	svc := NewNotificationService(repo, testProjector(), cache, nil, nil)
	ctx := context.Background()

	_, err := svc.List(ctx, phd, dto.NotificationListRequest{})
	require.NoError(t, err)
	_, err = svc.List(ctx, phd, dto.NotificationListRequest{Search: "draft"})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)

	require.NoError(t, svc.Delete(ctx, phd, "n1"))
	assert.Equal(t, []string{"notifications:*"}, store.invalidated)
}

func TestNotificationServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("owner", func(t *testing.T) {
		repo := &notificationRepoMock{rows: notificationFixtures()}
		svc := NewNotificationService(repo, testProjector(), nil, nil, nil)
		require.NoError(t, svc.Delete(ctx, phd, "n4"))
		assert.Equal(t, []string{"n4"}, repo.deleted)
	})

	t.Run("not owner", func(t *testing.T) {
		repo := &notificationRepoMock{rows: notificationFixtures()}
		svc := NewNotificationService(repo, testProjector(), nil, nil, nil)
		err := svc.Delete(ctx, phd, "n2")
		require.Error(t, err)
		appErr := appErrors.FromError(err)
		assert.Equal(t, appErrors.ErrForbidden.Status, appErr.Status)
		assert.Equal(t, "You can only delete your own notifications", appErr.Message)
		assert.Empty(t, repo.deleted)
	})

	t.Run("system notification", func(t *testing.T) {
		repo := &notificationRepoMock{rows: notificationFixtures()}
		svc := NewNotificationService(repo, testProjector(), nil, nil, nil)
		err := svc.Delete(ctx, phd, "n3")
		assert.Equal(t, appErrors.ErrForbidden.Status, appErrors.FromError(err).Status)
		assert.Empty(t, repo.deleted)
	})

	t.Run("missing", func(t *testing.T) {
		repo := &notificationRepoMock{rows: notificationFixtures()}
		svc := NewNotificationService(repo, testProjector(), nil, nil, nil)
		err := svc.Delete(ctx, phd, "nope")
		assert.Equal(t, appErrors.ErrNotFound.Status, appErrors.FromError(err).Status)
	})
}
