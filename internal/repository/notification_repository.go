package repository

import (
	"context"
	"net/http"
	"net/url"

	"github.com/noah-isme/lab-portal-api/internal/models"
)

// NotificationRepository reads and deletes notifications through the backend.
type NotificationRepository struct {
	client *BackendClient
}

// NewNotificationRepository creates the repository.
func NewNotificationRepository(client *BackendClient) *NotificationRepository {
	return &NotificationRepository{client: client}
}

// ListForUser returns the notifications visible to userID.
func (r *NotificationRepository) ListForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	var envelope models.NotificationList
	if err := r.client.Do(ctx, "notifications.list", http.MethodGet, "/notifications/"+url.PathEscape(userID), nil, &envelope); err != nil {
		return nil, err
	}
	if envelope.Notification == nil {
		return []models.Notification{}, nil
	}
	return envelope.Notification, nil
}

// Delete removes a notification.
func (r *NotificationRepository) Delete(ctx context.Context, id string) error {
	return r.client.Do(ctx, "notifications.delete", http.MethodDelete, "/notifications/"+url.PathEscape(id), nil, nil)
}
