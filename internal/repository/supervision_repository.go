package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/noah-isme/lab-portal-api/internal/models"
	appErrors "github.com/noah-isme/lab-portal-api/pkg/errors"
)

// SupervisionRepository manages supervisor assignments through the backend.
type SupervisionRepository struct {
	client *BackendClient
}

// NewSupervisionRepository creates the repository.
func NewSupervisionRepository(client *BackendClient) *SupervisionRepository {
	return &SupervisionRepository{client: client}
}

// ListForFaculty returns the supervisions held by a faculty member.
func (r *SupervisionRepository) ListForFaculty(ctx context.Context, facultyID string) ([]models.Supervision, error) {
	var rows []models.Supervision
	if err := r.client.Do(ctx, "supervisors.list", http.MethodGet, "/supervisors/"+url.PathEscape(facultyID), nil, &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []models.Supervision{}
	}
	return rows, nil
}

// Faculty returns the faculty directory.
func (r *SupervisionRepository) Faculty(ctx context.Context) ([]models.FacultyMember, error) {
	var rows []models.FacultyMember
	if err := r.client.Do(ctx, "users.faculty", http.MethodGet, "/user/faculty", nil, &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []models.FacultyMember{}
	}
	return rows, nil
}

// Create registers a new supervision.
func (r *SupervisionRepository) Create(ctx context.Context, payload models.SupervisionPayload) error {
	return r.client.Do(ctx, "supervisors.create", http.MethodPost, "/supervisors", payload, nil)
}

// Update replaces an existing supervision.
func (r *SupervisionRepository) Update(ctx context.Context, id string, payload models.SupervisionPayload) error {
	return r.client.Do(ctx, "supervisors.update", http.MethodPut, "/supervisors/"+url.PathEscape(id), payload, nil)
}

// Unsupervise ends the supervision of a student.
func (r *SupervisionRepository) Unsupervise(ctx context.Context, payload models.UnsupervisePayload) error {
	var result struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := r.client.Do(ctx, "supervisors.unsupervise", http.MethodDelete, "/supervisors/unsupervise", payload, &result); err != nil {
		return err
	}
	if !result.Success {
		message := result.Message
		if message == "" {
			message = "Failed to unsupervise student"
		}
		return appErrors.Wrap(fmt.Errorf("unsupervise %s: backend reported failure", payload.StudentID), appErrors.ErrBackend.Code, appErrors.ErrBackend.Status, message)
	}
	return nil
}
