package repository

import (
	"context"
	"net/http"
	"net/url"

	"github.com/noah-isme/lab-portal-api/internal/models"
)

// ProjectRepository reads projects and updates their venue through the backend.
type ProjectRepository struct {
	client *BackendClient
}

// NewProjectRepository creates the repository.
func NewProjectRepository(client *BackendClient) *ProjectRepository {
	return &ProjectRepository{client: client}
}

// ListForFaculty returns projects supervised by a faculty member.
func (r *ProjectRepository) ListForFaculty(ctx context.Context, userID string) ([]models.Project, error) {
	return r.list(ctx, "projects.list_faculty", "/projects/"+url.PathEscape(userID))
}

// ListForStudent returns projects a student or PhD scholar works on.
func (r *ProjectRepository) ListForStudent(ctx context.Context, userID string) ([]models.Project, error) {
	return r.list(ctx, "projects.list_student", "/projects/student/"+url.PathEscape(userID))
}

func (r *ProjectRepository) list(ctx context.Context, op, path string) ([]models.Project, error) {
	var rows []models.Project
	if err := r.client.Do(ctx, op, http.MethodGet, path, nil, &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []models.Project{}
	}
	return rows, nil
}

// UpdateVenue changes the venue a project is submitted to.
func (r *ProjectRepository) UpdateVenue(ctx context.Context, id, venue string) error {
	body := models.ProjectVenueUpdate{Venue: venue}
	return r.client.Do(ctx, "projects.update_venue", http.MethodPut, "/projects/"+url.PathEscape(id), body, nil)
}
