package repository

import (
	"context"
	"net/http"
	"net/url"

	"github.com/noah-isme/lab-portal-api/internal/models"
)

// VenueRepository manages conference venues through the backend.
type VenueRepository struct {
	client *BackendClient
}

// NewVenueRepository creates the repository.
func NewVenueRepository(client *BackendClient) *VenueRepository {
	return &VenueRepository{client: client}
}

// ListForUser returns the venues userID can see.
func (r *VenueRepository) ListForUser(ctx context.Context, userID string) ([]models.Venue, error) {
	var rows models.VenueList
	if err := r.client.Do(ctx, "venues.list", http.MethodGet, "/venues/"+url.PathEscape(userID), nil, &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		return []models.Venue{}, nil
	}
	return rows, nil
}

// Names returns the catalogue of known venue names.
func (r *VenueRepository) Names(ctx context.Context) ([]string, error) {
	var names []string
	if err := r.client.Do(ctx, "venues.names", http.MethodGet, "/venues/venues", nil, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// Create inserts a venue and returns the stored document.
func (r *VenueRepository) Create(ctx context.Context, payload models.VenuePayload) (*models.Venue, error) {
	var venue models.Venue
	if err := r.client.Do(ctx, "venues.create", http.MethodPost, "/venues", payload, &venue); err != nil {
		return nil, err
	}
	return &venue, nil
}

// Update replaces a venue and returns the stored document.
func (r *VenueRepository) Update(ctx context.Context, id string, payload models.VenuePayload) (*models.Venue, error) {
	var venue models.Venue
	if err := r.client.Do(ctx, "venues.update", http.MethodPut, "/venues/"+url.PathEscape(id), payload, &venue); err != nil {
		return nil, err
	}
	return &venue, nil
}

// Delete removes a venue.
func (r *VenueRepository) Delete(ctx context.Context, id string) error {
	return r.client.Do(ctx, "venues.delete", http.MethodDelete, "/venues/"+url.PathEscape(id), nil, nil)
}
