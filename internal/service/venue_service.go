package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/lab-portal-api/internal/dto"
	"github.com/noah-isme/lab-portal-api/internal/models"
	appErrors "github.com/noah-isme/lab-portal-api/pkg/errors"
	"github.com/noah-isme/lab-portal-api/pkg/query"
)

type venueRepository interface {
	ListForUser(ctx context.Context, userID string) ([]models.Venue, error)
	Create(ctx context.Context, payload models.VenuePayload) (*models.Venue, error)
	Update(ctx context.Context, id string, payload models.VenuePayload) (*models.Venue, error)
	Delete(ctx context.Context, id string) error
}

var venueSearchFields = []string{"venue", "location"}

// VenueService manages the conference venues tracked by the lab.
type VenueService struct {
	repo      venueRepository
	projector *Projector
	validator *validator.Validate
	cache     *CacheService
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewVenueService constructs a VenueService.
func NewVenueService(repo venueRepository, projector *Projector, validate *validator.Validate, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *VenueService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = DefaultValidator()
	}
	if projector == nil {
		projector = NewProjector(nil, nil)
	}
	return &VenueService{repo: repo, projector: projector, validator: validate, cache: cache, metrics: metrics, logger: logger}
}

// List returns venues visible to the actor. Only active venues are included unless
// req.All is set; the second result counts venues before search.
func (s *VenueService) List(ctx context.Context, actor *models.Actor, req dto.VenueListRequest) ([]dto.VenueView, int, error) {
	if err := requireActor(actor); err != nil {
		return nil, 0, err
	}
	rows, err := cachedList(ctx, s.cache, s.logger, cacheKey(cacheVenues, actor.ID), func(ctx context.Context) ([]models.Venue, error) {
		return s.repo.ListForUser(ctx, actor.ID)
	})
	if err != nil {
		return nil, 0, err
	}

	views := make([]dto.VenueView, 0, len(rows))
	for _, row := range rows {
		views = append(views, s.projector.ProjectVenue(row, actor))
	}

	filters := query.FilterSpec{}
	if !req.All {
		filters.Set("status", query.Exact(models.VenueStatusActive))
	}
	items := query.Derive(views, query.Query{
		Search:       strings.TrimSpace(req.Search),
		SearchFields: venueSearchFields,
		Filters:      filters,
		Sort:         sortFrom(req.Sort, req.Order, ""),
	})
	s.metrics.ObserveDerivedRows(cacheVenues, len(items))
	return items, len(views), nil
}

// Create registers a venue owned by the actor.
func (s *VenueService) Create(ctx context.Context, actor *models.Actor, req dto.VenueRequest) (*dto.VenueView, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if err := s.validate(&req); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, venuePayload(req, actor.ID))
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.logger.Info("venue created", zap.String("venue", req.Venue), zap.String("actor_id", actor.ID))
	return s.project(created, actor), nil
}

// Update edits a venue the actor owns or is allowed to view-edit. The owner is kept.
func (s *VenueService) Update(ctx context.Context, actor *models.Actor, id string, req dto.VenueRequest) (*dto.VenueView, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if err := s.validate(&req); err != nil {
		return nil, err
	}
	existing, err := s.find(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	owner := models.RefID(existing.AddedBy)
	if owner == "" {
		owner = actor.ID
	}
	updated, err := s.repo.Update(ctx, id, venuePayload(req, owner))
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.logger.Info("venue updated", zap.String("venue_id", id), zap.String("actor_id", actor.ID))
	return s.project(updated, actor), nil
}

// Delete removes a venue the actor may edit.
func (s *VenueService) Delete(ctx context.Context, actor *models.Actor, id string) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if _, err := s.find(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.logger.Info("venue deleted", zap.String("venue_id", id), zap.String("actor_id", actor.ID))
	return nil
}

func (s *VenueService) find(ctx context.Context, actor *models.Actor, id string) (*models.Venue, error) {
	rows, err := s.repo.ListForUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].ID != id {
			continue
		}
		if !CanMutateVenue(&rows[i], actor) {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "You are not allowed to edit this venue")
		}
		return &rows[i], nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "venue not found")
}

func (s *VenueService) validate(req *dto.VenueRequest) error {
	req.Venue = strings.TrimSpace(req.Venue)
	req.TimeZone = strings.TrimSpace(req.TimeZone)
	if err := s.validator.Struct(req); err != nil {
		return validationError(err, "invalid venue payload")
	}
	return nil
}

func (s *VenueService) project(v *models.Venue, actor *models.Actor) *dto.VenueView {
	if v == nil {
		return nil
	}
	view := s.projector.ProjectVenue(*v, actor)
	return &view
}

func (s *VenueService) invalidate(ctx context.Context) {
	invalidate(ctx, s.cache, cacheKey(cacheVenues, "*"), cacheVenueNames)
}

func venuePayload(req dto.VenueRequest, owner string) models.VenuePayload {
	status := req.Status
	if status == "" {
		status = models.VenueStatusActive
	}
	view := req.View
	if view == nil {
		view = []string{}
	}
	return models.VenuePayload{
		Venue:               req.Venue,
		Year:                req.Year,
		URL:                 req.URL,
		AddedBy:             owner,
		Status:              status,
		AbstractSubmission:  req.AbstractSubmission,
		PaperSubmission:     req.PaperSubmission,
		AuthorResponse:      req.AuthorResponse,
		MetaReview:          req.MetaReview,
		Notification:        req.Notification,
		Commitment:          req.Commitment,
		MainConferenceStart: req.MainConferenceStart,
		MainConferenceEnd:   req.MainConferenceEnd,
		Location:            req.Location,
		TimeZone:            req.TimeZone,
		View:                view,
	}
}
