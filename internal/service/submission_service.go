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

type projectRepository interface {
	ListForFaculty(ctx context.Context, userID string) ([]models.Project, error)
	ListForStudent(ctx context.Context, userID string) ([]models.Project, error)
	UpdateVenue(ctx context.Context, id, venue string) error
}

type venueNameSource interface {
	Names(ctx context.Context) ([]string, error)
}

var submissionSearchFields = []string{"name", "lead_author.name", "venue"}

// SubmissionService serves the table of projects currently under review.
type SubmissionService struct {
	repo      projectRepository
	venues    venueNameSource
	projector *Projector
	validator *validator.Validate
	cache     *CacheService
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewSubmissionService constructs a SubmissionService.
func NewSubmissionService(repo projectRepository, venues venueNameSource, projector *Projector, validate *validator.Validate, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *SubmissionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = DefaultValidator()
	}
	if projector == nil {
		projector = NewProjector(nil, nil)
	}
	return &SubmissionService{repo: repo, venues: venues, projector: projector, validator: validate, cache: cache, metrics: metrics, logger: logger}
}

// List returns the actor's under-review submissions and the number before filtering.
func (s *SubmissionService) List(ctx context.Context, actor *models.Actor, req dto.SubmissionListRequest) ([]dto.SubmissionView, int, error) {
	if err := requireActor(actor); err != nil {
		return nil, 0, err
	}
	rows, err := cachedList(ctx, s.cache, s.logger, cacheKey(cacheSubmissions, string(actor.Role), actor.ID), func(ctx context.Context) ([]models.Project, error) {
		return s.fetch(ctx, actor)
	})
	if err != nil {
		return nil, 0, err
	}

	views := make([]dto.SubmissionView, 0, len(rows))
	for _, row := range rows {
		if row.Status != models.ProjectStatusUnderReview {
			continue
		}
		views = append(views, s.projector.ProjectSubmission(row, actor))
	}

	items := query.Derive(views, query.Query{
		Search:       strings.TrimSpace(req.Search),
		SearchFields: submissionSearchFields,
		Filters: query.FilterSpec{}.
			Set("lead_author.name", query.Contains(req.Name)).
			Set("name", query.Contains(req.Project)).
			Set("venue", query.Contains(req.Venue)),
		Sort: sortFrom(req.Sort, req.Order, ""),
	})
	s.metrics.ObserveDerivedRows(cacheSubmissions, len(items))
	return items, len(views), nil
}

// UpdateVenue moves a submission to another venue when the actor may edit it.
func (s *SubmissionService) UpdateVenue(ctx context.Context, actor *models.Actor, id string, req dto.UpdateSubmissionVenueRequest) (*dto.SubmissionView, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	req.Venue = strings.TrimSpace(req.Venue)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid venue payload")
	}

	rows, err := s.fetch(ctx, actor)
	if err != nil {
		return nil, err
	}
	var target *models.Project
	for i := range rows {
		if rows[i].ID == id {
			target = &rows[i]
			break
		}
	}
	if target == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "submission not found")
	}
	if !CanMutateSubmission(target, actor) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "You are not allowed to change the venue of this submission")
	}

	if err := s.repo.UpdateVenue(ctx, id, req.Venue); err != nil {
		return nil, err
	}
	invalidate(ctx, s.cache, cacheKey(cacheSubmissions, "*"))
	s.logger.Info("submission venue updated", zap.String("project_id", id), zap.String("venue", req.Venue), zap.String("actor_id", actor.ID))

	patched := *target
	patched.Venue = req.Venue
	view := s.projector.ProjectSubmission(patched, actor)
	return &view, nil
}

// VenueSuggestions lists known venue names containing prefix, alphabetically.
func (s *SubmissionService) VenueSuggestions(ctx context.Context, prefix string) ([]string, error) {
	if s.venues == nil {
		return []string{}, nil
	}
	names, err := cachedList(ctx, s.cache, s.logger, cacheVenueNames, s.venues.Names)
	if err != nil {
		return nil, err
	}

	rows := make([]query.Fields, 0, len(names))
	for _, name := range names {
		rows = append(rows, query.Fields{"name": strings.TrimSpace(name)})
	}
	rows = query.Derive(rows, query.Query{
		Filters: query.FilterSpec{}.Set("name", query.Contains(strings.TrimSpace(prefix))),
		Sort:    query.SortSpec{Key: "name", Direction: query.Ascending},
	})
	return query.Distinct(rows, "name"), nil
}

func (s *SubmissionService) fetch(ctx context.Context, actor *models.Actor) ([]models.Project, error) {
	if actor.Role == models.RoleFaculty {
		return s.repo.ListForFaculty(ctx, actor.ID)
	}
	return s.repo.ListForStudent(ctx, actor.ID)
}
