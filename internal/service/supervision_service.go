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

type supervisionRepository interface {
	ListForFaculty(ctx context.Context, facultyID string) ([]models.Supervision, error)
	Faculty(ctx context.Context) ([]models.FacultyMember, error)
	Create(ctx context.Context, payload models.SupervisionPayload) error
	Update(ctx context.Context, id string, payload models.SupervisionPayload) error
	Unsupervise(ctx context.Context, payload models.UnsupervisePayload) error
}

var (
	supervisionSearchFields = []string{"student.name", "student.email", "thesis_title", "funding_source"}
	facultySearchFields     = []string{"name", "email"}
)

// SupervisionService manages which students a faculty member supervises.
type SupervisionService struct {
	repo      supervisionRepository
	projector *Projector
	validator *validator.Validate
	cache     *CacheService
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewSupervisionService constructs a SupervisionService.
func NewSupervisionService(repo supervisionRepository, projector *Projector, validate *validator.Validate, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *SupervisionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = DefaultValidator()
	}
	if projector == nil {
		projector = NewProjector(nil, nil)
	}
	return &SupervisionService{repo: repo, projector: projector, validator: validate, cache: cache, metrics: metrics, logger: logger}
}

// List returns the students supervised by the actor, sorted by joining date by default.
func (s *SupervisionService) List(ctx context.Context, actor *models.Actor, req dto.SupervisionListRequest) ([]dto.SupervisionView, int, error) {
	if err := requireActor(actor); err != nil {
		return nil, 0, err
	}
	rows, err := cachedList(ctx, s.cache, s.logger, cacheKey(cacheSupervisions, actor.ID), func(ctx context.Context) ([]models.Supervision, error) {
		return s.repo.ListForFaculty(ctx, actor.ID)
	})
	if err != nil {
		return nil, 0, err
	}

	views := make([]dto.SupervisionView, 0, len(rows))
	for _, row := range rows {
		views = append(views, s.projector.ProjectSupervision(row, actor))
	}
	items := query.Derive(views, query.Query{
		Search:       strings.TrimSpace(req.Search),
		SearchFields: supervisionSearchFields,
		Sort:         sortFrom(req.Sort, req.Order, "joining"),
	})
	s.metrics.ObserveDerivedRows(cacheSupervisions, len(items))
	return items, len(views), nil
}

// Faculty lists other faculty members that can sit on a thesis committee.
func (s *SupervisionService) Faculty(ctx context.Context, actor *models.Actor, search string) ([]dto.FacultyView, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	rows, err := cachedList(ctx, s.cache, s.logger, cacheFaculty, s.repo.Faculty)
	if err != nil {
		return nil, err
	}

	views := make([]dto.FacultyView, 0, len(rows))
	for _, row := range rows {
		if row.ID == actor.ID {
			continue
		}
		views = append(views, ProjectFaculty(row))
	}
	return query.Derive(views, query.Query{
		Search:       strings.TrimSpace(search),
		SearchFields: facultySearchFields,
		Sort:         query.SortSpec{Key: "name", Direction: query.Ascending},
	}), nil
}

// Save records the actor as the student's supervisor. An existing supervision of the
// same student is updated in place; the boolean reports whether one was created.
func (s *SupervisionService) Save(ctx context.Context, actor *models.Actor, req dto.SaveSupervisionRequest) (bool, error) {
	if err := s.requireFaculty(actor); err != nil {
		return false, err
	}
	req.StudentID = strings.TrimSpace(req.StudentID)
	if err := s.validator.Struct(req); err != nil {
		return false, validationError(err, "invalid supervision payload")
	}

	existing, err := s.findByStudent(ctx, actor, req.StudentID)
	if err != nil {
		return false, err
	}
	payload := models.SupervisionPayload{
		FacultyID:     actor.ID,
		StudentID:     req.StudentID,
		Joining:       req.Joining,
		ThesisTitle:   strings.TrimSpace(req.ThesisTitle),
		Committee:     committeeOf(req.Committee, actor.ID),
		Stipend:       req.Stipend,
		FundingSource: strings.TrimSpace(req.FundingSource),
		SRPID:         req.SRPID,
	}

	created := existing == nil
	if created {
		err = s.repo.Create(ctx, payload)
	} else {
		if !CanMutateSupervision(existing, actor) {
			return false, appErrors.Clone(appErrors.ErrForbidden, "You are not allowed to edit this supervision")
		}
		err = s.repo.Update(ctx, existing.ID, payload)
	}
	if err != nil {
		return false, err
	}
	invalidate(ctx, s.cache, cacheKey(cacheSupervisions, "*"))
	s.logger.Info("supervision saved", zap.String("student_id", req.StudentID), zap.String("actor_id", actor.ID), zap.Bool("created", created))
	return created, nil
}

// Unsupervise ends the actor's supervision of a student.
func (s *SupervisionService) Unsupervise(ctx context.Context, actor *models.Actor, req dto.UnsuperviseRequest) error {
	if err := s.requireFaculty(actor); err != nil {
		return err
	}
	req.StudentID = strings.TrimSpace(req.StudentID)
	if err := s.validator.Struct(req); err != nil {
		return validationError(err, "invalid unsupervise payload")
	}

	existing, err := s.findByStudent(ctx, actor, req.StudentID)
	if err != nil {
		return err
	}
	if existing == nil {
		return appErrors.Clone(appErrors.ErrNotFound, "student is not supervised by you")
	}
	if !CanMutateSupervision(existing, actor) {
		return appErrors.Clone(appErrors.ErrForbidden, "You are not allowed to edit this supervision")
	}

	if err := s.repo.Unsupervise(ctx, models.UnsupervisePayload{FacultyID: actor.ID, StudentID: req.StudentID}); err != nil {
		return err
	}
	invalidate(ctx, s.cache, cacheKey(cacheSupervisions, "*"))
	s.logger.Info("student unsupervised", zap.String("student_id", req.StudentID), zap.String("actor_id", actor.ID))
	return nil
}

func (s *SupervisionService) requireFaculty(actor *models.Actor) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if actor.Role != models.RoleFaculty {
		return appErrors.Clone(appErrors.ErrForbidden, "only faculty can supervise students")
	}
	return nil
}

func (s *SupervisionService) findByStudent(ctx context.Context, actor *models.Actor, studentID string) (*models.Supervision, error) {
	rows, err := s.repo.ListForFaculty(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if models.RefID(rows[i].StudentID) == studentID {
			return &rows[i], nil
		}
	}
	return nil, nil
}

// committeeOf drops blanks, duplicates and the supervisor from a committee list.
func committeeOf(ids []string, supervisor string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || id == supervisor {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
