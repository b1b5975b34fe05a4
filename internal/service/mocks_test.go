package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/lab-portal-api/internal/models"
	appErrors "github.com/noah-isme/lab-portal-api/pkg/errors"
)

var fixedNow = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

func testProjector() *Projector {
	return NewProjector(nil, func() time.Time { return fixedNow })
}

func ts(raw string) models.Timestamp {
	t, _ := models.ParseTimestamp(raw)
	return t
}

func embedded(id, name string) *models.Ref {
	return &models.Ref{ID: id, Name: name, Embedded: true}
}

func bare(id string) *models.Ref {
	return &models.Ref{ID: id}
}

var (
	faculty = &models.Actor{ID: "f1", Role: models.RoleFaculty, Name: "Dr. Rao"}
	phd     = &models.Actor{ID: "p1", Role: models.RolePhD, Name: "Asha"}
	student = &models.Actor{ID: "s1", Role: models.RoleStudent, Name: "Ravi"}
)

type notificationRepoMock struct {
	rows      []models.Notification
	listErr   error
	listCalls int
	deleted   []string
}

func (m *notificationRepoMock) ListForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.rows, nil
}

func (m *notificationRepoMock) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

type projectRepoMock struct {
	rows         []models.Project
	facultyCalls int
	studentCalls int
	updated      map[string]string
}

func (m *projectRepoMock) ListForFaculty(ctx context.Context, userID string) ([]models.Project, error) {
	m.facultyCalls++
	return m.rows, nil
}

func (m *projectRepoMock) ListForStudent(ctx context.Context, userID string) ([]models.Project, error) {
	m.studentCalls++
	return m.rows, nil
}

func (m *projectRepoMock) UpdateVenue(ctx context.Context, id, venue string) error {
	if m.updated == nil {
		m.updated = map[string]string{}
	}
	m.updated[id] = venue
	return nil
}

type venueNamesMock struct {
	names []string
}

func (m *venueNamesMock) Names(ctx context.Context) ([]string, error) {
	return m.names, nil
}

type venueRepoMock struct {
	rows     []models.Venue
	created  []models.VenuePayload
	updated  map[string]models.VenuePayload
	deleted  []string
	response *models.Venue
}

func (m *venueRepoMock) ListForUser(ctx context.Context, userID string) ([]models.Venue, error) {
	return m.rows, nil
}

func (m *venueRepoMock) Create(ctx context.Context, payload models.VenuePayload) (*models.Venue, error) {
	m.created = append(m.created, payload)
	if m.response != nil {
		return m.response, nil
	}
	return &models.Venue{ID: "new", Venue: payload.Venue, Status: payload.Status, AddedBy: bare(payload.AddedBy)}, nil
}

func (m *venueRepoMock) Update(ctx context.Context, id string, payload models.VenuePayload) (*models.Venue, error) {
	if m.updated == nil {
		m.updated = map[string]models.VenuePayload{}
	}
	m.updated[id] = payload
	return &models.Venue{ID: id, Venue: payload.Venue, Status: payload.Status, AddedBy: bare(payload.AddedBy)}, nil
}

func (m *venueRepoMock) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

type supervisionRepoMock struct {
	rows        []models.Supervision
	faculty     []models.FacultyMember
	created     []models.SupervisionPayload
	updated     map[string]models.SupervisionPayload
	unsupervise []models.UnsupervisePayload
}

func (m *supervisionRepoMock) ListForFaculty(ctx context.Context, facultyID string) ([]models.Supervision, error) {
	return m.rows, nil
}

func (m *supervisionRepoMock) Faculty(ctx context.Context) ([]models.FacultyMember, error) {
	return m.faculty, nil
}

func (m *supervisionRepoMock) Create(ctx context.Context, payload models.SupervisionPayload) error {
	m.created = append(m.created, payload)
	return nil
}

func (m *supervisionRepoMock) Update(ctx context.Context, id string, payload models.SupervisionPayload) error {
	if m.updated == nil {
		m.updated = map[string]models.SupervisionPayload{}
	}
	m.updated[id] = payload
	return nil
}

func (m *supervisionRepoMock) Unsupervise(ctx context.Context, payload models.UnsupervisePayload) error {
	m.unsupervise = append(m.unsupervise, payload)
	return nil
}

// memoryCache keeps cached lists in process so tests can observe hits and invalidation.
type memoryCache struct {
	values      map[string]interface{}
	invalidated []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string]interface{}{}}
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	value, ok := m.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	switch d := dest.(type) {
	case *[]models.Notification:
		*d = value.([]models.Notification)
	case *[]string:
		*d = value.([]string)
	default:
		return appErrors.ErrCacheMiss
	}
	return nil
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.values[key] = value
	return nil
}

func (m *memoryCache) DeleteByPattern(ctx context.Context, pattern string) error {
	m.invalidated = append(m.invalidated, pattern)
	for key := range m.values {
		if matchPattern(pattern, key) {
			delete(m.values, key)
		}
	}
	return nil
}

func matchPattern(pattern, key string) bool {
	if n := len(pattern); n > 0 && pattern[n-1] == '*' {
		prefix := pattern[:n-1]
		return len(key) >= len(prefix) && key[:len(prefix)] == prefix
	}
	return pattern == key
}

func zapNop() *zap.Logger {
	return zap.NewNop()
}
