package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lab-portal-api/internal/dto"
	"github.com/noah-isme/lab-portal-api/internal/middleware"
	"github.com/noah-isme/lab-portal-api/internal/models"
	"github.com/noah-isme/lab-portal-api/internal/service"
	appErrors "github.com/noah-isme/lab-portal-api/pkg/errors"
)

type notificationServiceMock struct {
	listResp  *dto.NotificationListResult
	listErr   error
	deleteErr error
	lastReq   dto.NotificationListRequest
	lastActor *models.Actor
	deletedID string
}

func (m *notificationServiceMock) List(ctx context.Context, actor *models.Actor, req dto.NotificationListRequest) (*dto.NotificationListResult, error) {
	m.lastActor = actor
	m.lastReq = req
	return m.listResp, m.listErr
}

func (m *notificationServiceMock) Delete(ctx context.Context, actor *models.Actor, id string) error {
	m.lastActor = actor
	m.deletedID = id
	return m.deleteErr
}

type submissionServiceMock struct {
	listResp    []dto.SubmissionView
	updateResp  *dto.SubmissionView
	updateErr   error
	suggestions []string
	lastReq     dto.SubmissionListRequest
	lastVenue   dto.UpdateSubmissionVenueRequest
	lastPrefix  string
}

func (m *submissionServiceMock) List(ctx context.Context, actor *models.Actor, req dto.SubmissionListRequest) ([]dto.SubmissionView, int, error) {
	m.lastReq = req
	return m.listResp, len(m.listResp), nil
}

func (m *submissionServiceMock) UpdateVenue(ctx context.Context, actor *models.Actor, id string, req dto.UpdateSubmissionVenueRequest) (*dto.SubmissionView, error) {
	m.lastVenue = req
	return m.updateResp, m.updateErr
}

func (m *submissionServiceMock) VenueSuggestions(ctx context.Context, prefix string) ([]string, error) {
	m.lastPrefix = prefix
	return m.suggestions, nil
}

type venueServiceMock struct {
	listResp   []dto.VenueView
	createResp *dto.VenueView
	updateErr  error
	lastList   dto.VenueListRequest
	created    bool
	deletedID  string
}

func (m *venueServiceMock) List(ctx context.Context, actor *models.Actor, req dto.VenueListRequest) ([]dto.VenueView, int, error) {
	m.lastList = req
	return m.listResp, len(m.listResp) + 1, nil
}

func (m *venueServiceMock) Create(ctx context.Context, actor *models.Actor, req dto.VenueRequest) (*dto.VenueView, error) {
	m.created = true
	return m.createResp, nil
}

func (m *venueServiceMock) Update(ctx context.Context, actor *models.Actor, id string, req dto.VenueRequest) (*dto.VenueView, error) {
	return nil, m.updateErr
}

func (m *venueServiceMock) Delete(ctx context.Context, actor *models.Actor, id string) error {
	m.deletedID = id
	return nil
}

type supervisionServiceMock struct {
	saveCreated      bool
	saveErr          error
	unsuperviseErr   error
	lastSave         dto.SaveSupervisionRequest
	lastUnsupervise  dto.UnsuperviseRequest
	lastFacultyQuery string
}

func (m *supervisionServiceMock) List(ctx context.Context, actor *models.Actor, req dto.SupervisionListRequest) ([]dto.SupervisionView, int, error) {
	return []dto.SupervisionView{{ID: "sup-1", ThesisTitle: "Parsing"}}, 1, nil
}

func (m *supervisionServiceMock) Faculty(ctx context.Context, actor *models.Actor, search string) ([]dto.FacultyView, error) {
	m.lastFacultyQuery = search
	return []dto.FacultyView{{ID: "f2", Name: "Ravi"}}, nil
}

func (m *supervisionServiceMock) Save(ctx context.Context, actor *models.Actor, req dto.SaveSupervisionRequest) (bool, error) {
	m.lastSave = req
	return m.saveCreated, m.saveErr
}

func (m *supervisionServiceMock) Unsupervise(ctx context.Context, actor *models.Actor, req dto.UnsuperviseRequest) error {
	m.lastUnsupervise = req
	return m.unsuperviseErr
}

type envelope struct {
	Data  json.RawMessage        `json:"data"`
	Error *appErrors.Error       `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

func newTestRouter(role models.UserRole, register func(r *gin.RouterGroup)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/", func(c *gin.Context) {
		c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u1", Role: role, Name: "Asha"})
		c.Next()
	})
	register(g)
	return r
}

func perform(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestNotificationHandlerList(t *testing.T) {
	mockSvc := &notificationServiceMock{listResp: &dto.NotificationListResult{
		Items:         []dto.NotificationView{{ID: "n1", Text: "Lab meeting"}},
		AddedByFilter: []string{"You", "System"},
		Total:         3,
	}}
	h := NewNotificationHandler(mockSvc, service.NewExportService(nil, nil, nil))
	r := newTestRouter(models.RolePhD, func(g *gin.RouterGroup) { g.GET("/notifications", h.List) })

	w := perform(r, http.MethodGet, "/notifications?type=reminder&dueDate=next10days&sort=priority&order=desc", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "reminder", mockSvc.lastReq.Type)
	assert.Equal(t, "next10days", mockSvc.lastReq.DueDate)
	assert.Equal(t, "desc", mockSvc.lastReq.Order)
	require.NotNil(t, mockSvc.lastActor)
	assert.Equal(t, "u1", mockSvc.lastActor.ID)

	env := decode(t, w)
	assert.EqualValues(t, 3, env.Meta["total"])
	assert.EqualValues(t, 1, env.Meta["filtered"])
	assert.Equal(t, []interface{}{"You", "System"}, env.Meta["added_by_options"])
}

func TestNotificationHandlerListServiceError(t *testing.T) {
	mockSvc := &notificationServiceMock{listErr: appErrors.Clone(appErrors.ErrValidation, "invalid dueDate filter")}
	h := NewNotificationHandler(mockSvc, service.NewExportService(nil, nil, nil))
	r := newTestRouter(models.RolePhD, func(g *gin.RouterGroup) { g.GET("/notifications", h.List) })

	w := perform(r, http.MethodGet, "/notifications?dueDate=someday", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "invalid dueDate filter", env.Error.Message)
}

func TestNotificationHandlerDelete(t *testing.T) {
	mockSvc := &notificationServiceMock{}
	h := NewNotificationHandler(mockSvc, nil)
	r := newTestRouter(models.RolePhD, func(g *gin.RouterGroup) { g.DELETE("/notifications/:id", h.Delete) })

	w := perform(r, http.MethodDelete, "/notifications/n9", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "n9", mockSvc.deletedID)

	mockSvc.deleteErr = appErrors.Clone(appErrors.ErrForbidden, "You can only delete your own notifications")
	w = perform(r, http.MethodDelete, "/notifications/n9", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestNotificationHandlerExport(t *testing.T) {
	mockSvc := &notificationServiceMock{listResp: &dto.NotificationListResult{
		Items: []dto.NotificationView{{ID: "n1", Text: "Lab meeting", TypeLabel: "Reminder", AddedByName: "You"}},
	}}
	h := NewNotificationHandler(mockSvc, service.NewExportService(nil, nil, nil))
	r := newTestRouter(models.RolePhD, func(g *gin.RouterGroup) { g.GET("/notifications/export", h.Export) })

	w := perform(r, http.MethodGet, "/notifications/export?format=csv", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Disposition"), `attachment; filename="notifications_`))
	assert.Contains(t, w.Body.String(), "Lab meeting")

	w = perform(r, http.MethodGet, "/notifications/export?format=xlsx", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmissionHandlerListAndSuggestions(t *testing.T) {
	mockSvc := &submissionServiceMock{
		listResp:    []dto.SubmissionView{{ID: "p1", Name: "Parser"}},
		suggestions: []string{"ACL", "NAACL"},
	}
	h := NewSubmissionHandler(mockSvc, nil)
	r := newTestRouter(models.RoleFaculty, func(g *gin.RouterGroup) {
		g.GET("/submissions", h.List)
		g.GET("/submissions/venue-suggestions", h.VenueSuggestions)
	})

	w := perform(r, http.MethodGet, "/submissions?search=pars&venue=ACL", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pars", mockSvc.lastReq.Search)
	assert.Equal(t, "ACL", mockSvc.lastReq.Venue)

	w = perform(r, http.MethodGet, "/submissions/venue-suggestions?q=acl", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "acl", mockSvc.lastPrefix)
	var names []string
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &names))
	assert.Equal(t, []string{"ACL", "NAACL"}, names)
}

func TestSubmissionHandlerUpdateVenue(t *testing.T) {
	mockSvc := &submissionServiceMock{updateResp: &dto.SubmissionView{ID: "p1", Venue: "ICML"}}
	h := NewSubmissionHandler(mockSvc, nil)
	r := newTestRouter(models.RoleStudent, func(g *gin.RouterGroup) { g.PUT("/submissions/:id/venue", h.UpdateVenue) })

	w := perform(r, http.MethodPut, "/submissions/p1/venue", `{"venue":"ICML"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ICML", mockSvc.lastVenue.Venue)

	w = perform(r, http.MethodPut, "/submissions/p1/venue", `{"venue":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVenueHandlerListCreateDelete(t *testing.T) {
	mockSvc := &venueServiceMock{
		listResp:   []dto.VenueView{{ID: "v1", Venue: "ACL"}},
		createResp: &dto.VenueView{ID: "v2", Venue: "EMNLP"},
	}
	h := NewVenueHandler(mockSvc, nil)
	r := newTestRouter(models.RolePhD, func(g *gin.RouterGroup) {
		g.GET("/venues", h.List)
		g.POST("/venues", h.Create)
		g.DELETE("/venues/:id", h.Delete)
	})

	w := perform(r, http.MethodGet, "/venues?all=true", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, mockSvc.lastList.All)
	assert.EqualValues(t, 2, decode(t, w).Meta["total"])

	w = perform(r, http.MethodPost, "/venues", `{"venue":"EMNLP","year":"2025"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, mockSvc.created)

	w = perform(r, http.MethodDelete, "/venues/v1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "v1", mockSvc.deletedID)
}

func TestVenueHandlerUpdateForbidden(t *testing.T) {
	mockSvc := &venueServiceMock{updateErr: appErrors.Clone(appErrors.ErrForbidden, "You are not allowed to edit this venue")}
	h := NewVenueHandler(mockSvc, nil)
	r := newTestRouter(models.RoleStudent, func(g *gin.RouterGroup) { g.PUT("/venues/:id", h.Update) })

	w := perform(r, http.MethodPut, "/venues/v1", `{"venue":"ACL"}`)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "You are not allowed to edit this venue", decode(t, w).Error.Message)
}

func TestSupervisionHandlerSave(t *testing.T) {
	mockSvc := &supervisionServiceMock{saveCreated: true}
	h := NewSupervisionHandler(mockSvc, nil)
	r := newTestRouter(models.RoleFaculty, func(g *gin.RouterGroup) { g.POST("/supervisions", h.Save) })

	body := `{"student_id":"s1","joining":"2024-08-01","thesis_title":"Parsing"}`
	w := perform(r, http.MethodPost, "/supervisions", body)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "s1", mockSvc.lastSave.StudentID)

	mockSvc.saveCreated = false
	w = perform(r, http.MethodPost, "/supervisions", body)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSupervisionHandlerUnsuperviseAndFaculty(t *testing.T) {
	mockSvc := &supervisionServiceMock{}
	h := NewSupervisionHandler(mockSvc, service.NewExportService(nil, nil, nil))
	r := newTestRouter(models.RoleFaculty, func(g *gin.RouterGroup) {
		g.DELETE("/supervisions/unsupervise", h.Unsupervise)
		g.GET("/supervisions/faculty", h.Faculty)
		g.GET("/supervisions/export", h.Export)
	})

	w := perform(r, http.MethodDelete, "/supervisions/unsupervise", `{"student_id":"s1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "s1", mockSvc.lastUnsupervise.StudentID)

	mockSvc.unsuperviseErr = appErrors.Clone(appErrors.ErrNotFound, "student is not supervised")
	w = perform(r, http.MethodDelete, "/supervisions/unsupervise", `{"student_id":"s9"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = perform(r, http.MethodGet, "/supervisions/faculty?search=rav", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rav", mockSvc.lastFacultyQuery)

	w = perform(r, http.MethodGet, "/supervisions/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Parsing")
}
