package repository

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lab-portal-api/internal/models"
	appErrors "github.com/noah-isme/lab-portal-api/pkg/errors"
	"github.com/noah-isme/lab-portal-api/pkg/middleware/requestid"
)

type recordedCall struct {
	op     string
	status int
}

type observerStub struct {
	calls []recordedCall
}

func (o *observerStub) ObserveBackendCall(op string, status int, _ time.Duration) {
	o.calls = append(o.calls, recordedCall{op: op, status: status})
}

type capturedRequest struct {
	method string
	path   string
	auth   string
	reqID  string
	body   string
}

func newBackend(t *testing.T, status int, response string) (*BackendClient, *capturedRequest, *observerStub) {
	t.Helper()
	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		captured.method = r.Method
		captured.path = r.URL.Path
		captured.auth = r.Header.Get("Authorization")
		captured.reqID = r.Header.Get(requestid.HeaderKey)
		captured.body = string(raw)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	obs := &observerStub{}
	return NewBackendClient(srv.URL+"/api/v1", nil, time.Second, nil, obs), captured, obs
}

func TestBackendClientForwardsIdentity(t *testing.T) {
	client, captured, obs := newBackend(t, http.StatusOK, `{"notification":[{"_id":"n1","text":"hello","added_by":"u1"}]}`)
	ctx := WithBearerToken(requestid.NewContext(context.Background(), "req-1"), "tok")

	rows, err := NewNotificationRepository(client).ListForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "hello", rows[0].Text)
	assert.Equal(t, "/api/v1/notifications/u1", captured.path)
	assert.Equal(t, "Bearer tok", captured.auth)
	assert.Equal(t, "req-1", captured.reqID)
	assert.Equal(t, []recordedCall{{op: "notifications.list", status: http.StatusOK}}, obs.calls)
}

func TestBackendClientMapsStatusErrors(t *testing.T) {
	cases := []struct {
		status int
		body   string
		code   string
		want   int
		msg    string
	}{
		{http.StatusNotFound, `{"message":"Notification not found"}`, "NOT_FOUND", http.StatusNotFound, "Notification not found"},
		{http.StatusForbidden, `{"error":"nope"}`, "FORBIDDEN", http.StatusForbidden, "nope"},
		{http.StatusInternalServerError, `oops`, "BACKEND_UNAVAILABLE", http.StatusBadGateway, "an error occurred"},
	}
	for _, tc := range cases {
		client, _, _ := newBackend(t, tc.status, tc.body)
		err := NewNotificationRepository(client).Delete(context.Background(), "n1")
		require.Error(t, err)
		var appErr *appErrors.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, tc.code, appErr.Code)
		assert.Equal(t, tc.want, appErr.Status)
		assert.Equal(t, tc.msg, appErr.Message)
	}
}

func TestBackendClientNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL
	srv.Close()

	client := NewBackendClient(base, nil, time.Second, nil, nil)
	_, err := NewVenueRepository(client).ListForUser(context.Background(), "u1")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, appErrors.FromError(err).Status)
}

func TestVenueRepositoryDecodesBothShapes(t *testing.T) {
	client, _, _ := newBackend(t, http.StatusOK, `{"venues":[{"_id":"v1","venue":"ACL"}]}`)
	rows, err := NewVenueRepository(client).ListForUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	client, _, _ = newBackend(t, http.StatusOK, `[{"_id":"v1","venue":"ACL"},{"_id":"v2","venue":"EMNLP"}]`)
	rows, err = NewVenueRepository(client).ListForUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestProjectRepositoryUpdateVenue(t *testing.T) {
	client, captured, _ := newBackend(t, http.StatusOK, `{}`)
	require.NoError(t, NewProjectRepository(client).UpdateVenue(context.Background(), "p1", "ICML"))
	assert.Equal(t, http.MethodPut, captured.method)
	assert.Equal(t, "/api/v1/projects/p1", captured.path)
	assert.JSONEq(t, `{"venue":"ICML"}`, captured.body)
}

func TestProjectRepositoryStudentPath(t *testing.T) {
	client, captured, _ := newBackend(t, http.StatusOK, `[]`)
	rows, err := NewProjectRepository(client).ListForStudent(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, "/api/v1/projects/student/s1", captured.path)
}

func TestSupervisionRepositoryUnsupervise(t *testing.T) {
	client, captured, _ := newBackend(t, http.StatusOK, `{"success":true}`)
	payload := models.UnsupervisePayload{FacultyID: "f1", StudentID: "s1"}
	require.NoError(t, NewSupervisionRepository(client).Unsupervise(context.Background(), payload))
	assert.Equal(t, http.MethodDelete, captured.method)
	var sent models.UnsupervisePayload
	require.NoError(t, json.Unmarshal([]byte(captured.body), &sent))
	assert.Equal(t, payload, sent)

	client, _, _ = newBackend(t, http.StatusOK, `{"success":false,"message":"not supervised"}`)
	err := NewSupervisionRepository(client).Unsupervise(context.Background(), payload)
	require.Error(t, err)
	assert.Equal(t, "not supervised", appErrors.FromError(err).Message)
}

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, "labportal", nil)
	var dest []string
	assert.ErrorIs(t, repo.Get(context.Background(), "k", &dest), appErrors.ErrCacheMiss)
	assert.NoError(t, repo.Set(context.Background(), "k", []string{"a"}, time.Minute))
	assert.NoError(t, repo.DeleteByPattern(context.Background(), "k*"))
	assert.NoError(t, repo.Close())
	assert.Equal(t, "labportal:k", repo.key("k"))
}
