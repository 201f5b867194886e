package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-school-agenda/internal/adapter"
	"github.com/MKhiriev/go-school-agenda/internal/config"
	"github.com/MKhiriev/go-school-agenda/internal/logger"
	"github.com/MKhiriev/go-school-agenda/internal/service"
	"github.com/MKhiriev/go-school-agenda/internal/store"
	"github.com/MKhiriev/go-school-agenda/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRemote is a canned RemoteSource for driving the sync route.
type stubRemote struct {
	homework []models.Task
	grades   []models.Grade
	err      error
}

func (s *stubRemote) FetchHomework(context.Context, int, int) ([]models.Task, error) {
	return s.homework, s.err
}

func (s *stubRemote) FetchGrades(context.Context) ([]models.Grade, error) {
	return s.grades, s.err
}

func newTestHandler(t *testing.T, remote adapter.RemoteSource) http.Handler {
	t.Helper()

	cfg := config.StructuredConfig{
		App: config.App{
			TokenSignKey:  "routes-test-key",
			TokenIssuer:   "go-school-agenda-test",
			TokenDuration: time.Hour,
			Version:       "test",
		},
		Adapter: config.Adapter{LookbackDays: 90, LookaheadDays: 90},
	}

	storages, err := store.NewStorages(context.Background(), config.Storage{DataDir: t.TempDir()}, logger.Nop())
	require.NoError(t, err)

	factory := func(adapter.Credentials) adapter.RemoteSource { return remote }
	services := service.NewServices(storages, factory, cfg, logger.Nop())
	handler := NewHandler(services, cfg.App.Version, logger.Nop())

	return handler.Init()
}

func newTestServer(t *testing.T, remote adapter.RemoteSource) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(newTestHandler(t, remote))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var payload T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return payload
}

// registerAndLogin creates the account and returns the session token.
func registerAndLogin(t *testing.T, srv *httptest.Server) string {
	t.Helper()

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/user/register", "", models.RegisterRequest{
		Name: "Anna Rossi", PIN: "1234", RemoteUsername: "S1", RemotePassword: "p",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	login := decodeBody[models.LoginResponse](t, resp)
	require.NotEmpty(t, login.Token)
	require.Equal(t, "anna_rossi", login.User.ID)
	return login.Token
}

func TestRegisterLoginFlow(t *testing.T) {
	srv := newTestServer(t, &stubRemote{})
	registerAndLogin(t, srv)

	// duplicate registration conflicts
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/user/register", "", models.RegisterRequest{
		Name: "Anna Rossi", PIN: "9999",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// wrong pin rejected
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/login", "", models.LoginRequest{
		UserID: "anna_rossi", PIN: "0000",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// the user picker is public and carries no secrets
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/users", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	users := decodeBody[[]map[string]any](t, resp)
	require.Len(t, users, 1)
	assert.NotContains(t, users[0], "pin")
	assert.NotContains(t, users[0], "cv_username")
}

func TestDataRoutes_RequireToken(t *testing.T) {
	srv := newTestServer(t, &stubRemote{})

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/homework"},
		{http.MethodGet, "/api/grades"},
		{http.MethodGet, "/api/status"},
		{http.MethodGet, "/api/attachments"},
		{http.MethodPost, "/api/sync"},
	} {
		resp := doJSON(t, route.method, srv.URL+route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, route.path)
		resp.Body.Close()
	}

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/homework", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestManualTaskLifecycle(t *testing.T) {
	srv := newTestServer(t, &stubRemote{})
	token := registerAndLogin(t, srv)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/manual_tasks", token, models.ManualTaskRequest{
		Title: "ripassare storia", Start: "2026-09-01 08:00", Kind: "compiti",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	created := decodeBody[models.TaskResponse](t, resp)
	assert.True(t, models.IsManualTaskID(created.Task.ID))

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/homework", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tasks := decodeBody[[]models.Task](t, resp)
	require.Len(t, tasks, 1)
	assert.Equal(t, created.Task.ID, tasks[0].ID)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/manual_tasks/"+created.Task.ID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/manual_tasks/"+created.Task.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// a remote identifier never names a manual task
	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/manual_tasks/418230", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestStatusRoutes(t *testing.T) {
	srv := newTestServer(t, &stubRemote{})
	token := registerAndLogin(t, srv)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/status", token, models.StatusUpdateRequest{
		EventID: "418230", Started: true, Completed: false,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/status", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	statuses := decodeBody[models.StatusMap](t, resp)
	assert.Equal(t, models.EventStatus{Started: true}, statuses["418230"])
}

func TestAttachmentRoutes(t *testing.T) {
	srv := newTestServer(t, &stubRemote{})
	token := registerAndLogin(t, srv)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "notes finali.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("pdf bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/attachments/418230", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	uploaded := decodeBody[models.AttachmentResponse](t, resp)
	assert.Equal(t, "notes finali.pdf", uploaded.Attachment.OriginalName)
	assert.NotContains(t, uploaded.Attachment.StoredName, " ")

	// the download link is public
	resp, err = http.Get(srv.URL + uploaded.Attachment.URL)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	content, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(content))

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/attachments/418230/"+uploaded.Attachment.StoredName, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// idempotent delete
	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/attachments/418230/"+uploaded.Attachment.StoredName, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + uploaded.Attachment.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

// TestFileRoutes_RejectDotSegmentPaths sends raw requests straight to the
// router: an HTTP client normalises ".." away, but nothing stops a caller
// from putting dot segments on the wire, and the profile routes are
// public. Such paths must never resolve into the registry or any file
// outside the caller's profile directory.
func TestFileRoutes_RejectDotSegmentPaths(t *testing.T) {
	mux := newTestHandler(t, &stubRemote{})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	// registration persists the credential registry next to profiles/
	registerAndLogin(t, srv)

	for _, path := range []string{
		"/api/profiles/../users.json",
		"/api/profiles/%2e%2e/users.json",
		"/api/profiles/anna_rossi/../../users.json",
		"/api/profiles/../attachments/users.json",
		"/api/profiles/anna_rossi/attachments/../../../users.json",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		// unroutable shapes fall through to 404; anything that does
		// match a file route is rejected with 400 before the open
		assert.Contains(t, []int{http.StatusBadRequest, http.StatusNotFound}, rec.Code, path)
		assert.NotContains(t, rec.Body.String(), "1234", path)
		assert.NotContains(t, rec.Body.String(), "cv_password", path)
	}
}

func TestSyncRoute(t *testing.T) {
	remote := &stubRemote{
		homework: []models.Task{{ID: "418230", Title: "esercizi"}},
		grades:   []models.Grade{{ID: "900100", Subject: "STORIA"}},
	}
	srv := newTestServer(t, remote)
	token := registerAndLogin(t, srv)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/sync", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decodeBody[models.SyncResponse](t, resp)
	assert.Equal(t, 1, result.HomeworkCount)
	assert.Equal(t, 1, result.GradeCount)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/grades", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	grades := decodeBody[[]models.Grade](t, resp)
	require.Len(t, grades, 1)
	assert.Equal(t, "STORIA", grades[0].Subject)
}

func TestSyncRoute_PortalFailure(t *testing.T) {
	srv := newTestServer(t, &stubRemote{err: errors.New("portal down")})
	token := registerAndLogin(t, srv)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/sync", token, nil)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	resp.Body.Close()
}

func TestProfileRoutes_CrossUserForbidden(t *testing.T) {
	srv := newTestServer(t, &stubRemote{})
	token := registerAndLogin(t, srv)

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/users/somebody_else/pin", token, models.UpdatePINRequest{
		OldPIN: "1234", NewPIN: "5678",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPut, srv.URL+"/api/users/anna_rossi/period", token, models.UpdatePeriodRequest{
		AcademicPeriod: models.PeriodQuadrimestre,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPut, srv.URL+"/api/users/anna_rossi/period", token, models.UpdatePeriodRequest{
		AcademicPeriod: "semestre",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
