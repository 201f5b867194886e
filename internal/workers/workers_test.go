package workers

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-school-agenda/internal/logger"
	"github.com/MKhiriev/go-school-agenda/internal/service"
	"github.com/MKhiriev/go-school-agenda/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run was called.
type mockWorker struct {
	runCount int
}

func (m *mockWorker) Run() {
	m.runCount++
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}

	ws := &Workers{workers: []Worker{w1, w2}}
	ws.Run()

	assert.Equal(t, 1, w1.runCount)
	assert.Equal(t, 1, w2.runCount)
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := &Workers{}

	// must not panic when no workers are configured
	ws.Run()
}

// stubUsers serves a fixed account list; the embedded interface covers
// the methods the worker never calls.
type stubUsers struct {
	service.UserService
	users []models.User
}

func (s *stubUsers) ListUsers(context.Context) ([]models.User, error) {
	return s.users, nil
}

// stubSyncs records which users were synced and fails on request.
type stubSyncs struct {
	synced  []string
	failFor map[string]error
}

func (s *stubSyncs) Sync(_ context.Context, userID string) (models.SyncResult, error) {
	if err, ok := s.failFor[userID]; ok {
		return models.SyncResult{}, err
	}
	s.synced = append(s.synced, userID)
	return models.SyncResult{HomeworkCount: 1}, nil
}

func TestSyncWorker_SyncsEveryUserWithCredentials(t *testing.T) {
	users := &stubUsers{users: []models.User{
		{ID: "anna", RemoteUsername: "S1", RemotePassword: "p"},
		{ID: "luca", RemoteUsername: "S2", RemotePassword: "p"},
	}}
	syncs := &stubSyncs{}

	w := NewSyncWorker(context.Background(), users, syncs, 1, logger.Nop()).(*syncWorker)
	w.syncAllUsers()

	assert.Equal(t, []string{"anna", "luca"}, syncs.synced)
}

func TestSyncWorker_OneFailureDoesNotStopThePass(t *testing.T) {
	users := &stubUsers{users: []models.User{
		{ID: "anna"},
		{ID: "luca"},
		{ID: "sara"},
	}}
	syncs := &stubSyncs{failFor: map[string]error{
		"anna": service.ErrMissingRemoteCredentials,
		"luca": errors.New("portal down"),
	}}

	w := NewSyncWorker(context.Background(), users, syncs, 1, logger.Nop()).(*syncWorker)
	w.syncAllUsers()

	require.Equal(t, []string{"sara"}, syncs.synced)
}
