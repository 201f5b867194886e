package workers

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-school-agenda/internal/logger"
	"github.com/MKhiriev/go-school-agenda/internal/service"
)

// syncWorker periodically refreshes every account's remote datasets so
// the agenda stays current between explicit sync requests. Accounts
// without portal credentials are skipped; one user's portal failure
// never stops the pass for the rest.
type syncWorker struct {
	users    service.UserService
	syncs    service.SyncService
	interval time.Duration

	ctx    context.Context
	logger *logger.Logger
}

// NewSyncWorker builds a periodic sync worker. The worker is idle until
// Run is called; it stops when ctx is cancelled.
func NewSyncWorker(ctx context.Context, users service.UserService, syncs service.SyncService, interval time.Duration, logger *logger.Logger) Worker {
	return &syncWorker{
		users:    users,
		syncs:    syncs,
		interval: interval,
		ctx:      ctx,
		logger:   logger,
	}
}

// Run starts the ticker goroutine and returns immediately.
func (w *syncWorker) Run() {
	go func() {
		t := time.NewTicker(w.interval)
		defer t.Stop()

		for {
			select {
			case <-w.ctx.Done():
				w.logger.Info().Msg("sync worker stopped")
				return
			case <-t.C:
				w.syncAllUsers()
			}
		}
	}()
}

func (w *syncWorker) syncAllUsers() {
	log := w.logger.GetChildLogger()

	users, err := w.users.ListUsers(w.ctx)
	if err != nil {
		log.Err(err).Msg("sync worker: listing users failed")
		return
	}

	for _, user := range users {
		result, err := w.syncs.Sync(w.ctx, user.ID)
		switch {
		case errors.Is(err, service.ErrMissingRemoteCredentials):
			continue
		case err != nil:
			log.Err(err).Str("user_id", user.ID).Msg("sync worker: sync failed")
		default:
			log.Debug().Str("user_id", user.ID).
				Int("homework", result.HomeworkCount).
				Int("grades", result.GradeCount).
				Msg("sync worker: user synced")
		}
	}
}
