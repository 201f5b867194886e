package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-school-agenda/internal/adapter"
	"github.com/MKhiriev/go-school-agenda/internal/config"
	"github.com/MKhiriev/go-school-agenda/internal/logger"
	"github.com/MKhiriev/go-school-agenda/internal/store"
	"github.com/MKhiriev/go-school-agenda/models"
)

// syncService is the concrete implementation of SyncService.
// A sync cycle builds a portal session from the user's stored
// credentials, fetches the agenda window and the grade list, and
// replaces the two remote-derived record categories. Both fetches must
// succeed before either category is written, so a portal failure leaves
// every dataset exactly as it was. The overlay categories are never
// read or written here.
type syncService struct {
	users   store.UserRepository
	records store.RecordStore
	remotes adapter.Factory
	locks   *userLocks

	lookbackDays  int
	lookaheadDays int

	logger *logger.Logger
}

// NewSyncService constructs a SyncService. remotes builds the per-user
// portal client; the fetch window comes from cfg.
func NewSyncService(users store.UserRepository, records store.RecordStore, remotes adapter.Factory, cfg config.Adapter, locks *userLocks, logger *logger.Logger) SyncService {
	return &syncService{
		users:         users,
		records:       records,
		remotes:       remotes,
		locks:         locks,
		lookbackDays:  cfg.LookbackDays,
		lookaheadDays: cfg.LookaheadDays,
		logger:        logger,
	}
}

// Sync replaces the user's homework and grade datasets from the portal.
// Returns ErrMissingRemoteCredentials when the account has no portal
// credentials, and an error wrapping ErrRemoteSyncFailed when either
// fetch fails; in both cases no dataset has been touched.
func (s *syncService) Sync(ctx context.Context, userID string) (models.SyncResult, error) {
	log := logger.FromContext(ctx)

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("user lookup failed")
		return models.SyncResult{}, fmt.Errorf("user lookup failed: %w", err)
	}
	if !user.HasRemoteCredentials() {
		return models.SyncResult{}, ErrMissingRemoteCredentials
	}

	remote := s.remotes(adapter.Credentials{
		Username: user.RemoteUsername,
		Password: user.RemotePassword,
	})

	homework, err := remote.FetchHomework(ctx, s.lookbackDays, s.lookaheadDays)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("homework fetch failed")
		return models.SyncResult{}, fmt.Errorf("%w: homework fetch: %v", ErrRemoteSyncFailed, err)
	}

	grades, err := remote.FetchGrades(ctx)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("grades fetch failed")
		return models.SyncResult{}, fmt.Errorf("%w: grades fetch: %v", ErrRemoteSyncFailed, err)
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	if err = s.records.Save(ctx, userID, store.CategoryHomework, homework); err != nil {
		log.Err(err).Str("user_id", userID).Msg("saving homework failed")
		return models.SyncResult{}, fmt.Errorf("saving homework failed: %w", err)
	}
	if err = s.records.Save(ctx, userID, store.CategoryGrades, grades); err != nil {
		log.Err(err).Str("user_id", userID).Msg("saving grades failed")
		return models.SyncResult{}, fmt.Errorf("saving grades failed: %w", err)
	}

	result := models.SyncResult{HomeworkCount: len(homework), GradeCount: len(grades)}
	log.Info().Str("user_id", userID).
		Int("homework", result.HomeworkCount).
		Int("grades", result.GradeCount).
		Msg("sync completed")
	return result, nil
}
