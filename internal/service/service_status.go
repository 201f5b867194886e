package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-school-agenda/internal/logger"
	"github.com/MKhiriev/go-school-agenda/internal/store"
	"github.com/MKhiriev/go-school-agenda/models"
)

// statusService is the concrete implementation of StatusService.
// Statuses are keyed by event identifier only, so a flag set on a
// synced homework record survives the record being replaced or dropped
// by a later sync, and reattaches if the record comes back.
type statusService struct {
	records store.RecordStore
	locks   *userLocks
	logger  *logger.Logger
}

func NewStatusService(records store.RecordStore, locks *userLocks, logger *logger.Logger) StatusService {
	return &statusService{records: records, locks: locks, logger: logger}
}

func (s *statusService) Statuses(ctx context.Context, userID string) (models.StatusMap, error) {
	statuses := make(models.StatusMap)
	if err := s.records.Load(ctx, userID, store.CategoryStatus, &statuses); err != nil {
		return nil, fmt.Errorf("loading statuses failed: %w", err)
	}
	return statuses, nil
}

// SetStatus upserts both completion flags for one event. The event
// identifier is not checked against the task lists: flags may be set
// for events that are not currently visible.
func (s *statusService) SetStatus(ctx context.Context, userID string, upd models.StatusUpdateRequest) error {
	log := logger.FromContext(ctx)

	if upd.EventID == "" {
		return ErrInvalidDataProvided
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	statuses := make(models.StatusMap)
	if err := s.records.Load(ctx, userID, store.CategoryStatus, &statuses); err != nil {
		log.Err(err).Str("user_id", userID).Msg("loading statuses failed")
		return fmt.Errorf("loading statuses failed: %w", err)
	}

	statuses[upd.EventID] = models.EventStatus{Started: upd.Started, Completed: upd.Completed}
	if err := s.records.Save(ctx, userID, store.CategoryStatus, statuses); err != nil {
		log.Err(err).Str("user_id", userID).Msg("saving statuses failed")
		return fmt.Errorf("saving statuses failed: %w", err)
	}

	return nil
}
