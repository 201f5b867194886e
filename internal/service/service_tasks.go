package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-school-agenda/internal/logger"
	"github.com/MKhiriev/go-school-agenda/internal/store"
	"github.com/MKhiriev/go-school-agenda/internal/utils"
	"github.com/MKhiriev/go-school-agenda/models"
)

// agendaService is the concrete implementation of AgendaService.
// Synced homework and the manual task overlay live in separate record
// categories; the merged view is assembled on every read and never
// persisted, so a sync replacing the homework document can never drop a
// manual task.
type agendaService struct {
	records store.RecordStore
	ids     *utils.ManualIDGenerator
	locks   *userLocks
	logger  *logger.Logger
}

// NewAgendaService constructs an AgendaService on top of the record
// store. locks must be the same registry every other per-user writer
// uses.
func NewAgendaService(records store.RecordStore, locks *userLocks, logger *logger.Logger) AgendaService {
	return &agendaService{
		records: records,
		ids:     utils.NewManualIDGenerator(),
		locks:   locks,
		logger:  logger,
	}
}

// VisibleTasks returns every synced homework record followed by every
// manual task, each list in its insertion order.
func (s *agendaService) VisibleTasks(ctx context.Context, userID string) ([]models.Task, error) {
	log := logger.FromContext(ctx)

	homework := make([]models.Task, 0)
	if err := s.records.Load(ctx, userID, store.CategoryHomework, &homework); err != nil {
		log.Err(err).Str("user_id", userID).Msg("loading homework failed")
		return nil, fmt.Errorf("loading homework failed: %w", err)
	}

	manual := make([]models.Task, 0)
	if err := s.records.Load(ctx, userID, store.CategoryManualTasks, &manual); err != nil {
		log.Err(err).Str("user_id", userID).Msg("loading manual tasks failed")
		return nil, fmt.Errorf("loading manual tasks failed: %w", err)
	}

	return append(homework, manual...), nil
}

// AddManualTask appends a locally authored task to the manual overlay.
// The identifier is generated here and is guaranteed to live outside
// the portal's identifier space.
func (s *agendaService) AddManualTask(ctx context.Context, userID string, req models.ManualTaskRequest) (models.Task, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(req.Title) == "" {
		return models.Task{}, ErrInvalidDataProvided
	}

	task := models.Task{
		ID:          s.ids.Generate(),
		Title:       req.Title,
		Start:       req.Start,
		Kind:        req.Kind,
		SubjectDesc: req.SubjectDesc,
		AuthorDesc:  req.AuthorDesc,
		IsManual:    true,
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	manual := make([]models.Task, 0)
	if err := s.records.Load(ctx, userID, store.CategoryManualTasks, &manual); err != nil {
		log.Err(err).Str("user_id", userID).Msg("loading manual tasks failed")
		return models.Task{}, fmt.Errorf("loading manual tasks failed: %w", err)
	}

	manual = append(manual, task)
	if err := s.records.Save(ctx, userID, store.CategoryManualTasks, manual); err != nil {
		log.Err(err).Str("user_id", userID).Msg("saving manual tasks failed")
		return models.Task{}, fmt.Errorf("saving manual tasks failed: %w", err)
	}

	log.Info().Str("user_id", userID).Str("task_id", task.ID).Msg("manual task added")
	return task, nil
}

// DeleteManualTask removes one manual task by identifier. An identifier
// outside the manual namespace can never name a manual task, so it is
// answered as not found without loading the overlay: synced homework
// cannot be deleted through this path.
func (s *agendaService) DeleteManualTask(ctx context.Context, userID, taskID string) error {
	log := logger.FromContext(ctx)

	if !models.IsManualTaskID(taskID) {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	manual := make([]models.Task, 0)
	if err := s.records.Load(ctx, userID, store.CategoryManualTasks, &manual); err != nil {
		log.Err(err).Str("user_id", userID).Msg("loading manual tasks failed")
		return fmt.Errorf("loading manual tasks failed: %w", err)
	}

	kept := manual[:0]
	for _, t := range manual {
		if t.ID != taskID {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(manual) {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}

	if err := s.records.Save(ctx, userID, store.CategoryManualTasks, kept); err != nil {
		log.Err(err).Str("user_id", userID).Msg("saving manual tasks failed")
		return fmt.Errorf("saving manual tasks failed: %w", err)
	}

	log.Info().Str("user_id", userID).Str("task_id", taskID).Msg("manual task deleted")
	return nil
}

// Grades returns the synced grade list verbatim.
func (s *agendaService) Grades(ctx context.Context, userID string) ([]models.Grade, error) {
	grades := make([]models.Grade, 0)
	if err := s.records.Load(ctx, userID, store.CategoryGrades, &grades); err != nil {
		return nil, fmt.Errorf("loading grades failed: %w", err)
	}
	return grades, nil
}
