package service

import (
	"context"
	"io"

	"github.com/MKhiriev/go-school-agenda/models"
)

// UserService manages the account registry: registration, the PIN login
// check with session token issuance, and profile mutations.
type UserService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, userID, pin string) (models.User, models.Token, error)
	GetUser(ctx context.Context, userID string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdatePIN(ctx context.Context, userID, oldPIN, newPIN string) error
	UpdatePeriod(ctx context.Context, userID, period string) (models.User, error)
	SetAvatar(ctx context.Context, userID, fileName string, src io.Reader) (string, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// AgendaService serves the merged task view and the manual task
// overlay, plus the read side of the synced grade list.
type AgendaService interface {
	// VisibleTasks returns the synced homework followed by the manual
	// tasks, both in insertion order.
	VisibleTasks(ctx context.Context, userID string) ([]models.Task, error)
	AddManualTask(ctx context.Context, userID string, req models.ManualTaskRequest) (models.Task, error)
	DeleteManualTask(ctx context.Context, userID, taskID string) error
	Grades(ctx context.Context, userID string) ([]models.Grade, error)
}

// StatusService manages per-event completion flags.
type StatusService interface {
	Statuses(ctx context.Context, userID string) (models.StatusMap, error)
	SetStatus(ctx context.Context, userID string, upd models.StatusUpdateRequest) error
}

// AttachmentService manages per-event file attachments: the registry
// document plus the file bytes on disk.
type AttachmentService interface {
	Attachments(ctx context.Context, userID string) (models.AttachmentMap, error)
	AddAttachment(ctx context.Context, userID, eventID, fileName string, src io.Reader) (models.Attachment, error)
	// DeleteAttachment is idempotent: deleting an attachment that is
	// not registered (or whose file is already gone) succeeds.
	DeleteAttachment(ctx context.Context, userID, eventID, storedName string) error
	OpenAttachment(ctx context.Context, userID, storedName string) (io.ReadCloser, error)
	OpenProfileFile(ctx context.Context, userID, storedName string) (io.ReadCloser, error)
}

// SyncService replaces the remote-derived datasets from the portal.
type SyncService interface {
	Sync(ctx context.Context, userID string) (models.SyncResult, error)
}
