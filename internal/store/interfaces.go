package store

import (
	"context"
	"io"

	"github.com/MKhiriev/go-school-agenda/models"
)

// Category identifies one independently stored and independently
// replaceable per-user dataset.
type Category string

// Per-user dataset categories. The remote-derived categories (homework,
// grades) are wholly replaced on every sync; the overlay categories
// (manual tasks, status, attachments) are only ever touched by explicit
// user actions.
const (
	CategoryHomework    Category = "homework"
	CategoryGrades      Category = "grades"
	CategoryManualTasks Category = "manual_tasks"
	CategoryStatus      Category = "status"
	CategoryAttachments Category = "attachments"
)

// RecordStore is the generic per-user, per-category persistence layer.
//
// Load decodes the last persisted document for category+userID into dest.
// When nothing has been persisted yet, Load returns nil and leaves dest
// untouched, so callers pass a pre-initialised category-appropriate empty
// default (empty map for status/attachments, empty slice otherwise).
// Absence is never an error.
//
// Save fully replaces any prior document for that exact category+userID
// pair. Each save is all-or-nothing: either the complete new document is
// persisted or the old one remains readable.
type RecordStore interface {
	Load(ctx context.Context, userID string, category Category, dest any) error
	Save(ctx context.Context, userID string, category Category, value any) error
}

// UserRepository persists the account registry. Accounts are created on
// registration and mutated by PIN/period/avatar updates; there is no
// delete operation.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUser(ctx context.Context, userID string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
}

// FileStore owns the binary file areas of the per-user profiles:
// uploaded attachments and avatar images.
//
// Save methods must not leave a partial file behind on a failed write;
// Remove methods are idempotent — removing a file that does not exist
// is not an error.
type FileStore interface {
	SaveAttachment(ctx context.Context, userID, storedName string, src io.Reader) error
	OpenAttachment(ctx context.Context, userID, storedName string) (io.ReadCloser, error)
	RemoveAttachment(ctx context.Context, userID, storedName string) error

	SaveAvatar(ctx context.Context, userID, storedName string, src io.Reader) error
	OpenAvatar(ctx context.Context, userID, storedName string) (io.ReadCloser, error)
}
