package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MKhiriev/go-school-agenda/internal/logger"
	"github.com/MKhiriev/go-school-agenda/internal/store"
	"github.com/MKhiriev/go-school-agenda/models"
)

// attachmentService is the concrete implementation of AttachmentService.
// Every attachment exists twice: as bytes in the user's file area and
// as a descriptor in the attachments registry document. Uploads write
// the file first and register it second, so a crash in between leaves
// an orphan file but never a dangling registry entry.
type attachmentService struct {
	records store.RecordStore
	files   store.FileStore
	locks   *userLocks
	logger  *logger.Logger
}

func NewAttachmentService(records store.RecordStore, files store.FileStore, locks *userLocks, logger *logger.Logger) AttachmentService {
	return &attachmentService{records: records, files: files, locks: locks, logger: logger}
}

func (s *attachmentService) Attachments(ctx context.Context, userID string) (models.AttachmentMap, error) {
	attachments := make(models.AttachmentMap)
	if err := s.records.Load(ctx, userID, store.CategoryAttachments, &attachments); err != nil {
		return nil, fmt.Errorf("loading attachments failed: %w", err)
	}
	return attachments, nil
}

// AddAttachment stores the uploaded file under a unique name derived
// from the event identifier, the upload timestamp and the sanitised
// original name, then registers the descriptor under the event.
func (s *attachmentService) AddAttachment(ctx context.Context, userID, eventID, fileName string, src io.Reader) (models.Attachment, error) {
	log := logger.FromContext(ctx)

	if fileName == "" {
		return models.Attachment{}, ErrNoFileNameProvided
	}
	if eventID == "" {
		return models.Attachment{}, ErrInvalidDataProvided
	}

	storedName := timestampedFileName(eventID, fileName)
	if err := s.files.SaveAttachment(ctx, userID, storedName, src); err != nil {
		log.Err(err).Str("user_id", userID).Str("file", storedName).Msg("attachment save failed")
		return models.Attachment{}, fmt.Errorf("attachment save failed: %w", err)
	}

	attachment := models.Attachment{
		StoredName:   storedName,
		OriginalName: fileName,
		URL:          fmt.Sprintf("/api/profiles/%s/attachments/%s", userID, storedName),
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	attachments := make(models.AttachmentMap)
	if err := s.records.Load(ctx, userID, store.CategoryAttachments, &attachments); err != nil {
		log.Err(err).Str("user_id", userID).Msg("loading attachments failed")
		return models.Attachment{}, fmt.Errorf("loading attachments failed: %w", err)
	}

	attachments[eventID] = append(attachments[eventID], attachment)
	if err := s.records.Save(ctx, userID, store.CategoryAttachments, attachments); err != nil {
		log.Err(err).Str("user_id", userID).Msg("saving attachments failed")
		return models.Attachment{}, fmt.Errorf("saving attachments failed: %w", err)
	}

	log.Info().Str("user_id", userID).Str("ev_id", eventID).Str("file", storedName).Msg("attachment added")
	return attachment, nil
}

// DeleteAttachment drops the descriptor from the registry and removes
// the file. Both steps tolerate absence, so the whole operation is
// idempotent and safe to retry.
func (s *attachmentService) DeleteAttachment(ctx context.Context, userID, eventID, storedName string) error {
	log := logger.FromContext(ctx)

	unlock := s.locks.Lock(userID)
	defer unlock()

	attachments := make(models.AttachmentMap)
	if err := s.records.Load(ctx, userID, store.CategoryAttachments, &attachments); err != nil {
		log.Err(err).Str("user_id", userID).Msg("loading attachments failed")
		return fmt.Errorf("loading attachments failed: %w", err)
	}

	if registered, ok := attachments[eventID]; ok {
		kept := registered[:0]
		for _, a := range registered {
			if a.StoredName != storedName {
				kept = append(kept, a)
			}
		}
		attachments[eventID] = kept
		if err := s.records.Save(ctx, userID, store.CategoryAttachments, attachments); err != nil {
			log.Err(err).Str("user_id", userID).Msg("saving attachments failed")
			return fmt.Errorf("saving attachments failed: %w", err)
		}
	}

	if err := s.files.RemoveAttachment(ctx, userID, storedName); err != nil {
		log.Err(err).Str("user_id", userID).Str("file", storedName).Msg("attachment file removal failed")
		return fmt.Errorf("attachment file removal failed: %w", err)
	}

	return nil
}

func (s *attachmentService) OpenAttachment(ctx context.Context, userID, storedName string) (io.ReadCloser, error) {
	return s.files.OpenAttachment(ctx, userID, storedName)
}

// OpenProfileFile serves files stored in the profile root, which today
// means uploaded avatars.
func (s *attachmentService) OpenProfileFile(ctx context.Context, userID, storedName string) (io.ReadCloser, error) {
	return s.files.OpenAvatar(ctx, userID, storedName)
}

// sanitizeFileName strips path-relevant characters from a client
// supplied file name. Spaces become underscores, slashes are dropped.
func sanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "/", "")
	name = strings.ReplaceAll(name, "\\", "")
	return name
}

// timestampedFileName builds the on-disk name for an upload:
// "<prefix>_<unix timestamp>_<sanitised original name>". The timestamp
// keeps repeated uploads of the same file name from clobbering each
// other.
func timestampedFileName(prefix, fileName string) string {
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().Unix(), sanitizeFileName(fileName))
}
