package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-school-agenda/internal/config"
	"github.com/MKhiriev/go-school-agenda/internal/logger"
)

// fileRecordStore is the default [RecordStore] implementation: one JSON
// document per category per user under
// "<data_dir>/profiles/<user_id>/<category>.json".
//
// A save writes the whole document to a temporary file in the same
// directory and renames it over the old one, so readers either see the
// complete new document or the complete old one, never a torn write.
type fileRecordStore struct {
	profilesDir string

	logger *logger.Logger
}

// NewFileRecordStore constructs a [RecordStore] rooted at the profiles
// directory of cfg.DataDir, creating it if needed.
func NewFileRecordStore(cfg config.Storage, log *logger.Logger) (RecordStore, error) {
	profilesDir := filepath.Join(cfg.DataDir, "profiles")
	if err := os.MkdirAll(profilesDir, 0o755); err != nil {
		return nil, fmt.Errorf("create profiles dir: %w", err)
	}

	log.Debug().Str("dir", profilesDir).Msg("creating file record store")
	return &fileRecordStore{
		profilesDir: profilesDir,
		logger:      log,
	}, nil
}

func (s *fileRecordStore) documentPath(userID string, category Category) string {
	return filepath.Join(s.profilesDir, userID, string(category)+".json")
}

func (s *fileRecordStore) Load(ctx context.Context, userID string, category Category, dest any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(s.documentPath(userID, category))
	if err != nil {
		if os.IsNotExist(err) {
			// nothing persisted yet: dest keeps its empty default
			return nil
		}
		return fmt.Errorf("%w: read %s/%s: %w", ErrLoadingRecords, userID, category, err)
	}

	if err = json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("%w: decode %s/%s: %w", ErrLoadingRecords, userID, category, err)
	}

	return nil
}

func (s *fileRecordStore) Save(ctx context.Context, userID string, category Category, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s/%s: %w", ErrSavingRecords, userID, category, err)
	}

	userDir := filepath.Join(s.profilesDir, userID)
	if err = os.MkdirAll(userDir, 0o755); err != nil {
		return fmt.Errorf("%w: create user dir: %w", ErrSavingRecords, err)
	}

	// write-then-rename keeps the old document intact on a failed write
	tmp, err := os.CreateTemp(userDir, string(category)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", ErrSavingRecords, err)
	}

	if _, err = tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: write %s/%s: %w", ErrSavingRecords, userID, category, err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: close %s/%s: %w", ErrSavingRecords, userID, category, err)
	}

	if err = os.Rename(tmp.Name(), s.documentPath(userID, category)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: replace %s/%s: %w", ErrSavingRecords, userID, category, err)
	}

	return nil
}
