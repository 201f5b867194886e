package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-school-agenda/internal/config"
	"github.com/MKhiriev/go-school-agenda/internal/logger"
)

// fileStore is the [FileStore] implementation persisting uploaded files
// under the per-user profile directories:
//
//	<data_dir>/profiles/<user_id>/attachments/<stored_name>
//	<data_dir>/profiles/<user_id>/<stored_name>          (avatars)
type fileStore struct {
	profilesDir string

	logger *logger.Logger
}

// NewFileStore constructs a [FileStore] rooted at the profiles directory
// of cfg.DataDir, creating it if needed.
func NewFileStore(cfg config.Storage, log *logger.Logger) (FileStore, error) {
	profilesDir := filepath.Join(cfg.DataDir, "profiles")
	if err := os.MkdirAll(profilesDir, 0o755); err != nil {
		return nil, fmt.Errorf("create profiles dir: %w", err)
	}

	log.Debug().Str("dir", profilesDir).Msg("creating file store")
	return &fileStore{
		profilesDir: profilesDir,
		logger:      log,
	}, nil
}

func (s *fileStore) SaveAttachment(ctx context.Context, userID, storedName string, src io.Reader) error {
	return s.save(ctx, src, userID, "attachments", storedName)
}

func (s *fileStore) OpenAttachment(ctx context.Context, userID, storedName string) (io.ReadCloser, error) {
	return s.open(userID, "attachments", storedName)
}

func (s *fileStore) RemoveAttachment(ctx context.Context, userID, storedName string) error {
	return s.remove(userID, "attachments", storedName)
}

func (s *fileStore) SaveAvatar(ctx context.Context, userID, storedName string, src io.Reader) error {
	return s.save(ctx, src, userID, storedName)
}

func (s *fileStore) OpenAvatar(ctx context.Context, userID, storedName string) (io.ReadCloser, error) {
	return s.open(userID, storedName)
}

// profilePath joins the profiles root with the given elements after
// checking that every one of them is a single clean path name. The user
// identifier and stored name both come straight from the URL on the
// public download routes, so dot segments and separators are rejected
// before any path touches the filesystem.
func (s *fileStore) profilePath(elems ...string) (string, error) {
	for _, e := range elems {
		if e == "" || e == "." || e == ".." ||
			strings.ContainsAny(e, `/\`) || filepath.Clean(e) != e {
			return "", fmt.Errorf("%w: %q", ErrInvalidFileName, e)
		}
	}

	return filepath.Join(append([]string{s.profilesDir}, elems...)...), nil
}

// save streams src into the file addressed by elems under the profiles
// root. The destination handle is closed on every exit path, and a file
// that could not be fully written is removed so a failed upload never
// leaves a partial file behind.
func (s *fileStore) save(ctx context.Context, src io.Reader, elems ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.profilePath(elems...)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: create dir: %w", ErrWritingFile, err)
	}

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrWritingFile, filepath.Base(path), err)
	}

	if _, err = io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return fmt.Errorf("%w: write %s: %w", ErrWritingFile, filepath.Base(path), err)
	}

	if err = dst.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("%w: close %s: %w", ErrWritingFile, filepath.Base(path), err)
	}

	return nil
}

func (s *fileStore) open(elems ...string) (io.ReadCloser, error) {
	path, err := s.profilePath(elems...)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("open stored file: %w", err)
	}

	return f, nil
}

// remove deletes the stored file; a file that is already gone is not an
// error, keeping deletes idempotent.
func (s *fileStore) remove(elems ...string) error {
	path, err := s.profilePath(elems...)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove stored file: %w", err)
	}

	return nil
}
