package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/MKhiriev/go-school-agenda/internal/config"
	"github.com/MKhiriev/go-school-agenda/internal/logger"
	"github.com/MKhiriev/go-school-agenda/models"
)

// persistedUser is the on-disk shape of one account in users.json.
// models.User hides its secret fields from JSON, so persistence uses an
// explicit mirror struct that keeps them.
type persistedUser struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	PIN            string `json:"pin"`
	RemoteUsername string `json:"cv_username"`
	RemotePassword string `json:"cv_password"`
	AvatarURL      string `json:"avatar_url,omitempty"`
	AcademicPeriod string `json:"academic_period"`
}

func toPersisted(u models.User) persistedUser {
	return persistedUser{
		ID:             u.ID,
		Name:           u.Name,
		PIN:            u.PIN,
		RemoteUsername: u.RemoteUsername,
		RemotePassword: u.RemotePassword,
		AvatarURL:      u.AvatarURL,
		AcademicPeriod: u.AcademicPeriod,
	}
}

func (p persistedUser) toModel() models.User {
	return models.User{
		ID:             p.ID,
		Name:           p.Name,
		PIN:            p.PIN,
		RemoteUsername: p.RemoteUsername,
		RemotePassword: p.RemotePassword,
		AvatarURL:      p.AvatarURL,
		AcademicPeriod: p.AcademicPeriod,
	}
}

// fileUserRepository is the [UserRepository] implementation backed by a
// single users.json file at the root of the data directory. The registry
// is small (one entry per student), so every mutation rewrites the whole
// file under a lock.
type fileUserRepository struct {
	path string

	mu     sync.RWMutex
	logger *logger.Logger
}

// NewFileUserRepository constructs a [UserRepository] persisting to
// "<data_dir>/users.json".
func NewFileUserRepository(cfg config.Storage, log *logger.Logger) (UserRepository, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	log.Debug().Msg("creating user repository")
	return &fileUserRepository{
		path:   filepath.Join(cfg.DataDir, "users.json"),
		logger: log,
	}, nil
}

func (r *fileUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return models.User{}, err
	}

	for _, existing := range users {
		if existing.ID == user.ID {
			return models.User{}, ErrUserAlreadyExists
		}
	}

	users = append(users, toPersisted(user))
	if err = r.persist(users); err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (r *fileUserRepository) GetUser(ctx context.Context, userID string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users, err := r.load()
	if err != nil {
		return models.User{}, err
	}

	for _, u := range users {
		if u.ID == userID {
			return u.toModel(), nil
		}
	}

	return models.User{}, ErrUserNotFound
}

func (r *fileUserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users, err := r.load()
	if err != nil {
		return nil, err
	}

	result := make([]models.User, 0, len(users))
	for _, u := range users {
		result = append(result, u.toModel())
	}

	return result, nil
}

func (r *fileUserRepository) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return models.User{}, err
	}

	for i, existing := range users {
		if existing.ID == user.ID {
			users[i] = toPersisted(user)
			if err = r.persist(users); err != nil {
				return models.User{}, err
			}
			return user, nil
		}
	}

	return models.User{}, ErrUserNotFound
}

func (r *fileUserRepository) load() ([]persistedUser, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read users file: %w", ErrLoadingRecords, err)
	}

	var users []persistedUser
	if err = json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("%w: decode users file: %w", ErrLoadingRecords, err)
	}

	return users, nil
}

func (r *fileUserRepository) persist(users []persistedUser) error {
	payload, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode users file: %w", ErrSavingRecords, err)
	}

	if err = os.WriteFile(r.path, payload, 0o600); err != nil {
		return fmt.Errorf("%w: write users file: %w", ErrSavingRecords, err)
	}

	return nil
}
