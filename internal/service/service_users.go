package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-school-agenda/internal/config"
	"github.com/MKhiriev/go-school-agenda/internal/logger"
	"github.com/MKhiriev/go-school-agenda/internal/store"
	"github.com/MKhiriev/go-school-agenda/internal/utils"
	"github.com/MKhiriev/go-school-agenda/models"
)

// userService is the concrete implementation of UserService.
// It owns the account registry and the session token lifecycle.
type userService struct {
	users store.UserRepository
	files store.FileStore

	// tokenSignKey is the HMAC secret used to sign and verify session JWTs.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewUserService constructs a UserService wired to the account registry
// and the profile file area, with token parameters taken from cfg.
func NewUserService(users store.UserRepository, files store.FileStore, cfg config.App, logger *logger.Logger) UserService {
	return &userService{
		users:         users,
		files:         files,
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}
}

// Register creates a new account. The user identifier is the display
// name lowercased with spaces turned into underscores, so "Anna Rossi"
// becomes "anna_rossi"; the identifier is immutable afterwards.
//
// Returns ErrInvalidDataProvided for an empty name, ErrPINTooShort for
// a PIN under four characters and store.ErrUserAlreadyExists when the
// derived identifier is taken.
func (s *userService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(req.Name) == "" {
		log.Error().Msg("registration without a name")
		return models.User{}, ErrInvalidDataProvided
	}
	if len(req.PIN) < 4 {
		return models.User{}, ErrPINTooShort
	}

	user := models.User{
		ID:             deriveUserID(req.Name),
		Name:           req.Name,
		PIN:            req.PIN,
		RemoteUsername: req.RemoteUsername,
		RemotePassword: req.RemotePassword,
		AcademicPeriod: models.PeriodPentamestre,
	}

	created, err := s.users.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login verifies the PIN and issues a session token for the user.
// A wrong PIN returns ErrWrongPIN; an unknown user surfaces
// store.ErrUserNotFound.
func (s *userService) Login(ctx context.Context, userID, pin string) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	if userID == "" || pin == "" {
		return models.User{}, models.Token{}, ErrInvalidDataProvided
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("user lookup failed")
		return models.User{}, models.Token{}, fmt.Errorf("user lookup failed: %w", err)
	}

	if user.PIN != pin {
		log.Warn().Str("user_id", userID).Msg("wrong pin")
		return models.User{}, models.Token{}, ErrWrongPIN
	}

	token, err := utils.GenerateJWTToken(s.tokenIssuer, user.ID, s.tokenDuration, s.tokenSignKey)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("token generation failed")
		return models.User{}, models.Token{}, fmt.Errorf("token generation failed: %w", err)
	}

	return user, token, nil
}

func (s *userService) GetUser(ctx context.Context, userID string) (models.User, error) {
	return s.users.GetUser(ctx, userID)
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.ListUsers(ctx)
}

// UpdatePIN changes the login secret after verifying the old one.
func (s *userService) UpdatePIN(ctx context.Context, userID, oldPIN, newPIN string) error {
	log := logger.FromContext(ctx)

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("user lookup failed: %w", err)
	}
	if user.PIN != oldPIN {
		log.Warn().Str("user_id", userID).Msg("pin update with wrong old pin")
		return ErrWrongPIN
	}
	if len(newPIN) < 4 {
		return ErrPINTooShort
	}

	user.PIN = newPIN
	if _, err = s.users.UpdateUser(ctx, user); err != nil {
		log.Err(err).Str("user_id", userID).Msg("pin update failed")
		return fmt.Errorf("pin update failed: %w", err)
	}
	return nil
}

// UpdatePeriod switches the academic period setting.
func (s *userService) UpdatePeriod(ctx context.Context, userID, period string) (models.User, error) {
	if !models.ValidPeriod(period) {
		return models.User{}, ErrInvalidPeriod
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	user.AcademicPeriod = period
	updated, err := s.users.UpdateUser(ctx, user)
	if err != nil {
		return models.User{}, fmt.Errorf("period update failed: %w", err)
	}
	return updated, nil
}

// SetAvatar stores the uploaded image under a timestamped name in the
// user's profile area and records the retrieval URL on the account.
// Returns the new avatar URL. The previous avatar file, if any, is left
// in place so existing links keep working.
func (s *userService) SetAvatar(ctx context.Context, userID, fileName string, src io.Reader) (string, error) {
	log := logger.FromContext(ctx)

	if fileName == "" {
		return "", ErrNoFileNameProvided
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("user lookup failed: %w", err)
	}

	storedName := timestampedFileName("avatar", fileName)
	if err = s.files.SaveAvatar(ctx, userID, storedName, src); err != nil {
		log.Err(err).Str("user_id", userID).Str("file", storedName).Msg("avatar save failed")
		return "", fmt.Errorf("avatar save failed: %w", err)
	}

	user.AvatarURL = fmt.Sprintf("/api/profiles/%s/%s", userID, storedName)
	if _, err = s.users.UpdateUser(ctx, user); err != nil {
		log.Err(err).Str("user_id", userID).Msg("avatar url update failed")
		return "", fmt.Errorf("avatar url update failed: %w", err)
	}

	return user.AvatarURL, nil
}

// ParseToken validates a session token string and extracts its claims.
// Expired tokens return ErrTokenIsExpired.
func (s *userService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(tokenString, s.tokenSignKey, s.tokenIssuer)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, ErrTokenIsExpired
		}
		log.Err(err).Msg("token validation failed")
		return models.Token{}, fmt.Errorf("token validation failed: %w", err)
	}
	return token, nil
}

// deriveUserID turns a display name into the stable account identifier.
func deriveUserID(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}
