package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/AniruthXI/HelpDeskTicket/internal/auth"
	"github.com/AniruthXI/HelpDeskTicket/internal/config"
	"github.com/AniruthXI/HelpDeskTicket/internal/domain"
	"github.com/AniruthXI/HelpDeskTicket/internal/events"
	"github.com/AniruthXI/HelpDeskTicket/internal/repository"
	apperrors "github.com/AniruthXI/HelpDeskTicket/pkg/util"
	"github.com/AniruthXI/HelpDeskTicket/pkg/validator"
)

const uniqueViolation = "23505"

// AuthService coordinates registration, login, and credential flows.
type AuthService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	tokenMgr   *auth.TokenManager
	bcryptCost int
	resetTTL   time.Duration
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:      users,
		dispatcher: dispatcher,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
	}
}

// ProfileUpdateInput carries a partial profile update.
type ProfileUpdateInput struct {
	Username *string
	Email    *string
	Password *string
}

// Register creates a new account with the default role. Duplicate
// usernames or emails yield a conflict.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, string, time.Time, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if errs := validator.ValidateRegister(username, email, password); errs.HasErrors() {
		return nil, "", time.Time{}, apperrors.NewValidationError("invalid registration payload", errs.Details())
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, "", time.Time{}, apperrors.NewConflict("username or email already exists", nil)
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return user, token, exp, nil
}

// Login authenticates by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if !user.IsActive {
		return nil, "", time.Time{}, apperrors.NewForbidden("account suspended")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return user, token, exp, nil
}

// RequestPasswordReset stores a fresh reset token on the user row and
// emits an event for the notification sink.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("user", nil)
		}
		return apperrors.MapError(err)
	}

	token := uuid.NewString()
	expires := time.Now().Add(s.resetTTL)
	user.ResetPasswordToken = &token
	user.ResetPasswordExpires = &expires
	if err := s.users.Update(ctx, user); err != nil {
		return apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventPasswordResetRequested,
			ActorID:   user.ID,
			Timestamp: time.Now(),
			Payload: events.PasswordResetRequestedPayload{
				Email:      user.Email,
				ResetToken: token,
				ExpiresAt:  expires,
			},
		})
	}
	return nil
}

// ResetPassword consumes a reset token. Unknown or expired tokens fail
// with a validation error; the token is cleared on success.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	errs := make(validator.ValidationErrors)
	validator.ValidatePassword(newPassword, errs)
	if errs.HasErrors() {
		return apperrors.NewValidationError("invalid password", errs.Details())
	}

	user, err := s.users.GetByResetToken(ctx, token)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewValidationError("invalid or expired token", nil)
		}
		return apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.MapError(err)
	}
	user.PasswordHash = hash
	user.ResetPasswordToken = nil
	user.ResetPasswordExpires = nil
	if err := s.users.Update(ctx, user); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// UpdateProfile applies a partial update to the caller's own account.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, input ProfileUpdateInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.MapError(err)
	}

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username == "" {
			return nil, apperrors.NewValidationError("username cannot be empty", nil)
		}
		user.Username = username
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if errs := validator.ValidateEmail(email); errs.HasErrors() {
			return nil, apperrors.NewValidationError("invalid email", errs.Details())
		}
		user.Email = email
	}
	if input.Password != nil {
		errs := make(validator.ValidationErrors)
		validator.ValidatePassword(*input.Password, errs)
		if errs.HasErrors() {
			return nil, apperrors.NewValidationError("invalid password", errs.Details())
		}
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperrors.NewConflict("username or email already exists", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// UpdateProfileImage records the stored image path on the account.
func (s *AuthService) UpdateProfileImage(ctx context.Context, userID, storagePath string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.MapError(err)
	}
	user.ProfileImage = &storagePath
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
