// Copyright (c) 2026 BookWise. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amitkr8158/bookwise/internal/platform/apperr"
	"github.com/amitkr8158/bookwise/internal/platform/mailer"
	"github.com/amitkr8158/bookwise/internal/platform/sec"
	"github.com/amitkr8158/bookwise/internal/platform/validate"
	"github.com/amitkr8158/bookwise/pkg/uuidv7"
)

// TokenProvider generates signed access tokens.
type TokenProvider interface {
	GenerateAccessToken(userID, email, role string, timeToLive time.Duration) (string, error)
}

// ProfileProvisioner creates the user's profile row if it does not exist yet.
//
// Implemented by the profile slice. Provisioning happens lazily on login so
// accounts imported from earlier systems gain a profile on first use.
type ProfileProvisioner interface {
	EnsureProfile(ctx context.Context, userID, email, displayName string) error
}

type Service struct {
	users       UserRepository
	sessions    SessionRepository
	resetTokens ResetTokenStore
	tokens      TokenProvider
	profiles    ProfileProvisioner
	sender      mailer.Sender // nil when SMTP is not configured
	logger      *slog.Logger
}

func NewService(
	users UserRepository,
	sessions SessionRepository,
	resetTokens ResetTokenStore,
	tokens TokenProvider,
	profiles ProfileProvisioner,
	sender mailer.Sender,
	logger *slog.Logger,
) *Service {
	return &Service{
		users:       users,
		sessions:    sessions,
		resetTokens: resetTokens,
		tokens:      tokens,
		profiles:    profiles,
		sender:      sender,
		logger:      logger,
	}
}

// RegisterInput holds the data required to enroll a new account.
type RegisterInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// Register validates, hashes, and persists a new account.
//
// New accounts always start with the base user role.
func (service *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)
	validator.MinLen(FieldPassword, input.Password, MinPasswordLength)
	validator.Required(FieldDisplayName, input.DisplayName).MaxLen(FieldDisplayName, input.DisplayName, 100)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	passwordHash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuidv7.New(),
		Email:        input.Email,
		PasswordHash: passwordHash,
		DisplayName:  input.DisplayName,
		Role:         sec.RoleUser,
	}

	if err := service.users.Create(ctx, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_registered", slog.String("user_id", user.ID))
	return user, nil
}

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	UserAgent string `json:"-"`
	IPAddress string `json:"-"`
}

// LoginSession is a successfully established session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

// Login verifies credentials, provisions the profile, and issues tokens.
//
// # Forced sign-out
//
// Profile provisioning runs after the session is created. If the profile
// store denies the write, the session is revoked before the error is
// returned: a user either ends up fully signed in with a profile, or not
// signed in at all.
func (service *Service) Login(ctx context.Context, input LoginInput) (*LoginSession, error) {
	user, err := service.users.FindByEmail(ctx, input.Email)
	if err != nil {
		// Generic message: never reveal whether the email exists.
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	session, err := service.issueSession(ctx, user, input.UserAgent, input.IPAddress)
	if err != nil {
		return nil, err
	}

	if err := service.profiles.EnsureProfile(ctx, user.ID, user.Email, user.DisplayName); err != nil {
		var ae *apperr.AppError
		if errors.As(err, &ae) && ae.Code == "FORBIDDEN" {
			// Storage policy rejected the profile row: revoke everything.
			if revokeErr := service.sessions.RevokeAllForUser(ctx, user.ID); revokeErr != nil {
				service.logger.Error("forced_signout_revoke_failed", slog.Any("error", revokeErr))
			}
			service.logger.Warn("login_forced_signout", slog.String("user_id", user.ID))
			return nil, apperr.Forbidden("Your account could not be activated. Please sign in again.")
		}
		return nil, err
	}

	service.logger.Info("user_logged_in", slog.String("user_id", user.ID))
	return session, nil
}

// Logout revokes the session identified by the refresh token. It is
// idempotent: an unknown or expired token is still a successful logout.
func (service *Service) Logout(ctx context.Context, refreshToken string) error {
	session, err := service.sessions.FindByTokenHash(ctx, sec.HashToken(refreshToken))
	if err != nil {
		return nil
	}

	if err := service.sessions.Revoke(ctx, session.ID); err != nil {
		return err
	}

	service.logger.Info("user_logged_out", slog.String("user_id", session.UserID))
	return nil
}

// RefreshSession rotates the refresh token: the old session is revoked and a
// new token pair is issued, so a replayed token is dead on arrival.
func (service *Service) RefreshSession(ctx context.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {
	session, err := service.sessions.FindByTokenHash(ctx, sec.HashToken(refreshToken))
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	if err := service.sessions.Revoke(ctx, session.ID); err != nil {
		return nil, err
	}

	user, err := service.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("User not found")
	}

	return service.issueSession(ctx, user, userAgent, ipAddress)
}

// ForgotPassword starts the reset flow for the given email.
//
// The response is identical whether or not the account exists; the token is
// only ever delivered by email.
func (service *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := service.users.FindByEmail(ctx, email)
	if err != nil {
		service.logger.Info("password_reset_unknown_email")
		return nil
	}

	token, err := sec.GenerateSecureToken(RefreshTokenBytes)
	if err != nil {
		return fmt.Errorf("auth_reset_token_failed: %w", err)
	}

	if err := service.resetTokens.Set(ctx, sec.HashToken(token), user.ID, ResetTokenTTL); err != nil {
		return err
	}

	if service.sender != nil {
		body := fmt.Sprintf(
			`<p>Use this code to reset your BookWise password: <b>%s</b></p><p>It expires in %d minutes.</p>`,
			token, int(ResetTokenTTL.Minutes()))
		if err := service.sender.Send([]string{user.Email}, "Reset your BookWise password", body); err != nil {
			service.logger.Error("password_reset_mail_failed", slog.Any("error", err))
		}
	}

	service.logger.Info("password_reset_requested", slog.String("user_id", user.ID))
	return nil
}

// ResetPassword consumes a reset token and replaces the password. All of the
// user's sessions are revoked.
func (service *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	validator := &validate.Validator{}
	validator.Required(FieldToken, token)
	validator.MinLen(FieldPassword, newPassword, MinPasswordLength)
	if err := validator.Err(); err != nil {
		return err
	}

	tokenHash := sec.HashToken(token)
	userID, err := service.resetTokens.Get(ctx, tokenHash)
	if err != nil {
		return err
	}

	passwordHash, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_hash_failed: %w", err)
	}

	if err := service.users.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return err
	}

	// One-shot token; a second use must fail.
	if err := service.resetTokens.Delete(ctx, tokenHash); err != nil {
		service.logger.Error("reset_token_delete_failed", slog.Any("error", err))
	}

	if err := service.sessions.RevokeAllForUser(ctx, userID); err != nil {
		return err
	}

	service.logger.Info("password_reset_completed", slog.String("user_id", userID))
	return nil
}

// ChangePassword replaces the password for an authenticated user after
// verifying the current one. Other sessions are revoked.
func (service *Service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if err := (&validate.Validator{}).MinLen(FieldPassword, newPassword, MinPasswordLength).Err(); err != nil {
		return err
	}

	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	passwordHash, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_hash_failed: %w", err)
	}

	if err := service.users.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return err
	}

	if err := service.sessions.RevokeAllForUser(ctx, userID); err != nil {
		return err
	}

	service.logger.Info("password_changed", slog.String("user_id", userID))
	return nil
}

func (service *Service) issueSession(ctx context.Context, user *User, userAgent, ipAddress string) (*LoginSession, error) {
	accessToken, err := service.tokens.GenerateAccessToken(user.ID, user.Email, string(user.Role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_token_generation_failed: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("auth_refresh_token_failed: %w", err)
	}

	expiresAt := time.Now().Add(RefreshTokenTTL)
	session := &Session{
		ID:        uuidv7.New(),
		UserID:    user.ID,
		TokenHash: sec.HashToken(refreshToken),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: expiresAt,
	}

	if err := service.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}
