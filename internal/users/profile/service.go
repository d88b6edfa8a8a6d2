// Copyright (c) 2026 BookWise. All rights reserved.

package profile

import (
	"context"
	"log/slog"

	"github.com/amitkr8158/bookwise/internal/platform/sec"
	"github.com/amitkr8158/bookwise/internal/platform/validate"
)

const (
	maxDisplayNameLength = 100
	maxBioLength         = 500
)

type Service struct {
	repository Repository
	logger     *slog.Logger
}

func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

// EnsureProfile lazily provisions the profile row on login.
//
// This is the auth slice's ProfileProvisioner. Any storage error, including a
// policy denial, surfaces unchanged so the caller can decide whether the
// session survives. The email travels on the users row and is not copied here.
func (service *Service) EnsureProfile(ctx context.Context, userID, _, displayName string) error {
	return service.repository.EnsureExists(ctx, userID, displayName)
}

// Me returns the authenticated user's own profile.
func (service *Service) Me(ctx context.Context, userID string) (*Profile, error) {
	return service.repository.GetByUserID(ctx, userID)
}

// UpdateMe applies a partial self-service update and returns the result.
func (service *Service) UpdateMe(ctx context.Context, userID string, input UpdateInput) (*Profile, error) {
	validator := &validate.Validator{}
	if input.DisplayName != nil {
		validator.Required(FieldDisplayName, *input.DisplayName)
		validator.MaxLen(FieldDisplayName, *input.DisplayName, maxDisplayNameLength)
	}
	if input.AvatarURL != nil && *input.AvatarURL != "" {
		validator.URL(FieldAvatarURL, *input.AvatarURL)
	}
	if input.Bio != nil {
		validator.MaxLen(FieldBio, *input.Bio, maxBioLength)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repository.Update(ctx, userID, input); err != nil {
		return nil, err
	}

	return service.repository.GetByUserID(ctx, userID)
}

// ListUsers returns the admin user directory, newest first.
func (service *Service) ListUsers(ctx context.Context, limit, offset int) ([]Profile, int, error) {
	return service.repository.ListUsers(ctx, limit, offset)
}

// SetRole changes a user's role and returns the refreshed profile.
func (service *Service) SetRole(ctx context.Context, userID, role string) (*Profile, error) {
	validator := &validate.Validator{}
	validator.UUID("id", userID)
	validator.OneOf(FieldRole, role,
		string(sec.RoleUser), string(sec.RoleController), string(sec.RoleAdmin))
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repository.SetRole(ctx, userID, role); err != nil {
		return nil, err
	}

	service.logger.Info("user_role_changed",
		slog.String("user_id", userID), slog.String("role", role))

	return service.repository.GetByUserID(ctx, userID)
}

// ListSubscribedEmails returns digest recipients. It satisfies the digest
// slice's RecipientLister.
func (service *Service) ListSubscribedEmails(ctx context.Context) ([]string, error) {
	return service.repository.ListSubscribedEmails(ctx)
}
