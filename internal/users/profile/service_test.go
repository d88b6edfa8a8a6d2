// Copyright (c) 2026 BookWise. All rights reserved.

package profile_test

import (
	"context"
	"log/slog"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amitkr8158/bookwise/internal/platform/apperr"
	"github.com/amitkr8158/bookwise/internal/platform/sec"
	"github.com/amitkr8158/bookwise/internal/users/profile"
)

type memoryRepository struct {
	profiles map[string]*profile.Profile
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{profiles: map[string]*profile.Profile{}}
}

func (repository *memoryRepository) EnsureExists(_ context.Context, userID, displayName string) error {
	if _, ok := repository.profiles[userID]; ok {
		return nil
	}
	repository.profiles[userID] = &profile.Profile{
		UserID:      userID,
		DisplayName: displayName,
		Role:        sec.RoleUser,
	}
	return nil
}

func (repository *memoryRepository) GetByUserID(_ context.Context, userID string) (*profile.Profile, error) {
	stored, ok := repository.profiles[userID]
	if !ok {
		return nil, apperr.NotFound("Profile")
	}
	copied := *stored
	return &copied, nil
}

func (repository *memoryRepository) Update(_ context.Context, userID string, input profile.UpdateInput) error {
	stored, ok := repository.profiles[userID]
	if !ok {
		return apperr.NotFound("Profile")
	}
	if input.DisplayName != nil {
		stored.DisplayName = *input.DisplayName
	}
	if input.AvatarURL != nil {
		stored.AvatarURL = input.AvatarURL
	}
	if input.Bio != nil {
		stored.Bio = input.Bio
	}
	if input.DigestSubscribed != nil {
		stored.DigestSubscribed = *input.DigestSubscribed
	}
	return nil
}

func (repository *memoryRepository) ListUsers(_ context.Context, limit, offset int) ([]profile.Profile, int, error) {
	ids := make([]string, 0, len(repository.profiles))
	for id := range repository.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var all []profile.Profile
	for _, id := range ids {
		all = append(all, *repository.profiles[id])
	}

	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (repository *memoryRepository) SetRole(_ context.Context, userID, role string) error {
	stored, ok := repository.profiles[userID]
	if !ok {
		return apperr.NotFound("Profile")
	}
	stored.Role = sec.UserRole(role)
	return nil
}

func (repository *memoryRepository) ListSubscribedEmails(_ context.Context) ([]string, error) {
	var emails []string
	for _, stored := range repository.profiles {
		if stored.DigestSubscribed {
			emails = append(emails, stored.Email)
		}
	}
	sort.Strings(emails)
	return emails, nil
}

const testUserID = "0198c5b1-7f3a-7000-8000-3c9f1b2a4d01"

/*
TestEnsureProfile verifies provisioning is idempotent and never overwrites an
existing row.
*/
func TestEnsureProfile(t *testing.T) {
	repository := newMemoryRepository()
	service := profile.NewService(repository, slog.Default())

	require.NoError(t, service.EnsureProfile(context.Background(), testUserID, "asha@example.com", "Asha"))

	renamed := "Asha Renamed"
	_, err := service.UpdateMe(context.Background(), testUserID, profile.UpdateInput{DisplayName: &renamed})
	require.NoError(t, err)

	// Logging in again must not reset the edited display name.
	require.NoError(t, service.EnsureProfile(context.Background(), testUserID, "asha@example.com", "Asha"))

	current, err := service.Me(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, "Asha Renamed", current.DisplayName)
}

/*
TestUpdateMe verifies partial updates and field validation.
*/
func TestUpdateMe(t *testing.T) {
	newService := func(t *testing.T) *profile.Service {
		t.Helper()
		repository := newMemoryRepository()
		service := profile.NewService(repository, slog.Default())
		require.NoError(t, service.EnsureProfile(context.Background(), testUserID, "asha@example.com", "Asha"))
		return service
	}

	t.Run("updates only the provided fields", func(t *testing.T) {
		service := newService(t)

		subscribed := true
		updated, err := service.UpdateMe(context.Background(), testUserID,
			profile.UpdateInput{DigestSubscribed: &subscribed})

		require.NoError(t, err)
		assert.True(t, updated.DigestSubscribed)
		assert.Equal(t, "Asha", updated.DisplayName)
	})

	t.Run("rejects an empty display name", func(t *testing.T) {
		service := newService(t)

		empty := ""
		_, err := service.UpdateMe(context.Background(), testUserID,
			profile.UpdateInput{DisplayName: &empty})

		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("rejects a malformed avatar URL", func(t *testing.T) {
		service := newService(t)

		bad := "not a url"
		_, err := service.UpdateMe(context.Background(), testUserID,
			profile.UpdateInput{AvatarURL: &bad})

		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

/*
TestSetRole verifies role changes are restricted to the known role set.
*/
func TestSetRole(t *testing.T) {
	repository := newMemoryRepository()
	service := profile.NewService(repository, slog.Default())
	require.NoError(t, service.EnsureProfile(context.Background(), testUserID, "asha@example.com", "Asha"))

	updated, err := service.SetRole(context.Background(), testUserID, "controller")
	require.NoError(t, err)
	assert.Equal(t, sec.RoleController, updated.Role)

	_, err = service.SetRole(context.Background(), testUserID, "superadmin")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}
