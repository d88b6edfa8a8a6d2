// Copyright (c) 2026 BookWise. All rights reserved.

package auth_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amitkr8158/bookwise/internal/platform/apperr"
	"github.com/amitkr8158/bookwise/internal/platform/sec"
	"github.com/amitkr8158/bookwise/internal/users/auth"
)

type fakeUserRepository struct {
	users map[string]*auth.User // by ID
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]*auth.User{}}
}

func (repository *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	repository.users[user.ID] = user
	return nil
}

func (repository *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := repository.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (repository *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range repository.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repository *fakeUserRepository) UpdatePassword(_ context.Context, userID, passwordHash string) error {
	user, ok := repository.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = passwordHash
	return nil
}

type fakeSessionRepository struct {
	sessions map[string]*auth.Session // by ID
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: map[string]*auth.Session{}}
}

func (repository *fakeSessionRepository) Create(_ context.Context, session *auth.Session) error {
	repository.sessions[session.ID] = session
	return nil
}

func (repository *fakeSessionRepository) FindByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	for _, session := range repository.sessions {
		if session.TokenHash == tokenHash && !session.IsRevoked && session.ExpiresAt.After(time.Now()) {
			return session, nil
		}
	}
	return nil, apperr.NotFound("Session")
}

func (repository *fakeSessionRepository) Revoke(_ context.Context, sessionID string) error {
	if session, ok := repository.sessions[sessionID]; ok {
		session.IsRevoked = true
	}
	return nil
}

func (repository *fakeSessionRepository) RevokeAllForUser(_ context.Context, userID string) error {
	for _, session := range repository.sessions {
		if session.UserID == userID {
			session.IsRevoked = true
		}
	}
	return nil
}

func (repository *fakeSessionRepository) liveCount(userID string) int {
	count := 0
	for _, session := range repository.sessions {
		if session.UserID == userID && !session.IsRevoked {
			count++
		}
	}
	return count
}

type fakeResetTokenStore struct {
	tokens map[string]string // tokenHash -> userID
}

func newFakeResetTokenStore() *fakeResetTokenStore {
	return &fakeResetTokenStore{tokens: map[string]string{}}
}

func (store *fakeResetTokenStore) Set(_ context.Context, tokenHash, userID string, _ time.Duration) error {
	store.tokens[tokenHash] = userID
	return nil
}

func (store *fakeResetTokenStore) Get(_ context.Context, tokenHash string) (string, error) {
	userID, ok := store.tokens[tokenHash]
	if !ok {
		return "", apperr.Unauthorized("Reset token is invalid or expired")
	}
	return userID, nil
}

func (store *fakeResetTokenStore) Delete(_ context.Context, tokenHash string) error {
	delete(store.tokens, tokenHash)
	return nil
}

type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID, _, _ string, _ time.Duration) (string, error) {
	return "access-" + userID, nil
}

type fakeProvisioner struct {
	err   error
	calls int
}

func (provisioner *fakeProvisioner) EnsureProfile(_ context.Context, _, _, _ string) error {
	provisioner.calls++
	return provisioner.err
}

type authFixture struct {
	users       *fakeUserRepository
	sessions    *fakeSessionRepository
	resetTokens *fakeResetTokenStore
	provisioner *fakeProvisioner
	service     *auth.Service
}

func newAuthFixture() *authFixture {
	fixture := &authFixture{
		users:       newFakeUserRepository(),
		sessions:    newFakeSessionRepository(),
		resetTokens: newFakeResetTokenStore(),
		provisioner: &fakeProvisioner{},
	}
	fixture.service = auth.NewService(
		fixture.users, fixture.sessions, fixture.resetTokens,
		fakeTokenProvider{}, fixture.provisioner, nil, slog.Default(),
	)
	return fixture
}

func (fixture *authFixture) register(t *testing.T, email, password string) *auth.User {
	t.Helper()
	user, err := fixture.service.Register(context.Background(), auth.RegisterInput{
		Email:       email,
		Password:    password,
		DisplayName: "Asha Rao",
	})
	require.NoError(t, err)
	return user
}

/*
TestRegister verifies validation, duplicate detection, and that new accounts
receive the base user role with a hashed password.
*/
func TestRegister(t *testing.T) {
	t.Run("creates a user with hashed password and base role", func(t *testing.T) {
		fixture := newAuthFixture()

		user := fixture.register(t, "asha@example.com", "correct-horse")

		assert.Equal(t, sec.RoleUser, user.Role)
		assert.NotEmpty(t, user.ID)
		assert.NotEqual(t, "correct-horse", user.PasswordHash)
		assert.True(t, sec.CheckPasswordHash("correct-horse", user.PasswordHash))
	})

	t.Run("rejects a duplicate email with a conflict", func(t *testing.T) {
		fixture := newAuthFixture()
		fixture.register(t, "asha@example.com", "correct-horse")

		_, err := fixture.service.Register(context.Background(), auth.RegisterInput{
			Email:       "Asha@Example.com",
			Password:    "other-password",
			DisplayName: "Imposter",
		})

		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		fixture := newAuthFixture()

		testCases := []struct {
			name  string
			input auth.RegisterInput
		}{
			{"missing email", auth.RegisterInput{Password: "correct-horse", DisplayName: "A"}},
			{"malformed email", auth.RegisterInput{Email: "nope", Password: "correct-horse", DisplayName: "A"}},
			{"short password", auth.RegisterInput{Email: "a@b.com", Password: "short", DisplayName: "A"}},
			{"missing display name", auth.RegisterInput{Email: "a@b.com", Password: "correct-horse"}},
		}
		for _, testCase := range testCases {
			t.Run(testCase.name, func(t *testing.T) {
				_, err := fixture.service.Register(context.Background(), testCase.input)
				require.Error(t, err)
				assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
			})
		}
	})
}

/*
TestLogin verifies credential checks, lazy profile provisioning, and the
forced sign-out path: a policy-denied profile write must leave the user with
zero live sessions.
*/
func TestLogin(t *testing.T) {
	t.Run("issues tokens and provisions the profile", func(t *testing.T) {
		fixture := newAuthFixture()
		user := fixture.register(t, "asha@example.com", "correct-horse")

		session, err := fixture.service.Login(context.Background(), auth.LoginInput{
			Email:    "asha@example.com",
			Password: "correct-horse",
		})

		require.NoError(t, err)
		assert.Equal(t, "access-"+user.ID, session.AccessToken)
		assert.NotEmpty(t, session.RefreshToken)
		assert.Equal(t, 1, fixture.provisioner.calls)
		assert.Equal(t, 1, fixture.sessions.liveCount(user.ID))
	})

	t.Run("returns the same generic error for unknown email and wrong password", func(t *testing.T) {
		fixture := newAuthFixture()
		fixture.register(t, "asha@example.com", "correct-horse")

		_, unknownErr := fixture.service.Login(context.Background(), auth.LoginInput{
			Email: "nobody@example.com", Password: "correct-horse",
		})
		_, wrongErr := fixture.service.Login(context.Background(), auth.LoginInput{
			Email: "asha@example.com", Password: "wrong-password",
		})

		require.Error(t, unknownErr)
		require.Error(t, wrongErr)
		assert.Equal(t, unknownErr.Error(), wrongErr.Error())
		assert.Equal(t, "UNAUTHORIZED", apperr.As(unknownErr).Code)
	})

	t.Run("revokes the session when profile provisioning is denied", func(t *testing.T) {
		fixture := newAuthFixture()
		user := fixture.register(t, "asha@example.com", "correct-horse")
		fixture.provisioner.err = apperr.Forbidden("profiles are locked")

		_, err := fixture.service.Login(context.Background(), auth.LoginInput{
			Email:    "asha@example.com",
			Password: "correct-horse",
		})

		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
		assert.Equal(t, 0, fixture.sessions.liveCount(user.ID))
	})
}

/*
TestRefreshSession verifies token rotation: refreshing consumes the old token
and a replay of it fails.
*/
func TestRefreshSession(t *testing.T) {
	fixture := newAuthFixture()
	user := fixture.register(t, "asha@example.com", "correct-horse")

	first, err := fixture.service.Login(context.Background(), auth.LoginInput{
		Email: "asha@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	second, err := fixture.service.RefreshSession(context.Background(), first.RefreshToken, "", "")
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.Equal(t, 1, fixture.sessions.liveCount(user.ID))

	_, err = fixture.service.RefreshSession(context.Background(), first.RefreshToken, "", "")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

/*
TestLogout verifies that logout revokes the session and that an unknown token
is still a successful logout.
*/
func TestLogout(t *testing.T) {
	fixture := newAuthFixture()
	user := fixture.register(t, "asha@example.com", "correct-horse")

	session, err := fixture.service.Login(context.Background(), auth.LoginInput{
		Email: "asha@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	require.NoError(t, fixture.service.Logout(context.Background(), session.RefreshToken))
	assert.Equal(t, 0, fixture.sessions.liveCount(user.ID))

	// Idempotent: the same token again is not an error.
	require.NoError(t, fixture.service.Logout(context.Background(), session.RefreshToken))
	require.NoError(t, fixture.service.Logout(context.Background(), "never-issued"))
}

/*
TestPasswordReset walks the full flow: request a token, consume it, verify the
password changed, all sessions died, and the token cannot be replayed.
*/
func TestPasswordReset(t *testing.T) {
	fixture := newAuthFixture()
	user := fixture.register(t, "asha@example.com", "correct-horse")

	_, err := fixture.service.Login(context.Background(), auth.LoginInput{
		Email: "asha@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	require.NoError(t, fixture.service.ForgotPassword(context.Background(), "asha@example.com"))
	require.Len(t, fixture.resetTokens.tokens, 1)

	// Unknown email never leaks: no error, no extra token.
	require.NoError(t, fixture.service.ForgotPassword(context.Background(), "nobody@example.com"))
	require.Len(t, fixture.resetTokens.tokens, 1)

	// The store only ever sees the hash, so stand in for the emailed raw
	// token by seeding a known one.
	var issuedHash string
	for hash := range fixture.resetTokens.tokens {
		issuedHash = hash
	}
	delete(fixture.resetTokens.tokens, issuedHash)
	fixture.resetTokens.tokens[sec.HashToken("emailed-token")] = user.ID

	require.NoError(t, fixture.service.ResetPassword(context.Background(), "emailed-token", "new-password-1"))

	stored := fixture.users.users[user.ID]
	assert.True(t, sec.CheckPasswordHash("new-password-1", stored.PasswordHash))
	assert.Equal(t, 0, fixture.sessions.liveCount(user.ID))

	err = fixture.service.ResetPassword(context.Background(), "emailed-token", "new-password-2")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

/*
TestChangePassword verifies the current password gate and session revocation.
*/
func TestChangePassword(t *testing.T) {
	fixture := newAuthFixture()
	user := fixture.register(t, "asha@example.com", "correct-horse")

	err := fixture.service.ChangePassword(context.Background(), user.ID, "wrong", "new-password-1")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	require.NoError(t,
		fixture.service.ChangePassword(context.Background(), user.ID, "correct-horse", "new-password-1"))
	assert.True(t, sec.CheckPasswordHash("new-password-1", fixture.users.users[user.ID].PasswordHash))
}
