package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sabigold/presence-backend-go/internal/domain/auth"
	"github.com/sabigold/presence-backend-go/internal/pkg/jwt"
)

type fakeUserRepo struct {
	users map[string]auth.User
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	u, ok := f.users[email]
	if !ok {
		return auth.User{}, auth.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, u auth.User) (auth.User, error) {
	f.users[u.Email] = u
	return u, nil
}

func newTestService(t *testing.T) *Service {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &fakeUserRepo{users: map[string]auth.User{
		"admin@example.com": {
			ID:           "user-1",
			Email:        "admin@example.com",
			PasswordHash: string(hash),
			DisplayName:  "Site Admin",
		},
	}}
	return NewService(repo, jwt.NewJWTService("test-secret", "15m"))
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials issue a token", func(t *testing.T) {
		svc := newTestService(t)
		resp, err := svc.Login(ctx, auth.LoginRequest{Email: "admin@example.com", Password: "correct horse"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "Site Admin", resp.DisplayName)
		assert.Greater(t, resp.ExpiresAt, int64(0))
	})

	t.Run("wrong password and unknown email fail the same way", func(t *testing.T) {
		svc := newTestService(t)

		_, err := svc.Login(ctx, auth.LoginRequest{Email: "admin@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

		_, err = svc.Login(ctx, auth.LoginRequest{Email: "ghost@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("empty fields never reach the store", func(t *testing.T) {
		svc := newTestService(t)
		_, err := svc.Login(ctx, auth.LoginRequest{})
		assert.Error(t, err)
		assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}
