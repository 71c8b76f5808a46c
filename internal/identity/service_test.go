package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainsearch/chainsearch/internal/apperr"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)

	ctx := context.Background()
	user, err := svc.Register(ctx, Credentials{Username: "blockchain-client", Password: "correct horse"})
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", string(user.PasswordHash))

	authed, err := svc.Authenticate(ctx, Credentials{Username: "blockchain-client", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)
	assert.NotNil(t, authed.LastLogin)

	stored, err := svc.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLogin, "last login should be persisted")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	_, err := svc.Register(ctx, Credentials{Username: "dup", Password: "password1"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, Credentials{Username: "dup", Password: "password2"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	_, err := svc.Register(ctx, Credentials{Username: " ", Password: "password1"})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
	_, err = svc.Register(ctx, Credentials{Username: "short", Password: "pass"})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	_, err := svc.Register(ctx, Credentials{Username: "alice", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, Credentials{Username: "alice", Password: "password2"})
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	_, err = svc.Authenticate(ctx, Credentials{Username: "bob", Password: "password1"})
	assert.ErrorIs(t, err, apperr.ErrUnauthorized, "unknown user")
}
