package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/college_admin/internal/apperr"
	"github.com/Skotchmaster/college_admin/internal/events"
	"github.com/Skotchmaster/college_admin/internal/models"
)

func TestLoginIssuesToken(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.createUser(t, "alice", "s3cret", nil)

	res, err := env.Auth.Login(context.Background(), "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", res.Username)
	assert.Equal(t, fixedNow.Add(4*time.Hour), res.ExpiresAt)

	claims, err := env.Issuer.Validate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, models.RoleUser, claims.Role)
	assert.Equal(t, 4*time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))

	assert.Contains(t, env.Events.Types(), events.UserLoggedIn)
}

func TestLoginCarriesRole(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	admin := env.roleID(t, models.RoleAdmin)
	env.createUser(t, "root", "pw", &admin)

	res, err := env.Auth.Login(context.Background(), "root", "pw")
	require.NoError(t, err)

	claims, err := env.Issuer.Validate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.createUser(t, "alice", "s3cret", nil)
	ctx := context.Background()

	_, wrongPassword := env.Auth.Login(ctx, "alice", "wrong")
	_, unknownUser := env.Auth.Login(ctx, "ghost", "s3cret")

	require.ErrorIs(t, wrongPassword, apperr.ErrUnauthenticated)
	require.ErrorIs(t, unknownUser, apperr.ErrUnauthenticated)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
	assert.NotContains(t, env.Events.Types(), events.UserLoggedIn)
}

func TestLoginValidation(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	_, err := env.Auth.Login(context.Background(), "", "pw")
	require.ErrorIs(t, err, apperr.ErrValidation)
	_, err = env.Auth.Login(context.Background(), "alice", "")
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestLoginWithoutIssuer(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.createUser(t, "alice", "s3cret", nil)
	env.Auth.Issuer = nil

	_, err := env.Auth.Login(context.Background(), "alice", "s3cret")
	require.ErrorIs(t, err, apperr.ErrConfiguration)
}
