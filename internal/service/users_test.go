package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/college_admin/internal/apperr"
	"github.com/Skotchmaster/college_admin/internal/events"
	"github.com/Skotchmaster/college_admin/internal/repo"
	"github.com/Skotchmaster/college_admin/internal/transport"
)

func TestCreateUser(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	u := env.createUser(t, "alice", "s3cret", nil)
	assert.NotZero(t, u.ID)
	assert.True(t, u.IsActive)
	assert.False(t, u.IsDeleted)
	assert.Equal(t, fixedNow, u.CreatedDate)
	assert.NotEqual(t, []byte("s3cret"), u.PasswordHash)
	assert.Len(t, u.PasswordSalt, 16)
	assert.Equal(t, []string{events.UserCreated}, env.Events.Types())
}

func TestCreateUserValidation(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  transport.UserRequest
	}{
		{name: "empty username", req: transport.UserRequest{Password: "pw"}},
		{name: "empty password", req: transport.UserRequest{Username: "bob"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.Users.CreateUser(ctx, tt.req)
			require.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
	assert.Empty(t, env.Events.Types())
}

func TestCreateUserUnknownRole(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	missing := uint(999)

	_, err := env.Users.CreateUser(context.Background(), transport.UserRequest{Username: "bob", Password: "pw", RoleID: &missing})
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestDuplicateUsernameAndReuseAfterDelete(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	first := env.createUser(t, "alice", "pw1", nil)

	_, err := env.Users.CreateUser(ctx, transport.UserRequest{Username: "alice", Password: "pw2"})
	require.ErrorIs(t, err, apperr.ErrAlreadyExists)

	require.NoError(t, env.Users.DeleteUser(ctx, first.ID))

	second := env.createUser(t, "alice", "pw2", nil)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestDeleteUserIsSoft(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	u := env.createUser(t, "carol", "pw", nil)
	require.NoError(t, env.Users.DeleteUser(ctx, u.ID))

	_, err := env.Users.GetUserByID(ctx, u.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
	require.ErrorIs(t, env.Users.DeleteUser(ctx, u.ID), apperr.ErrNotFound)

	stored, err := env.Users.Users.Get(ctx, repo.Where(repo.ByID(u.ID)), false)
	require.NoError(t, err)
	assert.True(t, stored.IsDeleted)

	assert.Equal(t, []string{events.UserCreated, events.UserDeleted}, env.Events.Types())
}

func TestDeleteUserRejectsZeroID(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	require.ErrorIs(t, env.Users.DeleteUser(context.Background(), 0), apperr.ErrValidation)
}

func TestListUsersSkipsDeleted(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	for _, name := range []string{"u1", "u2", "u3"} {
		env.createUser(t, name, "pw", nil)
	}
	gone := env.createUser(t, "u4", "pw", nil)
	require.NoError(t, env.Users.DeleteUser(ctx, gone.ID))

	users, err := env.Users.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)
}

func TestUpdateUser(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	u := env.createUser(t, "dave", "old", nil)
	env.createUser(t, "erin", "pw", nil)

	_, err := env.Users.UpdateUser(ctx, u.ID, transport.UserRequest{Username: "erin"})
	require.ErrorIs(t, err, apperr.ErrAlreadyExists)

	oldHash := u.PasswordHash
	inactive := false
	updated, err := env.Users.UpdateUser(ctx, u.ID, transport.UserRequest{Username: "david", Password: "new", IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "david", updated.Username)
	assert.False(t, updated.IsActive)
	assert.NotEqual(t, oldHash, updated.PasswordHash)

	_, err = env.Users.UpdateUser(ctx, 4242, transport.UserRequest{Username: "x"})
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateUserKeepsPasswordWhenEmpty(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	u := env.createUser(t, "frank", "pw", nil)
	_, err := env.Users.UpdateUser(ctx, u.ID, transport.UserRequest{Username: "frank"})
	require.NoError(t, err)

	got, err := env.Users.Authenticate(ctx, "frank", "pw")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestGetUserByName(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	u := env.createUser(t, "gina", "pw", nil)
	got, err := env.Users.GetUserByName(ctx, "gina")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = env.Users.GetUserByName(ctx, "nobody")
	require.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = env.Users.GetUserByName(ctx, " ")
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	env.createUser(t, "alice", "s3cret", nil)
	inactive := false
	_, err := env.Users.CreateUser(ctx, transport.UserRequest{Username: "ivan", Password: "pw", IsActive: &inactive})
	require.NoError(t, err)

	got, err := env.Users.Authenticate(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	tests := []struct {
		name, username, password string
	}{
		{name: "wrong password", username: "alice", password: "nope"},
		{name: "unknown user", username: "ghost", password: "s3cret"},
		{name: "inactive user", username: "ivan", password: "pw"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.Users.Authenticate(ctx, tt.username, tt.password)
			require.ErrorIs(t, err, apperr.ErrUnauthenticated)
		})
	}
}
