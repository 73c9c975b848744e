package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/college_admin/internal/events"
	"github.com/Skotchmaster/college_admin/internal/models"
	"github.com/Skotchmaster/college_admin/internal/repo"
	"github.com/Skotchmaster/college_admin/internal/testutil"
	"github.com/Skotchmaster/college_admin/internal/tokens"
	"github.com/Skotchmaster/college_admin/internal/transport"
)

var fixedNow = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

type testEnv struct {
	DB     *gorm.DB
	Events *events.Memory
	Users  *UserService
	Auth   *AuthService
	Issuer *tokens.Issuer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb := testutil.NewDB(t)
	pub := &events.Memory{}

	issuer, err := tokens.NewIssuer(tokens.Settings{
		Secret:    []byte("test-jwt-secret"),
		Issuer:    "college",
		Audience:  "college-clients",
		ClockSkew: 30 * time.Second,
		Now:       func() time.Time { return fixedNow },
	})
	require.NoError(t, err)

	users := NewUserService(gdb, pub)
	users.Now = func() time.Time { return fixedNow }
	return &testEnv{
		DB:     gdb,
		Events: pub,
		Users:  users,
		Auth:   NewAuthService(gdb, users, issuer, pub),
		Issuer: issuer,
	}
}

func (env *testEnv) roleID(t *testing.T, name string) uint {
	t.Helper()
	r, err := repo.New[models.Role](env.DB).Get(context.Background(), repo.Where(repo.Eq("role_name", name)), false)
	require.NoError(t, err)
	return r.ID
}

func (env *testEnv) createUser(t *testing.T, username, password string, roleID *uint) *models.User {
	t.Helper()
	u, err := env.Users.CreateUser(context.Background(), transport.UserRequest{Username: username, Password: password, RoleID: roleID})
	require.NoError(t, err)
	return u
}
