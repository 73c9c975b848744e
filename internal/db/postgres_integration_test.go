//go:build integration

package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/Skotchmaster/college_admin/internal/apperr"
	"github.com/Skotchmaster/college_admin/internal/db"
	"github.com/Skotchmaster/college_admin/internal/models"
	"github.com/Skotchmaster/college_admin/internal/repo"
)

func startPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:17-alpine",
		postgres.WithDatabase("college_test"),
		postgres.WithUsername("college"),
		postgres.WithPassword("college"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	gdb, err := db.Open(ctx, db.Options{Driver: db.DriverPostgres, DSN: dsn})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	require.NoError(t, db.Migrate(ctx, gdb))
	// a second run must be a no-op
	require.NoError(t, db.Migrate(ctx, gdb))
	return gdb
}

func TestPostgresStore(t *testing.T) {
	gdb := startPostgres(t)
	ctx := context.Background()
	users := repo.New[models.User](gdb)

	newUser := func(name string) *models.User {
		now := time.Now().UTC()
		return &models.User{Username: name, PasswordHash: []byte("h"), PasswordSalt: []byte("s"), IsActive: true, CreatedDate: now, ModifiedDate: now}
	}

	t.Run("seeds are not duplicated", func(t *testing.T) {
		roles, err := repo.New[models.Role](gdb).GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, roles, 2)
		types, err := repo.New[models.UserType](gdb).GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, types, 4)
	})

	t.Run("partial unique index on username", func(t *testing.T) {
		first, err := users.Add(ctx, newUser("alice"))
		require.NoError(t, err)

		_, err = users.Add(ctx, newUser("alice"))
		require.ErrorIs(t, err, apperr.ErrAlreadyExists)

		first.IsDeleted = true
		require.NoError(t, users.Update(ctx, first))

		_, err = users.Add(ctx, newUser("alice"))
		require.NoError(t, err)
	})

	t.Run("tracked read inside a transaction", func(t *testing.T) {
		_, err := users.Add(ctx, newUser("bob"))
		require.NoError(t, err)

		err = gdb.Transaction(func(tx *gorm.DB) error {
			txUsers := repo.New[models.User](tx)
			u, err := txUsers.Get(ctx, repo.Where(repo.Eq("username", "bob"), repo.NotDeleted()), true)
			if err != nil {
				return err
			}
			u.IsActive = false
			return txUsers.Update(ctx, u)
		})
		require.NoError(t, err)

		got, err := users.Get(ctx, repo.Where(repo.Eq("username", "bob")), false)
		require.NoError(t, err)
		assert.False(t, got.IsActive)
	})

	t.Run("role delete cascades", func(t *testing.T) {
		roles := repo.New[models.Role](gdb)
		privileges := repo.New[models.RolePrivilege](gdb)

		r, err := roles.Add(ctx, &models.Role{RoleName: "Registrar", CreatedDate: time.Now().UTC()})
		require.NoError(t, err)
		_, err = privileges.Add(ctx, &models.RolePrivilege{RoleID: r.ID, RolePrivilegeName: "grades", CreatedDate: time.Now().UTC()})
		require.NoError(t, err)

		require.NoError(t, roles.Delete(ctx, r))
		left, err := privileges.GetAllByFilter(ctx, repo.Where(repo.Eq("role_id", r.ID)))
		require.NoError(t, err)
		assert.Empty(t, left)
	})

	t.Run("missing role is a validation error", func(t *testing.T) {
		_, err := repo.New[models.RolePrivilege](gdb).Add(ctx, &models.RolePrivilege{RoleID: 4242, RolePrivilegeName: "x", CreatedDate: time.Now().UTC()})
		require.ErrorIs(t, err, apperr.ErrValidation)
	})
}
