package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/college_admin/internal/apperr"
	"github.com/Skotchmaster/college_admin/internal/config"
	"github.com/Skotchmaster/college_admin/internal/db"
	"github.com/Skotchmaster/college_admin/internal/events"
	"github.com/Skotchmaster/college_admin/internal/models"
	"github.com/Skotchmaster/college_admin/internal/repo"
	"github.com/Skotchmaster/college_admin/internal/service"
	"github.com/Skotchmaster/college_admin/internal/transport"
)

func NewCreateUserCmd() *cobra.Command {
	var username, password, role string

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a user, typically the first administrator",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := apperr.RequireNonEmpty("DATABASE_URL", cfg.DatabaseURL); err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			gdb, err := openDB(ctx, cfg)
			if err != nil {
				return err
			}
			defer db.Close(gdb)
			if err := db.Migrate(ctx, gdb); err != nil {
				return err
			}

			u, err := createUser(ctx, service.NewUserService(gdb, events.Nop{}), repo.New[models.Role](gdb), username, password, role)
			if err != nil {
				return err
			}
			cmd.Printf("Created user %s (id %d)\n", u.Username, u.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "login name")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	cmd.Flags().StringVar(&role, "role", models.RoleAdmin, "role name")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func createUser(ctx context.Context, users *service.UserService, roles repo.Repository[models.Role], username, password, roleName string) (*models.User, error) {
	req := transport.UserRequest{Username: username, Password: password}
	if roleName != "" {
		r, err := roles.Get(ctx, repo.Where(repo.Eq("role_name", roleName), repo.NotDeleted()), false)
		if err != nil {
			return nil, fmt.Errorf("role %q: %w", roleName, err)
		}
		req.RoleID = &r.ID
	}
	return users.CreateUser(ctx, req)
}
