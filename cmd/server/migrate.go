package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/college_admin/internal/apperr"
	"github.com/Skotchmaster/college_admin/internal/config"
	"github.com/Skotchmaster/college_admin/internal/db"
	"github.com/Skotchmaster/college_admin/internal/events"
)

func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema and seed lookup data",
		Long: `Create or update the database schema, seed user types and the Admin
and User roles, and create the events topic when KAFKA_BROKERS is set.`,
		RunE: runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
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

	cmd.Println("Connecting to database...")
	gdb, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(gdb)

	cmd.Println("Running migrations...")
	if err := db.Migrate(ctx, gdb); err != nil {
		return err
	}

	if len(cfg.KafkaBrokers) > 0 {
		tctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := events.EnsureTopic(tctx, cfg.KafkaBrokers[0], cfg.KafkaTopic); err != nil {
			return err
		}
		cmd.Printf("Topic %s ready\n", cfg.KafkaTopic)
	}

	cmd.Println("Migrations completed successfully")
	return nil
}
