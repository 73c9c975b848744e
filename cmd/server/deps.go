package main

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/college_admin/internal/config"
	"github.com/Skotchmaster/college_admin/internal/db"
	"github.com/Skotchmaster/college_admin/internal/events"
	"github.com/Skotchmaster/college_admin/internal/httpserver"
	"github.com/Skotchmaster/college_admin/internal/search"
	"github.com/Skotchmaster/college_admin/internal/service"
	"github.com/Skotchmaster/college_admin/internal/tokens"
)

type app struct {
	DB        *gorm.DB
	Publisher events.Publisher
	Deps      *httpserver.Deps
}

func openDB(ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return db.Open(ctx, db.Options{Driver: cfg.DBDriver, DSN: cfg.DatabaseURL, Log: cfg.DBLog})
}

func newPublisher(cfg config.Config, logger *slog.Logger) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("events_disabled", "reason", "KAFKA_BROKERS is empty")
		return events.Nop{}
	}
	p, err := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		logger.Warn("events_disabled", "error", err)
		return events.Nop{}
	}
	return p
}

// newStudentIndex returns nil when search is not configured or unreachable;
// student search then runs against the database.
func newStudentIndex(ctx context.Context, cfg config.Config, logger *slog.Logger) search.StudentIndex {
	if cfg.ESURL == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	idx, err := search.NewClient(ctx, search.Settings{
		URL:      cfg.ESURL,
		User:     cfg.ESUser,
		Password: cfg.ESPassword,
		Index:    cfg.ESStudentIndex,
	})
	if err != nil {
		logger.Warn("search_disabled", "error", err)
		return nil
	}
	return idx
}

func buildApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (*app, error) {
	issuer, err := tokens.NewIssuer(tokens.Settings{
		Secret:    cfg.JWTSecret,
		Issuer:    cfg.JWTIssuer,
		Audience:  cfg.JWTAudience,
		ClockSkew: cfg.TokenClockSkew,
	})
	if err != nil {
		return nil, err
	}

	gdb, err := openDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx, gdb); err != nil {
		_ = db.Close(gdb)
		return nil, err
	}

	pub := newPublisher(cfg, logger)
	index := newStudentIndex(ctx, cfg, logger)

	users := service.NewUserService(gdb, pub)
	privileges := service.NewPrivilegeService(gdb, pub)

	return &app{
		DB:        gdb,
		Publisher: pub,
		Deps: &httpserver.Deps{
			DB:         gdb,
			Issuer:     issuer,
			Auth:       &httpserver.AuthHTTP{Svc: service.NewAuthService(gdb, users, issuer, pub)},
			Users:      &httpserver.UserHTTP{Svc: users},
			Roles:      &httpserver.RoleHTTP{Svc: service.NewRoleService(gdb, pub), Privileges: privileges},
			Privileges: &httpserver.PrivilegeHTTP{Svc: privileges},
			Students:   &httpserver.StudentHTTP{Svc: service.NewStudentService(gdb, index, pub)},
			UserTypes:  &httpserver.UserTypeHTTP{Svc: service.NewUserTypeService(gdb)},
		},
	}, nil
}

func (a *app) Close(logger *slog.Logger) {
	if err := a.Publisher.Close(); err != nil {
		logger.Warn("events_close_failed", "error", err)
	}
	if err := db.Close(a.DB); err != nil {
		logger.Warn("db_close_failed", "error", err)
	}
}
