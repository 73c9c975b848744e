package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/college_admin/internal/models"
)

var defaultUserTypes = []models.UserType{
	{Name: "Student", Description: "for students"},
	{Name: "Faculty", Description: "for faculty"},
	{Name: "Supporting Staff", Description: "for supporting staff"},
	{Name: "Parent", Description: "for parent"},
}

var defaultRoles = []models.Role{
	{RoleName: models.RoleAdmin, Description: "full access to administrative endpoints", Active: true},
	{RoleName: models.RoleUser, Description: "read access", Active: true},
}

// Migrate creates or updates the schema and seeds lookup rows that are missing.
func Migrate(ctx context.Context, db *gorm.DB) error {
	tx := db.WithContext(ctx)
	if err := tx.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, ut := range defaultUserTypes {
		ut := ut
		if err := seed(tx, &ut, "name = ?", ut.Name); err != nil {
			return fmt.Errorf("seed user type %q: %w", ut.Name, err)
		}
	}

	now := time.Now().UTC()
	for _, role := range defaultRoles {
		role := role
		role.CreatedDate, role.ModifiedDate = now, now
		if err := seed(tx, &role, "role_name = ? AND is_deleted = ?", role.RoleName, false); err != nil {
			return fmt.Errorf("seed role %q: %w", role.RoleName, err)
		}
	}

	return nil
}

func seed[T any](tx *gorm.DB, row *T, query string, args ...any) error {
	var existing T
	err := tx.Where(query, args...).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return tx.Create(row).Error
}
