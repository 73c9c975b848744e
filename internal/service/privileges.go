package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/college_admin/internal/apperr"
	"github.com/Skotchmaster/college_admin/internal/events"
	"github.com/Skotchmaster/college_admin/internal/models"
	"github.com/Skotchmaster/college_admin/internal/repo"
	"github.com/Skotchmaster/college_admin/internal/transport"
)

type PrivilegeService struct {
	Privileges repo.Repository[models.RolePrivilege]
	Roles      repo.Repository[models.Role]
	Events     events.Publisher
	Now        func() time.Time
}

func NewPrivilegeService(db *gorm.DB, pub events.Publisher) *PrivilegeService {
	return &PrivilegeService{
		Privileges: repo.New[models.RolePrivilege](db),
		Roles:      repo.New[models.Role](db),
		Events:     pub,
	}
}

func (s *PrivilegeService) Create(ctx context.Context, req transport.PrivilegeRequest) (*models.RolePrivilege, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.roleExists(ctx, req.RoleID); err != nil {
		return nil, err
	}
	now := clock(s.Now).now()
	p := &models.RolePrivilege{
		RoleID:            req.RoleID,
		RolePrivilegeName: strings.TrimSpace(req.RolePrivilegeName),
		Description:       req.Description,
		IsActive:          req.Active,
		CreatedDate:       now,
		ModifiedDate:      now,
	}
	if _, err := s.Privileges.Add(ctx, p); err != nil {
		return nil, err
	}
	publish(ctx, s.Events, events.New(events.PrivilegeCreated, p.ID, p.RolePrivilegeName))
	return p, nil
}

func (s *PrivilegeService) List(ctx context.Context) ([]models.RolePrivilege, error) {
	return s.Privileges.GetAllByFilter(ctx, repo.Where(repo.NotDeleted()))
}

func (s *PrivilegeService) Get(ctx context.Context, id uint) (*models.RolePrivilege, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.Privileges.Get(ctx, repo.Where(repo.ByID(id), repo.NotDeleted()), false)
}

// GetByName returns the first privilege, in key order, whose name contains name.
func (s *PrivilegeService) GetByName(ctx context.Context, name string) (*models.RolePrivilege, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", apperr.ErrValidation)
	}
	return s.Privileges.Get(ctx, repo.Where(repo.Contains("role_privilege_name", name), repo.NotDeleted()), false)
}

func (s *PrivilegeService) ListByRole(ctx context.Context, roleID uint) ([]models.RolePrivilege, error) {
	if err := requireID(roleID); err != nil {
		return nil, err
	}
	if _, err := s.Roles.Get(ctx, repo.Where(repo.ByID(roleID), repo.NotDeleted()), false); err != nil {
		return nil, err
	}
	return s.Privileges.GetAllByFilter(ctx, repo.Where(repo.Eq("role_id", roleID), repo.NotDeleted()))
}

func (s *PrivilegeService) Update(ctx context.Context, id uint, req transport.PrivilegeRequest) (*models.RolePrivilege, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	p, err := s.Privileges.Get(ctx, repo.Where(repo.ByID(id), repo.NotDeleted()), true)
	if err != nil {
		return nil, err
	}
	if req.RoleID != p.RoleID {
		if err := s.roleExists(ctx, req.RoleID); err != nil {
			return nil, err
		}
	}
	p.RoleID = req.RoleID
	p.RolePrivilegeName = strings.TrimSpace(req.RolePrivilegeName)
	p.Description = req.Description
	p.IsActive = req.Active
	p.ModifiedDate = clock(s.Now).now()
	if err := s.Privileges.Update(ctx, p); err != nil {
		return nil, err
	}
	publish(ctx, s.Events, events.New(events.PrivilegeUpdated, p.ID, p.RolePrivilegeName))
	return p, nil
}

func (s *PrivilegeService) Delete(ctx context.Context, id uint) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Privileges.Delete(ctx, p); err != nil {
		return err
	}
	publish(ctx, s.Events, events.New(events.PrivilegeDeleted, p.ID, p.RolePrivilegeName))
	return nil
}

func (s *PrivilegeService) roleExists(ctx context.Context, roleID uint) error {
	_, err := s.Roles.Get(ctx, repo.Where(repo.ByID(roleID), repo.NotDeleted()), false)
	if errors.Is(err, apperr.ErrNotFound) {
		return fmt.Errorf("%w: role %d does not exist", apperr.ErrValidation, roleID)
	}
	return err
}
