package service

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/college_admin/internal/events"
	"github.com/Skotchmaster/college_admin/internal/logging"
	"github.com/Skotchmaster/college_admin/internal/models"
	"github.com/Skotchmaster/college_admin/internal/repo"
	"github.com/Skotchmaster/college_admin/internal/transport"
)

type RoleService struct {
	Roles  repo.Repository[models.Role]
	Events events.Publisher
	Now    func() time.Time
}

func NewRoleService(db *gorm.DB, pub events.Publisher) *RoleService {
	return &RoleService{Roles: repo.New[models.Role](db), Events: pub}
}

func (s *RoleService) Create(ctx context.Context, req transport.RoleRequest) (*models.Role, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	now := clock(s.Now).now()
	role := &models.Role{
		RoleName:     strings.TrimSpace(req.RoleName),
		Description:  req.Description,
		Active:       req.Active,
		CreatedDate:  now,
		ModifiedDate: now,
	}
	if _, err := s.Roles.Add(ctx, role); err != nil {
		return nil, err
	}
	publish(ctx, s.Events, events.New(events.RoleCreated, role.ID, role.RoleName))
	logging.FromContext(ctx).Info("create_role_success", "role_id", role.ID)
	return role, nil
}

func (s *RoleService) List(ctx context.Context) ([]models.Role, error) {
	return s.Roles.GetAllByFilter(ctx, repo.Where(repo.NotDeleted()))
}

func (s *RoleService) Get(ctx context.Context, id uint) (*models.Role, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.Roles.Get(ctx, repo.Where(repo.ByID(id), repo.NotDeleted()), false)
}

func (s *RoleService) Update(ctx context.Context, id uint, req transport.RoleRequest) (*models.Role, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	role, err := s.Roles.Get(ctx, repo.Where(repo.ByID(id), repo.NotDeleted()), true)
	if err != nil {
		return nil, err
	}
	role.RoleName = strings.TrimSpace(req.RoleName)
	role.Description = req.Description
	role.Active = req.Active
	role.ModifiedDate = clock(s.Now).now()
	if err := s.Roles.Update(ctx, role); err != nil {
		return nil, err
	}
	publish(ctx, s.Events, events.New(events.RoleUpdated, role.ID, role.RoleName))
	return role, nil
}

// Delete removes the role row; its privileges go with it at the store.
func (s *RoleService) Delete(ctx context.Context, id uint) error {
	role, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Roles.Delete(ctx, role); err != nil {
		return err
	}
	publish(ctx, s.Events, events.New(events.RoleDeleted, role.ID, role.RoleName))
	logging.FromContext(ctx).Info("delete_role_success", "role_id", id)
	return nil
}
