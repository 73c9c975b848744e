package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/college_admin/internal/models"
	"github.com/Skotchmaster/college_admin/internal/repo"
)

type UserTypeService struct {
	Types repo.Repository[models.UserType]
}

func NewUserTypeService(db *gorm.DB) *UserTypeService {
	return &UserTypeService{Types: repo.New[models.UserType](db)}
}

func (s *UserTypeService) List(ctx context.Context) ([]models.UserType, error) {
	return s.Types.GetAll(ctx)
}
