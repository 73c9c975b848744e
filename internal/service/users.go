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
	"github.com/Skotchmaster/college_admin/internal/hash"
	"github.com/Skotchmaster/college_admin/internal/logging"
	"github.com/Skotchmaster/college_admin/internal/models"
	"github.com/Skotchmaster/college_admin/internal/repo"
	"github.com/Skotchmaster/college_admin/internal/transport"
)

// Verified against when the username is unknown, so a miss costs one derivation too.
var (
	dummyHash = make([]byte, hash.KeySize)
	dummySalt = make([]byte, hash.SaltSize)
)

type UserService struct {
	Users  repo.Repository[models.User]
	Hasher hash.Hasher
	Events events.Publisher
	Now    func() time.Time
}

func NewUserService(db *gorm.DB, pub events.Publisher) *UserService {
	return &UserService{
		Users:  repo.New[models.User](db),
		Hasher: hash.PBKDF2{},
		Events: pub,
	}
}

func (s *UserService) CreateUser(ctx context.Context, req transport.UserRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "user.create")

	if err := req.Validate(true); err != nil {
		return nil, err
	}
	username := strings.TrimSpace(req.Username)

	if err := s.ensureUsernameFree(ctx, username, 0); err != nil {
		return nil, err
	}

	pwHash, salt, err := s.Hasher.Hash(req.Password)
	if err != nil {
		l.Error("create_user_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	now := clock(s.Now).now()
	user := &models.User{
		Username:     username,
		PasswordHash: pwHash,
		PasswordSalt: salt,
		UserTypeID:   req.UserTypeID,
		RoleID:       req.RoleID,
		IsActive:     req.IsActive == nil || *req.IsActive,
		IsDeleted:    false,
		CreatedDate:  now,
		ModifiedDate: now,
	}
	if _, err := s.Users.Add(ctx, user); err != nil {
		return nil, err
	}

	publish(ctx, s.Events, events.New(events.UserCreated, user.ID, user.Username))
	l.Info("create_user_success", "user_id", user.ID)
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uint, req transport.UserRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "user.update", "user_id", id)

	if err := requireID(id); err != nil {
		return nil, err
	}
	if err := req.Validate(false); err != nil {
		return nil, err
	}

	user, err := s.Users.Get(ctx, repo.Where(repo.ByID(id), repo.NotDeleted()), true)
	if err != nil {
		return nil, err
	}

	username := strings.TrimSpace(req.Username)
	if username != user.Username {
		if err := s.ensureUsernameFree(ctx, username, user.ID); err != nil {
			return nil, err
		}
		user.Username = username
	}
	if req.Password != "" {
		pwHash, salt, err := s.Hasher.Hash(req.Password)
		if err != nil {
			l.Error("update_user_error", "status", 500, "reason", "cannot hash the password", "error", err)
			return nil, err
		}
		user.PasswordHash, user.PasswordSalt = pwHash, salt
	}
	user.UserTypeID = req.UserTypeID
	user.RoleID = req.RoleID
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	user.ModifiedDate = clock(s.Now).now()

	if err := s.Users.Update(ctx, user); err != nil {
		return nil, err
	}

	publish(ctx, s.Events, events.New(events.UserUpdated, user.ID, user.Username))
	l.Info("update_user_success")
	return user, nil
}

// DeleteUser marks the user deleted; the row stays in the table.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if err := requireID(id); err != nil {
		return err
	}

	user, err := s.Users.Get(ctx, repo.Where(repo.ByID(id), repo.NotDeleted()), true)
	if err != nil {
		return err
	}
	user.IsDeleted = true
	user.ModifiedDate = clock(s.Now).now()
	if err := s.Users.Update(ctx, user); err != nil {
		return err
	}

	publish(ctx, s.Events, events.New(events.UserDeleted, user.ID, user.Username))
	logging.FromContext(ctx).Info("delete_user_success", "svc", "user.delete", "user_id", id)
	return nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.Users.Get(ctx, repo.Where(repo.ByID(id), repo.NotDeleted()), false)
}

func (s *UserService) GetUserByName(ctx context.Context, username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", apperr.ErrValidation)
	}
	return s.Users.Get(ctx, repo.Where(repo.Eq("username", username), repo.NotDeleted()), false)
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.Users.GetAllByFilter(ctx, repo.Where(repo.NotDeleted()))
}

// Authenticate returns the active user whose stored hash matches password.
// Every failure is apperr.ErrUnauthenticated so callers cannot tell them apart.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.Users.Get(ctx, repo.Where(repo.Eq("username", username), repo.NotDeleted()), false)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			s.Hasher.Verify(password, dummyHash, dummySalt)
			return nil, apperr.ErrUnauthenticated
		}
		return nil, err
	}

	if !s.Hasher.Verify(password, user.PasswordHash, user.PasswordSalt) || !user.IsActive {
		return nil, apperr.ErrUnauthenticated
	}
	return user, nil
}

func (s *UserService) ensureUsernameFree(ctx context.Context, username string, self uint) error {
	existing, err := s.Users.Get(ctx, repo.Where(repo.Eq("username", username), repo.NotDeleted()), false)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID == self:
		return nil
	default:
		return fmt.Errorf("%w: username %q is taken", apperr.ErrAlreadyExists, username)
	}
}
