package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/college_admin/internal/apperr"
	"github.com/Skotchmaster/college_admin/internal/events"
	"github.com/Skotchmaster/college_admin/internal/logging"
	"github.com/Skotchmaster/college_admin/internal/metrics"
	"github.com/Skotchmaster/college_admin/internal/models"
	"github.com/Skotchmaster/college_admin/internal/repo"
	"github.com/Skotchmaster/college_admin/internal/tokens"
)

type LoginResult struct {
	Username  string
	Token     string
	ExpiresAt time.Time
}

type AuthService struct {
	Users  *UserService
	Roles  repo.Repository[models.Role]
	Issuer *tokens.Issuer
	Events events.Publisher
}

func NewAuthService(db *gorm.DB, users *UserService, issuer *tokens.Issuer, pub events.Publisher) *AuthService {
	return &AuthService{
		Users:  users,
		Roles:  repo.New[models.Role](db),
		Issuer: issuer,
		Events: pub,
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	if username == "" || password == "" {
		metrics.LoginAttempt(metrics.OutcomeBadRequest)
		return nil, fmt.Errorf("%w: username and password are required", apperr.ErrValidation)
	}
	if !s.Issuer.Configured() {
		metrics.LoginAttempt(metrics.OutcomeMisconfigured)
		l.Error("login_error", "status", 500, "reason", "token issuer is not configured")
		return nil, &apperr.ConfigurationError{Missing: []string{"JWT_SECRET", "JWT_ISSUER", "JWT_AUDIENCE"}}
	}

	user, err := s.Users.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, apperr.ErrUnauthenticated) {
			metrics.LoginAttempt(metrics.OutcomeInvalid)
			l.Warn("login_failed", "status", 401, "reason", "invalid credentials")
			return nil, err
		}
		metrics.LoginAttempt(metrics.OutcomeError)
		l.Error("login_error", "status", 500, "error", err)
		return nil, err
	}

	role, err := s.roleName(ctx, user)
	if err != nil {
		metrics.LoginAttempt(metrics.OutcomeError)
		l.Error("login_error", "status", 500, "reason", "cannot resolve role", "error", err)
		return nil, err
	}

	token, err := s.Issuer.Issue(user.Username, role)
	if err != nil {
		metrics.LoginAttempt(metrics.OutcomeError)
		l.Error("login_error", "status", 500, "reason", "cannot issue token", "error", err)
		return nil, err
	}
	metrics.TokenIssued()
	metrics.LoginAttempt(metrics.OutcomeSuccess)

	publish(ctx, s.Events, events.New(events.UserLoggedIn, user.ID, user.Username))
	l.Info("login_success", "role", role)
	return &LoginResult{
		Username:  user.Username,
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt,
	}, nil
}

// roleName falls back to the User role when the account has none or it was deleted.
func (s *AuthService) roleName(ctx context.Context, user *models.User) (string, error) {
	if user.RoleID == nil {
		return models.RoleUser, nil
	}
	role, err := s.Roles.Get(ctx, repo.Where(repo.ByID(*user.RoleID), repo.NotDeleted()), false)
	if errors.Is(err, apperr.ErrNotFound) {
		return models.RoleUser, nil
	}
	if err != nil {
		return "", err
	}
	return role.RoleName, nil
}
