package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/accountsapi/accounts-service/internal/core/metrics"
	"github.com/accountsapi/accounts-service/internal/core/domain"
	"github.com/accountsapi/accounts-service/internal/core/ports"
)

// RoleCache abstracts the role lookup cache (Redis).
type RoleCache interface {
	Get(ctx context.Context, name string) (*domain.Role, bool, error)
	Set(ctx context.Context, role *domain.Role) error
}

type userService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	cache  RoleCache
	logger zerolog.Logger
}

// NewUserService returns a UserService implementation. cache may be nil.
func NewUserService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	cache RoleCache,
	logger zerolog.Logger,
) ports.UserService {
	return &userService{
		users:  users,
		roles:  roles,
		cache:  cache,
		logger: logger,
	}
}

// Register creates a user attached to the default role of the requested kind.
func (s *userService) Register(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error) {
	kind, err := domain.ParseRoleKind(in.UserRole)
	if err != nil {
		return nil, err
	}
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	role, err := s.resolveRole(ctx, kind.DefaultRole())
	if err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register user: hash password: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		Nickname:     in.Nickname,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("username", username).Msg("failed to create user")
		return nil, fmt.Errorf("register user: %w", err)
	}

	metrics.UsersRegisteredTotal.WithLabelValues(role.Name).Inc()
	s.logger.Info().
		Int64("user_id", created.ID).
		Str("username", created.Username).
		Str("role", role.Name).
		Msg("user registered")

	return created, nil
}

// resolveRole returns the persisted role for def.Name, creating it on first use.
func (s *userService) resolveRole(ctx context.Context, def domain.Role) (*domain.Role, error) {
	if s.cache != nil {
		role, ok, err := s.cache.Get(ctx, def.Name)
		if err != nil {
			s.logger.Warn().Err(err).Str("role", def.Name).Msg("role cache lookup failed, falling back to store")
		} else if ok {
			return role, nil
		}
	}

	role, created, err := s.roles.GetOrCreate(ctx, def)
	if err != nil {
		return nil, fmt.Errorf("get or create role %q: %w", def.Name, err)
	}
	if created {
		metrics.RolesCreatedTotal.WithLabelValues(role.Name).Inc()
		s.logger.Info().Int64("role_id", role.ID).Str("role", role.Name).Msg("role created")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, role); err != nil {
			s.logger.Warn().Err(err).Str("role", role.Name).Msg("failed to cache role")
		}
	}
	return role, nil
}

// List returns the users inside the scope named by userType.
func (s *userService) List(ctx context.Context, userType string) (*ports.UserListResult, error) {
	scope := domain.ParseListScope(userType)

	users, err := s.users.List(ctx, ports.ListUsersFilter{RoleName: scope.RoleName()})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	// The store already filters; re-applying the pure filter keeps the
	// result correct for stores that ignore RoleName.
	users = domain.FilterByScope(users, scope)

	details := make([]ports.UserDetail, 0, len(users))
	for _, u := range users {
		details = append(details, ports.NewUserDetail(u))
	}

	metrics.UserListRequestsTotal.WithLabelValues(string(scope)).Inc()

	return &ports.UserListResult{
		TotalUser: scope.TotalLabel(len(details)),
		Users:     details,
	}, nil
}

// EnsureAdmin seeds an administrator without role when username is free.
func (s *userService) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.users.FindByUsername(ctx, username)
	if err == nil {
		s.logger.Debug().Str("username", username).Msg("admin already present")
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("ensure admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ensure admin: hash password: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		IsAdmin:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// Another instance seeded it first.
		if errors.Is(err, domain.ErrUserExists) {
			return nil
		}
		return fmt.Errorf("ensure admin: %w", err)
	}

	s.logger.Info().Int64("user_id", created.ID).Str("username", created.Username).Msg("admin seeded")
	return nil
}
