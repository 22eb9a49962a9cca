package ports

import (
	"context"

	"github.com/accountsapi/accounts-service/internal/core/domain"
)

// ListUsersFilter narrows a user listing. An empty RoleName selects everyone.
type ListUsersFilter struct {
	RoleName string
}

// UserRepository persists users.
type UserRepository interface {
	// Create assigns the user an ID and inserts it. Returns
	// domain.ErrUserExists on a duplicate username.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByUsername returns domain.ErrUserNotFound when absent.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// List returns matching users with their role expanded, in insertion order.
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, error)
}
