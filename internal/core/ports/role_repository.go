package ports

import (
	"context"

	"github.com/accountsapi/accounts-service/internal/core/domain"
)

// RoleRepository persists role records.
type RoleRepository interface {
	// FindByName returns domain.ErrRoleNotFound when no role has that name.
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	// GetOrCreate returns the role named role.Name, inserting role when absent.
	// The lookup and insert are a single atomic step; created reports whether
	// this call inserted the record.
	GetOrCreate(ctx context.Context, role domain.Role) (r *domain.Role, created bool, err error)
}
