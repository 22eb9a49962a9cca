// Package testutil provides in-memory implementations of the repository ports
// for service and HTTP tests.
package testutil

import (
	"context"
	"sync"

	"github.com/accountsapi/accounts-service/internal/core/domain"
	"github.com/accountsapi/accounts-service/internal/core/ports"
)

// MemStore implements ports.UserRepository and ports.RoleRepository over
// slices guarded by a mutex. Users keep insertion order.
type MemStore struct {
	mu     sync.Mutex
	users  []*domain.User
	roles  []*domain.Role
	nextID int64

	// Counts of repository calls, for assertions.
	GetOrCreateCalls int
	// When set, the matching operation fails with this error.
	CreateErr error
	ListErr   error
}

var (
	_ ports.UserRepository = (*MemStore)(nil)
	_ ports.RoleRepository = (*MemStore)(nil)
)

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (m *MemStore) id() int64 {
	m.nextID++
	return m.nextID
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	if u.Role != nil {
		r := *u.Role
		c.Role = &r
	}
	return &c
}

func (m *MemStore) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	for _, u := range m.users {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	stored := cloneUser(user)
	stored.ID = m.id()
	m.users = append(m.users, stored)
	return cloneUser(stored), nil
}

func (m *MemStore) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *MemStore) FindByID(_ context.Context, id int64) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *MemStore) List(_ context.Context, filter ports.ListUsersFilter) ([]*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		if filter.RoleName != "" && !u.HasRole(filter.RoleName) {
			continue
		}
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (m *MemStore) FindByName(_ context.Context, name string) (*domain.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.roles {
		if r.Name == name {
			c := *r
			return &c, nil
		}
	}
	return nil, domain.ErrRoleNotFound
}

func (m *MemStore) GetOrCreate(_ context.Context, role domain.Role) (*domain.Role, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetOrCreateCalls++
	for _, r := range m.roles {
		if r.Name == role.Name {
			c := *r
			return &c, false, nil
		}
	}
	stored := role
	stored.ID = m.id()
	m.roles = append(m.roles, &stored)
	c := stored
	return &c, true, nil
}

// Roles returns a snapshot of the stored roles.
func (m *MemStore) Roles() []domain.Role {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Role, 0, len(m.roles))
	for _, r := range m.roles {
		out = append(out, *r)
	}
	return out
}

// Users returns a snapshot of the stored users.
func (m *MemStore) Users() []*domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, cloneUser(u))
	}
	return out
}
