package domain

import (
	"fmt"
	"time"
)

// User models a registered account. Role is nil for accounts created
// outside registration, typically administrators.
type User struct {
	ID           int64
	Username     string
	Nickname     string
	PasswordHash string `json:"-"`
	Role         *Role
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole reports whether the user is attached to the named role.
func (u *User) HasRole(name string) bool {
	return u.Role != nil && u.Role.Name == name
}

// IsBusiness reports whether u belongs to the Business view.
func IsBusiness(u *User) bool { return u.HasRole(RoleBusiness) }

// IsClient reports whether u belongs to the Client view.
func IsClient(u *User) bool { return u.HasRole(RoleClient) }

// DisplayRoleName is the role name carried in tokens and RBAC checks.
// Administrators without a role are reported as Superuser.
func (u *User) DisplayRoleName() string {
	if u.Role != nil {
		return u.Role.Name
	}
	if u.IsAdmin {
		return RoleSuperuser
	}
	return ""
}

// ListScope selects which users a listing returns.
type ListScope string

const (
	ScopeAll      ListScope = "all"
	ScopeBusiness ListScope = "business"
	ScopeClient   ListScope = "client"
)

// ParseListScope maps the user_type query value to a scope.
// Matching is exact; any other value, including a differently cased one,
// falls back to ScopeAll.
func ParseListScope(s string) ListScope {
	switch ListScope(s) {
	case ScopeBusiness:
		return ScopeBusiness
	case ScopeClient:
		return ScopeClient
	default:
		return ScopeAll
	}
}

// RoleName returns the role name the scope filters on, or "" for ScopeAll.
func (s ListScope) RoleName() string {
	switch s {
	case ScopeBusiness:
		return RoleBusiness
	case ScopeClient:
		return RoleClient
	default:
		return ""
	}
}

// Matches reports whether u falls inside the scope.
func (s ListScope) Matches(u *User) bool {
	switch s {
	case ScopeBusiness:
		return IsBusiness(u)
	case ScopeClient:
		return IsClient(u)
	default:
		return true
	}
}

// TotalLabel renders the human-readable count for a listing of n users.
func (s ListScope) TotalLabel(n int) string {
	switch s {
	case ScopeBusiness:
		return fmt.Sprintf("Total business users: %d", n)
	case ScopeClient:
		return fmt.Sprintf("Total client users: %d", n)
	default:
		return fmt.Sprintf("Total users[Business/Client]: %d", n)
	}
}

// FilterByScope returns the users inside scope, preserving order.
func FilterByScope(users []*User, scope ListScope) []*User {
	out := make([]*User, 0, len(users))
	for _, u := range users {
		if scope.Matches(u) {
			out = append(out, u)
		}
	}
	return out
}
