package domain

import "time"

// RoleKind is the category tag supplied at registration.
type RoleKind string

const (
	KindBusiness RoleKind = "business"
	KindClient   RoleKind = "client"
)

// Role names as persisted in the roles collection.
const (
	RoleBusiness  = "Business"
	RoleClient    = "Client"
	RoleSuperuser = "Superuser"
)

// Role is a named category a user can belong to.
type Role struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ParseRoleKind maps a registration tag to its RoleKind.
// Only the exact lowercase tags business and client are accepted.
func ParseRoleKind(s string) (RoleKind, error) {
	switch RoleKind(s) {
	case KindBusiness:
		return KindBusiness, nil
	case KindClient:
		return KindClient, nil
	default:
		return "", ErrInvalidRoleKind
	}
}

// DefaultRole returns the role record a user of this kind is attached to
// when none was provided.
func (k RoleKind) DefaultRole() Role {
	switch k {
	case KindBusiness:
		return Role{Name: RoleBusiness, Description: "Business User Account"}
	case KindClient:
		return Role{Name: RoleClient, Description: "Client User Account"}
	}
	return Role{}
}

// RoleName is the persisted role name for the kind.
func (k RoleKind) RoleName() string {
	return k.DefaultRole().Name
}
