package ports

import (
	"context"

	"github.com/accountsapi/accounts-service/internal/core/domain"
)

// RegisterUserInput is the DTO passed from the transport layer to UserService.
type RegisterUserInput struct {
	Username string
	Nickname string
	Password string
	UserRole string
}

// RoleView is the serialised form of a role inside user responses.
// ID is nil for the synthetic Superuser role.
type RoleView struct {
	ID          *int64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UserDetail is the serialised form of a single user.
type UserDetail struct {
	ID       int64     `json:"id"`
	Username string    `json:"username"`
	Nickname string    `json:"nickname"`
	UserRole *RoleView `json:"user_role"`
}

// UserListResult is returned by UserService.List.
type UserListResult struct {
	TotalUser string       `json:"total_user"`
	Users     []UserDetail `json:"users"`
}

// UserService defines the registration and listing use cases.
type UserService interface {
	Register(ctx context.Context, input RegisterUserInput) (*domain.User, error)
	List(ctx context.Context, userType string) (*UserListResult, error)
	EnsureAdmin(ctx context.Context, username, password string) error
}

// NewUserDetail serialises u. An administrator without a role is shown with
// the synthetic Superuser role.
func NewUserDetail(u *domain.User) UserDetail {
	d := UserDetail{
		ID:       u.ID,
		Username: u.Username,
		Nickname: u.Nickname,
	}
	switch {
	case u.Role != nil:
		id := u.Role.ID
		d.UserRole = &RoleView{ID: &id, Name: u.Role.Name, Description: u.Role.Description}
	case u.IsAdmin:
		d.UserRole = &RoleView{Name: domain.RoleSuperuser, Description: "Superuser Account"}
	}
	return d
}
