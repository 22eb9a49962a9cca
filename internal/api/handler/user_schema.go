package handler

import "github.com/accountsapi/accounts-service/internal/core/ports"

type registerUserRequest struct {
	Username string `json:"username"  validate:"required,max=150"`
	Nickname string `json:"nickname"  validate:"max=20"`
	Password string `json:"password"  validate:"required"`
	UserRole string `json:"user_role" validate:"required"`
}

// userResponse mirrors ports.UserDetail for the API docs.
type userResponse = ports.UserDetail

// userListResponse mirrors ports.UserListResult for the API docs.
type userListResponse = ports.UserListResult
