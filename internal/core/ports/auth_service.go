package ports

import "context"

// TokenPair is issued on sign-in.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AuthService signs users in and renews access tokens.
type AuthService interface {
	SignIn(ctx context.Context, username, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
}
