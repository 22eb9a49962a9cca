package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// principal is the caller identity injected by the Auth middleware.
type principal struct {
	Username string
	Role     string
	IsAdmin  bool
}

// ctxPrincipal extracts the auth claims injected by the Auth middleware. A
// missing username means the route was mounted without Auth.
func ctxPrincipal(c echo.Context) (principal, error) {
	username, _ := c.Get("username").(string)
	if username == "" {
		return principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	role, _ := c.Get("role").(string)
	isAdmin, _ := c.Get("is_admin").(bool)
	return principal{Username: username, Role: role, IsAdmin: isAdmin}, nil
}
