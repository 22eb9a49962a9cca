package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/accountsapi/accounts-service/internal/core/ports"
)

// UserHandler handles registration and listing.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Create handles POST /user/create_user.
//
// @Summary      Register a business or client user
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      registerUserRequest  true  "User registration details"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /user/create_user [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req registerUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.service.Register(c.Request().Context(), ports.RegisterUserInput{
		Username: req.Username,
		Nickname: req.Nickname,
		Password: req.Password,
		UserRole: req.UserRole,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ports.NewUserDetail(user))
}

// List handles GET /user.
//
// @Summary      List users by category
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Param        user_type  query     string  false  "business, client or all"  default(all)
// @Success      200        {object}  userListResponse
// @Failure      401        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Router       /user [get]
func (h *UserHandler) List(c echo.Context) error {
	if _, err := ctxPrincipal(c); err != nil {
		return err
	}

	userType := c.QueryParam("user_type")
	if userType == "" {
		userType = "all"
	}

	result, err := h.service.List(c.Request().Context(), userType)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
