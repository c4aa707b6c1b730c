package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC  usecase.UserUsecase
	StatsUC usecase.StatsUsecase
	Logger  *slog.Logger
}

// UserHandler serves admin user management and the dashboard.
type UserHandler struct {
	userUC  usecase.UserUsecase
	statsUC usecase.StatsUsecase
	logger  *slog.Logger
}

// NewUserHandler is the constructor for UserHandler.
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC:  params.UserUC,
		statsUC: params.StatsUC,
		logger:  params.Logger,
	}
}

// UpdateUserRequest is the body of PUT /admin/users/:id. Omitted fields are left untouched.
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=100"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"isActive"`
}

// ListUsers lists accounts with optional role and search filters.
func (h *UserHandler) ListUsers(c echo.Context) error {
	page, err := h.userUC.ListUsers(c.Request().Context(), &usecase.ListUsersInput{
		Role:   c.QueryParam("role"),
		Search: c.QueryParam("search"),
		Page:   pageRequest(c),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Paginated(c, toUserResponses(page.Users), page.Pagination, "")
}

// GetUser returns one account.
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user, err := h.userUC.GetUser(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(user), "")
}

// UpdateUser changes name, role or activation.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	actorID, err := currentUser(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req UpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.userUC.UpdateUser(c.Request().Context(), actorID, id, &usecase.UpdateUserInput{
		Name:     req.Name,
		Role:     req.Role,
		IsActive: req.IsActive,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(user), "User updated successfully")
}

// DeleteUser removes an account without orders.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	actorID, err := currentUser(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.userUC.DeleteUser(c.Request().Context(), actorID, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "User deleted successfully")
}

// DashboardStats is the admin dashboard.
func (h *UserHandler) DashboardStats(c echo.Context) error {
	stats, err := h.statsUC.DashboardStats(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toDashboardStatsResponse(stats), "")
}
