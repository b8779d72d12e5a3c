package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "nicbank/internal/errors"
	"nicbank/internal/middleware"
	"nicbank/internal/service"
)

// UserHandler bundles the user-management HTTP handlers.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// CreateUserRequest is the admin-create payload.
type CreateUserRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Status     string `json:"status"`
}

// UpdateUserRequest carries optional field updates.
type UpdateUserRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email" validate:"omitempty,email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Status     string `json:"status"`
}

// UserListResponse is the paginated list payload.
type UserListResponse struct {
	Users      []ManagementView `json:"users"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"totalPages"`
	HasMore    bool             `json:"hasMore"`
}

// Stats godoc
// @Summary User statistics
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]int64
// @Failure 403 {object} errors.Response
// @Router /users/stats [get]
func (h *UserHandler) Stats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"totalUsers":        stats.TotalUsers,
		"activeUsers":       stats.ActiveUsers,
		"pendingApprovals":  stats.PendingApprovals,
		"newUsersThisMonth": stats.NewUsersThisMonth,
	})
}

// List godoc
// @Summary List users with pagination and filters
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param search query string false "Search by name or email"
// @Param role query string false "Filter by role"
// @Param status query string false "Filter by status"
// @Success 200 {object} UserListResponse
// @Failure 400 {object} errors.Response
// @Failure 403 {object} errors.Response
// @Router /users [get]
func (h *UserHandler) List(c echo.Context) error {
	params := service.ListParams{
		Search: c.QueryParam("search"),
		Role:   c.QueryParam("role"),
		Status: c.QueryParam("status"),
	}
	if v := c.QueryParam("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return respondInvalid(c, "Page must be a number", nil)
		}
		params.Page = page
	}
	if v := c.QueryParam("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return respondInvalid(c, "Limit must be a number", nil)
		}
		params.Limit = limit
	}

	page, err := h.svc.List(c.Request().Context(), params)
	if err != nil {
		return respondError(c, err)
	}

	views := make([]ManagementView, 0, len(page.Users))
	for i := range page.Users {
		views = append(views, toManagementView(&page.Users[i]))
	}
	return c.JSON(http.StatusOK, UserListResponse{
		Users:      views,
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
		HasMore:    page.HasMore,
	})
}

// Get godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} ManagementView
// @Failure 404 {object} errors.Response
// @Router /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondInvalid(c, "invalid id", nil)
	}
	user, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toManagementView(user))
}

// Create godoc
// @Summary Create user (admin only)
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateUserRequest true "User data"
// @Success 201 {object} errors.Response
// @Failure 400 {object} errors.Response
// @Failure 403 {object} errors.Response
// @Router /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return respondInvalid(c, "invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return respondInvalid(c, "Validation error", err.Error())
	}

	user, err := h.svc.Create(c.Request().Context(), service.CreateUserInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Role:       req.Role,
		Department: req.Department,
		Status:     req.Status,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, "User created successfully", toManagementView(user))
}

// Update godoc
// @Summary Update user (self or admin)
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body UpdateUserRequest true "Fields to update"
// @Success 200 {object} errors.Response
// @Failure 400 {object} errors.Response
// @Failure 403 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Router /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondInvalid(c, "invalid id", nil)
	}
	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return respondInvalid(c, "invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return respondInvalid(c, "Validation error", err.Error())
	}

	user, err := h.svc.Update(c.Request().Context(), middleware.CurrentUser(c), id, service.UpdateUserInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Role:       req.Role,
		Department: req.Department,
		Status:     req.Status,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "User updated successfully", toManagementView(user))
}

// Delete godoc
// @Summary Delete user (admin only, never self)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} errors.Response
// @Failure 400 {object} errors.Response
// @Failure 403 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondInvalid(c, "invalid id", nil)
	}
	if err := h.svc.Delete(c.Request().Context(), middleware.CurrentUser(c), id); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "User deleted successfully", echo.Map{"id": id})
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperrors.ErrInvalidInput
	}
	return uint(id), nil
}
