package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"nicbank/internal/middleware"
	"nicbank/internal/model"
	"nicbank/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest renames the caller's account.
type UpdateProfileRequest struct {
	Name string `json:"name" validate:"required"`
}

// ChangePasswordRequest carries a password change.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

// TokenEnvelope is the token portion of a login response.
type TokenEnvelope struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// LoginResponse is the login success payload.
type LoginResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    *model.User   `json:"data"`
	Token   TokenEnvelope `json:"token"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} errors.Response
// @Failure 400 {object} errors.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return respondInvalid(c, "invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return respondInvalid(c, "Validation error", err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, "User registered successfully", user)
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} errors.Response
// @Failure 403 {object} errors.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return respondInvalid(c, "invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return respondInvalid(c, "Validation error", err.Error())
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, LoginResponse{
		Success: true,
		Message: "Login successful",
		Data:    user,
		Token:   TokenEnvelope{AccessToken: token, TokenType: "bearer"},
	})
}

// Me godoc
// @Summary Get current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} errors.Response
// @Failure 401 {object} errors.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user := middleware.CurrentUser(c)
	return respond(c, http.StatusOK, "OK", user)
}

// UpdateProfile godoc
// @Summary Update own profile
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile data"
// @Success 200 {object} errors.Response
// @Failure 400 {object} errors.Response
// @Router /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return respondInvalid(c, "invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return respondInvalid(c, "Validation error", err.Error())
	}

	user, err := h.authService.UpdateProfile(c.Request().Context(), middleware.CurrentUser(c), req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Profile updated successfully", user)
}

// ChangePassword godoc
// @Summary Change own password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "Old and new password"
// @Success 200 {object} errors.Response
// @Failure 400 {object} errors.Response
// @Router /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return respondInvalid(c, "invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return respondInvalid(c, "Validation error", err.Error())
	}

	err := h.authService.ChangePassword(c.Request().Context(), middleware.CurrentUser(c), req.OldPassword, req.NewPassword)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Password changed successfully", nil)
}
