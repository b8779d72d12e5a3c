package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	apperrors "nicbank/internal/errors"
	"nicbank/internal/model"
)

// respond writes the standard success envelope.
func respond(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, apperrors.Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// respondError maps a domain error to its status code and writes the error
// envelope. Unexpected errors are logged here and reach the client as a
// generic 500.
func respondError(c echo.Context, err error) error {
	he := apperrors.MapErrorToHTTP(err)
	if he.StatusCode >= 500 {
		c.Logger().Error(err)
	}
	return c.JSON(he.StatusCode, apperrors.Response{
		Success: false,
		Message: he.Message,
	})
}

// respondInvalid writes a 400 with validation detail.
func respondInvalid(c echo.Context, message string, detail interface{}) error {
	return c.JSON(400, apperrors.Response{
		Success: false,
		Message: message,
		Errors:  detail,
	})
}

// ManagementView is the user shape returned by the management endpoints,
// matching what the dashboard table renders.
type ManagementView struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Status     string `json:"status"`
	LastLogin  string `json:"lastLogin"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

func toManagementView(u *model.User) ManagementView {
	status := "Inactive"
	if u.IsActive {
		status = "Active"
	}
	lastLogin := "Never"
	if u.LastLoginAt != nil {
		lastLogin = u.LastLoginAt.Format("2006-01-02 03:04 PM")
	}
	return ManagementView{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role.Wire(),
		Department: u.Department,
		Status:     status,
		LastLogin:  lastLogin,
		CreatedAt:  u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  u.UpdatedAt.Format(time.RFC3339),
	}
}
