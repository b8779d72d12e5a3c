package middleware

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"nicbank/internal/auth"
	apperrors "nicbank/internal/errors"
	"nicbank/internal/model"
	"nicbank/internal/repository"
)

// ContextUserKey is where LoadUser stashes the resolved *model.User.
const ContextUserKey = "currentUser"

// claimsContextKey is where the JWT middleware stores verified claims.
const claimsContextKey = "user"

// Guard resolves "who is calling, and are they allowed". Every request
// re-verifies the token and re-reads the user, so a deactivation or role
// change takes effect on the very next request.
type Guard struct {
	tokens *auth.TokenService
	repo   repository.UserRepository
}

// NewGuard creates a Guard over the token service and user repository.
func NewGuard(tokens *auth.TokenService, repo repository.UserRepository) *Guard {
	return &Guard{tokens: tokens, repo: repo}
}

// VerifyToken gates a route group on a valid bearer token. Missing headers,
// bad signatures, expired and malformed tokens all map to the same 401.
func (g *Guard) VerifyToken() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: claimsContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return g.tokens.Verify(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return unauthenticated(c)
		},
	})
}

// LoadUser resolves the verified claims to a live user record. A token whose
// subject no longer exists gets the same 401 as an invalid token; a
// deactivated account is the one authenticated-but-disallowed state and gets
// 403.
func (g *Guard) LoadUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get(claimsContextKey).(*auth.Claims)
		if !ok {
			return unauthenticated(c)
		}
		id, err := claims.UserID()
		if err != nil {
			return unauthenticated(c)
		}

		user, err := g.repo.FindByID(c.Request().Context(), id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return unauthenticated(c)
			}
			c.Logger().Errorf("load user %d: %v", id, err)
			return c.JSON(http.StatusInternalServerError, apperrors.Response{
				Success: false,
				Message: "internal server error",
			})
		}

		if !user.IsActive {
			return c.JSON(http.StatusForbidden, apperrors.Response{
				Success: false,
				Message: apperrors.ErrAccountDeactivated.Error(),
			})
		}

		c.Set(ContextUserKey, user)
		return next(c)
	}
}

// RequireRoles rejects callers whose role is not in the allowed set.
func RequireRoles(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return unauthenticated(c)
			}
			if !user.Role.OneOf(roles...) {
				return c.JSON(http.StatusForbidden, apperrors.Response{
					Success: false,
					Message: apperrors.ErrForbidden.Error(),
				})
			}
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user, or nil outside a guarded route.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(ContextUserKey).(*model.User)
	return user
}

func unauthenticated(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, apperrors.Response{
		Success: false,
		Message: apperrors.ErrUnauthenticated.Error(),
	})
}
