package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"nicbank/internal/handler"
	"nicbank/internal/middleware"
	"nicbank/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	guard *middleware.Guard,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	dashboardHandler *handler.DashboardHandler,
) {
	e.Use(echomw.RequestID())
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Secured routes: token check, then user resolution on every request so
	// deactivations and role changes apply immediately.
	secured := api.Group("", guard.VerifyToken(), guard.LoadUser)

	secured.GET("/auth/me", authHandler.Me)
	secured.PUT("/auth/profile", authHandler.UpdateProfile)
	secured.POST("/auth/change-password", authHandler.ChangePassword)

	// User management
	adminOnly := middleware.RequireRoles(model.RoleAdmin)
	adminOrManager := middleware.RequireRoles(model.RoleAdmin, model.RoleManager)

	secured.GET("/users/stats", userHandler.Stats, adminOrManager)
	secured.GET("/users", userHandler.List, adminOrManager)
	secured.GET("/users/:id", userHandler.Get, adminOrManager)
	secured.POST("/users", userHandler.Create, adminOnly)
	secured.PUT("/users/:id", userHandler.Update) // self-or-admin enforced in the service
	secured.DELETE("/users/:id", userHandler.Delete, adminOnly)

	// Dashboard read API
	secured.GET("/dashboard/metrics", dashboardHandler.Metrics)
	secured.GET("/dashboard/sales", dashboardHandler.Sales)
	secured.GET("/dashboard/traffic", dashboardHandler.Traffic)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
