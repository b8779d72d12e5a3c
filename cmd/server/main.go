package main

import (
	"context"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"nicbank/docs"

	"nicbank/internal/auth"
	"nicbank/internal/cache"
	"nicbank/internal/config"
	"nicbank/internal/db"
	"nicbank/internal/handler"
	"nicbank/internal/middleware"
	"nicbank/internal/repository"
	"nicbank/internal/router"
	"nicbank/internal/service"
)

// @title NIC Bank API
// @version 1.0
// @description Bank dashboard backend with JWT authentication, role-gated user management and dashboard metrics.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	// Idempotent: does nothing when unset or when the admin already exists.
	if err := db.EnsureAdmin(context.Background(), gormDB, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("ensure admin: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	dashboardRepo := repository.NewDashboardRepository(gormDB)

	// Auth components
	tokenService := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	guard := middleware.NewGuard(tokenService, userRepo)

	// Services
	authService := service.NewAuthService(userRepo, tokenService)
	userService := service.NewUserService(userRepo)
	dashboardService := service.NewDashboardService(dashboardRepo, cacheClient)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	e := echo.New()
	e.HideBanner = true

	router.Register(e, guard, authHandler, userHandler, dashboardHandler)

	log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
