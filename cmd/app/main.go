package main

import (
	"context"
	"log"
	"net/http"

	"StudentPortalAPI/internal/config"
	"StudentPortalAPI/internal/db"
	"StudentPortalAPI/internal/repository"
	"StudentPortalAPI/internal/services"
	"StudentPortalAPI/internal/token"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func main() {
	// ======================
	// CONFIG
	// ======================
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// ======================
	// INFRA
	// ======================
	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		log.Fatal(err)
	}

	tokens, err := token.NewService(cfg.JWTSecret, "student-portal-api")
	if err != nil {
		log.Fatal(err)
	}

	// ======================
	// REPOSITORIES
	// ======================
	userRepo := repository.NewUserRepository(pool)

	// ======================
	// SERVICES
	// ======================
	authSvc := services.NewAuthService(userRepo)
	userSvc := services.NewUserService(userRepo)

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, "X-Requested-With"},
		AllowCredentials: true,
	}))
	e.HTTPErrorHandler = httpErrorHandler(cfg)

	// ======================
	// ROUTES
	// ======================
	e.GET("/health", healthHandler(cfg))

	// the API is served both at the root and under /api
	for _, g := range []*echo.Group{e.Group(""), e.Group("/api")} {
		registerAuthRoutes(g, authSvc, tokens)
		registerUserRoutes(g, userSvc, tokens, userRepo)
	}

	// ======================
	// SERVER
	// ======================
	log.Printf("Server is running on port %s (%s)", cfg.Port, cfg.Environment)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
