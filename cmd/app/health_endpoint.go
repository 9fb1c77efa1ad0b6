package main

import (
	"net/http"
	"time"

	"StudentPortalAPI/internal/config"

	"github.com/labstack/echo/v4"
)

const version = "1.0.0"

// healthHandler answers liveness probes and frontend connectivity checks.
func healthHandler(cfg *config.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"status":      "success",
			"message":     "Backend server is running",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"environment": cfg.Environment,
			"version":     version,
		})
	}
}
