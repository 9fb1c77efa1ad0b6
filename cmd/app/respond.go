package main

import (
	"errors"
	"net/http"

	"StudentPortalAPI/internal/config"
	"StudentPortalAPI/internal/repository"
	"StudentPortalAPI/internal/services"

	"github.com/labstack/echo/v4"
)

// serviceError translates a service failure into one JSON response.
// Anything unrecognized is handed back to the central HTTP error handler,
// which renders it as a 500 with environment-gated detail.
func serviceError(c echo.Context, err error) error {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  "error",
			"message": ve.Message,
		})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{
			"status":  "error",
			"message": "User not found",
		})
	case errors.Is(err, services.ErrIncorrectPassword):
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"status":  "error",
			"message": "Incorrect password",
		})
	case errors.Is(err, services.ErrSelfDelete):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  "error",
			"message": "Cannot delete your own account",
		})
	default:
		return err
	}
}

// httpErrorHandler is the uncaught-error boundary: unmatched routes become
// a 404 envelope and everything else a 500. Internal detail is only echoed
// outside production.
func httpErrorHandler(cfg *config.Config) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := http.StatusInternalServerError
		msg := "Internal server error"

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				msg = m
			}
			if code == http.StatusNotFound {
				msg = "Route not found"
			}
		}
		if code == http.StatusInternalServerError && !cfg.IsProduction() {
			msg = err.Error()
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, echo.Map{
			"status":  "error",
			"message": msg,
		})
	}
}
