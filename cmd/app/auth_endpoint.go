package main

import (
	"fmt"
	"net/http"
	"time"

	"StudentPortalAPI/internal/services"
	"StudentPortalAPI/internal/token"

	"github.com/labstack/echo/v4"
)

// tokens issued at login stay valid for a full day
const loginTokenTTL = 24 * time.Hour

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func registerHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(registerRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"status":  "error",
				"message": "Invalid JSON format",
			})
		}

		u, err := authSvc.Register(c.Request().Context(), req.Name, req.Email, req.Password, req.Role)
		if err != nil {
			return serviceError(c, err)
		}

		return c.JSON(http.StatusCreated, echo.Map{
			"status":  "success",
			"message": "User registered successfully",
			"user":    u.View(),
		})
	}
}

func loginHandler(authSvc *services.AuthService, tokens *token.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(loginRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"status":  "error",
				"message": "Invalid JSON format",
			})
		}

		u, err := authSvc.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return serviceError(c, err)
		}

		accessToken, err := tokens.Issue(u.ID, u.Role, loginTokenTTL)
		if err != nil {
			return fmt.Errorf("could not create token: %w", err)
		}

		return c.JSON(http.StatusOK, echo.Map{
			"status":      "success",
			"message":     "User logged in successfully",
			"accessToken": accessToken,
			"user":        u.View(),
		})
	}
}

func registerAuthRoutes(g *echo.Group, authSvc *services.AuthService, tokens *token.Service) {
	g.POST("/register", registerHandler(authSvc))
	g.POST("/login", loginHandler(authSvc, tokens))
}
