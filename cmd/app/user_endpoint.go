package main

import (
	"net/http"
	"strconv"

	"StudentPortalAPI/internal/middleware"
	"StudentPortalAPI/internal/services"
	"StudentPortalAPI/internal/token"

	"github.com/labstack/echo/v4"
)

type updateProfileRequest struct {
	Name string `json:"name"`
}

// admin update payload; absent fields are left untouched
type updateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Role  *string `json:"role,omitempty"`
}

// registerUserRoutes wires the authenticated self-service routes and the
// admin user-management routes.
func registerUserRoutes(g *echo.Group, us *services.UserService, tokens *token.Service, users middleware.UserResolver) {
	// authenticated routes (any role)
	protected := g.Group("")
	protected.Use(middleware.Authenticate(tokens, users))

	protected.GET("/dashboard", func(c echo.Context) error {
		u := middleware.CurrentUser(c)
		data, err := us.DashboardFor(c.Request().Context(), u)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"status":  "success",
			"message": "Dashboard data retrieved successfully",
			"data":    data,
		})
	})

	protected.GET("/profile", func(c echo.Context) error {
		u := middleware.CurrentUser(c)
		return c.JSON(http.StatusOK, echo.Map{
			"status":  "success",
			"message": "Profile data retrieved successfully",
			"user":    u.FullView(),
		})
	})

	protected.PUT("/profile", func(c echo.Context) error {
		u := middleware.CurrentUser(c)
		req := new(updateProfileRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"status":  "error",
				"message": "Invalid JSON format",
			})
		}
		updated, err := us.UpdateName(c.Request().Context(), u.ID, req.Name)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"status":  "success",
			"message": "Profile updated successfully",
			"user":    updated.FullView(),
		})
	})

	// admin management group
	admin := g.Group("/admin")
	admin.Use(middleware.Authenticate(tokens, users))
	admin.Use(middleware.RequireAdmin)

	admin.GET("/users", func(c echo.Context) error {
		page, _ := strconv.Atoi(c.QueryParam("page"))
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		result, err := us.ListUsers(c.Request().Context(), page, limit)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"status":  "success",
			"message": "Users retrieved successfully",
			"data":    result,
		})
	})

	admin.GET("/users/:id", func(c echo.Context) error {
		u, err := us.GetUser(c.Request().Context(), c.Param("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"status":  "success",
			"message": "User retrieved successfully",
			"user":    u.FullView(),
		})
	})

	admin.PUT("/users/:id", func(c echo.Context) error {
		req := new(updateUserRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"status":  "error",
				"message": "Invalid JSON format",
			})
		}
		updated, err := us.UpdateUser(c.Request().Context(), c.Param("id"), req.Name, req.Email, req.Role)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"status":  "success",
			"message": "User updated successfully",
			"user":    updated.FullView(),
		})
	})

	admin.DELETE("/users/:id", func(c echo.Context) error {
		requester := middleware.CurrentUser(c)
		if err := us.DeleteUser(c.Request().Context(), requester.ID, c.Param("id")); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"status":  "success",
			"message": "User deleted successfully",
		})
	})

	admin.GET("/stats", func(c echo.Context) error {
		stats, err := us.Stats(c.Request().Context())
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"status":  "success",
			"message": "Statistics retrieved successfully",
			"stats":   stats,
		})
	})
}
