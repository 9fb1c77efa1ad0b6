package middleware

import (
	"context"
	"net/http"
	"strings"

	"StudentPortalAPI/internal/model"
	"StudentPortalAPI/internal/token"

	"github.com/labstack/echo/v4"
)

const userContextKey = "current_user"

// UserResolver is the lookup the authentication gate performs on every
// request. The pgx user repository satisfies it.
type UserResolver interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// Authenticate returns an Echo middleware that extracts the bearer token,
// verifies it, and re-resolves the subject from the store before the
// handler runs. The lookup is deliberate: role downgrades and deletions
// take effect immediately instead of waiting out the token's expiry.
//
// All verify failures collapse to the same generic 401 so a caller cannot
// tell a bad signature from an expired token.
func Authenticate(tokens *token.Service, users UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if auth == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"status":  "error",
					"message": "Access denied. No token provided.",
				})
			}
			parts := strings.Fields(auth)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"status":  "error",
					"message": "Access denied. No token provided.",
				})
			}
			claims, err := tokens.Verify(parts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"status":  "error",
					"message": "Invalid token",
				})
			}
			u, err := users.GetByID(c.Request().Context(), claims.UserID)
			if err != nil {
				// subject deleted after issuance, or the store is down;
				// either way the token no longer names a user
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"status":  "error",
					"message": "Invalid token - user not found",
				})
			}
			c.Set(userContextKey, u)
			return next(c)
		}
	}
}

// CurrentUser returns the resolved user attached by Authenticate, or nil.
func CurrentUser(c echo.Context) *model.User {
	u, _ := c.Get(userContextKey).(*model.User)
	return u
}

// RequireAdmin passes only authenticated admins.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		u := CurrentUser(c)
		if u == nil || u.Role != model.RoleAdmin {
			return c.JSON(http.StatusForbidden, echo.Map{
				"status":  "error",
				"message": "Access denied. Admin privileges required.",
			})
		}
		return next(c)
	}
}

// RequireStudent passes only authenticated students.
func RequireStudent(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		u := CurrentUser(c)
		if u == nil || u.Role != model.RoleStudent {
			return c.JSON(http.StatusForbidden, echo.Map{
				"status":  "error",
				"message": "Access denied. Student privileges required.",
			})
		}
		return next(c)
	}
}
