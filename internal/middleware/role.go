package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jaguar8340/crm-KS/internal/model"
)

// RequireAdmin returns a middleware that rejects any request whose resolved
// user does not hold the admin role. It assumes Authenticate ran earlier in
// the chain; a missing user is treated as forbidden.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u := CurrentUser(c)
			if u == nil || u.Role != model.RoleAdmin {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "admin access required"})
			}
			return next(c)
		}
	}
}
