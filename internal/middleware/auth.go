package middleware // middleware provides shared request processing for handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jaguar8340/crm-KS/internal/model"
	"github.com/jaguar8340/crm-KS/internal/repository"
	"github.com/jaguar8340/crm-KS/internal/utils"
)

// userKey is the context key under which the resolved user is stored.
const userKey = "user"

// UserSource loads a user by id. Satisfied by *repository.UserRepo; tests
// substitute an in-memory fake.
type UserSource interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// Authenticate returns an Echo middleware that validates a Bearer access
// token and resolves its subject against the credential store. The resolved
// *model.User is stored in the request context; handlers read it via
// CurrentUser and never re-derive identity themselves. A token whose
// subject no longer exists is rejected, so deleting a user invalidates
// their outstanding tokens immediately.
func Authenticate(secret string, users UserSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			sub, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				if errors.Is(err, utils.ErrTokenExpired) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token expired"})
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			u, err := users.GetByID(c.Request().Context(), sub)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "user not found"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
			}

			c.Set(userKey, u)
			return next(c)
		}
	}
}

// CurrentUser returns the user resolved by Authenticate, or nil when the
// route was registered without it.
func CurrentUser(c echo.Context) *model.User {
	u, _ := c.Get(userKey).(*model.User)
	return u
}
