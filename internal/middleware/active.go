package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/plastiside/plastiside/internal/model"
	"github.com/plastiside/plastiside/internal/repository"
)

// RequireActive loads the authenticated principal and rejects the
// request unless the account exists and is active.  Suspended and
// inactive accounts get 403 before any handler runs.  The role stored
// in the context is replaced with the one from the database, so a stale
// token cannot keep privileges an admin has since taken away.  Must run
// after JWTAuth.
func RequireActive(users *repository.UserRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, ok := c.Get("user_id").(uint64)
			if !ok || uid == 0 {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			u, err := users.GetByID(ctx, uid)
			if err != nil {
				if err == sql.ErrNoRows {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
			}
			if u.Status != model.StatusActive {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "account is not active"})
			}
			c.Set("role", u.Role)
			return next(c)
		}
	}
}
