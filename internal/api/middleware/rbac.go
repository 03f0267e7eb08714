package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hostcraft/platform-api/internal/core/domain"
)

// RequireRole enforces a minimum role level. The hierarchy is total
// (user < staff < manager < admin < super_admin), so staff-gated routes are
// automatically open to everyone above staff.
func RequireRole(min domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if domain.Role(role).Level() < min.Level() {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
