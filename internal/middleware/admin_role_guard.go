package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/djordjeivanovic11/ladimood-back/internal/apperr"
)

// AuthJWTの後ろに置く。adminロール以外は403
func AdminRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return apperr.Unauthenticated(msgNotAuthenticated)
			}
			if !user.IsAdmin() {
				return apperr.Forbidden("Not enough permissions")
			}
			return next(c)
		}
	}
}
