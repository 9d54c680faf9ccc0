package echoapi

import (
	"github.com/labstack/echo/v4"
)

// adminMiddleware only lets admins through; with roles, the admin must also hold one of them.
func adminMiddleware(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			usr := getContextUser(ctx)
			if usr.IsAdmin() && (len(roles) == 0 || usr.HasAnyRole(roles...)) {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

// staffMiddleware only lets admins and teachers through.
func staffMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		usr := getContextUser(ctx)
		if usr.IsStaff() {
			return next(ctx)
		}
		return errHttpForbidden
	}
}
