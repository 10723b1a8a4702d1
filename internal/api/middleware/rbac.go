package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/talentbridge/marketplace/internal/core/domain"
	"github.com/talentbridge/marketplace/internal/core/policy"
)

// RBAC rejects requests whose principal does not hold one of the allowed
// roles. It must run after Auth.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, err := PrincipalFrom(c)
			if err != nil {
				return err
			}
			if err := policy.RequireRole(p, allowedRoles); err != nil {
				return err
			}
			return next(c)
		}
	}
}
