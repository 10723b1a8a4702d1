package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/talentbridge/marketplace/internal/core/domain"
	"github.com/talentbridge/marketplace/internal/core/ports"
)

// PrincipalKey is the echo context key holding the resolved domain.Principal.
const PrincipalKey = "principal"

// Auth resolves the Authorization header into a principal and stores it on
// the context. Failures are returned unchanged so the error handler renders
// them as 401.
func Auth(resolver ports.PrincipalResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, err := resolver.Resolve(c.Request().Context(), c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return err
			}
			c.Set(PrincipalKey, p)
			return next(c)
		}
	}
}

// PrincipalFrom returns the principal stored by Auth. Without one the
// request is treated as carrying no credential.
func PrincipalFrom(c echo.Context) (domain.Principal, error) {
	p, ok := c.Get(PrincipalKey).(domain.Principal)
	if !ok || p.ID == "" {
		return domain.Principal{}, domain.ErrMissingCredential
	}
	return p, nil
}
