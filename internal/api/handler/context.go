package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/talentbridge/marketplace/internal/api/middleware"
	"github.com/talentbridge/marketplace/internal/core/domain"
)

// ctxPrincipal returns the caller resolved by the Auth middleware. Its
// absence means the route was mounted without Auth and is reported as 401.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	return middleware.PrincipalFrom(c)
}

// bindAndValidate decodes the request into req and runs the struct validator.
// Both failures surface as invalid input (400).
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return fmt.Errorf("%w: invalid payload", domain.ErrInvalidInput)
	}
	if err := c.Validate(req); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}
	return nil
}
