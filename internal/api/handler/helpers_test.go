package handler

import (
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/talentbridge/marketplace/internal/api/middleware"
	"github.com/talentbridge/marketplace/internal/core/domain"
)

var (
	candidate = domain.Principal{ID: "c-1", Email: "cand@example.com", Role: domain.RoleCandidate}
	employer  = domain.Principal{ID: "e-1", Email: "boss@example.com", Role: domain.RoleEmployer}
)

// newTestContext builds an echo context with the validator installed. A
// non-empty body is sent as JSON.
func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withPrincipal(c echo.Context, p domain.Principal) echo.Context {
	c.Set(middleware.PrincipalKey, p)
	return c
}
