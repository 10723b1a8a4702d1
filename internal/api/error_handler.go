package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/talentbridge/marketplace/internal/api/metrics"
	"github.com/talentbridge/marketplace/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Keeps auth failures generic: the resolution step that failed is logged, never returned.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, 429 from the limiter, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case domain.IsUnauthorized(err):
		kind := domain.ResolutionFailureKind(err)
		metrics.AuthFailuresTotal.WithLabelValues(kind).Inc()
		log.Warn().
			Str("kind", kind).
			Str("path", c.Path()).
			Str("ip", c.RealIP()).
			Msg("principal resolution failed")
		return http.StatusUnauthorized, "unauthorized"

	case domain.IsForbidden(err):
		reason := "role"
		if errors.Is(err, domain.ErrInsufficientOwnership) {
			reason = "ownership"
		}
		metrics.PolicyDenialsTotal.WithLabelValues(reason).Inc()
		log.Info().
			Str("reason", reason).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("access denied")
		return http.StatusForbidden, "forbidden"
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"

	case errors.Is(err, domain.ErrJobNotFound),
		errors.Is(err, domain.ErrApplicationNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrBookingNotFound),
		errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrTestimonialNotFound):
		return http.StatusNotFound, sentinelMessage(err)

	case errors.Is(err, domain.ErrIllegalTransition):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrJobNotOpen),
		errors.Is(err, domain.ErrDuplicateApplication),
		errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrAlreadyLiked),
		errors.Is(err, domain.ErrNotLiked),
		errors.Is(err, domain.ErrHasApplications):
		return http.StatusConflict, sentinelMessage(err)

	case errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrBookingInPast),
		errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

// sentinelMessage strips wrapping context so storage details stay internal.
func sentinelMessage(err error) string {
	for _, target := range []error{
		domain.ErrJobNotFound, domain.ErrApplicationNotFound, domain.ErrUserNotFound,
		domain.ErrBookingNotFound, domain.ErrProfileNotFound, domain.ErrTestimonialNotFound,
		domain.ErrJobNotOpen, domain.ErrDuplicateApplication, domain.ErrUserExists,
		domain.ErrAlreadyLiked, domain.ErrNotLiked, domain.ErrHasApplications,
	} {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return err.Error()
}
