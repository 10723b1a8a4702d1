package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/talentbridge/marketplace/internal/api/metrics"
)

// Limiter decides whether one more hit on key fits into limit per window.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) bool
}

// maxLocalKeys bounds the in-process limiter map; it is reset when exceeded.
const maxLocalKeys = 10000

// LocalLimiter is a per-process token bucket limiter used when Redis is not
// configured. Each key refills limit tokens per window.
type LocalLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewLocalLimiter() *LocalLimiter {
	return &LocalLimiter{limiters: make(map[string]*rate.Limiter)}
}

func (l *LocalLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) bool {
	if limit <= 0 || window <= 0 {
		return true
	}

	l.mu.Lock()
	lim, ok := l.limiters[key]
	if !ok {
		if len(l.limiters) >= maxLocalKeys {
			l.limiters = make(map[string]*rate.Limiter)
		}
		lim = rate.NewLimiter(rate.Every(window/time.Duration(limit)), limit)
		l.limiters[key] = lim
	}
	l.mu.Unlock()

	return lim.Allow()
}

// RateLimit throttles a route per client IP.
func RateLimit(l Limiter, limit int, window time.Duration, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.Path() + ":" + c.RealIP()
			if !l.Allow(c.Request().Context(), key, limit, window) {
				metrics.RateLimitedTotal.WithLabelValues(c.Path()).Inc()
				log.Warn().Str("ip", c.RealIP()).Str("route", c.Path()).Msg("rate limit exceeded")
				c.Response().Header().Set("Retry-After", retryAfter(window))
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			}
			return next(c)
		}
	}
}

func retryAfter(window time.Duration) string {
	secs := int(window.Round(time.Second) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
