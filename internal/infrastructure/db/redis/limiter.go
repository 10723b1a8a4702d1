package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Fixed window counter. The first hit in a window sets the expiry.
const rateLimitScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

const limiterTimeout = 250 * time.Millisecond

// Limiter is a fixed-window rate limiter shared by every API instance.
// It fails open: when Redis is unavailable requests are allowed.
type Limiter struct {
	client *redis.Client
	script *redis.Script
	log    zerolog.Logger
}

func NewLimiter(client *redis.Client, log zerolog.Logger) *Limiter {
	return &Limiter{
		client: client,
		script: redis.NewScript(rateLimitScript),
		log:    log,
	}
}

// Allow reports whether one more hit on key fits into limit per window.
func (l *Limiter) Allow(ctx context.Context, key string, limit int, window time.Duration) bool {
	if l == nil || l.client == nil || key == "" || limit <= 0 || window <= 0 {
		return true
	}
	ttl := window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}

	ctx, cancel := context.WithTimeout(ctx, limiterTimeout)
	defer cancel()

	allowed, err := l.script.Run(ctx, l.client, []string{"ratelimit:" + key}, ttl, limit).Int64()
	if err != nil {
		l.log.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable, allowing request")
		return true
	}
	return allowed == 1
}
