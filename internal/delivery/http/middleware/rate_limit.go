package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/BhupenderNayak/krishi-unnati-app/internal/delivery/http/response"
	"github.com/BhupenderNayak/krishi-unnati-app/pkg/logger"
	"github.com/BhupenderNayak/krishi-unnati-app/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig describes one limiter. Counters live in Redis so limits
// hold across instances; without Redis an in-memory window covers
// single-instance deploys. FailClosed limiters reject instead of falling back,
// which is what credential endpoints want.
type RateLimitConfig struct {
	Limit      int
	Window     time.Duration
	KeyPrefix  string
	KeyFunc    func(*gin.Context) string
	FailClosed bool
}

// GlobalRateLimitConfig caps each client IP across all routes.
func GlobalRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:ip:",
		KeyFunc:   clientIPKey,
	}
}

// LoginRateLimitConfig is the strict limiter for credential endpoints.
func LoginRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:login:",
		KeyFunc:    clientIPKey,
		FailClosed: true,
	}
}

func clientIPKey(c *gin.Context) string { return c.ClientIP() }

// RateLimitMiddleware enforces cfg and sets the X-RateLimit-* headers.
func RateLimitMiddleware(cfg RateLimitConfig) gin.HandlerFunc {
	memory := newMemoryWindow()

	return func(c *gin.Context) {
		key := cfg.KeyPrefix + cfg.KeyFunc(c)

		var (
			count   int
			resetAt time.Time
		)

		if rc := redis.Client(); rc != nil {
			var err error
			count, resetAt, err = redisHit(c.Request.Context(), rc, key, cfg.Window)
			if err != nil {
				if cfg.FailClosed {
					logger.Log.Error("rate limiter backend error", "key", key, "error", err)
					response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", nil)
					c.Abort()
					return
				}
				count, resetAt = memory.hit(key, cfg.Window)
			}
		} else {
			count, resetAt = memory.hit(key, cfg.Window)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if count > cfg.Limit {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logger.Log.Warn("rate limit exceeded", "ip", c.ClientIP(), "path", c.FullPath())
			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(cfg.Limit-count))
		c.Next()
	}
}

// INCR + first-hit EXPIRE in one round trip, so the window cannot be lost
// between the two commands.
const hitScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return {count, redis.call('TTL', KEYS[1])}
`

func redisHit(ctx context.Context, rc *goredis.Client, key string, window time.Duration) (int, time.Time, error) {
	result, err := rc.Eval(ctx, hitScript, []string{key}, int(window.Seconds())).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("rate limit eval: %w", err)
	}

	pair, ok := result.([]interface{})
	if !ok || len(pair) != 2 {
		return 0, time.Time{}, fmt.Errorf("rate limit eval: unexpected reply %T", result)
	}
	count, _ := pair[0].(int64)
	ttl, _ := pair[1].(int64)

	return int(count), time.Now().Add(time.Duration(ttl) * time.Second), nil
}

// memoryWindow is a fixed-window counter per key. Stale windows are swept
// whenever the map grows past a soft cap, so there is no background ticker
// to manage.
type memoryWindow struct {
	mu      sync.Mutex
	windows map[string]*windowEntry
}

type windowEntry struct {
	count   int
	resetAt time.Time
}

const sweepThreshold = 10_000

func newMemoryWindow() *memoryWindow {
	return &memoryWindow{windows: make(map[string]*windowEntry)}
}

func (m *memoryWindow) hit(key string, window time.Duration) (int, time.Time) {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.windows) > sweepThreshold {
		for k, e := range m.windows {
			if now.After(e.resetAt) {
				delete(m.windows, k)
			}
		}
	}

	e, ok := m.windows[key]
	if !ok || now.After(e.resetAt) {
		e = &windowEntry{resetAt: now.Add(window)}
		m.windows[key] = e
	}
	e.count++

	return e.count, e.resetAt
}
