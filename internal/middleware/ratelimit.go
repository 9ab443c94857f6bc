package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
	Prefix   string
}

// Fixed window counter: the first hit in a window sets its expiry.
var fixedWindowScript = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if n == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return {n, redis.call('PTTL', KEYS[1])}
`)

// RateLimit limits requests per client IP and route. With no redis client it is a
// no-op, and a redis failure lets the request through.
func RateLimit(rdb *redis.Client, cfg RateLimitConfig, log *zap.Logger) echo.MiddlewareFunc {
	if rdb == nil || cfg.Requests <= 0 || cfg.Window <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "rl"
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := rateLimitKey(cfg.Prefix, c)

			res, err := fixedWindowScript.Run(ctx, rdb, []string{key}, cfg.Window.Milliseconds()).Int64Slice()
			if err != nil || len(res) != 2 {
				log.Warn("rate limiter unavailable", zap.String("key", key), zap.Error(err))
				return next(c)
			}
			count, ttlMs := res[0], res[1]

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Requests))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(max(0, int64(cfg.Requests)-count), 10))

			if count > int64(cfg.Requests) {
				retry := (time.Duration(max(ttlMs, 0))*time.Millisecond + time.Second - 1) / time.Second
				h.Set("Retry-After", strconv.FormatInt(int64(retry), 10))
				return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests.")
			}
			return next(c)
		}
	}
}

func rateLimitKey(prefix string, c echo.Context) string {
	return fmt.Sprintf("%s:%s:%s:%s", prefix, c.Request().Method, c.Path(), c.RealIP())
}
