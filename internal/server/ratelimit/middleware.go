package ratelimit

import (
	"math"
	"strconv"
	"time"

	"github.com/dmitrijs2005/vidtube/internal/common"
	"github.com/dmitrijs2005/vidtube/internal/logging"
	"github.com/gofiber/fiber/v2"
)

// Limiter allows at most limit requests per client address and route in
// every window. When the counter is unavailable requests are let through.
type Limiter struct {
	counter Counter
	limit   int64
	window  time.Duration
	log     logging.Logger
}

func NewLimiter(counter Counter, limit int, window time.Duration, log logging.Logger) *Limiter {
	return &Limiter{counter: counter, limit: int64(limit), window: window, log: log.With("module", "ratelimit")}
}

// Handler returns the fiber middleware.
func (l *Limiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Path() + ":" + c.IP()
		count, ttl, err := l.counter.Hit(c.UserContext(), key, l.window)
		if err != nil {
			l.log.Warn(c.UserContext(), "rate limit counter unavailable", "error", err)
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.FormatInt(l.limit, 10))
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(max(l.limit-count, 0), 10))

		if count > l.limit {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(ttl.Seconds()))))
			l.log.Info(c.UserContext(), "rate limit exceeded", "path", c.Path(), "ip", c.IP())
			return common.NewError(common.ErrorRateLimited, "Too many requests, please try again later")
		}
		return c.Next()
	}
}
