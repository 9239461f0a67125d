package middleware

import (
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skyup-digital/skyup-api/internal/cache"
	"github.com/skyup-digital/skyup-api/internal/config"
	ierr "github.com/skyup-digital/skyup-api/internal/errors"
	"github.com/skyup-digital/skyup-api/internal/logger"
	"golang.org/x/time/rate"
)

// limiterTTL is how long an idle client's limiter is kept
const limiterTTL = 15 * time.Minute

// LoginRateLimiter throttles login attempts per client IP with a token bucket
// per client held in the cache.
type LoginRateLimiter struct {
	cache  cache.Cache
	limit  rate.Limit
	burst  int
	logger *logger.Logger
}

func NewLoginRateLimiter(cfg config.LoginRateLimitConfig, c cache.Cache, logger *logger.Logger) *LoginRateLimiter {
	return &LoginRateLimiter{
		cache:  c,
		limit:  rate.Limit(float64(cfg.RequestsPerMinute) / 60),
		burst:  cfg.Burst,
		logger: logger,
	}
}

// LoginRateLimitMiddleware is a no-op when the limit is disabled
func LoginRateLimitMiddleware(cfg *config.Configuration, c cache.Cache, logger *logger.Logger) gin.HandlerFunc {
	if !cfg.Auth.LoginRateLimit.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	return NewLoginRateLimiter(cfg.Auth.LoginRateLimit, c, logger).Handler()
}

func (l *LoginRateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		limiter := l.limiter(c, ip)

		r := limiter.Reserve()
		if delay := r.Delay(); !r.OK() || delay > 0 {
			r.Cancel()
			retryAfter := int(math.Ceil(delay.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}

			l.logger.Infow("login attempt throttled", "client_ip", ip, "retry_after", retryAfter)
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			abortWithError(c, ierr.NewErrorf("login rate limit exceeded for %s", ip).
				WithHint("Too many login attempts, please try again later").
				WithReportableDetails(map[string]any{
					"retry_after_seconds": retryAfter,
				}).
				Mark(ierr.ErrTooManyRequests))
			return
		}

		c.Next()
	}
}

func (l *LoginRateLimiter) limiter(c *gin.Context, ip string) *rate.Limiter {
	ctx := c.Request.Context()
	key := cache.GenerateKey(cache.PrefixLoginLimiter, ip)

	if v, ok := l.cache.Get(ctx, key); ok {
		if limiter, ok := v.(*rate.Limiter); ok {
			l.cache.Set(ctx, key, limiter, limiterTTL)
			return limiter
		}
	}

	limiter := rate.NewLimiter(l.limit, l.burst)
	if l.cache.Add(ctx, key, limiter, limiterTTL) {
		return limiter
	}

	// another request created it first
	if v, ok := l.cache.Get(ctx, key); ok {
		if existing, ok := v.(*rate.Limiter); ok {
			return existing
		}
	}
	return limiter
}
