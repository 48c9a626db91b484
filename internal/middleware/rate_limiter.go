package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

type RateLimiterConfig struct {
	Rate  rate.Limit
	Burst int
	// Idle limiters are dropped after this long.
	TTL time.Duration
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	cfg      RateLimiterConfig
	visitors *cache.Cache
}

func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	if cfg.TTL <= 0 {
		cfg.TTL = 10 * time.Minute
	}
	return &RateLimiter{cfg: cfg, visitors: cache.New(cfg.TTL, cfg.TTL)}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	if v, ok := rl.visitors.Get(key); ok {
		l := v.(*rate.Limiter)
		rl.visitors.SetDefault(key, l)
		return l
	}

	l := rate.NewLimiter(rl.cfg.Rate, rl.cfg.Burst)
	if err := rl.visitors.Add(key, l, cache.DefaultExpiration); err != nil {
		// lost the race to another request from the same client
		if v, ok := rl.visitors.Get(key); ok {
			return v.(*rate.Limiter)
		}
	}
	return l
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiter(c.ClientIP()).Allow() {
			httperr.Abort(c, http.StatusTooManyRequests, "rate_limited", "rate limit exceeded")
			return
		}
		c.Next()
	}
}
