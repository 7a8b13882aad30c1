package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/d60-Lab/buzzboard/internal/config"
	"github.com/d60-Lab/buzzboard/pkg/logger"
	"github.com/d60-Lab/buzzboard/pkg/response"
)

// RateLimit caps requests per client IP. With a redis client the window is a
// shared fixed-window counter; without one it falls back to per-process
// token buckets. Redis failures fail open.
func RateLimit(rdb *redis.Client, cfg config.RateLimit) gin.HandlerFunc {
	if !cfg.Enabled || cfg.Limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if rdb != nil {
		return redisRateLimit(rdb, cfg)
	}
	return localRateLimit(cfg)
}

func redisRateLimit(rdb *redis.Client, cfg config.RateLimit) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := fmt.Sprintf("ratelimit:%s", c.ClientIP())

		n, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn("rate limit redis unavailable", zap.Error(err))
			c.Next()
			return
		}
		if n == 1 {
			rdb.Expire(ctx, key, cfg.Window)
		}
		if n > int64(cfg.Limit) {
			tooManyRequests(c)
			return
		}
		c.Next()
	}
}

func localRateLimit(cfg config.RateLimit) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)
	every := rate.Every(cfg.Window / time.Duration(cfg.Limit))
	return func(c *gin.Context) {
		ip := c.ClientIP()
		mu.Lock()
		lim, ok := limiters[ip]
		if !ok {
			lim = rate.NewLimiter(every, cfg.Limit)
			limiters[ip] = lim
		}
		mu.Unlock()

		if !lim.Allow() {
			tooManyRequests(c)
			return
		}
		c.Next()
	}
}

func tooManyRequests(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, response.Response{
		Code:    http.StatusTooManyRequests,
		Message: "too many requests",
	})
}
