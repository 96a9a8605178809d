package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/njb1/what2do/internal/logger"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

// NewRedisClient connects to Redis for rate limiting. It returns nil when addr
// is empty or the server does not answer a ping, so callers fall back to the
// in-memory limiter.
func NewRedisClient(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, using in-memory rate limiter", "addr", addr, "error", err)
		client.Close()
		return nil
	}
	logger.Info("redis rate limiter connected", "addr", addr)
	return client
}

// RateLimit returns a per-IP fixed-window limiter: Redis-backed when client is
// set, in-memory otherwise. maxRequests <= 0 disables limiting.
func RateLimit(client *redis.Client, maxRequests int, window time.Duration) gin.HandlerFunc {
	switch {
	case maxRequests <= 0:
		return func(c *gin.Context) { c.Next() }
	case client == nil:
		return SimpleRateLimit(maxRequests, window)
	default:
		return RedisRateLimit(client, maxRequests, window)
	}
}

// RedisRateLimit implements a simple fixed-window rate limiter using Redis INCR/EXPIRE.
// key format: rl:<window_seconds>:<identifier>
func RedisRateLimit(client *redis.Client, maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := c.ClientIP()
		key := "rl:" + strconv.FormatInt(int64(window.Seconds()), 10) + ":" + ident
		ctx := c.Request.Context()

		val, err := client.Incr(ctx, key).Result()
		if err != nil {
			// fail open
			c.Header("X-RateLimit-Error", "redis-error")
			logger.WithContext(ctx).Warn("rate limiter redis error", "error", err)
			c.Next()
			return
		}

		if val == 1 {
			client.Expire(ctx, key, window)
		}

		if val > int64(maxRequests) {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}
