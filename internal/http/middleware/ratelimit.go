package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// LoginRateLimit caps attempts per client IP using a Redis INCR+TTL window.
// A nil client disables the limiter; Redis outages fail open so auth never
// depends on cache availability.
func LoginRateLimit(rdb *redis.Client, limit int, window time.Duration, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || limit <= 0 {
			c.Next()
			return
		}

		key := "ratelimit:login:" + c.ClientIP()
		ctx := c.Request.Context()

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn().Err(err).Msg("rate limiter unavailable, failing open")
			c.Next()
			return
		}
		if count == 1 {
			_ = rdb.Expire(ctx, key, window).Err()
		}
		if count > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{"code": "RATE_LIMITED", "message": "Too many login attempts"},
			})
			return
		}
		c.Next()
	}
}
