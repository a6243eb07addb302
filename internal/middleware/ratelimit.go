package middleware

import (
	"net/http"
	"time"

	"gameshop-api/internal/cache"
	"gameshop-api/internal/dto"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimit applies a fixed-window per-IP limit backed by redis.
// When the cache is unreachable the request is allowed through.
func RateLimit(rc *cache.RedisClient, limit int64, window time.Duration, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := rc.Allow(c.Request.Context(), c.ClientIP(), limit, window)
		if err != nil {
			log.Warn("rate limit check failed", zap.Error(err))
			c.Next()
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewRateLimitedError("too many requests, try again later"))
			return
		}
		c.Next()
	}
}
