package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainerrors "careconnect.backend/internal/domain/errors"
	"careconnect.backend/internal/interfaces/http/response"
	"careconnect.backend/pkg/logger"
	"careconnect.backend/pkg/redis"
)

var redisIncr = redis.IncrWithExpire

// RateLimitMiddleware allows limit requests per client IP and route within
// window. Requests are let through when the counter store fails.
func RateLimitMiddleware(limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%s", c.FullPath(), c.ClientIP())
		count, err := redisIncr(c.Request.Context(), key, window)
		if err != nil {
			logger.Warn(c.Request.Context(), "Rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		remaining := int64(limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(limit) {
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			response.Error(c, domainerrors.ErrRateLimited)
			return
		}
		c.Next()
	}
}
