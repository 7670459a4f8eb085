package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"edu-studio/internal/config"
	"edu-studio/internal/interfaces/http/dto"
	"edu-studio/pkg/logger"
)

// RateLimiter 限流器接口
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit 按客户端 IP 与路由限流，limiter 为 nil 或未启用时放行
func RateLimit(cfg config.RateLimitConfig, limiter RateLimiter, keyFn func(clientIP, path string) string) gin.HandlerFunc {
	if !cfg.Enabled || limiter == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	limit := cfg.RequestsPerMinute
	if limit <= 0 {
		limit = 30
	}

	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		allowed, err := limiter.Allow(c.Request.Context(), keyFn(c.ClientIP(), path), limit, time.Minute)
		if err != nil {
			// 限流器故障时放行
			logger.Warn(c.Request.Context(), "rate limiter unavailable", "error", err.Error())
			c.Next()
			return
		}
		if !allowed {
			dto.TooManyRequests(c, "rate limit exceeded")
			c.Abort()
			return
		}

		c.Next()
	}
}
