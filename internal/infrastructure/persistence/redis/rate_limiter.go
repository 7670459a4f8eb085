package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// RateLimiter 基于有序集合的滑动窗口限流器
type RateLimiter struct {
	client *Client
}

// NewRateLimiter 创建限流器
func NewRateLimiter(client *Client) *RateLimiter {
	return &RateLimiter{client: client}
}

// Allow 在一个 MULTI 中清理过期成员、登记本次请求并计数；
// 超限时撤回本次登记，被拒绝的请求不占用配额
func (l *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	ctx, span := tracer.Start(ctx, "ratelimit.Allow", trace.WithAttributes(
		attribute.String("ratelimit.key", key),
		attribute.Int("ratelimit.limit", limit),
		attribute.Int64("ratelimit.window_ms", window.Milliseconds()),
	))
	defer span.End()

	now := time.Now().UnixMilli()
	// 同一毫秒内的并发请求需要不同的成员
	member := strconv.FormatInt(now, 10) + "-" + uuid.NewString()

	pipe := l.client.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(now-window.Milliseconds(), 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: member})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, window*2)
	if _, err := pipe.Exec(ctx); err != nil {
		span.RecordError(err)
		return false, err
	}

	allowed := count.Val() <= int64(limit)
	span.SetAttributes(
		attribute.Int64("ratelimit.current_count", count.Val()),
		attribute.Bool("ratelimit.allowed", allowed),
	)
	if !allowed {
		if err := l.client.rdb.ZRem(ctx, key, member).Err(); err != nil {
			span.RecordError(err)
		}
	}
	return allowed, nil
}

// BuildRateLimitKey 构建限流键：客户端 IP + 路由模板
func BuildRateLimitKey(clientIP, path string) string {
	return fmt.Sprintf("ratelimit:%s:%s", clientIP, path)
}
