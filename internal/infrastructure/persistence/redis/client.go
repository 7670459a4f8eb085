// Package redis 提供可选的 Redis 支撑：会话记忆、限流、就绪探测与审计流连接
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"

	"edu-studio/internal/config"
	"edu-studio/pkg/logger"
)

var tracer = otel.Tracer("redis")

const pingTimeout = 5 * time.Second

// Client Redis 客户端
type Client struct {
	rdb  *redis.Client
	addr string
}

// NewClient 创建 Redis 客户端，连接不可用时立即失败
func NewClient(ctx context.Context, cfg *config.RedisConfig) (*Client, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis %s: %w", addr, err)
	}

	logger.Info(ctx, "redis connected", "addr", addr, "db", cfg.DB)
	return &Client{rdb: rdb, addr: addr}, nil
}

// Redis 底层客户端，供审计流生产者使用
func (c *Client) Redis() *redis.Client {
	return c.rdb
}

// Close 关闭连接池
func (c *Client) Close() error {
	return c.rdb.Close()
}

// HealthCheck 就绪探测
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "redis.HealthCheck")
	defer span.End()

	if err := c.rdb.Ping(ctx).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("redis %s unreachable: %w", c.addr, err)
	}
	return nil
}
