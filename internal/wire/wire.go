//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/google/wire"

	"edu-studio/internal/application/studio"
	"edu-studio/internal/config"
	"edu-studio/internal/interfaces/http/handler"
	"edu-studio/internal/interfaces/http/router"
)

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		RedisSet,
		LLMSet,
		StudioSet,
		RouterSet,
	)
	return nil, nil, nil
}

// RedisSet 可选 Redis 依赖：限流、就绪探测、审计流
var RedisSet = wire.NewSet(
	ProvideRedisClient,
	ProvideRateLimiter,
	ProvideHealthChecker,
	ProvideGenerationPublisher,
)

// LLMSet 模型工厂与提示词
var LLMSet = wire.NewSet(
	ProvideChatModelFactory,
	ProvidePromptRegistry,
)

// StudioSet 工作室应用层
var StudioSet = wire.NewSet(
	ProvideConversationMemory,
	ProvideAgents,
	ProvideRunner,
	ProvideTextExtractor,
	studio.NewService,
	wire.Bind(new(handler.StudioService), new(*studio.Service)),
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	handler.NewStudioHandler,
	handler.NewHealthHandler,
	router.New,
)
