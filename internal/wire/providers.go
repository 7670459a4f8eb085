package wire

import (
	"context"
	"fmt"

	"edu-studio/internal/application/studio"
	"edu-studio/internal/config"
	"edu-studio/internal/domain/entity"
	"edu-studio/internal/domain/repository"
	"edu-studio/internal/infrastructure/document"
	"edu-studio/internal/infrastructure/llm"
	"edu-studio/internal/infrastructure/memory"
	"edu-studio/internal/infrastructure/messaging"
	"edu-studio/internal/infrastructure/persistence/redis"
	"edu-studio/internal/interfaces/http/handler"
	"edu-studio/internal/interfaces/http/middleware"
	"edu-studio/internal/workflow/port"
	"edu-studio/internal/workflow/prompt"
	"edu-studio/pkg/logger"
)

// 可选依赖未启用时返回 nil 接口值，而不是包着 nil 指针的接口

// ProvideRedisClient 提供 Redis 客户端，未启用时返回 nil
func ProvideRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, func(), error) {
	if !cfg.Cache.Redis.Enabled {
		return nil, func() {}, nil
	}
	client, err := redis.NewClient(ctx, &cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := client.Close(); err != nil {
			logger.Error(context.Background(), "failed to close redis client", err)
		}
	}
	return client, cleanup, nil
}

// ProvideRateLimiter 提供限流器
func ProvideRateLimiter(client *redis.Client) middleware.RateLimiter {
	if client == nil {
		return nil
	}
	return redis.NewRateLimiter(client)
}

// ProvideHealthChecker 提供就绪探测依赖
func ProvideHealthChecker(client *redis.Client) handler.HealthChecker {
	if client == nil {
		return nil
	}
	return client
}

// ProvideGenerationPublisher 提供生成审计发布者
func ProvideGenerationPublisher(client *redis.Client, cfg *config.Config) studio.GenerationPublisher {
	streamCfg := cfg.Messaging.RedisStream
	if client == nil || !streamCfg.Enabled {
		return nil
	}
	return messaging.NewProducer(client.Redis(), messaging.Stream(streamCfg.Stream), int64(streamCfg.MaxLen))
}

// ProvideChatModelFactory 提供 ChatModel 工厂
func ProvideChatModelFactory(cfg *config.Config) port.ChatModelFactory {
	return llm.NewEinoFactory(cfg)
}

// ProvidePromptRegistry 提供提示词注册表
func ProvidePromptRegistry() *prompt.Registry {
	return prompt.NewRegistry()
}

// ProvideConversationMemory 按 memory.backend 提供共享会话记忆
func ProvideConversationMemory(cfg *config.Config, client *redis.Client) (repository.ConversationMemory, error) {
	switch cfg.Memory.Backend {
	case "", "inmemory":
		return memory.NewBuffer(cfg.Memory.MaxTurns), nil
	case "redis":
		if client == nil {
			return nil, fmt.Errorf("memory backend redis requires cache.redis.enabled")
		}
		return redis.NewMemory(client, cfg.Memory.Key, cfg.Memory.TTL, cfg.Memory.MaxTurns), nil
	default:
		return nil, fmt.Errorf("unknown memory backend: %s", cfg.Memory.Backend)
	}
}

// ProvideAgents 创建四个角色，共享记忆只绑定到声明 SharesMemory 的角色
func ProvideAgents(mem repository.ConversationMemory) studio.Agents {
	return studio.NewAgents(entity.DefaultPersonas(), mem)
}

// ProvideRunner 提供基于 Eino Chain 的 Runner
func ProvideRunner(factory port.ChatModelFactory, registry *prompt.Registry, cfg *config.Config) studio.Runner {
	return studio.NewCrew(factory, registry, cfg.LLM.DefaultProvider)
}

// ProvideTextExtractor 提供 PDF 文本提取器
func ProvideTextExtractor(cfg *config.Config) studio.TextExtractor {
	return document.NewExtractor(&cfg.Document)
}
