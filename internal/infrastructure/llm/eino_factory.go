// Package llm 提供基于 Eino 的 ChatModel 工厂
package llm

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"edu-studio/internal/config"
	"edu-studio/internal/workflow/port"
)

var _ port.ChatModelFactory = (*EinoFactory)(nil)

// EinoFactory 管理各提供商的 ChatModel 实例
// Groq 等 OpenAI 兼容服务统一走 eino-ext 的 OpenAI 适配器
type EinoFactory struct {
	config *config.LLMConfig
	models map[string]model.BaseChatModel
	mu     sync.RWMutex
}

// NewEinoFactory 创建 Eino LLM 工厂
func NewEinoFactory(cfg *config.Config) *EinoFactory {
	return &EinoFactory{
		config: &cfg.LLM,
		models: make(map[string]model.BaseChatModel),
	}
}

// Resolve 解析提供商名称与模型名
func (f *EinoFactory) Resolve(name string) (string, string) {
	if name == "" {
		name = f.config.DefaultProvider
	}
	return name, f.config.Providers[name].Model
}

// Get 获取指定名称的 ChatModel，首次使用时创建
// API Key 不在此校验，缺失时由第一次调用返回错误
func (f *EinoFactory) Get(ctx context.Context, name string) (model.BaseChatModel, error) {
	name, _ = f.Resolve(name)

	f.mu.RLock()
	m, ok := f.models[name]
	f.mu.RUnlock()
	if ok {
		return m, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if m, ok = f.models[name]; ok {
		return m, nil
	}

	providerCfg, ok := f.config.Providers[name]
	if !ok {
		return nil, fmt.Errorf("provider %s not found in LLM config", name)
	}

	chatModel, err := openai.NewChatModel(ctx, chatModelConfig(providerCfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create eino chat model for %s: %w", name, err)
	}

	f.models[name] = chatModel
	return chatModel, nil
}

func chatModelConfig(p config.ProviderConfig) *openai.ChatModelConfig {
	cfg := &openai.ChatModelConfig{
		APIKey:      p.APIKey,
		BaseURL:     p.BaseURL,
		Model:       p.Model,
		Temperature: ptrFloat32(float32(p.Temperature)),
		Timeout:     p.Timeout,
	}
	if p.MaxTokens > 0 {
		maxTokens := p.MaxTokens
		cfg.MaxTokens = &maxTokens
	}
	return cfg
}

func ptrFloat32(f float32) *float32 {
	return &f
}
