package wire

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edu-studio/internal/config"
	"edu-studio/internal/domain/entity"
	"edu-studio/internal/infrastructure/memory"
)

func TestProvideConversationMemory(t *testing.T) {
	cfg := &config.Config{}
	mem, err := ProvideConversationMemory(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &memory.Buffer{}, mem)

	cfg.Memory.Backend = "redis"
	_, err = ProvideConversationMemory(cfg, nil)
	assert.Error(t, err)

	cfg.Memory.Backend = "sqlite"
	_, err = ProvideConversationMemory(cfg, nil)
	assert.Error(t, err)
}

func TestOptionalRedisProvidersAreNil(t *testing.T) {
	cfg := &config.Config{}
	client, cleanup, err := ProvideRedisClient(context.Background(), cfg)
	require.NoError(t, err)
	cleanup()

	assert.Nil(t, client)
	assert.Nil(t, ProvideRateLimiter(client))
	assert.Nil(t, ProvideHealthChecker(client))
	assert.Nil(t, ProvideGenerationPublisher(client, cfg))
}

func TestInitializeApp_inMemory(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Title = "AI-Powered Educational Content Studio"
	cfg.Memory.Backend = "inmemory"
	cfg.Memory.TTL = time.Hour
	cfg.LLM.DefaultProvider = "groq"
	cfg.LLM.Providers = map[string]config.ProviderConfig{"groq": {Model: "m"}}

	r, cleanup, err := InitializeApp(context.Background(), cfg)
	require.NoError(t, err)
	defer cleanup()
	require.NotNil(t, r.Engine())
}

func TestProvideAgents(t *testing.T) {
	mem := memory.NewBuffer(0)
	agents := ProvideAgents(mem)
	assert.Same(t, mem, agents[entity.PersonaContentCreator].Memory)
	assert.Nil(t, agents[entity.PersonaResourceGenerator].Memory)
}
