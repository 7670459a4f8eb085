package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edu-studio/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		LLM: config.LLMConfig{
			DefaultProvider: "groq",
			Providers: map[string]config.ProviderConfig{
				"groq": {
					APIKey:      "gsk-test",
					BaseURL:     "https://api.groq.com/openai/v1",
					Model:       "meta-llama/llama-4-maverick-17b-128e-instruct",
					Temperature: 0.7,
					Timeout:     30 * time.Second,
				},
			},
		},
	}
}

func TestEinoFactory_Resolve(t *testing.T) {
	f := NewEinoFactory(testConfig())

	provider, modelName := f.Resolve("")
	assert.Equal(t, "groq", provider)
	assert.Equal(t, "meta-llama/llama-4-maverick-17b-128e-instruct", modelName)

	provider, modelName = f.Resolve("other")
	assert.Equal(t, "other", provider)
	assert.Empty(t, modelName)
}

func TestEinoFactory_unknownProvider(t *testing.T) {
	_, err := NewEinoFactory(testConfig()).Get(context.Background(), "missing")
	assert.Error(t, err)
}

func TestChatModelConfig(t *testing.T) {
	p := testConfig().LLM.Providers["groq"]
	cfg := chatModelConfig(p)
	assert.Nil(t, cfg.MaxTokens)
	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.7, *cfg.Temperature, 1e-6)
	assert.Equal(t, p.BaseURL, cfg.BaseURL)

	p.MaxTokens = 4096
	cfg = chatModelConfig(p)
	require.NotNil(t, cfg.MaxTokens)
	assert.Equal(t, 4096, *cfg.MaxTokens)
}
