package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, DefaultModel, config.Model)
	assert.Equal(t, DefaultTimeout, config.Timeout)
}

func TestWithModel(t *testing.T) {
	config := DefaultConfig()
	custom := config.WithModel("gemini-2.5-flash")

	assert.Equal(t, DefaultModel, config.Model)
	assert.Equal(t, "gemini-2.5-flash", custom.Model)
	assert.Equal(t, DefaultModel, config.WithModel("").Model)
}

func TestWithTimeout(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, 5*time.Second, config.WithTimeout(5*time.Second).Timeout)
	assert.Equal(t, DefaultTimeout, config.WithTimeout(0).Timeout)
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(context.Background(), nil, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestNewClient_UnsupportedProvider(t *testing.T) {
	_, err := NewClient(context.Background(), &Config{Provider: "openai"}, "key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}
