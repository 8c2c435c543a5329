package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docmindhq/docmind-be/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	path := writeConfig(t, `
port: "9090"
upload_dir: "uploads"
ai:
  endpoint: "https://api.openai.com/v1"
  model: "gpt-4o"
  embedding_model: "text-embedding-3-small"
chunker:
  max_chunk_size: 512
  overlap_size: 64
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "https://api.openai.com/v1", cfg.AI.Endpoint)
	assert.Equal(t, "sk-test", cfg.AI.APIKey)
	assert.Equal(t, 512, cfg.Chunker.MaxChunkSize)
	assert.Equal(t, 64, cfg.Chunker.OverlapSize)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateRequiresEndpointAndKey(t *testing.T) {
	var cfgErr *types.ConfigurationError

	cfg := &Config{}
	err := cfg.Validate()
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "ai.endpoint", cfgErr.Field)

	cfg.AI.Endpoint = "https://api.openai.com/v1"
	err = cfg.Validate()
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "OPENAI_API_KEY", cfgErr.Field)

	cfg.AI.APIKey = "sk-test"
	assert.NoError(t, cfg.Validate())
}

func TestValidateGeminiKeysMakeOpenAIOptional(t *testing.T) {
	cfg := &Config{}
	cfg.AI.GeminiAPIKeys = []string{"g-key-1"}
	assert.NoError(t, cfg.Validate())
}

func TestValidatePlatformCredentialsOnlyWhenEnabled(t *testing.T) {
	cfg := &Config{}
	cfg.AI.Endpoint = "https://api.openai.com/v1"
	cfg.AI.APIKey = "sk-test"

	// No platform section, no platform requirements.
	require.NoError(t, cfg.Validate())

	cfg.Platform.BaseURL = "https://platform.example.com"
	var cfgErr *types.ConfigurationError
	err := cfg.Validate()
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "PLATFORM_API_KEY", cfgErr.Field)

	cfg.Platform.APIKey = "pk-test"
	err = cfg.Validate()
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "platform.client_id", cfgErr.Field)

	cfg.Platform.ClientID = "acme"
	assert.NoError(t, cfg.Validate())
}
