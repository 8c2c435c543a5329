package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/docmindhq/docmind-be/types"
)

// Config is read once at startup and immutable afterwards. Missing required
// values fail here, not at first use.
type Config struct {
	Port      string `mapstructure:"port"`
	UploadDir string `mapstructure:"upload_dir"`

	// ServerAPIKey guards the HTTP surface when set.
	ServerAPIKey string `mapstructure:"SERVER_API_KEY"`

	AI       AIConfig            `mapstructure:"ai"`
	Platform PlatformConfig      `mapstructure:"platform"`
	Weaviate WeaviateStoreConfig `mapstructure:"weaviate_store_config"`
	Chunker  ChunkerConfig       `mapstructure:"chunker"`
}

// AIConfig points at an OpenAI-compatible completion/embedding endpoint.
type AIConfig struct {
	Endpoint       string   `mapstructure:"endpoint"`
	APIKey         string   `mapstructure:"OPENAI_API_KEY"`
	Model          string   `mapstructure:"model"`
	EmbeddingModel string   `mapstructure:"embedding_model"`
	GeminiAPIKeys  []string `mapstructure:"gemini_api_keys"`
}

// PlatformConfig points at the hosted document-management service.
type PlatformConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	APIKey   string `mapstructure:"PLATFORM_API_KEY"`
	ClientID string `mapstructure:"client_id"`
}

type WeaviateStoreConfig struct {
	Host         string       `mapstructure:"host"`
	APIKey       string       `mapstructure:"WEAVIATE_APIKEY"`
	Text2Vec     string       `mapstructure:"text2vec"`
	ModuleConfig ModuleConfig `mapstructure:"module_config"`
}

type ModuleConfig map[string]interface{}

type ChunkerConfig struct {
	MaxChunkSize int `mapstructure:"max_chunk_size"`
	OverlapSize  int `mapstructure:"overlap_size"`
}

// LoadConfig reads the yaml config file and overlays environment variables.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.BindEnv("ai.OPENAI_API_KEY", "OPENAI_API_KEY")
	v.BindEnv("platform.PLATFORM_API_KEY", "PLATFORM_API_KEY")
	v.BindEnv("weaviate_store_config.WEAVIATE_APIKEY", "WEAVIATE_APIKEY")
	v.BindEnv("SERVER_API_KEY")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the values required by the configured components. Gemini
// keys make the OpenAI endpoint optional. The platform section is optional as
// a whole; once a base URL is set its credentials become required.
func (c *Config) Validate() error {
	if len(c.AI.GeminiAPIKeys) == 0 {
		if strings.TrimSpace(c.AI.Endpoint) == "" {
			return &types.ConfigurationError{Field: "ai.endpoint", Reason: "must not be empty"}
		}
		if strings.TrimSpace(c.AI.APIKey) == "" {
			return &types.ConfigurationError{Field: "OPENAI_API_KEY", Reason: "must not be empty"}
		}
	}
	if c.Platform.BaseURL != "" {
		if strings.TrimSpace(c.Platform.APIKey) == "" {
			return &types.ConfigurationError{Field: "PLATFORM_API_KEY", Reason: "must not be empty"}
		}
		if strings.TrimSpace(c.Platform.ClientID) == "" {
			return &types.ConfigurationError{Field: "platform.client_id", Reason: "must not be empty"}
		}
	}
	return nil
}
