package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	Embedding EmbeddingConfig `mapstructure:"embedding"`
	Assistant AssistantConfig `mapstructure:"assistant"`
}

// DatabaseConfig stores database connection details.
type DatabaseConfig struct {
	Path string `mapstructure:"path"` // Path to the embedded .db file
}

// EmbeddingConfig stores embedding provider configurations.
type EmbeddingConfig struct {
	Model string `mapstructure:"model"` // Embedding model identifier
	Dims  int    `mapstructure:"dims"`  // Embedding dimensions
}

// AssistantConfig stores the answer cache layer's tunables.
type AssistantConfig struct {
	Model               string        `mapstructure:"model"`                // Completion model identifier
	DailyQuestionLimit  int           `mapstructure:"daily_question_limit"` // Default per-user daily quota
	SimilarityThreshold float64       `mapstructure:"similarity_threshold"` // Minimum cosine similarity for a semantic hit
	MinAnswerLength     int           `mapstructure:"min_answer_length"`    // Answers shorter than this are not cached
	ReplayTokenDelay    time.Duration `mapstructure:"replay_token_delay"`   // Inter-token delay when replaying cached answers
	CacheTTL            time.Duration `mapstructure:"cache_ttl"`            // Advisory expiry on new cache entries
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(configPath string) (*Config, error) {
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/koinonia")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetDefault("database.path", "koinonia.db")

	viper.SetDefault("embedding.model", "text-embedding-3-small")
	viper.SetDefault("embedding.dims", 1536)

	viper.SetDefault("assistant.model", "gpt-4o-mini")
	viper.SetDefault("assistant.daily_question_limit", 50)
	viper.SetDefault("assistant.similarity_threshold", 0.92)
	viper.SetDefault("assistant.min_answer_length", 50)
	viper.SetDefault("assistant.replay_token_delay", 15*time.Millisecond)
	viper.SetDefault("assistant.cache_ttl", 365*24*time.Hour)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Defaults are complete; a missing config file is not an error.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}
