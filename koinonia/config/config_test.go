package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Assistant.DailyQuestionLimit)
	assert.Equal(t, 0.92, cfg.Assistant.SimilarityThreshold)
	assert.Equal(t, 50, cfg.Assistant.MinAnswerLength)
	assert.Equal(t, 15*time.Millisecond, cfg.Assistant.ReplayTokenDelay)
	assert.Equal(t, 365*24*time.Hour, cfg.Assistant.CacheTTL)
	assert.Equal(t, 1536, cfg.Embedding.Dims)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
assistant:
  daily_question_limit: 10
  similarity_threshold: 0.95
database:
  path: /tmp/other.db
`))
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Assistant.DailyQuestionLimit)
	assert.Equal(t, 0.95, cfg.Assistant.SimilarityThreshold)
	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
	// Untouched keys keep their defaults.
	assert.Equal(t, 50, cfg.Assistant.MinAnswerLength)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
