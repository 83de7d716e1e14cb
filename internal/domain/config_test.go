package domain

import (
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, StoreMemory, cfg.Tasks.Store)
	assert.Equal(t, DefaultReminderInterval, cfg.Chat.ReminderInterval)
	assert.Equal(t, 10, cfg.Chat.ActivityLogSize)
	assert.Equal(t, 5, cfg.Quiz.RoundSize)
}

func TestRenderConfigTemplate_IsValidTOML(t *testing.T) {
	content := RenderConfigTemplate(NewDefaultConfig())

	assert.Contains(t, content, `level = "info"`)
	assert.Contains(t, content, `reminder_interval = "30s"`)

	var raw map[string]any
	require.NoError(t, toml.Unmarshal([]byte(content), &raw))
	assert.Contains(t, raw, "chat")
	assert.Contains(t, raw, "server")
}
