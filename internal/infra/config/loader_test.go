package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/runoshun/secbot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoader_Load_Defaults(t *testing.T) {
	loader := NewLoaderWithGlobalDir(t.TempDir(), t.TempDir())

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, domain.NewDefaultConfig(), cfg)
}

func TestLoader_Load_ProjectConfigOnly(t *testing.T) {
	// Setup
	projectDir := t.TempDir()
	writeFile(t, domain.ProjectConfigPath(projectDir), `
[log]
level = "debug"

[tasks]
store = "json"
path = "/tmp/tasks.json"

[redis]
addr = "redis:6380"
db = 2

[chat]
reminder_interval = "45s"
activity_log_size = 20
seed = 7
catalog = "my.yaml"

[quiz]
round_size = 3

[server]
addr = ":9000"
`)

	// Execute
	cfg, err := NewLoaderWithGlobalDir(projectDir, t.TempDir()).Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, domain.StoreJSON, cfg.Tasks.Store)
	assert.Equal(t, "/tmp/tasks.json", cfg.Tasks.Path)
	assert.Equal(t, "redis:6380", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, domain.DefaultRedisPrefix, cfg.Redis.Prefix)
	assert.Equal(t, 45*time.Second, cfg.Chat.ReminderInterval)
	assert.Equal(t, 20, cfg.Chat.ActivityLogSize)
	assert.Equal(t, uint64(7), cfg.Chat.Seed)
	assert.Equal(t, "my.yaml", cfg.Chat.Catalog)
	assert.Equal(t, 3, cfg.Quiz.RoundSize)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Empty(t, cfg.Warnings)
}

func TestLoader_Load_ProjectOverridesGlobal(t *testing.T) {
	projectDir := t.TempDir()
	globalDir := t.TempDir()
	writeFile(t, filepath.Join(globalDir, domain.ConfigFileName), `
[log]
level = "warn"

[chat]
reminder_interval = 60
`)
	writeFile(t, domain.ProjectConfigPath(projectDir), `
[log]
level = "error"
`)

	cfg, err := NewLoaderWithGlobalDir(projectDir, globalDir).Load()

	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, time.Minute, cfg.Chat.ReminderInterval)
}

func TestLoader_Load_Warnings(t *testing.T) {
	projectDir := t.TempDir()
	writeFile(t, domain.ProjectConfigPath(projectDir), `
top = 1

[log]
color = true

[chat]
reminder_interval = "soon"

[agents]
name = "x"
`)

	cfg, err := NewLoaderWithGlobalDir(projectDir, t.TempDir()).Load()

	require.NoError(t, err)
	assert.Equal(t, []string{
		"invalid value in [chat]: reminder_interval = soon",
		"unknown key in [log]: color",
		"unknown section: agents",
		"unknown section: top",
	}, cfg.Warnings)
	assert.Equal(t, domain.DefaultReminderInterval, cfg.Chat.ReminderInterval)
}

func TestLoader_Load_InvalidTOML(t *testing.T) {
	projectDir := t.TempDir()
	writeFile(t, domain.ProjectConfigPath(projectDir), "[log\nlevel=")

	_, err := NewLoaderWithGlobalDir(projectDir, t.TempDir()).Load()

	assert.Error(t, err)
}

func TestLoader_LoadGlobal_NoDir(t *testing.T) {
	_, err := NewLoaderWithGlobalDir(t.TempDir(), "").LoadGlobal()

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoader_Load_RenderedTemplateRoundTrips(t *testing.T) {
	projectDir := t.TempDir()
	want := domain.NewDefaultConfig()
	want.Log.Level = "debug"
	want.Chat.ReminderInterval = 2 * time.Minute
	writeFile(t, domain.ProjectConfigPath(projectDir), domain.RenderConfigTemplate(want))

	cfg, err := NewLoaderWithGlobalDir(projectDir, t.TempDir()).Load()

	require.NoError(t, err)
	assert.Empty(t, cfg.Warnings)
	assert.Equal(t, want, cfg)
}

func TestDefaultDirs(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_DATA_HOME", "/xdg/data")

	assert.Equal(t, "/xdg/config/secbot", DefaultGlobalConfigDir())
	assert.Equal(t, "/xdg/data/secbot", DefaultDataDir())
}
