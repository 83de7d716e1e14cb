package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/runoshun/secbot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_GetProjectConfigInfo(t *testing.T) {
	t.Run("returns info when file exists", func(t *testing.T) {
		projectDir := t.TempDir()
		configContent := "[log]\nlevel = \"debug\""
		writeFile(t, domain.ProjectConfigPath(projectDir), configContent)

		info := NewManagerWithGlobalDir(projectDir, "").GetProjectConfigInfo()

		assert.Equal(t, domain.ProjectConfigPath(projectDir), info.Path)
		assert.Equal(t, configContent, info.Content)
		assert.True(t, info.Exists)
	})

	t.Run("returns info when file does not exist", func(t *testing.T) {
		projectDir := t.TempDir()

		info := NewManagerWithGlobalDir(projectDir, "").GetProjectConfigInfo()

		assert.Equal(t, domain.ProjectConfigPath(projectDir), info.Path)
		assert.Empty(t, info.Content)
		assert.False(t, info.Exists)
	})
}

func TestManager_GetGlobalConfigInfo(t *testing.T) {
	t.Run("returns info when file exists", func(t *testing.T) {
		globalDir := t.TempDir()
		writeFile(t, filepath.Join(globalDir, domain.ConfigFileName), "[quiz]\nround_size = 3")

		info := NewManagerWithGlobalDir("", globalDir).GetGlobalConfigInfo()

		assert.True(t, info.Exists)
		assert.Equal(t, "[quiz]\nround_size = 3", info.Content)
	})

	t.Run("empty when global dir is unknown", func(t *testing.T) {
		info := NewManagerWithGlobalDir("", "").GetGlobalConfigInfo()

		assert.Equal(t, domain.ConfigInfo{}, info)
	})
}

func TestManager_InitProjectConfig(t *testing.T) {
	projectDir := t.TempDir()
	manager := NewManagerWithGlobalDir(projectDir, "")

	require.NoError(t, manager.InitProjectConfig(domain.NewDefaultConfig()))

	content, err := os.ReadFile(domain.ProjectConfigPath(projectDir))
	require.NoError(t, err)
	assert.Contains(t, string(content), `store = "memory"`)

	err = manager.InitProjectConfig(domain.NewDefaultConfig())
	assert.ErrorIs(t, err, domain.ErrConfigExists)
}

func TestManager_InitGlobalConfig(t *testing.T) {
	globalDir := filepath.Join(t.TempDir(), "secbot")
	manager := NewManagerWithGlobalDir("", globalDir)

	require.NoError(t, manager.InitGlobalConfig(domain.NewDefaultConfig()))

	assert.FileExists(t, filepath.Join(globalDir, domain.ConfigFileName))
}

func TestManager_InitGlobalConfig_NoDir(t *testing.T) {
	err := NewManagerWithGlobalDir("", "").InitGlobalConfig(domain.NewDefaultConfig())

	assert.Error(t, err)
}
