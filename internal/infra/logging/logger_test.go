package logging

import (
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/runoshun/secbot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readLog(t *testing.T, dataDir string) string {
	t.Helper()
	content, err := os.ReadFile(domain.GlobalLogPath(dataDir))
	require.NoError(t, err)
	return string(content)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo}, // default
		{"", slog.LevelInfo},        // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestLogger_LogFormat(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	logger.now = func() time.Time { return time.Date(2025, 12, 30, 9, 32, 51, 0, time.Local) }
	defer func() { _ = logger.Close() }()

	// Execute
	logger.Info("task", `created #1: "update antivirus"`)

	// Assert
	lines := strings.Split(strings.TrimSpace(readLog(t, dataDir)), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, `[2025-12-30 09:32:51] [INFO] [task] created #1: "update antivirus"`, lines[0])
}

func TestLogger_LevelFiltering(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelWarn) // Only warn and above
	defer func() { _ = logger.Close() }()

	logger.Debug("chat", "debug message")
	logger.Info("chat", "info message")
	logger.Warn("chat", "warn message")
	logger.Error("chat", "error message")

	content := readLog(t, dataDir)
	assert.NotContains(t, content, "debug message")
	assert.NotContains(t, content, "info message")
	assert.Contains(t, content, "[WARN] [chat] warn message")
	assert.Contains(t, content, "[ERROR] [chat] error message")
}

func TestLogger_DisabledWhenEmptyDataDir(t *testing.T) {
	logger := New("", slog.LevelDebug)
	defer func() { _ = logger.Close() }()

	// Should not panic or create files
	logger.Info("task", "test message")
	logger.Error("task", "error message")
}

func TestLogger_CreatesLogsDirLazily(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	assert.NoDirExists(t, domain.LogsDir(dataDir))

	logger.Info("system", "started")

	assert.DirExists(t, domain.LogsDir(dataDir))
	assert.Equal(t, domain.GlobalLogPath(dataDir), logger.Path())
}

func TestLogger_CloseAndReopen(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)

	logger.Info("system", "first")
	require.NoError(t, logger.Close())
	require.NoError(t, logger.Close())

	logger.Info("system", "second")
	require.NoError(t, logger.Close())

	content := readLog(t, dataDir)
	assert.Contains(t, content, "first")
	assert.Contains(t, content, "second")
}

func TestLogger_ConcurrentWrites(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Info("activity", "tick")
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(readLog(t, dataDir)), "\n")
	assert.Len(t, lines, 10)
}
