package domain

import (
	"context"
	"time"
)

// StoreInitializer initializes the data store.
type StoreInitializer interface {
	// Initialize creates the store if it doesn't exist.
	Initialize(ctx context.Context) error

	// IsInitialized reports whether the store is ready for use.
	IsInitialized(ctx context.Context) bool
}

// TaskRepository manages task persistence.
type TaskRepository interface {
	// Get retrieves a task by ID. Returns nil if not found.
	Get(ctx context.Context, id int) (*Task, error)

	// List retrieves all tasks ordered by ID.
	List(ctx context.Context) ([]*Task, error)

	// Save creates or updates a task.
	Save(ctx context.Context, task *Task) error

	// Delete removes a task by ID.
	Delete(ctx context.Context, id int) error

	// NextID returns the next available task ID.
	NextID(ctx context.Context) (int, error)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Logger writes categorized log lines to the secbot log file.
type Logger interface {
	Debug(category, msg string)
	Info(category, msg string)
	Warn(category, msg string)
	Error(category, msg string)
}

// NopLogger discards all log lines.
type NopLogger struct{}

func (NopLogger) Debug(string, string) {}
func (NopLogger) Info(string, string)  {}
func (NopLogger) Warn(string, string)  {}
func (NopLogger) Error(string, string) {}

// ActivityRecorder receives one-line descriptions of user-visible actions.
type ActivityRecorder interface {
	Record(description string)
}

// ActivityFunc adapts a plain function to ActivityRecorder.
type ActivityFunc func(description string)

// Record calls f.
func (f ActivityFunc) Record(description string) {
	f(description)
}

// ActivityLog is an ActivityRecorder that can also report what it holds.
type ActivityLog interface {
	ActivityRecorder

	// Recent returns retained entries, newest first.
	Recent() []ActivityEntry
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (project + global).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)
}

// ConfigInfo describes a config file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// ConfigManager inspects and creates config files.
type ConfigManager interface {
	GetProjectConfigInfo() ConfigInfo
	GetGlobalConfigInfo() ConfigInfo
	InitProjectConfig(cfg *Config) error
	InitGlobalConfig(cfg *Config) error
}
