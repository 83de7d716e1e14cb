// Package config loads and creates secbot configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/secbot/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	projectDir    string // Directory holding .secbot.toml
	globalConfDir string // Path to global config directory (e.g., ~/.config/secbot)
}

// NewLoader creates a new Loader.
func NewLoader(projectDir string) *Loader {
	return &Loader{
		projectDir:    projectDir,
		globalConfDir: DefaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(projectDir, globalConfDir string) *Loader {
	return &Loader{
		projectDir:    projectDir,
		globalConfDir: globalConfDir,
	}
}

// DefaultGlobalConfigDir returns $XDG_CONFIG_HOME/secbot (or ~/.config/secbot).
func DefaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// DefaultDataDir returns $XDG_DATA_HOME/secbot (or ~/.local/share/secbot).
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return domain.DataDir(dataHome)
}

// Load returns the merged configuration.
// Merge order: default <- global <- project (later takes precedence).
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	project, err := l.LoadProject()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if project != nil {
		base = mergeConfigs(base, project)
	}
	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// LoadProject returns only the project configuration.
func (l *Loader) LoadProject() (*domain.Config, error) {
	if l.projectDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(domain.ProjectConfigPath(l.projectDir))
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToDomainConfig(raw), nil
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string
	unknown := func(section, key string) {
		warnings = append(warnings, fmt.Sprintf("unknown key in [%s]: %s", section, key))
	}
	invalid := func(section, key string, v any) {
		warnings = append(warnings, fmt.Sprintf("invalid value in [%s]: %s = %v", section, key, v))
	}

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
			continue
		}

		switch section {
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					if s, ok := v.(string); ok {
						res.Log.Level = s
					}
				default:
					unknown(section, k)
				}
			}
		case "tasks":
			for k, v := range m {
				switch k {
				case "store":
					if s, ok := v.(string); ok {
						res.Tasks.Store = s
					}
				case "path":
					if s, ok := v.(string); ok {
						res.Tasks.Path = s
					}
				default:
					unknown(section, k)
				}
			}
		case "redis":
			for k, v := range m {
				switch k {
				case "addr":
					if s, ok := v.(string); ok {
						res.Redis.Addr = s
					}
				case "password":
					if s, ok := v.(string); ok {
						res.Redis.Password = s
					}
				case "prefix":
					if s, ok := v.(string); ok {
						res.Redis.Prefix = s
					}
				case "db":
					if n, ok := v.(int64); ok {
						res.Redis.DB = int(n)
					}
				default:
					unknown(section, k)
				}
			}
		case "chat":
			for k, v := range m {
				switch k {
				case "catalog":
					if s, ok := v.(string); ok {
						res.Chat.Catalog = s
					}
				case "reminder_interval":
					d, ok := parseDuration(v)
					if !ok {
						invalid(section, k, v)
						continue
					}
					res.Chat.ReminderInterval = d
				case "activity_log_size":
					if n, ok := v.(int64); ok && n > 0 {
						res.Chat.ActivityLogSize = int(n)
					} else {
						invalid(section, k, v)
					}
				case "seed":
					if n, ok := v.(int64); ok && n >= 0 {
						res.Chat.Seed = uint64(n)
					} else {
						invalid(section, k, v)
					}
				default:
					unknown(section, k)
				}
			}
		case "quiz":
			for k, v := range m {
				switch k {
				case "round_size":
					if n, ok := v.(int64); ok && n > 0 {
						res.Quiz.RoundSize = int(n)
					} else {
						invalid(section, k, v)
					}
				default:
					unknown(section, k)
				}
			}
		case "server":
			for k, v := range m {
				switch k {
				case "addr":
					if s, ok := v.(string); ok {
						res.Server.Addr = s
					}
				default:
					unknown(section, k)
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// parseDuration accepts a Go duration string ("45s") or a number of seconds.
func parseDuration(v any) (time.Duration, bool) {
	switch x := v.(type) {
	case string:
		d, err := time.ParseDuration(x)
		if err != nil || d <= 0 {
			return 0, false
		}
		return d, true
	case int64:
		if x <= 0 {
			return 0, false
		}
		return time.Duration(x) * time.Second, true
	default:
		return 0, false
	}
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := *base
	if len(override.Warnings) > 0 {
		result.Warnings = append(append([]string{}, base.Warnings...), override.Warnings...)
	}

	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	if override.Tasks.Store != "" {
		result.Tasks.Store = override.Tasks.Store
	}
	if override.Tasks.Path != "" {
		result.Tasks.Path = override.Tasks.Path
	}
	if override.Redis.Addr != "" {
		result.Redis.Addr = override.Redis.Addr
	}
	if override.Redis.Password != "" {
		result.Redis.Password = override.Redis.Password
	}
	if override.Redis.Prefix != "" {
		result.Redis.Prefix = override.Redis.Prefix
	}
	if override.Redis.DB != 0 {
		result.Redis.DB = override.Redis.DB
	}
	if override.Chat.Catalog != "" {
		result.Chat.Catalog = override.Chat.Catalog
	}
	if override.Chat.ReminderInterval != 0 {
		result.Chat.ReminderInterval = override.Chat.ReminderInterval
	}
	if override.Chat.ActivityLogSize != 0 {
		result.Chat.ActivityLogSize = override.Chat.ActivityLogSize
	}
	if override.Chat.Seed != 0 {
		result.Chat.Seed = override.Chat.Seed
	}
	if override.Quiz.RoundSize != 0 {
		result.Quiz.RoundSize = override.Quiz.RoundSize
	}
	if override.Server.Addr != "" {
		result.Server.Addr = override.Server.Addr
	}

	return &result
}
