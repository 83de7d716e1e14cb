package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"
	"time"
)

//go:embed config_template.toml
var configTemplateContent string

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string     `toml:"-"`
	Redis    RedisConfig  `toml:"redis"`
	Tasks    TasksConfig  `toml:"tasks"`
	Chat     ChatConfig   `toml:"chat"`
	Server   ServerConfig `toml:"server"`
	Log      LogConfig    `toml:"log"`
	Quiz     QuizConfig   `toml:"quiz"`
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // Log level: debug, info, warn, error
}

// Task store backends.
const (
	StoreMemory = "memory"
	StoreJSON   = "json"
	StoreRedis  = "redis"
)

// TasksConfig holds settings for task storage from [tasks] section.
type TasksConfig struct {
	Store string `toml:"store,omitempty"` // "memory" (default), "json" or "redis"
	Path  string `toml:"path,omitempty"`  // JSON store path (default: <data>/tasks.json)
}

// RedisConfig holds the [redis] connection settings.
type RedisConfig struct {
	Addr     string `toml:"addr,omitempty"`
	Password string `toml:"password,omitempty"`
	Prefix   string `toml:"prefix,omitempty"` // Key prefix (default: "secbot:")
	DB       int    `toml:"db,omitempty"`
}

// ChatConfig holds conversation settings from [chat] section.
// Fields are ordered to minimize memory padding.
type ChatConfig struct {
	Catalog          string        `toml:"catalog,omitempty"`           // Reply catalog YAML (empty = embedded)
	ReminderInterval time.Duration `toml:"reminder_interval,omitempty"` // Overdue scan interval
	ActivityLogSize  int           `toml:"activity_log_size,omitempty"` // Retained activity entries
	Seed             uint64        `toml:"seed,omitempty"`              // Reply selection seed (0 = random)
}

// QuizConfig holds settings from [quiz] section.
type QuizConfig struct {
	RoundSize int `toml:"round_size,omitempty"` // Questions per game
}

// ServerConfig holds settings from [server] section.
type ServerConfig struct {
	Addr string `toml:"addr,omitempty"`
}

// Default configuration values.
const (
	DefaultLogLevel         = "info"
	DefaultStore            = StoreMemory
	DefaultRedisAddr        = "localhost:6379"
	DefaultRedisPrefix      = "secbot:"
	DefaultReminderInterval = 30 * time.Second
	DefaultActivityLogSize  = 10
	DefaultQuizRoundSize    = 5
	DefaultServerAddr       = "127.0.0.1:8383"
)

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Log:   LogConfig{Level: DefaultLogLevel},
		Tasks: TasksConfig{Store: DefaultStore},
		Redis: RedisConfig{
			Addr:   DefaultRedisAddr,
			Prefix: DefaultRedisPrefix,
		},
		Chat: ChatConfig{
			ReminderInterval: DefaultReminderInterval,
			ActivityLogSize:  DefaultActivityLogSize,
		},
		Quiz:   QuizConfig{RoundSize: DefaultQuizRoundSize},
		Server: ServerConfig{Addr: DefaultServerAddr},
	}
}

// templateData holds all data for rendering the config template.
type templateData struct {
	LogLevel         string
	Store            string
	RedisAddr        string
	RedisPrefix      string
	ServerAddr       string
	ReminderInterval string
	ActivityLogSize  int
	RoundSize        int
}

// RenderConfigTemplate renders a commented config file from the given Config.
func RenderConfigTemplate(cfg *Config) string {
	data := templateData{
		LogLevel:         cfg.Log.Level,
		Store:            cfg.Tasks.Store,
		RedisAddr:        cfg.Redis.Addr,
		RedisPrefix:      cfg.Redis.Prefix,
		ServerAddr:       cfg.Server.Addr,
		ReminderInterval: cfg.Chat.ReminderInterval.String(),
		ActivityLogSize:  cfg.Chat.ActivityLogSize,
		RoundSize:        cfg.Quiz.RoundSize,
	}

	tmpl, err := template.New("config").Delims("<<", ">>").Parse(configTemplateContent)
	if err != nil {
		// Should never happen with embedded template
		panic(fmt.Sprintf("failed to parse config template: %v", err))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		panic(fmt.Sprintf("failed to execute config template: %v", err))
	}

	return buf.String()
}
