// Package app provides the dependency injection container for the application.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/runoshun/secbot/internal/chat"
	"github.com/runoshun/secbot/internal/domain"
	"github.com/runoshun/secbot/internal/infra/activity"
	"github.com/runoshun/secbot/internal/infra/config"
	"github.com/runoshun/secbot/internal/infra/jsonstore"
	"github.com/runoshun/secbot/internal/infra/logging"
	"github.com/runoshun/secbot/internal/infra/memstore"
	"github.com/runoshun/secbot/internal/infra/metrics"
	"github.com/runoshun/secbot/internal/infra/redisstore"
	"github.com/runoshun/secbot/internal/intent"
	"github.com/runoshun/secbot/internal/quiz"
	"github.com/runoshun/secbot/internal/reminder"
	"github.com/runoshun/secbot/internal/usecase"
)

// Config holds the application paths.
type Config struct {
	ProjectDir      string // Directory searched for .secbot.toml
	GlobalConfigDir string // Directory holding the global config.toml
	DataDir         string // Directory holding tasks.json and logs/
}

// Option overrides a default path.
type Option func(*Config)

// WithDataDir sets the data directory.
func WithDataDir(dir string) Option {
	return func(c *Config) {
		if dir != "" {
			c.DataDir = dir
		}
	}
}

// WithGlobalConfigDir sets the global config directory.
func WithGlobalConfigDir(dir string) Option {
	return func(c *Config) {
		if dir != "" {
			c.GlobalConfigDir = dir
		}
	}
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Tasks            domain.TaskRepository
	StoreInitializer domain.StoreInitializer
	Clock            domain.Clock
	ConfigLoader     domain.ConfigLoader
	ConfigManager    domain.ConfigManager

	// Pointer fields
	Logger     *slog.Logger
	FileLogger *logging.Logger
	Activity   *activity.Log
	Metrics    *metrics.Metrics
	Catalog    *intent.Catalog
	AppConfig  *domain.Config

	rand    intent.Rand
	closers []io.Closer

	// Configuration
	Config Config
}

// New creates a Container for the project directory dir.
// The task store is chosen by the [tasks] store setting.
func New(dir string, opts ...Option) (*Container, error) {
	cfg := Config{
		ProjectDir:      dir,
		GlobalConfigDir: config.DefaultGlobalConfigDir(),
		DataDir:         config.DefaultDataDir(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	configLoader := config.NewLoaderWithGlobalDir(cfg.ProjectDir, cfg.GlobalConfigDir)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logging.ParseLevel(appConfig.Log.Level),
	}))
	for _, w := range appConfig.Warnings {
		logger.Warn("config", "warning", w)
	}

	tasks, storeInit, closer, err := newTaskStore(appConfig, cfg.DataDir)
	if err != nil {
		return nil, err
	}

	c, err := NewWithDeps(cfg, appConfig, tasks, storeInit, domain.RealClock{}, logger)
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, err
	}
	if closer != nil {
		c.closers = append(c.closers, closer)
	}
	return c, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
// A nil appConfig uses defaults.
func NewWithDeps(cfg Config, appConfig *domain.Config, tasks domain.TaskRepository, storeInit domain.StoreInitializer, clock domain.Clock, logger *slog.Logger) (*Container, error) {
	if appConfig == nil {
		appConfig = domain.NewDefaultConfig()
	}

	catalog := intent.DefaultCatalog()
	if appConfig.Chat.Catalog != "" {
		var err error
		if catalog, err = intent.LoadCatalogFile(appConfig.Chat.Catalog); err != nil {
			return nil, err
		}
	}

	fileLogger := logging.New(cfg.DataDir, logging.ParseLevel(appConfig.Log.Level))

	return &Container{
		Tasks:            tasks,
		StoreInitializer: storeInit,
		Clock:            clock,
		ConfigLoader:     config.NewLoaderWithGlobalDir(cfg.ProjectDir, cfg.GlobalConfigDir),
		ConfigManager:    config.NewManagerWithGlobalDir(cfg.ProjectDir, cfg.GlobalConfigDir),
		Logger:           logger,
		FileLogger:       fileLogger,
		Activity:         activity.New(appConfig.Chat.ActivityLogSize, clock, fileLogger),
		Metrics:          metrics.New(),
		Catalog:          catalog,
		AppConfig:        appConfig,
		rand:             intent.NewRand(appConfig.Chat.Seed),
		closers:          []io.Closer{fileLogger},
		Config:           cfg,
	}, nil
}

// newTaskStore builds the repository selected by cfg.
// The returned closer is nil when the store holds no resources.
func newTaskStore(cfg *domain.Config, dataDir string) (domain.TaskRepository, domain.StoreInitializer, io.Closer, error) {
	switch cfg.Tasks.Store {
	case "", domain.StoreMemory:
		s := memstore.New()
		return s, s, nil, nil
	case domain.StoreJSON:
		path := cfg.Tasks.Path
		if path == "" {
			path = domain.TasksStorePath(dataDir)
		}
		s := jsonstore.New(path)
		return s, s, nil, nil
	case domain.StoreRedis:
		s := redisstore.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, redisstore.WithPrefix(cfg.Redis.Prefix))
		return s, s, s, nil
	default:
		return nil, nil, nil, fmt.Errorf("%w: %q", domain.ErrUnknownStore, cfg.Tasks.Store)
	}
}

// Close releases the log file and store connections.
func (c *Container) Close() error {
	var errs []error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// EnsureStore initializes the task store if needed.
// Memory stores are always ready; the JSON store is created on first use.
func (c *Container) EnsureStore(ctx context.Context) error {
	if c.StoreInitializer.IsInitialized(ctx) {
		return nil
	}
	if err := c.StoreInitializer.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize task store: %w", err)
	}
	return nil
}

// UseCase factory methods

// InitStoreUseCase returns a new InitStore use case.
func (c *Container) InitStoreUseCase() *usecase.InitStore {
	return usecase.NewInitStore(c.StoreInitializer)
}

// NewTaskUseCase returns a new NewTask use case.
func (c *Container) NewTaskUseCase() *usecase.NewTask {
	return usecase.NewNewTask(c.Tasks, c.Clock, c.FileLogger, c.Activity)
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Tasks)
}

// ShowTaskUseCase returns a new ShowTask use case.
func (c *Container) ShowTaskUseCase() *usecase.ShowTask {
	return usecase.NewShowTask(c.Tasks)
}

// CompleteTaskUseCase returns a new CompleteTask use case.
func (c *Container) CompleteTaskUseCase() *usecase.CompleteTask {
	return usecase.NewCompleteTask(c.Tasks, c.FileLogger, c.Activity)
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.Tasks, c.FileLogger, c.Activity)
}

// ListOverdueUseCase returns a new ListOverdue use case.
func (c *Container) ListOverdueUseCase() *usecase.ListOverdue {
	return usecase.NewListOverdue(c.Tasks, c.Clock)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager)
}

// ShowConfigTemplateUseCase returns a new ShowConfigTemplate use case.
func (c *Container) ShowConfigTemplateUseCase() *usecase.ShowConfigTemplate {
	return usecase.NewShowConfigTemplate()
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// ShowLogsUseCase returns a new ShowLogs use case.
func (c *Container) ShowLogsUseCase() *usecase.ShowLogs {
	return usecase.NewShowLogs(c.Config.DataDir)
}

// Conversation factory methods

// TaskBoard returns the task service used by the resolver.
func (c *Container) TaskBoard() *usecase.TaskBoard {
	return usecase.NewTaskBoard(
		c.NewTaskUseCase(),
		c.ListTasksUseCase(),
		c.CompleteTaskUseCase(),
		c.DeleteTaskUseCase(),
		c.ListOverdueUseCase(),
	)
}

// Resolver returns an intent resolver wired to the task store,
// activity log and metrics.
func (c *Container) Resolver() *intent.Resolver {
	return intent.New(c.Catalog, c.TaskBoard(),
		intent.WithActivity(c.Activity),
		intent.WithRand(c.rand),
		intent.WithClock(c.Clock),
		intent.WithLogger(c.Logger),
		intent.WithObserver(c.Metrics.ObserveResult),
	)
}

// NewConversation starts a chat with its own quiz game.
func (c *Container) NewConversation() *chat.Conversation {
	game := quiz.NewGame(quiz.DefaultBank(), c.AppConfig.Quiz.RoundSize, c.rand)
	return chat.New(c.Resolver(), game, c.Activity, c.TaskBoard(), chat.WithLogger(c.Logger))
}

// NewReminderPoller returns a poller that scans conv for due tasks and
// passes the notifications to notify.
func (c *Container) NewReminderPoller(conv *chat.Conversation, notify reminder.NotifyFunc) *reminder.Poller {
	return reminder.New(c.AppConfig.Chat.ReminderInterval, conv.Reminders,
		func(msgs []string) {
			c.Metrics.AddReminders(len(msgs))
			notify(msgs)
		},
		reminder.WithActivity(c.Activity),
	)
}
