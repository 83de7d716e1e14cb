// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/runoshun/secbot/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockTaskRepository is a test double for domain.TaskRepository.
// Fields are ordered to minimize memory padding.
type MockTaskRepository struct {
	Tasks     map[int]*domain.Task
	SaveErr   error
	GetErr    error
	ListErr   error
	DeleteErr error
	NextIDErr error
	NextIDN   int
}

// NewMockTaskRepository creates a new MockTaskRepository with initialized maps.
func NewMockTaskRepository() *MockTaskRepository {
	return &MockTaskRepository{
		Tasks:   make(map[int]*domain.Task),
		NextIDN: 1,
	}
}

// Get retrieves a task by ID.
func (m *MockTaskRepository) Get(_ context.Context, id int) (*domain.Task, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	task, ok := m.Tasks[id]
	if !ok {
		return nil, nil
	}
	return task, nil
}

// List returns all tasks ordered by ID.
func (m *MockTaskRepository) List(_ context.Context) ([]*domain.Task, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	tasks := make([]*domain.Task, 0, len(m.Tasks))
	for _, t := range m.Tasks {
		tasks = append(tasks, t)
	}
	slices.SortFunc(tasks, func(a, b *domain.Task) int {
		return a.ID - b.ID
	})
	return tasks, nil
}

// Save saves a task.
func (m *MockTaskRepository) Save(_ context.Context, task *domain.Task) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Tasks[task.ID] = task
	return nil
}

// Delete removes a task by ID.
func (m *MockTaskRepository) Delete(_ context.Context, id int) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.Tasks, id)
	return nil
}

// NextID returns the next available task ID.
func (m *MockTaskRepository) NextID(_ context.Context) (int, error) {
	if m.NextIDErr != nil {
		return 0, m.NextIDErr
	}
	id := m.NextIDN
	m.NextIDN++
	return id, nil
}

// MockStoreInitializer is a test double for domain.StoreInitializer.
type MockStoreInitializer struct {
	InitErr     error
	Initialized bool
	Calls       int
}

// Initialize records the call and marks the store initialized.
func (m *MockStoreInitializer) Initialize(_ context.Context) error {
	m.Calls++
	if m.InitErr != nil {
		return m.InitErr
	}
	m.Initialized = true
	return nil
}

// IsInitialized returns the configured value.
func (m *MockStoreInitializer) IsInitialized(_ context.Context) bool {
	return m.Initialized
}

// MockActivity is a test double for domain.ActivityLog.
type MockActivity struct {
	Clock   domain.Clock
	entries []domain.ActivityEntry
	mu      sync.Mutex
}

// Record appends an entry stamped with Clock (or the zero time).
func (m *MockActivity) Record(description string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ts time.Time
	if m.Clock != nil {
		ts = m.Clock.Now()
	}
	m.entries = append(m.entries, domain.ActivityEntry{Timestamp: ts, Description: description})
}

// Recent returns entries newest first.
func (m *MockActivity) Recent() []domain.ActivityEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := slices.Clone(m.entries)
	slices.Reverse(out)
	return out
}

// Descriptions returns recorded descriptions oldest first.
func (m *MockActivity) Descriptions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Description
	}
	return out
}

// MockLogger is a test double for domain.Logger.
type MockLogger struct {
	Lines []string
	mu    sync.Mutex
}

func (m *MockLogger) add(level, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Lines = append(m.Lines, level+" ["+category+"] "+msg)
}

// Debug records a debug line.
func (m *MockLogger) Debug(category, msg string) { m.add("DEBUG", category, msg) }

// Info records an info line.
func (m *MockLogger) Info(category, msg string) { m.add("INFO", category, msg) }

// Warn records a warn line.
func (m *MockLogger) Warn(category, msg string) { m.add("WARN", category, msg) }

// Error records an error line.
func (m *MockLogger) Error(category, msg string) { m.add("ERROR", category, msg) }

// MockConfigManager is a test double for domain.ConfigManager.
type MockConfigManager struct {
	InitProjectErr error
	InitGlobalErr  error
	ProjectInfo    domain.ConfigInfo
	GlobalInfo     domain.ConfigInfo
	InitProjectN   int
	InitGlobalN    int
}

// GetProjectConfigInfo returns the configured project info.
func (m *MockConfigManager) GetProjectConfigInfo() domain.ConfigInfo { return m.ProjectInfo }

// GetGlobalConfigInfo returns the configured global info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo { return m.GlobalInfo }

// InitProjectConfig records the call.
func (m *MockConfigManager) InitProjectConfig(_ *domain.Config) error {
	m.InitProjectN++
	return m.InitProjectErr
}

// InitGlobalConfig records the call.
func (m *MockConfigManager) InitGlobalConfig(_ *domain.Config) error {
	m.InitGlobalN++
	return m.InitGlobalErr
}

// Compile-time interface checks.
var (
	_ domain.TaskRepository   = (*MockTaskRepository)(nil)
	_ domain.StoreInitializer = (*MockStoreInitializer)(nil)
	_ domain.ActivityLog      = (*MockActivity)(nil)
	_ domain.Logger           = (*MockLogger)(nil)
	_ domain.ConfigManager    = (*MockConfigManager)(nil)
)
