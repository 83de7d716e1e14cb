// Package memstore keeps tasks in process memory. Tasks are lost on exit.
package memstore

import (
	"context"
	"slices"
	"sync"

	"github.com/runoshun/secbot/internal/domain"
)

// Store implements domain.TaskRepository in memory.
// Stored tasks are copied on the way in and out.
type Store struct {
	tasks  map[int]*domain.Task
	nextID int
	mu     sync.RWMutex
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		tasks:  make(map[int]*domain.Task),
		nextID: 1,
	}
}

// Get retrieves a task by ID. Returns nil if not found.
func (s *Store) Get(_ context.Context, id int) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t, ok := s.tasks[id]; ok {
		return t.Clone(), nil
	}
	return nil, nil
}

// List retrieves all tasks ordered by ID.
func (s *Store) List(_ context.Context) ([]*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tasks := make([]*domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, t.Clone())
	}
	slices.SortFunc(tasks, func(a, b *domain.Task) int {
		return a.ID - b.ID
	})
	return tasks, nil
}

// Save creates or updates a task.
func (s *Store) Save(_ context.Context, task *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.ID] = task.Clone()
	return nil
}

// Delete removes a task by ID.
func (s *Store) Delete(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tasks, id)
	return nil
}

// NextID reserves and returns the next task ID.
func (s *Store) NextID(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	return id, nil
}

// IsInitialized always reports true.
func (s *Store) IsInitialized(context.Context) bool {
	return true
}

// Initialize is a no-op.
func (s *Store) Initialize(context.Context) error {
	return nil
}

var (
	_ domain.TaskRepository   = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
)
