// Package jsonstore persists tasks in a single JSON file guarded by flock.
package jsonstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"syscall"

	"github.com/runoshun/secbot/internal/domain"
)

// fileData is the on-disk layout. Tasks are keyed by decimal ID.
// Fields are ordered to minimize memory padding.
type fileData struct {
	Tasks map[string]*domain.Task `json:"tasks"`
	Meta  meta                    `json:"meta"`
}

type meta struct {
	NextID int `json:"nextID"`
}

// Store implements domain.TaskRepository using a JSON file.
type Store struct {
	path     string
	lockPath string
}

// New creates a new Store for the given file path.
// The file is created by Initialize.
func New(path string) *Store {
	return &Store{
		path:     path,
		lockPath: path + ".lock",
	}
}

// Path returns the store file path.
func (s *Store) Path() string {
	return s.path
}

// Get retrieves a task by ID. Returns nil if not found.
func (s *Store) Get(ctx context.Context, id int) (*domain.Task, error) {
	var task *domain.Task
	err := s.read(ctx, func(data *fileData) {
		if t, ok := data.Tasks[strconv.Itoa(id)]; ok {
			task = t
			task.ID = id
		}
	})
	return task, err
}

// List retrieves all tasks ordered by ID.
func (s *Store) List(ctx context.Context) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := s.read(ctx, func(data *fileData) {
		for key, t := range data.Tasks {
			id, err := strconv.Atoi(key)
			if err != nil {
				continue
			}
			t.ID = id
			tasks = append(tasks, t)
		}
	})

	slices.SortFunc(tasks, func(a, b *domain.Task) int {
		return a.ID - b.ID
	})
	return tasks, err
}

// Save creates or updates a task.
func (s *Store) Save(ctx context.Context, task *domain.Task) error {
	return s.update(ctx, func(data *fileData) {
		data.Tasks[strconv.Itoa(task.ID)] = task
	})
}

// Delete removes a task by ID.
func (s *Store) Delete(ctx context.Context, id int) error {
	return s.update(ctx, func(data *fileData) {
		delete(data.Tasks, strconv.Itoa(id))
	})
}

// NextID reserves and returns the next task ID.
func (s *Store) NextID(ctx context.Context) (int, error) {
	var id int
	err := s.update(ctx, func(data *fileData) {
		if data.Meta.NextID < 1 {
			data.Meta.NextID = 1
		}
		id = data.Meta.NextID
		data.Meta.NextID++
	})
	return id, err
}

// IsInitialized checks if the store file exists.
func (s *Store) IsInitialized(_ context.Context) bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Initialize creates an empty store file if it doesn't exist.
func (s *Store) Initialize(_ context.Context) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if _, err := os.Stat(s.path); err == nil {
		return nil
	}

	return s.write(&fileData{
		Tasks: make(map[string]*domain.Task),
		Meta:  meta{NextID: 1},
	})
}

// read runs fn under a shared lock.
func (s *Store) read(ctx context.Context, fn func(*fileData)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.load()
	if err != nil {
		return err
	}
	fn(data)
	return nil
}

// update runs fn under an exclusive lock and writes the result back.
func (s *Store) update(ctx context.Context, fn func(*fileData)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.load()
	if err != nil {
		return err
	}
	fn(data)
	return s.write(data)
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(s.lockPath), 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

func (s *Store) load() (*fileData, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotInitialized
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var data fileData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}
	if data.Tasks == nil {
		data.Tasks = make(map[string]*domain.Task)
	}
	return &data, nil
}

func (s *Store) write(data *fileData) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store data: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

var (
	_ domain.TaskRepository   = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
)
