// Package redisstore keeps tasks in Redis: one hash of JSON-encoded tasks
// keyed by ID, plus an INCR counter for IDs.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"

	backend "github.com/redis/go-redis/v9"
	"github.com/runoshun/secbot/internal/domain"
)

// DefaultPrefix is prepended to every key unless WithPrefix overrides it.
const DefaultPrefix = "secbot:"

// Store implements domain.TaskRepository using Redis.
type Store struct {
	client *backend.Client
	prefix string
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) tasksKey() string {
	return s.prefix + "tasks"
}

func (s *Store) idKey() string {
	return s.prefix + "next_id"
}

// Get retrieves a task by ID. Returns nil if not found.
func (s *Store) Get(ctx context.Context, id int) (*domain.Task, error) {
	val, err := s.client.HGet(ctx, s.tasksKey(), strconv.Itoa(id)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get task from redis: %w", err)
	}
	return decode(id, val)
}

// List retrieves all tasks ordered by ID.
func (s *Store) List(ctx context.Context) ([]*domain.Task, error) {
	all, err := s.client.HGetAll(ctx, s.tasksKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("list tasks from redis: %w", err)
	}

	tasks := make([]*domain.Task, 0, len(all))
	for field, val := range all {
		id, err := strconv.Atoi(field)
		if err != nil {
			continue
		}
		task, err := decode(id, val)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	slices.SortFunc(tasks, func(a, b *domain.Task) int {
		return a.ID - b.ID
	})
	return tasks, nil
}

// Save creates or updates a task.
func (s *Store) Save(ctx context.Context, task *domain.Task) error {
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}
	if err := s.client.HSet(ctx, s.tasksKey(), strconv.Itoa(task.ID), data).Err(); err != nil {
		return fmt.Errorf("save task to redis: %w", err)
	}
	return nil
}

// Delete removes a task by ID.
func (s *Store) Delete(ctx context.Context, id int) error {
	if err := s.client.HDel(ctx, s.tasksKey(), strconv.Itoa(id)).Err(); err != nil {
		return fmt.Errorf("delete task from redis: %w", err)
	}
	return nil
}

// NextID reserves and returns the next task ID.
func (s *Store) NextID(ctx context.Context) (int, error) {
	n, err := s.client.Incr(ctx, s.idKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("reserve task id: %w", err)
	}
	return int(n), nil
}

// IsInitialized reports whether the server answers.
func (s *Store) IsInitialized(ctx context.Context) bool {
	return s.client.Ping(ctx).Err() == nil
}

// Initialize checks connectivity and seeds the ID counter if absent.
func (s *Store) Initialize(ctx context.Context) error {
	pipe := s.client.Pipeline()
	pipe.Ping(ctx)
	pipe.SetNX(ctx, s.idKey(), 0, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("initialize redis store: %w", err)
	}
	return nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}

func decode(id int, val string) (*domain.Task, error) {
	var task domain.Task
	if err := json.Unmarshal([]byte(val), &task); err != nil {
		return nil, fmt.Errorf("unmarshal task %d: %w", id, err)
	}
	task.ID = id
	return &task, nil
}

var (
	_ domain.TaskRepository   = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
)
