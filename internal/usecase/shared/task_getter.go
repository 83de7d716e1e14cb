// Package shared provides shared utilities for use cases.
package shared

import (
	"context"
	"fmt"

	"github.com/runoshun/secbot/internal/domain"
)

// GetTask retrieves a task by ID and returns domain.ErrTaskNotFound if not found.
func GetTask(ctx context.Context, repo domain.TaskRepository, taskID int) (*domain.Task, error) {
	task, err := repo.Get(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

// FindTaskByTitle returns the lowest-ID task whose title equals title, ignoring case.
// It returns domain.ErrTaskNotFound if none matches.
func FindTaskByTitle(ctx context.Context, repo domain.TaskRepository, title string) (*domain.Task, error) {
	tasks, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	for _, t := range tasks {
		if t.MatchesTitle(title) {
			return t, nil
		}
	}
	return nil, domain.ErrTaskNotFound
}
