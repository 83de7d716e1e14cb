package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/secbot/internal/domain"
)

// ListOverdueInput contains the parameters for listing overdue tasks.
type ListOverdueInput struct{}

// ListOverdueOutput contains the overdue tasks in ID order.
type ListOverdueOutput struct {
	Tasks []*domain.Task
}

// ListOverdue finds pending tasks whose reminder is due.
// It only reads from the store.
type ListOverdue struct {
	tasks domain.TaskRepository
	clock domain.Clock
}

// NewListOverdue creates a new ListOverdue use case.
func NewListOverdue(tasks domain.TaskRepository, clock domain.Clock) *ListOverdue {
	return &ListOverdue{tasks: tasks, clock: clock}
}

// Execute returns the tasks that are overdue now.
func (uc *ListOverdue) Execute(ctx context.Context, _ ListOverdueInput) (*ListOverdueOutput, error) {
	tasks, err := uc.tasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	now := uc.clock.Now()
	var overdue []*domain.Task
	for _, t := range tasks {
		if t.IsOverdue(now) {
			overdue = append(overdue, t.Clone())
		}
	}
	return &ListOverdueOutput{Tasks: overdue}, nil
}
