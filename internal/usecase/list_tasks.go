package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/secbot/internal/domain"
)

// ListOrder selects how ListTasks orders its result.
type ListOrder int

// List orders.
const (
	OrderCreated ListOrder = iota // By ID, i.e. insertion order
	OrderDisplay                  // Pending first, then by reminder date
)

// ListTasksInput contains the parameters for listing tasks.
type ListTasksInput struct {
	Order ListOrder
}

// ListTasksOutput contains the result of listing tasks.
type ListTasksOutput struct {
	Tasks []*domain.Task
}

// ListTasks is the use case for listing tasks.
type ListTasks struct {
	tasks domain.TaskRepository
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(tasks domain.TaskRepository) *ListTasks {
	return &ListTasks{tasks: tasks}
}

// Execute returns a snapshot of all tasks.
func (uc *ListTasks) Execute(ctx context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	tasks, err := uc.tasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	out := make([]*domain.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	if in.Order == OrderDisplay {
		domain.SortForDisplay(out)
	}

	return &ListTasksOutput{Tasks: out}, nil
}
