package usecase

import (
	"context"

	"github.com/runoshun/secbot/internal/domain"
	"github.com/runoshun/secbot/internal/usecase/shared"
)

// ShowTaskInput contains the parameters for showing a task.
type ShowTaskInput struct {
	TaskID int
}

// ShowTaskOutput contains the task.
type ShowTaskOutput struct {
	Task *domain.Task
}

// ShowTask is the use case for looking up a single task by ID.
type ShowTask struct {
	tasks domain.TaskRepository
}

// NewShowTask creates a new ShowTask use case.
func NewShowTask(tasks domain.TaskRepository) *ShowTask {
	return &ShowTask{tasks: tasks}
}

// Execute returns the task or domain.ErrTaskNotFound.
func (uc *ShowTask) Execute(ctx context.Context, in ShowTaskInput) (*ShowTaskOutput, error) {
	task, err := shared.GetTask(ctx, uc.tasks, in.TaskID)
	if err != nil {
		return nil, err
	}
	return &ShowTaskOutput{Task: task.Clone()}, nil
}
