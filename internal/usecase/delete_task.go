package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/secbot/internal/domain"
	"github.com/runoshun/secbot/internal/usecase/shared"
)

// DeleteTaskInput contains the parameters for deleting a task.
type DeleteTaskInput struct {
	Title string // Title to match, case-insensitive
}

// DeleteTaskOutput contains the result of deleting a task.
type DeleteTaskOutput struct {
	Task *domain.Task // The removed task
}

// DeleteTask is the use case for deleting a task.
type DeleteTask struct {
	tasks    domain.TaskRepository
	logger   domain.Logger
	activity domain.ActivityRecorder
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(tasks domain.TaskRepository, logger domain.Logger, activity domain.ActivityRecorder) *DeleteTask {
	return &DeleteTask{
		tasks:    tasks,
		logger:   logger,
		activity: activity,
	}
}

// Execute deletes the first task matching the title.
// Returns domain.ErrTaskNotFound if no title matches.
func (uc *DeleteTask) Execute(ctx context.Context, in DeleteTaskInput) (*DeleteTaskOutput, error) {
	task, err := shared.FindTaskByTitle(ctx, uc.tasks, in.Title)
	if err != nil {
		return nil, err
	}

	if err := uc.tasks.Delete(ctx, task.ID); err != nil {
		return nil, fmt.Errorf("delete task: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info("task", fmt.Sprintf("deleted #%d: %q", task.ID, task.Title))
	}
	if uc.activity != nil {
		uc.activity.Record(fmt.Sprintf("Task deleted: '%s'.", in.Title))
	}

	return &DeleteTaskOutput{Task: task}, nil
}
