package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/secbot/internal/domain"
	"github.com/runoshun/secbot/internal/usecase/shared"
)

// CompleteTaskInput contains the parameters for completing a task.
type CompleteTaskInput struct {
	Title string // Title to match, case-insensitive
}

// CompleteTaskOutput contains the result of completing a task.
type CompleteTaskOutput struct {
	Task *domain.Task
}

// CompleteTask is the use case for marking a task as completed.
type CompleteTask struct {
	tasks    domain.TaskRepository
	logger   domain.Logger
	activity domain.ActivityRecorder
}

// NewCompleteTask creates a new CompleteTask use case.
func NewCompleteTask(tasks domain.TaskRepository, logger domain.Logger, activity domain.ActivityRecorder) *CompleteTask {
	return &CompleteTask{
		tasks:    tasks,
		logger:   logger,
		activity: activity,
	}
}

// Execute marks the first task matching the title as completed.
// Returns domain.ErrTaskNotFound if no title matches.
func (uc *CompleteTask) Execute(ctx context.Context, in CompleteTaskInput) (*CompleteTaskOutput, error) {
	task, err := shared.FindTaskByTitle(ctx, uc.tasks, in.Title)
	if err != nil {
		return nil, err
	}

	task.Completed = true
	if err := uc.tasks.Save(ctx, task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info("task", fmt.Sprintf("completed #%d: %q", task.ID, task.Title))
	}
	if uc.activity != nil {
		uc.activity.Record(fmt.Sprintf("Task marked completed: '%s'.", in.Title))
	}

	return &CompleteTaskOutput{Task: task}, nil
}
