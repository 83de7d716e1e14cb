// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/runoshun/secbot/internal/domain"
)

// NewTaskInput contains the parameters for creating a new task.
// Fields are ordered to minimize memory padding.
type NewTaskInput struct {
	ReminderDate *time.Time // Optional reminder
	Title        string     // Task title (required)
	Description  string     // Task description (optional)
}

// NewTaskOutput contains the result of creating a new task.
type NewTaskOutput struct {
	Task *domain.Task // The created task
}

// NewTask is the use case for creating a new task.
type NewTask struct {
	tasks    domain.TaskRepository
	clock    domain.Clock
	logger   domain.Logger
	activity domain.ActivityRecorder
}

// NewNewTask creates a new NewTask use case.
func NewNewTask(tasks domain.TaskRepository, clock domain.Clock, logger domain.Logger, activity domain.ActivityRecorder) *NewTask {
	return &NewTask{
		tasks:    tasks,
		clock:    clock,
		logger:   logger,
		activity: activity,
	}
}

// Execute creates a new task with the given input.
func (uc *NewTask) Execute(ctx context.Context, in NewTaskInput) (*NewTaskOutput, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.ErrEmptyTitle
	}

	id, err := uc.tasks.NextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate task ID: %w", err)
	}

	task := &domain.Task{
		ID:           id,
		Title:        title,
		Description:  in.Description,
		ReminderDate: in.ReminderDate,
		Created:      uc.clock.Now(),
	}

	if err := uc.tasks.Save(ctx, task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info("task", fmt.Sprintf("created #%d: %q", id, title))
	}
	if uc.activity != nil {
		reminder := ""
		if task.ReminderDate != nil {
			reminder = " with reminder for " + task.ReminderDate.Format(domain.DateLayout)
		}
		uc.activity.Record(fmt.Sprintf("Task added: '%s'%s.", title, reminder))
	}

	return &NewTaskOutput{Task: task}, nil
}
