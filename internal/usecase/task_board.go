package usecase

import (
	"context"
	"errors"

	"github.com/runoshun/secbot/internal/domain"
)

// TaskBoard exposes the task use cases as the narrow task service
// the conversation layer consumes. Not-found becomes a false result
// rather than an error.
type TaskBoard struct {
	newTask  *NewTask
	list     *ListTasks
	complete *CompleteTask
	remove   *DeleteTask
	overdue  *ListOverdue
}

// NewTaskBoard creates a TaskBoard over the given use cases.
func NewTaskBoard(newTask *NewTask, list *ListTasks, complete *CompleteTask, remove *DeleteTask, overdue *ListOverdue) *TaskBoard {
	return &TaskBoard{
		newTask:  newTask,
		list:     list,
		complete: complete,
		remove:   remove,
		overdue:  overdue,
	}
}

// Create stores a new task built from draft.
func (b *TaskBoard) Create(ctx context.Context, draft domain.TaskDraft) error {
	_, err := b.newTask.Execute(ctx, NewTaskInput{
		Title:        draft.Title,
		Description:  draft.Description,
		ReminderDate: draft.ReminderDate,
	})
	return err
}

// List returns all tasks in display order.
func (b *TaskBoard) List(ctx context.Context) ([]*domain.Task, error) {
	out, err := b.list.Execute(ctx, ListTasksInput{Order: OrderDisplay})
	if err != nil {
		return nil, err
	}
	return out.Tasks, nil
}

// Complete marks the task titled title as completed.
func (b *TaskBoard) Complete(ctx context.Context, title string) (bool, error) {
	_, err := b.complete.Execute(ctx, CompleteTaskInput{Title: title})
	return found(err)
}

// Delete removes the task titled title.
func (b *TaskBoard) Delete(ctx context.Context, title string) (bool, error) {
	_, err := b.remove.Execute(ctx, DeleteTaskInput{Title: title})
	return found(err)
}

// Overdue returns the pending tasks whose reminder is due.
func (b *TaskBoard) Overdue(ctx context.Context) ([]*domain.Task, error) {
	out, err := b.overdue.Execute(ctx, ListOverdueInput{})
	if err != nil {
		return nil, err
	}
	return out.Tasks, nil
}

func found(err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrTaskNotFound):
		return false, nil
	default:
		return false, err
	}
}
