package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/runoshun/secbot/internal/domain"
	"github.com/runoshun/secbot/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteTask_Execute_Success(t *testing.T) {
	// Setup
	repo := testutil.NewMockTaskRepository()
	repo.Tasks[1] = &domain.Task{ID: 1, Title: "Update Antivirus"}
	logger := &testutil.MockLogger{}
	activity := &testutil.MockActivity{}
	uc := NewCompleteTask(repo, logger, activity)

	// Execute
	out, err := uc.Execute(context.Background(), CompleteTaskInput{Title: "update antivirus"})

	// Assert
	require.NoError(t, err)
	assert.True(t, out.Task.Completed)
	assert.True(t, repo.Tasks[1].Completed)
	assert.Equal(t, []string{"Task marked completed: 'update antivirus'."}, activity.Descriptions())
	assert.Len(t, logger.Lines, 1)
}

func TestCompleteTask_Execute_FirstMatchWins(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Tasks[2] = &domain.Task{ID: 2, Title: "backup"}
	repo.Tasks[5] = &domain.Task{ID: 5, Title: "BACKUP"}
	uc := NewCompleteTask(repo, nil, nil)

	out, err := uc.Execute(context.Background(), CompleteTaskInput{Title: "backup"})

	require.NoError(t, err)
	assert.Equal(t, 2, out.Task.ID)
	assert.False(t, repo.Tasks[5].Completed)
}

func TestCompleteTask_Execute_NotFound(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	activity := &testutil.MockActivity{}
	uc := NewCompleteTask(repo, nil, activity)

	_, err := uc.Execute(context.Background(), CompleteTaskInput{Title: "missing"})

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.Empty(t, activity.Descriptions())
}

func TestCompleteTask_Execute_SaveError(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Tasks[1] = &domain.Task{ID: 1, Title: "x"}
	repo.SaveErr = errors.New("disk full")
	uc := NewCompleteTask(repo, nil, nil)

	_, err := uc.Execute(context.Background(), CompleteTaskInput{Title: "x"})

	assert.ErrorIs(t, err, repo.SaveErr)
}
