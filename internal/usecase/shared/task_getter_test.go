package shared

import (
	"context"
	"testing"

	"github.com/runoshun/secbot/internal/domain"
	"github.com/runoshun/secbot/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTask_Success(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Tasks[1] = &domain.Task{ID: 1, Title: "update router"}

	task, err := GetTask(context.Background(), repo, 1)

	require.NoError(t, err)
	assert.Equal(t, "update router", task.Title)
}

func TestGetTask_NotFound(t *testing.T) {
	repo := testutil.NewMockTaskRepository()

	_, err := GetTask(context.Background(), repo, 99)

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestGetTask_RepositoryError(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.GetErr = assert.AnError

	_, err := GetTask(context.Background(), repo, 1)

	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "get task")
}

func TestFindTaskByTitle(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Tasks[2] = &domain.Task{ID: 2, Title: "Scan Laptop"}
	repo.Tasks[1] = &domain.Task{ID: 1, Title: "scan laptop", Completed: true}
	repo.Tasks[3] = &domain.Task{ID: 3, Title: "rotate keys"}

	task, err := FindTaskByTitle(context.Background(), repo, "SCAN LAPTOP")
	require.NoError(t, err)
	assert.Equal(t, 1, task.ID)

	_, err = FindTaskByTitle(context.Background(), repo, "scan")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestFindTaskByTitle_ListError(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.ListErr = assert.AnError

	_, err := FindTaskByTitle(context.Background(), repo, "x")

	assert.ErrorIs(t, err, assert.AnError)
}
