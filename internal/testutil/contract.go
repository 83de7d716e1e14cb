package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/runoshun/secbot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunTaskRepositoryContract exercises the behavior every domain.TaskRepository
// must share. repo must be initialized and empty.
func RunTaskRepositoryContract(t *testing.T, repo domain.TaskRepository) {
	t.Helper()
	ctx := context.Background()
	created := time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC)

	t.Run("NextID is sequential from 1", func(t *testing.T) {
		first, err := repo.NextID(ctx)
		require.NoError(t, err)
		second, err := repo.NextID(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, first)
		assert.Equal(t, 2, second)
	})

	t.Run("Save and Get", func(t *testing.T) {
		reminder := created.AddDate(0, 0, 1)
		task := &domain.Task{
			ID:           1,
			Title:        "update antivirus",
			Description:  "update antivirus tomorrow",
			ReminderDate: &reminder,
			Created:      created,
		}
		require.NoError(t, repo.Save(ctx, task))

		got, err := repo.Get(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 1, got.ID)
		assert.Equal(t, "update antivirus", got.Title)
		assert.Equal(t, "update antivirus tomorrow", got.Description)
		assert.True(t, got.Created.Equal(created))
		require.NotNil(t, got.ReminderDate)
		assert.True(t, got.ReminderDate.Equal(reminder))
		assert.False(t, got.Completed)
	})

	t.Run("Get missing returns nil", func(t *testing.T) {
		got, err := repo.Get(ctx, 999)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Save updates in place", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, &domain.Task{ID: 1, Title: "update antivirus", Completed: true, Created: created}))

		got, err := repo.Get(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, got.Completed)
		assert.Nil(t, got.ReminderDate)
	})

	t.Run("List is ordered by ID", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, &domain.Task{ID: 12, Title: "twelve", Created: created}))
		require.NoError(t, repo.Save(ctx, &domain.Task{ID: 3, Title: "three", Created: created}))

		tasks, err := repo.List(ctx)
		require.NoError(t, err)
		ids := make([]int, len(tasks))
		for i, task := range tasks {
			ids[i] = task.ID
		}
		assert.Equal(t, []int{1, 3, 12}, ids)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, 3))
		require.NoError(t, repo.Delete(ctx, 404))

		got, err := repo.Get(ctx, 3)
		require.NoError(t, err)
		assert.Nil(t, got)

		tasks, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, tasks, 2)
	})
}
