package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/runoshun/secbot/internal/domain"
	"github.com/runoshun/secbot/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListOverdue_Execute(t *testing.T) {
	// Setup
	past := testNow.Add(-time.Hour)
	future := testNow.AddDate(0, 0, 1)
	exact := testNow
	repo := testutil.NewMockTaskRepository()
	repo.Tasks[1] = &domain.Task{ID: 1, Title: "past", ReminderDate: &past}
	repo.Tasks[2] = &domain.Task{ID: 2, Title: "future", ReminderDate: &future}
	repo.Tasks[3] = &domain.Task{ID: 3, Title: "done", ReminderDate: &past, Completed: true}
	repo.Tasks[4] = &domain.Task{ID: 4, Title: "none"}
	repo.Tasks[5] = &domain.Task{ID: 5, Title: "now", ReminderDate: &exact}
	uc := NewListOverdue(repo, &testutil.MockClock{NowTime: testNow})

	// Execute
	out, err := uc.Execute(context.Background(), ListOverdueInput{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"past", "now"}, titles(out.Tasks))
}

func TestListOverdue_Execute_Empty(t *testing.T) {
	uc := NewListOverdue(testutil.NewMockTaskRepository(), &testutil.MockClock{NowTime: testNow})

	out, err := uc.Execute(context.Background(), ListOverdueInput{})

	require.NoError(t, err)
	assert.Empty(t, out.Tasks)
}
