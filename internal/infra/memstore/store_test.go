package memstore

import (
	"context"
	"testing"

	"github.com/runoshun/secbot/internal/domain"
	"github.com/runoshun/secbot/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Contract(t *testing.T) {
	testutil.RunTaskRepositoryContract(t, New())
}

func TestStore_CopiesOnSaveAndGet(t *testing.T) {
	ctx := context.Background()
	store := New()
	task := &domain.Task{ID: 1, Title: "original"}
	require.NoError(t, store.Save(ctx, task))

	task.Title = "changed after save"
	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Title)

	got.Title = "changed after get"
	again, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "original", again.Title)
}

func TestStore_AlwaysInitialized(t *testing.T) {
	store := New()
	assert.True(t, store.IsInitialized(context.Background()))
	assert.NoError(t, store.Initialize(context.Background()))
}
