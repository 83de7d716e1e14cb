package usecase

import (
	"context"
	"fmt"
	"os"

	"github.com/runoshun/secbot/internal/domain"
)

// InitStoreInput contains the input parameters for InitStore.
type InitStoreInput struct {
	DataDir string // Directory for logs and file-backed stores
}

// InitStoreOutput contains the output from InitStore.
type InitStoreOutput struct {
	DataDir            string
	AlreadyInitialized bool // True if the store was already usable
}

// InitStore prepares the data directory and the task store.
type InitStore struct {
	storeInit domain.StoreInitializer
}

// NewInitStore creates a new InitStore use case.
func NewInitStore(storeInit domain.StoreInitializer) *InitStore {
	return &InitStore{storeInit: storeInit}
}

// Execute creates the data and logs directories, then initializes the store.
// Running it again is harmless.
func (uc *InitStore) Execute(ctx context.Context, in InitStoreInput) (*InitStoreOutput, error) {
	already := uc.storeInit.IsInitialized(ctx)

	if err := os.MkdirAll(domain.LogsDir(in.DataDir), 0o750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	if !already {
		if err := uc.storeInit.Initialize(ctx); err != nil {
			return nil, fmt.Errorf("initialize task store: %w", err)
		}
	}

	return &InitStoreOutput{
		DataDir:            in.DataDir,
		AlreadyInitialized: already,
	}, nil
}
