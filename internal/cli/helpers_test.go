package cli

import (
	"bytes"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/runoshun/secbot/internal/app"
	"github.com/runoshun/secbot/internal/domain"
	"github.com/runoshun/secbot/internal/infra/memstore"
	"github.com/runoshun/secbot/internal/testutil"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC)

// newTestContainer creates an app.Container backed by an in-memory store.
func newTestContainer(t *testing.T) *app.Container {
	t.Helper()
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memstore.New()
	c, err := app.NewWithDeps(
		app.Config{ProjectDir: dir, GlobalConfigDir: t.TempDir(), DataDir: dir},
		domain.NewDefaultConfig(),
		store,
		store,
		&testutil.MockClock{NowTime: testNow},
		logger,
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// run executes cmd with args and returns its stdout.
func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
