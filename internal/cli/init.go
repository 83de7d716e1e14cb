package cli

import (
	"fmt"

	"github.com/runoshun/secbot/internal/app"
	"github.com/runoshun/secbot/internal/usecase"
	"github.com/spf13/cobra"
)

// newInitCommand creates the init command.
func newInitCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the secbot data directory",
		Long: `Initialize secbot.

This command creates the data directory with:
- logs/: directory for the log file
- the task store selected by [tasks] store (tasks.json for "json")

Running it again is harmless.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c == nil {
				return errNoContainer
			}
			out, err := c.InitStoreUseCase().Execute(cmd.Context(), usecase.InitStoreInput{
				DataDir: c.Config.DataDir,
			})
			if err != nil {
				return err
			}

			if out.AlreadyInitialized {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "secbot already initialized in %s\n", out.DataDir)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Initialized secbot in %s\n", out.DataDir)
			return nil
		},
	}
}
