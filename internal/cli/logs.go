package cli

import (
	"fmt"
	"strings"

	"github.com/runoshun/secbot/internal/app"
	"github.com/runoshun/secbot/internal/usecase"
	"github.com/spf13/cobra"
)

// newLogsCommand creates the logs command.
func newLogsCommand(c *app.Container) *cobra.Command {
	var lines int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the secbot log file",
		Long: `Print the log file written by secbot.

The log holds the activity entries (task changes, reminders, quiz
events) and internal warnings. Use -n to show only the last lines.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c == nil {
				return errNoContainer
			}
			out, err := c.ShowLogsUseCase().Execute(cmd.Context(), usecase.ShowLogsInput{Lines: lines})
			if err != nil {
				return err
			}

			content := out.Content
			if content != "" && !strings.HasSuffix(content, "\n") {
				content += "\n"
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 0, "Number of lines from the end (0 = all)")

	return cmd
}
