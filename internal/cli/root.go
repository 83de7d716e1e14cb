// Package cli provides the command-line interface for secbot.
package cli

import (
	"errors"
	"fmt"

	"github.com/runoshun/secbot/internal/app"
	"github.com/runoshun/secbot/internal/domain"
	"github.com/spf13/cobra"
)

// Command group IDs.
const (
	groupSetup = "setup"
	groupChat  = "chat"
	groupTask  = "task"
)

// DataDirFlag is the persistent flag selecting the data directory.
// main reads it before the container is built.
const DataDirFlag = "data-dir"

// errNoContainer is returned by commands that need the container when none was built.
var errNoContainer = errors.New("secbot is not configured")

// NewRootCommand creates the root command for secbot.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "secbot",
		Short: "Cybersecurity assistant and reminder-task manager",
		Long: `secbot answers cybersecurity questions and keeps track of your
security to-dos. Tasks can be managed in plain words inside the chat
("Remind me to update my router tomorrow") or with the task commands.

Run without arguments to open the chat console.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil {
				return nil
			}
			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return launchChatFunc(cmd, c)
		},
	}

	root.PersistentFlags().String(DataDirFlag, "", "Data directory (default: $XDG_DATA_HOME/secbot)")

	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupChat, Title: "Chat:"},
		&cobra.Group{ID: groupTask, Title: "Task Management:"},
	)

	// Setup commands
	initCmd := newInitCommand(c)
	initCmd.GroupID = groupSetup

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	logsCmd := newLogsCommand(c)
	logsCmd.GroupID = groupSetup

	// Chat commands
	chatCmd := newChatCommand(c)
	chatCmd.GroupID = groupChat

	askCmd := newAskCommand(c)
	askCmd.GroupID = groupChat

	serveCmd := newServeCommand(c)
	serveCmd.GroupID = groupChat

	// Task management commands
	newCmd := newNewCommand(c)
	newCmd.GroupID = groupTask

	listCmd := newListCommand(c)
	listCmd.GroupID = groupTask

	showCmd := newShowCommand(c)
	showCmd.GroupID = groupTask

	doneCmd := newDoneCommand(c)
	doneCmd.GroupID = groupTask

	rmCmd := newRmCommand(c)
	rmCmd.GroupID = groupTask

	overdueCmd := newOverdueCommand(c)
	overdueCmd.GroupID = groupTask

	root.AddCommand(
		initCmd,
		configCmd,
		logsCmd,
		chatCmd,
		askCmd,
		serveCmd,
		newCmd,
		listCmd,
		showCmd,
		doneCmd,
		rmCmd,
		overdueCmd,
	)

	return root
}

// requireStore fails with domain.ErrNotInitialized when the task store is not ready.
func requireStore(cmd *cobra.Command, c *app.Container) error {
	if c == nil {
		return errNoContainer
	}
	if !c.StoreInitializer.IsInitialized(cmd.Context()) {
		return domain.ErrNotInitialized
	}
	return nil
}
