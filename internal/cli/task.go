package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/runoshun/secbot/internal/app"
	"github.com/runoshun/secbot/internal/domain"
	"github.com/runoshun/secbot/internal/usecase"
	"github.com/spf13/cobra"
)

// newNewCommand creates the new command for creating tasks.
func newNewCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		Remind      string
	}

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new task",
		Long: `Create a new cybersecurity task.

--remind accepts "YYYY-MM-DD", "YYYY-MM-DD HH:MM" or "tomorrow".

Examples:
  secbot new --title "Enable MFA on email"
  secbot new --title "Rotate API keys" --body "staging and prod" --remind 2025-07-01`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireStore(cmd, c); err != nil {
				return err
			}

			input := usecase.NewTaskInput{
				Title:       opts.Title,
				Description: opts.Description,
			}
			if opts.Remind != "" {
				when, err := parseReminder(opts.Remind, c.Clock.Now())
				if err != nil {
					return err
				}
				input.ReminderDate = &when
			}

			out, err := c.NewTaskUseCase().Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task #%d\n", out.Task.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "Task title (required)")
	cmd.Flags().StringVar(&opts.Description, "body", "", "Task description")
	cmd.Flags().StringVar(&opts.Remind, "remind", "", "Reminder date")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

// parseReminder parses a --remind value relative to now.
func parseReminder(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "tomorrow") {
		return now.AddDate(0, 0, 1), nil
	}
	for _, layout := range []string{domain.ReminderLayout, domain.DateLayout} {
		if t, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid reminder %q: want YYYY-MM-DD, YYYY-MM-DD HH:MM or tomorrow", s)
}

// newListCommand creates the list command.
func newListCommand(c *app.Container) *cobra.Command {
	var byDisplay bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `Display all tasks.

Output format is tab-separated with columns:
  ID, STATUS, REMINDER, TITLE, DESCRIPTION

Tasks are listed in creation order. With --display, pending tasks come
first, ordered by reminder date.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireStore(cmd, c); err != nil {
				return err
			}

			order := usecase.OrderCreated
			if byDisplay {
				order = usecase.OrderDisplay
			}
			out, err := c.ListTasksUseCase().Execute(cmd.Context(), usecase.ListTasksInput{Order: order})
			if err != nil {
				return err
			}

			if len(out.Tasks) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No tasks.")
				return nil
			}
			printTaskList(cmd.OutOrStdout(), out.Tasks)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&byDisplay, "display", "d", false, "Pending first, by reminder date")

	return cmd
}

// printTaskList prints tasks as a table.
func printTaskList(w io.Writer, tasks []*domain.Task) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	// Header
	_, _ = fmt.Fprintln(tw, "ID\tSTATUS\tREMINDER\tTITLE\tDESCRIPTION")

	// Rows
	for _, task := range tasks {
		status := "pending"
		if task.Completed {
			status = "completed"
		}

		reminder := "-"
		if task.ReminderDate != nil {
			reminder = task.ReminderDate.Format(domain.ReminderLayout)
		}

		desc := task.Description
		if desc == "" {
			desc = "-"
		}

		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			task.ID,
			status,
			reminder,
			task.Title,
			desc,
		)
	}
}

// newShowCommand creates the show command.
func newShowCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireStore(cmd, c); err != nil {
				return err
			}

			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			out, err := c.ShowTaskUseCase().Execute(cmd.Context(), usecase.ShowTaskInput{TaskID: id})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			t := out.Task
			_, _ = fmt.Fprintf(w, "#%d %s\n", t.ID, t.String())
			_, _ = fmt.Fprintf(w, "Created: %s\n", t.Created.Format(domain.ReminderLayout))
			return nil
		},
	}
}

// parseTaskID parses "1" or "#1".
func parseTaskID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(s, "#"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task ID: %q", s)
	}
	return id, nil
}

// newDoneCommand creates the done command.
func newDoneCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "done <title...>",
		Short: "Mark a task completed",
		Long: `Mark the task with the given title as completed.
The title match is case-insensitive.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireStore(cmd, c); err != nil {
				return err
			}

			out, err := c.CompleteTaskUseCase().Execute(cmd.Context(), usecase.CompleteTaskInput{
				Title: strings.Join(args, " "),
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Completed task #%d: %s\n", out.Task.ID, out.Task.Title)
			return nil
		},
	}
}

// newRmCommand creates the rm command.
func newRmCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <title...>",
		Short: "Delete a task",
		Long: `Delete the task with the given title.
The title match is case-insensitive.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireStore(cmd, c); err != nil {
				return err
			}

			out, err := c.DeleteTaskUseCase().Execute(cmd.Context(), usecase.DeleteTaskInput{
				Title: strings.Join(args, " "),
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted task #%d: %s\n", out.Task.ID, out.Task.Title)
			return nil
		},
	}
}

// newOverdueCommand creates the overdue command.
func newOverdueCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "overdue",
		Short: "List tasks whose reminder is due",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireStore(cmd, c); err != nil {
				return err
			}

			out, err := c.ListOverdueUseCase().Execute(cmd.Context(), usecase.ListOverdueInput{})
			if err != nil {
				return err
			}

			if len(out.Tasks) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No overdue tasks.")
				return nil
			}
			printTaskList(cmd.OutOrStdout(), out.Tasks)
			return nil
		},
	}
}
