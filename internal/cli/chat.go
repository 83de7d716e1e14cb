package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/runoshun/secbot/internal/app"
	"github.com/runoshun/secbot/internal/chat"
	"github.com/runoshun/secbot/internal/infra/httpapi"
	"github.com/runoshun/secbot/internal/tui/chatconsole"
	"github.com/spf13/cobra"
)

// launchChatFunc opens the chat console. It is a variable so tests can replace it.
var launchChatFunc = launchChat

// launchChat runs the full-screen console with a reminder poller.
func launchChat(cmd *cobra.Command, c *app.Container) error {
	if err := requireStore(cmd, c); err != nil {
		return err
	}
	conv := c.NewConversation()
	return chatconsole.Run(cmd.Context(), chatconsole.Config{
		Conversation: conv,
		Reminders: func(ctx context.Context, notify func([]string)) error {
			return c.NewReminderPoller(conv, notify).Run(ctx)
		},
	})
}

// newChatCommand creates the chat command.
func newChatCommand(c *app.Container) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the assistant",
		Long: `Open a conversation with the cybersecurity assistant.

Ask security questions, manage tasks in plain words, take the quiz
('Start Quiz') or review what the assistant did ('Show activity log').
Reminders for due tasks appear in the conversation while it is open.

Use --plain for a line-based session on stdin/stdout. Type 'exit' or
press Ctrl+D to leave.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !plain {
				return launchChatFunc(cmd, c)
			}
			if err := requireStore(cmd, c); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runPlainChat(ctx, c, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Line-based chat without the full-screen console")

	return cmd
}

// runPlainChat reads one utterance per line from in and writes replies to out.
// Reminders are printed between turns as they become due.
func runPlainChat(ctx context.Context, c *app.Container, in io.Reader, out io.Writer) error {
	conv := c.NewConversation()

	var mu sync.Mutex
	write := func(prefix string, lines []string) {
		mu.Lock()
		defer mu.Unlock()
		for _, l := range lines {
			_, _ = fmt.Fprintf(out, "%s%s\n", prefix, l)
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = c.NewReminderPoller(conv, func(msgs []string) { write("", msgs) }).Run(ctx)
	}()
	defer func() {
		cancel()
		wg.Wait()
	}()

	write("Bot: ", chat.Greeting())

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			switch strings.ToLower(strings.TrimSpace(line)) {
			case "exit", "quit":
				write("Bot: ", []string{"Goodbye! Stay safe online."})
				return nil
			}
			write("Bot: ", conv.Handle(ctx, line).Messages)
		}
	}
}

// newAskCommand creates the ask command.
func newAskCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <text...>",
		Short: "Ask a single question",
		Long: `Resolve one utterance and print the reply.

Examples:
  secbot ask how do I spot phishing
  secbot ask "remind me to rotate my API keys in 3 days"
  secbot ask show tasks`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireStore(cmd, c); err != nil {
				return err
			}
			turn := c.NewConversation().Handle(cmd.Context(), strings.Join(args, " "))
			for _, m := range turn.Messages {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), m)
			}
			return nil
		},
	}
}

// newServeCommand creates the serve command.
func newServeCommand(c *app.Container) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chat over HTTP",
		Long: `Start the HTTP API.

Endpoints:
  POST   /sessions                  open a conversation
  POST   /sessions/{id}/messages    send {"text": "..."}
  GET    /sessions/{id}/reminders   fetch due reminders
  DELETE /sessions/{id}             close a conversation
  GET    /tasks, POST /tasks, GET /tasks/{id}
  GET    /activity, /healthz, /metrics`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireStore(cmd, c); err != nil {
				return err
			}
			if addr == "" {
				addr = c.AppConfig.Server.Addr
			}

			srv := httpapi.NewServer(httpapi.Deps{
				NewConversation: c.NewConversation,
				NewTask:         c.NewTaskUseCase(),
				ListTasks:       c.ListTasksUseCase(),
				ShowTask:        c.ShowTaskUseCase(),
				Activity:        c.Activity,
				Metrics:         c.Metrics,
				Logger:          c.Logger,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", addr)
			return httpapi.ListenAndServe(ctx, addr, srv.Handler(), c.Logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from [server] addr)")

	return cmd
}
