// Package chat is the conversation front door. It routes each line of
// user input to the quiz, the activity log or the intent resolver, and
// produces reminder notifications for due tasks.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/runoshun/secbot/internal/domain"
	"github.com/runoshun/secbot/internal/intent"
	"github.com/runoshun/secbot/internal/quiz"
)

// Fixed replies.
const (
	EmptyInputReply = "Please type something to get a response."
	NoActivityReply = "No recent activity to display yet."
	ActivityHeader  = "Here's a summary of recent actions:"
	NextQuestionCue = "Type 'Next Question' for the next one, or 'End Quiz' to finish."
)

// Commands matched against the whole lower-cased input.
const (
	cmdStartQuiz    = "start quiz"
	cmdNextQuestion = "next question"
	cmdEndQuiz      = "end quiz"
	cmdActivityLog  = "show activity log"
	cmdWhatDone     = "what have you done for me?"
)

// OverdueLister returns pending tasks whose reminder is due.
type OverdueLister interface {
	Overdue(ctx context.Context) ([]*domain.Task, error)
}

// Turn is the assistant's answer to one line of input.
type Turn struct {
	Messages []string    // Bot messages in display order
	Tier     intent.Tier // Resolver tier, or "" for quiz and activity-log turns
}

// TasksChanged reports whether the turn may have modified the task list.
func (t Turn) TasksChanged() bool {
	return t.Tier == intent.TierTaskCreate || t.Tier == intent.TierTaskCommand
}

// Conversation is one user's chat. Handle and Reminders are serialized,
// so a reminder scan never interleaves with a turn.
type Conversation struct {
	session  *intent.Session
	game     *quiz.Game
	pending  *quiz.Question
	activity domain.ActivityLog
	overdue  OverdueLister
	logger   *slog.Logger
	mu       sync.Mutex
}

// Option configures a Conversation.
type Option func(*Conversation)

// WithLogger sets the process logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Conversation) {
		c.logger = logger
	}
}

// New starts a conversation and records that it began.
func New(resolver *intent.Resolver, game *quiz.Game, activity domain.ActivityLog, overdue OverdueLister, opts ...Option) *Conversation {
	c := &Conversation{
		session:  intent.NewSession(resolver),
		game:     game,
		activity: activity,
		overdue:  overdue,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.activity.Record("Chatbot started.")
	return c
}

// Greeting returns the opening messages.
func Greeting() []string {
	return []string{
		"Hello! I'm your Cybersecurity Assistant and Task Manager. Ask me anything about cybersecurity or manage your tasks!",
		"You can add tasks in plain words, like: 'Add a task to review privacy settings' or 'Remind me to update password tomorrow'.",
		"Manage them with 'Show tasks', 'Mark task completed [Title]' and 'Delete task [Title]'.",
		"Feeling like a challenge? Type 'Start Quiz' to test your cybersecurity knowledge!",
		"Want to see what I've been up to? Type 'Show activity log' or 'What have you done for me?'.",
	}
}

// Handle answers one line of input.
func (c *Conversation) Handle(ctx context.Context, input string) Turn {
	c.mu.Lock()
	defer c.mu.Unlock()

	input = strings.TrimSpace(input)
	if input == "" {
		return Turn{Messages: []string{EmptyInputReply}}
	}
	c.activity.Record(fmt.Sprintf("User input: '%s'.", input))
	lower := intent.Normalize(input)

	// A question awaiting an answer takes every input, commands included.
	switch {
	case c.pending != nil:
		return Turn{Messages: c.answer(input)}
	case lower == cmdStartQuiz:
		return Turn{Messages: c.startQuiz()}
	case lower == cmdNextQuestion:
		return Turn{Messages: c.nextQuestion()}
	case lower == cmdEndQuiz:
		return Turn{Messages: c.endQuiz()}
	case lower == cmdActivityLog || lower == cmdWhatDone:
		return Turn{Messages: []string{c.showActivity()}}
	}

	res := c.session.ResolveResult(ctx, input)
	return Turn{Messages: []string{res.Reply}, Tier: res.Tier}
}

// Reminders returns one notification per overdue task. A task keeps
// producing notifications on every scan until it is completed or deleted.
func (c *Conversation) Reminders(ctx context.Context) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	tasks, err := c.overdue.Overdue(ctx)
	if err != nil {
		c.logger.Error("reminder scan", "error", err)
		return nil
	}

	msgs := make([]string, 0, len(tasks))
	for _, t := range tasks {
		msgs = append(msgs, fmt.Sprintf("REMINDER: It's time for your task: '%s'! \"%s\"", t.Title, t.Description))
		c.activity.Record(fmt.Sprintf("Reminder notification for task: '%s'.", t.Title))
	}
	return msgs
}

// Topic returns the resolver's current topic.
func (c *Conversation) Topic() string {
	return c.session.Topic()
}

// QuizActive reports whether a question is awaiting an answer.
func (c *Conversation) QuizActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}

func (c *Conversation) startQuiz() []string {
	c.game.Start()
	c.activity.Record("Quiz started.")
	return append([]string{"Welcome to the Cybersecurity Quiz! Let's test your knowledge."}, c.nextQuestion()...)
}

func (c *Conversation) nextQuestion() []string {
	q, ok := c.game.Next()
	if !ok {
		return c.endQuiz()
	}
	c.pending = &q
	n := c.game.Asked()
	c.activity.Record(fmt.Sprintf("Presented quiz question %d: '%s'.", n, q.Question))
	return []string{q.Prompt(n)}
}

func (c *Conversation) answer(input string) []string {
	q := *c.pending
	c.pending = nil

	var msg string
	if c.game.Check(q, input) {
		msg = "Correct! " + q.Explanation
		c.activity.Record(fmt.Sprintf("Quiz answer correct for '%s'. Score: %d/%d.", q.Question, c.game.Score(), c.game.Asked()))
	} else {
		letter := ""
		if l := q.AnswerLetter(); l != "" {
			letter = " (" + l + ")"
		}
		msg = fmt.Sprintf("Incorrect. The correct answer was: %s%s. %s", q.Answer, letter, q.Explanation)
		c.activity.Record(fmt.Sprintf("Quiz answer incorrect for '%s'. Correct: '%s'. Score: %d/%d.", q.Question, q.Answer, c.game.Score(), c.game.Asked()))
	}

	if c.game.Remaining() > 0 {
		return []string{msg, NextQuestionCue}
	}
	return append([]string{msg}, c.endQuiz()...)
}

func (c *Conversation) endQuiz() []string {
	c.pending = nil
	score, asked := c.game.Score(), c.game.Asked()
	if asked == 0 {
		c.activity.Record("Quiz ended by user, no questions answered.")
	} else {
		c.activity.Record(fmt.Sprintf("Quiz completed. Final score: %d out of %d.", score, asked))
	}
	return []string{fmt.Sprintf("Quiz ended! Your score: %d out of %d questions correct. %s", score, asked, quiz.Feedback(score, asked))}
}

func (c *Conversation) showActivity() string {
	entries := c.activity.Recent()
	reply := NoActivityReply
	if len(entries) > 0 {
		var b strings.Builder
		b.WriteString(ActivityHeader)
		for _, e := range entries {
			b.WriteString("\n- ")
			b.WriteString(e.String())
		}
		reply = b.String()
	}
	c.activity.Record("User requested activity log.")
	return reply
}
