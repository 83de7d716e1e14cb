package intent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/runoshun/secbot/internal/domain"
)

// Tier names the pipeline stage that produced a reply.
type Tier string

// Pipeline tiers in evaluation order, plus the blank-input short circuit.
const (
	TierEmpty       Tier = "empty"
	TierTaskCreate  Tier = "task_create"
	TierTaskCommand Tier = "task_command"
	TierSentiment   Tier = "sentiment"
	TierTopic       Tier = "topic"
	TierKeyword     Tier = "keyword"
	TierExact       Tier = "exact"
	TierFallback    Tier = "fallback"
)

// Fixed replies.
const (
	FallbackReply    = "I didn't quite understand that. Could you rephrase?"
	TaskStoreFailure = "Sorry, I couldn't reach your task list right now. Please try again."
	NoTasksReply     = "You currently have no cybersecurity tasks."
	TaskListHeader   = "Here are your cybersecurity tasks:"
)

// TaskService is the task store as seen by the resolver.
type TaskService interface {
	// Create stores a new task built from draft.
	Create(ctx context.Context, draft domain.TaskDraft) error

	// List returns a snapshot of all tasks in display order.
	List(ctx context.Context) ([]*domain.Task, error)

	// Complete marks the task titled title (case-insensitive) as completed.
	// It reports whether such a task existed.
	Complete(ctx context.Context, title string) (bool, error)

	// Delete removes the task titled title (case-insensitive).
	// It reports whether such a task existed.
	Delete(ctx context.Context, title string) (bool, error)
}

// State is the conversational state threaded through Resolve.
type State struct {
	Topic string // Last matched topic, keyword or exact trigger ("" = none)
}

// Result is the outcome of one resolution.
type Result struct {
	State   State  // State to pass to the next Resolve call
	Reply   string // Text to show the user
	Tier    Tier   // Stage that produced Reply
	Trigger string // Matched trigger, if any
}

// Resolver runs the intent pipeline. It holds no per-conversation state
// and may be shared by many conversations.
type Resolver struct {
	catalog   *Catalog
	tasks     TaskService
	activity  domain.ActivityRecorder
	rand      Rand
	clock     domain.Clock
	logger    *slog.Logger
	observers []func(Result)
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithActivity sets the activity-log sink.
func WithActivity(rec domain.ActivityRecorder) Option {
	return func(r *Resolver) {
		r.activity = rec
	}
}

// WithRand sets the source used to pick among equally valid replies.
func WithRand(rnd Rand) Option {
	return func(r *Resolver) {
		r.rand = rnd
	}
}

// WithClock sets the clock used to resolve relative dates.
func WithClock(clock domain.Clock) Option {
	return func(r *Resolver) {
		r.clock = clock
	}
}

// WithLogger sets the process logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithObserver registers fn to be called with every Result.
func WithObserver(fn func(Result)) Option {
	return func(r *Resolver) {
		r.observers = append(r.observers, fn)
	}
}

// New creates a Resolver over catalog and tasks.
func New(catalog *Catalog, tasks TaskService, opts ...Option) *Resolver {
	r := &Resolver{
		catalog:  catalog,
		tasks:    tasks,
		activity: domain.ActivityFunc(func(string) {}),
		rand:     NewRand(0),
		clock:    domain.RealClock{},
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve turns one utterance into a reply. It never fails: store errors
// degrade to an apology and unmatched input to FallbackReply.
func (r *Resolver) Resolve(ctx context.Context, state State, utterance string) Result {
	res := r.resolve(ctx, state, utterance)
	r.logger.Debug("utterance resolved", "tier", res.Tier, "trigger", res.Trigger)
	for _, fn := range r.observers {
		fn(res)
	}
	return res
}

func (r *Resolver) resolve(ctx context.Context, state State, utterance string) Result {
	question := strings.TrimSpace(utterance)
	if question == "" {
		return Result{State: state, Reply: FallbackReply, Tier: TierEmpty}
	}
	lower := Normalize(question)

	if res, ok := r.createTask(ctx, lower); ok {
		return res
	}
	if res, ok := r.runCommand(ctx, lower); ok {
		return res
	}
	if res, ok := r.matchSentiment(lower); ok {
		return res
	}
	if res, ok := r.matchReplySets(TierTopic, r.catalog.topics, lower); ok {
		return res
	}
	if res, ok := r.matchReplySets(TierKeyword, r.catalog.keywords, lower); ok {
		return res
	}
	if reply, ok := r.catalog.LookupExact(lower); ok {
		r.record(fmt.Sprintf("Responded to exact match '%s'.", lower))
		return Result{State: State{Topic: lower}, Reply: reply, Tier: TierExact, Trigger: lower}
	}

	r.record(fmt.Sprintf("Did not understand user input: '%s'.", question))
	return Result{Reply: FallbackReply, Tier: TierFallback}
}

func (r *Resolver) createTask(ctx context.Context, lower string) (Result, bool) {
	draft, ok := ExtractDraft(lower, r.clock.Now())
	if !ok {
		return Result{}, false
	}

	if err := r.tasks.Create(ctx, draft); err != nil {
		r.logger.Error("create task", "title", draft.Title, "error", err)
		return Result{Reply: TaskStoreFailure, Tier: TierTaskCreate}, true
	}

	if draft.HasReminder() {
		r.record(fmt.Sprintf("NLP interpreted task added: '%s' with reminder.", draft.Title))
		reply := fmt.Sprintf("Task added: '%s'. I'll remind you on %s.", draft.Title, draft.ReminderDate.Format(domain.DateLayout))
		return Result{Reply: reply, Tier: TierTaskCreate}, true
	}
	r.record(fmt.Sprintf("NLP interpreted task added: '%s'.", draft.Title))
	reply := fmt.Sprintf("Task added: '%s'. Would you like to set a reminder for this task?", draft.Title)
	return Result{Reply: reply, Tier: TierTaskCreate}, true
}

func (r *Resolver) runCommand(ctx context.Context, lower string) (Result, bool) {
	cmd := dispatchCommand(lower)
	switch cmd.kind {
	case commandList:
		r.record("User requested to view tasks.")
		tasks, err := r.tasks.List(ctx)
		if err != nil {
			r.logger.Error("list tasks", "error", err)
			return Result{Reply: TaskStoreFailure, Tier: TierTaskCommand}, true
		}
		return Result{Reply: formatTaskList(tasks), Tier: TierTaskCommand}, true

	case commandComplete:
		if cmd.title == "" {
			return Result{Reply: "Please specify the task to mark as completed: 'Mark task completed [Task Title]'", Tier: TierTaskCommand}, true
		}
		found, err := r.tasks.Complete(ctx, cmd.title)
		return r.commandOutcome("complete task", cmd.title, found, err, "Task '%s' marked as completed."), true

	case commandDelete:
		if cmd.title == "" {
			return Result{Reply: "Please specify the task to delete: 'Delete task [Task Title]'", Tier: TierTaskCommand}, true
		}
		found, err := r.tasks.Delete(ctx, cmd.title)
		return r.commandOutcome("delete task", cmd.title, found, err, "Task '%s' deleted."), true

	case commandNone:
	}
	return Result{}, false
}

func (r *Resolver) commandOutcome(op, title string, found bool, err error, okFormat string) Result {
	switch {
	case err != nil:
		r.logger.Error(op, "title", title, "error", err)
		return Result{Reply: TaskStoreFailure, Tier: TierTaskCommand}
	case !found:
		return Result{Reply: fmt.Sprintf("Could not find task '%s'.", title), Tier: TierTaskCommand}
	default:
		return Result{Reply: fmt.Sprintf(okFormat, title), Tier: TierTaskCommand}
	}
}

func formatTaskList(tasks []*domain.Task) string {
	if len(tasks) == 0 {
		return NoTasksReply
	}
	var b strings.Builder
	b.WriteString(TaskListHeader)
	for _, t := range tasks {
		b.WriteString("\n- ")
		b.WriteString(t.String())
	}
	return b.String()
}

func (r *Resolver) matchSentiment(lower string) (Result, bool) {
	for _, s := range r.catalog.sentiments {
		if strings.Contains(lower, s.Trigger) {
			r.record(fmt.Sprintf("User expressed '%s' sentiment. Provided supportive response.", s.Trigger))
			return Result{Reply: s.Supportive, Tier: TierSentiment, Trigger: s.Trigger}, true
		}
	}
	return Result{}, false
}

// matchReplySets fires on the first set whose trigger has any word occurring in lower.
func (r *Resolver) matchReplySets(tier Tier, sets []ReplySet, lower string) (Result, bool) {
	for _, rs := range sets {
		if !containsAnyWord(lower, rs.Trigger) {
			continue
		}
		reply := rs.Replies[r.rand.IntN(len(rs.Replies))]
		r.record(fmt.Sprintf("Responded to %s '%s'.", tier, rs.Trigger))
		return Result{State: State{Topic: rs.Trigger}, Reply: reply, Tier: tier, Trigger: rs.Trigger}, true
	}
	return Result{}, false
}

func containsAnyWord(lower, phrase string) bool {
	for _, w := range strings.Fields(phrase) {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func (r *Resolver) record(description string) {
	r.activity.Record(description)
}
