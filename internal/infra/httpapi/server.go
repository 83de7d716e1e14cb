// Package httpapi serves secbot conversations and tasks over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/runoshun/secbot/internal/chat"
	"github.com/runoshun/secbot/internal/domain"
	"github.com/runoshun/secbot/internal/infra/metrics"
	"github.com/runoshun/secbot/internal/usecase"
)

// Deps holds what the API serves.
type Deps struct {
	NewConversation func() *chat.Conversation
	NewTask         *usecase.NewTask
	ListTasks       *usecase.ListTasks
	ShowTask        *usecase.ShowTask
	Activity        domain.ActivityLog
	Metrics         *metrics.Metrics
	Logger          *slog.Logger
}

// Server routes API requests. Each session owns one conversation.
type Server struct {
	deps     Deps
	sessions map[string]*chat.Conversation
	mu       sync.Mutex
}

// NewServer creates a Server with no sessions.
func NewServer(deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		deps:     deps,
		sessions: make(map[string]*chat.Conversation),
	}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.health)
	if s.deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.deps.Metrics.Handler())
	}

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.createSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Delete("/", s.deleteSession)
			r.Post("/messages", s.postMessage)
			r.Get("/reminders", s.reminders)
		})
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", s.listTasks)
		r.Post("/", s.createTask)
		r.Get("/{id}", s.showTask)
	})

	r.Get("/activity", s.activity)
	return r
}

// Len returns the number of open sessions.
func (s *Server) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

type sessionResponse struct {
	ID       string   `json:"id"`
	Greeting []string `json:"greeting"`
}

type messageRequest struct {
	Text string `json:"text"`
}

type messageResponse struct {
	Tier     string   `json:"tier,omitempty"`
	Topic    string   `json:"topic,omitempty"`
	Messages []string `json:"messages"`
}

type taskResponse struct {
	ReminderDate *time.Time `json:"reminder_date,omitempty"`
	Created      time.Time  `json:"created"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Display      string     `json:"display"`
	ID           int        `json:"id"`
	Completed    bool       `json:"completed"`
}

type createTaskRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ReminderDate string `json:"reminder_date"` // YYYY-MM-DD, optional
}

type activityResponse struct {
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
	Line        string    `json:"line"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) createSession(w http.ResponseWriter, _ *http.Request) {
	id := uuid.NewString()
	conv := s.deps.NewConversation()

	s.mu.Lock()
	s.sessions[id] = conv
	s.mu.Unlock()

	if s.deps.Metrics != nil {
		s.deps.Metrics.SessionOpened()
	}
	s.deps.Logger.Info("session opened", "session_id", id)
	s.writeJSON(w, http.StatusCreated, sessionResponse{ID: id, Greeting: chat.Greeting()})
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		s.writeError(w, domain.ErrSessionNotFound)
		return
	}
	if s.deps.Metrics != nil {
		s.deps.Metrics.SessionClosed()
	}
	s.deps.Logger.Info("session closed", "session_id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) session(r *http.Request) (*chat.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.sessions[chi.URLParam(r, "id")]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return conv, nil
}

func (s *Server) postMessage(w http.ResponseWriter, r *http.Request) {
	conv, err := s.session(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var body messageRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.deps.Logger.Warn("invalid message body", "error", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	turn := conv.Handle(r.Context(), body.Text)
	s.writeJSON(w, http.StatusOK, messageResponse{
		Messages: turn.Messages,
		Tier:     string(turn.Tier),
		Topic:    conv.Topic(),
	})
}

func (s *Server) reminders(w http.ResponseWriter, r *http.Request) {
	conv, err := s.session(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	msgs := conv.Reminders(r.Context())
	if s.deps.Metrics != nil {
		s.deps.Metrics.AddReminders(len(msgs))
	}
	s.writeJSON(w, http.StatusOK, messageResponse{Messages: msgs})
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	order := usecase.OrderCreated
	if r.URL.Query().Get("order") == "display" {
		order = usecase.OrderDisplay
	}

	out, err := s.deps.ListTasks.Execute(r.Context(), usecase.ListTasksInput{Order: order})
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := make([]taskResponse, 0, len(out.Tasks))
	for _, t := range out.Tasks {
		resp = append(resp, toTaskResponse(t))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) showTask(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid task id", http.StatusBadRequest)
		return
	}

	out, err := s.deps.ShowTask.Execute(r.Context(), usecase.ShowTaskInput{TaskID: id})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toTaskResponse(out.Task))
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var body createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.deps.Logger.Warn("invalid task body", "error", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	in := usecase.NewTaskInput{Title: body.Title, Description: body.Description}
	if body.ReminderDate != "" {
		d, err := time.ParseInLocation(domain.DateLayout, body.ReminderDate, time.Local)
		if err != nil {
			http.Error(w, "invalid reminder_date (want YYYY-MM-DD)", http.StatusBadRequest)
			return
		}
		in.ReminderDate = &d
	}

	out, err := s.deps.NewTask.Execute(r.Context(), in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toTaskResponse(out.Task))
}

func (s *Server) activity(w http.ResponseWriter, _ *http.Request) {
	entries := s.deps.Activity.Recent()
	resp := make([]activityResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, activityResponse{
			Timestamp:   e.Timestamp,
			Description: e.Description,
			Line:        e.String(),
		})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		ReminderDate: t.ReminderDate,
		Completed:    t.Completed,
		Created:      t.Created,
		Display:      t.String(),
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.deps.Logger.Error("encode response", "error", err)
	}
}

// writeError maps domain errors to status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrTaskNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrEmptyTitle):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		s.deps.Logger.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// ListenAndServe serves h on addr until ctx is canceled, then shuts down
// gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http api listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	}
}
