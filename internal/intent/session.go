package intent

import (
	"context"
	"sync"
)

// Session binds a Resolver to one conversation's State.
type Session struct {
	resolver *Resolver
	state    State
	mu       sync.Mutex
}

// NewSession starts a conversation with empty state.
func NewSession(r *Resolver) *Session {
	return &Session{resolver: r}
}

// Resolve answers utterance and advances the session state.
func (s *Session) Resolve(ctx context.Context, utterance string) string {
	return s.ResolveResult(ctx, utterance).Reply
}

// ResolveResult is Resolve returning the full Result.
func (s *Session) ResolveResult(ctx context.Context, utterance string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.resolver.Resolve(ctx, s.state, utterance)
	s.state = res.State
	return res
}

// Topic returns the current topic ("" = none).
func (s *Session) Topic() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Topic
}
