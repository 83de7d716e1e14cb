// Package activity keeps the bounded, in-memory log of recent assistant actions.
package activity

import (
	"slices"
	"sync"

	"github.com/runoshun/secbot/internal/domain"
)

// DefaultCapacity is used when New is given a non-positive capacity.
const DefaultCapacity = domain.DefaultActivityLogSize

// Log is a fixed-size ring of activity entries. Once full, each new
// record evicts the oldest. Every record is also mirrored to the file
// logger under the "activity" category.
type Log struct {
	clock   domain.Clock
	logger  domain.Logger
	entries []domain.ActivityEntry
	start   int
	size    int
	mu      sync.Mutex
}

// New creates a Log holding at most capacity entries.
func New(capacity int, clock domain.Clock, logger domain.Logger) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Log{
		clock:   clock,
		logger:  logger,
		entries: make([]domain.ActivityEntry, capacity),
	}
}

// Record appends an entry stamped with the current time.
func (l *Log) Record(description string) {
	entry := domain.ActivityEntry{Timestamp: l.clock.Now(), Description: description}

	l.mu.Lock()
	idx := (l.start + l.size) % len(l.entries)
	l.entries[idx] = entry
	if l.size < len(l.entries) {
		l.size++
	} else {
		l.start = (l.start + 1) % len(l.entries)
	}
	l.mu.Unlock()

	l.logger.Info("activity", description)
}

// Recent returns retained entries, newest first.
func (l *Log) Recent() []domain.ActivityEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]domain.ActivityEntry, 0, l.size)
	for i := range l.size {
		out = append(out, l.entries[(l.start+i)%len(l.entries)])
	}
	slices.Reverse(out)
	return out
}

// Len returns the number of retained entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.size
}

// Capacity returns the maximum number of retained entries.
func (l *Log) Capacity() int {
	return len(l.entries)
}

var _ domain.ActivityLog = (*Log)(nil)
