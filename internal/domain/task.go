// Package domain contains core business entities and interfaces.
package domain

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// Date layouts used in task display and replies.
const (
	DateLayout     = "2006-01-02"
	ReminderLayout = "2006-01-02 15:04"
)

// Task represents a reminder task tracked by secbot.
// Fields are ordered to minimize memory padding.
type Task struct {
	Created      time.Time  `json:"created"`                // Creation time
	ReminderDate *time.Time `json:"reminderDate,omitempty"` // When to remind (nil = no reminder)
	Title        string     `json:"title"`                  // Title (required)
	Description  string     `json:"description,omitempty"`  // Description (optional)
	ID           int        `json:"-"`                      // Task ID (stored as key, not in value)
	Completed    bool       `json:"completed"`              // Completion flag
}

// HasReminder returns true if a reminder date is set.
func (t *Task) HasReminder() bool {
	return t.ReminderDate != nil
}

// IsOverdue reports whether the task is pending and its reminder is due at now.
func (t *Task) IsOverdue(now time.Time) bool {
	return !t.Completed && t.ReminderDate != nil && !t.ReminderDate.After(now)
}

// MatchesTitle reports whether title equals the task title, ignoring case.
func (t *Task) MatchesTitle(title string) bool {
	return strings.EqualFold(t.Title, title)
}

// StatusLabel returns "[PENDING]" or "[COMPLETED]".
func (t *Task) StatusLabel() string {
	if t.Completed {
		return "[COMPLETED]"
	}
	return "[PENDING]"
}

// String returns the canonical display string of the task.
// Format: [PENDING] title: description (Reminder: 2006-01-02 15:04)
func (t *Task) String() string {
	var b strings.Builder
	b.WriteString(t.StatusLabel())
	b.WriteString(" ")
	b.WriteString(t.Title)
	b.WriteString(": ")
	b.WriteString(t.Description)
	if t.ReminderDate != nil {
		b.WriteString(" (Reminder: ")
		b.WriteString(t.ReminderDate.Format(ReminderLayout))
		b.WriteString(")")
	}
	return b.String()
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	if t.ReminderDate != nil {
		r := *t.ReminderDate
		c.ReminderDate = &r
	}
	return &c
}

// SortForDisplay orders tasks for listing: pending before completed,
// then by reminder date (tasks without one last), then by creation time.
func SortForDisplay(tasks []*Task) {
	slices.SortStableFunc(tasks, func(a, b *Task) int {
		if a.Completed != b.Completed {
			if a.Completed {
				return 1
			}
			return -1
		}
		switch {
		case a.ReminderDate != nil && b.ReminderDate == nil:
			return -1
		case a.ReminderDate == nil && b.ReminderDate != nil:
			return 1
		case a.ReminderDate != nil && b.ReminderDate != nil:
			if c := a.ReminderDate.Compare(*b.ReminderDate); c != 0 {
				return c
			}
		}
		if c := a.Created.Compare(b.Created); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
