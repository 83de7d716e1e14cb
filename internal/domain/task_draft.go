package domain

import (
	"strings"
	"time"
)

// TaskDraft is a task extracted from free text before it is handed to the store.
// Fields are ordered to minimize memory padding.
type TaskDraft struct {
	ReminderDate *time.Time // Optional reminder
	Title        string     // Cleaned title
	Description  string     // Defaults to the raw captured text
}

// HasReminder returns true if the draft carries a reminder date.
func (d TaskDraft) HasReminder() bool {
	return d.ReminderDate != nil
}

// Validate checks the draft has a non-blank title.
func (d TaskDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrEmptyTitle
	}
	return nil
}
