package intent

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/runoshun/secbot/internal/domain"
)

var (
	// Capture groups 3, 6 and 7 hold the task content of each phrasing.
	createPattern = regexp.MustCompile(`(add|create)\s+(a\s+)?task\s+to\s+(.+)|(set|add)\s+(a\s+)?reminder\s+to\s+(.+)|remind\s+me\s+to\s+(.+)`)

	datePattern      = regexp.MustCompile(`(tomorrow|in\s+(\d+)\s+days?|on\s+(\d{4}-\d{2}-\d{2}))`)
	dateStripPattern = regexp.MustCompile(`\s+(tomorrow|in\s+\d+\s+days?|on\s+\d{4}-\d{2}-\d{2})`)
)

var contentGroups = []int{3, 6, 7}

// ExtractDraft recognizes a task-creation phrase in lower-cased text.
//
// The date phrase is searched for across the whole text, not only the
// captured content. A date that cannot be resolved leaves the draft without
// a reminder but is still removed from the title. ok is false when no
// phrase matches or the captured content is blank.
func ExtractDraft(lower string, now time.Time) (domain.TaskDraft, bool) {
	m := createPattern.FindStringSubmatchIndex(lower)
	if m == nil {
		return domain.TaskDraft{}, false
	}

	var content string
	for _, g := range contentGroups {
		if start := m[2*g]; start >= 0 {
			content = lower[start:m[2*g+1]]
			break
		}
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.TaskDraft{}, false
	}

	draft := domain.TaskDraft{Title: content, Description: content}

	dm := datePattern.FindStringSubmatch(lower)
	if dm == nil {
		return draft, true
	}
	draft.ReminderDate = resolveDate(dm, now)

	if title := strings.TrimSpace(dateStripPattern.ReplaceAllString(content, "")); title != "" {
		draft.Title = title
	}
	return draft, true
}

// resolveDate turns a datePattern submatch into a reminder time, or nil.
func resolveDate(dm []string, now time.Time) *time.Time {
	var t time.Time
	switch {
	case dm[1] == "tomorrow":
		t = now.AddDate(0, 0, 1)
	case dm[2] != "":
		days, err := strconv.Atoi(dm[2])
		if err != nil {
			return nil
		}
		t = now.AddDate(0, 0, days)
	case dm[3] != "":
		parsed, err := time.ParseInLocation(domain.DateLayout, dm[3], now.Location())
		if err != nil {
			return nil
		}
		t = parsed
	default:
		return nil
	}
	return &t
}
