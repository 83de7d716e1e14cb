package domain

import "time"

// ActivityTimeLayout is the timestamp layout of activity entries.
const ActivityTimeLayout = "2006-01-02 15:04:05"

// ActivityEntry is one line of the user-visible activity log.
type ActivityEntry struct {
	Timestamp   time.Time
	Description string
}

// String formats the entry as "2006-01-02 15:04:05 - description".
func (e ActivityEntry) String() string {
	return e.Timestamp.Format(ActivityTimeLayout) + " - " + e.Description
}
