// Package intent turns one line of user text into a reply.
//
// A Resolver runs an ordered pipeline of tiers: task creation, task
// commands, sentiment, topic, keyword, exact match and a fixed fallback.
// The first tier that produces a reply wins.
package intent

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize lower-cases s with a fixed, locale-independent mapping.
func Normalize(s string) string {
	// A Caser keeps state between calls, so build one per call.
	return cases.Lower(language.Und).String(s)
}
