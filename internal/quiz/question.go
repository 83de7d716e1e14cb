// Package quiz implements the cybersecurity quiz game.
package quiz

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/runoshun/secbot/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed questions.yaml
var defaultBankYAML []byte

// Question is one quiz item. A question with options is multiple choice;
// one without is answered by typing True or False.
type Question struct {
	Question    string   `yaml:"question"`
	Answer      string   `yaml:"answer"`
	Explanation string   `yaml:"explanation"`
	Options     []string `yaml:"options"`
}

// IsMultipleChoice reports whether the question lists options.
func (q Question) IsMultipleChoice() bool {
	return len(q.Options) > 0
}

// AnswerLetter returns the option letter of the correct answer, or "".
func (q Question) AnswerLetter() string {
	for i, opt := range q.Options {
		if strings.EqualFold(opt, q.Answer) {
			return string(rune('A' + i))
		}
	}
	return ""
}

// Matches reports whether answer is correct. Multiple-choice questions
// accept a single option letter or the full answer text, ignoring case.
func (q Question) Matches(answer string) bool {
	answer = strings.TrimSpace(answer)
	if q.IsMultipleChoice() && len(answer) == 1 {
		c := strings.ToUpper(answer)[0]
		if c >= 'A' && c <= 'Z' {
			idx := int(c - 'A')
			return idx < len(q.Options) && strings.EqualFold(q.Options[idx], q.Answer)
		}
	}
	return strings.EqualFold(answer, q.Answer)
}

// Prompt renders the question as the n-th of the round.
func (q Question) Prompt(n int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question %d. %s\n", n, q.Question)
	if !q.IsMultipleChoice() {
		b.WriteString("Type 'True' or 'False'.")
		return b.String()
	}
	b.WriteString("Options:\n")
	for i, opt := range q.Options {
		fmt.Fprintf(&b, "%c. %s\n", 'A'+i, opt)
	}
	b.WriteString("Type the letter (A, B, C...) or the full answer.")
	return b.String()
}

// LoadBank decodes and validates a YAML question list.
func LoadBank(data []byte) ([]Question, error) {
	var bank []Question
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&bank); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode question bank: %w", err)
	}
	if len(bank) == 0 {
		return nil, domain.ErrEmptyQuestionSet
	}
	for i, q := range bank {
		if strings.TrimSpace(q.Question) == "" || strings.TrimSpace(q.Answer) == "" {
			return nil, fmt.Errorf("question %d: question and answer are required", i+1)
		}
		if q.IsMultipleChoice() && q.AnswerLetter() == "" {
			return nil, fmt.Errorf("question %d: answer %q is not among its options", i+1, q.Answer)
		}
	}
	return bank, nil
}

var defaultBank = sync.OnceValue(func() []Question {
	bank, err := LoadBank(defaultBankYAML)
	if err != nil {
		// Should never happen with embedded bank
		panic(fmt.Sprintf("failed to load embedded question bank: %v", err))
	}
	return bank
})

// DefaultBank returns a copy of the built-in question bank.
func DefaultBank() []Question {
	return slices.Clone(defaultBank())
}
