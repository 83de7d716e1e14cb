package quiz

import (
	"testing"

	"github.com/runoshun/secbot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBank(t *testing.T) {
	bank := DefaultBank()

	require.Len(t, bank, 13)
	assert.Equal(t, "What is phishing?", bank[0].Question)
	for _, q := range bank {
		assert.NotEmpty(t, q.Explanation, q.Question)
		assert.NotEmpty(t, q.AnswerLetter(), q.Question)
	}
}

func TestQuestion_Matches(t *testing.T) {
	mc := Question{
		Question: "What does 2FA stand for?",
		Answer:   "Two-Factor Authentication",
		Options:  []string{"Two-Factor Authorization", "Two-Factor Authentication", "Two-File Access"},
	}
	tf := Question{Question: "HTTPS is secure?", Answer: "True"}

	tests := []struct {
		name   string
		q      Question
		answer string
		want   bool
	}{
		{"letter", mc, "B", true},
		{"lowercase letter", mc, " b ", true},
		{"wrong letter", mc, "A", false},
		{"letter out of range", mc, "Z", false},
		{"full answer any case", mc, "two-factor authentication", true},
		{"wrong text", mc, "two files", false},
		{"true false", tf, "true", true},
		{"true false wrong", tf, "False", false},
		{"single char on true false", tf, "T", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.q.Matches(tt.answer))
		})
	}
}

func TestQuestion_Prompt(t *testing.T) {
	mc := Question{Question: "Pick one", Answer: "Y", Options: []string{"X", "Y"}}
	assert.Equal(t, "Question 2. Pick one\nOptions:\nA. X\nB. Y\nType the letter (A, B, C...) or the full answer.", mc.Prompt(2))

	tf := Question{Question: "Sky is blue?", Answer: "True"}
	assert.Equal(t, "Question 1. Sky is blue?\nType 'True' or 'False'.", tf.Prompt(1))
}

func TestLoadBank_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", ""},
		{"unknown field", "- question: q\n  answer: a\n  hint: h\n"},
		{"missing answer", "- question: q\n"},
		{"answer not an option", "- question: q\n  answer: c\n  options: [a, b]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadBank([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}

	_, err := LoadBank(nil)
	assert.ErrorIs(t, err, domain.ErrEmptyQuestionSet)
}
