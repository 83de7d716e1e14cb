package chatconsole

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/secbot/internal/chat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConversation struct {
	inputs []string
	reply  string
	quiz   bool
}

func (f *fakeConversation) Handle(_ context.Context, input string) chat.Turn {
	f.inputs = append(f.inputs, input)
	return chat.Turn{Messages: []string{f.reply}}
}

func (f *fakeConversation) QuizActive() bool { return f.quiz }

func newTestModel(conv *fakeConversation) Model {
	return New(Config{
		Conversation: conv,
		Now:          func() time.Time { return time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC) },
	})
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	result, ok := updated.(Model)
	require.True(t, ok, "Update should return Model")
	return result
}

func TestNew_ShowsGreeting(t *testing.T) {
	m := newTestModel(&fakeConversation{})

	transcript := m.Transcript()

	require.Len(t, transcript, len(chat.Greeting()))
	assert.Equal(t, "BOT: "+chat.Greeting()[0], transcript[0])
}

func TestUpdate_EnterSendsInput(t *testing.T) {
	conv := &fakeConversation{reply: "Hello! How can I assist you with cybersecurity today?"}
	m := newTestModel(conv)
	m = typeText(t, m, "hello")

	// Execute
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	require.NotNil(t, cmd)
	updated, _ = m.Update(cmd())
	m = updated.(Model)

	// Assert
	assert.Equal(t, []string{"hello"}, conv.inputs)
	assert.Empty(t, m.textarea.Value())
	transcript := m.Transcript()
	assert.Equal(t, "YOU: hello", transcript[len(transcript)-2])
	assert.Equal(t, "BOT: Hello! How can I assist you with cybersecurity today?", transcript[len(transcript)-1])
}

func TestUpdate_BlankInputIsStillHandled(t *testing.T) {
	conv := &fakeConversation{reply: chat.EmptyInputReply}
	m := newTestModel(conv)
	before := len(m.Transcript())

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	updated, _ = m.Update(cmd())
	m = updated.(Model)

	transcript := m.Transcript()
	require.Len(t, transcript, before+1)
	assert.Equal(t, "BOT: "+chat.EmptyInputReply, transcript[before])
}

func TestUpdate_Reminders(t *testing.T) {
	m := newTestModel(&fakeConversation{})

	updated, _ := m.Update(RemindersMsg{Messages: []string{"REMINDER: It's time for your task: 'patch'! \"patch\""}})
	m = updated.(Model)

	transcript := m.Transcript()
	assert.Equal(t, "REMINDER: REMINDER: It's time for your task: 'patch'! \"patch\"", transcript[len(transcript)-1])
}

func TestUpdate_Quit(t *testing.T) {
	m := newTestModel(&fakeConversation{})

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = updated.(Model)

	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestView_QuizIndicator(t *testing.T) {
	conv := &fakeConversation{}
	m := newTestModel(conv)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = updated.(Model)

	assert.NotContains(t, m.View(), "[quiz]")

	conv.quiz = true
	assert.Contains(t, m.View(), "[quiz]")
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"fits", "short line", 20, "short line"},
		{"breaks between words", "phishing emails ask for passwords", 16, "phishing emails\nask for\npasswords"},
		{"keeps newlines", "a\nb", 10, "a\nb"},
		{"zero width", "unchanged", 0, "unchanged"},
		{"wide runes", "日本語テキスト", 6, "日本語\nテキス\nト"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapText(tt.text, tt.width))
		})
	}
}

func TestWrapText_NoLineExceedsWidth(t *testing.T) {
	text := strings.Repeat("update your router firmware regularly ", 8)

	for _, line := range strings.Split(wrapText(text, 24), "\n") {
		assert.LessOrEqual(t, len(line), 24, "line %q", line)
	}
}
