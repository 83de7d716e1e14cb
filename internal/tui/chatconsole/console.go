// Package chatconsole is the full-screen chat interface.
package chatconsole

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/runoshun/secbot/internal/chat"
)

// Conversation is the chat backend the console talks to.
type Conversation interface {
	Handle(ctx context.Context, input string) chat.Turn
	QuizActive() bool
}

// Config contains configuration for the chat console.
type Config struct {
	Conversation Conversation
	// Reminders runs until ctx is done, passing due reminders to notify.
	// Nil disables reminders.
	Reminders func(ctx context.Context, notify func([]string)) error
	Now       func() time.Time
	Title     string
}

// Speakers shown in the transcript.
const (
	speakerUser     = "YOU"
	speakerBot      = "BOT"
	speakerReminder = "REMINDER"
)

type entry struct {
	at      time.Time
	speaker string
	text    string
}

// Model is the bubbletea model for the chat console.
type Model struct {
	textarea textarea.Model
	config   Config
	keys     KeyMap
	help     help.Model
	entries  []entry
	viewport viewport.Model
	width    int
	height   int
	quitting bool
}

// Messages
type turnMsg struct {
	turn chat.Turn
}

// RemindersMsg delivers reminder notifications to the console.
type RemindersMsg struct {
	Messages []string
}

// New creates a chat console model seeded with the greeting.
func New(cfg Config) Model {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Title == "" {
		cfg.Title = "Cybersecurity Assistant"
	}

	ta := textarea.New()
	ta.Placeholder = "Ask about cybersecurity or manage your tasks..."
	ta.CharLimit = 1024
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	vp := viewport.New(80, 20)

	m := Model{
		config:   cfg,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		viewport: vp,
		textarea: ta,
	}
	m.append(speakerBot, chat.Greeting()...)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateLayout()
		m.updateViewportContent()

	case turnMsg:
		m.append(speakerBot, msg.turn.Messages...)

	case RemindersMsg:
		m.append(speakerReminder, msg.Messages...)
	}

	var taCmd tea.Cmd
	m.textarea, taCmd = m.textarea.Update(msg)
	cmds = append(cmds, taCmd)

	var vpCmd tea.Cmd
	m.viewport, vpCmd = m.viewport.Update(msg)
	cmds = append(cmds, vpCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Send):
		text := m.textarea.Value()
		m.textarea.Reset()
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			m.append(speakerUser, trimmed)
		}
		return m, m.send(text)

	case key.Matches(msg, m.keys.PrevPage), key.Matches(msg, m.keys.NextPage):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m Model) send(text string) tea.Cmd {
	conv := m.config.Conversation
	return func() tea.Msg {
		return turnMsg{turn: conv.Handle(context.Background(), text)}
	}
}

func (m *Model) append(speaker string, texts ...string) {
	now := m.config.Now()
	for _, t := range texts {
		m.entries = append(m.entries, entry{at: now, speaker: speaker, text: t})
	}
	m.updateViewportContent()
}

func (m *Model) updateLayout() {
	// Header, two bordered boxes, input, help.
	headerHeight := 1
	inputHeight := 2
	helpHeight := 1

	vpHeight := m.height - headerHeight - inputHeight - helpHeight - 4
	if vpHeight < 3 {
		vpHeight = 3
	}

	m.viewport.Width = m.width - 2
	m.viewport.Height = vpHeight
	m.textarea.SetWidth(m.width - 4)
}

func (m *Model) updateViewportContent() {
	wrapWidth := m.viewport.Width - 4
	if wrapWidth < 20 {
		wrapWidth = 20
	}

	var lines []string
	for _, e := range m.entries {
		prefix := fmt.Sprintf("[%s] %s: ", e.at.Format("15:04:05"), e.speaker)
		wrapped := strings.Split(wrapText(e.text, max(wrapWidth-len(prefix), 10)), "\n")

		lines = append(lines, speakerStyle(e.speaker).Render(prefix)+wrapped[0])
		indent := strings.Repeat(" ", len(prefix))
		for _, l := range wrapped[1:] {
			lines = append(lines, indent+l)
		}
	}

	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.viewport.GotoBottom()
}

// Transcript returns the plain conversation lines, oldest first.
func (m Model) Transcript() []string {
	out := make([]string, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.speaker + ": " + e.text
	}
	return out
}

// wrapText wraps text at the given width, preserving existing newlines.
// Uses runewidth for proper wide character handling.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	for i, paragraph := range strings.Split(text, "\n") {
		if i > 0 {
			result.WriteString("\n")
		}
		result.WriteString(wrapParagraph(paragraph, width))
	}
	return result.String()
}

// wrapParagraph wraps a single paragraph at width, keeping ASCII words whole
// when they fit on a line of their own.
func wrapParagraph(text string, width int) string {
	if runewidth.StringWidth(text) <= width {
		return text
	}

	var lines []string
	var line []rune
	var lineWidth int
	flush := func() {
		lines = append(lines, strings.TrimRight(string(line), " "))
		line = line[:0]
		lineWidth = 0
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		rw := runewidth.RuneWidth(r)

		if lineWidth == 0 && r == ' ' {
			continue
		}

		// Break before a word that fits on the next line but not this one
		if isASCIIWordChar(r) && lineWidth > 0 && !isASCIIWordChar(runes[i-1]) {
			wordWidth := 0
			for j := i; j < len(runes) && isASCIIWordChar(runes[j]); j++ {
				wordWidth += runewidth.RuneWidth(runes[j])
			}
			if lineWidth+wordWidth > width && wordWidth <= width {
				flush()
			}
		}

		if lineWidth+rw > width && lineWidth > 0 {
			flush()
			if r == ' ' {
				continue
			}
		}

		line = append(line, r)
		lineWidth += rw
	}
	if len(line) > 0 {
		flush()
	}

	return strings.Join(lines, "\n")
}

func isASCIIWordChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') ||
		r == '_' || r == '-' || r == '\'' || r == '.' || r == ',' || r == '!' || r == '?' || r == ':'
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#89B4FA")).
			Background(lipgloss.Color("#1E1E2E")).
			Padding(0, 1)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6C7086"))

	quizStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F9E2AF")).
			Bold(true)

	userStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")).Bold(true)
	botStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#89B4FA")).Bold(true)
	reminderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")).Bold(true)
)

func speakerStyle(speaker string) lipgloss.Style {
	switch speaker {
	case speakerUser:
		return userStyle
	case speakerReminder:
		return reminderStyle
	default:
		return botStyle
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	header := " " + m.config.Title + " "
	if m.config.Conversation != nil && m.config.Conversation.QuizActive() {
		header += quizStyle.Render("[quiz]")
	}
	b.WriteString(titleStyle.Width(m.width).Render(header))
	b.WriteString("\n")

	b.WriteString(borderStyle.Width(m.width - 2).Render(m.viewport.View()))
	b.WriteString("\n")

	b.WriteString(borderStyle.Width(m.width - 2).Render(m.textarea.View()))
	b.WriteString("\n")

	b.WriteString(m.help.View(m.keys))

	return b.String()
}

// Run starts the chat console and its reminder loop, and blocks until the
// user quits or ctx is canceled.
func Run(ctx context.Context, cfg Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(New(cfg), tea.WithAltScreen(), tea.WithContext(ctx))

	done := make(chan struct{})
	if cfg.Reminders != nil {
		go func() {
			defer close(done)
			_ = cfg.Reminders(ctx, func(msgs []string) {
				p.Send(RemindersMsg{Messages: msgs})
			})
		}()
	} else {
		close(done)
	}

	_, err := p.Run()
	cancel()
	<-done
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
