package quiz

import (
	"slices"
	"sync"

	"github.com/runoshun/secbot/internal/domain"
)

// DefaultRoundSize is the number of questions drawn per game.
const DefaultRoundSize = domain.DefaultQuizRoundSize

// Rand picks random indexes. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Game draws a random round of questions from a bank and keeps score.
// It is safe for concurrent use.
type Game struct {
	rand  Rand
	bank  []Question
	round []Question
	size  int
	score int
	asked int
	mu    sync.Mutex
}

// NewGame creates a game over bank. A non-positive roundSize uses DefaultRoundSize.
func NewGame(bank []Question, roundSize int, rnd Rand) *Game {
	if roundSize <= 0 {
		roundSize = DefaultRoundSize
	}
	return &Game{
		rand: rnd,
		bank: slices.Clone(bank),
		size: roundSize,
	}
}

// Start resets the score and draws a fresh round.
func (g *Game) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()

	shuffled := slices.Clone(g.bank)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := g.rand.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	g.round = shuffled[:min(g.size, len(shuffled))]
	g.score = 0
	g.asked = 0
}

// Next pops the next question of the round. ok is false when none remain.
func (g *Game) Next() (q Question, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.round) == 0 {
		return Question{}, false
	}
	q = g.round[0]
	g.round = g.round[1:]
	g.asked++
	return q, true
}

// Check scores answer against q and reports whether it was correct.
func (g *Game) Check(q Question, answer string) bool {
	correct := q.Matches(answer)
	if correct {
		g.mu.Lock()
		g.score++
		g.mu.Unlock()
	}
	return correct
}

// Score returns the number of correct answers this round.
func (g *Game) Score() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.score
}

// Asked returns the number of questions presented this round.
func (g *Game) Asked() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.asked
}

// Remaining returns the number of questions left in the round.
func (g *Game) Remaining() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.round)
}

// Feedback returns the closing remark for a final score.
func Feedback(score, asked int) string {
	if asked == 0 {
		return "You ended the quiz before answering any questions. No score to display."
	}
	pct := float64(score) / float64(asked) * 100
	switch {
	case pct == 100:
		return "🎉 Perfect score! You're a true cybersecurity pro! Keep up the excellent work!"
	case pct >= 70:
		return "👍 Great job! You have a solid understanding of cybersecurity concepts. Keep learning to stay sharp!"
	case pct >= 40:
		return "Keep learning! You're on your way to becoming more cybersecurity aware. Reviewing the tips in our chat history can help."
	default:
		return "That was a good start! Cybersecurity can be tricky, but continuous learning is key. Don't worry, you can always try again and check out the various tips I provide!"
	}
}
