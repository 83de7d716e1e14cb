package quiz

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// firstRand always picks index 0, which rotates the bank predictably.
type firstRand struct{}

func (firstRand) IntN(int) int { return 0 }

func testBank(n int) []Question {
	bank := make([]Question, n)
	for i := range bank {
		bank[i] = Question{Question: fmt.Sprintf("q%d", i), Answer: "True"}
	}
	return bank
}

func TestGame_Round(t *testing.T) {
	game := NewGame(testBank(13), 5, firstRand{})
	game.Start()

	seen := map[string]bool{}
	for i := 1; i <= 5; i++ {
		q, ok := game.Next()
		require.True(t, ok)
		assert.False(t, seen[q.Question], "question repeated within a round")
		seen[q.Question] = true
		assert.Equal(t, i, game.Asked())
	}
	_, ok := game.Next()
	assert.False(t, ok)
	assert.Equal(t, 5, game.Asked())
	assert.Zero(t, game.Remaining())
}

func TestGame_Scoring(t *testing.T) {
	game := NewGame(testBank(3), 3, firstRand{})
	game.Start()

	q, _ := game.Next()
	assert.True(t, game.Check(q, "true"))
	q, _ = game.Next()
	assert.False(t, game.Check(q, "false"))

	assert.Equal(t, 1, game.Score())
	assert.Equal(t, 2, game.Asked())
	assert.Equal(t, 1, game.Remaining())
}

func TestGame_StartResets(t *testing.T) {
	game := NewGame(testBank(4), 2, firstRand{})
	game.Start()
	q, _ := game.Next()
	game.Check(q, "True")

	game.Start()

	assert.Zero(t, game.Score())
	assert.Zero(t, game.Asked())
	assert.Equal(t, 2, game.Remaining())
}

func TestGame_SmallBank(t *testing.T) {
	game := NewGame(testBank(2), 0, firstRand{})
	game.Start()

	assert.Equal(t, 2, game.Remaining())
}

func TestGame_NextBeforeStart(t *testing.T) {
	game := NewGame(testBank(2), 2, firstRand{})

	_, ok := game.Next()
	assert.False(t, ok)
}

func TestFeedback(t *testing.T) {
	tests := []struct {
		score, asked int
		prefix       string
	}{
		{0, 0, "You ended the quiz before answering"},
		{5, 5, "🎉 Perfect score!"},
		{4, 5, "👍 Great job!"},
		{2, 5, "Keep learning!"},
		{1, 5, "That was a good start!"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_of_%d", tt.score, tt.asked), func(t *testing.T) {
			assert.Contains(t, Feedback(tt.score, tt.asked), tt.prefix)
		})
	}
}
