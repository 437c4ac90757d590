package game

import (
	"testing"

	"github.com/lox/critterbluff/cards"
	"github.com/stretchr/testify/assert"
)

func TestEventFormatter_Format(t *testing.T) {
	names := FormattingOptions{Names: []string{"Alice", "Bob", "Carol"}}

	tests := []struct {
		name     string
		opts     FormattingOptions
		event    GameEvent
		expected string
	}{
		{
			name:     "initial reveal",
			opts:     names,
			event:    InitialRevealEvent{Seat: 1, Card: cards.Frog},
			expected: "Bob: reveals frog",
		},
		{
			name:     "turn start is one-based",
			opts:     names,
			event:    TurnStartEvent{TurnNumber: 0, Questioner: 2, HandCount: 9},
			expected: "*** TURN 1 *** Carol to question (9 cards)",
		},
		{
			name:     "question",
			opts:     names,
			event:    QuestionEvent{Questioner: 0, Answerer: 1, Declared: cards.Bat},
			expected: `Alice: hands a card to Bob, "this is a bat"`,
		},
		{
			name:     "pass with emoji",
			opts:     FormattingOptions{Names: names.Names, Emoji: true},
			event:    PassEvent{From: 1, To: 2, Declared: cards.Mouse, Chain: 1},
			expected: `Bob: peeks and passes to Carol, "this is a mouse 🐭"`,
		},
		{
			name:     "unnamed seat",
			opts:     FormattingOptions{},
			event:    InitialRevealEvent{Seat: 3, Card: cards.Fly},
			expected: "seat 3: reveals fly",
		},
		{
			name: "elimination",
			opts: names,
			event: EliminationEvent{
				Seat:        0,
				Elimination: Elimination{Eliminated: true, Reason: ReasonSameType, Type: cards.Spider},
				OpenCards:   cards.Counts{}.Add(cards.Spider, 4),
			},
			expected: "Alice: eliminated, same_type (spider) (open: spider:4)",
		},
		{
			name:     "game over",
			opts:     names,
			event:    GameOverEvent{Loser: 2, Turns: 31},
			expected: "*** GAME OVER *** Carol loses after 31 turns",
		},
		{
			name:     "game over without loser",
			opts:     names,
			event:    GameOverEvent{Loser: NoSeat, Turns: 5},
			expected: "*** GAME OVER *** after 5 turns",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewEventFormatter(tt.opts).Format(tt.event))
		})
	}
}

func TestEventFormatter_FormatJudgment(t *testing.T) {
	ef := NewEventFormatter(FormattingOptions{Names: []string{"Alice", "Bob", "Carol"}})

	doubted := Judgment{Answerer: 2, Card: cards.Bat, DeclaredAs: cards.Frog, Success: true, Recipient: 0, Passes: 1}
	assert.Equal(t,
		"Carol: doubts the frog, it was a bat. Carol is right, Alice keeps it face-up (after 1 passes)",
		ef.FormatJudgment(doubted))

	believed := Judgment{Answerer: 1, Card: cards.Bat, DeclaredAs: cards.Frog, Believed: true, Recipient: 1}
	assert.Equal(t,
		"Bob: believes the frog, it was a bat. Bob is wrong, Bob keeps it face-up",
		ef.FormatJudgment(believed))
}

func TestEventFormatter_FormatGameStart(t *testing.T) {
	ef := NewEventFormatter(FormattingOptions{})
	out := ef.FormatGameStart(GameStartEvent{
		GameID:     "g1",
		Players:    []string{"Ana", "Ben"},
		HandCounts: []int{27, 27},
		Excluded:   10,
	})
	assert.Equal(t, "Game g1: 2 players\n  Seat 1: Ana (27 cards)\n  Seat 2: Ben (27 cards)\n  10 cards set aside", out)
}
