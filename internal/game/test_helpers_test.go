package game

import (
	"fmt"
	"testing"

	"github.com/coder/quartz"
	"github.com/lox/critterbluff/cards"
	"github.com/lox/critterbluff/internal/randutil"
)

// newTestEngine returns an engine with a fixed seed and a mock clock.
func newTestEngine(t *testing.T, opts ...Option) (*Engine, *quartz.Mock) {
	t.Helper()
	clock := quartz.NewMock(t)
	opts = append([]Option{WithClock(clock)}, opts...)
	return NewEngine(randutil.New(42), opts...), clock
}

// stateWithHands builds a game in PhasePlaying where seat i holds hands[i].
func stateWithHands(hands ...[]cards.CardType) State {
	players := make([]Player, len(hands))
	total := 0
	for i, hand := range hands {
		players[i] = Player{
			ID:        fmt.Sprintf("p%d", i),
			Name:      fmt.Sprintf("P%d", i),
			Hand:      append([]cards.CardType(nil), hand...),
			HandCount: len(hand),
		}
		total += len(hand)
	}
	return State{
		ID:          "test",
		Players:     players,
		TotalCards:  total,
		Phase:       PhasePlaying,
		PlayerCount: len(hands),
		Revealed:    make([]bool, len(hands)),
		Loser:       NoSeat,
	}
}

// withOpen gives seat face-up cards, keeping TotalCards consistent.
func withOpen(s State, seat int, open cards.Counts) State {
	s = s.Clone()
	s.Players[seat].OpenCards = open
	s.TotalCards += open.Total()
	return s
}

func hand(cs ...cards.CardType) []cards.CardType {
	return cs
}

// must returns a helper that unwraps a transition result, failing the test
// on error:
//
//	ok := must(t)
//	s = ok(e.StartTurn(s, 0))
func must(t *testing.T) func(State, error) State {
	return func(s State, err error) State {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return s
	}
}
