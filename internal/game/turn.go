package game

import (
	"fmt"
	"slices"
	"time"

	"github.com/lox/critterbluff/cards"
)

// ActionKind distinguishes the two ways a claim is made.
type ActionKind int

const (
	// ActionQuestion is the questioner's opening claim.
	ActionQuestion ActionKind = iota
	// ActionPass is an answerer forwarding the card with a new claim.
	ActionPass
)

func (k ActionKind) String() string {
	switch k {
	case ActionQuestion:
		return "question"
	case ActionPass:
		return "pass"
	default:
		return fmt.Sprintf("ActionKind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k ActionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// TurnAction is one entry of a turn's history.
type TurnAction struct {
	Player   int
	Kind     ActionKind
	To       int
	Declared cards.CardType
	At       time.Time
}

// Turn is the state of the turn in progress.
type Turn struct {
	// Questioner started the turn and never changes.
	Questioner int
	// Answerer currently holds the card. It equals Questioner until an
	// opponent is selected.
	Answerer int
	// Card is the real card, frozen once selected.
	Card cards.CardType
	// DeclaredAs is the claim currently on the table.
	DeclaredAs cards.CardType
	// PlayersInTurn lists everyone who already held the card, in order.
	PlayersInTurn []int
	History       []TurnAction
}

// HasOpponent reports whether an answerer other than the questioner is set.
func (t *Turn) HasOpponent() bool {
	return t.Answerer != t.Questioner
}

// Passes returns how many times the card has been forwarded.
func (t *Turn) Passes() int {
	n := 0
	for _, a := range t.History {
		if a.Kind == ActionPass {
			n++
		}
	}
	return n
}

// Held reports whether seat already held the card this turn.
func (t *Turn) Held(seat int) bool {
	return slices.Contains(t.PlayersInTurn, seat)
}

// LastAction returns the most recent claim, if any.
func (t *Turn) LastAction() (TurnAction, bool) {
	if len(t.History) == 0 {
		return TurnAction{}, false
	}
	return t.History[len(t.History)-1], true
}

func (t *Turn) clone() *Turn {
	if t == nil {
		return nil
	}
	c := *t
	c.PlayersInTurn = slices.Clone(t.PlayersInTurn)
	c.History = slices.Clone(t.History)
	return &c
}
