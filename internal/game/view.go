package game

import (
	"fmt"
	"slices"

	"github.com/lox/critterbluff/cards"
)

// PublicPlayer is what everyone at the table can see about a player.
type PublicPlayer struct {
	Name       string
	HandCount  int
	OpenCards  cards.Counts
	Eliminated bool
}

// TurnView is the turn as seen by one seat.
type TurnView struct {
	Questioner    int
	Answerer      int
	DeclaredAs    cards.CardType
	PlayersInTurn []int
	History       []TurnAction
	// KnownCard is the real card when the viewer has held it this turn,
	// otherwise NoCard.
	KnownCard cards.CardType
}

// View is a single player's perspective of the game. It never contains
// another player's hand.
type View struct {
	Seat          int
	Phase         Phase
	TurnNumber    int
	CurrentPlayer int
	Hand          []cards.CardType
	Players       []PublicPlayer
	Turn          *TurnView
	// PassTargets is filled in for the answerer while judging.
	PassTargets []int
}

// Me returns the viewer's public entry.
func (v View) Me() PublicPlayer {
	return v.Players[v.Seat]
}

// Opponents returns the seats of other players still in the game.
func (v View) Opponents() []int {
	var seats []int
	for i, p := range v.Players {
		if i != v.Seat && !p.Eliminated {
			seats = append(seats, i)
		}
	}
	return seats
}

// ViewFor builds seat's view of s.
func ViewFor(s State, seat int) (View, error) {
	if !s.validSeat(seat) {
		return View{}, fmt.Errorf("%w: %d", ErrInvalidSeat, seat)
	}

	v := View{
		Seat:          seat,
		Phase:         s.Phase,
		TurnNumber:    s.TurnNumber,
		CurrentPlayer: s.CurrentPlayer,
		Hand:          slices.Clone(s.Players[seat].Hand),
		Players:       make([]PublicPlayer, len(s.Players)),
	}
	for i, p := range s.Players {
		v.Players[i] = PublicPlayer{
			Name:       p.Name,
			HandCount:  p.HandCount,
			OpenCards:  p.OpenCards,
			Eliminated: p.Eliminated,
		}
	}

	if t := s.Turn; t != nil {
		tv := &TurnView{
			Questioner:    t.Questioner,
			Answerer:      t.Answerer,
			DeclaredAs:    t.DeclaredAs,
			PlayersInTurn: slices.Clone(t.PlayersInTurn),
			History:       slices.Clone(t.History),
		}
		if t.Held(seat) {
			tv.KnownCard = t.Card
		}
		v.Turn = tv
		if seat == t.Answerer {
			v.PassTargets = PassTargets(s)
		}
	}
	return v, nil
}

// PeekView is the answerer's view after choosing to pass: the answerer looks
// at the card before forwarding it, so KnownCard is set.
func PeekView(s State) (View, error) {
	if s.Turn == nil {
		return View{}, ErrNoTurn
	}
	if s.Phase != PhaseJudging {
		return View{}, fmt.Errorf("%w: peek during %s", ErrWrongPhase, s.Phase)
	}
	v, err := ViewFor(s, s.Turn.Answerer)
	if err != nil {
		return View{}, err
	}
	v.Turn.KnownCard = s.Turn.Card
	return v, nil
}
