package game

import (
	"fmt"
	"slices"

	"github.com/lox/critterbluff/cards"
)

// NoSeat marks an unset seat index.
const NoSeat = -1

// State is the aggregate root of one game. Treat it as a value: engine
// transitions return a fresh State and never write to the one passed in.
type State struct {
	ID      string
	Players []Player

	// Deck holds the cards left over by the deal. They are never drawn.
	Deck []cards.CardType
	// Excluded holds the cards set aside in a two-player game.
	Excluded []cards.CardType
	// TotalCards is the size of the deck the game was built from.
	TotalCards int

	Phase       Phase
	TurnNumber  int
	PlayerCount int
	// CurrentPlayer is the questioner of the current or next turn.
	CurrentPlayer int
	Turn          *Turn

	// Revealed records which seats placed their initial face-up card.
	Revealed []bool

	// Over marks the end of the game. Loser is the seat whose elimination
	// ended it, or NoSeat.
	Over  bool
	Loser int
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	c := s
	c.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		c.Players[i] = p.clone()
	}
	c.Deck = slices.Clone(s.Deck)
	c.Excluded = slices.Clone(s.Excluded)
	c.Revealed = slices.Clone(s.Revealed)
	c.Turn = s.Turn.clone()
	return c
}

// CardInPlay reports whether a card is mid-turn, taken from a hand but not
// yet face-up.
func (s State) CardInPlay() bool {
	return s.Turn != nil && s.Turn.Card != cards.NoCard
}

// CardsAccounted sums every card the game knows about: hands, face-up cards,
// the undealt remainder, the excluded cards and the card in play.
func (s State) CardsAccounted() int {
	total := len(s.Deck) + len(s.Excluded)
	for _, p := range s.Players {
		total += p.HandCount + p.OpenCards.Total()
	}
	if s.CardInPlay() {
		total++
	}
	return total
}

// VerifyConservation checks that no card was created or lost and that each
// HandCount matches its hand.
func (s State) VerifyConservation() error {
	for i, p := range s.Players {
		if p.HandCount != len(p.Hand) {
			return fmt.Errorf("player %d hand count %d does not match hand size %d", i, p.HandCount, len(p.Hand))
		}
	}
	if got := s.CardsAccounted(); got != s.TotalCards {
		return fmt.Errorf("card conservation violated: accounted %d, expected %d", got, s.TotalCards)
	}
	return nil
}

// Survivors returns the seats of players that are not eliminated.
func (s State) Survivors() []int {
	var seats []int
	for i, p := range s.Players {
		if !p.Eliminated {
			seats = append(seats, i)
		}
	}
	return seats
}

func (s State) validSeat(seat int) bool {
	return seat >= 0 && seat < len(s.Players)
}

// nextActiveSeat returns the first non-eliminated seat at or after from,
// wrapping around, or NoSeat.
func (s State) nextActiveSeat(from int) int {
	n := len(s.Players)
	for i := range n {
		seat := (from + i) % n
		if !s.Players[seat].Eliminated {
			return seat
		}
	}
	return NoSeat
}

// CheckGameOver reports whether exactly one player is left un-eliminated.
func CheckGameOver(players []Player) bool {
	remaining := 0
	for _, p := range players {
		if !p.Eliminated {
			remaining++
		}
	}
	return remaining == 1
}
