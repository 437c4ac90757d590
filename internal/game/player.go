package game

import (
	"slices"

	"github.com/lox/critterbluff/cards"
)

// Player is one participant. Players are addressed by seat index in State;
// ID and Name never change after creation.
type Player struct {
	ID   string
	Name string

	// Hand is private. HandCount always equals len(Hand).
	Hand      []cards.CardType
	HandCount int

	// OpenCards are the face-up cards this player was forced to keep. Counts
	// only ever grow.
	OpenCards cards.Counts

	// Eliminated is set once and never cleared.
	Eliminated  bool
	Elimination Elimination
}

// HasCard reports whether the player holds at least one card of type c.
func (p Player) HasCard(c cards.CardType) bool {
	return slices.Contains(p.Hand, c)
}

// HandCounts tallies the hand by type.
func (p Player) HandCounts() cards.Counts {
	return cards.CountOf(p.Hand)
}

// removeCard returns a copy of p with one instance of c taken out of the
// hand. The second result is false when c is not in the hand.
func (p Player) removeCard(c cards.CardType) (Player, bool) {
	i := slices.Index(p.Hand, c)
	if i < 0 {
		return p, false
	}
	p.Hand = slices.Delete(slices.Clone(p.Hand), i, i+1)
	p.HandCount = len(p.Hand)
	return p, true
}

func (p Player) eliminate(e Elimination) Player {
	if p.Eliminated {
		return p
	}
	p.Eliminated = true
	p.Elimination = e
	return p
}

func (p Player) clone() Player {
	p.Hand = slices.Clone(p.Hand)
	return p
}
