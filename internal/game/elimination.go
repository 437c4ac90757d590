package game

import (
	"fmt"

	"github.com/lox/critterbluff/cards"
)

// SameTypeLimit is the number of face-up cards of one type that eliminates a
// player.
const SameTypeLimit = 4

// Reason explains why a player was eliminated.
type Reason int

const (
	ReasonNone Reason = iota
	// ReasonSameType: SameTypeLimit face-up cards of a single type.
	ReasonSameType
	// ReasonAllTypes: at least one face-up card of every type.
	ReasonAllTypes
	// ReasonEmptyHand: had to start a turn with no cards in hand.
	ReasonEmptyHand
)

// String returns the string representation of a reason
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonSameType:
		return "same_type"
	case ReasonAllTypes:
		return "all_types"
	case ReasonEmptyHand:
		return "empty_hand"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Elimination is the result of evaluating a player's face-up cards.
// Type is only set for ReasonSameType.
type Elimination struct {
	Eliminated bool
	Reason     Reason
	Type       cards.CardType
}

func (e Elimination) String() string {
	switch {
	case !e.Eliminated:
		return "not eliminated"
	case e.Reason == ReasonSameType:
		return fmt.Sprintf("%s (%s)", e.Reason, e.Type)
	default:
		return e.Reason.String()
	}
}

// CheckElimination evaluates face-up cards only. A count reaching
// SameTypeLimit wins over the all-types rule; when several types qualify the
// lowest ordinal is reported.
func CheckElimination(open cards.Counts) Elimination {
	for _, c := range cards.All() {
		if open.Get(c) >= SameTypeLimit {
			return Elimination{Eliminated: true, Reason: ReasonSameType, Type: c}
		}
	}
	if open.Distinct() >= cards.NumTypes {
		return Elimination{Eliminated: true, Reason: ReasonAllTypes}
	}
	return Elimination{}
}

// CheckPlayerElimination evaluates p's face-up cards. The hand is ignored.
func CheckPlayerElimination(p Player) Elimination {
	return CheckElimination(p.OpenCards)
}
