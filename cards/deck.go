package cards

import (
	"fmt"
	rand "math/rand/v2"
)

const (
	// CopiesPerType is how many cards of each type a full deck holds.
	CopiesPerType = 8
	// DeckSize is the size of a full deck.
	DeckSize = NumTypes * CopiesPerType
	// TwoPlayerExclusion is how many cards are set aside in a two-player game.
	TwoPlayerExclusion = 10
)

// NewDeck returns a full 64-card deck, eight copies of each type, shuffled
// with rng.
func NewDeck(rng *rand.Rand) []CardType {
	if rng == nil {
		panic("rng is required for deck creation")
	}

	deck := make([]CardType, 0, DeckSize)
	for _, c := range All() {
		for range CopiesPerType {
			deck = append(deck, c)
		}
	}

	Shuffle(deck, rng)
	return deck
}

// Shuffle shuffles deck in place using Fisher-Yates
func Shuffle(deck []CardType, rng *rand.Rand) {
	for i := len(deck) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
}

// ExcludeForTwoPlayers reshuffles a copy of deck and sets aside the first
// TwoPlayerExclusion cards. The input slice is not modified.
func ExcludeForTwoPlayers(deck []CardType, rng *rand.Rand) (remaining, excluded []CardType) {
	shuffled := append([]CardType(nil), deck...)
	Shuffle(shuffled, rng)

	n := min(TwoPlayerExclusion, len(shuffled))
	excluded = shuffled[:n:n]
	remaining = shuffled[n:]
	return remaining, excluded
}

// Deal splits deck into playerCount contiguous hands of equal size.
// Cards left over by the integer division are returned as remainder and
// are never dealt.
func Deal(deck []CardType, playerCount int) (hands [][]CardType, remainder []CardType, err error) {
	if playerCount <= 0 {
		return nil, nil, fmt.Errorf("cannot deal to %d players", playerCount)
	}

	perPlayer := len(deck) / playerCount
	hands = make([][]CardType, playerCount)
	for i := range hands {
		hand := make([]CardType, perPlayer)
		copy(hand, deck[i*perPlayer:(i+1)*perPlayer])
		hands[i] = hand
	}
	remainder = append([]CardType{}, deck[playerCount*perPlayer:]...)
	return hands, remainder, nil
}
