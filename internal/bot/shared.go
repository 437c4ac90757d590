package bot

import (
	"math/rand/v2"

	"github.com/lox/critterbluff/cards"
	"github.com/lox/critterbluff/internal/game"
)

func pickSeat(rng *rand.Rand, seats []int) int {
	if len(seats) == 0 {
		return game.NoSeat
	}
	return seats[rng.IntN(len(seats))]
}

func pickCard(rng *rand.Rand, hand []cards.CardType) cards.CardType {
	if len(hand) == 0 {
		return cards.NoCard
	}
	return hand[rng.IntN(len(hand))]
}

func randomType(rng *rand.Rand) cards.CardType {
	all := cards.All()
	return all[rng.IntN(len(all))]
}

// otherType returns a random type different from c.
func otherType(rng *rand.Rand, c cards.CardType) cards.CardType {
	all := cards.All()
	for {
		t := all[rng.IntN(len(all))]
		if t != c {
			return t
		}
	}
}

// mostHeld returns the type the hand holds most of, breaking ties by order.
func mostHeld(hand []cards.CardType) cards.CardType {
	c, n := cards.CountOf(hand).Max()
	if n == 0 {
		return cards.NoCard
	}
	return c
}

// wouldEliminate reports whether taking one more c face-up eliminates a
// player with the given open cards.
func wouldEliminate(open cards.Counts, c cards.CardType) bool {
	return game.CheckElimination(open.Add(c, 1)).Eliminated
}

// mostExposed returns the seat among seats with the most open cards of c.
// Ties go to the seat nearest elimination by distinct types.
func mostExposed(v game.View, seats []int, c cards.CardType) int {
	best := game.NoSeat
	for _, s := range seats {
		if best == game.NoSeat {
			best = s
			continue
		}
		a, b := v.Players[s].OpenCards, v.Players[best].OpenCards
		if a.Get(c) > b.Get(c) || (a.Get(c) == b.Get(c) && a.Distinct() > b.Distinct()) {
			best = s
		}
	}
	return best
}

// unseen counts cards of each type the viewer has not seen: the full deck
// minus its own hand, every open card, and the card it knows about.
func unseen(v game.View) cards.Counts {
	var n cards.Counts
	for _, c := range cards.All() {
		n = n.Add(c, cards.CopiesPerType)
	}
	for _, c := range v.Hand {
		n = n.Add(c, -1)
	}
	for _, p := range v.Players {
		for _, c := range cards.All() {
			n = n.Add(c, -p.OpenCards.Get(c))
		}
	}
	if v.Turn != nil && v.Turn.KnownCard.Valid() {
		n = n.Add(v.Turn.KnownCard, -1)
	}
	return n
}

// fallbackQuestion is a legal question for any view where the viewer is
// the questioner and holds at least one card.
func fallbackQuestion(rng *rand.Rand, v game.View) Question {
	card := pickCard(rng, v.Hand)
	return Question{
		Card:      card,
		Target:    pickSeat(rng, v.Opponents()),
		Declared:  card,
		Reasoning: "fallback",
	}
}

func fallbackPass(rng *rand.Rand, v game.View) Pass {
	return Pass{
		Target:    pickSeat(rng, v.PassTargets),
		Declared:  randomType(rng),
		Reasoning: "fallback",
	}
}
