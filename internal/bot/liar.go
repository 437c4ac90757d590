package bot

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/critterbluff/cards"
	"github.com/lox/critterbluff/internal/game"
)

// LiarBot never declares the real card and never believes a claim.
type LiarBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewLiarBot creates a new LiarBot
func NewLiarBot(rng *rand.Rand, logger *log.Logger) *LiarBot {
	return &LiarBot{rng: rng, logger: logger.WithPrefix("liar")}
}

func (l *LiarBot) Name() string { return "liar" }

// ChooseReveal shows a card it holds few of, keeping its majority hidden.
func (l *LiarBot) ChooseReveal(v game.View) cards.CardType {
	held := cards.CountOf(v.Hand)
	best, bestCount := cards.NoCard, 0
	for _, c := range cards.All() {
		if n := held.Get(c); n > 0 && (best == cards.NoCard || n < bestCount) {
			best, bestCount = c, n
		}
	}
	return best
}

func (l *LiarBot) ChooseQuestion(v game.View) Question {
	card := pickCard(l.rng, v.Hand)
	if card == cards.NoCard {
		return fallbackQuestion(l.rng, v)
	}
	target := pickSeat(l.rng, v.Opponents())
	if target == game.NoSeat {
		return fallbackQuestion(l.rng, v)
	}

	// Claim whatever the target is most afraid of, as long as it is a lie.
	declared, n := v.Players[target].OpenCards.Max()
	if n == 0 || declared == card {
		declared = otherType(l.rng, card)
	}

	l.logger.Debug("question", "card", card, "declared", declared, "target", target)
	return Question{Card: card, Target: target, Declared: declared, Reasoning: "liar-bot bluffs"}
}

func (l *LiarBot) Respond(v game.View) Response {
	return Response{Believe: false, Reasoning: "liar-bot assumes everyone lies"}
}

func (l *LiarBot) ChoosePass(v game.View) Pass {
	return Pass{
		Target:    pickSeat(l.rng, v.PassTargets),
		Declared:  otherType(l.rng, v.Turn.KnownCard),
		Reasoning: "liar-bot passes a lie",
	}
}
