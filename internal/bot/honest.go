package bot

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/critterbluff/cards"
	"github.com/lox/critterbluff/internal/game"
)

// HonestBot always tells the truth and always believes what it is told.
// It tries to unload the type it holds most of onto whoever already shows
// the most of it.
type HonestBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewHonestBot creates a new HonestBot
func NewHonestBot(rng *rand.Rand, logger *log.Logger) *HonestBot {
	return &HonestBot{rng: rng, logger: logger.WithPrefix("honest")}
}

func (h *HonestBot) Name() string { return "honest" }

func (h *HonestBot) ChooseReveal(v game.View) cards.CardType {
	return mostHeld(v.Hand)
}

func (h *HonestBot) ChooseQuestion(v game.View) Question {
	thinking := &ThinkingContext{}

	card := mostHeld(v.Hand)
	if card == cards.NoCard {
		return fallbackQuestion(h.rng, v)
	}
	thinking.AddThought("Holding %d %s", cards.CountOf(v.Hand).Get(card), card)

	target := mostExposed(v, v.Opponents(), card)
	if target == game.NoSeat {
		return fallbackQuestion(h.rng, v)
	}
	thinking.AddThought("%s already shows %d", v.Players[target].Name, v.Players[target].OpenCards.Get(card))

	h.logger.Debug("question", "card", card, "target", target, "reasoning", thinking.GetThoughts())
	return Question{Card: card, Target: target, Declared: card, Reasoning: thinking.GetThoughts()}
}

func (h *HonestBot) Respond(v game.View) Response {
	return Response{Believe: true, Reasoning: "honest-bot takes everyone at their word"}
}

func (h *HonestBot) ChoosePass(v game.View) Pass {
	known := v.Turn.KnownCard
	target := mostExposed(v, v.PassTargets, known)
	if target == game.NoSeat {
		return fallbackPass(h.rng, v)
	}
	return Pass{Target: target, Declared: known, Reasoning: "honest-bot passes the truth along"}
}
