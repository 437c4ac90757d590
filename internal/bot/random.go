package bot

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/critterbluff/cards"
	"github.com/lox/critterbluff/internal/game"
)

// RandomBot makes uniform random legal moves
type RandomBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandomBot creates a new RandomBot instance
func NewRandomBot(rng *rand.Rand, logger *log.Logger) *RandomBot {
	return &RandomBot{rng: rng, logger: logger.WithPrefix("random")}
}

func (r *RandomBot) Name() string { return "random" }

func (r *RandomBot) ChooseReveal(v game.View) cards.CardType {
	return pickCard(r.rng, v.Hand)
}

func (r *RandomBot) ChooseQuestion(v game.View) Question {
	card := pickCard(r.rng, v.Hand)
	declared := card
	if r.rng.IntN(2) == 0 {
		declared = randomType(r.rng)
	}
	return Question{
		Card:      card,
		Target:    pickSeat(r.rng, v.Opponents()),
		Declared:  declared,
		Reasoning: "random-bot random question",
	}
}

func (r *RandomBot) Respond(v game.View) Response {
	if len(v.PassTargets) > 0 && r.rng.IntN(4) == 0 {
		return Response{Pass: true, Reasoning: "random-bot random pass"}
	}
	return Response{Believe: r.rng.IntN(2) == 0, Reasoning: "random-bot coin flip"}
}

func (r *RandomBot) ChoosePass(v game.View) Pass {
	p := fallbackPass(r.rng, v)
	p.Reasoning = "random-bot random pass"
	return p
}
