package bot

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/critterbluff/cards"
	"github.com/lox/critterbluff/internal/game"
)

// SkepticBot judges claims by counting cards. A claim is believed only when
// the declared type is at least as plentiful among unseen cards as an
// average type. When the card could knock it out it passes instead, if it
// can.
type SkepticBot struct {
	rng    *rand.Rand
	logger *log.Logger

	// truthRate is how often it tells the truth when questioning.
	truthRate float64
}

// NewSkepticBot creates a new SkepticBot
func NewSkepticBot(rng *rand.Rand, logger *log.Logger) *SkepticBot {
	return &SkepticBot{rng: rng, logger: logger.WithPrefix("skeptic"), truthRate: 0.5}
}

func (s *SkepticBot) Name() string { return "skeptic" }

// ChooseReveal shows the type it holds most of, so claims of that type
// sound plausible later.
func (s *SkepticBot) ChooseReveal(v game.View) cards.CardType {
	return mostHeld(v.Hand)
}

func (s *SkepticBot) ChooseQuestion(v game.View) Question {
	thinking := &ThinkingContext{}

	opponents := v.Opponents()
	if len(opponents) == 0 || len(v.Hand) == 0 {
		return fallbackQuestion(s.rng, v)
	}

	// Look for a card in hand that would eliminate someone outright.
	held := cards.CountOf(v.Hand)
	for _, c := range cards.All() {
		if held.Get(c) == 0 {
			continue
		}
		for _, seat := range opponents {
			if wouldEliminate(v.Players[seat].OpenCards, c) {
				thinking.AddThought("One more %s would finish %s", c, v.Players[seat].Name)
				q := Question{Card: c, Target: seat, Declared: s.declare(c), Reasoning: thinking.GetThoughts()}
				s.logger.Debug("question", "card", c, "target", seat, "declared", q.Declared, "reasoning", q.Reasoning)
				return q
			}
		}
	}

	card := mostHeld(v.Hand)
	target := mostExposed(v, opponents, card)
	thinking.AddThought("Unloading %s on %s", card, v.Players[target].Name)

	q := Question{Card: card, Target: target, Declared: s.declare(card), Reasoning: thinking.GetThoughts()}
	s.logger.Debug("question", "card", card, "target", target, "declared", q.Declared, "reasoning", q.Reasoning)
	return q
}

func (s *SkepticBot) declare(card cards.CardType) cards.CardType {
	if s.rng.Float64() < s.truthRate {
		return card
	}
	return otherType(s.rng, card)
}

func (s *SkepticBot) Respond(v game.View) Response {
	thinking := &ThinkingContext{}
	declared := v.Turn.DeclaredAs

	me := v.Me()
	if len(v.PassTargets) > 0 && wouldEliminate(me.OpenCards, declared) {
		thinking.AddThought("A wrong call on %s would eliminate me, passing", declared)
		s.logger.Debug("respond", "declared", declared, "pass", true, "reasoning", thinking.GetThoughts())
		return Response{Pass: true, Reasoning: thinking.GetThoughts()}
	}

	believe := s.plausible(v, declared, thinking)
	s.logger.Debug("respond", "declared", declared, "believe", believe, "reasoning", thinking.GetThoughts())
	return Response{Believe: believe, Reasoning: thinking.GetThoughts()}
}

// plausible compares how many unseen cards of the declared type remain with
// the average over all types.
func (s *SkepticBot) plausible(v game.View, declared cards.CardType, thinking *ThinkingContext) bool {
	left := unseen(v)
	total := left.Total()
	if total <= 0 {
		thinking.AddThought("No unseen cards left to reason about")
		return s.rng.IntN(2) == 0
	}
	n := left.Get(declared)
	if n <= 0 {
		thinking.AddThought("Every %s is accounted for, it must be a lie", declared)
		return false
	}
	thinking.AddThought("%d of %d unseen cards are %s", n, total, declared)
	return n*cards.NumTypes >= total
}

func (s *SkepticBot) ChoosePass(v game.View) Pass {
	known := v.Turn.KnownCard
	if len(v.PassTargets) == 0 {
		return fallbackPass(s.rng, v)
	}

	for _, seat := range v.PassTargets {
		if wouldEliminate(v.Players[seat].OpenCards, known) {
			return Pass{Target: seat, Declared: s.declare(known), Reasoning: "skeptic-bot passes a finishing card"}
		}
	}
	target := mostExposed(v, v.PassTargets, known)
	return Pass{Target: target, Declared: s.declare(known), Reasoning: "skeptic-bot passes to the most exposed player"}
}
