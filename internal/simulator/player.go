package simulator

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/lox/critterbluff/internal/bot"
	"github.com/lox/critterbluff/internal/game"
	"github.com/lox/critterbluff/internal/statistics"
	"github.com/rs/zerolog"
)

// player drives one session with one agent per seat.
type player struct {
	sess     *game.Session
	agents   []bot.Agent
	rng      *rand.Rand
	maxTurns int
	logger   zerolog.Logger
}

func (p *player) play(ctx context.Context, result *statistics.GameResult) error {
	if err := p.openingReveals(); err != nil {
		return err
	}

	// Whoever starts is drawn at random, as players would at the table.
	first := p.rng.IntN(len(p.agents))
	if err := p.sess.SelectQuestioner(first); err != nil {
		return err
	}

	for turns := 0; ; turns++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		st := p.sess.Snapshot()
		if st.Over {
			return nil
		}
		if turns >= p.maxTurns {
			return fmt.Errorf("%w: %d turns", ErrTurnLimit, turns)
		}
		if err := p.turn(st.CurrentPlayer, result); err != nil {
			return err
		}
	}
}

func (p *player) openingReveals() error {
	for seat, agent := range p.agents {
		v, err := p.sess.View(seat)
		if err != nil {
			return err
		}
		card := agent.ChooseReveal(v)
		if err := p.sess.RevealInitialCard(seat, card); err != nil {
			return fmt.Errorf("seat %d (%s) reveal %s: %w", seat, agent.Name(), card, err)
		}
	}
	return p.sess.CompleteInitialHand()
}

// turn plays one turn for questioner, from StartTurn through judgment.
func (p *player) turn(questioner int, result *statistics.GameResult) error {
	if err := p.sess.StartTurn(questioner); err != nil {
		return fmt.Errorf("start turn for seat %d: %w", questioner, err)
	}
	if p.sess.Snapshot().Turn == nil {
		// Empty hand: eliminated without a turn.
		return nil
	}

	v, err := p.sess.View(questioner)
	if err != nil {
		return err
	}
	agent := p.agents[questioner]
	q := agent.ChooseQuestion(v)
	if err := p.sess.Question(q.Card, q.Target, q.Declared); err != nil {
		return fmt.Errorf("seat %d (%s) question: %w", questioner, agent.Name(), err)
	}
	p.logger.Debug().
		Int("seat", questioner).
		Str("strategy", agent.Name()).
		Stringer("card", q.Card).
		Stringer("declared", q.Declared).
		Int("target", q.Target).
		Str("reasoning", q.Reasoning).
		Msg("Question")

	passes := 0
	for {
		answerer := p.sess.Snapshot().Turn.Answerer
		agent := p.agents[answerer]
		v, err := p.sess.View(answerer)
		if err != nil {
			return err
		}

		r := agent.Respond(v)
		if r.Pass && p.sess.CanPassToOthers() {
			peek, err := p.sess.PeekView()
			if err != nil {
				return err
			}
			pass := agent.ChoosePass(peek)
			if err := p.sess.PassCard(pass.Target, pass.Declared); err != nil {
				return fmt.Errorf("seat %d (%s) pass: %w", answerer, agent.Name(), err)
			}
			passes++
			continue
		}

		j, err := p.sess.MakeJudgment(r.Believe)
		if err != nil {
			return fmt.Errorf("seat %d (%s) judgment: %w", answerer, agent.Name(), err)
		}
		result.Judgments++
		if j.Success {
			result.Successes++
		}
		result.PassChains = append(result.PassChains, passes)

		p.logger.Debug().
			Int("judge", answerer).
			Bool("believed", j.Believed).
			Bool("claim_true", j.ClaimTrue).
			Int("recipient", j.Recipient).
			Int("passes", passes).
			Str("reasoning", r.Reasoning).
			Msg("Judgment")
		return nil
	}
}
