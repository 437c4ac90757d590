package game

import (
	"fmt"
	"slices"

	"github.com/lox/critterbluff/cards"
)

// Judgment describes how a turn was resolved.
type Judgment struct {
	TurnNumber int
	Questioner int
	Answerer   int
	Card       cards.CardType
	DeclaredAs cards.CardType
	Passes     int

	Believed  bool
	ClaimTrue bool
	// Success is true when the judge's belief matched the real card.
	Success bool
	// Recipient keeps the card face-up and questions next.
	Recipient   int
	Elimination Elimination
}

// StartTurn opens a turn for questioner. A questioner with an empty hand is
// eliminated on the spot instead and no turn is created.
func (e *Engine) StartTurn(s State, questioner int) (State, error) {
	if s.Over {
		return s, ErrGameOver
	}
	if s.Turn != nil {
		return s, ErrTurnInProgress
	}
	if !s.validSeat(questioner) {
		return s, fmt.Errorf("%w: %d", ErrInvalidSeat, questioner)
	}
	if s.Players[questioner].Eliminated {
		return s, fmt.Errorf("%w: seat %d", ErrPlayerEliminated, questioner)
	}

	next := s.Clone()
	next.CurrentPlayer = questioner

	if s.Players[questioner].HandCount == 0 {
		elim := Elimination{Eliminated: true, Reason: ReasonEmptyHand}
		next.Players[questioner] = next.Players[questioner].eliminate(elim)
		e.logger.Info().
			Str("game_id", s.ID).
			Int("seat", questioner).
			Str("player", s.Players[questioner].Name).
			Stringer("reason", elim.Reason).
			Msg("Player eliminated")
		return e.afterElimination(next, questioner), nil
	}

	next.Turn = &Turn{
		Questioner:    questioner,
		Answerer:      questioner,
		PlayersInTurn: []int{questioner},
	}
	next.Phase = PhasePlaying

	e.logger.Debug().
		Str("game_id", s.ID).
		Int("turn", s.TurnNumber).
		Int("questioner", questioner).
		Msg("Turn started")
	return next, nil
}

// openTurn checks the turn exists and is still being set up by the
// questioner.
func openTurn(s State) error {
	if s.Over {
		return ErrGameOver
	}
	if s.Turn == nil {
		return ErrNoTurn
	}
	if s.Phase != PhasePlaying {
		return fmt.Errorf("%w: turn setup during %s", ErrWrongPhase, s.Phase)
	}
	return nil
}

// SelectCard takes card out of the questioner's hand. The card is frozen for
// the rest of the turn; later claims may lie about it but judgment always
// checks against it.
func (e *Engine) SelectCard(s State, card cards.CardType) (State, error) {
	if err := openTurn(s); err != nil {
		return s, err
	}
	if !card.Valid() {
		return s, fmt.Errorf("%w: %d", ErrInvalidCard, card)
	}
	if s.Turn.Card != cards.NoCard {
		return s, ErrCardAlreadySelected
	}

	q := s.Turn.Questioner
	p, ok := s.Players[q].removeCard(card)
	if !ok {
		return s, fmt.Errorf("%w: seat %d has no %s", ErrCardNotInHand, q, card)
	}

	next := s.Clone()
	next.Players[q] = p
	next.Turn.Card = card
	return next, nil
}

// SelectOpponent chooses who the questioner hands the card to. It may be
// called again to change the choice until a declaration is made.
func (e *Engine) SelectOpponent(s State, target int) (State, error) {
	if err := openTurn(s); err != nil {
		return s, err
	}
	if !s.validSeat(target) {
		return s, fmt.Errorf("%w: %d", ErrInvalidSeat, target)
	}
	if target == s.Turn.Questioner {
		return s, ErrSelfTarget
	}
	if s.Players[target].Eliminated {
		return s, fmt.Errorf("%w: seat %d", ErrPlayerEliminated, target)
	}

	next := s.Clone()
	next.Turn.Answerer = target
	return next, nil
}

// SelectDeclaration states what the card is claimed to be. Any type may be
// claimed. The turn moves to PhaseJudging.
func (e *Engine) SelectDeclaration(s State, declared cards.CardType) (State, error) {
	if err := openTurn(s); err != nil {
		return s, err
	}
	if !declared.Valid() {
		return s, fmt.Errorf("%w: %d", ErrInvalidCard, declared)
	}
	if s.Turn.Card == cards.NoCard {
		return s, ErrNoCardSelected
	}
	if !s.Turn.HasOpponent() {
		return s, ErrNoOpponent
	}

	next := s.Clone()
	t := next.Turn
	t.DeclaredAs = declared
	t.History = append(t.History, TurnAction{
		Player:   t.Questioner,
		Kind:     ActionQuestion,
		To:       t.Answerer,
		Declared: declared,
		At:       e.clock.Now(),
	})
	next.Phase = PhaseJudging

	e.logger.Debug().
		Str("game_id", s.ID).
		Int("questioner", t.Questioner).
		Int("answerer", t.Answerer).
		Stringer("declared", declared).
		Msg("Card declared")
	return next, nil
}

// Question selects card, target and declaration in one step. Nothing is
// applied unless all three succeed.
func (e *Engine) Question(s State, card cards.CardType, target int, declared cards.CardType) (State, error) {
	next, err := e.SelectCard(s, card)
	if err != nil {
		return s, err
	}
	if next, err = e.SelectOpponent(next, target); err != nil {
		return s, err
	}
	if next, err = e.SelectDeclaration(next, declared); err != nil {
		return s, err
	}
	return next, nil
}

// PassTargets returns the seats the current answerer may forward the card
// to: not eliminated, not the answerer, and not anyone who already held it.
func PassTargets(s State) []int {
	if s.Over || s.Turn == nil || s.Phase != PhaseJudging {
		return nil
	}
	var targets []int
	for seat, p := range s.Players {
		if p.Eliminated || seat == s.Turn.Answerer || s.Turn.Held(seat) {
			continue
		}
		targets = append(targets, seat)
	}
	return targets
}

// CanPassToOthers reports whether the answerer has anyone to pass to.
func CanPassToOthers(s State) bool {
	return len(PassTargets(s)) > 0
}

// PassCard forwards the card from the current answerer to next with a new
// claim, instead of judging.
func (e *Engine) PassCard(s State, nextSeat int, declared cards.CardType) (State, error) {
	if s.Over {
		return s, ErrGameOver
	}
	if s.Turn == nil {
		return s, ErrNoTurn
	}
	if s.Phase != PhaseJudging {
		return s, fmt.Errorf("%w: pass during %s", ErrWrongPhase, s.Phase)
	}
	if !s.validSeat(nextSeat) {
		return s, fmt.Errorf("%w: %d", ErrInvalidSeat, nextSeat)
	}
	if nextSeat == s.Turn.Answerer {
		return s, ErrSelfTarget
	}
	if s.Turn.Held(nextSeat) {
		return s, fmt.Errorf("%w: seat %d", ErrAlreadyInTurn, nextSeat)
	}
	if s.Players[nextSeat].Eliminated {
		return s, fmt.Errorf("%w: seat %d", ErrPlayerEliminated, nextSeat)
	}
	if !declared.Valid() {
		return s, fmt.Errorf("%w: %d", ErrInvalidCard, declared)
	}

	next := s.Clone()
	t := next.Turn
	from := t.Answerer
	t.PlayersInTurn = append(t.PlayersInTurn, from)
	t.Answerer = nextSeat
	t.DeclaredAs = declared
	t.History = append(t.History, TurnAction{
		Player:   from,
		Kind:     ActionPass,
		To:       nextSeat,
		Declared: declared,
		At:       e.clock.Now(),
	})

	e.logger.Debug().
		Str("game_id", s.ID).
		Int("from", from).
		Int("to", nextSeat).
		Stringer("declared", declared).
		Int("chain", len(t.PlayersInTurn)).
		Msg("Card passed")
	return next, nil
}

// MakeJudgment resolves the turn. The judge succeeds when their belief
// matches the truth. On success the questioner keeps the card face-up, on
// failure the answerer does. Whoever keeps it questions next.
//
//	believe + true claim  -> questioner
//	believe + false claim -> answerer
//	doubt   + true claim  -> answerer
//	doubt   + false claim -> questioner
func (e *Engine) MakeJudgment(s State, believes bool) (State, Judgment, error) {
	if s.Over {
		return s, Judgment{}, ErrGameOver
	}
	if s.Turn == nil {
		return s, Judgment{}, ErrNoTurn
	}
	t := s.Turn
	if s.Phase != PhaseJudging || t.Card == cards.NoCard || t.DeclaredAs == cards.NoCard {
		return s, Judgment{}, ErrNoDeclaration
	}

	claimTrue := t.Card == t.DeclaredAs
	success := believes == claimTrue
	recipient := t.Answerer
	if success {
		recipient = t.Questioner
	}

	next := s.Clone()
	p := next.Players[recipient]
	p.OpenCards = p.OpenCards.Add(t.Card, 1)
	elim := CheckPlayerElimination(p)
	if elim.Eliminated {
		p = p.eliminate(elim)
	}
	next.Players[recipient] = p

	j := Judgment{
		TurnNumber:  s.TurnNumber,
		Questioner:  t.Questioner,
		Answerer:    t.Answerer,
		Card:        t.Card,
		DeclaredAs:  t.DeclaredAs,
		Passes:      t.Passes(),
		Believed:    believes,
		ClaimTrue:   claimTrue,
		Success:     success,
		Recipient:   recipient,
		Elimination: elim,
	}

	next.Turn = nil

	e.logger.Debug().
		Str("game_id", s.ID).
		Int("turn", j.TurnNumber).
		Stringer("card", j.Card).
		Stringer("declared", j.DeclaredAs).
		Bool("believed", believes).
		Bool("success", success).
		Int("recipient", recipient).
		Msg("Judgment made")

	if elim.Eliminated {
		e.logger.Info().
			Str("game_id", s.ID).
			Int("seat", recipient).
			Str("player", p.Name).
			Stringer("elimination", elim).
			Msg("Player eliminated")
		next = e.afterElimination(next, recipient)
		if !next.Over {
			next.TurnNumber++
		}
		return next, j, nil
	}

	next.TurnNumber++
	next.CurrentPlayer = recipient
	next.Phase = PhasePlaying
	return next, j, nil
}

// afterElimination decides whether the game ends. By default any
// elimination ends it; with WithLastPlayerStanding play continues from the
// next seat until one player is left.
func (e *Engine) afterElimination(s State, seat int) State {
	s.Turn = nil
	if !e.lastStanding || CheckGameOver(s.Players) || len(s.Survivors()) == 0 {
		s.Phase = PhaseGameOver
		s.Over = true
		s.Loser = seat
		e.logger.Info().
			Str("game_id", s.ID).
			Int("loser", seat).
			Ints("survivors", s.Survivors()).
			Int("turns", s.TurnNumber).
			Msg("Game over")
		return s
	}
	s.CurrentPlayer = s.nextActiveSeat(seat + 1)
	s.Phase = PhasePlaying
	return s
}

// LegalQuestionTargets returns the seats the questioner may hand the card to.
func LegalQuestionTargets(s State) []int {
	if s.Turn == nil {
		return nil
	}
	var targets []int
	for seat, p := range s.Players {
		if seat != s.Turn.Questioner && !p.Eliminated {
			targets = append(targets, seat)
		}
	}
	return slices.Clip(targets)
}
