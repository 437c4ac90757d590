package game

import (
	"sync"

	"github.com/lox/critterbluff/cards"
)

// Session owns the authoritative State of one game. All calls are
// serialised; events are published after the lock is released, so
// subscribers may call back into the session.
type Session struct {
	mu     sync.Mutex
	engine *Engine
	state  State
	bus    *SimpleEventBus
}

// NewSession deals a new game and wraps it in a session. Subscribers added
// later do not see the game_start event; use NewSessionWithBus to observe it.
func NewSession(engine *Engine, playerCount int, names []string) (*Session, error) {
	return NewSessionWithBus(engine, NewEventBus(), playerCount, names)
}

// NewSessionWithBus is like NewSession but publishes on bus, including the
// initial game_start event.
func NewSessionWithBus(engine *Engine, bus *SimpleEventBus, playerCount int, names []string) (*Session, error) {
	state, err := engine.InitializeGame(playerCount, names)
	if err != nil {
		return nil, err
	}
	s := &Session{engine: engine, state: state, bus: bus}

	handCounts := make([]int, len(state.Players))
	playerNames := make([]string, len(state.Players))
	for i, p := range state.Players {
		handCounts[i] = p.HandCount
		playerNames[i] = p.Name
	}
	bus.Publish(GameStartEvent{
		GameID:     state.ID,
		Players:    playerNames,
		HandCounts: handCounts,
		Remainder:  len(state.Deck),
		Excluded:   len(state.Excluded),
		timestamp:  engine.clock.Now(),
	})
	return s, nil
}

// Subscribe registers sub for future events.
func (s *Session) Subscribe(sub EventSubscriber) {
	s.bus.Subscribe(sub)
}

// Unsubscribe removes sub.
func (s *Session) Unsubscribe(sub EventSubscriber) {
	s.bus.Unsubscribe(sub)
}

// Snapshot returns a deep copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// View returns seat's perspective of the current state.
func (s *Session) View(seat int) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ViewFor(s.state, seat)
}

// PeekView returns the answerer's view with the real card revealed.
func (s *Session) PeekView() (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return PeekView(s.state)
}

// PassTargets returns the seats the current answerer may pass to.
func (s *Session) PassTargets() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return PassTargets(s.state)
}

// CanPassToOthers reports whether the answerer may pass.
func (s *Session) CanPassToOthers() bool {
	return len(s.PassTargets()) > 0
}

// apply runs op against the current state. On success the state is
// replaced and the events built from the transition are published.
func (s *Session) apply(action string, op func(State) (State, error), events func(before, after State) []GameEvent) error {
	s.mu.Lock()
	before := s.state
	after, err := op(before)
	if err != nil {
		s.mu.Unlock()
		s.engine.logger.Debug().
			Str("game_id", before.ID).
			Str("action", action).
			Err(err).
			Msg("Action rejected")
		return err
	}
	s.state = after

	var published []GameEvent
	if events != nil {
		published = events(before, after)
	}
	published = append(published, s.outcomeEvents(before, after)...)
	s.mu.Unlock()

	for _, ev := range published {
		s.bus.Publish(ev)
	}
	return nil
}

// outcomeEvents reports eliminations and the end of the game.
func (s *Session) outcomeEvents(before, after State) []GameEvent {
	now := s.engine.clock.Now()
	var events []GameEvent
	for i, p := range after.Players {
		if p.Eliminated && !before.Players[i].Eliminated {
			events = append(events, EliminationEvent{
				Seat:        i,
				Name:        p.Name,
				Elimination: p.Elimination,
				OpenCards:   p.OpenCards,
				timestamp:   now,
			})
		}
	}
	if after.Over && !before.Over {
		events = append(events, GameOverEvent{
			GameID:    after.ID,
			Loser:     after.Loser,
			Survivors: after.Survivors(),
			Turns:     after.TurnNumber,
			timestamp: now,
		})
	}
	return events
}

// RevealInitialCard places one of seat's cards face-up.
func (s *Session) RevealInitialCard(seat int, card cards.CardType) error {
	return s.apply("reveal", func(st State) (State, error) {
		return s.engine.RevealInitialCard(st, seat, card)
	}, func(_, _ State) []GameEvent {
		return []GameEvent{InitialRevealEvent{Seat: seat, Card: card, timestamp: s.engine.clock.Now()}}
	})
}

// CompleteInitialHand moves on to choosing the first questioner.
func (s *Session) CompleteInitialHand() error {
	return s.apply("complete_initial_hand", s.engine.CompleteInitialHand, nil)
}

// SelectQuestioner picks who starts.
func (s *Session) SelectQuestioner(seat int) error {
	return s.apply("select_questioner", func(st State) (State, error) {
		return s.engine.SelectQuestioner(st, seat)
	}, nil)
}

// StartTurn opens a turn for questioner, or eliminates them when their hand
// is empty.
func (s *Session) StartTurn(questioner int) error {
	return s.apply("start_turn", func(st State) (State, error) {
		return s.engine.StartTurn(st, questioner)
	}, func(_, after State) []GameEvent {
		if after.Turn == nil {
			return nil
		}
		return []GameEvent{TurnStartEvent{
			TurnNumber: after.TurnNumber,
			Questioner: questioner,
			HandCount:  after.Players[questioner].HandCount,
			timestamp:  s.engine.clock.Now(),
		}}
	})
}

// SelectCard picks the questioner's card.
func (s *Session) SelectCard(card cards.CardType) error {
	return s.apply("select_card", func(st State) (State, error) {
		return s.engine.SelectCard(st, card)
	}, nil)
}

// SelectOpponent picks who receives the card.
func (s *Session) SelectOpponent(target int) error {
	return s.apply("select_opponent", func(st State) (State, error) {
		return s.engine.SelectOpponent(st, target)
	}, nil)
}

// SelectDeclaration makes the questioner's claim.
func (s *Session) SelectDeclaration(declared cards.CardType) error {
	return s.apply("select_declaration", func(st State) (State, error) {
		return s.engine.SelectDeclaration(st, declared)
	}, questionEvent(s))
}

// Question selects card, opponent and declaration at once.
func (s *Session) Question(card cards.CardType, target int, declared cards.CardType) error {
	return s.apply("question", func(st State) (State, error) {
		return s.engine.Question(st, card, target, declared)
	}, questionEvent(s))
}

func questionEvent(s *Session) func(before, after State) []GameEvent {
	return func(_, after State) []GameEvent {
		t := after.Turn
		return []GameEvent{QuestionEvent{
			TurnNumber: after.TurnNumber,
			Questioner: t.Questioner,
			Answerer:   t.Answerer,
			Declared:   t.DeclaredAs,
			timestamp:  s.engine.clock.Now(),
		}}
	}
}

// PassCard forwards the card to next with a new claim.
func (s *Session) PassCard(next int, declared cards.CardType) error {
	return s.apply("pass", func(st State) (State, error) {
		return s.engine.PassCard(st, next, declared)
	}, func(before, after State) []GameEvent {
		return []GameEvent{PassEvent{
			TurnNumber: after.TurnNumber,
			From:       before.Turn.Answerer,
			To:         next,
			Declared:   declared,
			Chain:      len(after.Turn.PlayersInTurn),
			timestamp:  s.engine.clock.Now(),
		}}
	})
}

// MakeJudgment resolves the turn.
func (s *Session) MakeJudgment(believes bool) (Judgment, error) {
	var j Judgment
	err := s.apply("judge", func(st State) (State, error) {
		next, judgment, err := s.engine.MakeJudgment(st, believes)
		j = judgment
		return next, err
	}, func(_, _ State) []GameEvent {
		return []GameEvent{JudgmentEvent{Judgment: j, timestamp: s.engine.clock.Now()}}
	})
	return j, err
}
