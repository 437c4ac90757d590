package game

import (
	"fmt"
	rand "math/rand/v2"
	"strings"

	"github.com/coder/quartz"
	"github.com/lox/critterbluff/cards"
	"github.com/lox/critterbluff/internal/gameid"
	"github.com/rs/zerolog"
)

const (
	MinPlayers = 2
	MaxPlayers = 6
)

// Engine applies the rules. It holds no game state of its own, only the
// collaborators every transition needs, so one Engine can drive any number
// of States as long as calls on the same State are serialised.
type Engine struct {
	rng          *rand.Rand
	clock        quartz.Clock
	logger       zerolog.Logger
	ids          *gameid.Generator
	deck         []cards.CardType
	lastStanding bool
}

// NewEngine creates an engine. The RNG is required so that shuffles are
// explicit and tests can be deterministic.
//
//	e := NewEngine(randutil.New(42),
//	    WithClock(quartz.NewMock(t)),
//	    WithLastPlayerStanding())
func NewEngine(rng *rand.Rand, opts ...Option) *Engine {
	if rng == nil {
		panic("rng is required for engine creation")
	}

	e := &Engine{
		rng:    rng,
		clock:  quartz.NewReal(),
		logger: zerolog.Nop(),
		ids:    gameid.NewGenerator(nil),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// LastPlayerStanding reports whether the engine plays on after eliminations.
func (e *Engine) LastPlayerStanding() bool {
	return e.lastStanding
}

// DefaultNames returns "Player 1" .. "Player n".
func DefaultNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("Player %d", i+1)
	}
	return names
}

// validateNames trims names and checks they are non-blank and unique,
// ignoring case. Empty input means default names.
func validateNames(playerCount int, names []string) ([]string, error) {
	if len(names) == 0 {
		return DefaultNames(playerCount), nil
	}
	if len(names) != playerCount {
		return nil, fmt.Errorf("%w: got %d names for %d players", ErrInvalidNames, len(names), playerCount)
	}

	seen := make(map[string]bool, len(names))
	trimmed := make([]string, len(names))
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: name %d is blank", ErrInvalidNames, i+1)
		}
		key := strings.ToLower(name)
		if seen[key] {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidNames, name)
		}
		seen[key] = true
		trimmed[i] = name
	}
	return trimmed, nil
}

// InitializeGame builds, shuffles and deals a new game. Two-player games set
// TwoPlayerExclusion cards aside first. Cards that do not divide evenly stay
// in State.Deck. The game starts in PhaseInitialHand with seat 0 as a
// provisional questioner.
func (e *Engine) InitializeGame(playerCount int, names []string) (State, error) {
	if playerCount < MinPlayers || playerCount > MaxPlayers {
		return State{}, fmt.Errorf("%w: %d (must be %d-%d)", ErrInvalidPlayerCount, playerCount, MinPlayers, MaxPlayers)
	}
	names, err := validateNames(playerCount, names)
	if err != nil {
		return State{}, err
	}

	deck := e.deck
	if deck == nil {
		deck = cards.NewDeck(e.rng)
	}
	total := len(deck)

	var excluded []cards.CardType
	if playerCount == 2 {
		deck, excluded = cards.ExcludeForTwoPlayers(deck, e.rng)
	}

	hands, remainder, err := cards.Deal(deck, playerCount)
	if err != nil {
		return State{}, err
	}

	players := make([]Player, playerCount)
	for i := range players {
		players[i] = Player{
			ID:        e.ids.PlayerID(),
			Name:      names[i],
			Hand:      hands[i],
			HandCount: len(hands[i]),
		}
	}

	s := State{
		ID:            e.ids.Generate(),
		Players:       players,
		Deck:          remainder,
		Excluded:      excluded,
		TotalCards:    total,
		Phase:         PhaseInitialHand,
		PlayerCount:   playerCount,
		CurrentPlayer: 0,
		Revealed:      make([]bool, playerCount),
		Loser:         NoSeat,
	}

	e.logger.Debug().
		Str("game_id", s.ID).
		Int("players", playerCount).
		Int("per_player", len(hands[0])).
		Int("remainder", len(remainder)).
		Int("excluded", len(excluded)).
		Msg("Dealt new game")

	return s, nil
}

// RevealInitialCard moves one card from seat's hand to their own face-up
// cards. Each player does this exactly once during PhaseInitialHand.
func (e *Engine) RevealInitialCard(s State, seat int, card cards.CardType) (State, error) {
	if s.Phase != PhaseInitialHand {
		return s, fmt.Errorf("%w: reveal during %s", ErrWrongPhase, s.Phase)
	}
	if !s.validSeat(seat) {
		return s, fmt.Errorf("%w: %d", ErrInvalidSeat, seat)
	}
	if !card.Valid() {
		return s, fmt.Errorf("%w: %d", ErrInvalidCard, card)
	}
	if s.Revealed[seat] {
		return s, fmt.Errorf("%w: seat %d", ErrAlreadyRevealed, seat)
	}

	p, ok := s.Players[seat].removeCard(card)
	if !ok {
		return s, fmt.Errorf("%w: seat %d has no %s", ErrCardNotInHand, seat, card)
	}
	p.OpenCards = p.OpenCards.Add(card, 1)

	next := s.Clone()
	next.Players[seat] = p
	next.Revealed[seat] = true
	return next, nil
}

// CompleteInitialHand ends the initial-hand review once every player has
// revealed a card.
func (e *Engine) CompleteInitialHand(s State) (State, error) {
	if s.Phase != PhaseInitialHand {
		return s, fmt.Errorf("%w: complete initial hand during %s", ErrWrongPhase, s.Phase)
	}
	for seat, done := range s.Revealed {
		if !done {
			return s, fmt.Errorf("%w: seat %d", ErrRevealPending, seat)
		}
	}

	next := s.Clone()
	next.Phase = PhaseTurnSelection
	return next, nil
}

// SelectQuestioner picks who starts the first turn.
func (e *Engine) SelectQuestioner(s State, seat int) (State, error) {
	if s.Phase != PhaseTurnSelection {
		return s, fmt.Errorf("%w: select questioner during %s", ErrWrongPhase, s.Phase)
	}
	if !s.validSeat(seat) {
		return s, fmt.Errorf("%w: %d", ErrInvalidSeat, seat)
	}
	if s.Players[seat].Eliminated {
		return s, fmt.Errorf("%w: seat %d", ErrPlayerEliminated, seat)
	}

	next := s.Clone()
	next.CurrentPlayer = seat
	next.Phase = PhasePlaying
	return next, nil
}
