package game

import (
	"github.com/coder/quartz"
	"github.com/lox/critterbluff/cards"
	"github.com/lox/critterbluff/internal/gameid"
	"github.com/rs/zerolog"
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithClock sets the clock used to timestamp turn history and events.
func WithClock(clock quartz.Clock) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithDeck makes InitializeGame deal from deck instead of a freshly shuffled
// one. The two-player exclusion still applies.
func WithDeck(deck []cards.CardType) Option {
	return func(e *Engine) {
		e.deck = append([]cards.CardType(nil), deck...)
	}
}

// WithIDGenerator sets the generator used for game IDs.
func WithIDGenerator(g *gameid.Generator) Option {
	return func(e *Engine) {
		e.ids = g
	}
}

// WithLastPlayerStanding keeps the game going after an elimination. It ends
// only when a single player is left.
func WithLastPlayerStanding() Option {
	return func(e *Engine) {
		e.lastStanding = true
	}
}
