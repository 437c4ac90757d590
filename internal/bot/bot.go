package bot

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/critterbluff/cards"
	"github.com/lox/critterbluff/internal/game"
)

// Question is a questioner's move: the real card, who receives it and what
// it is claimed to be.
type Question struct {
	Card      cards.CardType
	Target    int
	Declared  cards.CardType
	Reasoning string
}

// Response is an answerer's move. When Pass is set the answerer looks at
// the card and forwards it; otherwise Believe is the judgment.
type Response struct {
	Pass      bool
	Believe   bool
	Reasoning string
}

// Pass forwards a peeked card to another player with a new claim.
type Pass struct {
	Target    int
	Declared  cards.CardType
	Reasoning string
}

// Agent decides moves for one seat. Agents only ever see a game.View, never
// another player's hand.
type Agent interface {
	Name() string
	// ChooseReveal picks the card shown during the initial hand.
	ChooseReveal(v game.View) cards.CardType
	ChooseQuestion(v game.View) Question
	Respond(v game.View) Response
	// ChoosePass is called with the peek view, so the real card is known.
	ChoosePass(v game.View) Pass
}

// Closer is implemented by agents holding resources such as a script VM.
type Closer interface {
	Close()
}

// Names lists the built-in strategies accepted by New.
func Names() []string {
	return []string{"random", "honest", "liar", "skeptic"}
}

// LuaPrefix selects a scripted agent, for example "lua:bots/cautious.lua".
const LuaPrefix = "lua:"

// New builds the agent registered under name.
func New(name string, rng *rand.Rand, logger *log.Logger) (Agent, error) {
	if rng == nil {
		return nil, fmt.Errorf("bot %q: rng is required", name)
	}
	if logger == nil {
		logger = log.Default()
	}

	switch n := strings.ToLower(strings.TrimSpace(name)); {
	case n == "random":
		return NewRandomBot(rng, logger), nil
	case n == "honest":
		return NewHonestBot(rng, logger), nil
	case n == "liar":
		return NewLiarBot(rng, logger), nil
	case n == "skeptic":
		return NewSkepticBot(rng, logger), nil
	case strings.HasPrefix(n, LuaPrefix):
		path := strings.TrimSpace(name)[len(LuaPrefix):]
		return NewLuaBotFromFile(path, rng, logger)
	default:
		return nil, fmt.Errorf("unknown strategy %q (known: %s, %s<file>)",
			name, strings.Join(Names(), ", "), LuaPrefix)
	}
}

// Valid reports whether name would be accepted by New without building it.
func Valid(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	return slices.Contains(Names(), n) || (strings.HasPrefix(n, LuaPrefix) && len(n) > len(LuaPrefix))
}

// ThinkingContext accumulates reasoning during a decision
type ThinkingContext struct {
	thoughts []string
}

// AddThought adds a thought to the reasoning
func (tc *ThinkingContext) AddThought(format string, args ...any) {
	tc.thoughts = append(tc.thoughts, fmt.Sprintf(format, args...))
}

// GetThoughts returns the complete stream of thoughts
func (tc *ThinkingContext) GetThoughts() string {
	if len(tc.thoughts) == 0 {
		return "No clear reasoning available"
	}
	return strings.Join(tc.thoughts, ". ")
}
