// Package game implements the rules engine for critterbluff, a bluffing
// card game where players hand each other face-down creature cards while
// declaring (truthfully or not) what they are.
//
// The engine is a set of state transitions over a State value. Every
// transition takes a State and returns a new one; the input is never
// modified. A rejected call returns the input unchanged together with an
// error wrapping one of the sentinel errors in errors.go, so callers can
// tell "nothing happened" apart from a successful transition:
//
//	s, err := engine.SelectCard(s, cards.Bat)
//	if errors.Is(err, game.ErrCardNotInHand) {
//	    // s is the state you passed in
//	}
//
// # Basic Usage
//
//	rng := randutil.New(42)
//	e := game.NewEngine(rng)
//	s, err := e.InitializeGame(3, []string{"Alice", "Bob", "Carol"})
//	// every player reveals one card, then someone is chosen to start
//	s, err = e.StartTurn(s, s.CurrentPlayer)
//	s, err = e.Question(s, cards.Bat, 1, cards.Spider)
//	s, j, err := e.MakeJudgment(s, true)
//
// # Turns
//
// A turn starts when the questioner picks a card from their hand, picks an
// opponent and declares a type. The holder of the card then either judges
// the claim (MakeJudgment) or passes it on with a new claim (PassCard) to a
// player who has not yet held it this turn. The judgment decides who keeps
// the card face-up, and that player starts the next turn.
//
// # Sessions
//
// Session wraps an Engine and exactly one State behind a mutex. It is the
// single source of truth for drivers such as bots and the simulator, and
// publishes events on an EventBus after every successful transition.
package game
