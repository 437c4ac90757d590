// Package record keeps a complete, replayable account of one game and
// stores it as TOML.
package record

import "time"

// Variants of the end-of-game rule.
const (
	VariantFirstElimination   = "first-elimination"
	VariantLastPlayerStanding = "last-player-standing"
)

// GameRecord is one game from deal to outcome. Seats are zero-based; in
// action strings seat n is written "s<n>".
type GameRecord struct {
	Game     string    `toml:"game"`
	Variant  string    `toml:"variant"`
	Seed     int64     `toml:"seed,omitempty"`
	Started  time.Time `toml:"started"`
	Finished time.Time `toml:"finished,omitempty"`

	// Excluded holds the cards set aside in two-player games; Undealt the
	// remainder that did not divide evenly.
	Excluded []string `toml:"excluded,omitempty"`
	Undealt  []string `toml:"undealt,omitempty"`

	Players      []PlayerRecord      `toml:"players"`
	Turns        []TurnRecord        `toml:"turns,omitempty"`
	Eliminations []EliminationRecord `toml:"eliminations,omitempty"`
	Outcome      Outcome             `toml:"outcome"`
}

// PlayerRecord describes one seat.
type PlayerRecord struct {
	Seat     int      `toml:"seat"`
	ID       string   `toml:"id"`
	Name     string   `toml:"name"`
	Strategy string   `toml:"strategy,omitempty"`
	Dealt    []string `toml:"dealt"`
	Revealed string   `toml:"revealed,omitempty"`

	// Final state, filled in when the game ends.
	HandLeft   int            `toml:"hand_left"`
	Open       map[string]int `toml:"open,omitempty"`
	Eliminated bool           `toml:"eliminated,omitempty"`
}

// TurnRecord is a judged turn. Actions lists claims in order, for example
// "s0 ask s2 frog", "s2 pass s1 bat", "s1 doubt".
type TurnRecord struct {
	Number      int      `toml:"number"`
	Questioner  int      `toml:"questioner"`
	Card        string   `toml:"card"`
	Actions     []string `toml:"actions"`
	Judge       int      `toml:"judge"`
	Believed    bool     `toml:"believed"`
	Success     bool     `toml:"success"`
	Recipient   int      `toml:"recipient"`
	Elimination string   `toml:"elimination,omitempty"`
}

// EliminationRecord notes when and why a player left the game. Turn counts
// the judged turns so far, including the one that caused it.
type EliminationRecord struct {
	Turn   int    `toml:"turn"`
	Seat   int    `toml:"seat"`
	Reason string `toml:"reason"`
	Type   string `toml:"type,omitempty"`
}

// Outcome summarises how the game ended.
type Outcome struct {
	Loser     int    `toml:"loser"`
	LoserName string `toml:"loser_name"`
	Reason    string `toml:"reason"`
	Turns     int    `toml:"turns"`
	Survivors []int  `toml:"survivors"`
}
