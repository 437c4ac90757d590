package game

import "fmt"

// Phase is the coarse state of a game.
type Phase int

const (
	// PhaseInitialHand is set after the deal. Each player privately reviews
	// their hand and places one card face-up.
	PhaseInitialHand Phase = iota
	// PhaseTurnSelection waits for the first questioner to be chosen.
	PhaseTurnSelection
	// PhasePlaying means a questioner is choosing a card, opponent and claim,
	// or the next turn is ready to start.
	PhasePlaying
	// PhaseJudging means a claim is on the table and the answerer must judge
	// or pass.
	PhaseJudging
	// PhaseGameOver is terminal.
	PhaseGameOver
)

var phaseNames = map[Phase]string{
	PhaseInitialHand:   "initial-hand",
	PhaseTurnSelection: "turn-selection",
	PhasePlaying:       "playing",
	PhaseJudging:       "judging",
	PhaseGameOver:      "game-over",
}

// String returns the string representation of a phase
func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	if _, ok := phaseNames[p]; !ok {
		return nil, fmt.Errorf("invalid phase %d", int(p))
	}
	return []byte(p.String()), nil
}
