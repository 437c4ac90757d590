package game

import (
	"fmt"
	"strings"

	"github.com/lox/critterbluff/cards"
)

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	Names []string // Seat names; seats without one print as "seat N"
	Emoji bool     // Print card emoji next to card names
}

// EventFormatter turns game events into one-line, human-readable text
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

// Format returns the text for any event, or "" for unknown events.
func (ef *EventFormatter) Format(event GameEvent) string {
	switch e := event.(type) {
	case GameStartEvent:
		return ef.FormatGameStart(e)
	case InitialRevealEvent:
		return fmt.Sprintf("%s: reveals %s", ef.name(e.Seat), ef.card(e.Card))
	case TurnStartEvent:
		return fmt.Sprintf("*** TURN %d *** %s to question (%d cards)", e.TurnNumber+1, ef.name(e.Questioner), e.HandCount)
	case QuestionEvent:
		return fmt.Sprintf("%s: hands a card to %s, \"this is a %s\"", ef.name(e.Questioner), ef.name(e.Answerer), ef.card(e.Declared))
	case PassEvent:
		return fmt.Sprintf("%s: peeks and passes to %s, \"this is a %s\"", ef.name(e.From), ef.name(e.To), ef.card(e.Declared))
	case JudgmentEvent:
		return ef.FormatJudgment(e.Judgment)
	case EliminationEvent:
		return fmt.Sprintf("%s: eliminated, %s (open: %s)", ef.name(e.Seat), e.Elimination, e.OpenCards)
	case GameOverEvent:
		return ef.FormatGameOver(e)
	default:
		return ""
	}
}

// FormatGameStart formats a game start event into a human-readable string
func (ef *EventFormatter) FormatGameStart(e GameStartEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Game %s: %d players", e.GameID, len(e.Players))
	for i, name := range e.Players {
		fmt.Fprintf(&b, "\n  Seat %d: %s (%d cards)", i+1, name, e.HandCounts[i])
	}
	if e.Excluded > 0 {
		fmt.Fprintf(&b, "\n  %d cards set aside", e.Excluded)
	}
	if e.Remainder > 0 {
		fmt.Fprintf(&b, "\n  %d cards left undealt", e.Remainder)
	}
	return b.String()
}

// FormatJudgment formats the resolution of a turn
func (ef *EventFormatter) FormatJudgment(j Judgment) string {
	verdict := "doubts"
	if j.Believed {
		verdict = "believes"
	}
	outcome := "wrong"
	if j.Success {
		outcome = "right"
	}
	text := fmt.Sprintf("%s: %s the %s, it was a %s. %s is %s, %s keeps it face-up",
		ef.name(j.Answerer), verdict, ef.card(j.DeclaredAs), ef.card(j.Card),
		ef.name(j.Answerer), outcome, ef.name(j.Recipient))
	if j.Passes > 0 {
		text += fmt.Sprintf(" (after %d passes)", j.Passes)
	}
	return text
}

// FormatGameOver formats the end of a game
func (ef *EventFormatter) FormatGameOver(e GameOverEvent) string {
	if e.Loser == NoSeat {
		return fmt.Sprintf("*** GAME OVER *** after %d turns", e.Turns)
	}
	return fmt.Sprintf("*** GAME OVER *** %s loses after %d turns", ef.name(e.Loser), e.Turns)
}

func (ef *EventFormatter) name(seat int) string {
	if seat >= 0 && seat < len(ef.opts.Names) && ef.opts.Names[seat] != "" {
		return ef.opts.Names[seat]
	}
	return fmt.Sprintf("seat %d", seat)
}

func (ef *EventFormatter) card(c cards.CardType) string {
	if ef.opts.Emoji && c.Valid() {
		return c.String() + " " + c.Emoji()
	}
	return c.String()
}
