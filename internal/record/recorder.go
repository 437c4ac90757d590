package record

import (
	"fmt"
	"sync"

	"github.com/lox/critterbluff/cards"
	"github.com/lox/critterbluff/internal/game"
)

// FromState captures the deal: players, their starting hands and the cards
// left out. Call it on a freshly initialised state.
func FromState(s game.State, strategies []string) *GameRecord {
	rec := &GameRecord{
		Game:     s.ID,
		Variant:  VariantFirstElimination,
		Excluded: names(s.Excluded),
		Undealt:  names(s.Deck),
		Players:  make([]PlayerRecord, len(s.Players)),
		Outcome:  Outcome{Loser: game.NoSeat},
	}
	for i, p := range s.Players {
		rec.Players[i] = PlayerRecord{
			Seat:     i,
			ID:       p.ID,
			Name:     p.Name,
			Dealt:    names(p.Hand),
			HandLeft: p.HandCount,
		}
		if i < len(strategies) {
			rec.Players[i].Strategy = strategies[i]
		}
	}
	return rec
}

func names(cs []cards.CardType) []string {
	if len(cs) == 0 {
		return nil
	}
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.String()
	}
	return out
}

func seat(n int) string {
	return fmt.Sprintf("s%d", n)
}

// Recorder builds a GameRecord from session events. Subscribe it to the
// session right after construction.
type Recorder struct {
	mu      sync.Mutex
	rec     *GameRecord
	current *TurnRecord
}

// NewRecorder starts a record for the game in s, which should be the state
// straight after the deal.
func NewRecorder(s game.State, strategies []string) *Recorder {
	return &Recorder{rec: FromState(s, strategies)}
}

// OnEvent implements game.EventSubscriber.
func (r *Recorder) OnEvent(event game.GameEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch e := event.(type) {
	case game.GameStartEvent:
		r.rec.Started = e.Timestamp()
	case game.InitialRevealEvent:
		if r.rec.Started.IsZero() {
			r.rec.Started = e.Timestamp()
		}
		if e.Seat >= 0 && e.Seat < len(r.rec.Players) {
			r.rec.Players[e.Seat].Revealed = e.Card.String()
		}
	case game.TurnStartEvent:
		r.current = &TurnRecord{Number: e.TurnNumber, Questioner: e.Questioner}
	case game.QuestionEvent:
		if r.current != nil {
			r.current.Actions = append(r.current.Actions,
				fmt.Sprintf("%s ask %s %s", seat(e.Questioner), seat(e.Answerer), e.Declared))
		}
	case game.PassEvent:
		if r.current != nil {
			r.current.Actions = append(r.current.Actions,
				fmt.Sprintf("%s pass %s %s", seat(e.From), seat(e.To), e.Declared))
		}
	case game.JudgmentEvent:
		r.judged(e.Judgment)
	case game.EliminationEvent:
		er := EliminationRecord{
			Turn:   len(r.rec.Turns),
			Seat:   e.Seat,
			Reason: e.Elimination.Reason.String(),
		}
		if e.Elimination.Type.Valid() {
			er.Type = e.Elimination.Type.String()
		}
		r.rec.Eliminations = append(r.rec.Eliminations, er)
	case game.GameOverEvent:
		r.rec.Finished = e.Timestamp()
	}
}

func (r *Recorder) judged(j game.Judgment) {
	t := r.current
	if t == nil {
		t = &TurnRecord{Number: j.TurnNumber, Questioner: j.Questioner}
	}
	verdict := "doubt"
	if j.Believed {
		verdict = "believe"
	}
	t.Card = j.Card.String()
	t.Actions = append(t.Actions, fmt.Sprintf("%s %s", seat(j.Answerer), verdict))
	t.Judge = j.Answerer
	t.Believed = j.Believed
	t.Success = j.Success
	t.Recipient = j.Recipient
	if j.Elimination.Eliminated {
		t.Elimination = j.Elimination.String()
	}
	r.rec.Turns = append(r.rec.Turns, *t)
	r.current = nil
}

// Finish fills in final hands, open cards and the outcome from the final
// state and returns the record. The recorder should not be used afterwards.
func (r *Recorder) Finish(final game.State, lastPlayerStanding bool) *GameRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	if lastPlayerStanding {
		r.rec.Variant = VariantLastPlayerStanding
	}
	for i, p := range final.Players {
		if i >= len(r.rec.Players) {
			break
		}
		pr := &r.rec.Players[i]
		pr.HandLeft = p.HandCount
		pr.Eliminated = p.Eliminated
		if open := p.OpenCards.Map(); len(open) > 0 {
			pr.Open = open
		}
	}

	r.rec.Outcome = Outcome{
		Loser:     final.Loser,
		Turns:     final.TurnNumber,
		Survivors: final.Survivors(),
	}
	if final.Loser >= 0 && final.Loser < len(final.Players) {
		loser := final.Players[final.Loser]
		r.rec.Outcome.LoserName = loser.Name
		r.rec.Outcome.Reason = loser.Elimination.Reason.String()
	}
	return r.rec
}
