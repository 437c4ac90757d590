package game

import (
	"sync"
	"testing"

	"github.com/lox/critterbluff/cards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type eventRecorder struct {
	mu     sync.Mutex
	events []GameEvent
}

func (r *eventRecorder) OnEvent(event GameEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *eventRecorder) types() []EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]EventType, len(r.events))
	for i, ev := range r.events {
		types[i] = ev.EventType()
	}
	return types
}

func newTestSession(t *testing.T, players int) (*Session, *eventRecorder) {
	t.Helper()
	e, _ := newTestEngine(t)
	bus := NewEventBus()
	rec := &eventRecorder{}
	bus.Subscribe(rec)
	s, err := NewSessionWithBus(e, bus, players, nil)
	require.NoError(t, err)
	return s, rec
}

// playOpening reveals a card for everyone and selects seat 0 to start.
func playOpening(t *testing.T, s *Session) {
	t.Helper()
	snap := s.Snapshot()
	for seat, p := range snap.Players {
		require.NoError(t, s.RevealInitialCard(seat, p.Hand[0]))
	}
	require.NoError(t, s.CompleteInitialHand())
	require.NoError(t, s.SelectQuestioner(0))
}

func TestSessionTurnEvents(t *testing.T) {
	t.Parallel()
	s, rec := newTestSession(t, 3)
	playOpening(t, s)

	require.NoError(t, s.StartTurn(0))
	card := s.Snapshot().Players[0].Hand[0]
	require.NoError(t, s.Question(card, 1, card))
	require.True(t, s.CanPassToOthers())
	require.NoError(t, s.PassCard(2, cards.Bat))

	j, err := s.MakeJudgment(card == cards.Bat)
	require.NoError(t, err)
	assert.Equal(t, 0, j.Recipient, "belief matches the truth, questioner keeps it")

	assert.Equal(t, []EventType{
		EventTypeGameStart,
		EventTypeInitialReveal, EventTypeInitialReveal, EventTypeInitialReveal,
		EventTypeTurnStart,
		EventTypeQuestion,
		EventTypePass,
		EventTypeJudgment,
	}, rec.types())

	pass := rec.events[6].(PassEvent)
	assert.Equal(t, 1, pass.From)
	assert.Equal(t, 2, pass.To)
	assert.Equal(t, 2, pass.Chain)

	snap := s.Snapshot()
	assert.Equal(t, 1, snap.TurnNumber)
	assert.NoError(t, snap.VerifyConservation())
}

func TestSessionRejectionKeepsState(t *testing.T) {
	t.Parallel()
	s, rec := newTestSession(t, 2)
	before := s.Snapshot()

	err := s.StartTurn(7)
	assert.ErrorIs(t, err, ErrInvalidSeat)
	assert.Equal(t, before, s.Snapshot())
	assert.Len(t, rec.types(), 1, "only game_start was published")
}

func TestSessionGameOverEvents(t *testing.T) {
	t.Parallel()
	s, rec := newTestSession(t, 2)
	playOpening(t, s)

	// Keep handing player 1 bats they wrongly believe are spiders until
	// they are out.
	for !s.Snapshot().Over {
		snap := s.Snapshot()
		q := snap.CurrentPlayer
		require.NoError(t, s.StartTurn(q))
		snap = s.Snapshot()
		if snap.Over {
			break
		}
		card := snap.Players[q].Hand[0]
		declared := cards.Bat
		if card == cards.Bat {
			declared = cards.Spider
		}
		require.NoError(t, s.Question(card, 1-q, declared))
		_, err := s.MakeJudgment(true)
		require.NoError(t, err)
		require.NoError(t, s.Snapshot().VerifyConservation())
	}

	types := rec.types()
	require.GreaterOrEqual(t, len(types), 2)
	assert.Equal(t, EventTypeElimination, types[len(types)-2])
	assert.Equal(t, EventTypeGameOver, types[len(types)-1])

	over := rec.events[len(rec.events)-1].(GameOverEvent)
	assert.Equal(t, s.Snapshot().Loser, over.Loser)
	assert.Len(t, over.Survivors, 1)
}

func TestSessionSnapshotIsCopy(t *testing.T) {
	t.Parallel()
	s, _ := newTestSession(t, 3)

	snap := s.Snapshot()
	snap.Players[0].Hand[0] = cards.NoCard
	snap.Players[0].Name = "changed"

	again := s.Snapshot()
	assert.NotEqual(t, cards.NoCard, again.Players[0].Hand[0])
	assert.NotEqual(t, "changed", again.Players[0].Name)
}

func TestSessionConcurrentReads(t *testing.T) {
	t.Parallel()
	s, _ := newTestSession(t, 4)
	playOpening(t, s)
	require.NoError(t, s.StartTurn(0))

	var wg sync.WaitGroup
	for seat := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				_, _ = s.View(seat)
				_ = s.CanPassToOthers()
			}
		}()
	}
	card := s.Snapshot().Players[0].Hand[0]
	require.NoError(t, s.Question(card, 1, card))
	wg.Wait()
}

func TestEventBusUnsubscribe(t *testing.T) {
	bus := NewEventBus()
	rec := &eventRecorder{}
	count := 0
	bus.Subscribe(rec)
	bus.Subscribe(SubscriberFunc(func(GameEvent) { count++ }))

	bus.Publish(TurnStartEvent{})
	bus.Unsubscribe(rec)
	bus.Publish(TurnStartEvent{})

	assert.Len(t, rec.types(), 1)
	assert.Equal(t, 2, count)
}
