package game

import (
	"sync"
	"time"

	"github.com/lox/critterbluff/cards"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
const (
	EventTypeGameStart     EventType = "game_start"
	EventTypeInitialReveal EventType = "initial_reveal"
	EventTypeTurnStart     EventType = "turn_start"
	EventTypeQuestion      EventType = "question"
	EventTypePass          EventType = "pass"
	EventTypeJudgment      EventType = "judgment"
	EventTypeElimination   EventType = "elimination"
	EventTypeGameOver      EventType = "game_over"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a game
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// GameStartEvent is published once the cards are dealt.
type GameStartEvent struct {
	GameID     string
	Players    []string
	HandCounts []int
	Remainder  int
	Excluded   int
	timestamp  time.Time
}

func (e GameStartEvent) EventType() EventType { return EventTypeGameStart }
func (e GameStartEvent) Timestamp() time.Time { return e.timestamp }

// InitialRevealEvent is published when a player places their initial card
// face-up.
type InitialRevealEvent struct {
	Seat      int
	Card      cards.CardType
	timestamp time.Time
}

func (e InitialRevealEvent) EventType() EventType { return EventTypeInitialReveal }
func (e InitialRevealEvent) Timestamp() time.Time { return e.timestamp }

// TurnStartEvent is published when a questioner opens a turn.
type TurnStartEvent struct {
	TurnNumber int
	Questioner int
	HandCount  int
	timestamp  time.Time
}

func (e TurnStartEvent) EventType() EventType { return EventTypeTurnStart }
func (e TurnStartEvent) Timestamp() time.Time { return e.timestamp }

// QuestionEvent is published when the questioner hands the card over. The
// real card is deliberately absent.
type QuestionEvent struct {
	TurnNumber int
	Questioner int
	Answerer   int
	Declared   cards.CardType
	timestamp  time.Time
}

func (e QuestionEvent) EventType() EventType { return EventTypeQuestion }
func (e QuestionEvent) Timestamp() time.Time { return e.timestamp }

// PassEvent is published when an answerer forwards the card.
type PassEvent struct {
	TurnNumber int
	From       int
	To         int
	Declared   cards.CardType
	Chain      int
	timestamp  time.Time
}

func (e PassEvent) EventType() EventType { return EventTypePass }
func (e PassEvent) Timestamp() time.Time { return e.timestamp }

// JudgmentEvent is published when a turn resolves.
type JudgmentEvent struct {
	Judgment  Judgment
	timestamp time.Time
}

func (e JudgmentEvent) EventType() EventType { return EventTypeJudgment }
func (e JudgmentEvent) Timestamp() time.Time { return e.timestamp }

// EliminationEvent is published when a player is eliminated.
type EliminationEvent struct {
	Seat        int
	Name        string
	Elimination Elimination
	OpenCards   cards.Counts
	timestamp   time.Time
}

func (e EliminationEvent) EventType() EventType { return EventTypeElimination }
func (e EliminationEvent) Timestamp() time.Time { return e.timestamp }

// GameOverEvent is published when the game ends.
type GameOverEvent struct {
	GameID    string
	Loser     int
	Survivors []int
	Turns     int
	timestamp time.Time
}

func (e GameOverEvent) EventType() EventType { return EventTypeGameOver }
func (e GameOverEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber receives published events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// SubscriberFunc adapts a function to EventSubscriber.
type SubscriberFunc func(event GameEvent)

// OnEvent calls f(event).
func (f SubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus. Delivery is synchronous and
// in subscription order.
type SimpleEventBus struct {
	mu          sync.RWMutex
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events. Subscribers are
// compared by identity, so only pointer subscribers can be removed.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for i, sub := range bus.subscribers {
		if sameSubscriber(sub, subscriber) {
			bus.subscribers = append(bus.subscribers[:i:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

func sameSubscriber(a, b EventSubscriber) (same bool) {
	// Func subscribers are not comparable.
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	bus.mu.RLock()
	subscribers := append([]EventSubscriber(nil), bus.subscribers...)
	bus.mu.RUnlock()

	for _, subscriber := range subscribers {
		subscriber.OnEvent(event)
	}
}
