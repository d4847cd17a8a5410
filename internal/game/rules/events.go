package rules

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType indicates the category of a rules event.
type EventType string

const (
	// Match lifecycle events
	EventMatchStarted EventType = "MATCH_STARTED"
	EventMatchEnded   EventType = "MATCH_ENDED"
	EventTurnStarted  EventType = "TURN_STARTED"
	EventTurnEnded    EventType = "TURN_ENDED"

	// Zone events
	EventCardDrawn     EventType = "CARD_DRAWN"
	EventCardDeployed  EventType = "CARD_DEPLOYED"
	EventCardDiscarded EventType = "CARD_DISCARDED"
	EventCardDied      EventType = "CARD_DIED"

	// Combat and ability events
	EventAttackCompleted EventType = "ATTACK_COMPLETED"
	EventAbilityUsed     EventType = "ABILITY_USED"
	EventDamageDealt     EventType = "DAMAGE_DEALT"

	// Resource events
	EventCreditsChanged EventType = "CREDITS_CHANGED"

	// Opponent-turn hook: the strategy collaborator is expected to act on this.
	EventProcessOpponentTurn EventType = "PROCESS_OPPONENT_TURN"
)

// Event represents a state change that other subsystems may react to.
// Events are published after the corresponding mutation completes, in
// mutation order.
type Event struct {
	Type        EventType
	ID          string
	MatchID     string
	PlayerID    string
	CardID      string
	TargetID    string
	SlotIndex   int // battlefield slot, or -1 when unused
	Amount      int // damage dealt, credits delta, etc.
	Remaining   int // defender's remaining defense on ATTACK_COMPLETED
	Turn        int
	Timestamp   time.Time
	Description string
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

// TypedListener defines a callback that reacts to a specific event type.
type TypedListener struct {
	Handle    int
	EventType EventType
	Callback  func(Event)
}

// EventBus provides a synchronous publish/subscribe implementation with
// optional type filtering.
type EventBus struct {
	mu             sync.RWMutex
	listeners      map[int]Listener
	typedListeners map[EventType][]TypedListener
	nextHandle     int
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{
		listeners:      make(map[int]Listener),
		typedListeners: make(map[EventType][]TypedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners[handle] = listener
	return handle
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, callback func(Event)) int {
	if callback == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], TypedListener{
		Handle:    handle,
		EventType: eventType,
		Callback:  callback,
	})
	return handle
}

// Unsubscribe removes the listener identified by the provided handle.
func (bus *EventBus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	delete(bus.listeners, handle)
	for eventType, listeners := range bus.typedListeners {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].Handle == handle {
				bus.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers the event to all registered listeners synchronously.
func (bus *EventBus) Publish(event Event) {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	for _, listener := range bus.listeners {
		listener(event)
	}
	if typed, ok := bus.typedListeners[event.Type]; ok {
		for _, listener := range typed {
			listener.Callback(event)
		}
	}
}

// NewEvent creates a new event with common fields populated.
func NewEvent(eventType EventType, matchID, playerID, cardID string) Event {
	return Event{
		Type:      eventType,
		ID:        uuid.NewString(),
		MatchID:   matchID,
		PlayerID:  playerID,
		CardID:    cardID,
		SlotIndex: -1,
		Timestamp: time.Now(),
	}
}
