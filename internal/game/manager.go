package game

import (
	"fmt"
	"sync"

	"github.com/frontlinegame/frontline-server-go/internal/game/rules"
	"go.uber.org/zap"
)

// NotificationHandler is a function that receives match notifications.
type NotificationHandler func(event rules.Event)

// MatchEndedHandler is a function that receives the match alongside its final
// notification.
type MatchEndedHandler func(m *Match, event rules.Event)

// MatchManager hosts matches keyed by id and fans their notifications out to
// an optional handler (UI, websocket clients, persistence).
type MatchManager struct {
	logger   *zap.Logger
	settings Settings

	mu           sync.RWMutex
	matches      map[string]*Match
	handler      NotificationHandler
	endedHandler MatchEndedHandler
}

// NewMatchManager creates an empty manager.
func NewMatchManager(logger *zap.Logger, settings Settings) *MatchManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MatchManager{
		logger:   logger,
		settings: settings,
		matches:  make(map[string]*Match),
	}
}

// SetNotificationHandler sets the handler receiving events from every match.
// Events from matches created afterwards are forwarded as well.
func (mm *MatchManager) SetNotificationHandler(handler NotificationHandler) {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	mm.handler = handler
}

// SetMatchEndedHandler sets the handler invoked once per match when it ends.
func (mm *MatchManager) SetMatchEndedHandler(handler MatchEndedHandler) {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	mm.endedHandler = handler
}

// CreateMatch registers a new match in the NotStarted state. Seed 0 selects
// a time-based shuffle seed.
func (mm *MatchManager) CreateMatch(matchID string, a, b PlayerSpec, seed int64) (*Match, error) {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	if _, exists := mm.matches[matchID]; exists {
		return nil, fmt.Errorf("match %s already exists", matchID)
	}

	m := NewMatch(matchID, a, b, mm.settings, seed, mm.logger)
	m.Bus().Subscribe(func(event rules.Event) {
		mm.mu.RLock()
		handler := mm.handler
		endedHandler := mm.endedHandler
		mm.mu.RUnlock()
		if handler != nil {
			handler(event)
		}
		if endedHandler != nil && event.Type == rules.EventMatchEnded {
			endedHandler(m, event)
		}
	})
	mm.matches[m.ID()] = m

	mm.logger.Info("match created",
		zap.String("match_id", m.ID()),
		zap.String("player_a", a.ID),
		zap.String("player_b", b.ID),
	)
	return m, nil
}

// Match returns the match with the given id.
func (mm *MatchManager) Match(matchID string) (*Match, bool) {
	mm.mu.RLock()
	defer mm.mu.RUnlock()
	m, ok := mm.matches[matchID]
	return m, ok
}

// RemoveMatch drops a finished match from the registry.
func (mm *MatchManager) RemoveMatch(matchID string) {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	delete(mm.matches, matchID)
}

// MatchIDs returns the ids of all hosted matches.
func (mm *MatchManager) MatchIDs() []string {
	mm.mu.RLock()
	defer mm.mu.RUnlock()
	ids := make([]string, 0, len(mm.matches))
	for id := range mm.matches {
		ids = append(ids, id)
	}
	return ids
}
