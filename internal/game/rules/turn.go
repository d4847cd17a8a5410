package rules

import "strings"

// TurnManager tracks whose turn it is and the turn counter.
//
// The turn number increments only when control returns to the designated
// first player, so both players complete a turn per increment.
type TurnManager struct {
	firstPlayer  string
	activePlayer string
	turnNumber   int
}

// NewTurnManager creates a turn manager initialized at turn 1 with the given
// first player active.
func NewTurnManager(firstPlayer string) *TurnManager {
	first := strings.TrimSpace(firstPlayer)
	return &TurnManager{
		firstPlayer:  first,
		activePlayer: first,
		turnNumber:   1,
	}
}

// FirstPlayer returns the player designated to act first.
func (tm *TurnManager) FirstPlayer() string {
	return tm.firstPlayer
}

// ActivePlayer returns the player who currently has the turn.
func (tm *TurnManager) ActivePlayer() string {
	return tm.activePlayer
}

// TurnNumber returns the current turn number (1-based).
func (tm *TurnManager) TurnNumber() int {
	return tm.turnNumber
}

// AdvanceTurn hands control to nextActivePlayer. The turn number increments
// only when control comes back around to the first player.
func (tm *TurnManager) AdvanceTurn(nextActivePlayer string) int {
	next := strings.TrimSpace(nextActivePlayer)
	if next != "" {
		tm.activePlayer = next
	}
	if tm.activePlayer == tm.firstPlayer {
		tm.turnNumber++
	}
	return tm.turnNumber
}
