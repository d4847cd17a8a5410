package game

import "github.com/google/uuid"

// Modifier is an additive attribute delta attached to a single card, either
// permanent or time-boxed in turns. Multiple modifiers on the same attribute
// stack additively.
type Modifier struct {
	ID        string
	Attribute string
	Value     int
	Duration  int // turns; 0 = permanent
	elapsed   int
}

// NewModifier creates a permanent modifier.
func NewModifier(attribute string, value int) *Modifier {
	return &Modifier{
		ID:        uuid.NewString(),
		Attribute: attribute,
		Value:     value,
	}
}

// NewTimedModifier creates a modifier that expires after the given number of
// turns. A non-positive duration yields a permanent modifier.
func NewTimedModifier(attribute string, value, durationTurns int) *Modifier {
	m := NewModifier(attribute, value)
	if durationTurns > 0 {
		m.Duration = durationTurns
	}
	return m
}

// IsActive reports whether the modifier still applies.
func (m *Modifier) IsActive() bool {
	if m.Duration == 0 {
		return true
	}
	return m.elapsed < m.Duration
}

// Tick records one elapsed turn on a time-boxed modifier.
func (m *Modifier) Tick() {
	if m.Duration > 0 {
		m.elapsed++
	}
}

// RemainingTurns returns how many turns the modifier has left, or -1 for a
// permanent modifier.
func (m *Modifier) RemainingTurns() int {
	if m.Duration == 0 {
		return -1
	}
	remaining := m.Duration - m.elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}
