package game

import (
	"github.com/frontlinegame/frontline-server-go/internal/catalog"
	"github.com/google/uuid"
)

// Card is one runtime copy of a catalog template, exclusively owned by at
// most one player at a time. It holds battle state only; zone transitions and
// death handling belong to the orchestrator.
type Card struct {
	id               string
	ctype            *catalog.CardType
	owner            *Player
	faceDown         bool
	currentDefense   int
	attackedThisTurn bool
	modifiers        []*Modifier
	attributes       map[string]int
	abilities        []*Ability
	selectedAbility  string
}

// NewCard creates a runtime instance bound to the given template. A nil
// template is a caller contract violation and panics.
func NewCard(ctype *catalog.CardType) *Card {
	if ctype == nil {
		panic("game: NewCard requires a card type")
	}
	c := &Card{
		id:         uuid.NewString(),
		ctype:      ctype,
		attributes: make(map[string]int),
	}
	c.recomputeAttributes()
	c.currentDefense = c.Defense()
	for i := range ctype.Abilities {
		c.abilities = append(c.abilities, newAbility(&ctype.Abilities[i], c))
	}
	if len(ctype.Abilities) > 0 {
		c.selectedAbility = ctype.Abilities[0].ID
	}
	return c
}

// ID returns the unique instance id.
func (c *Card) ID() string { return c.id }

// Type returns the shared read-only template.
func (c *Card) Type() *catalog.CardType { return c.ctype }

// Owner returns the owning player, or nil before assignment.
func (c *Card) Owner() *Player { return c.owner }

func (c *Card) setOwner(p *Player) { c.owner = p }

// FaceDown reports whether the card is hidden from the opponent.
func (c *Card) FaceDown() bool { return c.faceDown }

// SetFaceDown flips the card's hidden state.
func (c *Card) SetFaceDown(faceDown bool) { c.faceDown = faceDown }

// HasAttackedThisTurn reports whether the card already attacked this turn.
func (c *Card) HasAttackedThisTurn() bool { return c.attackedThisTurn }

// Attribute returns the derived value for the named attribute: the template
// value plus all active modifier deltas.
func (c *Card) Attribute(name string) int {
	return c.attributes[name]
}

// Defense returns the derived maximum defense.
func (c *Card) Defense() int {
	return c.attributes[catalog.AttributeDefense]
}

// Attack returns the derived attack value.
func (c *Card) Attack() int {
	return c.attributes[catalog.AttributeAttack]
}

// CounterAttack returns the derived counter-attack value.
func (c *Card) CounterAttack() int {
	return c.attributes[catalog.AttributeCounterAttack]
}

// CurrentDefense returns the card's remaining defense in [0, Defense].
func (c *Card) CurrentDefense() int { return c.currentDefense }

// IsDead reports whether the card's defense has been reduced to zero.
func (c *Card) IsDead() bool { return c.currentDefense == 0 }

// TakeDamage reduces current defense, flooring at zero. Non-positive amounts
// are a no-op.
func (c *Card) TakeDamage(amount int) {
	if amount <= 0 {
		return
	}
	c.currentDefense -= amount
	if c.currentDefense < 0 {
		c.currentDefense = 0
	}
}

// Heal restores current defense, capped at the derived maximum. Non-positive
// amounts are a no-op.
func (c *Card) Heal(amount int) {
	if amount <= 0 {
		return
	}
	c.currentDefense += amount
	if max := c.Defense(); c.currentDefense > max {
		c.currentDefense = max
	}
}

// AddModifier attaches a modifier and recomputes derived attributes.
func (c *Card) AddModifier(m *Modifier) {
	if m == nil {
		return
	}
	c.modifiers = append(c.modifiers, m)
	c.recomputeAttributes()
}

// RemoveModifier detaches a modifier by id and recomputes derived attributes.
func (c *Card) RemoveModifier(m *Modifier) bool {
	if m == nil {
		return false
	}
	for i, existing := range c.modifiers {
		if existing.ID == m.ID {
			c.modifiers = append(c.modifiers[:i], c.modifiers[i+1:]...)
			c.recomputeAttributes()
			return true
		}
	}
	return false
}

// ClearExpiredModifiers removes modifiers whose duration has elapsed and
// recomputes derived attributes.
func (c *Card) ClearExpiredModifiers() {
	active := c.modifiers[:0]
	removed := false
	for _, m := range c.modifiers {
		if m.IsActive() {
			active = append(active, m)
		} else {
			removed = true
		}
	}
	c.modifiers = active
	if removed {
		c.recomputeAttributes()
	}
}

// Modifiers returns the attached modifiers in attach order.
func (c *Card) Modifiers() []*Modifier {
	out := make([]*Modifier, len(c.modifiers))
	copy(out, c.modifiers)
	return out
}

// recomputeAttributes rebuilds the derived attribute map from the template
// and all active modifiers, then re-clamps current defense.
func (c *Card) recomputeAttributes() {
	attrs := make(map[string]int, len(c.ctype.Attributes)+3)
	for k, v := range c.ctype.Attributes {
		attrs[k] = v
	}
	attrs[catalog.AttributeDefense] += c.ctype.BaseDefense
	attrs[catalog.AttributeAttack] += c.ctype.BaseAttack
	attrs[catalog.AttributeCounterAttack] += c.ctype.BaseCounterAttack

	for _, m := range c.modifiers {
		if m.IsActive() {
			attrs[m.Attribute] += m.Value
		}
	}
	c.attributes = attrs

	if max := c.Defense(); c.currentDefense > max {
		c.currentDefense = max
	}
	if c.currentDefense < 0 {
		c.currentDefense = 0
	}
}

// Abilities returns the bound ability instances in template order.
func (c *Card) Abilities() []*Ability {
	out := make([]*Ability, len(c.abilities))
	copy(out, c.abilities)
	return out
}

// AbilityByTypeID returns the bound ability for the given template id.
func (c *Card) AbilityByTypeID(typeID string) (*Ability, bool) {
	for _, a := range c.abilities {
		if a.Type().ID == typeID {
			return a, true
		}
	}
	return nil, false
}

// SelectedAbility returns the currently-selected ability template id.
func (c *Card) SelectedAbility() string { return c.selectedAbility }

// SelectAbility sets the selected ability. The id must name one of the
// template's abilities.
func (c *Card) SelectAbility(typeID string) bool {
	if _, ok := c.ctype.AbilityByID(typeID); !ok {
		return false
	}
	c.selectedAbility = typeID
	return true
}

// startTurn resets per-turn battle state: the attack flag, ability usage
// windows, and modifier durations.
func (c *Card) startTurn() {
	c.attackedThisTurn = false
	for _, a := range c.abilities {
		a.OnTurnStart()
	}
	for _, m := range c.modifiers {
		m.Tick()
	}
	c.ClearExpiredModifiers()
}
