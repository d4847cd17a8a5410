package game

import "math/rand"

// Player owns the four card zones plus a headquarters card and the credit
// pool. Every card it holds appears in exactly one zone at a time; slot
// assignment on the battlefield is unique.
type Player struct {
	id           string
	name         string
	credits      int
	settings     Settings
	deck         []*Card // draw from the end (LIFO)
	hand         []*Card
	battlefield  []*Card // fixed-size, nil = empty slot
	discard      []*Card // FIFO append
	headquarters *Card
}

// NewPlayer creates a player with empty zones and the starting credit balance.
func NewPlayer(id, name string, settings Settings) *Player {
	return &Player{
		id:          id,
		name:        name,
		credits:     settings.StartingCredits,
		settings:    settings,
		battlefield: make([]*Card, settings.BattlefieldSlots),
	}
}

// ID returns the player id.
func (p *Player) ID() string { return p.id }

// Name returns the display name.
func (p *Player) Name() string { return p.name }

// Credits returns the current balance.
func (p *Player) Credits() int { return p.credits }

// Headquarters returns the player's headquarters card.
func (p *Player) Headquarters() *Card { return p.headquarters }

// setHeadquarters binds the headquarters card to this player.
func (p *Player) setHeadquarters(c *Card) {
	if c != nil {
		c.setOwner(p)
	}
	p.headquarters = c
}

// addToDeck places a card on top of the deck and claims ownership.
func (p *Player) addToDeck(c *Card) {
	if c == nil {
		return
	}
	c.setOwner(p)
	p.deck = append(p.deck, c)
}

// shuffleDeck randomizes draw order using the provided source.
func (p *Player) shuffleDeck(rng *rand.Rand) {
	rng.Shuffle(len(p.deck), func(i, j int) {
		p.deck[i], p.deck[j] = p.deck[j], p.deck[i]
	})
}

// DeckCount returns the number of cards left to draw.
func (p *Player) DeckCount() int { return len(p.deck) }

// Hand returns the hand in draw order.
func (p *Player) Hand() []*Card {
	out := make([]*Card, len(p.hand))
	copy(out, p.hand)
	return out
}

// HandContains reports whether the card is currently in hand.
func (p *Player) HandContains(c *Card) bool {
	if c == nil {
		return false
	}
	for _, held := range p.hand {
		if held.ID() == c.ID() {
			return true
		}
	}
	return false
}

// Discard returns the discard pile, oldest first.
func (p *Player) Discard() []*Card {
	out := make([]*Card, len(p.discard))
	copy(out, p.discard)
	return out
}

// DrawCard pops the top of the deck into the hand. It returns nil without
// mutation when the hand is full or the deck is empty.
func (p *Player) DrawCard() *Card {
	if len(p.hand) >= p.settings.MaxHandSize || len(p.deck) == 0 {
		return nil
	}
	top := p.deck[len(p.deck)-1]
	p.deck = p.deck[:len(p.deck)-1]
	p.hand = append(p.hand, top)
	return top
}

// DiscardFromHand moves a card from hand to the discard pile. It returns
// false without mutation when the card is not in hand.
func (p *Player) DiscardFromHand(c *Card) bool {
	if c == nil {
		return false
	}
	for i, held := range p.hand {
		if held.ID() == c.ID() {
			p.hand = append(p.hand[:i], p.hand[i+1:]...)
			p.discard = append(p.discard, held)
			return true
		}
	}
	return false
}

// DeployCard moves a card from hand into the given battlefield slot, paying
// its deployment cost. It returns false without mutation when the card is
// nil or not in hand, the balance cannot cover the cost, or the slot is out
// of range or occupied.
func (p *Player) DeployCard(c *Card, slot int) bool {
	if c == nil || !p.HandContains(c) {
		return false
	}
	if slot < 0 || slot >= len(p.battlefield) || p.battlefield[slot] != nil {
		return false
	}
	if c.Type().DeploymentCost > p.credits {
		return false
	}
	if !p.SpendCredits(c.Type().DeploymentCost) {
		return false
	}
	p.removeFromHand(c)
	p.battlefield[slot] = c
	return true
}

// RemoveFromBattlefield clears the card's slot and appends it to the discard
// pile. It returns false when the card is not on the battlefield.
func (p *Player) RemoveFromBattlefield(c *Card) bool {
	if c == nil {
		return false
	}
	for i, deployed := range p.battlefield {
		if deployed != nil && deployed.ID() == c.ID() {
			p.battlefield[i] = nil
			p.discard = append(p.discard, deployed)
			return true
		}
	}
	return false
}

// CardAt returns the card occupying the given slot, or nil.
func (p *Player) CardAt(slot int) *Card {
	if slot < 0 || slot >= len(p.battlefield) {
		return nil
	}
	return p.battlefield[slot]
}

// SlotOf returns the battlefield slot holding the card, or -1.
func (p *Player) SlotOf(c *Card) int {
	if c == nil {
		return -1
	}
	for i, deployed := range p.battlefield {
		if deployed != nil && deployed.ID() == c.ID() {
			return i
		}
	}
	return -1
}

// FreeSlot returns the lowest empty battlefield slot, or -1 when full.
func (p *Player) FreeSlot() int {
	for i, deployed := range p.battlefield {
		if deployed == nil {
			return i
		}
	}
	return -1
}

// BattlefieldCards returns the deployed cards in slot order, skipping empty
// slots.
func (p *Player) BattlefieldCards() []*Card {
	out := make([]*Card, 0, len(p.battlefield))
	for _, deployed := range p.battlefield {
		if deployed != nil {
			out = append(out, deployed)
		}
	}
	return out
}

// SpendCredits deducts from the balance. It returns false without mutation
// for negative amounts or amounts exceeding the balance.
func (p *Player) SpendCredits(amount int) bool {
	if amount < 0 || amount > p.credits {
		return false
	}
	p.credits -= amount
	return true
}

// AddCredits grows the balance, clamped to the configured maximum.
// Non-positive amounts are a no-op.
func (p *Player) AddCredits(amount int) {
	if amount <= 0 {
		return
	}
	p.credits += amount
	if p.credits > p.settings.MaxCredits {
		p.credits = p.settings.MaxCredits
	}
}

// CanAfford reports whether the balance covers the given cost.
func (p *Player) CanAfford(cost int) bool {
	return cost >= 0 && cost <= p.credits
}

func (p *Player) removeFromHand(c *Card) {
	for i, held := range p.hand {
		if held.ID() == c.ID() {
			p.hand = append(p.hand[:i], p.hand[i+1:]...)
			return
		}
	}
}

// startTurn resets per-turn state on every deployed card and the
// headquarters.
func (p *Player) startTurn() {
	for _, deployed := range p.battlefield {
		if deployed != nil {
			deployed.startTurn()
		}
	}
	if p.headquarters != nil {
		p.headquarters.startTurn()
	}
}
