package game

import (
	"fmt"
	"time"

	"github.com/frontlinegame/frontline-server-go/internal/catalog"
	"github.com/google/uuid"
)

// neverUsed is the sentinel for an ability that has not been used yet.
const neverUsed = -1

// Ability is a bound, stateful capability attached to a single card. It
// enforces the template's cooldown and usage caps and applies the effect;
// credit costs and death resolution stay with the orchestrator.
type Ability struct {
	id                string
	atype             *catalog.AbilityType
	owner             *Card
	active            bool
	usesThisTurn      int
	totalUses         int
	turnsSinceLastUse int
	lastUsedAt        time.Time
}

// newAbility binds a template to its owning card.
func newAbility(atype *catalog.AbilityType, owner *Card) *Ability {
	if atype == nil || owner == nil {
		panic("game: newAbility requires a template and an owner card")
	}
	return &Ability{
		id:                uuid.NewString(),
		atype:             atype,
		owner:             owner,
		active:            true,
		turnsSinceLastUse: neverUsed,
	}
}

// ID returns the unique instance id.
func (a *Ability) ID() string { return a.id }

// Type returns the shared read-only template.
func (a *Ability) Type() *catalog.AbilityType { return a.atype }

// Owner returns the card the ability is bound to.
func (a *Ability) Owner() *Card { return a.owner }

// IsActive reports whether the ability is currently enabled.
func (a *Ability) IsActive() bool { return a.active }

// SetActive enables or disables the ability.
func (a *Ability) SetActive(active bool) { a.active = active }

// UsesThisTurn returns how many times the ability fired since the last turn
// boundary.
func (a *Ability) UsesThisTurn() int { return a.usesThisTurn }

// TotalUses returns how many times the ability fired this match.
func (a *Ability) TotalUses() int { return a.totalUses }

// CanUse reports whether the ability may fire right now: it must be active,
// its owner face-up when the template demands it, its cooldown elapsed, and
// its per-turn and per-match caps not yet reached.
func (a *Ability) CanUse() bool {
	if !a.active {
		return false
	}
	if a.atype.RequiresFaceUp && a.owner.FaceDown() {
		return false
	}
	if a.atype.CooldownTurns > 0 && a.turnsSinceLastUse != neverUsed &&
		a.turnsSinceLastUse < a.atype.CooldownTurns {
		return false
	}
	if a.atype.UsesPerTurn > 0 && a.usesThisTurn >= a.atype.UsesPerTurn {
		return false
	}
	if a.atype.UsesPerMatch > 0 && a.totalUses >= a.atype.UsesPerMatch {
		return false
	}
	return true
}

// GetValidTargets filters the candidate cards down to those the ability may
// affect: live cards, face-up unless the template can hit face-down cards.
// Range and alignment filtering happen where candidates are collected.
func (a *Ability) GetValidTargets(candidates []*Card) []*Card {
	valid := make([]*Card, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate == nil || candidate.IsDead() {
			continue
		}
		if candidate.FaceDown() && !a.atype.CanTargetFaceDown {
			continue
		}
		valid = append(valid, candidate)
	}
	return valid
}

// Use re-validates the ability, checks targeting arity, filters to valid
// targets, applies the effect, and marks the use. It returns false without
// mutation on any validation failure.
func (a *Ability) Use(targets []*Card) bool {
	if !a.CanUse() {
		return false
	}

	switch a.atype.Targeting {
	case catalog.TargetingNone:
		targets = nil
	case catalog.TargetingSelf:
		targets = []*Card{a.owner}
	default:
		if len(targets) == 0 {
			return false
		}
		targets = a.GetValidTargets(targets)
		if len(targets) == 0 {
			return false
		}
	}

	if !a.applyEffect(targets) {
		return false
	}
	a.MarkAsUsed()
	return true
}

// MarkAsUsed records a successful use: bumps both counters, restarts the
// cooldown window, and stamps the use time.
func (a *Ability) MarkAsUsed() {
	a.usesThisTurn++
	a.totalUses++
	a.turnsSinceLastUse = 0
	a.lastUsedAt = time.Now()
}

// OnTurnStart resets the per-turn window and advances the cooldown clock.
func (a *Ability) OnTurnStart() {
	a.usesThisTurn = 0
	if a.turnsSinceLastUse != neverUsed {
		a.turnsSinceLastUse++
	}
}

// applyEffect dispatches on the effect kind. Every kind the catalog can
// express is handled; an unknown kind is a template contract violation and
// panics rather than silently doing nothing.
func (a *Ability) applyEffect(targets []*Card) bool {
	value := a.atype.EffectValue

	switch a.atype.Effect {
	case catalog.EffectDamage:
		for _, target := range targets {
			target.TakeDamage(value)
		}
	case catalog.EffectHeal:
		for _, target := range targets {
			target.Heal(value)
		}
	case catalog.EffectBuff:
		attr := a.modifierAttribute()
		for _, target := range targets {
			target.AddModifier(NewTimedModifier(attr, value, a.atype.EffectDuration))
		}
	case catalog.EffectDebuff:
		attr := a.modifierAttribute()
		for _, target := range targets {
			target.AddModifier(NewTimedModifier(attr, -value, a.atype.EffectDuration))
		}
	case catalog.EffectDraw:
		player := a.owner.Owner()
		if player == nil {
			return false
		}
		for i := 0; i < value; i++ {
			player.DrawCard()
		}
	case catalog.EffectDiscard:
		for _, target := range targets {
			player := target.Owner()
			if player == nil {
				continue
			}
			for i := 0; i < value; i++ {
				hand := player.Hand()
				if len(hand) == 0 {
					break
				}
				player.DiscardFromHand(hand[0])
			}
		}
	default:
		panic(fmt.Sprintf("game: unhandled effect kind %q", a.atype.Effect))
	}
	return true
}

// modifierAttribute resolves which attribute a buff/debuff touches; templates
// override via params, defaulting to attack.
func (a *Ability) modifierAttribute() string {
	if attr, ok := a.atype.Params["attribute"]; ok && attr != "" {
		return attr
	}
	return catalog.AttributeAttack
}
