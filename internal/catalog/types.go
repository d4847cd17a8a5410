package catalog

import "fmt"

// Category represents the broad class of a card.
type Category string

const (
	CategoryUnit           Category = "UNIT"
	CategoryOrder          Category = "ORDER"
	CategoryCountermeasure Category = "COUNTERMEASURE"
	CategoryHeadquarters   Category = "HEADQUARTERS"
)

// Valid reports whether the category is one of the known values.
func (c Category) Valid() bool {
	switch c {
	case CategoryUnit, CategoryOrder, CategoryCountermeasure, CategoryHeadquarters:
		return true
	}
	return false
}

// Trigger indicates when an ability may fire.
type Trigger string

const (
	TriggerOnDeployment  Trigger = "ON_DEPLOYMENT"
	TriggerOnDeath       Trigger = "ON_DEATH"
	TriggerOnTurnStart   Trigger = "ON_TURN_START"
	TriggerOnTurnEnd     Trigger = "ON_TURN_END"
	TriggerOnDamageDealt Trigger = "ON_DAMAGE_DEALT"
	TriggerOnDamageTaken Trigger = "ON_DAMAGE_TAKEN"
	TriggerManual        Trigger = "MANUAL"
)

// Valid reports whether the trigger is one of the known values.
func (t Trigger) Valid() bool {
	switch t {
	case TriggerOnDeployment, TriggerOnDeath, TriggerOnTurnStart, TriggerOnTurnEnd,
		TriggerOnDamageDealt, TriggerOnDamageTaken, TriggerManual:
		return true
	}
	return false
}

// Targeting describes which candidates an ability may affect.
type Targeting string

const (
	TargetingNone        Targeting = "NONE"
	TargetingSelf        Targeting = "SELF"
	TargetingSingleEnemy Targeting = "SINGLE_ENEMY"
	TargetingSingleAlly  Targeting = "SINGLE_ALLY"
	TargetingAllEnemies  Targeting = "ALL_ENEMIES"
	TargetingAllAllies   Targeting = "ALL_ALLIES"
)

// Valid reports whether the targeting mode is one of the known values.
func (t Targeting) Valid() bool {
	switch t {
	case TargetingNone, TargetingSelf, TargetingSingleEnemy, TargetingSingleAlly,
		TargetingAllEnemies, TargetingAllAllies:
		return true
	}
	return false
}

// RequiresTargets reports whether the mode needs at least one caller-supplied target.
func (t Targeting) RequiresTargets() bool {
	return t != TargetingNone && t != TargetingSelf
}

// Effect identifies what an ability does when it resolves.
type Effect string

const (
	EffectDamage  Effect = "DAMAGE"
	EffectHeal    Effect = "HEAL"
	EffectBuff    Effect = "BUFF"
	EffectDebuff  Effect = "DEBUFF"
	EffectDraw    Effect = "DRAW"
	EffectDiscard Effect = "DISCARD"
)

// Valid reports whether the effect is one of the known values.
func (e Effect) Valid() bool {
	switch e {
	case EffectDamage, EffectHeal, EffectBuff, EffectDebuff, EffectDraw, EffectDiscard:
		return true
	}
	return false
}

// Attribute names used by card stats and modifiers.
const (
	AttributeDefense       = "defense"
	AttributeAttack        = "attack"
	AttributeCounterAttack = "counter_attack"
)

// AbilityType is the immutable template for a card power. It is constructed at
// catalog-load time and shared read-only by every bound Ability instance.
type AbilityType struct {
	ID                string            `yaml:"id"`
	Name              string            `yaml:"name"`
	Description       string            `yaml:"description"`
	Trigger           Trigger           `yaml:"trigger"`
	CooldownTurns     int               `yaml:"cooldown_turns"`
	UsesPerTurn       int               `yaml:"uses_per_turn"`  // 0 = unlimited
	UsesPerMatch      int               `yaml:"uses_per_match"` // 0 = unlimited
	RequiresFaceUp    bool              `yaml:"requires_face_up"`
	OperationCost     int               `yaml:"operation_cost"`
	Targeting         Targeting         `yaml:"targeting"`
	Range             int               `yaml:"range"`
	CanTargetFaceDown bool              `yaml:"can_target_face_down"`
	Effect            Effect            `yaml:"effect"`
	EffectValue       int               `yaml:"effect_value"`
	EffectDuration    int               `yaml:"effect_duration"` // turns; 0 = permanent
	Params            map[string]string `yaml:"params"`
}

// Validate checks the template invariants.
func (at *AbilityType) Validate() error {
	if at.ID == "" {
		return fmt.Errorf("ability: id is required")
	}
	if !at.Trigger.Valid() {
		return fmt.Errorf("ability %s: unknown trigger %q", at.ID, at.Trigger)
	}
	if !at.Targeting.Valid() {
		return fmt.Errorf("ability %s: unknown targeting %q", at.ID, at.Targeting)
	}
	if !at.Effect.Valid() {
		return fmt.Errorf("ability %s: unknown effect %q", at.ID, at.Effect)
	}
	if at.CooldownTurns < 0 || at.UsesPerTurn < 0 || at.UsesPerMatch < 0 {
		return fmt.Errorf("ability %s: usage limits must be non-negative", at.ID)
	}
	if at.OperationCost < 0 {
		return fmt.Errorf("ability %s: operation cost must be non-negative", at.ID)
	}
	return nil
}

// CardType is the immutable template shared by every runtime copy of a card.
// Published instances are never mutated; deck-building variants clone first.
type CardType struct {
	ID                string         `yaml:"id"`
	Title             string         `yaml:"title"`
	Description       string         `yaml:"description"`
	Category          Category       `yaml:"category"`
	Subtype           string         `yaml:"subtype"`
	DeploymentCost    int            `yaml:"deployment_cost"`
	OperationCost     int            `yaml:"operation_cost"`
	BaseDefense       int            `yaml:"base_defense"`
	BaseAttack        int            `yaml:"base_attack"`
	BaseCounterAttack int            `yaml:"base_counter_attack"`
	Rarity            string         `yaml:"rarity"`
	SetID             string         `yaml:"set_id"`
	Image             string         `yaml:"image"`
	Attributes        map[string]int `yaml:"attributes"`
	Abilities         []AbilityType  `yaml:"abilities"`
}

// Validate checks the template invariants.
func (ct *CardType) Validate() error {
	if ct.ID == "" {
		return fmt.Errorf("card: id is required")
	}
	if ct.Title == "" {
		return fmt.Errorf("card %s: title is required", ct.ID)
	}
	if !ct.Category.Valid() {
		return fmt.Errorf("card %s: unknown category %q", ct.ID, ct.Category)
	}
	if ct.DeploymentCost < 0 || ct.OperationCost < 0 {
		return fmt.Errorf("card %s: costs must be non-negative", ct.ID)
	}
	if ct.BaseDefense < 1 {
		return fmt.Errorf("card %s: base defense must be at least 1", ct.ID)
	}
	if ct.BaseAttack < 0 || ct.BaseCounterAttack < 0 {
		return fmt.Errorf("card %s: attack values must be non-negative", ct.ID)
	}
	for i := range ct.Abilities {
		if err := ct.Abilities[i].Validate(); err != nil {
			return fmt.Errorf("card %s: %w", ct.ID, err)
		}
	}
	return nil
}

// AbilityByID returns the ability template with the given id, if present.
func (ct *CardType) AbilityByID(id string) (*AbilityType, bool) {
	for i := range ct.Abilities {
		if ct.Abilities[i].ID == id {
			return &ct.Abilities[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy for deck-building variants. The published
// original stays untouched.
func (ct *CardType) Clone() *CardType {
	cp := *ct
	cp.Attributes = make(map[string]int, len(ct.Attributes))
	for k, v := range ct.Attributes {
		cp.Attributes[k] = v
	}
	cp.Abilities = make([]AbilityType, len(ct.Abilities))
	copy(cp.Abilities, ct.Abilities)
	for i := range cp.Abilities {
		if ct.Abilities[i].Params != nil {
			params := make(map[string]string, len(ct.Abilities[i].Params))
			for k, v := range ct.Abilities[i].Params {
				params[k] = v
			}
			cp.Abilities[i].Params = params
		}
	}
	return &cp
}
