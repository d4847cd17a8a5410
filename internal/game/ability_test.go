package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frontlinegame/frontline-server-go/internal/catalog"
)

func cardWithAbility(at catalog.AbilityType) (*Card, *Ability) {
	tpl := unitTemplate("caster", 2, 2, 5, 1)
	tpl.Abilities = []catalog.AbilityType{at}
	c := NewCard(tpl)
	return c, c.Abilities()[0]
}

func TestAbilityPerTurnCap(t *testing.T) {
	_, ab := cardWithAbility(catalog.AbilityType{
		ID: "jolt", Trigger: catalog.TriggerManual,
		Targeting: catalog.TargetingSingleEnemy,
		Effect:    catalog.EffectDamage, EffectValue: 1,
		UsesPerTurn: 2,
	})
	target := NewCard(unitTemplate("dummy", 1, 0, 10, 0))

	require.True(t, ab.Use([]*Card{target}))
	require.True(t, ab.Use([]*Card{target}))
	assert.False(t, ab.CanUse())
	assert.False(t, ab.Use([]*Card{target}))
	assert.Equal(t, 8, target.CurrentDefense())

	ab.OnTurnStart()
	assert.True(t, ab.CanUse())
}

func TestAbilityPerMatchCap(t *testing.T) {
	_, ab := cardWithAbility(catalog.AbilityType{
		ID: "nova", Trigger: catalog.TriggerManual,
		Targeting: catalog.TargetingSingleEnemy,
		Effect:    catalog.EffectDamage, EffectValue: 1,
		UsesPerMatch: 1,
	})
	target := NewCard(unitTemplate("dummy", 1, 0, 10, 0))

	require.True(t, ab.Use([]*Card{target}))
	ab.OnTurnStart()
	assert.False(t, ab.CanUse())
	assert.Equal(t, 1, ab.TotalUses())
}

func TestAbilityCooldown(t *testing.T) {
	_, ab := cardWithAbility(catalog.AbilityType{
		ID: "barrage", Trigger: catalog.TriggerManual,
		Targeting: catalog.TargetingSingleEnemy,
		Effect:    catalog.EffectDamage, EffectValue: 1,
		CooldownTurns: 2,
	})
	target := NewCard(unitTemplate("dummy", 1, 0, 10, 0))

	require.True(t, ab.CanUse(), "cooldown must not block a never-used ability")
	require.True(t, ab.Use([]*Card{target}))

	ab.OnTurnStart()
	assert.False(t, ab.CanUse())
	ab.OnTurnStart()
	assert.True(t, ab.CanUse())
}

func TestAbilityRequiresFaceUp(t *testing.T) {
	owner, ab := cardWithAbility(catalog.AbilityType{
		ID: "snipe", Trigger: catalog.TriggerManual,
		Targeting: catalog.TargetingSingleEnemy,
		Effect:    catalog.EffectDamage, EffectValue: 1,
		RequiresFaceUp: true,
	})

	owner.SetFaceDown(true)
	assert.False(t, ab.CanUse())
	owner.SetFaceDown(false)
	assert.True(t, ab.CanUse())
}

func TestAbilityInactiveBlocksUse(t *testing.T) {
	_, ab := cardWithAbility(catalog.AbilityType{
		ID: "jolt", Trigger: catalog.TriggerManual,
		Targeting: catalog.TargetingNone,
		Effect:    catalog.EffectDraw, EffectValue: 1,
	})
	ab.SetActive(false)
	assert.False(t, ab.CanUse())
	assert.False(t, ab.Use(nil))
}

func TestGetValidTargetsFiltersDeadAndFaceDown(t *testing.T) {
	_, ab := cardWithAbility(catalog.AbilityType{
		ID: "jolt", Trigger: catalog.TriggerManual,
		Targeting: catalog.TargetingSingleEnemy,
		Effect:    catalog.EffectDamage, EffectValue: 1,
	})

	live := NewCard(unitTemplate("live", 1, 0, 5, 0))
	dead := NewCard(unitTemplate("dead", 1, 0, 5, 0))
	dead.TakeDamage(5)
	hidden := NewCard(unitTemplate("hidden", 1, 0, 5, 0))
	hidden.SetFaceDown(true)

	valid := ab.GetValidTargets([]*Card{live, dead, hidden, nil})
	require.Len(t, valid, 1)
	assert.Equal(t, live.ID(), valid[0].ID())
}

func TestGetValidTargetsAllowsFaceDownWhenTemplatePermits(t *testing.T) {
	_, ab := cardWithAbility(catalog.AbilityType{
		ID: "sweep", Trigger: catalog.TriggerManual,
		Targeting: catalog.TargetingSingleEnemy,
		Effect:    catalog.EffectDamage, EffectValue: 1,
		CanTargetFaceDown: true,
	})

	hidden := NewCard(unitTemplate("hidden", 1, 0, 5, 0))
	hidden.SetFaceDown(true)
	assert.Len(t, ab.GetValidTargets([]*Card{hidden}), 1)
}

func TestUseRequiresTargetsForTargetedModes(t *testing.T) {
	_, ab := cardWithAbility(catalog.AbilityType{
		ID: "jolt", Trigger: catalog.TriggerManual,
		Targeting: catalog.TargetingSingleEnemy,
		Effect:    catalog.EffectDamage, EffectValue: 1,
	})

	assert.False(t, ab.Use(nil))
	assert.Equal(t, 0, ab.TotalUses())
}

func TestSelfTargetingHitsOwner(t *testing.T) {
	owner, ab := cardWithAbility(catalog.AbilityType{
		ID: "mend", Trigger: catalog.TriggerManual,
		Targeting: catalog.TargetingSelf,
		Effect:    catalog.EffectHeal, EffectValue: 2,
	})
	owner.TakeDamage(3)

	require.True(t, ab.Use(nil))
	assert.Equal(t, 4, owner.CurrentDefense())
}

func TestBuffEffectUsesParamAttribute(t *testing.T) {
	_, ab := cardWithAbility(catalog.AbilityType{
		ID: "fortify", Trigger: catalog.TriggerManual,
		Targeting: catalog.TargetingSingleAlly,
		Effect:    catalog.EffectBuff, EffectValue: 2, EffectDuration: 1,
		Params: map[string]string{"attribute": catalog.AttributeDefense},
	})
	target := NewCard(unitTemplate("dummy", 1, 0, 5, 0))

	require.True(t, ab.Use([]*Card{target}))
	assert.Equal(t, 7, target.Defense())

	target.startTurn()
	assert.Equal(t, 5, target.Defense())
}

func TestBuffEffectDefaultsToAttack(t *testing.T) {
	_, ab := cardWithAbility(catalog.AbilityType{
		ID: "rally", Trigger: catalog.TriggerManual,
		Targeting: catalog.TargetingSingleAlly,
		Effect:    catalog.EffectBuff, EffectValue: 2,
	})
	target := NewCard(unitTemplate("dummy", 1, 1, 5, 0))

	require.True(t, ab.Use([]*Card{target}))
	assert.Equal(t, 3, target.Attack())
}

func TestDebuffEffectSubtracts(t *testing.T) {
	_, ab := cardWithAbility(catalog.AbilityType{
		ID: "suppress", Trigger: catalog.TriggerManual,
		Targeting: catalog.TargetingSingleEnemy,
		Effect:    catalog.EffectDebuff, EffectValue: 2,
	})
	target := NewCard(unitTemplate("dummy", 1, 3, 5, 0))

	require.True(t, ab.Use([]*Card{target}))
	assert.Equal(t, 1, target.Attack())
}

func TestDrawEffectDrawsForOwningPlayer(t *testing.T) {
	p := NewPlayer("alice", "Alice", testSettings())
	for i := 0; i < 3; i++ {
		p.addToDeck(NewCard(unitTemplate("filler", 1, 1, 1, 0)))
	}

	tpl := unitTemplate("quartermaster", 2, 1, 3, 0)
	tpl.Abilities = []catalog.AbilityType{{
		ID: "requisition", Trigger: catalog.TriggerManual,
		Targeting: catalog.TargetingNone,
		Effect:    catalog.EffectDraw, EffectValue: 2,
	}}
	caster := placeCard(p, tpl, 0)

	require.True(t, caster.Abilities()[0].Use(nil))
	assert.Len(t, p.Hand(), 2)
	assert.Equal(t, 1, p.DeckCount())
}

func TestDiscardEffectDropsOldestFromTargetOwnerHand(t *testing.T) {
	settings := testSettings()
	enemy := NewPlayer("bob", "Bob", settings)
	oldest := giveCard(enemy, unitTemplate("old", 1, 1, 1, 0))
	giveCard(enemy, unitTemplate("new", 1, 1, 1, 0))
	enemyUnit := placeCard(enemy, unitTemplate("dummy", 1, 0, 5, 0), 0)

	_, ab := cardWithAbility(catalog.AbilityType{
		ID: "sabotage", Trigger: catalog.TriggerManual,
		Targeting: catalog.TargetingSingleEnemy,
		Effect:    catalog.EffectDiscard, EffectValue: 1,
	})

	require.True(t, ab.Use([]*Card{enemyUnit}))
	require.Len(t, enemy.Hand(), 1)
	discard := enemy.Discard()
	require.Len(t, discard, 1)
	assert.Equal(t, oldest.ID(), discard[0].ID())
}

func TestUnknownEffectKindPanics(t *testing.T) {
	_, ab := cardWithAbility(catalog.AbilityType{
		ID: "glitch", Trigger: catalog.TriggerManual,
		Targeting: catalog.TargetingNone,
		Effect:    catalog.Effect("EXPLODE"),
	})
	require.Panics(t, func() { ab.Use(nil) })
}

func TestMarkAsUsedTracksCounters(t *testing.T) {
	_, ab := cardWithAbility(catalog.AbilityType{
		ID: "jolt", Trigger: catalog.TriggerManual,
		Targeting: catalog.TargetingNone,
		Effect:    catalog.EffectDraw, EffectValue: 0,
	})

	ab.MarkAsUsed()
	ab.MarkAsUsed()
	assert.Equal(t, 2, ab.UsesThisTurn())
	assert.Equal(t, 2, ab.TotalUses())

	ab.OnTurnStart()
	assert.Equal(t, 0, ab.UsesThisTurn())
	assert.Equal(t, 2, ab.TotalUses())
}
