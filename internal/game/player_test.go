package game

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlayerStartsWithConfiguredCredits(t *testing.T) {
	settings := testSettings()
	p := NewPlayer("alice", "Alice", settings)
	assert.Equal(t, settings.StartingCredits, p.Credits())
	assert.Equal(t, 0, p.DeckCount())
	assert.Empty(t, p.Hand())
	assert.Equal(t, -1, p.SlotOf(nil))
}

func TestDrawCardMovesTopOfDeckToHand(t *testing.T) {
	p := NewPlayer("alice", "Alice", testSettings())
	first := NewCard(unitTemplate("first", 1, 1, 1, 0))
	second := NewCard(unitTemplate("second", 1, 1, 1, 0))
	p.addToDeck(first)
	p.addToDeck(second)

	drawn := p.DrawCard()
	require.NotNil(t, drawn)
	assert.Equal(t, second.ID(), drawn.ID(), "draw must come from the top")
	assert.Equal(t, 1, p.DeckCount())
	assert.True(t, p.HandContains(drawn))
}

func TestDrawCardEmptyDeckReturnsNil(t *testing.T) {
	p := NewPlayer("alice", "Alice", testSettings())
	assert.Nil(t, p.DrawCard())
}

func TestDrawCardFullHandReturnsNil(t *testing.T) {
	settings := testSettings()
	settings.MaxHandSize = 2
	p := NewPlayer("alice", "Alice", settings)
	for i := 0; i < 3; i++ {
		p.addToDeck(NewCard(unitTemplate("filler", 1, 1, 1, 0)))
	}

	require.NotNil(t, p.DrawCard())
	require.NotNil(t, p.DrawCard())
	assert.Nil(t, p.DrawCard())
	assert.Equal(t, 1, p.DeckCount(), "failed draw must not consume the deck")
}

func TestDeployCardHappyPath(t *testing.T) {
	p := NewPlayer("alice", "Alice", testSettings())
	c := giveCard(p, unitTemplate("rifle", 3, 2, 3, 1))

	require.True(t, p.DeployCard(c, 2))
	assert.Equal(t, 7, p.Credits())
	assert.Equal(t, c.ID(), p.CardAt(2).ID())
	assert.False(t, p.HandContains(c))
	assert.Equal(t, 2, p.SlotOf(c))
}

func TestDeployCardRejectsBadInput(t *testing.T) {
	settings := testSettings()
	p := NewPlayer("alice", "Alice", settings)
	c := giveCard(p, unitTemplate("rifle", 3, 2, 3, 1))

	assert.False(t, p.DeployCard(c, -1), "negative slot")
	assert.False(t, p.DeployCard(c, settings.BattlefieldSlots), "slot out of range")

	blocker := giveCard(p, unitTemplate("blocker", 0, 1, 1, 0))
	require.True(t, p.DeployCard(blocker, 0))
	assert.False(t, p.DeployCard(c, 0), "occupied slot")

	stranger := NewCard(unitTemplate("stranger", 1, 1, 1, 0))
	assert.False(t, p.DeployCard(stranger, 1), "card not in hand")

	expensive := giveCard(p, unitTemplate("tank", 99, 5, 8, 3))
	assert.False(t, p.DeployCard(expensive, 1), "unaffordable")
	assert.True(t, p.HandContains(expensive), "failed deploy must not move the card")
	assert.Equal(t, 10, p.Credits())
}

func TestRemoveFromBattlefieldMovesToDiscard(t *testing.T) {
	p := NewPlayer("alice", "Alice", testSettings())
	c := placeCard(p, unitTemplate("rifle", 2, 2, 3, 1), 1)

	require.True(t, p.RemoveFromBattlefield(c))
	assert.Nil(t, p.CardAt(1))
	require.Len(t, p.Discard(), 1)
	assert.Equal(t, c.ID(), p.Discard()[0].ID())
	assert.False(t, p.RemoveFromBattlefield(c))
}

func TestDiscardFromHand(t *testing.T) {
	p := NewPlayer("alice", "Alice", testSettings())
	c := giveCard(p, unitTemplate("rifle", 2, 2, 3, 1))

	require.True(t, p.DiscardFromHand(c))
	assert.False(t, p.HandContains(c))
	assert.Len(t, p.Discard(), 1)
	assert.False(t, p.DiscardFromHand(c))
}

func TestSpendCreditsValidation(t *testing.T) {
	p := NewPlayer("alice", "Alice", testSettings())

	assert.False(t, p.SpendCredits(-1))
	assert.False(t, p.SpendCredits(11))
	assert.Equal(t, 10, p.Credits())

	assert.True(t, p.SpendCredits(10))
	assert.Equal(t, 0, p.Credits())
}

func TestAddCreditsClampsAtMax(t *testing.T) {
	settings := testSettings()
	p := NewPlayer("alice", "Alice", settings)

	p.AddCredits(1000)
	assert.Equal(t, settings.MaxCredits, p.Credits())

	p.AddCredits(-5)
	assert.Equal(t, settings.MaxCredits, p.Credits())
}

func TestCanAfford(t *testing.T) {
	p := NewPlayer("alice", "Alice", testSettings())
	assert.True(t, p.CanAfford(0))
	assert.True(t, p.CanAfford(10))
	assert.False(t, p.CanAfford(11))
	assert.False(t, p.CanAfford(-1))
}

func TestFreeSlotReturnsLowestEmpty(t *testing.T) {
	p := NewPlayer("alice", "Alice", testSettings())
	assert.Equal(t, 0, p.FreeSlot())

	placeCard(p, unitTemplate("a", 1, 1, 1, 0), 0)
	placeCard(p, unitTemplate("b", 1, 1, 1, 0), 1)
	assert.Equal(t, 2, p.FreeSlot())

	for slot := 2; slot < testSettings().BattlefieldSlots; slot++ {
		placeCard(p, unitTemplate("c", 1, 1, 1, 0), slot)
	}
	assert.Equal(t, -1, p.FreeSlot())
}

func TestBattlefieldCardsSkipEmptySlots(t *testing.T) {
	p := NewPlayer("alice", "Alice", testSettings())
	first := placeCard(p, unitTemplate("a", 1, 1, 1, 0), 0)
	second := placeCard(p, unitTemplate("b", 1, 1, 1, 0), 3)

	deployed := p.BattlefieldCards()
	require.Len(t, deployed, 2)
	assert.Equal(t, first.ID(), deployed[0].ID())
	assert.Equal(t, second.ID(), deployed[1].ID())
}

func TestShuffleDeckIsDeterministicPerSeed(t *testing.T) {
	build := func() *Player {
		p := NewPlayer("alice", "Alice", testSettings())
		for i := 0; i < 10; i++ {
			p.addToDeck(NewCard(unitTemplate(fmt.Sprintf("filler-%d", i), 1, 1, 1, 0)))
		}
		return p
	}

	first := build()
	second := build()
	first.shuffleDeck(rand.New(rand.NewSource(7)))
	second.shuffleDeck(rand.New(rand.NewSource(7)))

	for i := range first.deck {
		if first.deck[i].Type().ID != second.deck[i].Type().ID {
			t.Fatalf("deck order diverged at %d", i)
		}
	}
	assert.Equal(t, 10, first.DeckCount())
}
