package game

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/frontlinegame/frontline-server-go/internal/catalog"
)

// testSettings returns the default rules with a larger opening balance so
// scenarios do not stall on credits.
func testSettings() Settings {
	s := DefaultSettings()
	s.StartingCredits = 10
	s.StartingHandSize = 3
	return s
}

func unitTemplate(id string, deployCost, attack, defense, counter int) *catalog.CardType {
	return &catalog.CardType{
		ID:                id,
		Title:             id,
		Category:          catalog.CategoryUnit,
		DeploymentCost:    deployCost,
		OperationCost:     1,
		BaseDefense:       defense,
		BaseAttack:        attack,
		BaseCounterAttack: counter,
	}
}

func hqTemplate(id string, defense int) *catalog.CardType {
	return &catalog.CardType{
		ID:          id,
		Title:       id,
		Category:    catalog.CategoryHeadquarters,
		BaseDefense: defense,
	}
}

func deckOf(hq *catalog.CardType, copies int, card *catalog.CardType) *catalog.DeckList {
	list := &catalog.DeckList{Name: "test", Headquarters: hq}
	for i := 0; i < copies; i++ {
		list.Cards = append(list.Cards, card)
	}
	return list
}

// newStartedMatch starts a match between alice (first player) and bob, both
// human so no strategy collaborator acts.
func newStartedMatch(t *testing.T, settings Settings, deckA, deckB *catalog.DeckList) *Match {
	t.Helper()
	a := PlayerSpec{ID: "alice", Name: "Alice", Deck: deckA, Human: true}
	b := PlayerSpec{ID: "bob", Name: "Bob", Deck: deckB, Human: true}
	m := NewMatch("m-test", a, b, settings, 1, zaptest.NewLogger(t))
	if !m.StartMatch() {
		t.Fatal("StartMatch returned false")
	}
	return m
}

func defaultStartedMatch(t *testing.T) *Match {
	t.Helper()
	unit := unitTemplate("rifle", 2, 2, 3, 1)
	return newStartedMatch(t, testSettings(),
		deckOf(hqTemplate("hq-a", 20), 10, unit),
		deckOf(hqTemplate("hq-b", 20), 10, unit),
	)
}

func playerOrFail(t *testing.T, m *Match, id string) *Player {
	t.Helper()
	p, ok := m.Board().PlayerByID(id)
	if !ok {
		t.Fatalf("player %s not found", id)
	}
	return p
}

// giveCard creates a card directly in the player's hand.
func giveCard(p *Player, tpl *catalog.CardType) *Card {
	c := NewCard(tpl)
	c.setOwner(p)
	p.hand = append(p.hand, c)
	return c
}

// placeCard creates a card directly on the player's battlefield.
func placeCard(p *Player, tpl *catalog.CardType, slot int) *Card {
	c := NewCard(tpl)
	c.setOwner(p)
	p.battlefield[slot] = c
	return c
}
