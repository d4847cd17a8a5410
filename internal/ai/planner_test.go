package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/frontlinegame/frontline-server-go/internal/catalog"
	"github.com/frontlinegame/frontline-server-go/internal/game"
)

func testDeck(hqID string) *catalog.DeckList {
	hq := &catalog.CardType{ID: hqID, Title: hqID, Category: catalog.CategoryHeadquarters, BaseDefense: 20}
	rifle := &catalog.CardType{
		ID: "rifle", Title: "Rifle Squad", Category: catalog.CategoryUnit,
		DeploymentCost: 2, OperationCost: 1,
		BaseDefense: 3, BaseAttack: 2, BaseCounterAttack: 1,
	}
	tank := &catalog.CardType{
		ID: "tank", Title: "Heavy Tank", Category: catalog.CategoryUnit,
		DeploymentCost: 6, OperationCost: 2,
		BaseDefense: 8, BaseAttack: 5, BaseCounterAttack: 3,
	}

	deck := &catalog.DeckList{Name: "test", Headquarters: hq}
	for i := 0; i < 8; i++ {
		deck.Cards = append(deck.Cards, rifle)
	}
	for i := 0; i < 4; i++ {
		deck.Cards = append(deck.Cards, tank)
	}
	return deck
}

func TestGreedyPlannerPlaysItsTurn(t *testing.T) {
	settings := game.DefaultSettings()
	settings.MaxTurns = 3

	planner := NewGreedyPlanner(zaptest.NewLogger(t))
	a := game.PlayerSpec{ID: "human", Name: "Human", Deck: testDeck("hq-a"), Human: true}
	b := game.PlayerSpec{ID: "cpu", Name: "CPU", Deck: testDeck("hq-b"), Human: false, Strategy: planner}

	m := game.NewMatch("m-planner", a, b, settings, 42, zaptest.NewLogger(t))
	require.True(t, m.StartMatch())

	// Hand the turn to the planner; it must deploy, act, and return the turn.
	require.True(t, m.NextTurn())

	cpu, ok := m.Board().PlayerByID("cpu")
	require.True(t, ok)
	assert.Equal(t, "human", m.Board().CurrentTurnPlayer().ID(), "planner ends its turn")
	assert.NotEmpty(t, cpu.BattlefieldCards(), "planner deploys at least one unit")
}

func TestGreedyPlannerDeploysCheapestFirst(t *testing.T) {
	settings := game.DefaultSettings()
	settings.MaxTurns = 2
	settings.StartingCredits = 6
	settings.StartingHandSize = 6

	planner := NewGreedyPlanner(zaptest.NewLogger(t))
	a := game.PlayerSpec{ID: "human", Name: "Human", Deck: testDeck("hq-a"), Human: true}
	b := game.PlayerSpec{ID: "cpu", Name: "CPU", Deck: testDeck("hq-b"), Human: false, Strategy: planner}

	m := game.NewMatch("m-cheapest", a, b, settings, 7, zaptest.NewLogger(t))
	require.True(t, m.StartMatch())
	require.True(t, m.NextTurn())

	cpu, _ := m.Board().PlayerByID("cpu")
	for _, deployed := range cpu.BattlefieldCards() {
		assert.Equal(t, "rifle", deployed.Type().ID,
			"with limited credits the planner prefers the cheap unit")
	}
}

func TestAIVersusAIRunsToCompletion(t *testing.T) {
	settings := game.DefaultSettings()
	settings.MaxTurns = 8

	a := game.PlayerSpec{
		ID: "cpu-a", Name: "CPU A", Deck: testDeck("hq-a"),
		Strategy: NewGreedyPlanner(zaptest.NewLogger(t)),
	}
	b := game.PlayerSpec{
		ID: "cpu-b", Name: "CPU B", Deck: testDeck("hq-b"),
		Strategy: NewGreedyPlanner(zaptest.NewLogger(t)),
	}

	m := game.NewMatch("m-ai", a, b, settings, 99, zaptest.NewLogger(t))

	// With both sides driven by strategies the whole match runs inside
	// StartMatch: each planner ends its turn, which starts the opponent's.
	require.True(t, m.StartMatch())

	assert.Equal(t, game.MatchStateEnded, m.State())
	players := m.Board().Players()
	assert.NotEmpty(t, players[0].Discard(), "combat happened")
}
