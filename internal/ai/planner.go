// Package ai provides baseline strategy collaborators for the rules core.
// Planners drive matches exclusively through the same public operations a
// human player would use; the engine only checks legality of what they call.
package ai

import (
	"github.com/frontlinegame/frontline-server-go/internal/catalog"
	"github.com/frontlinegame/frontline-server-go/internal/game"
	"go.uber.org/zap"
)

// GreedyPlanner plays the simplest legal turn: deploy the cheapest
// deployable unit into the lowest free slot, play affordable orders, attack
// with every ready unit against the first legal defender, then end the turn.
type GreedyPlanner struct {
	logger *zap.Logger
}

// NewGreedyPlanner creates a planner. A nil logger is replaced with a no-op.
func NewGreedyPlanner(logger *zap.Logger) *GreedyPlanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GreedyPlanner{logger: logger}
}

// TakeTurn implements game.Strategy.
func (gp *GreedyPlanner) TakeTurn(m *game.Match, self *game.Player) {
	gp.deployPhase(m, self)
	gp.attackPhase(m, self)
	m.NextTurn()
}

// deployPhase deploys units cheapest-first while slots and credits allow,
// then plays any affordable order cards.
func (gp *GreedyPlanner) deployPhase(m *game.Match, self *game.Player) {
	for {
		unit := gp.cheapestDeployableUnit(m, self)
		if unit == nil {
			break
		}
		slot := self.FreeSlot()
		if slot < 0 || !m.DeployCard(self.ID(), unit, slot) {
			break
		}
		gp.logger.Debug("planner deployed unit",
			zap.String("player", self.ID()),
			zap.String("card", unit.Type().Title),
			zap.Int("slot", slot),
		)
	}

	for _, held := range self.Hand() {
		if m.CanDeployOrderCard(self.ID(), held) {
			m.DeployCard(self.ID(), held, game.OrderSlot)
		}
	}
}

// attackPhase attacks with every unit that can still act, always at the
// first legal enemy defender.
func (gp *GreedyPlanner) attackPhase(m *game.Match, self *game.Player) {
	opponent := m.Board().OpponentOf(self)
	for _, attacker := range self.BattlefieldCards() {
		for _, defender := range opponent.BattlefieldCards() {
			if m.CanAttack(attacker, defender) {
				m.InitiateAttack(attacker, defender)
				break
			}
		}
	}
}

func (gp *GreedyPlanner) cheapestDeployableUnit(m *game.Match, self *game.Player) *game.Card {
	var best *game.Card
	for _, held := range self.Hand() {
		if held.Type().Category != catalog.CategoryUnit {
			continue
		}
		if !m.CanDeployUnitCard(self.ID(), held) {
			continue
		}
		if best == nil || held.Type().DeploymentCost < best.Type().DeploymentCost {
			best = held
		}
	}
	return best
}
