package game

import (
	"github.com/frontlinegame/frontline-server-go/internal/game/rules"
)

// Board pairs the two players and mediates turn ownership. All action
// legality and mutation live in the match orchestrator.
type Board struct {
	players [2]*Player
	turns   *rules.TurnManager
}

// NewBoard binds two players, with first taking the opening turn.
func NewBoard(first, second *Player) *Board {
	if first == nil || second == nil {
		panic("game: NewBoard requires two players")
	}
	return &Board{
		players: [2]*Player{first, second},
		turns:   rules.NewTurnManager(first.ID()),
	}
}

// Players returns both players in seat order.
func (b *Board) Players() [2]*Player { return b.players }

// PlayerByID returns the player with the given id.
func (b *Board) PlayerByID(id string) (*Player, bool) {
	for _, p := range b.players {
		if p.ID() == id {
			return p, true
		}
	}
	return nil, false
}

// CurrentTurnPlayer returns the player whose turn it is.
func (b *Board) CurrentTurnPlayer() *Player {
	p, _ := b.PlayerByID(b.turns.ActivePlayer())
	return p
}

// OpponentOf returns the other player.
func (b *Board) OpponentOf(p *Player) *Player {
	if p == nil {
		return nil
	}
	if b.players[0].ID() == p.ID() {
		return b.players[1]
	}
	return b.players[0]
}

// TurnNumber returns the current turn number (1-based).
func (b *Board) TurnNumber() int { return b.turns.TurnNumber() }

// advanceTurn hands control to the opponent and returns the new turn number.
// The counter increments only when control returns to the first player.
func (b *Board) advanceTurn() int {
	next := b.OpponentOf(b.CurrentTurnPlayer())
	return b.turns.AdvanceTurn(next.ID())
}

// findCard locates a card instance on either battlefield or headquarters.
// Hand and deck cards are deliberately out of reach: only in-play cards are
// legal targets.
func (b *Board) findCard(cardID string) (*Card, *Player, bool) {
	for _, p := range b.players {
		for _, deployed := range p.BattlefieldCards() {
			if deployed.ID() == cardID {
				return deployed, p, true
			}
		}
		if hq := p.Headquarters(); hq != nil && hq.ID() == cardID {
			return hq, p, true
		}
	}
	return nil, nil, false
}
