package game

import "time"

// MatchView is a read-only snapshot of a match for a requesting player.
type MatchView struct {
	MatchID      string       `json:"match_id"`
	State        MatchState   `json:"state"`
	Turn         int          `json:"turn"`
	ActivePlayer string       `json:"active_player"`
	WinnerID     string       `json:"winner_id,omitempty"`
	Players      []PlayerView `json:"players"`
	StartedAt    time.Time    `json:"started_at"`
}

// PlayerView is a player's visible state. The opponent's hand is hidden:
// only its size is reported.
type PlayerView struct {
	PlayerID     string     `json:"player_id"`
	Name         string     `json:"name"`
	Credits      int        `json:"credits"`
	DeckCount    int        `json:"deck_count"`
	HandCount    int        `json:"hand_count"`
	Hand         []CardView `json:"hand,omitempty"`
	Battlefield  []CardView `json:"battlefield"`
	Discard      []CardView `json:"discard"`
	Headquarters *CardView  `json:"headquarters,omitempty"`
}

// CardView is a card's visible state. Face-down cards viewed by the
// opponent expose only their instance id and position.
type CardView struct {
	ID                  string `json:"id"`
	TypeID              string `json:"type_id,omitempty"`
	Title               string `json:"title,omitempty"`
	Category            string `json:"category,omitempty"`
	Slot                int    `json:"slot"`
	FaceDown            bool   `json:"face_down"`
	CurrentDefense      int    `json:"current_defense"`
	Defense             int    `json:"defense"`
	Attack              int    `json:"attack"`
	CounterAttack       int    `json:"counter_attack"`
	HasAttackedThisTurn bool   `json:"has_attacked_this_turn"`
}

// View builds the snapshot visible to requestingPlayerID. An empty id yields
// the omniscient spectator view.
func (m *Match) View(requestingPlayerID string) MatchView {
	view := MatchView{
		MatchID:   m.id,
		State:     m.state,
		WinnerID:  m.winnerID,
		StartedAt: m.startedAt,
	}
	if m.board == nil {
		return view
	}
	view.Turn = m.board.TurnNumber()
	view.ActivePlayer = m.board.CurrentTurnPlayer().ID()

	for _, p := range m.board.Players() {
		pv := PlayerView{
			PlayerID:  p.ID(),
			Name:      p.Name(),
			Credits:   p.Credits(),
			DeckCount: p.DeckCount(),
			HandCount: len(p.Hand()),
		}
		ownHand := requestingPlayerID == "" || requestingPlayerID == p.ID()
		if ownHand {
			for _, held := range p.Hand() {
				pv.Hand = append(pv.Hand, cardView(held, -1, true))
			}
		}
		for slot := 0; slot < m.settings.BattlefieldSlots; slot++ {
			if deployed := p.CardAt(slot); deployed != nil {
				pv.Battlefield = append(pv.Battlefield, cardView(deployed, slot, ownHand || !deployed.FaceDown()))
			}
		}
		for _, dead := range p.Discard() {
			pv.Discard = append(pv.Discard, cardView(dead, -1, true))
		}
		if hq := p.Headquarters(); hq != nil {
			hqView := cardView(hq, -1, true)
			pv.Headquarters = &hqView
		}
		view.Players = append(view.Players, pv)
	}
	return view
}

func cardView(c *Card, slot int, revealed bool) CardView {
	view := CardView{
		ID:       c.ID(),
		Slot:     slot,
		FaceDown: c.FaceDown(),
	}
	if !revealed {
		return view
	}
	view.TypeID = c.Type().ID
	view.Title = c.Type().Title
	view.Category = string(c.Type().Category)
	view.CurrentDefense = c.CurrentDefense()
	view.Defense = c.Defense()
	view.Attack = c.Attack()
	view.CounterAttack = c.CounterAttack()
	view.HasAttackedThisTurn = c.HasAttackedThisTurn()
	return view
}
