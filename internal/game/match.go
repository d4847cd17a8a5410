package game

import (
	"math/rand"
	"time"

	"github.com/frontlinegame/frontline-server-go/internal/catalog"
	"github.com/frontlinegame/frontline-server-go/internal/game/rules"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MatchState represents the lifecycle state of a match.
type MatchState string

const (
	MatchStateNotStarted MatchState = "NOT_STARTED"
	MatchStateInProgress MatchState = "IN_PROGRESS"
	MatchStateEnded      MatchState = "ENDED"
)

// Strategy is the contract for the opponent's decision-making collaborator.
// When the non-human side gains the turn, the orchestrator invokes TakeTurn;
// the collaborator must eventually call back into the same public operations
// a human driver would use (DeployCard, InitiateAttack, UseAbility, NextTurn).
type Strategy interface {
	TakeTurn(m *Match, self *Player)
}

// PlayerSpec describes one side of a match.
type PlayerSpec struct {
	ID       string
	Name     string
	Deck     *catalog.DeckList
	Human    bool
	Strategy Strategy
}

// Match is a single two-player match: it validates and executes every
// player-visible action against the board and is the one place deployment
// and combat legality is decided.
//
// The match is single-threaded cooperative: every operation runs
// synchronously to completion, and a concurrent host must serialize calls.
type Match struct {
	id       string
	state    MatchState
	settings Settings
	logger   *zap.Logger
	bus      *rules.EventBus
	rng      *rand.Rand

	board      *Board
	specs      [2]PlayerSpec
	strategies map[string]Strategy
	winnerID   string
	startedAt  time.Time
	endedAt    time.Time
}

// NewMatch prepares a match in the NotStarted state. Both specs need an ID
// and a resolved deck; seed 0 selects a time-based shuffle seed.
func NewMatch(id string, a, b PlayerSpec, settings Settings, seed int64, logger *zap.Logger) *Match {
	if a.Deck == nil || b.Deck == nil {
		panic("game: NewMatch requires a deck for both players")
	}
	if a.ID == "" || b.ID == "" || a.ID == b.ID {
		panic("game: NewMatch requires two distinct player ids")
	}
	if id == "" {
		id = uuid.NewString()
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Match{
		id:         id,
		state:      MatchStateNotStarted,
		settings:   settings,
		logger:     logger,
		bus:        rules.NewEventBus(),
		rng:        rand.New(rand.NewSource(seed)),
		specs:      [2]PlayerSpec{a, b},
		strategies: make(map[string]Strategy),
	}
	for _, spec := range m.specs {
		if !spec.Human && spec.Strategy != nil {
			m.strategies[spec.ID] = spec.Strategy
		}
	}
	return m
}

// ID returns the match id.
func (m *Match) ID() string { return m.id }

// State returns the lifecycle state.
func (m *Match) State() MatchState { return m.state }

// Board returns the board, or nil before StartMatch.
func (m *Match) Board() *Board { return m.board }

// Bus returns the event bus collaborators subscribe to.
func (m *Match) Bus() *rules.EventBus { return m.bus }

// WinnerID returns the winning player id once the match has ended, or "".
func (m *Match) WinnerID() string { return m.winnerID }

// StartMatch builds both players from their decks, shuffles, deals starting
// hands, and enters InProgress, then runs the first StartTurn. It returns
// false if the match already started.
func (m *Match) StartMatch() bool {
	if m.state != MatchStateNotStarted {
		return false
	}

	players := [2]*Player{}
	for i, spec := range m.specs {
		p := NewPlayer(spec.ID, spec.Name, m.settings)
		p.setHeadquarters(NewCard(spec.Deck.Headquarters))
		for _, ct := range spec.Deck.Cards {
			p.addToDeck(NewCard(ct))
		}
		p.shuffleDeck(m.rng)
		players[i] = p
	}
	m.board = NewBoard(players[0], players[1])

	for _, p := range players {
		for i := 0; i < m.settings.StartingHandSize; i++ {
			if drawn := p.DrawCard(); drawn != nil {
				m.publishCard(rules.EventCardDrawn, p, drawn)
			}
		}
	}

	m.state = MatchStateInProgress
	m.startedAt = time.Now()
	m.logger.Info("match started",
		zap.String("match_id", m.id),
		zap.String("first_player", players[0].ID()),
		zap.String("second_player", players[1].ID()),
	)
	m.bus.Publish(rules.NewEvent(rules.EventMatchStarted, m.id, players[0].ID(), ""))

	m.startTurn()
	return true
}

// startTurn begins the current player's turn: it enforces the max-turns cap,
// draws one card, and signals the strategy collaborator when the turn does
// not belong to the human side. The hook returns control immediately; the
// collaborator acts by calling back into the public operations.
func (m *Match) startTurn() {
	if m.state != MatchStateInProgress {
		return
	}
	if m.board.TurnNumber() > m.settings.MaxTurns {
		m.logger.Info("max turns reached",
			zap.String("match_id", m.id),
			zap.Int("turn", m.board.TurnNumber()),
		)
		m.EndMatch("")
		return
	}

	current := m.board.CurrentTurnPlayer()
	evt := rules.NewEvent(rules.EventTurnStarted, m.id, current.ID(), "")
	evt.Turn = m.board.TurnNumber()
	m.bus.Publish(evt)

	if drawn := current.DrawCard(); drawn != nil {
		m.publishCard(rules.EventCardDrawn, current, drawn)
	}

	m.processTriggered(current, catalog.TriggerOnTurnStart)
	m.runDeathChecks()
	if m.state != MatchStateInProgress {
		return
	}

	if strategy, ok := m.strategies[current.ID()]; ok {
		hook := rules.NewEvent(rules.EventProcessOpponentTurn, m.id, current.ID(), "")
		hook.Turn = m.board.TurnNumber()
		m.bus.Publish(hook)
		strategy.TakeTurn(m, current)
	}
}

// NextTurn ends the current player's turn and starts the opponent's: it runs
// end-of-turn effects for the ending side, rotates control, grants the new
// player's credit income, resets per-turn battle state, and re-enters the
// start-of-turn flow. It returns false when the match is not in progress.
func (m *Match) NextTurn() bool {
	if m.state != MatchStateInProgress {
		return false
	}

	ending := m.board.CurrentTurnPlayer()
	m.processTriggered(ending, catalog.TriggerOnTurnEnd)
	m.runDeathChecks()
	if m.state != MatchStateInProgress {
		return false
	}

	evt := rules.NewEvent(rules.EventTurnEnded, m.id, ending.ID(), "")
	evt.Turn = m.board.TurnNumber()
	m.bus.Publish(evt)

	turn := m.board.advanceTurn()
	next := m.board.CurrentTurnPlayer()

	next.AddCredits(m.settings.CreditsPerTurn)
	credits := rules.NewEvent(rules.EventCreditsChanged, m.id, next.ID(), "")
	credits.Amount = m.settings.CreditsPerTurn
	credits.Turn = turn
	m.bus.Publish(credits)

	next.startTurn()

	m.logger.Debug("turn advanced",
		zap.String("match_id", m.id),
		zap.Int("turn", turn),
		zap.String("active_player", next.ID()),
	)

	m.startTurn()
	return true
}

// EndMatch moves the match to its terminal state. It is idempotent: calls
// after the match has ended or before it started are no-ops.
func (m *Match) EndMatch(winnerID string) {
	if m.state != MatchStateInProgress {
		return
	}
	m.state = MatchStateEnded
	m.winnerID = winnerID
	m.endedAt = time.Now()
	m.logger.Info("match ended",
		zap.String("match_id", m.id),
		zap.String("winner", winnerID),
		zap.Int("turns", m.board.TurnNumber()),
	)
	evt := rules.NewEvent(rules.EventMatchEnded, m.id, winnerID, "")
	evt.Turn = m.board.TurnNumber()
	m.bus.Publish(evt)
}

// Duration returns how long the match ran, or has been running.
func (m *Match) Duration() time.Duration {
	if m.startedAt.IsZero() {
		return 0
	}
	if m.endedAt.IsZero() {
		return time.Since(m.startedAt)
	}
	return m.endedAt.Sub(m.startedAt)
}

// CanDeployUnitCard reports whether the current player may deploy the unit:
// it must be their turn, the card a unit in their hand, the deployment cost
// affordable, and a battlefield slot free.
func (m *Match) CanDeployUnitCard(playerID string, c *Card) bool {
	p, ok := m.actingPlayer(playerID)
	if !ok || c == nil {
		return false
	}
	if c.Type().Category != catalog.CategoryUnit {
		return false
	}
	return p.HandContains(c) && p.CanAfford(c.Type().DeploymentCost) && p.FreeSlot() >= 0
}

// CanDeployOrderCard reports whether the current player may play the order
// or countermeasure: hand membership and affordability only, since these
// resolve once and never occupy a slot.
func (m *Match) CanDeployOrderCard(playerID string, c *Card) bool {
	p, ok := m.actingPlayer(playerID)
	if !ok || c == nil {
		return false
	}
	if cat := c.Type().Category; cat != catalog.CategoryOrder && cat != catalog.CategoryCountermeasure {
		return false
	}
	return p.HandContains(c) && p.CanAfford(c.Type().DeploymentCost)
}

// OrderSlot is the sentinel slot index reported for order-card deployments.
const OrderSlot = -1

// DeployCard validates and executes a deployment, dispatching by category.
// Deployment always reveals the card and fires only the deployed card's own
// deployment abilities. Units occupy the given battlefield slot; orders and
// countermeasures resolve and move straight to the discard pile. It returns
// false without mutation on any validation failure.
func (m *Match) DeployCard(playerID string, c *Card, position int) bool {
	p, ok := m.actingPlayer(playerID)
	if !ok || c == nil {
		return false
	}

	switch c.Type().Category {
	case catalog.CategoryUnit:
		if !m.CanDeployUnitCard(playerID, c) {
			return false
		}
		if position < 0 || position >= m.settings.BattlefieldSlots || p.CardAt(position) != nil {
			return false
		}
		c.SetFaceDown(false)
		if !p.DeployCard(c, position) {
			return false
		}
		m.publishDeployed(p, c, position)
		m.resolveDeploymentAbilities(p, c)
		m.runDeathChecks()
		return true

	case catalog.CategoryOrder, catalog.CategoryCountermeasure:
		if !m.CanDeployOrderCard(playerID, c) {
			return false
		}
		if !p.SpendCredits(c.Type().DeploymentCost) {
			return false
		}
		c.SetFaceDown(false)
		m.publishDeployed(p, c, OrderSlot)
		m.resolveDeploymentAbilities(p, c)
		p.DiscardFromHand(c)
		m.publishCard(rules.EventCardDiscarded, p, c)
		m.runDeathChecks()
		return true
	}
	return false
}

// CanAttack reports whether the attack is legal: both cards non-nil and on
// their owners' battlefields, different owners, the attacker fresh this turn
// and its operation cost affordable, and the attack made on the attacker
// owner's turn.
func (m *Match) CanAttack(attacker, defender *Card) bool {
	if m.state != MatchStateInProgress || attacker == nil || defender == nil {
		return false
	}
	if attacker.HasAttackedThisTurn() {
		return false
	}
	aOwner, dOwner := attacker.Owner(), defender.Owner()
	if aOwner == nil || dOwner == nil || aOwner.ID() == dOwner.ID() {
		return false
	}
	if m.board.CurrentTurnPlayer().ID() != aOwner.ID() {
		return false
	}
	if aOwner.SlotOf(attacker) < 0 || dOwner.SlotOf(defender) < 0 {
		return false
	}
	return aOwner.CanAfford(attacker.Type().OperationCost)
}

// InitiateAttack re-validates and resolves one attack: the defender takes
// the attacker's attack value; if it survives, the attacker takes the
// defender's counter-attack; the attacker's owner pays the operation cost;
// dead cards leave the battlefield. It returns false without mutation on any
// validation failure.
func (m *Match) InitiateAttack(attacker, defender *Card) bool {
	if !m.CanAttack(attacker, defender) {
		return false
	}

	attacker.attackedThisTurn = true
	attackDamage := attacker.Attack()
	counterDamage := defender.CounterAttack()

	defender.TakeDamage(attackDamage)
	if defender.CurrentDefense() > 0 {
		attacker.TakeDamage(counterDamage)
	}
	attacker.Owner().SpendCredits(attacker.Type().OperationCost)

	m.fireCardTriggers(attacker, catalog.TriggerOnDamageDealt)
	m.fireCardTriggers(defender, catalog.TriggerOnDamageTaken)

	remaining := defender.CurrentDefense()
	m.runDeathChecks()

	evt := rules.NewEvent(rules.EventAttackCompleted, m.id, attacker.Owner().ID(), attacker.ID())
	evt.TargetID = defender.ID()
	evt.Amount = attackDamage
	evt.Remaining = remaining
	evt.Turn = m.board.TurnNumber()
	m.bus.Publish(evt)

	m.logger.Debug("attack resolved",
		zap.String("match_id", m.id),
		zap.String("attacker", attacker.ID()),
		zap.String("defender", defender.ID()),
		zap.Int("damage", attackDamage),
		zap.Int("defender_remaining", remaining),
	)
	return true
}

// CanUseAbility reports whether the current player may manually activate the
// selected ability on one of their cards: manual trigger, ability gate open,
// and operation cost affordable.
func (m *Match) CanUseAbility(playerID string, c *Card, abilityTypeID string) bool {
	p, ok := m.actingPlayer(playerID)
	if !ok || c == nil {
		return false
	}
	if c.Owner() == nil || c.Owner().ID() != p.ID() {
		return false
	}
	if p.SlotOf(c) < 0 && (p.Headquarters() == nil || p.Headquarters().ID() != c.ID()) {
		return false
	}
	ability, ok := c.AbilityByTypeID(abilityTypeID)
	if !ok {
		return false
	}
	if ability.Type().Trigger != catalog.TriggerManual {
		return false
	}
	return ability.CanUse() && p.CanAfford(ability.Type().OperationCost)
}

// UseAbility validates and executes a manual ability activation against the
// named targets, paying its operation cost. Targets must satisfy the
// template's alignment; abilities with collective targeting pick their own
// candidates. It returns false without mutation on any validation failure.
func (m *Match) UseAbility(playerID string, c *Card, abilityTypeID string, targetIDs []string) bool {
	if !m.CanUseAbility(playerID, c, abilityTypeID) {
		return false
	}
	p, _ := m.actingPlayer(playerID)
	ability, _ := c.AbilityByTypeID(abilityTypeID)

	targets, ok := m.resolveTargets(p, ability, targetIDs)
	if !ok {
		return false
	}
	if !ability.Use(targets) {
		return false
	}
	p.SpendCredits(ability.Type().OperationCost)

	evt := rules.NewEvent(rules.EventAbilityUsed, m.id, p.ID(), c.ID())
	evt.Description = ability.Type().Name
	evt.Turn = m.board.TurnNumber()
	m.bus.Publish(evt)

	m.runDeathChecks()
	return true
}

// resolveTargets maps requested target ids onto cards legal for the
// ability's alignment. Collective modes ignore the request and gather every
// matching candidate.
func (m *Match) resolveTargets(p *Player, ability *Ability, targetIDs []string) ([]*Card, bool) {
	opponent := m.board.OpponentOf(p)

	switch ability.Type().Targeting {
	case catalog.TargetingNone, catalog.TargetingSelf:
		return nil, true
	case catalog.TargetingAllEnemies:
		return m.enemyCandidates(opponent), true
	case catalog.TargetingAllAllies:
		return p.BattlefieldCards(), true
	}

	if len(targetIDs) == 0 {
		return nil, false
	}
	targets := make([]*Card, 0, len(targetIDs))
	for _, id := range targetIDs {
		card, owner, found := m.board.findCard(id)
		if !found {
			return nil, false
		}
		switch ability.Type().Targeting {
		case catalog.TargetingSingleEnemy:
			if owner.ID() == p.ID() {
				return nil, false
			}
		case catalog.TargetingSingleAlly:
			if owner.ID() != p.ID() {
				return nil, false
			}
		}
		targets = append(targets, card)
	}
	return targets, true
}

// enemyCandidates returns the opponent's battlefield plus headquarters.
func (m *Match) enemyCandidates(opponent *Player) []*Card {
	candidates := opponent.BattlefieldCards()
	if hq := opponent.Headquarters(); hq != nil {
		candidates = append(candidates, hq)
	}
	return candidates
}

// resolveDeploymentAbilities fires a just-played card's OnDeployment
// abilities. Triggered abilities pick their own targets: single-enemy modes
// take the first valid enemy, collective modes take everything in range.
func (m *Match) resolveDeploymentAbilities(p *Player, c *Card) {
	for _, ability := range c.Abilities() {
		if ability.Type().Trigger != catalog.TriggerOnDeployment {
			continue
		}
		m.fireAbility(p, ability)
	}
}

// fireCardTriggers fires every ability on the card matching the trigger.
func (m *Match) fireCardTriggers(c *Card, trigger catalog.Trigger) {
	owner := c.Owner()
	if owner == nil {
		return
	}
	for _, ability := range c.Abilities() {
		if ability.Type().Trigger != trigger {
			continue
		}
		m.fireAbility(owner, ability)
	}
}

// processTriggered fires matching abilities across the player's battlefield
// and headquarters, in slot order.
func (m *Match) processTriggered(p *Player, trigger catalog.Trigger) {
	for _, deployed := range p.BattlefieldCards() {
		m.fireCardTriggersFor(p, deployed, trigger)
	}
	if hq := p.Headquarters(); hq != nil {
		m.fireCardTriggersFor(p, hq, trigger)
	}
}

func (m *Match) fireCardTriggersFor(p *Player, c *Card, trigger catalog.Trigger) {
	for _, ability := range c.Abilities() {
		if ability.Type().Trigger != trigger {
			continue
		}
		m.fireAbility(p, ability)
	}
}

// fireAbility auto-targets and fires one triggered ability, respecting the
// same CanUse gate as manual activation. Triggered uses are free of
// operation cost.
func (m *Match) fireAbility(p *Player, ability *Ability) {
	if !ability.CanUse() {
		return
	}
	opponent := m.board.OpponentOf(p)

	var targets []*Card
	switch ability.Type().Targeting {
	case catalog.TargetingSingleEnemy:
		if valid := ability.GetValidTargets(m.enemyCandidates(opponent)); len(valid) > 0 {
			targets = valid[:1]
		} else {
			return
		}
	case catalog.TargetingSingleAlly:
		if valid := ability.GetValidTargets(p.BattlefieldCards()); len(valid) > 0 {
			targets = valid[:1]
		} else {
			return
		}
	case catalog.TargetingAllEnemies:
		targets = m.enemyCandidates(opponent)
	case catalog.TargetingAllAllies:
		targets = p.BattlefieldCards()
	}

	if ability.Use(targets) {
		evt := rules.NewEvent(rules.EventAbilityUsed, m.id, p.ID(), ability.Owner().ID())
		evt.Description = ability.Type().Name
		evt.Turn = m.board.TurnNumber()
		m.bus.Publish(evt)
	}
}

// runDeathChecks removes every battlefield card at zero defense, firing its
// death abilities first, and ends the match when a headquarters falls. Death
// abilities can kill further cards, so the sweep repeats until a pass removes
// nothing.
func (m *Match) runDeathChecks() {
	if m.state != MatchStateInProgress {
		return
	}
	for removed := true; removed; {
		removed = false
		for _, p := range m.board.Players() {
			for _, deployed := range p.BattlefieldCards() {
				if !deployed.IsDead() {
					continue
				}
				m.fireCardTriggers(deployed, catalog.TriggerOnDeath)
				p.RemoveFromBattlefield(deployed)
				m.publishCard(rules.EventCardDied, p, deployed)
				removed = true
				m.logger.Debug("card died",
					zap.String("match_id", m.id),
					zap.String("card_id", deployed.ID()),
					zap.String("owner", p.ID()),
				)
			}
		}
	}
	for _, p := range m.board.Players() {
		hq := p.Headquarters()
		if hq != nil && hq.IsDead() {
			m.publishCard(rules.EventCardDied, p, hq)
			m.EndMatch(m.board.OpponentOf(p).ID())
			return
		}
	}
}

// actingPlayer resolves the player id and checks it is that player's turn in
// a running match.
func (m *Match) actingPlayer(playerID string) (*Player, bool) {
	if m.state != MatchStateInProgress {
		return nil, false
	}
	p, ok := m.board.PlayerByID(playerID)
	if !ok {
		return nil, false
	}
	if m.board.CurrentTurnPlayer().ID() != p.ID() {
		return nil, false
	}
	return p, true
}

func (m *Match) publishCard(eventType rules.EventType, p *Player, c *Card) {
	evt := rules.NewEvent(eventType, m.id, p.ID(), c.ID())
	evt.Turn = m.board.TurnNumber()
	evt.Description = c.Type().Title
	m.bus.Publish(evt)
}

func (m *Match) publishDeployed(p *Player, c *Card, position int) {
	evt := rules.NewEvent(rules.EventCardDeployed, m.id, p.ID(), c.ID())
	evt.SlotIndex = position
	evt.Turn = m.board.TurnNumber()
	evt.Description = c.Type().Title
	m.bus.Publish(evt)
}
