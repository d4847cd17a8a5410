// Package server exposes the rules core over HTTP: a JSON action API that
// drives the public match operations and a websocket endpoint broadcasting
// every match notification. All calls into the engine are serialized
// through a single command mutex; the core assumes single-writer access.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/frontlinegame/frontline-server-go/internal/ai"
	"github.com/frontlinegame/frontline-server-go/internal/catalog"
	"github.com/frontlinegame/frontline-server-go/internal/game"
	"github.com/frontlinegame/frontline-server-go/internal/game/rules"
)

// Server hosts the action API and the spectator hub.
type Server struct {
	logger  *zap.Logger
	manager *game.MatchManager
	decks   map[string]*catalog.DeckList
	hub     *hub
	httpSrv *http.Server

	// cmdMu serializes every call into the engine.
	cmdMu sync.Mutex
}

// New creates a server over the given manager and available deck lists.
func New(logger *zap.Logger, manager *game.MatchManager, decks map[string]*catalog.DeckList, address string) *Server {
	s := &Server{
		logger:  logger,
		manager: manager,
		decks:   decks,
		hub:     newHub(logger),
	}
	manager.SetNotificationHandler(func(event rules.Event) {
		s.hub.broadcastEvent(event)
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.hub.serveWS)
	mux.HandleFunc("POST /api/matches", s.handleCreateMatch)
	mux.HandleFunc("GET /api/matches/{id}", s.handleMatchState)
	mux.HandleFunc("POST /api/matches/{id}/deploy", s.handleDeploy)
	mux.HandleFunc("POST /api/matches/{id}/attack", s.handleAttack)
	mux.HandleFunc("POST /api/matches/{id}/ability", s.handleAbility)
	mux.HandleFunc("POST /api/matches/{id}/end-turn", s.handleEndTurn)

	s.httpSrv = &http.Server{Addr: address, Handler: mux}
	return s
}

// Run starts the hub and listens until the context is canceled.
func (s *Server) Run(ctx context.Context) error {
	go s.hub.run(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("address", s.httpSrv.Addr))
		errCh <- s.httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// Shutdown stops the HTTP listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

type createMatchRequest struct {
	MatchID  string `json:"match_id"`
	PlayerA  string `json:"player_a"`
	PlayerB  string `json:"player_b"`
	DeckA    string `json:"deck_a"`
	DeckB    string `json:"deck_b"`
	VsAI     bool   `json:"vs_ai"`
	Seed     int64  `json:"seed"`
}

func (s *Server) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var req createMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	deckA, okA := s.decks[req.DeckA]
	deckB, okB := s.decks[req.DeckB]
	if !okA || !okB {
		http.Error(w, "unknown deck", http.StatusBadRequest)
		return
	}

	specA := game.PlayerSpec{ID: req.PlayerA, Name: req.PlayerA, Deck: deckA, Human: true}
	specB := game.PlayerSpec{ID: req.PlayerB, Name: req.PlayerB, Deck: deckB, Human: !req.VsAI}
	if req.VsAI {
		specB.Strategy = ai.NewGreedyPlanner(s.logger)
	}

	s.cmdMu.Lock()
	m, err := s.manager.CreateMatch(req.MatchID, specA, specB, req.Seed)
	if err == nil {
		m.StartMatch()
	}
	s.cmdMu.Unlock()

	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	writeJSON(w, http.StatusCreated, m.View(""))
}

func (s *Server) handleMatchState(w http.ResponseWriter, r *http.Request) {
	m, ok := s.manager.Match(r.PathValue("id"))
	if !ok {
		http.Error(w, "match not found", http.StatusNotFound)
		return
	}
	s.cmdMu.Lock()
	view := m.View(r.URL.Query().Get("player"))
	s.cmdMu.Unlock()
	writeJSON(w, http.StatusOK, view)
}

type deployRequest struct {
	PlayerID string `json:"player_id"`
	CardID   string `json:"card_id"`
	Position int    `json:"position"`
}

func (s *Server) handleDeploy(w http.ResponseWriter, r *http.Request) {
	m, ok := s.manager.Match(r.PathValue("id"))
	if !ok {
		http.Error(w, "match not found", http.StatusNotFound)
		return
	}
	var req deployRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.cmdMu.Lock()
	card := s.findHandCard(m, req.PlayerID, req.CardID)
	accepted := card != nil && m.DeployCard(req.PlayerID, card, req.Position)
	s.cmdMu.Unlock()

	writeActionResult(w, accepted)
}

type attackRequest struct {
	AttackerID string `json:"attacker_id"`
	DefenderID string `json:"defender_id"`
}

func (s *Server) handleAttack(w http.ResponseWriter, r *http.Request) {
	m, ok := s.manager.Match(r.PathValue("id"))
	if !ok {
		http.Error(w, "match not found", http.StatusNotFound)
		return
	}
	var req attackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.cmdMu.Lock()
	attacker := s.findBattlefieldCard(m, req.AttackerID)
	defender := s.findBattlefieldCard(m, req.DefenderID)
	accepted := attacker != nil && defender != nil && m.InitiateAttack(attacker, defender)
	s.cmdMu.Unlock()

	writeActionResult(w, accepted)
}

type abilityRequest struct {
	PlayerID  string   `json:"player_id"`
	CardID    string   `json:"card_id"`
	AbilityID string   `json:"ability_id"`
	TargetIDs []string `json:"target_ids"`
}

func (s *Server) handleAbility(w http.ResponseWriter, r *http.Request) {
	m, ok := s.manager.Match(r.PathValue("id"))
	if !ok {
		http.Error(w, "match not found", http.StatusNotFound)
		return
	}
	var req abilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.cmdMu.Lock()
	card := s.findOwnCard(m, req.PlayerID, req.CardID)
	accepted := card != nil && m.UseAbility(req.PlayerID, card, req.AbilityID, req.TargetIDs)
	s.cmdMu.Unlock()

	writeActionResult(w, accepted)
}

type endTurnRequest struct {
	PlayerID string `json:"player_id"`
}

func (s *Server) handleEndTurn(w http.ResponseWriter, r *http.Request) {
	m, ok := s.manager.Match(r.PathValue("id"))
	if !ok {
		http.Error(w, "match not found", http.StatusNotFound)
		return
	}
	var req endTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.cmdMu.Lock()
	accepted := m.Board() != nil &&
		m.Board().CurrentTurnPlayer() != nil &&
		m.Board().CurrentTurnPlayer().ID() == req.PlayerID &&
		m.NextTurn()
	s.cmdMu.Unlock()

	writeActionResult(w, accepted)
}

// findHandCard resolves a card id within the acting player's hand.
func (s *Server) findHandCard(m *game.Match, playerID, cardID string) *game.Card {
	if m.Board() == nil {
		return nil
	}
	p, ok := m.Board().PlayerByID(playerID)
	if !ok {
		return nil
	}
	for _, held := range p.Hand() {
		if held.ID() == cardID {
			return held
		}
	}
	return nil
}

// findBattlefieldCard resolves a card id on either battlefield.
func (s *Server) findBattlefieldCard(m *game.Match, cardID string) *game.Card {
	if m.Board() == nil {
		return nil
	}
	for _, p := range m.Board().Players() {
		for _, deployed := range p.BattlefieldCards() {
			if deployed.ID() == cardID {
				return deployed
			}
		}
	}
	return nil
}

// findOwnCard resolves a card id on the player's battlefield or headquarters.
func (s *Server) findOwnCard(m *game.Match, playerID, cardID string) *game.Card {
	if m.Board() == nil {
		return nil
	}
	p, ok := m.Board().PlayerByID(playerID)
	if !ok {
		return nil
	}
	for _, deployed := range p.BattlefieldCards() {
		if deployed.ID() == cardID {
			return deployed
		}
	}
	if hq := p.Headquarters(); hq != nil && hq.ID() == cardID {
		return hq
	}
	return nil
}

func writeActionResult(w http.ResponseWriter, accepted bool) {
	status := http.StatusOK
	if !accepted {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, map[string]bool{"accepted": accepted})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
