package mcp

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/peterkuimelis/plumbers/internal/game"
	plumbersnet "github.com/peterkuimelis/plumbers/internal/net"
	"github.com/peterkuimelis/plumbers/internal/service"
)

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	Session  string                  `json:"session,omitempty"`
	Events   []plumbersnet.EventView `json:"events"`
	State    *plumbersnet.StateView  `json:"state,omitempty"`
	GameOver bool                    `json:"game_over"`
	Status   string                  `json:"status,omitempty"`
	Coins    int                     `json:"coins,omitempty"`
	Rejected string                  `json:"rejected,omitempty"`
}

// GameSession is the battle driven by the MCP client.
type GameSession struct {
	svc  *service.Service
	sess *service.Session

	mu       sync.Mutex
	held     []plumbersnet.EventView // events no reply has carried yet
	gameOver bool
	status   string
	coins    int
}

func newGameSession(svc *service.Service, sess *service.Session) *GameSession {
	return &GameSession{svc: svc, sess: sess}
}

// record folds a move result into the session and returns the response for
// it. The response carries the move's events and any held ones.
func (s *GameSession) record(res game.Result) *ToolResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fold(res)
	events := append(s.held, plumbersnet.BuildEventViews(res.Events)...)
	s.held = nil

	return &ToolResponse{
		Session:  s.sess.ID,
		Events:   nonNil(events),
		State:    s.view(res.State),
		GameOver: s.gameOver,
		Status:   s.status,
		Coins:    s.coins,
	}
}

// hold folds a move result whose reply is an error. Its events wait for the
// next response.
func (s *GameSession) hold(res game.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fold(res)
	s.held = append(s.held, plumbersnet.BuildEventViews(res.Events)...)
}

func (s *GameSession) fold(res game.Result) {
	if res.Outcome != nil {
		s.gameOver = true
		s.status = res.Outcome.Status.String()
		s.coins = res.Outcome.CoinsAwarded
	}
}

// snapshot returns the current state and any held events.
func (s *GameSession) snapshot() *ToolResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.held
	s.held = nil
	return &ToolResponse{
		Session:  s.sess.ID,
		Events:   nonNil(events),
		State:    s.view(s.sess.State()),
		GameOver: s.gameOver,
		Status:   s.status,
		Coins:    s.coins,
	}
}

func (s *GameSession) view(state *game.BattleState) *plumbersnet.StateView {
	if state == nil {
		state = s.sess.State()
	}
	return plumbersnet.BuildStateView(state, s.svc.Catalog(), s.sess.CanUndo())
}

func nonNil(events []plumbersnet.EventView) []plumbersnet.EventView {
	if events == nil {
		return []plumbersnet.EventView{}
	}
	return events
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
