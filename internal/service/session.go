package service

import (
	"sync"

	"github.com/peterkuimelis/plumbers/internal/game"
)

// Session is one live battle owned by a player.
type Session struct {
	ID        string
	PlayerID  string
	Deck      game.Deck
	Emergency game.EmergencyDef

	battle *game.Battle

	mu        sync.Mutex
	unsettled *game.Outcome
}

// State returns a copy of the battle state.
func (s *Session) State() *game.BattleState {
	return s.battle.State()
}

// CanUndo reports whether the battle has a snapshot to rewind to.
func (s *Session) CanUndo() bool {
	return s.battle.CanUndo()
}

// DeckSize returns the number of cards in play.
func (s *Session) DeckSize() int {
	return s.battle.DeckSize()
}

// Unsettled reports whether the battle ended in a victory that has not been
// credited to the player yet.
func (s *Session) Unsettled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unsettled != nil
}

func (s *Session) hold(out game.Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unsettled = &out
}
