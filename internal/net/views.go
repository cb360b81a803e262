package net

import (
	"github.com/peterkuimelis/plumbers/internal/game"
	"github.com/peterkuimelis/plumbers/internal/log"
)

// recentLog is how many trailing log lines a StateView carries.
const recentLog = 8

// BuildStateView creates a StateView from a battle state.
func BuildStateView(state *game.BattleState, catalog *game.Catalog, canUndo bool) *StateView {
	sv := &StateView{
		Turn:   state.Turn,
		Phase:  state.Phase.String(),
		Status: state.Status.String(),
		Emergency: EmergencyView{
			ID:        state.Emergency.ID,
			Name:      state.Emergency.Name,
			HP:        state.Emergency.HP,
			MaxHP:     state.Emergency.MaxHP,
			TurnsLeft: state.Emergency.TurnsLeft,
		},
		Hand:             make([]CardView, 0, len(state.Hand)),
		DrawCount:        len(state.DrawPile),
		DiscardCount:     len(state.DiscardPile),
		DamageMultiplier: state.DamageMultiplier,
		HealthMultiplier: state.HealthMultiplier,
		ActiveEffects:    state.ActiveEffects,
		CanUndo:          canUndo,
		CoinsAwarded:     state.CoinsAwarded,
	}

	if p := state.ActivePlumber; p != nil {
		sv.Plumber = &PlumberView{
			ID:     p.CardID,
			Name:   p.Name,
			HP:     p.HP,
			MaxHP:  p.MaxHP,
			Damage: state.PlumberDamage(),
		}
	}

	for i, id := range state.Hand {
		sv.Hand = append(sv.Hand, BuildCardView(i, catalog.MustCard(id)))
	}

	logs := state.Log
	if len(logs) > recentLog {
		logs = logs[len(logs)-recentLog:]
	}
	sv.Log = logs
	return sv
}

// BuildCardView creates a CardView for the card at hand position index.
func BuildCardView(index int, c *game.Card) CardView {
	return CardView{
		Index:   index,
		ID:      c.ID,
		Name:    c.Name,
		Type:    c.Type.String(),
		Summary: c.Summary(),
	}
}

// BuildEventViews converts the player-facing events.
func BuildEventViews(events []log.GameEvent) []EventView {
	var views []EventView
	for _, ev := range events {
		if !ev.Type.Visible() {
			continue
		}
		views = append(views, EventView{
			Turn:    ev.Turn,
			Phase:   ev.Phase,
			Type:    ev.Type.String(),
			Card:    ev.Card,
			Amount:  ev.Amount,
			Details: ev.Details,
		})
	}
	return views
}
