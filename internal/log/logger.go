package log

import (
	"fmt"
	"io"
)

// EventLogger is the interface for logging battle events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	if phase == "" {
		phase = "          "
	}
	// Pad phase to 16 chars for alignment
	for len(phase) < 16 {
		phase += " "
	}

	return fmt.Sprintf("T%-2d %s| %s", e.Turn, phase, e.Details)
}

// Details returns the detail strings of the visible events, in order.
func Details(events []GameEvent) []string {
	var lines []string
	for _, e := range events {
		if e.Type.Visible() {
			lines = append(lines, e.Details)
		}
	}
	return lines
}

// --- Helper constructors for common events ---

func NewPhaseChangeEvent(turn int, phase string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventPhaseChange,
		Details: fmt.Sprintf("Phase → %s", phase),
	}
}

func NewBattleStartEvents(turn int, phase string, emergency string) []GameEvent {
	return []GameEvent{
		{
			Turn:    turn,
			Phase:   phase,
			Type:    EventBattleStart,
			Details: fmt.Sprintf("Emergency detected: %s — fix it before flooding escalates!", emergency),
		},
		{
			Turn:    turn,
			Phase:   phase,
			Type:    EventBattleStart,
			Details: "Tip: Deploy a plumber, then use tools for immediate fixes. Power-Ups boost your effects.",
		},
	}
}

func NewTurnEvent(turn int, turnsLeft int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Player Turn",
		Type:    EventNewTurn,
		Amount:  turnsLeft,
		Details: fmt.Sprintf("=== Turn %d (%d turns left) ===", turn, turnsLeft),
	}
}

func NewDeployEvent(turn int, phase string, cardID, name string, hp int, replaced string) GameEvent {
	details := fmt.Sprintf("Deployed plumber: %s (HP %d)", name, hp)
	if replaced != "" {
		details = fmt.Sprintf("Deployed plumber: %s (HP %d), relieving %s", name, hp, replaced)
	}
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventDeploy,
		Card:    cardID,
		Amount:  hp,
		Details: details,
	}
}

func NewToolEvent(turn int, phase string, cardID, name string, damage int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventTool,
		Card:    cardID,
		Amount:  damage,
		Details: fmt.Sprintf("%s used! Leak reduced by %d.", name, damage),
	}
}

func NewPowerUpEvent(turn int, phase string, cardID, name string, multiplier float64) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventPowerUp,
		Card:    cardID,
		Details: fmt.Sprintf("%s activated! Damage boosted to x%g.", name, multiplier),
	}
}

func NewFortifyEvent(turn int, phase string, cardID, name string, plumber string, maxHP int) GameEvent {
	details := fmt.Sprintf("%s will fortify your next deployed plumber.", name)
	if plumber != "" {
		details = fmt.Sprintf("%s fortified %s! Max HP now %d.", name, plumber, maxHP)
	}
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventFortify,
		Card:    cardID,
		Amount:  maxHP,
		Details: details,
	}
}

func NewHealEvent(turn int, phase string, cardID, name string, amount int, plumber string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventHeal,
		Card:    cardID,
		Amount:  amount,
		Details: fmt.Sprintf("%s restored %d HP to %s.", name, amount, plumber),
	}
}

func NewExcuseEvent(turn int, phase string, cardID, name string, gain int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventExcuse,
		Card:    cardID,
		Amount:  gain,
		Details: fmt.Sprintf("%s! You gained +%d turns to respond.", name, gain),
	}
}

func NewRejectedEvent(turn int, phase string, cardID string, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventRejected,
		Card:    cardID,
		Details: reason,
	}
}

func NewPlayerAttackEvent(turn int, plumber string, damage int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "End Turn",
		Type:    EventPlayerAttack,
		Amount:  damage,
		Details: fmt.Sprintf("%s applied a fix for %d damage.", plumber, damage),
	}
}

func NewNoPlumberEvent(turn int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "End Turn",
		Type:    EventNoPlumber,
		Details: "No plumber on site this turn. The leak worsens...",
	}
}

func NewCounterAttackEvent(turn int, plumber string, attack int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Enemy Counter",
		Type:    EventCounterAttack,
		Amount:  attack,
		Details: fmt.Sprintf("Pressure surge hits %s for %d damage.", plumber, attack),
	}
}

func NewPlumberDownEvent(turn int, plumber string, attack int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Enemy Counter",
		Type:    EventPlumberDown,
		Amount:  attack,
		Details: fmt.Sprintf("Pressure surge! %s was overwhelmed (%d dmg) and is out.", plumber, attack),
	}
}

func NewPressureEvent(turn int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Enemy Counter",
		Type:    EventPressure,
		Details: "Rising water pressure! Equipment gets soaked. You lose time.",
	}
}

func NewDrawEvent(turn int, cardID string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Draw",
		Type:    EventDraw,
		Card:    cardID,
		Details: fmt.Sprintf("Drew %s", cardID),
	}
}

func NewShuffleEvent(turn int, count int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Draw",
		Type:    EventShuffle,
		Amount:  count,
		Details: fmt.Sprintf("Shuffled %d discarded cards into the draw pile", count),
	}
}

func NewVictoryEvent(turn int, phase string, emergency string, coins int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventVictory,
		Amount:  coins,
		Details: fmt.Sprintf("%s fixed! You earned %d coins.", emergency, coins),
	}
}

func NewDefeatEvent(turn int, phase string, emergency string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventDefeat,
		Details: fmt.Sprintf("Out of time! %s flooded the place.", emergency),
	}
}

func NewUndoEvent(turn int, phase string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventUndo,
		Details: fmt.Sprintf("Rewound to turn %d", turn),
	}
}
