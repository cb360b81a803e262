package log

// EventType enumerates all observable battle events.
type EventType int

const (
	EventPhaseChange EventType = iota
	EventBattleStart
	EventDeploy
	EventTool
	EventPowerUp
	EventFortify
	EventHeal
	EventExcuse
	EventRejected
	EventPlayerAttack
	EventNoPlumber
	EventCounterAttack
	EventPlumberDown
	EventPressure
	EventNewTurn
	EventDraw
	EventShuffle
	EventVictory
	EventDefeat
	EventUndo
)

func (e EventType) String() string {
	switch e {
	case EventPhaseChange:
		return "PhaseChange"
	case EventBattleStart:
		return "BattleStart"
	case EventDeploy:
		return "Deploy"
	case EventTool:
		return "Tool"
	case EventPowerUp:
		return "PowerUp"
	case EventFortify:
		return "Fortify"
	case EventHeal:
		return "Heal"
	case EventExcuse:
		return "Excuse"
	case EventRejected:
		return "Rejected"
	case EventPlayerAttack:
		return "PlayerAttack"
	case EventNoPlumber:
		return "NoPlumber"
	case EventCounterAttack:
		return "CounterAttack"
	case EventPlumberDown:
		return "PlumberDown"
	case EventPressure:
		return "Pressure"
	case EventNewTurn:
		return "NewTurn"
	case EventDraw:
		return "Draw"
	case EventShuffle:
		return "Shuffle"
	case EventVictory:
		return "Victory"
	case EventDefeat:
		return "Defeat"
	case EventUndo:
		return "Undo"
	default:
		return "Unknown"
	}
}

// Visible reports whether the event belongs in the player-facing battle log.
// Bookkeeping events (phase changes, turn banners, draws, shuffles, undo) are only
// delivered to EventLoggers.
func (e EventType) Visible() bool {
	switch e {
	case EventPhaseChange, EventNewTurn, EventDraw, EventShuffle, EventUndo:
		return false
	default:
		return true
	}
}

// GameEvent represents a single observable event in a battle.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // which turn (1-based)
	Phase   string    // current phase name (e.g. "Player Turn")
	Type    EventType // event type
	Card    string    // card id (if applicable)
	Amount  int       // damage, healing or turns gained (if applicable)
	Details string    // human-readable detail string
}
