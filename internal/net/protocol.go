package net

// Message types for the JSON protocol over TCP. Each message is one JSON
// value followed by a newline.

// Client → server message types.
const (
	MsgStart   = "start"
	MsgPlay    = "play"
	MsgEndTurn = "end_turn"
	MsgUndo    = "undo"
	MsgRetry   = "retry"
	MsgQuit    = "quit"
)

// Server → client message types.
const (
	MsgState    = "state"
	MsgRejected = "rejected"
	MsgGameOver = "game_over"
	MsgError    = "error"
)

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	Session string      `json:"session,omitempty"`
	State   *StateView  `json:"state,omitempty"`
	Events  []EventView `json:"events,omitempty"`

	// For "rejected" and "error"
	Error string `json:"error,omitempty"`

	// For "game_over"
	Status string `json:"status,omitempty"`
	Coins  int    `json:"coins,omitempty"`
}

// EventView is a simplified battle event for the client.
type EventView struct {
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Amount  int    `json:"amount,omitempty"`
	Details string `json:"details"`
}

// CardView describes a card in hand.
type CardView struct {
	Index   int    `json:"index"`
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Summary string `json:"summary"`
}

// PlumberView describes the deployed plumber.
type PlumberView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	HP     int    `json:"hp"`
	MaxHP  int    `json:"max_hp"`
	Damage int    `json:"damage"` // end-of-turn fix with the current multiplier
}

// EmergencyView describes the emergency.
type EmergencyView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	HP        int    `json:"hp"`
	MaxHP     int    `json:"max_hp"`
	TurnsLeft int    `json:"turns_left"`
}

// StateView is the battle as the player sees it.
type StateView struct {
	Turn      int           `json:"turn"`
	Phase     string        `json:"phase"`
	Status    string        `json:"status"`
	Emergency EmergencyView `json:"emergency"`
	Plumber   *PlumberView  `json:"plumber,omitempty"`
	Hand      []CardView    `json:"hand"`

	DrawCount    int `json:"draw_count"`
	DiscardCount int `json:"discard_count"`

	DamageMultiplier float64  `json:"damage_multiplier"`
	HealthMultiplier float64  `json:"health_multiplier"`
	ActiveEffects    []string `json:"active_effects,omitempty"`

	CanUndo      bool     `json:"can_undo"`
	CoinsAwarded int      `json:"coins_awarded,omitempty"`
	Log          []string `json:"log,omitempty"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "start": deck from the deck file (1-indexed); 0 uses the
	// player's stored deck, or the Starter Kit.
	DeckNumber int    `json:"deck_number,omitempty"`
	DeckID     string `json:"deck_id,omitempty"`
	Emergency  string `json:"emergency,omitempty"`

	// For "play"
	Card string `json:"card,omitempty"`
}
