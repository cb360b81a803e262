package game

import "fmt"

// --- Enums ---

type Phase int

const (
	PhasePlayerTurn Phase = iota
	PhaseEndTurn
	PhaseEnemyCounter
	PhaseDraw
	PhaseResolved
	PhaseVictory
	PhaseDefeat
)

func (p Phase) String() string {
	switch p {
	case PhasePlayerTurn:
		return "Player Turn"
	case PhaseEndTurn:
		return "End Turn"
	case PhaseEnemyCounter:
		return "Enemy Counter"
	case PhaseDraw:
		return "Draw"
	case PhaseResolved:
		return "Resolved"
	case PhaseVictory:
		return "Victory"
	case PhaseDefeat:
		return "Defeat"
	default:
		return "None"
	}
}

// Status is the terminal status of a battle.
type Status int

const (
	StatusInProgress Status = iota
	StatusVictory
	StatusDefeat
)

func (s Status) String() string {
	switch s {
	case StatusVictory:
		return "victory"
	case StatusDefeat:
		return "defeat"
	default:
		return "in-progress"
	}
}

// Terminal reports whether no further plays are accepted.
func (s Status) Terminal() bool {
	return s != StatusInProgress
}

type CardType int

const (
	CardTypePlumber CardType = iota
	CardTypeTool
	CardTypeExcuse
	CardTypePowerUp
	CardTypeSandwich
)

func (ct CardType) String() string {
	switch ct {
	case CardTypePlumber:
		return "plumber"
	case CardTypeTool:
		return "tool"
	case CardTypeExcuse:
		return "excuse"
	case CardTypePowerUp:
		return "power-up"
	case CardTypeSandwich:
		return "sandwich"
	default:
		return "unknown"
	}
}

// ParseCardType maps the catalog spelling of a card type to a CardType.
func ParseCardType(s string) (CardType, error) {
	switch s {
	case "plumber":
		return CardTypePlumber, nil
	case "tool":
		return CardTypeTool, nil
	case "excuse":
		return CardTypeExcuse, nil
	case "power-up":
		return CardTypePowerUp, nil
	case "sandwich":
		return CardTypeSandwich, nil
	default:
		return 0, fmt.Errorf("unknown card type %q", s)
	}
}

type Rarity int

const (
	RarityCommon Rarity = iota + 1
	RarityUncommon
	RarityRare
	RarityLegend
)

func (r Rarity) String() string {
	switch {
	case r >= RarityLegend:
		return "Legend"
	case r == RarityRare:
		return "Rare"
	case r == RarityUncommon:
		return "Uncommon"
	default:
		return "Common"
	}
}

// BoostStat selects which multiplier a power-up compounds.
type BoostStat int

const (
	BoostDamage BoostStat = iota
	BoostHealth
)

func (b BoostStat) String() string {
	if b == BoostHealth {
		return "health"
	}
	return "damage"
}

// Boost is the payload of a power-up card. A power-up carries exactly one
// Boost, so it always scales exactly one multiplier.
type Boost struct {
	Stat   BoostStat
	Factor float64
}

// --- Card definition (static, from the catalog) ---

// Card is an immutable catalog entry. Which payload fields are meaningful
// depends on Type:
//
//	plumber:  HP, Damage
//	tool:     Damage
//	excuse:   TimeGain
//	power-up: Boost
//	sandwich: Health
type Card struct {
	ID          string
	Name        string
	Description string
	Type        CardType
	Price       int
	Rarity      Rarity

	HP       int
	Damage   int
	TimeGain int
	Health   int
	Boost    Boost
}

func (c *Card) String() string {
	return c.Name
}

// Summary returns a short stat line for menus and logs.
func (c *Card) Summary() string {
	switch c.Type {
	case CardTypePlumber:
		return fmt.Sprintf("%s (HP %d, Fix %d)", c.Name, c.HP, c.Damage)
	case CardTypeTool:
		return fmt.Sprintf("%s (Dmg %d)", c.Name, c.Damage)
	case CardTypeExcuse:
		return fmt.Sprintf("%s (+%d turns)", c.Name, c.TimeGain)
	case CardTypePowerUp:
		return fmt.Sprintf("%s (x%g %s)", c.Name, c.Boost.Factor, c.Boost.Stat)
	case CardTypeSandwich:
		return fmt.Sprintf("%s (+%d HP)", c.Name, c.Health)
	default:
		return c.Name
	}
}

// --- Runtime pieces ---

// ActivePlumber is the single deployed unit. BaseHP and BaseDamage come from
// the card and never change; MaxHP follows the health multiplier.
type ActivePlumber struct {
	CardID     string
	Name       string
	BaseHP     int
	BaseDamage int
	MaxHP      int
	HP         int
}

// Emergency is the encounter target.
type Emergency struct {
	ID          string
	Name        string
	Description string
	MaxHP       int
	HP          int
	TurnsLeft   int
}

// Fixed reports whether the emergency has been brought to zero HP.
func (e Emergency) Fixed() bool {
	return e.HP <= 0
}

// EmergencyDef is the static definition an Emergency is reset from.
type EmergencyDef struct {
	ID          string
	Name        string
	Description string
	MaxHP       int
	Turns       int
}

// Reset returns a fresh Emergency at full HP with the full clock.
func (d EmergencyDef) Reset() Emergency {
	return Emergency{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		MaxHP:       d.MaxHP,
		HP:          d.MaxHP,
		TurnsLeft:   d.Turns,
	}
}
