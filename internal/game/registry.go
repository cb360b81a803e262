package game

import (
	"fmt"
	"sort"
)

// CardRegistry maps card ids to their constructor functions.
var CardRegistry = map[string]func() *Card{
	"plumber_turbo_tony":             TurboTony,
	"plumber_speedy_sal":             SpeedySal,
	"plumber_mighty_mona":            MightyMona,
	"plumber_wrenchin_wes":           WrenchinWes,
	"plumber_pipe_pro_paula":         PipeProPaula,
	"tool_mega_plunger":              MegaPlunger,
	"tool_snake_o_matic":             SnakeOMatic,
	"tool_leak_detector":             LeakDetector,
	"tool_pipe_patch_kit":            PipePatchKit,
	"tool_turbo_torque_wrench":       TurboTorqueWrench,
	"excuse_blame_the_dog":           BlameTheDog,
	"excuse_traffic_jam":             TrafficJam,
	"excuse_misplaced_tools":         MisplacedTools,
	"excuse_parts_on_backorder":      PartsOnBackorder,
	"excuse_client_not_home":         ClientNotHome,
	"powerup_caffeinated_surge":      CaffeinatedSurge,
	"powerup_unbreakable_gloves":     UnbreakableGloves,
	"powerup_safety_goggles":         SafetyGoggles,
	"powerup_protein_shake":          ProteinShake,
	"powerup_quick_reflexes":         QuickReflexes,
	"sandwich_classic_sub":           ClassicSub,
	"sandwich_mega_blt":              MegaBLT,
	"sandwich_spicy_wrap":            SpicyWrap,
	"sandwich_veggie_hoagie":         VeggieHoagie,
	"sandwich_energy_bagel":          EnergyBagel,
	"tool_copper_pipe_set":           CopperPipeSet,
	"tool_waterproof_tape":           WaterproofTape,
	"tool_mini_shop_vac":             MiniShopVac,
	"plumber_delicate_dani":          DelicateDani,
	"powerup_inspirational_playlist": InspirationalPlaylist,
	"excuse_epic_rainstorm":          EpicRainstorm,
	"plumber_old_school_stan":        OldSchoolStan,
	"tool_liquid_drain_blaster":      LiquidDrainBlaster,
	"plumber_techie_tessa":           TechieTessa,
	"tool_pipe_cutter_deluxe":        PipeCutterDeluxe,
}

// BurstPipe is the built-in emergency.
var BurstPipe = EmergencyDef{
	ID:          "burst_pipe",
	Name:        "Burst Pipe in Basement",
	Description: "Water gushes across the floor—a main pipe has blown! Fix it quick before the timer runs out!",
	MaxHP:       160,
	Turns:       7,
}

// Catalog is the read-only card and emergency data a battle is played with.
// It is built once at startup and shared by every session.
type Catalog struct {
	cards       map[string]*Card
	emergencies map[string]EmergencyDef
}

// NewCatalog builds a catalog from card and emergency definitions.
func NewCatalog(cards []*Card, emergencies []EmergencyDef) (*Catalog, error) {
	c := &Catalog{
		cards:       make(map[string]*Card, len(cards)),
		emergencies: make(map[string]EmergencyDef, len(emergencies)),
	}
	for _, card := range cards {
		if card.ID == "" {
			return nil, fmt.Errorf("card %q has no id", card.Name)
		}
		if _, dup := c.cards[card.ID]; dup {
			return nil, fmt.Errorf("duplicate card id %q", card.ID)
		}
		c.cards[card.ID] = card
	}
	for _, em := range emergencies {
		if em.ID == "" {
			return nil, fmt.Errorf("emergency %q has no id", em.Name)
		}
		if em.MaxHP <= 0 || em.Turns <= 0 {
			return nil, fmt.Errorf("emergency %q needs positive hp and turns", em.ID)
		}
		if _, dup := c.emergencies[em.ID]; dup {
			return nil, fmt.Errorf("duplicate emergency id %q", em.ID)
		}
		c.emergencies[em.ID] = em
	}
	return c, nil
}

// DefaultCatalog returns the built-in cards and the Burst Pipe emergency.
func DefaultCatalog() *Catalog {
	cards := make([]*Card, 0, len(CardRegistry))
	for _, ctor := range CardRegistry {
		cards = append(cards, ctor())
	}
	c, err := NewCatalog(cards, []EmergencyDef{BurstPipe})
	if err != nil {
		panic(err)
	}
	return c
}

// Card returns the definition for id.
func (c *Catalog) Card(id string) (*Card, bool) {
	card, ok := c.cards[id]
	return card, ok
}

// MustCard returns the definition for id and panics when the catalog does
// not define it. A deck naming an unknown card is a data-integrity bug.
func (c *Catalog) MustCard(id string) *Card {
	card, ok := c.cards[id]
	if !ok {
		panic(fmt.Sprintf("card not found in catalog: %q", id))
	}
	return card
}

// Cards returns every card sorted by id.
func (c *Catalog) Cards() []*Card {
	out := make([]*Card, 0, len(c.cards))
	for _, card := range c.cards {
		out = append(out, card)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Emergency returns the emergency definition for id.
func (c *Catalog) Emergency(id string) (EmergencyDef, bool) {
	em, ok := c.emergencies[id]
	return em, ok
}

// Emergencies returns every emergency sorted by id.
func (c *Catalog) Emergencies() []EmergencyDef {
	out := make([]EmergencyDef, 0, len(c.emergencies))
	for _, em := range c.emergencies {
		out = append(out, em)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Validate returns an error naming the first card id the catalog does not define.
func (c *Catalog) Validate(cardIDs []string) error {
	if len(cardIDs) == 0 {
		return fmt.Errorf("deck is empty")
	}
	for _, id := range cardIDs {
		if _, ok := c.cards[id]; !ok {
			return fmt.Errorf("deck references unknown card %q", id)
		}
	}
	return nil
}
