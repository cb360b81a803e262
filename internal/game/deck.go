package game

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Deck is an ordered list of card ids. Duplicates are allowed.
type Deck struct {
	ID    string
	Name  string
	Cards []string
}

// DeckFile represents the top-level YAML structure.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry represents a single deck in the YAML file.
type DeckEntry struct {
	Name  string      `yaml:"name"`
	Cards []CardEntry `yaml:"cards"`
}

// CardEntry represents a card and its count in a deck.
type CardEntry struct {
	ID    string `yaml:"id"`
	Count int    `yaml:"count"`
}

// Expand turns the entry list into a flat deck.
func (e DeckEntry) Expand(number int) Deck {
	deck := Deck{
		ID:   fmt.Sprintf("file-%d", number),
		Name: e.Name,
	}
	for _, entry := range e.Cards {
		count := entry.Count
		if count == 0 {
			count = 1
		}
		for i := 0; i < count; i++ {
			deck.Cards = append(deck.Cards, entry.ID)
		}
	}
	return deck
}

// ParseDeckFile parses a YAML deck file and returns its decks in file order.
func ParseDeckFile(path string) ([]Deck, error) {
	df, err := readDeckFile(path)
	if err != nil {
		return nil, err
	}

	decks := make([]Deck, 0, len(df.Decks))
	for i, entry := range df.Decks {
		decks = append(decks, entry.Expand(i+1))
	}
	return decks, nil
}

// DeckByNumber returns the Nth deck (1-indexed) from the deck file.
func DeckByNumber(path string, n int) (Deck, error) {
	df, err := readDeckFile(path)
	if err != nil {
		return Deck{}, err
	}

	if n < 1 || n > len(df.Decks) {
		return Deck{}, fmt.Errorf("deck %d not found (have %d decks)", n, len(df.Decks))
	}
	return df.Decks[n-1].Expand(n), nil
}

func readDeckFile(path string) (DeckFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DeckFile{}, err
	}

	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return DeckFile{}, fmt.Errorf("parse deck YAML: %w", err)
	}
	return df, nil
}

// StarterDeck returns the 31-card deck every new player receives.
func StarterDeck() Deck {
	picks := []string{
		"plumber_turbo_tony",
		"plumber_speedy_sal",
		"plumber_old_school_stan",
		"tool_mega_plunger",
		"tool_snake_o_matic",
		"tool_leak_detector",
		"tool_pipe_patch_kit",
		"tool_turbo_torque_wrench",
		"tool_copper_pipe_set",
		"tool_waterproof_tape",
		"tool_mini_shop_vac",
		"tool_liquid_drain_blaster",
		"tool_pipe_cutter_deluxe",
		"powerup_caffeinated_surge",
		"powerup_safety_goggles",
		"powerup_protein_shake",
		"powerup_quick_reflexes",
		"powerup_inspirational_playlist",
		"sandwich_classic_sub",
		"sandwich_mega_blt",
		"sandwich_energy_bagel",
		"excuse_blame_the_dog",
		"excuse_traffic_jam",
		"excuse_misplaced_tools",
		"excuse_epic_rainstorm",
	}
	dupes := []string{"tool_mega_plunger", "tool_pipe_patch_kit", "sandwich_classic_sub", "powerup_caffeinated_surge"}

	cards := append(picks, dupes...)
	cards = append(cards, "plumber_wrenchin_wes", "plumber_pipe_pro_paula")
	return Deck{ID: "starter", Name: "Starter Kit", Cards: cards}
}

// --- Catalog files ---

// CatalogFile is the YAML layout of an external card catalog.
type CatalogFile struct {
	Cards       []CatalogCard      `yaml:"cards"`
	Emergencies []CatalogEmergency `yaml:"emergencies"`
}

// CatalogCard is one card as written in a catalog file. The multiplier
// fields are pointers so a power-up that sets both (or neither) can be refused.
type CatalogCard struct {
	ID               string   `yaml:"id"`
	Name             string   `yaml:"name"`
	Type             string   `yaml:"type"`
	Description      string   `yaml:"description"`
	Price            int      `yaml:"price"`
	Rarity           int      `yaml:"rarity"`
	HP               int      `yaml:"hp"`
	Damage           int      `yaml:"damage"`
	TimeGain         int      `yaml:"timeGain"`
	Health           int      `yaml:"health"`
	DamageMultiplier *float64 `yaml:"damageMultiplier"`
	HealthMultiplier *float64 `yaml:"healthMultiplier"`
}

// CatalogEmergency is one emergency as written in a catalog file.
type CatalogEmergency struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	MaxHP       int    `yaml:"maxHp"`
	Turns       int    `yaml:"turns"`
}

// LoadCatalog reads a YAML catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data)
}

// ParseCatalog parses YAML catalog data.
func ParseCatalog(data []byte) (*Catalog, error) {
	var cf CatalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}

	cards := make([]*Card, 0, len(cf.Cards))
	for _, cc := range cf.Cards {
		card, err := cc.toCard()
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	emergencies := make([]EmergencyDef, 0, len(cf.Emergencies))
	for _, ce := range cf.Emergencies {
		emergencies = append(emergencies, EmergencyDef{
			ID:          ce.ID,
			Name:        ce.Name,
			Description: ce.Description,
			MaxHP:       ce.MaxHP,
			Turns:       ce.Turns,
		})
	}
	if len(emergencies) == 0 {
		emergencies = append(emergencies, BurstPipe)
	}

	return NewCatalog(cards, emergencies)
}

func (cc CatalogCard) toCard() (*Card, error) {
	ct, err := ParseCardType(strings.TrimSpace(cc.Type))
	if err != nil {
		return nil, fmt.Errorf("card %q: %w", cc.ID, err)
	}
	if cc.Rarity < int(RarityCommon) || cc.Rarity > int(RarityLegend) {
		return nil, fmt.Errorf("card %q: rarity %d outside 1..4", cc.ID, cc.Rarity)
	}

	card := &Card{
		ID:          cc.ID,
		Name:        cc.Name,
		Description: cc.Description,
		Type:        ct,
		Price:       cc.Price,
		Rarity:      Rarity(cc.Rarity),
	}
	switch ct {
	case CardTypePlumber:
		card.HP = cc.HP
		card.Damage = cc.Damage
	case CardTypeTool:
		card.Damage = cc.Damage
	case CardTypeExcuse:
		card.TimeGain = cc.TimeGain
	case CardTypeSandwich:
		card.Health = cc.Health
	case CardTypePowerUp:
		switch {
		case cc.DamageMultiplier != nil && cc.HealthMultiplier != nil:
			return nil, fmt.Errorf("card %q: power-up sets both damageMultiplier and healthMultiplier", cc.ID)
		case cc.DamageMultiplier != nil:
			card.Boost = Boost{Stat: BoostDamage, Factor: *cc.DamageMultiplier}
		case cc.HealthMultiplier != nil:
			card.Boost = Boost{Stat: BoostHealth, Factor: *cc.HealthMultiplier}
		default:
			return nil, fmt.Errorf("card %q: power-up needs damageMultiplier or healthMultiplier", cc.ID)
		}
		if card.Boost.Factor < 1 {
			return nil, fmt.Errorf("card %q: multiplier %g would shrink a stat", cc.ID, card.Boost.Factor)
		}
	}
	return card, nil
}
