package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultCatalogCoversRegistry(t *testing.T) {
	c := DefaultCatalog()
	if got := len(c.Cards()); got != len(CardRegistry) {
		t.Fatalf("catalog has %d cards, registry %d", got, len(CardRegistry))
	}
	for id := range CardRegistry {
		card := c.MustCard(id)
		if card.ID != id {
			t.Errorf("registry key %q builds card %q", id, card.ID)
		}
		if card.Type == CardTypePowerUp && card.Boost.Factor <= 1 {
			t.Errorf("%s: power-up factor %g", id, card.Boost.Factor)
		}
	}
	if _, ok := c.Emergency("burst_pipe"); !ok {
		t.Error("burst_pipe missing from default catalog")
	}
}

func TestStarterDeckIsValid(t *testing.T) {
	deck := StarterDeck()
	if len(deck.Cards) != 31 {
		t.Errorf("starter deck has %d cards, want 31", len(deck.Cards))
	}
	if err := DefaultCatalog().Validate(deck.Cards); err != nil {
		t.Fatal(err)
	}
}

func TestValidate(t *testing.T) {
	c := DefaultCatalog()
	if err := c.Validate(nil); err == nil {
		t.Error("empty deck should not validate")
	}
	err := c.Validate([]string{"tool_mega_plunger", "tool_golden_toilet"})
	if err == nil || !strings.Contains(err.Error(), "tool_golden_toilet") {
		t.Errorf("unknown card error = %v", err)
	}
}

func TestParseCatalog(t *testing.T) {
	data := []byte(`
cards:
  - id: plumber_test
    name: Test Plumber
    type: plumber
    rarity: 1
    hp: 50
    damage: 10
  - id: powerup_test
    name: Test Boost
    type: power-up
    rarity: 2
    healthMultiplier: 1.3
emergencies:
  - id: clogged_sink
    name: Clogged Sink
    maxHp: 80
    turns: 5
`)
	c, err := ParseCatalog(data)
	if err != nil {
		t.Fatal(err)
	}
	p := c.MustCard("plumber_test")
	if p.Type != CardTypePlumber || p.HP != 50 || p.Damage != 10 {
		t.Errorf("plumber = %+v", p)
	}
	boost := c.MustCard("powerup_test").Boost
	if boost.Stat != BoostHealth || boost.Factor != 1.3 {
		t.Errorf("boost = %+v", boost)
	}
	em, ok := c.Emergency("clogged_sink")
	if !ok || em.MaxHP != 80 || em.Turns != 5 {
		t.Errorf("emergency = %+v", em)
	}
}

func TestParseCatalogRejects(t *testing.T) {
	cases := map[string]string{
		"both multipliers": `
cards:
  - {id: p, name: P, type: power-up, rarity: 1, damageMultiplier: 1.1, healthMultiplier: 1.1}`,
		"no multiplier": `
cards:
  - {id: p, name: P, type: power-up, rarity: 1}`,
		"shrinking multiplier": `
cards:
  - {id: p, name: P, type: power-up, rarity: 1, damageMultiplier: 0.5}`,
		"unknown type": `
cards:
  - {id: p, name: P, type: wizard, rarity: 1}`,
		"bad rarity": `
cards:
  - {id: p, name: P, type: tool, rarity: 9, damage: 3}`,
		"duplicate id": `
cards:
  - {id: t, name: T, type: tool, rarity: 1, damage: 3}
  - {id: t, name: T2, type: tool, rarity: 1, damage: 4}`,
		"bad emergency": `
emergencies:
  - {id: e, name: E, maxHp: 0, turns: 3}`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseCatalog([]byte(data)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestDeckFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decks.yaml")
	data := `
decks:
  - name: Tool Rush
    cards:
      - id: plumber_turbo_tony
      - id: tool_mega_plunger
        count: 3
  - name: Snack Break
    cards:
      - id: sandwich_classic_sub
        count: 2
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	decks, err := ParseDeckFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(decks) != 2 {
		t.Fatalf("got %d decks", len(decks))
	}
	if decks[0].Name != "Tool Rush" || len(decks[0].Cards) != 4 {
		t.Errorf("deck 1 = %+v", decks[0])
	}

	d, err := DeckByNumber(path, 2)
	if err != nil {
		t.Fatal(err)
	}
	if d.ID != "file-2" || len(d.Cards) != 2 {
		t.Errorf("deck 2 = %+v", d)
	}
	if _, err := DeckByNumber(path, 3); err == nil {
		t.Error("expected error for missing deck number")
	}
}

func TestReplenishReshufflesDiscard(t *testing.T) {
	s := &BattleState{
		DrawPile:    []string{"a"},
		Hand:        []string{"x"},
		DiscardPile: []string{"b", "c"},
	}
	res := s.Replenish(4, nil)
	if len(s.Hand) != 4 || len(s.DrawPile) != 0 || len(s.DiscardPile) != 0 {
		t.Errorf("hand %v draw %v discard %v", s.Hand, s.DrawPile, s.DiscardPile)
	}
	if res.Reshuffled != 2 || len(res.Drawn) != 3 {
		t.Errorf("result = %+v", res)
	}

	// Both piles empty: the hand stays short.
	res = s.Replenish(6, nil)
	if len(s.Hand) != 4 || len(res.Drawn) != 0 {
		t.Errorf("expected no draw, hand %v", s.Hand)
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := dealState([]string{"a", "b", "c"}, BurstPipe.Reset(), 2)
	s.ActivePlumber = &ActivePlumber{Name: "P", HP: 5, MaxHP: 10}
	s.Log = []string{"one"}

	c := s.Clone()
	c.Hand[0] = "z"
	c.ActivePlumber.HP = 1
	c.Log = append(c.Log, "two")

	if s.Hand[0] != "a" || s.ActivePlumber.HP != 5 || len(s.Log) != 1 {
		t.Error("clone shares memory with the original")
	}
}
