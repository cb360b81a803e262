package game

import (
	"reflect"
	"testing"

	"github.com/peterkuimelis/plumbers/internal/log"
)

// TestOpeningDeal: the first five cards form the hand, the rest the draw pile,
// the emergency starts full and two intro lines are logged.
func TestOpeningDeal(t *testing.T) {
	deck := padDeck([]string{"plumber_turbo_tony", "tool_mega_plunger"}, 12)
	b, _ := newTestBattle(t, deck)
	s := b.State()

	if len(s.Hand) != HandSize {
		t.Fatalf("hand size = %d, want %d", len(s.Hand), HandSize)
	}
	if len(s.DrawPile) != 7 || len(s.DiscardPile) != 0 {
		t.Errorf("draw %d discard %d, want 7 and 0", len(s.DrawPile), len(s.DiscardPile))
	}
	if s.Turn != 1 || s.Phase != PhasePlayerTurn || s.Status != StatusInProgress {
		t.Errorf("turn %d phase %s status %s", s.Turn, s.Phase, s.Status)
	}
	if s.Emergency.HP != 160 || s.Emergency.TurnsLeft != 7 {
		t.Errorf("emergency %d hp / %d turns, want 160 / 7", s.Emergency.HP, s.Emergency.TurnsLeft)
	}
	if s.DamageMultiplier != 1 || s.HealthMultiplier != 1 {
		t.Errorf("multipliers %g / %g, want 1 / 1", s.DamageMultiplier, s.HealthMultiplier)
	}
	if len(s.Log) != 2 {
		t.Errorf("opening log = %v, want 2 lines", s.Log)
	}
	if b.CanUndo() {
		t.Error("fresh battle should have nothing to undo")
	}
}

func TestShortDeckDealsShortHand(t *testing.T) {
	b, _ := newTestBattle(t, []string{"tool_mega_plunger", "tool_leak_detector"})
	s := b.State()
	if len(s.Hand) != 2 || len(s.DrawPile) != 0 {
		t.Fatalf("hand %v draw %v", s.Hand, s.DrawPile)
	}

	res := mustEndTurn(t, b)
	if len(res.State.Hand) != 2 {
		t.Errorf("hand should stay short, got %v", res.State.Hand)
	}
}

// TestPlumberToolEndTurn walks the reference turn: deploy a 100/25 plumber,
// play a 14-damage tool, end the turn.
func TestPlumberToolEndTurn(t *testing.T) {
	deck := padDeck([]string{"plumber_turbo_tony", "tool_mega_plunger"}, 10)
	b, logger := newTestBattle(t, deck)

	res := mustPlay(t, b, "plumber_turbo_tony")
	p := res.State.ActivePlumber
	if p == nil || p.HP != 100 || p.MaxHP != 100 {
		t.Fatalf("active plumber = %+v, want 100/100", p)
	}
	if len(res.NewLog()) != 1 {
		t.Errorf("deploy logged %v, want exactly one line", res.NewLog())
	}

	res = mustPlay(t, b, "tool_mega_plunger")
	if res.State.Emergency.HP != 146 {
		t.Errorf("emergency hp = %d, want 146", res.State.Emergency.HP)
	}

	res = mustEndTurn(t, b)
	s := res.State
	if s.Emergency.HP != 121 {
		t.Errorf("emergency hp = %d, want 121", s.Emergency.HP)
	}
	if s.ActivePlumber == nil || s.ActivePlumber.HP != 90 {
		t.Errorf("plumber after counter = %+v, want hp 90", s.ActivePlumber)
	}
	if s.Emergency.TurnsLeft != 6 || s.Turn != 2 {
		t.Errorf("turnsLeft %d turn %d, want 6 and 2", s.Emergency.TurnsLeft, s.Turn)
	}
	if s.Phase != PhasePlayerTurn {
		t.Errorf("phase = %s, want %s", s.Phase, PhasePlayerTurn)
	}
	if len(s.Hand) != HandSize {
		t.Errorf("hand not refilled: %v", s.Hand)
	}
	if res.Outcome != nil {
		t.Errorf("unexpected outcome %+v", res.Outcome)
	}

	attacks := logger.EventsOfType(log.EventPlayerAttack)
	if len(attacks) != 1 || attacks[0].Amount != 25 {
		t.Errorf("player attacks = %+v", attacks)
	}
	counters := logger.EventsOfType(log.EventCounterAttack)
	if len(counters) != 1 || counters[0].Amount != 10 {
		t.Errorf("counter attacks = %+v", counters)
	}
}

func TestEndTurnPhaseOrder(t *testing.T) {
	b, _ := newTestBattle(t, padDeck([]string{"plumber_turbo_tony"}, 8))
	mustPlay(t, b, "plumber_turbo_tony")
	res := mustEndTurn(t, b)

	var phases []string
	for _, ev := range res.Events {
		if ev.Type == log.EventPhaseChange {
			phases = append(phases, ev.Phase)
		}
	}
	want := []string{"End Turn", "Enemy Counter", "Draw", "Resolved", "Player Turn"}
	if !reflect.DeepEqual(phases, want) {
		t.Errorf("phases = %v, want %v", phases, want)
	}
}

func TestEndTurnWithoutPlumber(t *testing.T) {
	b, logger := newTestBattle(t, padDeck(nil, 8))
	res := mustEndTurn(t, b)

	if res.State.Emergency.HP != 160 {
		t.Errorf("emergency took damage without a plumber: %d", res.State.Emergency.HP)
	}
	if len(logger.EventsOfType(log.EventNoPlumber)) != 1 {
		t.Error("expected a no-plumber log entry")
	}
	if len(logger.EventsOfType(log.EventPressure)) != 1 {
		t.Error("expected a pressure warning")
	}
}

func TestDefeatWhenClockRunsOut(t *testing.T) {
	b, _ := newTestBattle(t, padDeck([]string{"tool_leak_detector"}, 10))

	var res Result
	for i := 0; i < 7; i++ {
		if res.Outcome != nil {
			t.Fatalf("outcome reported early on turn %d", i)
		}
		res = mustEndTurn(t, b)
	}

	if res.State.Status != StatusDefeat || res.State.Phase != PhaseDefeat {
		t.Fatalf("status %s phase %s, want defeat", res.State.Status, res.State.Phase)
	}
	if res.Outcome == nil || res.Outcome.Status != StatusDefeat || res.Outcome.CoinsAwarded != 0 {
		t.Fatalf("outcome = %+v", res.Outcome)
	}

	before := b.State()
	r, err := b.PlayCard("tool_leak_detector")
	expectErr(t, err, ErrSessionTerminal)
	if r.Outcome != nil {
		t.Error("outcome reported twice")
	}
	_, err = b.EndTurn()
	expectErr(t, err, ErrSessionTerminal)
	_, err = b.Undo()
	expectErr(t, err, ErrSessionTerminal)

	if !reflect.DeepEqual(before, b.State()) {
		t.Error("rejected calls after defeat mutated the state")
	}
}

// TestToolFinishesEmergency: a tool that brings the emergency to zero ends
// the battle on the spot and pays for the turns still on the clock.
func TestToolFinishesEmergency(t *testing.T) {
	em := EmergencyDef{ID: "drip", Name: "Dripping Tap", MaxHP: 20, Turns: 3}
	b, logger := newTestBattleWith(t, padDeck([]string{"tool_snake_o_matic"}, 6), em)

	res := mustPlay(t, b, "tool_snake_o_matic")
	if res.State.Status != StatusVictory {
		t.Fatalf("status = %s, want victory", res.State.Status)
	}
	if res.Outcome == nil || res.Outcome.CoinsAwarded != 150 {
		t.Fatalf("outcome = %+v, want 150 coins", res.Outcome)
	}
	if res.State.CoinsAwarded != 150 {
		t.Errorf("state coins = %d", res.State.CoinsAwarded)
	}
	if len(logger.EventsOfType(log.EventVictory)) != 1 {
		t.Error("expected one victory event")
	}
	if b.CanUndo() {
		t.Error("undo must be disabled after victory")
	}
}

// TestEndTurnFinishesEmergency: the reward uses the clock as it stood when
// the plumber's fix landed, not after the end-of-turn decrement.
func TestEndTurnFinishesEmergency(t *testing.T) {
	em := EmergencyDef{ID: "drip", Name: "Dripping Tap", MaxHP: 25, Turns: 4}
	b, _ := newTestBattleWith(t, padDeck([]string{"plumber_turbo_tony"}, 8), em)

	mustPlay(t, b, "plumber_turbo_tony")
	res := mustEndTurn(t, b)

	if res.State.Status != StatusVictory {
		t.Fatalf("status = %s, want victory", res.State.Status)
	}
	if res.State.Emergency.TurnsLeft != 3 {
		t.Errorf("clock should still advance, turnsLeft = %d", res.State.Emergency.TurnsLeft)
	}
	if res.Outcome == nil || res.Outcome.CoinsAwarded != Reward(4) {
		t.Fatalf("outcome = %+v, want %d coins", res.Outcome, Reward(4))
	}
}

func TestExcuseExtendsClock(t *testing.T) {
	b, _ := newTestBattle(t, padDeck([]string{"excuse_blame_the_dog", "excuse_parts_on_backorder"}, 8))
	mustPlay(t, b, "excuse_blame_the_dog")
	res := mustPlay(t, b, "excuse_parts_on_backorder")
	if res.State.Emergency.TurnsLeft != 22 {
		t.Errorf("turnsLeft = %d, want 22", res.State.Emergency.TurnsLeft)
	}
}

func TestDamageMultipliersCompound(t *testing.T) {
	deck := padDeck([]string{"powerup_caffeinated_surge", "powerup_protein_shake", "tool_mega_plunger"}, 8)
	b, _ := newTestBattle(t, deck)

	mustPlay(t, b, "powerup_caffeinated_surge")
	res := mustPlay(t, b, "powerup_protein_shake")
	if res.State.DamageMultiplier != 1.38 {
		t.Fatalf("damage multiplier = %g, want 1.38", res.State.DamageMultiplier)
	}
	want := []string{"Caffeinated Surge (+20% dmg)", "Protein Shake (+15% dmg)"}
	if !reflect.DeepEqual(res.State.ActiveEffects, want) {
		t.Errorf("active effects = %v, want %v", res.State.ActiveEffects, want)
	}

	// round(14 * 1.38) = 19
	res = mustPlay(t, b, "tool_mega_plunger")
	if res.State.Emergency.HP != 141 {
		t.Errorf("emergency hp = %d, want 141", res.State.Emergency.HP)
	}
}

func TestHealthBoostRefitsActivePlumber(t *testing.T) {
	deck := padDeck([]string{"plumber_turbo_tony", "powerup_unbreakable_gloves", "powerup_safety_goggles"}, 10)
	b, _ := newTestBattle(t, deck)

	mustPlay(t, b, "plumber_turbo_tony")
	mustEndTurn(t, b) // counter 10 -> 90/100

	res := mustPlay(t, b, "powerup_unbreakable_gloves")
	p := res.State.ActivePlumber
	if p.MaxHP != 125 || p.HP != 115 {
		t.Fatalf("after gloves %d/%d, want 115/125", p.HP, p.MaxHP)
	}

	// round(1.25 * 1.1, 2) = 1.38; maxHp round(100 * 1.38) = 138
	res = mustPlay(t, b, "powerup_safety_goggles")
	p = res.State.ActivePlumber
	if res.State.HealthMultiplier != 1.38 {
		t.Errorf("health multiplier = %g", res.State.HealthMultiplier)
	}
	if p.MaxHP != 138 || p.HP != 128 {
		t.Errorf("after goggles %d/%d, want 128/138", p.HP, p.MaxHP)
	}
}

func TestLatentHealthBoost(t *testing.T) {
	deck := padDeck([]string{"powerup_unbreakable_gloves", "plumber_turbo_tony"}, 8)
	b, _ := newTestBattle(t, deck)

	res := mustPlay(t, b, "powerup_unbreakable_gloves")
	if res.State.ActivePlumber != nil || res.State.HealthMultiplier != 1.25 {
		t.Fatalf("latent boost state: plumber %+v mult %g", res.State.ActivePlumber, res.State.HealthMultiplier)
	}
	res = mustPlay(t, b, "plumber_turbo_tony")
	if p := res.State.ActivePlumber; p.MaxHP != 125 || p.HP != 125 {
		t.Errorf("deployed plumber %d/%d, want 125/125", p.HP, p.MaxHP)
	}
}

func TestSecondPlumberReplacesFirst(t *testing.T) {
	deck := padDeck([]string{"plumber_turbo_tony", "plumber_speedy_sal", "powerup_unbreakable_gloves"}, 8)
	b, logger := newTestBattle(t, deck)

	mustPlay(t, b, "plumber_turbo_tony")
	mustEndTurn(t, b)
	mustPlay(t, b, "powerup_unbreakable_gloves")
	res := mustPlay(t, b, "plumber_speedy_sal")

	p := res.State.ActivePlumber
	if p.CardID != "plumber_speedy_sal" {
		t.Fatalf("active plumber = %s", p.CardID)
	}
	// round(80 * 1.25) = 100, full health
	if p.MaxHP != 100 || p.HP != 100 {
		t.Errorf("replacement %d/%d, want 100/100", p.HP, p.MaxHP)
	}
	if !contains(res.State.DiscardPile, "plumber_turbo_tony") {
		t.Errorf("first plumber not in discard: %v", res.State.DiscardPile)
	}

	deploys := logger.EventsOfType(log.EventDeploy)
	if got := deploys[len(deploys)-1].Details; got != "Deployed plumber: Speedy Sal (HP 100), relieving Turbo Tony" {
		t.Errorf("deploy line = %q", got)
	}
}

func TestCounterAttackRemovesPlumber(t *testing.T) {
	// Wes has 65 HP: counters of 10, 12, 14 and 16 leave 13, the fifth (18) finishes him.
	b, logger := newTestBattle(t, padDeck([]string{"plumber_wrenchin_wes"}, 10))
	mustPlay(t, b, "plumber_wrenchin_wes")

	for i := 0; i < 4; i++ {
		mustEndTurn(t, b)
	}
	if p := b.State().ActivePlumber; p == nil || p.HP != 13 {
		t.Fatalf("after four counters plumber = %+v, want hp 13", p)
	}

	res := mustEndTurn(t, b)
	if res.State.ActivePlumber != nil {
		t.Errorf("plumber should be out, got %+v", res.State.ActivePlumber)
	}
	down := logger.EventsOfType(log.EventPlumberDown)
	if len(down) != 1 || down[0].Amount != 18 {
		t.Errorf("plumber down events = %+v", down)
	}
}

func TestSandwichHealClamps(t *testing.T) {
	deck := padDeck([]string{"plumber_turbo_tony", "sandwich_classic_sub"}, 8)
	b, _ := newTestBattle(t, deck)
	mustPlay(t, b, "plumber_turbo_tony")
	mustEndTurn(t, b)

	res := mustPlay(t, b, "sandwich_classic_sub")
	if p := res.State.ActivePlumber; p.HP != 100 {
		t.Errorf("plumber hp = %d, want 100 (clamped)", p.HP)
	}
	if got := res.NewLog(); len(got) != 1 || got[0] != "Classic Sub restored 10 HP to Turbo Tony." {
		t.Errorf("heal log = %v", got)
	}
}

func TestSandwichWithoutPlumberIsRejected(t *testing.T) {
	b, _ := newTestBattle(t, padDeck([]string{"sandwich_classic_sub"}, 8))
	before := b.State()

	res, err := b.PlayCard("sandwich_classic_sub")
	expectErr(t, err, ErrIllegalSandwichPlay)

	after := res.State
	if got := after.Log[len(before.Log):]; len(got) != 1 || got[0] != "No plumber to heal. Play a plumber first." {
		t.Errorf("rejection log = %v", got)
	}
	after.Log = before.Log
	if !reflect.DeepEqual(before, after) {
		t.Error("rejected sandwich changed more than the log")
	}
	if b.CanUndo() {
		t.Error("rejected sandwich must not push a snapshot")
	}
}

func TestPlayCardNotInHand(t *testing.T) {
	deck := padDeck([]string{"tool_mega_plunger"}, 8)
	deck = append(deck, "tool_snake_o_matic")
	b, _ := newTestBattle(t, deck)
	before := b.State()

	res, err := b.PlayCard("tool_snake_o_matic")
	expectErr(t, err, ErrInvalidCardReference)
	if !reflect.DeepEqual(before, res.State) {
		t.Error("invalid card reference mutated the state")
	}
	if b.CanUndo() {
		t.Error("invalid card reference pushed a snapshot")
	}
}

func TestUnknownCardPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for a deck naming an unknown card")
		}
	}()
	NewBattle(BattleConfig{Deck: []string{"tool_imaginary"}, Catalog: DefaultCatalog()})
}

func TestUndoRestoresPreviousState(t *testing.T) {
	deck := padDeck([]string{"plumber_turbo_tony", "tool_mega_plunger", "powerup_caffeinated_surge"}, 10)
	b, _ := newTestBattle(t, deck)
	mustPlay(t, b, "plumber_turbo_tony")

	before := b.State()
	mustPlay(t, b, "powerup_caffeinated_surge")
	res, err := b.Undo()
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if !reflect.DeepEqual(before, res.State) {
		t.Errorf("undo did not restore the pre-play state\nbefore %+v\nafter  %+v", before, res.State)
	}

	// Undo the deploy too, then one more is a no-op.
	b.Undo()
	res, err = b.Undo()
	if err != nil {
		t.Fatalf("Undo on empty stack: %v", err)
	}
	if res.State.ActivePlumber != nil || len(res.State.Hand) != HandSize {
		t.Errorf("expected opening state, got plumber %+v hand %v", res.State.ActivePlumber, res.State.Hand)
	}
	if b.CanUndo() {
		t.Error("stack should be empty")
	}
}

func TestUndoEndTurn(t *testing.T) {
	b, _ := newTestBattle(t, padDeck([]string{"plumber_turbo_tony"}, 10))
	mustPlay(t, b, "plumber_turbo_tony")
	before := b.State()

	mustEndTurn(t, b)
	res, _ := b.Undo()
	if !reflect.DeepEqual(before, res.State) {
		t.Error("undo did not rewind the whole end-of-turn transaction")
	}
}

func TestReshuffleKeepsCardCount(t *testing.T) {
	deck := []string{
		"tool_mega_plunger", "tool_leak_detector", "tool_pipe_patch_kit",
		"tool_waterproof_tape", "tool_mini_shop_vac", "excuse_blame_the_dog",
	}
	b, logger := newTestBattle(t, deck)

	for _, id := range deck[:5] {
		mustPlay(t, b, id)
	}
	// Draw pile has one card; the other four come from the reshuffled discard.
	res := mustEndTurn(t, b)
	if len(res.State.Hand) != HandSize {
		t.Errorf("hand = %v", res.State.Hand)
	}
	if len(logger.EventsOfType(log.EventShuffle)) != 1 {
		t.Error("expected a reshuffle")
	}
}

// TestRandomPlayInvariants drives seeded battles with arbitrary legal and
// illegal moves and checks the invariants after every step.
func TestRandomPlayInvariants(t *testing.T) {
	starter := StarterDeck()
	for seed := uint64(1); seed <= 25; seed++ {
		b, err := NewBattle(BattleConfig{Deck: starter.Cards, Catalog: DefaultCatalog(), Seed: seed})
		if err != nil {
			t.Fatal(err)
		}

		outcomes := 0
		for step := 0; step < 200; step++ {
			s := b.State()
			if s.Status.Terminal() {
				break
			}
			var res Result
			switch {
			case step%7 == 6:
				res, _ = b.Undo()
			case len(s.Hand) == 0 || step%3 == 2:
				res, _ = b.EndTurn()
			default:
				res, _ = b.PlayCard(s.Hand[(step+int(seed))%len(s.Hand)])
			}
			checkInvariants(t, res.State, b)
			if res.Outcome != nil {
				outcomes++
			}
		}
		if b.State().Status.Terminal() && outcomes != 1 {
			t.Errorf("seed %d: outcome reported %d times", seed, outcomes)
		}
	}
}

func TestCounterAttackFormula(t *testing.T) {
	cases := map[int]int{10: 10, 6: 10, 5: 12, 3: 16, 1: 20, 0: 22, -2: 26}
	for turnsLeft, want := range cases {
		if got := CounterAttack(turnsLeft); got != want {
			t.Errorf("CounterAttack(%d) = %d, want %d", turnsLeft, got, want)
		}
	}
}

func TestReward(t *testing.T) {
	if Reward(3) != 150 || Reward(0) != 120 || Reward(-1) != 120 {
		t.Errorf("rewards %d %d %d", Reward(3), Reward(0), Reward(-1))
	}
}

func contains(ids []string, id string) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
