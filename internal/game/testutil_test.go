package game

import (
	"errors"
	"testing"

	"github.com/peterkuimelis/plumbers/internal/log"
)

// filler is a card tests put in decks to pad them out. It is never played.
const filler = "excuse_misplaced_tools"

// padDeck returns front followed by filler cards up to n cards total.
func padDeck(front []string, n int) []string {
	deck := append([]string{}, front...)
	for len(deck) < n {
		deck = append(deck, filler)
	}
	return deck
}

// newTestBattle starts an unshuffled Burst Pipe battle: the first five cards
// of deck form the opening hand.
func newTestBattle(t *testing.T, deck []string) (*Battle, *log.MemoryLogger) {
	t.Helper()
	return newTestBattleWith(t, deck, BurstPipe)
}

func newTestBattleWith(t *testing.T, deck []string, em EmergencyDef) (*Battle, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	b, err := NewBattle(BattleConfig{
		Deck:      deck,
		Catalog:   DefaultCatalog(),
		Emergency: em,
		Logger:    logger,
		NoShuffle: true,
	})
	if err != nil {
		t.Fatalf("NewBattle: %v", err)
	}
	return b, logger
}

func mustPlay(t *testing.T, b *Battle, cardID string) Result {
	t.Helper()
	res, err := b.PlayCard(cardID)
	if err != nil {
		t.Fatalf("PlayCard(%s): %v", cardID, err)
	}
	checkInvariants(t, res.State, b)
	return res
}

func mustEndTurn(t *testing.T, b *Battle) Result {
	t.Helper()
	res, err := b.EndTurn()
	if err != nil {
		t.Fatalf("EndTurn: %v", err)
	}
	checkInvariants(t, res.State, b)
	return res
}

func expectErr(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("expected %v, got %v", target, err)
	}
}

// checkInvariants asserts the bounds and card conservation that must hold
// after every operation.
func checkInvariants(t *testing.T, s *BattleState, b *Battle) {
	t.Helper()
	if want := b.DeckSize(); s.CardCount() != want {
		t.Errorf("card count = %d, want %d (draw %v, hand %v, discard %v)",
			s.CardCount(), want, s.DrawPile, s.Hand, s.DiscardPile)
	}
	if s.Emergency.HP < 0 || s.Emergency.HP > s.Emergency.MaxHP {
		t.Errorf("emergency hp %d outside [0, %d]", s.Emergency.HP, s.Emergency.MaxHP)
	}
	if p := s.ActivePlumber; p != nil && (p.HP < 0 || p.HP > p.MaxHP) {
		t.Errorf("plumber hp %d outside [0, %d]", p.HP, p.MaxHP)
	}
	if len(s.Hand) > b.handSize {
		t.Errorf("hand holds %d cards, capacity %d", len(s.Hand), b.handSize)
	}
}
