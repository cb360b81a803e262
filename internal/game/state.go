package game

import (
	"math/rand/v2"
	"slices"
)

const (
	HandSize        = 5
	BaseReward      = 120
	RewardPerTurn   = 10
	CounterFloor    = 8
	CounterBase     = 10
	CounterRamp     = 2
	CounterRampFrom = 6
)

// BattleState holds the complete state of one emergency battle.
// The top of the draw pile is index 0.
type BattleState struct {
	DrawPile    []string
	Hand        []string
	DiscardPile []string

	Turn  int // 1-based turn counter
	Phase Phase
	Log   []string

	ActivePlumber    *ActivePlumber
	DamageMultiplier float64
	HealthMultiplier float64
	ActiveEffects    []string

	Emergency Emergency
	Status    Status

	// FixedWithTurns is the clock reading at the moment Emergency.HP reached
	// zero, or -1 while the emergency is still leaking.
	FixedWithTurns int
	CoinsAwarded   int
}

func dealState(ordered []string, emergency Emergency, handSize int) *BattleState {
	n := min(handSize, len(ordered))
	return &BattleState{
		DrawPile:         slices.Clone(ordered[n:]),
		Hand:             slices.Clone(ordered[:n]),
		DiscardPile:      []string{},
		Turn:             1,
		Phase:            PhasePlayerTurn,
		DamageMultiplier: 1,
		HealthMultiplier: 1,
		Emergency:        emergency,
		Status:           StatusInProgress,
		FixedWithTurns:   -1,
	}
}

// Shuffle permutes ids in place with a Fisher-Yates shuffle. A nil rng uses
// the process-wide source.
func Shuffle(ids []string, rng *rand.Rand) {
	swap := func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	}
	if rng == nil {
		rand.Shuffle(len(ids), swap)
		return
	}
	rng.Shuffle(len(ids), swap)
}

// DrawResult reports what Replenish moved.
type DrawResult struct {
	Drawn      []string
	Reshuffled int // cards moved from discard into the draw pile, 0 if none
}

// Replenish draws until the hand holds target cards. When the draw pile runs
// dry the discard pile is shuffled into a new draw pile. If both are empty
// the hand stays short.
func (s *BattleState) Replenish(target int, rng *rand.Rand) DrawResult {
	var res DrawResult
	for len(s.Hand) < target {
		if len(s.DrawPile) == 0 {
			if len(s.DiscardPile) == 0 {
				break
			}
			s.DrawPile = s.DiscardPile
			s.DiscardPile = []string{}
			Shuffle(s.DrawPile, rng)
			res.Reshuffled += len(s.DrawPile)
		}
		next := s.DrawPile[0]
		s.DrawPile = s.DrawPile[1:]
		s.Hand = append(s.Hand, next)
		res.Drawn = append(res.Drawn, next)
	}
	return res
}

// CardCount returns the number of cards across draw pile, hand and discard.
func (s *BattleState) CardCount() int {
	return len(s.DrawPile) + len(s.Hand) + len(s.DiscardPile)
}

// HandIndex returns the position of id in the hand, or -1.
func (s *BattleState) HandIndex(id string) int {
	return slices.Index(s.Hand, id)
}

// RemoveFromHand removes the first copy of id from the hand.
func (s *BattleState) RemoveFromHand(id string) bool {
	i := s.HandIndex(id)
	if i < 0 {
		return false
	}
	s.Hand = slices.Delete(slices.Clone(s.Hand), i, i+1)
	return true
}

// Discard puts id on the discard pile.
func (s *BattleState) Discard(id string) {
	s.DiscardPile = append(s.DiscardPile, id)
}

// Clone returns a deep copy sharing no slices or pointers with s.
func (s *BattleState) Clone() *BattleState {
	c := *s
	c.DrawPile = slices.Clone(s.DrawPile)
	c.Hand = slices.Clone(s.Hand)
	c.DiscardPile = slices.Clone(s.DiscardPile)
	c.Log = slices.Clone(s.Log)
	c.ActiveEffects = slices.Clone(s.ActiveEffects)
	if s.ActivePlumber != nil {
		p := *s.ActivePlumber
		c.ActivePlumber = &p
	}
	return &c
}

func clamp(n, lo, hi int) int {
	return max(lo, min(hi, n))
}
