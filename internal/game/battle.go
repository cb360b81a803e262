package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/peterkuimelis/plumbers/internal/log"
)

var (
	ErrInvalidCardReference = errors.New("card is not in hand")
	ErrIllegalSandwichPlay  = errors.New("no plumber to heal")
	ErrSessionTerminal      = errors.New("battle is already over")
)

// BattleConfig holds configuration for creating a new battle.
type BattleConfig struct {
	Deck      []string // card ids, in deck order
	Catalog   *Catalog
	Emergency EmergencyDef // zero value means BurstPipe
	Logger    log.EventLogger
	Debug     *zap.Logger
	Seed      uint64 // RNG seed (0 for random)
	NoShuffle bool   // deal the deck in order (for deterministic tests)
	HandSize  int    // 0 means HandSize
}

// Outcome is the terminal signal of a battle.
type Outcome struct {
	Status       Status
	CoinsAwarded int
}

// Result is what every battle operation hands back: a deep copy of the state,
// the events appended by the operation and, on the one call that ended the
// battle, its outcome.
type Result struct {
	State   *BattleState
	Events  []log.GameEvent
	Outcome *Outcome
}

// NewLog returns the player-facing log lines appended by the operation.
func (r Result) NewLog() []string {
	return log.Details(r.Events)
}

// Battle runs one emergency for one deck. Operations are serialized; each
// runs to completion before the next starts.
type Battle struct {
	mu       sync.Mutex
	state    *BattleState
	catalog  *Catalog
	logger   log.EventLogger
	debug    *zap.Logger
	rng      *rand.Rand
	handSize int
	deckSize int
	undo     UndoStack

	pending  []log.GameEvent
	reported bool
}

// NewBattle shuffles the deck, deals the opening hand and resets the
// emergency. It panics if the deck names a card the catalog does not define.
func NewBattle(cfg BattleConfig) (*Battle, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("battle needs a catalog")
	}
	if len(cfg.Deck) == 0 {
		return nil, fmt.Errorf("battle needs a deck with at least one card")
	}
	for _, id := range cfg.Deck {
		cfg.Catalog.MustCard(id)
	}

	def := cfg.Emergency
	if def.ID == "" {
		def = BurstPipe
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	debug := cfg.Debug
	if debug == nil {
		debug = zap.NewNop()
	}
	handSize := cfg.HandSize
	if handSize <= 0 {
		handSize = HandSize
	}
	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	}

	b := &Battle{
		catalog:  cfg.Catalog,
		logger:   logger,
		debug:    debug.With(zap.String("emergency", def.ID)),
		rng:      rng,
		handSize: handSize,
		deckSize: len(cfg.Deck),
	}

	deck := slices.Clone(cfg.Deck)
	if !cfg.NoShuffle {
		Shuffle(deck, rng)
	}
	b.state = dealState(deck, def.Reset(), handSize)

	for _, ev := range log.NewBattleStartEvents(b.state.Turn, b.state.Phase.String(), def.Name) {
		b.emit(ev)
	}
	b.pending = nil

	b.debug.Debug("battle started",
		zap.Int("deck_size", len(deck)),
		zap.Strings("hand", b.state.Hand),
	)
	return b, nil
}

// State returns a deep copy of the current battle state.
func (b *Battle) State() *BattleState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state.Clone()
}

// DeckSize returns the number of cards the battle was dealt from.
func (b *Battle) DeckSize() int {
	return b.deckSize
}

// CanUndo reports whether Undo would restore a snapshot.
func (b *Battle) CanUndo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.state.Status.Terminal() && b.undo.Len() > 0
}

// PlayCard plays cardID from the hand.
func (b *Battle) PlayCard(cardID string) (Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := b.state
	if s.Status.Terminal() {
		return b.result(), ErrSessionTerminal
	}
	if s.HandIndex(cardID) < 0 {
		return b.result(), fmt.Errorf("%w: %q", ErrInvalidCardReference, cardID)
	}

	card := b.catalog.MustCard(cardID)
	if ok, reason := CanPlay(s, card); !ok {
		b.emit(log.NewRejectedEvent(s.Turn, s.Phase.String(), card.ID, reason))
		return b.result(), ErrIllegalSandwichPlay
	}

	b.undo.Push(s)
	s.RemoveFromHand(cardID)
	b.emit(resolveEffect(s, card))

	b.debug.Debug("card played",
		zap.String("card", cardID),
		zap.String("type", card.Type.String()),
		zap.Int("emergency_hp", s.Emergency.HP),
	)

	if s.Emergency.Fixed() {
		b.declareVictory()
	}
	return b.result(), nil
}

// EndTurn resolves the end of the player's turn as a single transaction:
// player attack, enemy counter-attack, clock advance, draw, win/loss check.
func (b *Battle) EndTurn() (Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := b.state
	if s.Status.Terminal() {
		return b.result(), ErrSessionTerminal
	}
	b.undo.Push(s)

	b.enterPhase(PhaseEndTurn)
	b.playerAttack()

	b.enterPhase(PhaseEnemyCounter)
	b.counterAttack()

	s.Emergency.TurnsLeft--
	s.Turn++

	b.enterPhase(PhaseDraw)
	b.drawPhase()

	b.enterPhase(PhaseResolved)
	switch {
	case s.Emergency.Fixed():
		b.declareVictory()
	case s.Emergency.TurnsLeft <= 0:
		b.declareDefeat()
	default:
		b.enterPhase(PhasePlayerTurn)
		b.emit(log.NewTurnEvent(s.Turn, s.Emergency.TurnsLeft))
	}

	b.debug.Debug("turn ended",
		zap.Int("turn", s.Turn),
		zap.Int("turns_left", s.Emergency.TurnsLeft),
		zap.Int("emergency_hp", s.Emergency.HP),
		zap.Stringer("status", s.Status),
	)
	return b.result(), nil
}

// Undo restores the state captured before the most recent play or end of
// turn. With nothing to undo it is a no-op.
func (b *Battle) Undo() (Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state.Status.Terminal() {
		return b.result(), ErrSessionTerminal
	}
	prev, ok := b.undo.Pop()
	if !ok {
		return b.result(), nil
	}
	b.state = prev
	b.emit(log.NewUndoEvent(prev.Turn, prev.Phase.String()))
	return b.result(), nil
}

// playerAttack applies the active plumber's fix to the emergency.
func (b *Battle) playerAttack() {
	s := b.state
	p := s.ActivePlumber
	if p == nil {
		b.emit(log.NewNoPlumberEvent(s.Turn))
		return
	}
	dmg := s.PlumberDamage()
	s.hitEmergency(dmg)
	b.emit(log.NewPlayerAttackEvent(s.Turn, p.Name, dmg))
}

// counterAttack hits the active plumber with the pressure surge. A plumber
// brought to zero leaves the slot; its card was discarded when it was played.
func (b *Battle) counterAttack() {
	s := b.state
	attack := CounterAttack(s.Emergency.TurnsLeft - 1)
	p := s.ActivePlumber
	if p == nil {
		b.emit(log.NewPressureEvent(s.Turn))
		return
	}
	p.HP = clamp(p.HP-attack, 0, p.MaxHP)
	if p.HP == 0 {
		s.ActivePlumber = nil
		b.emit(log.NewPlumberDownEvent(s.Turn, p.Name, attack))
		return
	}
	b.emit(log.NewCounterAttackEvent(s.Turn, p.Name, attack))
}

// drawPhase refills the hand.
func (b *Battle) drawPhase() {
	s := b.state
	res := s.Replenish(b.handSize, b.rng)
	if res.Reshuffled > 0 {
		b.emit(log.NewShuffleEvent(s.Turn, res.Reshuffled))
	}
	for _, id := range res.Drawn {
		b.emit(log.NewDrawEvent(s.Turn, id))
	}
}

func (b *Battle) declareVictory() {
	s := b.state
	turns := s.FixedWithTurns
	if turns < 0 {
		turns = s.Emergency.TurnsLeft
	}
	s.CoinsAwarded = Reward(turns)
	s.Status = StatusVictory
	s.Phase = PhaseVictory
	b.emit(log.NewVictoryEvent(s.Turn, s.Phase.String(), s.Emergency.Name, s.CoinsAwarded))
}

func (b *Battle) declareDefeat() {
	s := b.state
	s.Status = StatusDefeat
	s.Phase = PhaseDefeat
	b.emit(log.NewDefeatEvent(s.Turn, s.Phase.String(), s.Emergency.Name))
}

func (b *Battle) enterPhase(p Phase) {
	b.state.Phase = p
	b.emit(log.NewPhaseChangeEvent(b.state.Turn, p.String()))
}

// emit records an event with the logger, the pending result and, when it is
// player-facing, the battle log.
func (b *Battle) emit(ev log.GameEvent) {
	b.logger.Log(ev)
	b.pending = append(b.pending, ev)
	if ev.Type.Visible() {
		b.state.Log = append(b.state.Log, ev.Details)
	}
}

// result packages the current state and the events emitted since the last
// result. The outcome is attached only the first time a terminal state is seen.
func (b *Battle) result() Result {
	r := Result{
		State:  b.state.Clone(),
		Events: b.pending,
	}
	b.pending = nil
	if b.state.Status.Terminal() && !b.reported {
		b.reported = true
		r.Outcome = &Outcome{Status: b.state.Status, CoinsAwarded: b.state.CoinsAwarded}
	}
	return r
}
