// Package service owns battle sessions and the player records they settle
// into. Storage is read when a session starts and written when it ends,
// never in the middle of a turn.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peterkuimelis/plumbers/internal/game"
	"github.com/peterkuimelis/plumbers/internal/log"
	"github.com/peterkuimelis/plumbers/internal/storage"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrUnknownEmergency = errors.New("unknown emergency")
	ErrUnknownCard      = errors.New("unknown card")
	ErrInvalidDeck      = errors.New("invalid deck")
	ErrCardsNotOwned    = errors.New("deck uses cards the player does not own")
	ErrNotEnoughCoins   = errors.New("not enough coins")
)

const (
	StartingCoins    = 500
	StarterDeckID    = "starter"
	SolvesPerLevel   = 3
	defaultEmergency = "burst_pipe"
)

// Service starts battles from stored decks and settles their outcomes.
type Service struct {
	store   storage.Store
	catalog *game.Catalog
	logger  *zap.Logger
	seed    uint64
	events  func(sessionID string) log.EventLogger

	mu       sync.Mutex
	sessions map[string]*Session

	playersMu sync.Mutex
	players   map[string]*sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the operational logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithSeed makes every battle shuffle from seed. Zero means random.
func WithSeed(seed uint64) Option {
	return func(s *Service) { s.seed = seed }
}

// WithEventLogger sets the factory that builds each session's event logger.
func WithEventLogger(factory func(sessionID string) log.EventLogger) Option {
	return func(s *Service) { s.events = factory }
}

// New returns a service backed by store and catalog.
func New(store storage.Store, catalog *game.Catalog, opts ...Option) *Service {
	s := &Service{
		store:    store,
		catalog:  catalog,
		logger:   zap.NewNop(),
		sessions: make(map[string]*Session),
		players:  make(map[string]*sync.Mutex),
		events: func(string) log.EventLogger {
			return log.NewMemoryLogger()
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the card catalog battles are played with.
func (s *Service) Catalog() *game.Catalog {
	return s.catalog
}

// --- Players ---

// lockPlayer serializes read-modify-write cycles on one player's records.
func (s *Service) lockPlayer(playerID string) func() {
	s.playersMu.Lock()
	m, ok := s.players[playerID]
	if !ok {
		m = &sync.Mutex{}
		s.players[playerID] = m
	}
	s.playersMu.Unlock()

	m.Lock()
	return m.Unlock
}

// EnsurePlayer returns the player's profile, creating it on first sight with
// the starting coins, the starter collection and the Starter Kit deck.
func (s *Service) EnsurePlayer(ctx context.Context, playerID string) (storage.Profile, error) {
	playerID = strings.TrimSpace(playerID)
	defer s.lockPlayer(playerID)()
	return s.ensurePlayer(ctx, playerID)
}

// ensurePlayer is EnsurePlayer for callers holding the player lock.
func (s *Service) ensurePlayer(ctx context.Context, playerID string) (storage.Profile, error) {
	if playerID == "" {
		return storage.Profile{}, fmt.Errorf("player id is required")
	}
	profile, err := s.store.GetProfile(ctx, playerID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return storage.Profile{}, fmt.Errorf("load profile: %w", err)
	}

	profile = storage.Profile{PlayerID: playerID, Coins: StartingCoins, Level: 1}
	if err := s.store.SaveProfile(ctx, profile); err != nil {
		return storage.Profile{}, fmt.Errorf("create profile: %w", err)
	}

	starter := game.StarterDeck()
	owned := make(map[string]int)
	for _, id := range starter.Cards {
		owned[id]++
	}
	if err := s.store.SaveCollection(ctx, storage.Collection{PlayerID: playerID, Cards: owned}); err != nil {
		return storage.Profile{}, fmt.Errorf("create collection: %w", err)
	}
	if err := s.store.SaveDeck(ctx, storage.DeckRecord{
		ID:       StarterDeckID,
		PlayerID: playerID,
		Name:     starter.Name,
		Cards:    starter.Cards,
	}); err != nil {
		return storage.Profile{}, fmt.Errorf("create starter deck: %w", err)
	}

	s.logger.Info("new player", zap.String("player", playerID))
	return s.store.GetProfile(ctx, playerID)
}

// Collection returns the player's owned cards.
func (s *Service) Collection(ctx context.Context, playerID string) (storage.Collection, error) {
	c, err := s.store.GetCollection(ctx, playerID)
	if errors.Is(err, storage.ErrNotFound) {
		return storage.Collection{PlayerID: playerID, Cards: map[string]int{}}, nil
	}
	return c, err
}

// BuyCard spends the card's price and adds one copy to the collection.
func (s *Service) BuyCard(ctx context.Context, playerID, cardID string) (storage.Profile, error) {
	card, ok := s.catalog.Card(cardID)
	if !ok {
		return storage.Profile{}, fmt.Errorf("%w: %q", ErrUnknownCard, cardID)
	}
	playerID = strings.TrimSpace(playerID)
	defer s.lockPlayer(playerID)()

	profile, err := s.ensurePlayer(ctx, playerID)
	if err != nil {
		return storage.Profile{}, err
	}
	if profile.Coins < card.Price {
		return profile, fmt.Errorf("%w: %s costs %d, have %d", ErrNotEnoughCoins, card.Name, card.Price, profile.Coins)
	}

	collection, err := s.Collection(ctx, playerID)
	if err != nil {
		return storage.Profile{}, fmt.Errorf("load collection: %w", err)
	}
	collection.Cards[cardID]++
	if err := s.store.SaveCollection(ctx, collection); err != nil {
		return storage.Profile{}, fmt.Errorf("save collection: %w", err)
	}

	profile.Coins -= card.Price
	if err := s.store.SaveProfile(ctx, profile); err != nil {
		return storage.Profile{}, fmt.Errorf("save profile: %w", err)
	}
	s.logger.Info("card bought",
		zap.String("player", playerID),
		zap.String("card", cardID),
		zap.Int("coins", profile.Coins),
	)
	return profile, nil
}

// --- Decks ---

// Decks lists the player's saved decks.
func (s *Service) Decks(ctx context.Context, playerID string) ([]storage.DeckRecord, error) {
	return s.store.ListDecks(ctx, playerID)
}

// SaveDeck validates and stores a deck. An empty id creates a new deck.
// Every card must exist in the catalog and the deck may not use more copies
// of a card than the player owns.
func (s *Service) SaveDeck(ctx context.Context, deck storage.DeckRecord) (storage.DeckRecord, error) {
	if err := s.catalog.Validate(deck.Cards); err != nil {
		return storage.DeckRecord{}, fmt.Errorf("%w: %v", ErrInvalidDeck, err)
	}
	if strings.TrimSpace(deck.Name) == "" {
		return storage.DeckRecord{}, fmt.Errorf("%w: name is required", ErrInvalidDeck)
	}

	collection, err := s.Collection(ctx, deck.PlayerID)
	if err != nil {
		return storage.DeckRecord{}, fmt.Errorf("load collection: %w", err)
	}
	used := make(map[string]int)
	for _, id := range deck.Cards {
		used[id]++
		if used[id] > collection.Cards[id] {
			return storage.DeckRecord{}, fmt.Errorf("%w: %s x%d", ErrCardsNotOwned, id, used[id])
		}
	}

	if deck.ID == "" {
		deck.ID = uuid.NewString()
	}
	if err := s.store.SaveDeck(ctx, deck); err != nil {
		return storage.DeckRecord{}, fmt.Errorf("save deck: %w", err)
	}
	return s.store.GetDeck(ctx, deck.PlayerID, deck.ID)
}

// DeleteDeck removes a saved deck.
func (s *Service) DeleteDeck(ctx context.Context, playerID, deckID string) error {
	return s.store.DeleteDeck(ctx, playerID, deckID)
}

// --- Sessions ---

// Start begins a battle with one of the player's saved decks.
func (s *Service) Start(ctx context.Context, playerID, deckID, emergencyID string) (*Session, error) {
	if _, err := s.EnsurePlayer(ctx, playerID); err != nil {
		return nil, err
	}
	rec, err := s.store.GetDeck(ctx, playerID, deckID)
	if err != nil {
		return nil, fmt.Errorf("load deck %q: %w", deckID, err)
	}
	return s.StartDeck(ctx, playerID, game.Deck{ID: rec.ID, Name: rec.Name, Cards: rec.Cards}, emergencyID)
}

// StartDeck begins a battle with a deck that is not stored, such as one read
// from a deck file.
func (s *Service) StartDeck(ctx context.Context, playerID string, deck game.Deck, emergencyID string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if emergencyID == "" {
		emergencyID = defaultEmergency
	}
	em, ok := s.catalog.Emergency(emergencyID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEmergency, emergencyID)
	}
	if err := s.catalog.Validate(deck.Cards); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDeck, err)
	}

	id := uuid.NewString()
	battle, err := game.NewBattle(game.BattleConfig{
		Deck:      deck.Cards,
		Catalog:   s.catalog,
		Emergency: em,
		Logger:    s.events(id),
		Debug:     s.logger.With(zap.String("session", id)),
		Seed:      s.seed,
	})
	if err != nil {
		return nil, fmt.Errorf("start battle: %w", err)
	}

	sess := &Session{
		ID:        id,
		PlayerID:  playerID,
		Deck:      deck,
		Emergency: em,
		battle:    battle,
	}
	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	s.logger.Info("session started",
		zap.String("session", id),
		zap.String("player", playerID),
		zap.String("deck", deck.Name),
		zap.String("emergency", em.ID),
	)
	return sess, nil
}

// Session looks up a live session.
func (s *Service) Session(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return sess, nil
}

// PlayCard plays a card in a session.
func (s *Service) PlayCard(ctx context.Context, sessionID, cardID string) (game.Result, error) {
	return s.apply(ctx, sessionID, func(b *game.Battle) (game.Result, error) {
		return b.PlayCard(cardID)
	})
}

// EndTurn ends the current turn of a session.
func (s *Service) EndTurn(ctx context.Context, sessionID string) (game.Result, error) {
	return s.apply(ctx, sessionID, (*game.Battle).EndTurn)
}

// Undo rewinds the last play or end of turn of a session.
func (s *Service) Undo(ctx context.Context, sessionID string) (game.Result, error) {
	return s.apply(ctx, sessionID, (*game.Battle).Undo)
}

// Retry replaces a session with a fresh battle using the same deck and
// emergency.
func (s *Service) Retry(ctx context.Context, sessionID string) (*Session, error) {
	old, err := s.Session(sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.settlePending(ctx, old); err != nil {
		return nil, err
	}
	sess, err := s.StartDeck(ctx, old.PlayerID, old.Deck, old.Emergency.ID)
	if err != nil {
		return nil, err
	}
	s.Abandon(sessionID)
	return sess, nil
}

// Abandon drops a session. An unfinished battle is simply discarded, and so
// is a victory whose reward could not be saved.
func (s *Service) Abandon(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return
	}
	delete(s.sessions, sessionID)
	if sess.Unsettled() {
		s.logger.Warn("unsettled victory dropped",
			zap.String("session", sessionID),
			zap.String("player", sess.PlayerID),
		)
		return
	}
	s.logger.Debug("session dropped", zap.String("session", sessionID))
}

func (s *Service) apply(ctx context.Context, sessionID string, op func(*game.Battle) (game.Result, error)) (game.Result, error) {
	if err := ctx.Err(); err != nil {
		return game.Result{}, err
	}
	sess, err := s.Session(sessionID)
	if err != nil {
		return game.Result{}, err
	}

	res, err := op(sess.battle)
	if res.Outcome != nil {
		s.logger.Info("session over",
			zap.String("session", sess.ID),
			zap.Stringer("status", res.Outcome.Status),
			zap.Int("coins", res.Outcome.CoinsAwarded),
		)
		sess.hold(*res.Outcome)
	}
	// A victory whose save failed earlier is retried on every later call.
	settleErr := s.settlePending(ctx, sess)

	if err != nil {
		s.logger.Debug("move rejected", zap.String("session", sessionID), zap.Error(err))
		if settleErr != nil {
			s.logger.Warn("settle retry failed", zap.String("session", sessionID), zap.Error(settleErr))
		}
		return res, err
	}
	return res, settleErr
}

// settlePending settles the session's held outcome, if any. The outcome stays
// held when the store fails.
func (s *Service) settlePending(ctx context.Context, sess *Session) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.unsettled == nil {
		return nil
	}
	if err := s.settle(ctx, sess, *sess.unsettled); err != nil {
		return err
	}
	sess.unsettled = nil
	return nil
}

// settle records a finished battle. Only a victory touches the profile.
func (s *Service) settle(ctx context.Context, sess *Session, out game.Outcome) error {
	if out.Status != game.StatusVictory {
		return nil
	}
	playerID := strings.TrimSpace(sess.PlayerID)
	defer s.lockPlayer(playerID)()

	profile, err := s.ensurePlayer(ctx, playerID)
	if err != nil {
		return fmt.Errorf("settle outcome: %w", err)
	}
	profile.Coins += out.CoinsAwarded
	profile.Wins++
	profile.EmergenciesSolved++
	profile.Level = 1 + profile.EmergenciesSolved/SolvesPerLevel
	if err := s.store.SaveProfile(ctx, profile); err != nil {
		return fmt.Errorf("settle outcome: %w", err)
	}
	return nil
}
